package patch

import (
	"errors"
	"fmt"
)

// ErrNotFound flags a patch whose target fragment does not occur in the body.
var ErrNotFound = errors.New("patch: fragment not found")

// NotFoundError carries a display-trimmed copy of the missing fragment.
type NotFoundError struct {
	Fragment string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ErrNotFound.Error()
	}
	return fmt.Sprintf("%s: %q does not occur in the page body; verify the exact storage markup", ErrNotFound.Error(), e.Fragment)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
