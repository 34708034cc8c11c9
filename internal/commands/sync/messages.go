package synccmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	pushDocumentMessageType  = "confluence.sync.push_document"
	pushDirectoryMessageType = "confluence.sync.push_directory"
	pullPageMessageType      = "confluence.sync.pull_page"
)

// PushDocumentCommand pushes one tracked markdown document to its page.
type PushDocumentCommand struct {
	// Path is the document path relative to the configured content directory.
	Path string `json:"path"`
	// Force pushes even when the remote version moved since the last sync.
	Force bool `json:"force,omitempty"`
}

// Type implements command.Message.
func (PushDocumentCommand) Type() string { return pushDocumentMessageType }

// Validate ensures the document path is present.
func (cmd PushDocumentCommand) Validate() error {
	err := validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Path, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("confluence.sync.push_document.path_required", "path is required")
			}
			return nil
		})),
	)
	if err != nil {
		return err
	}
	return nil
}

// PushDirectoryCommand pushes every matching document under the configured
// content directory, collecting per-file failures.
type PushDirectoryCommand struct {
	// Force pushes documents even when their remote versions moved.
	Force bool `json:"force,omitempty"`
}

// Type implements command.Message.
func (PushDirectoryCommand) Type() string { return pushDirectoryMessageType }

// Validate implements command.Message; the directory comes from service configuration.
func (PushDirectoryCommand) Validate() error { return nil }

// PullPageCommand fetches a page and writes it as a local markdown document.
type PullPageCommand struct {
	// Reference selects the page: a numeric id, a URL carrying a pageId
	// parameter, or a /display/SPACE/Title URL.
	Reference string `json:"reference"`
	// Path optionally names the target file; when empty the filename is
	// derived from the page title.
	Path string `json:"path,omitempty"`
}

// Type implements command.Message.
func (PullPageCommand) Type() string { return pullPageMessageType }

// Validate ensures the page reference is present.
func (cmd PullPageCommand) Validate() error {
	err := validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Reference, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("confluence.sync.pull_page.reference_required", "reference is required")
			}
			return nil
		})),
	)
	if err != nil {
		return err
	}
	return nil
}
