package storage

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrParse indicates malformed storage markup that the parser could not
	// recover from, such as an unterminated macro or table.
	ErrParse = errors.New("storage: parse failed")
	// ErrUnsupportedConstruct occurs when a node or macro has no defined
	// mapping in the requested direction.
	ErrUnsupportedConstruct = errors.New("storage: unsupported construct")
)

// ParseError captures the construct and byte offset where parsing stopped.
type ParseError struct {
	Construct string
	Offset    int
	Message   string
}

func (e *ParseError) Error() string {
	if e == nil {
		return ErrParse.Error()
	}
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = "malformed markup"
	}
	if e.Construct != "" {
		return fmt.Sprintf("%s: %s in %s at offset %d", ErrParse.Error(), msg, e.Construct, e.Offset)
	}
	return fmt.Sprintf("%s: %s at offset %d", ErrParse.Error(), msg, e.Offset)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// UnsupportedConstructError names the construct that has no mapping.
type UnsupportedConstructError struct {
	Construct string
}

func (e *UnsupportedConstructError) Error() string {
	if e == nil || e.Construct == "" {
		return ErrUnsupportedConstruct.Error()
	}
	return fmt.Sprintf("%s: %s", ErrUnsupportedConstruct.Error(), e.Construct)
}

func (e *UnsupportedConstructError) Unwrap() error {
	return ErrUnsupportedConstruct
}
