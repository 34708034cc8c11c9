package sync

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrRecordNotFound indicates no sync record exists for the requested
	// path or page.
	ErrRecordNotFound = errors.New("sync: record not found")
	// ErrConflict indicates both the local file and the remote page changed
	// since the last sync, so neither side can win silently.
	ErrConflict = errors.New("sync: conflict")
	// ErrPageMetadata indicates a document's frontmatter is missing what the
	// requested operation needs.
	ErrPageMetadata = errors.New("sync: incomplete page metadata")
)

// RecordNotFoundError names the key that had no sync record.
type RecordNotFoundError struct {
	Key string
}

func (e *RecordNotFoundError) Error() string {
	if e == nil || e.Key == "" {
		return ErrRecordNotFound.Error()
	}
	return fmt.Sprintf("%s: %s", ErrRecordNotFound.Error(), e.Key)
}

func (e *RecordNotFoundError) Unwrap() error {
	return ErrRecordNotFound
}

// ConflictError reports the versions that diverged for a tracked document.
type ConflictError struct {
	Path          string
	PageID        string
	RecordVersion int
	RemoteVersion int
}

func (e *ConflictError) Error() string {
	if e == nil {
		return ErrConflict.Error()
	}
	return fmt.Sprintf("%s: %s tracks page %s at version %d but the server has version %d",
		ErrConflict.Error(), e.Path, e.PageID, e.RecordVersion, e.RemoteVersion)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// MetadataError names the frontmatter field an operation required.
type MetadataError struct {
	Path   string
	Fields []string
}

func (e *MetadataError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return ErrPageMetadata.Error()
	}
	return fmt.Sprintf("%s: %s needs %s", ErrPageMetadata.Error(), e.Path, strings.Join(e.Fields, ", "))
}

func (e *MetadataError) Unwrap() error {
	return ErrPageMetadata
}
