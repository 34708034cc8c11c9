package interfaces

import "context"

// PushResult reports one document pushed to its page.
type PushResult struct {
	Path    string
	PageID  string
	Title   string
	Version int
	Created bool
	WebURL  string
}

// PullResult reports one page written to a local document.
type PullResult struct {
	Path    string
	PageID  string
	Title   string
	Version int
}

// SyncStatus describes where one tracked path stands relative to its page.
// State is one of the sync state constants exposed by the sync package.
type SyncStatus struct {
	Path          string
	PageID        string
	State         string
	LocalHash     string
	RecordHash    string
	RecordVersion int
	RemoteVersion int
}

// DocumentSyncer keeps a directory of markdown documents and their pages in
// step. Pushes must refuse to clobber a page whose remote version moved
// since the last sync unless explicitly forced.
type DocumentSyncer interface {
	Push(ctx context.Context, path string, force bool) (PushResult, error)
	PushAll(ctx context.Context, force bool) ([]PushResult, error)
	Pull(ctx context.Context, reference, path string) (PullResult, error)
	Status(ctx context.Context, path string) (SyncStatus, error)
	StatusAll(ctx context.Context) ([]SyncStatus, error)
}
