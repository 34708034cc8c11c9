package sync

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record tracks one local document against its remote page. Path is
// relative to the content directory and unique; PageID points at the
// Confluence page the file maps to.
type Record struct {
	bun.BaseModel `bun:"table:sync_records,alias:sr"`

	ID            uuid.UUID `bun:",pk,type:uuid"        json:"id"`
	Path          string    `bun:"path,notnull,unique"  json:"path"`
	PageID        string    `bun:"page_id,notnull"      json:"page_id"`
	SpaceKey      string    `bun:"space_key"            json:"space_key"`
	Title         string    `bun:"title"                json:"title"`
	RemoteVersion int       `bun:"remote_version"       json:"remote_version"`
	ContentHash   string    `bun:"content_hash"         json:"content_hash"`
	SyncedAt      time.Time `bun:"synced_at,nullzero"   json:"synced_at"`
}

// Sync states reported by Status.
const (
	StatusInSync         = "in-sync"
	StatusLocalModified  = "local-modified"
	StatusRemoteModified = "remote-modified"
	StatusConflict       = "conflict"
	StatusUntracked      = "untracked"
	StatusMissing        = "missing"
)
