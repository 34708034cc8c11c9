// Package sync keeps a directory of markdown documents aligned with their
// Confluence pages. Each document names its page in frontmatter; a local
// database remembers the hash and remote version of the last sync so pushes
// refuse to clobber remote edits and status can tell which side drifted.
package sync
