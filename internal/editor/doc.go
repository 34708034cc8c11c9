// Package editor performs targeted edits against live pages: exact fragment
// patches, structural table edits, and attachment uploads. Edits rewrite the
// fetched storage body locally before anything is written back, so a patch
// whose target is missing or a table edit with a bad address fails without
// touching the page.
package editor
