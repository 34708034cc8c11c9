// Package storage converts between the document tree and the wiki's
// XHTML-like storage format. The renderer and parser are exact inverses over
// the supported node set; markup outside that set survives a round trip as
// opaque raw leaves. The package also locates table regions inside a full
// document body so structural edits can splice rewritten rows back without
// disturbing surrounding content.
package storage
