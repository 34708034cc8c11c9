package sync

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// Meta is the frontmatter a synced document carries. PageID links the file
// to its remote page; Custom keeps any fields this module does not use so a
// round trip never drops them.
type Meta struct {
	PageID   string         `yaml:"confluence_page,omitempty"`
	SpaceKey string         `yaml:"space,omitempty"`
	Title    string         `yaml:"title,omitempty"`
	ParentID string         `yaml:"parent,omitempty"`
	Custom   map[string]any `yaml:",inline"`
}

// Document is a parsed local markdown file.
type Document struct {
	Path string
	Meta Meta
	Body string
}

// ParseDocument splits frontmatter from the markdown body. Files without
// frontmatter parse as an empty Meta.
func ParseDocument(path string, source []byte) (Document, error) {
	var meta Meta
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return Document{}, fmt.Errorf("sync: parse frontmatter of %s: %w", path, err)
	}
	return Document{
		Path: path,
		Meta: meta,
		Body: string(body),
	}, nil
}

// RenderDocument serializes a document back to file bytes with a YAML
// frontmatter block.
func RenderDocument(doc Document) ([]byte, error) {
	fields, err := yaml.Marshal(metaMap(doc.Meta))
	if err != nil {
		return nil, fmt.Errorf("sync: render frontmatter of %s: %w", doc.Path, err)
	}
	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(fields)
	buf.WriteString("---\n\n")
	buf.WriteString(strings.TrimLeft(doc.Body, "\n"))
	if !strings.HasSuffix(buf.String(), "\n") {
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

// metaMap flattens Meta into one map so custom fields and known fields
// serialize as a single block. yaml inline handles this on parse but not
// reliably on marshal when Custom is nil.
func metaMap(meta Meta) map[string]any {
	fields := make(map[string]any, len(meta.Custom)+4)
	for key, value := range meta.Custom {
		fields[key] = value
	}
	if meta.PageID != "" {
		fields["confluence_page"] = meta.PageID
	}
	if meta.SpaceKey != "" {
		fields["space"] = meta.SpaceKey
	}
	if meta.Title != "" {
		fields["title"] = meta.Title
	}
	if meta.ParentID != "" {
		fields["parent"] = meta.ParentID
	}
	return fields
}

// ContentHash fingerprints file bytes for change detection.
func ContentHash(source []byte) string {
	sum := sha256.Sum256(source)
	return hex.EncodeToString(sum[:])
}

// FindDocuments walks filesystem for files matching pattern, returning
// slash-separated paths sorted for deterministic processing. A pattern
// without a separator matches against base names only.
func FindDocuments(filesystem fs.FS, pattern string, recursive bool) ([]string, error) {
	if strings.TrimSpace(pattern) == "" {
		pattern = "*.md"
	}
	var paths []string
	err := fs.WalkDir(filesystem, ".", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if !recursive && path != "." {
				return fs.SkipDir
			}
			return nil
		}
		target := path
		if !strings.Contains(pattern, "/") {
			target = filepath.Base(path)
		}
		match, matchErr := filepath.Match(pattern, target)
		if matchErr != nil {
			return matchErr
		}
		if match {
			paths = append(paths, filepath.ToSlash(path))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("sync: scan documents: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}
