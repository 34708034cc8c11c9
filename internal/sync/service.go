package sync

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-confluence/internal/client"
	"github.com/goliatone/go-confluence/internal/logging"
	"github.com/goliatone/go-confluence/internal/markup"
	"github.com/goliatone/go-confluence/internal/storage"
	"github.com/goliatone/go-confluence/pkg/interfaces"
)

// Config wires a Service.
type Config struct {
	Client     *client.Client
	Resolver   *client.Resolver
	Store      *Store
	ContentDir string
	SpaceKey   string
	Pattern    string
	Recursive  bool
	Macros     storage.MacroNames
	Logger     interfaces.Logger
}

// Service keeps a directory of markdown documents and their Confluence
// pages in step. Documents carry their page linkage in frontmatter; the
// store remembers what was last synced so drift on either side is
// detectable before anything gets overwritten.
type Service struct {
	client        *client.Client
	resolver      *client.Resolver
	store         *Store
	dir           string
	space         string
	pattern       string
	recursive     bool
	parser        *markup.Parser
	renderer      *storage.Renderer
	storageParser *storage.Parser
	logger        interfaces.Logger
}

var _ interfaces.DocumentSyncer = (*Service)(nil)

// NewService builds a Service from cfg.
func NewService(cfg Config) (*Service, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("sync: client is required")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("sync: store is required")
	}
	dir := strings.TrimSpace(cfg.ContentDir)
	if dir == "" {
		return nil, fmt.Errorf("sync: content directory is required")
	}
	resolver := cfg.Resolver
	if resolver == nil {
		resolver = client.NewResolver(cfg.Client, 0)
	}
	pattern := strings.TrimSpace(cfg.Pattern)
	if pattern == "" {
		pattern = "*.md"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Service{
		client:        cfg.Client,
		resolver:      resolver,
		store:         cfg.Store,
		dir:           dir,
		space:         strings.TrimSpace(cfg.SpaceKey),
		pattern:       pattern,
		recursive:     cfg.Recursive,
		parser:        markup.NewParser(),
		renderer:      storage.NewRenderer(cfg.Macros),
		storageParser: storage.NewParser(cfg.Macros),
		logger:        logger,
	}, nil
}

// Push converts one document to storage format and writes it to its page.
// A document without a page id creates a page and gets the new id written
// back into its frontmatter. Tracked documents whose remote moved since the
// last sync fail with ErrConflict unless force is set.
func (s *Service) Push(ctx context.Context, path string, force bool) (interfaces.PushResult, error) {
	rel := filepath.ToSlash(path)
	raw, err := os.ReadFile(s.abs(rel))
	if err != nil {
		return interfaces.PushResult{}, fmt.Errorf("sync: read %s: %w", rel, err)
	}
	doc, err := ParseDocument(rel, raw)
	if err != nil {
		return interfaces.PushResult{}, err
	}

	nodes, err := s.parser.Parse(doc.Body)
	if err != nil {
		return interfaces.PushResult{}, fmt.Errorf("sync: convert %s: %w", rel, err)
	}
	body, err := s.renderer.Render(nodes)
	if err != nil {
		return interfaces.PushResult{}, fmt.Errorf("sync: convert %s: %w", rel, err)
	}

	if doc.Meta.PageID == "" {
		return s.pushCreate(ctx, doc, body)
	}
	return s.pushUpdate(ctx, doc, raw, body, force)
}

func (s *Service) pushCreate(ctx context.Context, doc Document, body string) (interfaces.PushResult, error) {
	var missing []string
	title := strings.TrimSpace(doc.Meta.Title)
	if title == "" {
		missing = append(missing, "title")
	}
	space := strings.TrimSpace(doc.Meta.SpaceKey)
	if space == "" {
		space = s.space
	}
	if space == "" {
		missing = append(missing, "space")
	}
	if len(missing) > 0 {
		return interfaces.PushResult{}, &MetadataError{Path: doc.Path, Fields: missing}
	}

	page, err := s.client.CreatePage(ctx, client.CreatePageRequest{
		SpaceKey: space,
		Title:    title,
		ParentID: doc.Meta.ParentID,
		Body:     body,
	})
	if err != nil {
		return interfaces.PushResult{}, err
	}

	// Link the file to its new page so the next push updates it.
	doc.Meta.PageID = page.ID
	doc.Meta.SpaceKey = space
	updated, err := RenderDocument(doc)
	if err != nil {
		return interfaces.PushResult{}, err
	}
	if err := os.WriteFile(s.abs(doc.Path), updated, 0o644); err != nil {
		return interfaces.PushResult{}, fmt.Errorf("sync: write back %s: %w", doc.Path, err)
	}

	if _, err := s.store.Save(ctx, &Record{
		Path:          doc.Path,
		PageID:        page.ID,
		SpaceKey:      space,
		Title:         title,
		RemoteVersion: page.Version,
		ContentHash:   ContentHash(updated),
	}); err != nil {
		return interfaces.PushResult{}, err
	}

	logging.WithPageContext(s.logger, page.ID, space, "push").Info("page created", "path", doc.Path)
	return interfaces.PushResult{
		Path:    doc.Path,
		PageID:  page.ID,
		Title:   title,
		Version: page.Version,
		Created: true,
		WebURL:  page.WebURL,
	}, nil
}

func (s *Service) pushUpdate(ctx context.Context, doc Document, raw []byte, body string, force bool) (interfaces.PushResult, error) {
	record, err := s.store.GetByPath(ctx, doc.Path)
	tracked := err == nil
	if err != nil && !errors.Is(err, ErrRecordNotFound) {
		return interfaces.PushResult{}, err
	}

	// Nothing to send when the file still matches the last push.
	if tracked && !force && record.ContentHash == ContentHash(raw) {
		logging.WithPageContext(s.logger, record.PageID, record.SpaceKey, "push").Info("page unchanged", "path", doc.Path)
		return interfaces.PushResult{
			Path:    doc.Path,
			PageID:  record.PageID,
			Title:   record.Title,
			Version: record.RemoteVersion,
		}, nil
	}

	if tracked && !force {
		current, err := s.client.GetPage(ctx, doc.Meta.PageID)
		if err != nil {
			return interfaces.PushResult{}, err
		}
		if current.Version != record.RemoteVersion {
			return interfaces.PushResult{}, &ConflictError{
				Path:          doc.Path,
				PageID:        doc.Meta.PageID,
				RecordVersion: record.RemoteVersion,
				RemoteVersion: current.Version,
			}
		}
	}

	page, err := s.client.UpdatePage(ctx, doc.Meta.PageID, doc.Meta.Title, body)
	if err != nil {
		return interfaces.PushResult{}, err
	}

	if _, err := s.store.Save(ctx, &Record{
		Path:          doc.Path,
		PageID:        page.ID,
		SpaceKey:      page.SpaceKey,
		Title:         page.Title,
		RemoteVersion: page.Version,
		ContentHash:   ContentHash(raw),
	}); err != nil {
		return interfaces.PushResult{}, err
	}

	logging.WithPageContext(s.logger, page.ID, page.SpaceKey, "push").Info("page updated", "path", doc.Path, "version", page.Version)
	return interfaces.PushResult{
		Path:    doc.Path,
		PageID:  page.ID,
		Title:   page.Title,
		Version: page.Version,
		WebURL:  page.WebURL,
	}, nil
}

// PushAll pushes every document matching the configured pattern. Failures
// are collected per file so one bad document does not stop the rest.
func (s *Service) PushAll(ctx context.Context, force bool) ([]interfaces.PushResult, error) {
	paths, err := FindDocuments(os.DirFS(s.dir), s.pattern, s.recursive)
	if err != nil {
		return nil, err
	}
	var (
		results []interfaces.PushResult
		errs    []error
	)
	for _, path := range paths {
		result, err := s.Push(ctx, path, force)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		results = append(results, result)
	}
	return results, errors.Join(errs...)
}

// Pull fetches a page, converts it to markdown, and writes it to path. An
// empty path derives the filename from the page title.
func (s *Service) Pull(ctx context.Context, reference, path string) (interfaces.PullResult, error) {
	pageID, err := s.resolver.Resolve(ctx, reference)
	if err != nil {
		return interfaces.PullResult{}, err
	}
	page, err := s.client.GetPage(ctx, pageID)
	if err != nil {
		return interfaces.PullResult{}, err
	}

	nodes, err := s.storageParser.Parse(page.Body)
	if err != nil {
		return interfaces.PullResult{}, fmt.Errorf("sync: convert page %s: %w", pageID, err)
	}
	markdown := storage.ToMarkdown(nodes)

	rel := filepath.ToSlash(strings.TrimSpace(path))
	if rel == "" {
		rel = documentFilename(page.Title)
	}

	data, err := RenderDocument(Document{
		Path: rel,
		Meta: Meta{PageID: page.ID, SpaceKey: page.SpaceKey, Title: page.Title},
		Body: markdown,
	})
	if err != nil {
		return interfaces.PullResult{}, err
	}
	target := s.abs(rel)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return interfaces.PullResult{}, fmt.Errorf("sync: create directory for %s: %w", rel, err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return interfaces.PullResult{}, fmt.Errorf("sync: write %s: %w", rel, err)
	}

	if _, err := s.store.Save(ctx, &Record{
		Path:          rel,
		PageID:        page.ID,
		SpaceKey:      page.SpaceKey,
		Title:         page.Title,
		RemoteVersion: page.Version,
		ContentHash:   ContentHash(data),
	}); err != nil {
		return interfaces.PullResult{}, err
	}

	logging.WithPageContext(s.logger, page.ID, page.SpaceKey, "pull").Info("page pulled", "path", rel, "version", page.Version)
	return interfaces.PullResult{
		Path:    rel,
		PageID:  page.ID,
		Title:   page.Title,
		Version: page.Version,
	}, nil
}

// Status compares one path against its sync record and remote page.
func (s *Service) Status(ctx context.Context, path string) (interfaces.SyncStatus, error) {
	rel := filepath.ToSlash(path)
	record, err := s.store.GetByPath(ctx, rel)
	if errors.Is(err, ErrRecordNotFound) {
		return interfaces.SyncStatus{Path: rel, State: StatusUntracked}, nil
	}
	if err != nil {
		return interfaces.SyncStatus{}, err
	}

	status := interfaces.SyncStatus{
		Path:          rel,
		PageID:        record.PageID,
		RecordHash:    record.ContentHash,
		RecordVersion: record.RemoteVersion,
	}

	raw, err := os.ReadFile(s.abs(rel))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			status.State = StatusMissing
			return status, nil
		}
		return interfaces.SyncStatus{}, fmt.Errorf("sync: read %s: %w", rel, err)
	}
	status.LocalHash = ContentHash(raw)

	page, err := s.client.GetPage(ctx, record.PageID)
	if err != nil {
		return interfaces.SyncStatus{}, err
	}
	status.RemoteVersion = page.Version

	localChanged := status.LocalHash != record.ContentHash
	remoteChanged := page.Version != record.RemoteVersion
	switch {
	case localChanged && remoteChanged:
		status.State = StatusConflict
	case localChanged:
		status.State = StatusLocalModified
	case remoteChanged:
		status.State = StatusRemoteModified
	default:
		status.State = StatusInSync
	}
	return status, nil
}

// StatusAll reports every tracked record plus untracked files matching the
// configured pattern.
func (s *Service) StatusAll(ctx context.Context) ([]interfaces.SyncStatus, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	tracked := make(map[string]bool, len(records))
	var statuses []interfaces.SyncStatus
	for _, record := range records {
		tracked[record.Path] = true
		status, err := s.Status(ctx, record.Path)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}

	paths, err := FindDocuments(os.DirFS(s.dir), s.pattern, s.recursive)
	if err != nil {
		return nil, err
	}
	for _, path := range paths {
		if tracked[path] {
			continue
		}
		statuses = append(statuses, interfaces.SyncStatus{Path: path, State: StatusUntracked})
	}
	return statuses, nil
}

func (s *Service) abs(rel string) string {
	return filepath.Join(s.dir, filepath.FromSlash(rel))
}

// documentFilename derives a markdown filename from a page title.
func documentFilename(title string) string {
	normalized, err := slug.Normalize(title)
	if err != nil || normalized == "" {
		normalized = "untitled"
	}
	return normalized + ".md"
}
