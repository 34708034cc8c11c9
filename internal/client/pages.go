package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Page is a Confluence page with its storage format body.
type Page struct {
	ID       string
	Title    string
	SpaceKey string
	Version  int
	Body     string
	WebURL   string
}

// PageSummary identifies a page without its body, as returned by child and
// search listings.
type PageSummary struct {
	ID    string
	Title string
}

// Space is a Confluence space the authenticated user can see.
type Space struct {
	Key  string
	Name string
	Type string
}

// SearchResult is one CQL search hit.
type SearchResult struct {
	ID       string
	Title    string
	SpaceKey string
	WebURL   string
}

// CreatePageRequest describes a new page. ParentID is optional; when set
// the page is created underneath that ancestor.
type CreatePageRequest struct {
	SpaceKey string
	Title    string
	ParentID string
	Body     string
}

// SearchOptions shape a CQL title search. Limit defaults to 10.
type SearchOptions struct {
	Query    string
	SpaceKey string
	Limit    int
}

type contentEnvelope struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type"`
	Space struct {
		Key string `json:"key"`
	} `json:"space"`
	Version struct {
		Number int `json:"number"`
	} `json:"version"`
	Body struct {
		Storage struct {
			Value string `json:"value"`
		} `json:"storage"`
	} `json:"body"`
	Links struct {
		WebUI string `json:"webui"`
	} `json:"_links"`
}

func (e contentEnvelope) toPage(baseURL string) Page {
	page := Page{
		ID:       e.ID,
		Title:    e.Title,
		SpaceKey: e.Space.Key,
		Version:  e.Version.Number,
		Body:     e.Body.Storage.Value,
	}
	if e.Links.WebUI != "" {
		page.WebURL = baseURL + e.Links.WebUI
	}
	return page
}

func storageBody(value string) map[string]any {
	return map[string]any{
		"storage": map[string]string{
			"value":          value,
			"representation": "storage",
		},
	}
}

// GetPage fetches a page by id with its storage body, space, and version.
func (c *Client) GetPage(ctx context.Context, pageID string) (Page, error) {
	endpoint, err := c.routes.endpoint(routeGroupAPI, routePage,
		map[string]any{"id": pageID},
		map[string]string{"expand": "body.storage,space,version"})
	if err != nil {
		return Page{}, err
	}
	var envelope contentEnvelope
	if err := c.requestJSON(ctx, http.MethodGet, endpoint, nil, &envelope); err != nil {
		return Page{}, err
	}
	return envelope.toPage(c.baseURL), nil
}

// CreatePage creates a page and returns it with the assigned id.
func (c *Client) CreatePage(ctx context.Context, req CreatePageRequest) (Page, error) {
	if strings.TrimSpace(req.Title) == "" {
		return Page{}, fmt.Errorf("client: create page: title required")
	}
	if strings.TrimSpace(req.SpaceKey) == "" {
		return Page{}, fmt.Errorf("client: create page: space key required")
	}
	payload := map[string]any{
		"type":  "page",
		"title": req.Title,
		"space": map[string]string{"key": req.SpaceKey},
		"body":  storageBody(req.Body),
	}
	if req.ParentID != "" {
		payload["ancestors"] = []map[string]string{{"id": req.ParentID}}
	}
	endpoint, err := c.routes.endpoint(routeGroupAPI, routeContent, nil, nil)
	if err != nil {
		return Page{}, err
	}
	var envelope contentEnvelope
	if err := c.requestJSON(ctx, http.MethodPost, endpoint, payload, &envelope); err != nil {
		return Page{}, err
	}
	return envelope.toPage(c.baseURL), nil
}

// UpdatePage replaces a page body, bumping the version read from the
// server by one so a concurrent edit surfaces as ErrConflict instead of
// being overwritten. An empty title keeps the current one.
func (c *Client) UpdatePage(ctx context.Context, pageID, title, body string) (Page, error) {
	current, err := c.GetPage(ctx, pageID)
	if err != nil {
		return Page{}, err
	}
	if strings.TrimSpace(title) == "" {
		title = current.Title
	}
	payload := map[string]any{
		"id":      pageID,
		"type":    "page",
		"title":   title,
		"version": map[string]int{"number": current.Version + 1},
		"body":    storageBody(body),
	}
	endpoint, err := c.routes.endpoint(routeGroupAPI, routePage, map[string]any{"id": pageID}, nil)
	if err != nil {
		return Page{}, err
	}
	var envelope contentEnvelope
	if err := c.requestJSON(ctx, http.MethodPut, endpoint, payload, &envelope); err != nil {
		return Page{}, err
	}
	page := envelope.toPage(c.baseURL)
	c.logger.Debug("page updated", "page_id", pageID, "version", page.Version)
	return page, nil
}

// DeletePage removes a page. Anything but a 204 is treated as failure.
func (c *Client) DeletePage(ctx context.Context, pageID string) error {
	endpoint, err := c.routes.endpoint(routeGroupAPI, routePage, map[string]any{"id": pageID}, nil)
	if err != nil {
		return err
	}
	status, body, err := c.do(ctx, http.MethodDelete, endpoint, nil, nil)
	if err != nil {
		return err
	}
	if status != http.StatusNoContent {
		return c.apiError(status, urlPath(endpoint), body)
	}
	return nil
}

// MovePage reparents a page under newParentID, preserving title and
// content. The returned page carries the viewpage URL at its new home.
func (c *Client) MovePage(ctx context.Context, pageID, newParentID string) (Page, error) {
	endpoint, err := c.routes.endpoint(routeGroupAPI, routePage,
		map[string]any{"id": pageID},
		map[string]string{"expand": "version,space"})
	if err != nil {
		return Page{}, err
	}
	var current contentEnvelope
	if err := c.requestJSON(ctx, http.MethodGet, endpoint, nil, &current); err != nil {
		return Page{}, err
	}

	payload := map[string]any{
		"type":      "page",
		"title":     current.Title,
		"version":   map[string]int{"number": current.Version.Number + 1},
		"ancestors": []map[string]string{{"id": newParentID}},
	}
	putEndpoint, err := c.routes.endpoint(routeGroupAPI, routePage, map[string]any{"id": pageID}, nil)
	if err != nil {
		return Page{}, err
	}
	var envelope contentEnvelope
	if err := c.requestJSON(ctx, http.MethodPut, putEndpoint, payload, &envelope); err != nil {
		return Page{}, err
	}

	page := envelope.toPage(c.baseURL)
	if viewURL, err := c.routes.endpoint(routeGroupSite, routeViewPage, nil, map[string]string{"pageId": pageID}); err == nil {
		page.WebURL = viewURL
	}
	return page, nil
}

// FindPage looks up a page id by space key and exact title.
func (c *Client) FindPage(ctx context.Context, spaceKey, title string) (string, error) {
	endpoint, err := c.routes.endpoint(routeGroupAPI, routeContent, nil, map[string]string{
		"spaceKey": spaceKey,
		"title":    title,
		"limit":    "1",
	})
	if err != nil {
		return "", err
	}
	var payload struct {
		Results []struct {
			ID string `json:"id"`
		} `json:"results"`
	}
	if err := c.requestJSON(ctx, http.MethodGet, endpoint, nil, &payload); err != nil {
		return "", err
	}
	if len(payload.Results) == 0 {
		return "", &ReferenceError{Reference: spaceKey + "/" + title, Detail: "no page with that title"}
	}
	return payload.Results[0].ID, nil
}

// Search runs a CQL title search, optionally scoped to a space.
func (c *Client) Search(ctx context.Context, opts SearchOptions) ([]SearchResult, error) {
	query := strings.ReplaceAll(opts.Query, `"`, `\"`)
	cql := fmt.Sprintf(`type=page AND title~"%s"`, query)
	if opts.SpaceKey != "" {
		cql += fmt.Sprintf(` AND space="%s"`, opts.SpaceKey)
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 10
	}
	endpoint, err := c.routes.endpoint(routeGroupAPI, routeSearch, nil, map[string]string{
		"cql":   cql,
		"limit": strconv.Itoa(limit),
	})
	if err != nil {
		return nil, err
	}
	var payload struct {
		Results []contentEnvelope `json:"results"`
	}
	if err := c.requestJSON(ctx, http.MethodGet, endpoint, nil, &payload); err != nil {
		return nil, err
	}
	results := make([]SearchResult, 0, len(payload.Results))
	for _, envelope := range payload.Results {
		result := SearchResult{
			ID:       envelope.ID,
			Title:    envelope.Title,
			SpaceKey: envelope.Space.Key,
		}
		if envelope.Links.WebUI != "" {
			result.WebURL = c.baseURL + envelope.Links.WebUI
		}
		results = append(results, result)
	}
	return results, nil
}

// Children lists the direct child pages of a page.
func (c *Client) Children(ctx context.Context, pageID string) ([]PageSummary, error) {
	endpoint, err := c.routes.endpoint(routeGroupAPI, routeChildren,
		map[string]any{"id": pageID},
		map[string]string{"limit": "100"})
	if err != nil {
		return nil, err
	}
	var payload struct {
		Results []struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"results"`
	}
	if err := c.requestJSON(ctx, http.MethodGet, endpoint, nil, &payload); err != nil {
		return nil, err
	}
	children := make([]PageSummary, 0, len(payload.Results))
	for _, result := range payload.Results {
		children = append(children, PageSummary{ID: result.ID, Title: result.Title})
	}
	return children, nil
}

// Spaces lists the spaces visible to the authenticated user.
func (c *Client) Spaces(ctx context.Context) ([]Space, error) {
	endpoint, err := c.routes.endpoint(routeGroupAPI, routeSpaces, nil, map[string]string{"limit": "50"})
	if err != nil {
		return nil, err
	}
	var payload struct {
		Results []struct {
			Key  string `json:"key"`
			Name string `json:"name"`
			Type string `json:"type"`
		} `json:"results"`
	}
	if err := c.requestJSON(ctx, http.MethodGet, endpoint, nil, &payload); err != nil {
		return nil, err
	}
	spaces := make([]Space, 0, len(payload.Results))
	for _, result := range payload.Results {
		spaces = append(spaces, Space{Key: result.Key, Name: result.Name, Type: result.Type})
	}
	return spaces, nil
}
