package client

import (
	"fmt"

	urlkit "github.com/goliatone/go-urlkit"
)

// Route groups and names understood by the client. A custom *urlkit.Config
// can relocate any endpoint, for instance behind a context path, as long as
// it keeps these groups and route names.
const (
	routeGroupAPI  = "api"
	routeGroupSite = "site"

	routeContent        = "content"
	routePage           = "page"
	routeChildren       = "children"
	routeComments       = "comments"
	routeAttachments    = "attachments"
	routeAttachmentData = "attachment-data"
	routeSearch         = "search"
	routeSpaces         = "spaces"
	routeDownload       = "download"
	routeViewPage       = "view-page"
)

// DefaultRoutes describes the stock Confluence REST layout rooted at
// baseURL.
func DefaultRoutes(baseURL string) *urlkit.Config {
	return &urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    routeGroupAPI,
				BaseURL: baseURL,
				Paths: map[string]string{
					routeContent:        "/rest/api/content",
					routePage:           "/rest/api/content/:id",
					routeChildren:       "/rest/api/content/:id/child/page",
					routeComments:       "/rest/api/content/:id/child/comment",
					routeAttachments:    "/rest/api/content/:id/child/attachment",
					routeAttachmentData: "/rest/api/content/:id/child/attachment/:attachmentId/data",
					routeSearch:         "/rest/api/content/search",
					routeSpaces:         "/rest/api/space",
				},
			},
			{
				Name:    routeGroupSite,
				BaseURL: baseURL,
				Paths: map[string]string{
					routeDownload: "/download/attachments/:id/:filename",
					routeViewPage: "/pages/viewpage.action",
				},
			},
		},
	}
}

// router wraps a urlkit route manager and stamps the os_authType query
// parameter every REST request carries.
type router struct {
	manager  *urlkit.RouteManager
	authType string
}

func newRouter(cfg *urlkit.Config, baseURL string) *router {
	if cfg == nil {
		cfg = DefaultRoutes(baseURL)
	}
	return &router{
		manager:  urlkit.NewRouteManager(cfg),
		authType: "basic",
	}
}

func (r *router) endpoint(group, route string, params map[string]any, query map[string]string) (string, error) {
	grp, err := lookupGroup(r.manager, group)
	if err != nil {
		return "", err
	}
	builder, err := safeBuilder(grp, route)
	if err != nil {
		return "", err
	}
	for key, val := range params {
		builder.WithParam(key, val)
	}
	for key, val := range query {
		builder.WithQuery(key, val)
	}
	if r.authType != "" && group == routeGroupAPI {
		builder.WithQuery("os_authType", r.authType)
	}
	url, err := builder.Build()
	if err != nil {
		return "", fmt.Errorf("client: build %s.%s url: %w", group, route, err)
	}
	return url, nil
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	if manager == nil {
		return nil, fmt.Errorf("client: route manager not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			group = nil
			err = fmt.Errorf("client: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, nil
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	if group == nil {
		return nil, fmt.Errorf("client: route group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			builder = nil
			err = fmt.Errorf("client: route %q not found: %v", route, rec)
		}
	}()
	builder = group.Builder(route)
	return builder, nil
}
