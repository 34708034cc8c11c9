package client

import (
	"regexp"
	"strings"
)

// Image sources reported by ExtractImages.
const (
	ImageSourceAttachment = "attachment"
	ImageSourceExternal   = "external"
)

// ImageRef points at an image a page body references, with a fetchable URL.
type ImageRef struct {
	Filename string
	URL      string
	Source   string
}

var (
	attachmentImagePattern = regexp.MustCompile(`<ri:attachment ri:filename="([^"]+)"`)
	externalImagePattern   = regexp.MustCompile(`<ri:url ri:value="([^"]+)"`)
)

var externalImageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".svg"}

// ExtractImages scans a storage format body for image references. Attached
// images get a download URL on this instance; external references are kept
// when they look like image URLs.
func (c *Client) ExtractImages(pageID, body string) []ImageRef {
	var refs []ImageRef
	for _, m := range attachmentImagePattern.FindAllStringSubmatch(body, -1) {
		filename := m[1]
		url, err := c.routes.endpoint(routeGroupSite, routeDownload,
			map[string]any{"id": pageID, "filename": filename}, nil)
		if err != nil {
			url = c.baseURL + "/download/attachments/" + pageID + "/" + filename
		}
		refs = append(refs, ImageRef{Filename: filename, URL: url, Source: ImageSourceAttachment})
	}
	for _, m := range externalImagePattern.FindAllStringSubmatch(body, -1) {
		url := m[1]
		if !looksLikeImageURL(url) {
			continue
		}
		refs = append(refs, ImageRef{Filename: lastURLSegment(url), URL: url, Source: ImageSourceExternal})
	}
	return refs
}

func looksLikeImageURL(url string) bool {
	lowered := strings.ToLower(url)
	for _, ext := range externalImageExtensions {
		if strings.Contains(lowered, ext) {
			return true
		}
	}
	return false
}

func lastURLSegment(url string) string {
	if idx := strings.IndexAny(url, "?#"); idx >= 0 {
		url = url[:idx]
	}
	if idx := strings.LastIndex(url, "/"); idx >= 0 {
		return url[idx+1:]
	}
	return url
}
