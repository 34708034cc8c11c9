package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
)

// Attachment describes a file attached to a page.
type Attachment struct {
	ID        string
	Title     string
	MediaType string
}

type attachmentEnvelope struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Metadata struct {
		MediaType string `json:"mediaType"`
	} `json:"metadata"`
}

func (e attachmentEnvelope) toAttachment() Attachment {
	return Attachment{ID: e.ID, Title: e.Title, MediaType: e.Metadata.MediaType}
}

// Attachments lists the files attached to a page.
func (c *Client) Attachments(ctx context.Context, pageID string) ([]Attachment, error) {
	endpoint, err := c.routes.endpoint(routeGroupAPI, routeAttachments, map[string]any{"id": pageID}, nil)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Results []attachmentEnvelope `json:"results"`
	}
	if err := c.requestJSON(ctx, http.MethodGet, endpoint, nil, &payload); err != nil {
		return nil, err
	}
	attachments := make([]Attachment, 0, len(payload.Results))
	for _, envelope := range payload.Results {
		attachments = append(attachments, envelope.toAttachment())
	}
	return attachments, nil
}

// UploadAttachment attaches the file at path to a page. When an attachment
// with the same filename already exists its data is replaced, producing a
// new attachment version instead of a duplicate.
func (c *Client) UploadAttachment(ctx context.Context, pageID, path string) (Attachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Attachment{}, fmt.Errorf("client: read attachment: %w", err)
	}
	filename := filepath.Base(path)

	existing, err := c.Attachments(ctx, pageID)
	if err != nil {
		return Attachment{}, err
	}
	var existingID string
	for _, attachment := range existing {
		if attachment.Title == filename {
			existingID = attachment.ID
			break
		}
	}

	body, contentType, err := attachmentForm(filename, data)
	if err != nil {
		return Attachment{}, err
	}

	var endpoint string
	if existingID != "" {
		endpoint, err = c.routes.endpoint(routeGroupAPI, routeAttachmentData,
			map[string]any{"id": pageID, "attachmentId": existingID}, nil)
	} else {
		endpoint, err = c.routes.endpoint(routeGroupAPI, routeAttachments,
			map[string]any{"id": pageID}, nil)
	}
	if err != nil {
		return Attachment{}, err
	}

	header := http.Header{}
	header.Set("Content-Type", contentType)
	header.Set("X-Atlassian-Token", "nocheck")

	status, respBody, err := c.do(ctx, http.MethodPost, endpoint, header, body)
	if err != nil {
		return Attachment{}, err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return Attachment{}, c.apiError(status, urlPath(endpoint), respBody)
	}

	uploaded := parseAttachmentResponse(respBody)
	if uploaded.Title == "" {
		uploaded.Title = filename
	}
	if uploaded.ID == "" {
		uploaded.ID = existingID
	}
	c.logger.Debug("attachment uploaded", "page_id", pageID, "filename", filename, "replaced", existingID != "")
	return uploaded, nil
}

// attachmentForm builds the multipart body Confluence expects, with the
// file under the "file" field and an explicit part content type.
func attachmentForm(filename string, data []byte) ([]byte, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", attachmentMediaType(filename))
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("client: build upload form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", fmt.Errorf("client: build upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("client: build upload form: %w", err)
	}
	return buf.Bytes(), writer.FormDataContentType(), nil
}

func attachmentMediaType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".svg":
		return "image/svg+xml"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// parseAttachmentResponse accepts both response shapes the API uses: a
// bare attachment for data updates and a results list for new uploads.
func parseAttachmentResponse(body []byte) Attachment {
	var listed struct {
		Results []attachmentEnvelope `json:"results"`
	}
	if err := json.Unmarshal(body, &listed); err == nil && len(listed.Results) > 0 {
		return listed.Results[0].toAttachment()
	}
	var single attachmentEnvelope
	if err := json.Unmarshal(body, &single); err == nil {
		return single.toAttachment()
	}
	return Attachment{}
}
