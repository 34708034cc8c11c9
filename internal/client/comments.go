package client

import (
	"context"
	"net/http"
	"strconv"
)

// Comment is a page comment with its storage format body.
type Comment struct {
	ID      string
	Author  string
	Created string
	Body    string
}

type commentEnvelope struct {
	ID   string `json:"id"`
	Body struct {
		Storage struct {
			Value string `json:"value"`
		} `json:"storage"`
	} `json:"body"`
	History struct {
		CreatedBy struct {
			DisplayName string `json:"displayName"`
		} `json:"createdBy"`
		CreatedDate string `json:"createdDate"`
	} `json:"history"`
}

func (e commentEnvelope) toComment() Comment {
	author := e.History.CreatedBy.DisplayName
	if author == "" {
		author = "Unknown"
	}
	return Comment{
		ID:      e.ID,
		Author:  author,
		Created: e.History.CreatedDate,
		Body:    e.Body.Storage.Value,
	}
}

// Comments lists comments on a page, returning the page of results plus the
// total count reported by the server. Limit defaults to 25.
func (c *Client) Comments(ctx context.Context, pageID string, limit, start int) ([]Comment, int, error) {
	if limit <= 0 {
		limit = 25
	}
	if start < 0 {
		start = 0
	}
	endpoint, err := c.routes.endpoint(routeGroupAPI, routeComments,
		map[string]any{"id": pageID},
		map[string]string{
			"expand": "body.storage,version,history",
			"limit":  strconv.Itoa(limit),
			"start":  strconv.Itoa(start),
		})
	if err != nil {
		return nil, 0, err
	}
	var payload struct {
		Results []commentEnvelope `json:"results"`
		Size    int               `json:"size"`
	}
	if err := c.requestJSON(ctx, http.MethodGet, endpoint, nil, &payload); err != nil {
		return nil, 0, err
	}
	comments := make([]Comment, 0, len(payload.Results))
	for _, envelope := range payload.Results {
		comments = append(comments, envelope.toComment())
	}
	return comments, payload.Size, nil
}

// AddComment posts a comment, already in storage format, to a page.
func (c *Client) AddComment(ctx context.Context, pageID, body string) (Comment, error) {
	payload := map[string]any{
		"type": "comment",
		"container": map[string]string{
			"id":   pageID,
			"type": "page",
		},
		"body": storageBody(body),
	}
	endpoint, err := c.routes.endpoint(routeGroupAPI, routeContent, nil, nil)
	if err != nil {
		return Comment{}, err
	}
	var envelope commentEnvelope
	if err := c.requestJSON(ctx, http.MethodPost, endpoint, payload, &envelope); err != nil {
		return Comment{}, err
	}
	comment := envelope.toComment()
	if comment.Body == "" {
		comment.Body = body
	}
	return comment, nil
}
