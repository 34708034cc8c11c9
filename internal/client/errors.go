package client

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBaseURL indicates the client was constructed without a usable
	// Confluence base URL.
	ErrBaseURL = errors.New("client: base url required")
	// ErrCredentials indicates the credential source was present but did not
	// yield both a username and a token or password.
	ErrCredentials = errors.New("client: credentials incomplete")
	// ErrAuth covers 401 and 403 responses from the REST API.
	ErrAuth = errors.New("client: authentication failed")
	// ErrNotFound covers 404 responses, typically a page id that does not
	// exist or is not visible to the authenticated user.
	ErrNotFound = errors.New("client: content not found")
	// ErrConflict covers 409 responses from concurrent version bumps.
	ErrConflict = errors.New("client: version conflict")
	// ErrRateLimited covers 429 responses after retries are exhausted.
	ErrRateLimited = errors.New("client: rate limited")
	// ErrServer covers 5xx responses after retries are exhausted.
	ErrServer = errors.New("client: server error")
	// ErrUnexpectedStatus covers any remaining non-2xx response.
	ErrUnexpectedStatus = errors.New("client: unexpected status")
	// ErrPageReference indicates a page reference (id, pageId URL, or title
	// URL) that could not be resolved to a page id.
	ErrPageReference = errors.New("client: page reference not resolved")
)

// Machine readable codes carried by APIError for callers that present
// failures to users or logs.
const (
	CodeAuthFailed       = "AUTH_FAILED"
	CodePageNotFound     = "PAGE_NOT_FOUND"
	CodeVersionConflict  = "VERSION_CONFLICT"
	CodeRateLimited      = "RATE_LIMITED"
	CodeServerError      = "SERVER_ERROR"
	CodeUnexpectedStatus = "UNEXPECTED_STATUS"
)

// APIError captures a non-2xx REST response. Message holds the server
// supplied explanation when the body carried one.
type APIError struct {
	Status   int
	Code     string
	Endpoint string
	Message  string
}

func (e *APIError) Error() string {
	if e == nil {
		return ErrUnexpectedStatus.Error()
	}
	base := e.sentinel().Error()
	detail := fmt.Sprintf("status %d", e.Status)
	if e.Endpoint != "" {
		detail = fmt.Sprintf("%s on %s", detail, e.Endpoint)
	}
	if msg := strings.TrimSpace(e.Message); msg != "" {
		detail = fmt.Sprintf("%s: %s", detail, msg)
	}
	return fmt.Sprintf("%s (%s)", base, detail)
}

func (e *APIError) Unwrap() error {
	if e == nil {
		return ErrUnexpectedStatus
	}
	return e.sentinel()
}

func (e *APIError) sentinel() error {
	switch {
	case e.Status == 401 || e.Status == 403:
		return ErrAuth
	case e.Status == 404:
		return ErrNotFound
	case e.Status == 409:
		return ErrConflict
	case e.Status == 429:
		return ErrRateLimited
	case e.Status >= 500:
		return ErrServer
	default:
		return ErrUnexpectedStatus
	}
}

func statusCode(status int) string {
	switch {
	case status == 401 || status == 403:
		return CodeAuthFailed
	case status == 404:
		return CodePageNotFound
	case status == 409:
		return CodeVersionConflict
	case status == 429:
		return CodeRateLimited
	case status >= 500:
		return CodeServerError
	default:
		return CodeUnexpectedStatus
	}
}

// CredentialsError reports what made a credential source unusable without
// echoing any secret material.
type CredentialsError struct {
	Source string
	Reason string
}

func (e *CredentialsError) Error() string {
	if e == nil {
		return ErrCredentials.Error()
	}
	reason := strings.TrimSpace(e.Reason)
	if reason == "" {
		reason = "missing username or token"
	}
	if e.Source != "" {
		return fmt.Sprintf("%s: %s in %s", ErrCredentials.Error(), reason, e.Source)
	}
	return fmt.Sprintf("%s: %s", ErrCredentials.Error(), reason)
}

func (e *CredentialsError) Unwrap() error {
	return ErrCredentials
}

// ReferenceError names the page reference that failed to resolve so the
// caller can surface exactly what was looked up.
type ReferenceError struct {
	Reference string
	Detail    string
}

func (e *ReferenceError) Error() string {
	if e == nil {
		return ErrPageReference.Error()
	}
	detail := strings.TrimSpace(e.Detail)
	if detail == "" {
		detail = "no matching page"
	}
	return fmt.Sprintf("%s: %q: %s", ErrPageReference.Error(), e.Reference, detail)
}

func (e *ReferenceError) Unwrap() error {
	return ErrPageReference
}
