// Package client re-exports the Confluence REST client.
package client

import (
	internalclient "github.com/goliatone/go-confluence/internal/client"
)

// Re-exported errors from the internal client package.
var (
	ErrBaseURL          = internalclient.ErrBaseURL
	ErrCredentials      = internalclient.ErrCredentials
	ErrAuth             = internalclient.ErrAuth
	ErrNotFound         = internalclient.ErrNotFound
	ErrConflict         = internalclient.ErrConflict
	ErrRateLimited      = internalclient.ErrRateLimited
	ErrServer           = internalclient.ErrServer
	ErrUnexpectedStatus = internalclient.ErrUnexpectedStatus
	ErrPageReference    = internalclient.ErrPageReference
)

// Machine readable codes carried by APIError.
const (
	CodeAuthFailed       = internalclient.CodeAuthFailed
	CodePageNotFound     = internalclient.CodePageNotFound
	CodeVersionConflict  = internalclient.CodeVersionConflict
	CodeRateLimited      = internalclient.CodeRateLimited
	CodeServerError      = internalclient.CodeServerError
	CodeUnexpectedStatus = internalclient.CodeUnexpectedStatus
)

// Image reference sources reported by ExtractImages.
const (
	ImageSourceAttachment = internalclient.ImageSourceAttachment
	ImageSourceExternal   = internalclient.ImageSourceExternal
)

// DefaultCredentialsFile is the conventional credentials filename looked up
// in the home directory.
const DefaultCredentialsFile = internalclient.DefaultCredentialsFile

// Environment variables that override values from the credentials file.
const (
	EnvBaseURL  = internalclient.EnvBaseURL
	EnvUsername = internalclient.EnvUsername
	EnvAPIToken = internalclient.EnvAPIToken
)

// Re-exported types from the internal client package.
type (
	Config            = internalclient.Config
	Client            = internalclient.Client
	Credentials       = internalclient.Credentials
	Resolver          = internalclient.Resolver
	Page              = internalclient.Page
	PageSummary       = internalclient.PageSummary
	Space             = internalclient.Space
	CreatePageRequest = internalclient.CreatePageRequest
	SearchOptions     = internalclient.SearchOptions
	SearchResult      = internalclient.SearchResult
	Comment           = internalclient.Comment
	Attachment        = internalclient.Attachment
	ImageRef          = internalclient.ImageRef
	APIError          = internalclient.APIError
	CredentialsError  = internalclient.CredentialsError
	ReferenceError    = internalclient.ReferenceError
)

// New builds a Client from cfg.
func New(cfg Config) (*Client, error) {
	return internalclient.New(cfg)
}

// NewResolver builds a page reference resolver, optionally LRU-cached.
func NewResolver(c *Client, cacheSize int) *Resolver {
	return internalclient.NewResolver(c, cacheSize)
}

// LoadCredentials reads a credentials file.
func LoadCredentials(path string) (Credentials, error) {
	return internalclient.LoadCredentials(path)
}

// ResolveCredentials loads credentials from the file at path and applies
// environment overrides.
func ResolveCredentials(path string) (Credentials, error) {
	return internalclient.ResolveCredentials(path)
}
