package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultCredentialsFile is the conventional credential location in the
// user's home directory.
const DefaultCredentialsFile = ".confluence_credentials"

// Environment variables that override values from the credentials file.
const (
	EnvBaseURL  = "CONFLUENCE_BASE_URL"
	EnvUsername = "CONFLUENCE_USERNAME"
	EnvAPIToken = "CONFLUENCE_API_TOKEN"
)

// Credentials holds everything needed to authenticate against a Confluence
// instance. APIToken is used as the basic auth password; Cloud API tokens
// and server passwords both travel through it.
type Credentials struct {
	BaseURL  string
	Username string
	APIToken string
}

type credentialsFile struct {
	BaseURL  string `json:"base_url"`
	Username string `json:"username"`
	APIKey   string `json:"api_key"`
	Password string `json:"password"`
}

// LoadCredentials reads a credentials file. Two layouts are accepted: a
// JSON document with base_url, username, and api_key or password keys, or a
// single "username:token" line where the token may itself contain colons.
// An empty path falls back to DefaultCredentialsFile in the home directory.
func LoadCredentials(path string) (Credentials, error) {
	resolved, err := credentialsPath(path)
	if err != nil {
		return Credentials{}, err
	}
	raw, err := os.ReadFile(resolved)
	if err != nil {
		return Credentials{}, fmt.Errorf("client: read credentials: %w", err)
	}
	creds, err := parseCredentials(strings.TrimSpace(string(raw)))
	if err != nil {
		if cerr, ok := err.(*CredentialsError); ok {
			cerr.Source = resolved
		}
		return Credentials{}, err
	}
	return creds, nil
}

// ResolveCredentials loads the file at path when it exists and then applies
// environment overrides, so CONFLUENCE_* variables win over file contents
// and a fully specified environment needs no file at all.
func ResolveCredentials(path string) (Credentials, error) {
	creds, err := LoadCredentials(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Credentials{}, err
	}
	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		creds.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvUsername)); v != "" {
		creds.Username = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAPIToken)); v != "" {
		creds.APIToken = v
	}
	if creds.Username == "" || creds.APIToken == "" {
		return Credentials{}, &CredentialsError{Reason: "missing username or token after file and environment lookup"}
	}
	return creds, nil
}

func credentialsPath(path string) (string, error) {
	if strings.TrimSpace(path) != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("client: locate credentials: %w", err)
	}
	return filepath.Join(home, DefaultCredentialsFile), nil
}

func parseCredentials(content string) (Credentials, error) {
	if content == "" {
		return Credentials{}, &CredentialsError{Reason: "file is empty"}
	}
	if strings.HasPrefix(content, "{") {
		var file credentialsFile
		if err := json.Unmarshal([]byte(content), &file); err != nil {
			return Credentials{}, &CredentialsError{Reason: "invalid JSON: " + err.Error()}
		}
		token := file.APIKey
		if token == "" {
			token = file.Password
		}
		creds := Credentials{
			BaseURL:  strings.TrimSpace(file.BaseURL),
			Username: strings.TrimSpace(file.Username),
			APIToken: token,
		}
		if creds.Username == "" || creds.APIToken == "" {
			return Credentials{}, &CredentialsError{Reason: "missing username or token"}
		}
		return creds, nil
	}
	// username:token form; the token keeps any embedded colons.
	parts := strings.Split(content, ":")
	if len(parts) < 2 {
		return Credentials{}, &CredentialsError{Reason: "expected username:token"}
	}
	creds := Credentials{
		Username: strings.TrimSpace(parts[0]),
		APIToken: strings.Join(parts[1:], ":"),
	}
	if creds.Username == "" || creds.APIToken == "" {
		return Credentials{}, &CredentialsError{Reason: "missing username or token"}
	}
	return creds, nil
}
