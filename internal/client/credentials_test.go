package client

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func writeCredentialsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("expected to write credentials file, got %v", err)
	}
	return path
}

func TestLoadCredentials(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    Credentials
	}{
		{
			name:    "json with api key",
			content: `{"base_url":"https://wiki.example.com","username":"svc-docs","api_key":"k-123"}`,
			want:    Credentials{BaseURL: "https://wiki.example.com", Username: "svc-docs", APIToken: "k-123"},
		},
		{
			name:    "json falls back to password",
			content: `{"username":"svc-docs","password":"hunter2"}`,
			want:    Credentials{Username: "svc-docs", APIToken: "hunter2"},
		},
		{
			name:    "json prefers api key over password",
			content: `{"username":"svc-docs","api_key":"k-123","password":"hunter2"}`,
			want:    Credentials{Username: "svc-docs", APIToken: "k-123"},
		},
		{
			name:    "colon separated",
			content: "svc-docs:tok-456",
			want:    Credentials{Username: "svc-docs", APIToken: "tok-456"},
		},
		{
			name:    "token keeps embedded colons",
			content: "svc-docs:pa:ss:wd",
			want:    Credentials{Username: "svc-docs", APIToken: "pa:ss:wd"},
		},
		{
			name:    "surrounding whitespace is trimmed",
			content: "\n  svc-docs:tok-456  \n",
			want:    Credentials{Username: "svc-docs", APIToken: "tok-456"},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			path := writeCredentialsFile(t, tc.content)
			got, err := LoadCredentials(path)
			if err != nil {
				t.Fatalf("expected credentials, got %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestLoadCredentialsRejectsIncompleteFiles(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{name: "empty file", content: ""},
		{name: "no separator", content: "just-a-token"},
		{name: "json missing username", content: `{"api_key":"k-123"}`},
		{name: "json missing token", content: `{"username":"svc-docs"}`},
		{name: "invalid json", content: `{"username":`},
		{name: "blank username", content: ":tok-456"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			path := writeCredentialsFile(t, tc.content)
			_, err := LoadCredentials(path)
			if !errors.Is(err, ErrCredentials) {
				t.Fatalf("expected ErrCredentials, got %v", err)
			}
			var cerr *CredentialsError
			if !errors.As(err, &cerr) {
				t.Fatalf("expected *CredentialsError, got %T", err)
			}
			if cerr.Source != path {
				t.Fatalf("expected source %q, got %q", path, cerr.Source)
			}
		})
	}
}

func TestLoadCredentialsMissingFile(t *testing.T) {
	_, err := LoadCredentials(filepath.Join(t.TempDir(), "absent"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestResolveCredentialsEnvironmentOnly(t *testing.T) {
	t.Setenv(EnvBaseURL, "https://wiki.example.com")
	t.Setenv(EnvUsername, "svc-docs")
	t.Setenv(EnvAPIToken, "tok-env")

	got, err := ResolveCredentials(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("expected credentials, got %v", err)
	}
	want := Credentials{BaseURL: "https://wiki.example.com", Username: "svc-docs", APIToken: "tok-env"}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestResolveCredentialsEnvironmentOverridesFile(t *testing.T) {
	path := writeCredentialsFile(t, `{"base_url":"https://old.example.com","username":"file-user","api_key":"file-token"}`)
	t.Setenv(EnvAPIToken, "tok-env")

	got, err := ResolveCredentials(path)
	if err != nil {
		t.Fatalf("expected credentials, got %v", err)
	}
	if got.Username != "file-user" {
		t.Fatalf("expected username %q, got %q", "file-user", got.Username)
	}
	if got.APIToken != "tok-env" {
		t.Fatalf("expected token from environment, got %q", got.APIToken)
	}
	if got.BaseURL != "https://old.example.com" {
		t.Fatalf("expected base url from file, got %q", got.BaseURL)
	}
}

func TestResolveCredentialsMissingEverything(t *testing.T) {
	_, err := ResolveCredentials(filepath.Join(t.TempDir(), "absent"))
	if !errors.Is(err, ErrCredentials) {
		t.Fatalf("expected ErrCredentials, got %v", err)
	}
}
