package client

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
)

func writeAttachmentFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("expected to write %s, got %v", name, err)
	}
	return path
}

func TestAttachments(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/api/content/555/child/attachment", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [{"id": "att-9", "title": "diagram.png", "metadata": {"mediaType": "image/png"}}]}`))
	})
	client, _ := newTestClient(t, mux)

	attachments, err := client.Attachments(context.Background(), "555")
	if err != nil {
		t.Fatalf("expected attachments, got %v", err)
	}
	want := Attachment{ID: "att-9", Title: "diagram.png", MediaType: "image/png"}
	if len(attachments) != 1 || attachments[0] != want {
		t.Fatalf("expected %+v, got %+v", want, attachments)
	}
}

func TestUploadAttachmentNew(t *testing.T) {
	path := writeAttachmentFile(t, "report.pdf", "%PDF-1.4 fake")

	var uploadCalled bool
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/api/content/555/child/attachment", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{"results": []}`))
		case http.MethodPost:
			uploadCalled = true
			if got := r.Header.Get("X-Atlassian-Token"); got != "nocheck" {
				t.Errorf("expected X-Atlassian-Token nocheck, got %q", got)
			}
			file, header, err := r.FormFile("file")
			if err != nil {
				t.Errorf("expected multipart file field, got %v", err)
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			defer file.Close()
			if header.Filename != "report.pdf" {
				t.Errorf("expected filename report.pdf, got %q", header.Filename)
			}
			if got := header.Header.Get("Content-Type"); got != "application/pdf" {
				t.Errorf("expected part content type application/pdf, got %q", got)
			}
			data, _ := io.ReadAll(file)
			if string(data) != "%PDF-1.4 fake" {
				t.Errorf("expected file contents forwarded, got %q", data)
			}
			w.Write([]byte(`{"results": [{"id": "att-10", "title": "report.pdf"}]}`))
		}
	})
	client, _ := newTestClient(t, mux)

	attachment, err := client.UploadAttachment(context.Background(), "555", path)
	if err != nil {
		t.Fatalf("expected upload to succeed, got %v", err)
	}
	if !uploadCalled {
		t.Fatal("expected POST to the attachment collection")
	}
	if attachment.ID != "att-10" {
		t.Fatalf("expected id att-10, got %q", attachment.ID)
	}
	if attachment.Title != "report.pdf" {
		t.Fatalf("expected title report.pdf, got %q", attachment.Title)
	}
}

func TestUploadAttachmentReplacesExisting(t *testing.T) {
	path := writeAttachmentFile(t, "diagram.png", "png-bytes")

	var dataCalled bool
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/api/content/555/child/attachment", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			t.Error("expected existing attachment to use the data endpoint")
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Write([]byte(`{"results": [{"id": "att-9", "title": "diagram.png"}]}`))
	})
	mux.HandleFunc("/rest/api/content/555/child/attachment/att-9/data", func(w http.ResponseWriter, r *http.Request) {
		dataCalled = true
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		_, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("expected multipart file field, got %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if got := header.Header.Get("Content-Type"); got != "image/png" {
			t.Errorf("expected part content type image/png, got %q", got)
		}
		w.Write([]byte(`{"id": "att-9", "title": "diagram.png"}`))
	})
	client, _ := newTestClient(t, mux)

	attachment, err := client.UploadAttachment(context.Background(), "555", path)
	if err != nil {
		t.Fatalf("expected upload to succeed, got %v", err)
	}
	if !dataCalled {
		t.Fatal("expected the data endpoint to be used")
	}
	if attachment.ID != "att-9" {
		t.Fatalf("expected id att-9, got %q", attachment.ID)
	}
}

func TestUploadAttachmentMissingFile(t *testing.T) {
	client, _ := newTestClient(t, http.NewServeMux())
	_, err := client.UploadAttachment(context.Background(), "555", filepath.Join(t.TempDir(), "absent.png"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestAttachmentMediaType(t *testing.T) {
	cases := []struct {
		filename string
		want     string
	}{
		{filename: "photo.JPG", want: "image/jpeg"},
		{filename: "photo.jpeg", want: "image/jpeg"},
		{filename: "chart.png", want: "image/png"},
		{filename: "anim.gif", want: "image/gif"},
		{filename: "logo.svg", want: "image/svg+xml"},
		{filename: "doc.pdf", want: "application/pdf"},
		{filename: "data.bin", want: "application/octet-stream"},
	}
	for _, tc := range cases {
		if got := attachmentMediaType(tc.filename); got != tc.want {
			t.Fatalf("expected %q for %s, got %q", tc.want, tc.filename, got)
		}
	}
}
