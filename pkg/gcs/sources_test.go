package gcs

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/0nri/gemini-enterprise-api-explorer/pkg/models"
)

func TestUserContentPayloadOneOf(t *testing.T) {
	tests := []struct {
		name    string
		content models.UserContent
		want    map[string]any
	}{
		{
			name:    "text",
			content: models.UserContent{TextContent: &models.TextContent{SourceName: "notes", Content: "hello"}},
			want:    map[string]any{"textContent": map[string]string{"sourceName": "notes", "content": "hello"}},
		},
		{
			name:    "web",
			content: models.UserContent{WebContent: &models.WebContent{URL: "https://example.com", SourceName: "site"}},
			want:    map[string]any{"webContent": map[string]string{"url": "https://example.com", "sourceName": "site"}},
		},
		{
			name:    "video",
			content: models.UserContent{VideoContent: &models.VideoContent{URL: "https://youtu.be/x"}},
			want:    map[string]any{"videoContent": map[string]string{"url": "https://youtu.be/x"}},
		},
		{
			name:    "drive",
			content: models.UserContent{GoogleDriveContent: &models.GoogleDriveContent{DocumentID: "doc1", MimeType: "application/vnd.google-apps.document", SourceName: "design doc"}},
			want:    map[string]any{"googleDriveContent": map[string]string{"documentId": "doc1", "mimeType": "application/vnd.google-apps.document", "sourceName": "design doc"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := userContentPayload(tt.content)
			if err != nil {
				t.Fatalf("userContentPayload: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("payload mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if _, err := userContentPayload(models.UserContent{}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("empty one-of: err = %v, want ErrInvalidArgument", err)
	}
}

func TestBatchCreateSources(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1alpha/projects/123456/locations/us/notebooks/nb-1/sources:batchCreate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body map[string][]map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if len(body["userContents"]) != 1 {
			t.Errorf("userContents = %v", body["userContents"])
		}
		w.Write([]byte(`{"sources":[{"sourceId":{"id":"src-1"},"title":"notes"}]}`))
	}))

	resp, err := c.BatchCreateSources(context.Background(), "nb-1", []models.UserContent{
		{TextContent: &models.TextContent{SourceName: "notes", Content: "hello"}},
	})
	if err != nil {
		t.Fatalf("BatchCreateSources: %v", err)
	}
	if len(resp.Sources) != 1 || resp.Sources[0].SourceID == nil || resp.Sources[0].SourceID.ID != "src-1" {
		t.Errorf("sources = %+v", resp.Sources)
	}
}

func TestUploadFileSourceHeaders(t *testing.T) {
	var gotHeader http.Header
	var gotBody []byte
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/upload/v1alpha/projects/123456/locations/us/notebooks/nb-1/sources:uploadFile" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotHeader = r.Header.Clone()
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"sourceId":{"id":"src-9"}}`))
	}))

	resp, err := c.UploadFileSource(context.Background(), "nb-1", []byte("%PDF-1.7 data"), "report.final.pdf", "application/pdf")
	if err != nil {
		t.Fatalf("UploadFileSource: %v", err)
	}

	if resp.SourceID == nil || resp.SourceID.ID != "src-9" {
		t.Errorf("SourceID = %+v, want src-9", resp.SourceID)
	}
	if got := gotHeader.Get("X-Goog-Upload-File-Name"); got != "report.final.pdf" {
		t.Errorf("X-Goog-Upload-File-Name = %q", got)
	}
	if got := gotHeader.Get("X-Goog-Upload-Protocol"); got != "raw" {
		t.Errorf("X-Goog-Upload-Protocol = %q", got)
	}
	if got := gotHeader.Get("Content-Type"); got != "application/pdf" {
		t.Errorf("Content-Type = %q", got)
	}
	if string(gotBody) != "%PDF-1.7 data" {
		t.Errorf("body = %q, want raw file bytes", gotBody)
	}
}

func TestUploadFileSourceValidation(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no call expected")
	}))

	if _, err := c.UploadFileSource(context.Background(), "nb-1", nil, "a.pdf", "application/pdf"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("empty data: err = %v, want ErrInvalidArgument", err)
	}
	if _, err := c.UploadFileSource(context.Background(), "", []byte("x"), "a.pdf", "application/pdf"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("empty notebook: err = %v, want ErrInvalidArgument", err)
	}
}
