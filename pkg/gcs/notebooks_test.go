package gcs

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/0nri/gemini-enterprise-api-explorer/pkg/models"
)

func TestCreateNotebookEmptyTitleMakesNoCall(t *testing.T) {
	var calls atomic.Int32
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))

	_, err := c.CreateNotebook(context.Background(), "")
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
	if n := calls.Load(); n != 0 {
		t.Errorf("outbound calls = %d, want 0", n)
	}
}

func TestCreateNotebook(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1alpha/projects/123456/locations/us/notebooks" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"name":"projects/123456/locations/us/notebooks/nb-1","notebookId":"nb-1","title":"Research","emoji":"📓"}`))
	}))

	nb, err := c.CreateNotebook(context.Background(), "Research")
	if err != nil {
		t.Fatalf("CreateNotebook: %v", err)
	}
	if nb.NotebookID != "nb-1" || nb.Title != "Research" {
		t.Errorf("notebook = %+v", nb)
	}
}

func TestBatchDeleteNotebooksSurfacesAggregateError(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":{"message":"one of the notebooks is locked"}}`))
	}))

	err := c.BatchDeleteNotebooks(context.Background(), []string{"n1", "n2"})
	if err == nil {
		t.Fatal("want error")
	}

	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("want APIError, got %v", err)
	}
	if string(apiErr.Body) != `{"error":{"message":"one of the notebooks is locked"}}` {
		t.Errorf("Body = %q, want raw upstream body", apiErr.Body)
	}
}

func TestListRecentlyViewedNotebooksPageSize(t *testing.T) {
	var gotPageSize string
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPageSize = r.URL.Query().Get("pageSize")
		w.Write([]byte(`{"notebooks":[{"notebookId":"nb-1","title":"A","metadata":{"userRole":"owner","isShared":true}}]}`))
	}))

	resp, err := c.ListRecentlyViewedNotebooks(context.Background(), 25)
	if err != nil {
		t.Fatalf("ListRecentlyViewedNotebooks: %v", err)
	}
	if gotPageSize != "25" {
		t.Errorf("pageSize = %q, want 25", gotPageSize)
	}
	if len(resp.Notebooks) != 1 || resp.Notebooks[0].Metadata == nil || resp.Notebooks[0].Metadata.Role != "owner" {
		t.Errorf("notebooks = %+v", resp.Notebooks)
	}
}

func TestShareNotebookPayload(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1alpha/projects/123456/locations/us/notebooks/nb-1:share" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{}`))
	}))

	err := c.ShareNotebook(context.Background(), "nb-1", []models.AccountAndRole{{Email: "a@example.com", Role: "reader"}})
	if err != nil {
		t.Fatalf("ShareNotebook: %v", err)
	}
}
