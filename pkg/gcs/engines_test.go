package gcs

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/0nri/gemini-enterprise-api-explorer/pkg/models"
)

func TestEnumName(t *testing.T) {
	tests := []struct {
		name  string
		value any
		names map[int]string
		want  string
	}{
		{"string passthrough", "SOLUTION_TYPE_SEARCH", solutionTypeNames, "SOLUTION_TYPE_SEARCH"},
		{"numeric known", float64(2), solutionTypeNames, "SOLUTION_TYPE_SEARCH"},
		{"numeric zero", float64(0), industryVerticalNames, "INDUSTRY_VERTICAL_UNSPECIFIED"},
		{"numeric unknown", float64(42), solutionTypeNames, "UNKNOWN_42"},
		{"missing", nil, solutionTypeNames, "SOLUTION_TYPE_UNSPECIFIED"},
		{"empty string", "", industryVerticalNames, "INDUSTRY_VERTICAL_UNSPECIFIED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := enumName(tt.value, tt.names); got != tt.want {
				t.Errorf("enumName(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestListEngines(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/projects/123456/locations/us/collections/default_collection/engines" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"engines":[
			{"name":"projects/123456/locations/us/collections/default_collection/engines/e1",
			 "displayName":"Engine One","solutionType":"SOLUTION_TYPE_SEARCH",
			 "industryVertical":1,"createTime":"2025-01-02T03:04:05Z"}
		]}`))
	}))

	engines, err := c.ListEngines(context.Background())
	if err != nil {
		t.Fatalf("ListEngines: %v", err)
	}

	want := []models.EngineInfo{{
		Name:             "projects/123456/locations/us/collections/default_collection/engines/e1",
		DisplayName:      "Engine One",
		SolutionType:     "SOLUTION_TYPE_SEARCH",
		IndustryVertical: "GENERIC",
		CreateTime:       "2025-01-02T03:04:05Z",
	}}
	if diff := cmp.Diff(want, engines); diff != "" {
		t.Errorf("engines mismatch (-want +got):\n%s", diff)
	}
}

func TestListEnginesEmptyIsSuccess(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))

	engines, err := c.ListEngines(context.Background())
	if err != nil {
		t.Fatalf("ListEngines: %v", err)
	}
	if engines == nil || len(engines) != 0 {
		t.Errorf("engines = %#v, want empty non-nil slice", engines)
	}
}

func TestGetEngine(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/projects/123456/locations/us/collections/default_collection/engines/e1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"name":"e1","displayName":"Engine One","solutionType":3}`))
	}))

	engine, err := c.GetEngine(context.Background(), "e1")
	if err != nil {
		t.Fatalf("GetEngine: %v", err)
	}
	if engine.SolutionType != "SOLUTION_TYPE_CHAT" {
		t.Errorf("SolutionType = %q, want SOLUTION_TYPE_CHAT", engine.SolutionType)
	}

	if _, err := c.GetEngine(context.Background(), ""); err == nil {
		t.Error("GetEngine with empty id: want error")
	}
}
