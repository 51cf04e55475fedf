package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"

	"github.com/0nri/gemini-enterprise-api-explorer/pkg/gcs"
	"github.com/0nri/gemini-enterprise-api-explorer/pkg/models"
)

func init() { gin.SetMode(gin.TestMode) }

// stubCollaborator points newClient at a local test server and counts how
// often a client is constructed.
func stubCollaborator(t *testing.T, handler http.Handler) *int64 {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	var calls int64
	orig := newClient
	newClient = func(project, location string) (*gcs.Client, error) {
		atomic.AddInt64(&calls, 1)
		return gcs.New(project, location,
			gcs.WithBaseURL(srv.URL),
			gcs.WithHTTPClient(srv.Client()),
			gcs.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token"})),
		)
	}
	t.Cleanup(func() { newClient = orig })

	return &calls
}

func perform(router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateNotebookEmptyTitle(t *testing.T) {
	calls := stubCollaborator(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no collaborator request expected")
	}))

	router := gin.New()
	router.POST("/notebooks/", CreateNotebook)

	rec := perform(router, "POST", "/notebooks/", `{"title":"","project_number":"123456"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if got := atomic.LoadInt64(calls); got != 0 {
		t.Errorf("collaborator clients constructed = %d, want 0", got)
	}
}

func TestTenantValidation(t *testing.T) {
	stubCollaborator(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))

	router := gin.New()
	router.GET("/agents/", ListAgents)
	router.POST("/search/", Search)

	for _, tt := range []struct {
		name, method, target, body string
	}{
		{"missing project", "GET", "/agents/", ""},
		{"bad location", "GET", "/agents/?project_number=123456&location=asia", ""},
		{"search missing project", "POST", "/search/", `{"query":"q","engine_id":"e1"}`},
		{"search bad location", "POST", "/search/", `{"query":"q","engine_id":"e1","project_number":"123456","location":"mars"}`},
		{"search missing query", "POST", "/search/", `{"engine_id":"e1","project_number":"123456"}`},
		{"search missing engine", "POST", "/search/", `{"query":"q","project_number":"123456"}`},
	} {
		t.Run(tt.name, func(t *testing.T) {
			rec := perform(router, tt.method, tt.target, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestListAgentsSuccess(t *testing.T) {
	stubCollaborator(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"engines":[
			{"name":"engines/e1","displayName":"Sales Agent","solutionType":2,"industryVertical":1}
		]}`))
	}))

	router := gin.New()
	router.GET("/agents/", ListAgents)

	rec := perform(router, "GET", "/agents/?project_number=123456", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var resp models.EngineListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Engines) != 1 || resp.Engines[0].DisplayName != "Sales Agent" {
		t.Errorf("engines = %+v", resp.Engines)
	}
	if resp.Engines[0].SolutionType != "SOLUTION_TYPE_SEARCH" {
		t.Errorf("solution_type = %q", resp.Engines[0].SolutionType)
	}
}

func TestSearchUpstreamError(t *testing.T) {
	stubCollaborator(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"boom"}}`))
	}))

	router := gin.New()
	router.POST("/search/", Search)

	rec := perform(router, "POST", "/search/", `{"query":"q","engine_id":"e1","project_number":"123456"}`)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}

	var resp models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(resp.Detail, "boom") {
		t.Errorf("detail = %q, want upstream body preserved", resp.Detail)
	}
}

func sseEvents(t *testing.T, body string) []models.ConversationChunk {
	t.Helper()

	var events []models.ConversationChunk
	for _, line := range strings.Split(body, "\n") {
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var chunk models.ConversationChunk
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &chunk); err != nil {
			t.Fatalf("decode event %q: %v", line, err)
		}
		events = append(events, chunk)
	}
	return events
}

func TestConverseStreamEmitsTerminalDone(t *testing.T) {
	stubCollaborator(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"reply":{"summary":{"summaryText":"the answer"}},
			"conversation":{"name":"conversations/c-9","state":"IN_PROGRESS"}
		}`))
	}))

	router := gin.New()
	router.POST("/conversations/stream", ConverseStream)

	rec := perform(router, "POST", "/conversations/stream", `{"query":"q","engine_id":"e1","project_number":"123456"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Header().Get("X-Accel-Buffering") != "no" {
		t.Error("X-Accel-Buffering header missing")
	}

	events := sseEvents(t, rec.Body.String())
	if len(events) != 2 {
		t.Fatalf("events = %+v, want chunk and done", events)
	}
	if events[0].Type != "chunk" || events[0].Text != "the answer" || events[0].ConversationID != "c-9" {
		t.Errorf("first event = %+v", events[0])
	}
	if events[1].Type != "done" {
		t.Errorf("terminal event = %+v", events[1])
	}
}

func TestConverseStreamEmitsTerminalError(t *testing.T) {
	stubCollaborator(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"message":"denied"}}`))
	}))

	router := gin.New()
	router.POST("/conversations/stream", ConverseStream)

	rec := perform(router, "POST", "/conversations/stream", `{"query":"q","engine_id":"e1","project_number":"123456"}`)

	events := sseEvents(t, rec.Body.String())
	if len(events) != 1 || events[0].Type != "error" {
		t.Fatalf("events = %+v, want single error event", events)
	}
	if !strings.Contains(events[0].Error, "denied") {
		t.Errorf("error = %q", events[0].Error)
	}
}

func TestEngineDetailsEnvelope(t *testing.T) {
	stubCollaborator(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"engines/e1","displayName":"Sales Agent"}`))
	}))

	router := gin.New()
	router.GET("/api-explorer/engine-details/:engine_id", EngineDetails)

	rec := perform(router, "GET", "/api-explorer/engine-details/e1?project_number=123456", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var envelope models.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !envelope.Success || envelope.Error != nil {
		t.Errorf("envelope = %+v, want success", envelope)
	}
	if envelope.RequestParams["engine_id"] != "e1" {
		t.Errorf("request_params = %+v", envelope.RequestParams)
	}

	var payload map[string]any
	json.Unmarshal(envelope.Response, &payload)
	if payload["displayName"] != "Sales Agent" {
		t.Errorf("response = %s, want collaborator payload passed through", envelope.Response)
	}
}

func TestEngineDetailsEnvelopeFailure(t *testing.T) {
	stubCollaborator(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"code":404,"message":"engine not found"}}`))
	}))

	router := gin.New()
	router.GET("/api-explorer/engine-details/:engine_id", EngineDetails)

	rec := perform(router, "GET", "/api-explorer/engine-details/missing?project_number=123456", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, explorer failures stay 200", rec.Code)
	}

	var envelope models.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Success || envelope.Error == nil {
		t.Fatalf("envelope = %+v, want failure", envelope)
	}
	if !strings.Contains(envelope.Error.Message, "404") {
		t.Errorf("error message = %q", envelope.Error.Message)
	}
	if len(envelope.Error.Body) == 0 {
		t.Error("error body missing")
	}
}

func TestStreamAssistEnvelopeSessionInfo(t *testing.T) {
	stubCollaborator(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"answer":{"replies":[{"groundedContent":{"content":{"text":"part one "}}}]}},
			{"answer":{"replies":[{"groundedContent":{"content":{"text":"part two"}}}],"state":"SUCCEEDED"},
			 "sessionInfo":{"session":"projects/123456/locations/us/collections/default_collection/engines/e1/sessions/s-77","queryId":"q-5"}}
		]`))
	}))

	router := gin.New()
	router.POST("/api-explorer/stream-assist", StreamAssist)

	rec := perform(router, "POST", "/api-explorer/stream-assist",
		`{"engine_id":"e1","assistant_id":"default_assistant","query":"hello","project_number":"123456"}`)

	var envelope models.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !envelope.Success {
		t.Fatalf("envelope = %+v", envelope)
	}
	if envelope.SessionInfo["session_id"] != "s-77" || envelope.SessionInfo["query_id"] != "q-5" {
		t.Errorf("session_info = %+v", envelope.SessionInfo)
	}

	var payload struct {
		Answer     string `json:"answer"`
		ChunkCount int    `json:"chunk_count"`
	}
	json.Unmarshal(envelope.Response, &payload)
	if payload.Answer != "part one part two" || payload.ChunkCount != 2 {
		t.Errorf("response = %s", envelope.Response)
	}
}

func TestUploadSourceContentTypeFallback(t *testing.T) {
	var contentType, uploadName string
	stubCollaborator(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		uploadName = r.Header.Get("X-Goog-Upload-File-Name")
		w.Write([]byte(`{"sourceId":{"id":"src-1"}}`))
	}))

	router := gin.New()
	router.POST("/notebooks/:notebook_id/sources/upload", UploadSource)

	rec := perform(router, "POST", "/notebooks/nb-1/sources/upload?project_number=123456&file_name=report.final.pdf", "%PDF-1.4")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if contentType != "application/pdf" {
		t.Errorf("Content-Type = %q, want extension fallback", contentType)
	}
	if uploadName != "report.final.pdf" {
		t.Errorf("X-Goog-Upload-File-Name = %q", uploadName)
	}
}

func TestUploadSourceEmptyBody(t *testing.T) {
	calls := stubCollaborator(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no collaborator request expected")
	}))

	router := gin.New()
	router.POST("/notebooks/:notebook_id/sources/upload", UploadSource)

	rec := perform(router, "POST", "/notebooks/nb-1/sources/upload?project_number=123456&file_name=a.pdf", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if got := atomic.LoadInt64(calls); got != 0 {
		t.Errorf("collaborator clients constructed = %d, want 0", got)
	}
}
