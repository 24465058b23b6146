package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/flowviz/sankey/pkg/graph"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	return New(io.Discard, LogInfo).router()
}

func postLayout(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/layout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServeHealthz(t *testing.T) {
	h := testRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /healthz = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}
}

func TestServeLayout(t *testing.T) {
	body := `{
		"graph": {
			"nodes": [{"id": "a"}, {"id": "b"}],
			"links": [{"source": "a", "target": "b", "value": 5}]
		}
	}`
	rec := postLayout(t, testRouter(t), body)

	if rec.Code != http.StatusOK {
		t.Fatalf("POST /layout = %d, body %s", rec.Code, rec.Body.String())
	}

	var res graph.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(res.Nodes) != 2 || len(res.Links) != 1 {
		t.Fatalf("result has %d nodes, %d links, want 2 and 1", len(res.Nodes), len(res.Links))
	}

	// Defaults put the source at the left edge and the sink at the right.
	if res.Nodes[0].X0 != 0 {
		t.Errorf("source X0 = %v, want 0", res.Nodes[0].X0)
	}
	if res.Nodes[1].X1 != 960 {
		t.Errorf("sink X1 = %v, want 960", res.Nodes[1].X1)
	}
}

func TestServeLayoutOptions(t *testing.T) {
	body := `{
		"graph": {
			"nodes": [{"id": "a"}, {"id": "b"}],
			"links": [{"source": "a", "target": "b", "value": 5}]
		},
		"options": {"width": 100, "height": 50, "node_width": 10}
	}`
	rec := postLayout(t, testRouter(t), body)

	if rec.Code != http.StatusOK {
		t.Fatalf("POST /layout = %d, body %s", rec.Code, rec.Body.String())
	}

	var res graph.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Nodes[1].X1 != 100 {
		t.Errorf("sink X1 = %v, want 100", res.Nodes[1].X1)
	}
	if res.Nodes[0].X1-res.Nodes[0].X0 != 10 {
		t.Errorf("node width = %v, want 10", res.Nodes[0].X1-res.Nodes[0].X0)
	}
}

func TestServeLayoutCyclicGraph(t *testing.T) {
	body := `{
		"graph": {
			"nodes": [{"id": "a"}, {"id": "b"}],
			"links": [
				{"source": "a", "target": "b", "value": 1},
				{"source": "b", "target": "a", "value": 1}
			]
		}
	}`
	rec := postLayout(t, testRouter(t), body)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("POST /layout = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}

	var er errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if er.Error == "" {
		t.Error("error response should carry a message")
	}
}

func TestServeLayoutMalformedBody(t *testing.T) {
	rec := postLayout(t, testRouter(t), `{"graph": `)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("POST /layout = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestServeLayoutBadOptions(t *testing.T) {
	body := `{
		"graph": {
			"nodes": [{"id": "a"}, {"id": "b"}],
			"links": [{"source": "a", "target": "b", "value": 1}]
		},
		"options": {"align": "diagonal"}
	}`
	rec := postLayout(t, testRouter(t), body)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("POST /layout = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestServeNotFound(t *testing.T) {
	h := testRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("GET /nope = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}
}

func TestServeRequestID(t *testing.T) {
	h := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("response should carry a generated X-Request-ID")
	}

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "req-42" {
		t.Errorf("X-Request-ID = %q, want inbound %q", got, "req-42")
	}
}

func TestApplyOptions(t *testing.T) {
	dst := defaultOptions()
	applyOptions(&dst, Options{Width: 320, Align: "center"})

	if dst.Width != 320 {
		t.Errorf("Width = %v, want 320", dst.Width)
	}
	if dst.Align != "center" {
		t.Errorf("Align = %q, want %q", dst.Align, "center")
	}
	if dst.Height != defaultOptions().Height {
		t.Errorf("Height = %v, should keep default", dst.Height)
	}
}
