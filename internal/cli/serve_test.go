package cli

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/masonry/pkg/board"
	"github.com/matzehuels/masonry/pkg/buildinfo"
	"github.com/matzehuels/masonry/pkg/cache"
	"github.com/matzehuels/masonry/pkg/masonry"
	"github.com/matzehuels/masonry/pkg/observability"
	"github.com/matzehuels/masonry/pkg/pipeline"
)

const scenarioBody = `{
	"items": [
		{"id": "a", "width": 100, "height": 100},
		{"id": "b", "width": 100, "height": 200},
		{"id": "c", "width": 100, "height": 50},
		{"id": "d", "width": 100, "height": 150}
	],
	"options": {
		"engine": "box",
		"width": 200,
		"height": 400,
		"config": {
			"h_adapt": "noadaption",
			"overflow": "ignore",
			"column_count": 2,
			"h_spacing": 0,
			"v_spacing": 0
		}
	}
}`

func newTestServer(t *testing.T, c cache.Cache) http.Handler {
	t.Helper()
	logger := log.New(io.Discard)
	return newServer(pipeline.NewRunner(c, nil, logger), logger).routes()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	h := newTestServer(t, nil)
	rec := do(t, h, http.MethodGet, "/healthz", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp healthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "ok" || resp.Build != buildinfo.Get() {
		t.Errorf("health = %+v, want ok with build info", resp)
	}
}

func TestFormatsEndpoint(t *testing.T) {
	h := newTestServer(t, nil)
	rec := do(t, h, http.MethodGet, "/v1/formats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"columns"`) {
		t.Errorf("body = %s, should list columns", rec.Body.String())
	}
}

func TestLayoutEndpoint(t *testing.T) {
	h := newTestServer(t, cache.NewNullCache())
	rec := do(t, h, http.MethodPost, "/v1/layout", scenarioBody)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("X-Cache"); got != "miss" {
		t.Errorf("X-Cache = %q, want miss", got)
	}

	l, err := board.UnmarshalLayout(rec.Body.Bytes())
	if err != nil {
		t.Fatalf("UnmarshalLayout() error: %v", err)
	}
	if l.Width != 200 || l.Height != 300 {
		t.Errorf("size = %vx%v, want 200x300", l.Width, l.Height)
	}
	want := []int{0, 1, 0, 0}
	for i, p := range l.Items {
		if p.Column != want[i] {
			t.Errorf("Items[%d].Column = %d, want %d", i, p.Column, want[i])
		}
	}
}

func TestLayoutEndpointPartialConfig(t *testing.T) {
	h := newTestServer(t, nil)
	defaults := masonry.DefaultConfig()

	tests := []struct {
		name        string
		body        string
		wantColumns int
	}{
		{
			"flow",
			`{"items":[{"id":"a","width":180,"height":90}],"options":{"engine":"flow","width":640,"config":{"v_expand":"orderinsert"}}}`,
			3,
		},
		{
			"box",
			`{"items":[{"id":"a","width":180,"height":90}],"options":{"engine":"box","width":640,"config":{"overflow":"autocrop"}}}`,
			defaults.ColumnCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/v1/layout", tt.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
			}
			l, err := board.UnmarshalLayout(rec.Body.Bytes())
			if err != nil {
				t.Fatalf("UnmarshalLayout() error: %v", err)
			}
			if l.Config.HSpacing != defaults.HSpacing || l.Config.VSpacing != defaults.VSpacing {
				t.Errorf("spacing = %v/%v, want defaults %v/%v",
					l.Config.HSpacing, l.Config.VSpacing, defaults.HSpacing, defaults.VSpacing)
			}
			if l.Config.HAdapt != defaults.HAdapt {
				t.Errorf("HAdapt = %v, want default %v", l.Config.HAdapt, defaults.HAdapt)
			}
			if l.Grid.Count != tt.wantColumns {
				t.Errorf("Grid.Count = %d, want %d", l.Grid.Count, tt.wantColumns)
			}
		})
	}
}

func TestLayoutEndpointCaches(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	h := newTestServer(t, fc)

	first := do(t, h, http.MethodPost, "/v1/layout", scenarioBody)
	second := do(t, h, http.MethodPost, "/v1/layout", scenarioBody)

	if first.Header().Get("X-Cache") != "miss" || second.Header().Get("X-Cache") != "hit" {
		t.Errorf("X-Cache = %q then %q, want miss then hit",
			first.Header().Get("X-Cache"), second.Header().Get("X-Cache"))
	}
	if first.Body.String() != second.Body.String() {
		t.Error("cached layout should match the computed one")
	}
}

type keyRecorder struct {
	cache.NullCache
	mu   sync.Mutex
	keys []string
}

func (k *keyRecorder) Set(_ context.Context, key string, _ []byte, _ time.Duration) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.keys = append(k.keys, key)
	return nil
}

func TestServeRunnerScopesKeys(t *testing.T) {
	store := &keyRecorder{}
	c := New(io.Discard, LogInfo)
	h := newServer(c.newServeRunner(store), c.Logger).routes()

	rec := do(t, h, http.MethodPost, "/v1/render/svg", scenarioBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if len(store.keys) != 2 {
		t.Fatalf("stored %d entries, want layout and artifact", len(store.keys))
	}
	for _, k := range store.keys {
		if !strings.HasPrefix(k, serveKeyPrefix) {
			t.Errorf("key %q lacks prefix %q", k, serveKeyPrefix)
		}
	}
}

func TestRenderEndpoint(t *testing.T) {
	h := newTestServer(t, nil)

	tests := []struct {
		format      string
		contentType string
		contains    string
	}{
		{"svg", "image/svg+xml", `class="item"`},
		{"json", "application/json", `"engine": "box"`},
		{"dot", "text/vnd.graphviz", "digraph masonry"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/v1/render/"+tt.format, scenarioBody)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
			}
			if got := rec.Header().Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			if !strings.Contains(rec.Body.String(), tt.contains) {
				t.Errorf("body should contain %q", tt.contains)
			}
		})
	}
}

func TestEndpointErrors(t *testing.T) {
	h := newTestServer(t, nil)

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"malformed json", "/v1/layout", `{"items":`, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown field", "/v1/layout", `{"things":[]}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"zero width item", "/v1/layout", `{"items":[{"id":"a","width":0,"height":10}]}`, http.StatusBadRequest, "INVALID_ITEM"},
		{"unknown engine", "/v1/layout", `{"items":[],"options":{"engine":"grid"}}`, http.StatusBadRequest, "INVALID_ENGINE"},
		{"bad strategy", "/v1/layout", `{"items":[],"options":{"config":{"h_adapt":"stretch"}}}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"zero columns", "/v1/layout", `{"items":[],"options":{"config":{"column_count":0}}}`, http.StatusBadRequest, "INVALID_CONFIG"},
		{"unknown format", "/v1/render/gif", scenarioBody, http.StatusBadRequest, "INVALID_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, tt.path, tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			var resp errorResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Code != tt.wantCode {
				t.Errorf("code = %q, want %q (%s)", resp.Code, tt.wantCode, resp.Error)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestServer(t, nil)
	rec := do(t, h, http.MethodGet, "/v1/layout", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

type recordingServerHooks struct {
	observability.NoopServerHooks
	mu     sync.Mutex
	routes []string
	status []int
}

func (h *recordingServerHooks) OnResponse(_ context.Context, _, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, route)
	h.status = append(h.status, status)
}

func TestObserveMiddleware(t *testing.T) {
	hooks := &recordingServerHooks{}
	observability.SetServerHooks(hooks)
	defer observability.Reset()

	h := newTestServer(t, nil)
	do(t, h, http.MethodPost, "/v1/render/svg", scenarioBody)
	do(t, h, http.MethodGet, "/healthz", "")

	if len(hooks.routes) != 2 {
		t.Fatalf("OnResponse called %d times, want 2", len(hooks.routes))
	}
	if hooks.routes[0] != "/v1/render/{format}" {
		t.Errorf("route = %q, want the route pattern", hooks.routes[0])
	}
	if hooks.status[0] != http.StatusOK || hooks.status[1] != http.StatusOK {
		t.Errorf("status = %v, want 200s", hooks.status)
	}
}
