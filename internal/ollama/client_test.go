package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testDaemon(t *testing.T) *httptest.Server {
	t.Helper()
	mux := newTestMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "Ollama is running")
	})
	mux.HandleFunc("POST /api/generate", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Model  string `json:"model"`
			Prompt string `json:"prompt"`
			Stream bool   `json:"stream"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if body.Stream {
			http.Error(w, "streaming not supported in test daemon", http.StatusBadRequest)
			return
		}
		fmt.Fprintf(w, `{"model":%q,"response":"echo: %s","done":true}`, body.Model, body.Prompt)
	})
	mux.HandleFunc("GET /api/tags", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"models":[{"name":"llama3:8b","size":4661224676},{"name":"mistral:7b","size":4109865159}]}`)
	})

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func TestPing(t *testing.T) {
	ts := testDaemon(t)
	c, err := New(ts.URL)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	if err := c.Ping(context.Background()); err != nil {
		t.Errorf("ping failed: %v", err)
	}
}

func TestPingUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	c, err := New(ts.URL)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	if err := c.Ping(context.Background()); err == nil {
		t.Error("expected ping to fail against a closed server")
	}
}

func TestGenerate(t *testing.T) {
	ts := testDaemon(t)
	c, err := New(ts.URL)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	result, err := c.Generate(context.Background(), "llama3:8b", "say hi")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if result.Text != "echo: say hi" {
		t.Errorf("unexpected response text %q", result.Text)
	}
	if result.Model != "llama3:8b" || !result.Done {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestListModels(t *testing.T) {
	ts := testDaemon(t)
	c, err := New(ts.URL)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	models, err := c.ListModels(context.Background())
	if err != nil {
		t.Fatalf("list models failed: %v", err)
	}
	if len(models) != 2 {
		t.Fatalf("expected 2 models, got %d", len(models))
	}
	if models[0].Name != "llama3:8b" {
		t.Errorf("unexpected first model %q", models[0].Name)
	}
}

func TestNewRejectsEmptyURL(t *testing.T) {
	if _, err := New(""); err == nil || !strings.Contains(err.Error(), "empty") {
		t.Errorf("expected empty-URL error, got %v", err)
	}
}

func TestTrimSlash(t *testing.T) {
	if got := trimSlash("http://localhost:11434/"); got != "http://localhost:11434" {
		t.Errorf("trimSlash = %q", got)
	}
}

// testMux routes "METHOD /path" patterns with {name} wildcards and {$},
// matching the Go 1.22+ http.ServeMux pattern syntax used by these tests
// so they also build with older toolchains.
type testMux struct {
	routes []testMuxRoute
}

type testMuxRoute struct {
	method string
	path   string
	h      http.HandlerFunc
}

type testMuxValuesKey struct{}

func newTestMux() *testMux { return &testMux{} }

func (m *testMux) HandleFunc(pattern string, h http.HandlerFunc) {
	method, path, ok := strings.Cut(pattern, " ")
	if !ok {
		method, path = "", pattern
	}
	m.routes = append(m.routes, testMuxRoute{method: method, path: path, h: h})
}

func (m *testMux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	for _, rt := range m.routes {
		if rt.method != "" && rt.method != r.Method {
			continue
		}
		vals, ok := matchTestMuxPattern(rt.path, r.URL.Path)
		if !ok {
			continue
		}
		rt.h(w, r.WithContext(context.WithValue(r.Context(), testMuxValuesKey{}, vals)))
		return
	}
	http.NotFound(w, r)
}

func matchTestMuxPattern(pattern, path string) (map[string]string, bool) {
	if pattern == "/{$}" {
		return nil, path == "/"
	}
	pp := strings.Split(pattern, "/")
	sp := strings.Split(path, "/")
	if len(pp) != len(sp) {
		return nil, false
	}
	vals := map[string]string{}
	for i, seg := range pp {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			vals[seg[1:len(seg)-1]] = sp[i]
			continue
		}
		if seg != sp[i] {
			return nil, false
		}
	}
	return vals, true
}

func pathValue(r *http.Request, name string) string {
	vals, _ := r.Context().Value(testMuxValuesKey{}).(map[string]string)
	return vals[name]
}
