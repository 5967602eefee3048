package anythingllm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
)

// fakeBackend is an in-memory AnythingLLM-style server for client tests.
type fakeBackend struct {
	mu         sync.Mutex
	apiKey     string
	nextID     int
	workspaces []Workspace
	users      []User
	adminOnly  bool

	// lastChatBody records the raw body of the most recent chat request.
	lastChatBody []byte
	lastHeaders  http.Header
}

func newFakeBackend(apiKey string) *fakeBackend {
	return &fakeBackend{apiKey: apiKey, nextID: 1}
}

func (f *fakeBackend) handler() http.Handler {
	mux := newTestMux()

	auth := func(w http.ResponseWriter, r *http.Request) bool {
		f.mu.Lock()
		f.lastHeaders = r.Header.Clone()
		f.mu.Unlock()
		if r.Header.Get("Authorization") != "Bearer "+f.apiKey {
			http.Error(w, `{"error":"Invalid API Key"}`, http.StatusForbidden)
			return false
		}
		return true
	}

	mux.HandleFunc("GET /api/v1/auth", func(w http.ResponseWriter, r *http.Request) {
		if !auth(w, r) {
			return
		}
		fmt.Fprint(w, `{"authenticated":true}`)
	})

	mux.HandleFunc("GET /api/v1/workspaces", func(w http.ResponseWriter, r *http.Request) {
		if !auth(w, r) {
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]any{"workspaces": f.workspaces})
	})

	mux.HandleFunc("POST /api/v1/workspace/new", func(w http.ResponseWriter, r *http.Request) {
		if !auth(w, r) {
			return
		}
		var body struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" {
			http.Error(w, `{"error":"name is required"}`, http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		ws := Workspace{
			ID:   f.nextID,
			Name: body.Name,
			Slug: slugify(body.Name, f.nextID),
		}
		f.nextID++
		f.workspaces = append(f.workspaces, ws)
		json.NewEncoder(w).Encode(map[string]any{"workspace": ws, "message": "Workspace created"})
	})

	mux.HandleFunc("GET /api/v1/workspace/{slug}", func(w http.ResponseWriter, r *http.Request) {
		if !auth(w, r) {
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		for _, ws := range f.workspaces {
			if ws.Slug == pathValue(r, "slug") {
				json.NewEncoder(w).Encode(map[string]any{"workspace": ws})
				return
			}
		}
		http.Error(w, `{"error":"Workspace not found"}`, http.StatusNotFound)
	})

	mux.HandleFunc("DELETE /api/v1/workspace/{slug}", func(w http.ResponseWriter, r *http.Request) {
		if !auth(w, r) {
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		slug := pathValue(r, "slug")
		for i, ws := range f.workspaces {
			if ws.Slug == slug {
				f.workspaces = append(f.workspaces[:i], f.workspaces[i+1:]...)
				fmt.Fprint(w, `{"message":"Workspace deleted"}`)
				return
			}
		}
		http.Error(w, fmt.Sprintf(`{"error":"Workspace %s does not exist"}`, slug), http.StatusBadRequest)
	})

	mux.HandleFunc("POST /api/v1/workspace/{slug}/update-embeddings", func(w http.ResponseWriter, r *http.Request) {
		if !auth(w, r) {
			return
		}
		fmt.Fprintf(w, `{"job":"queued","workspace":%q}`, pathValue(r, "slug"))
	})

	mux.HandleFunc("POST /api/v1/workspace/{slug}/chat", func(w http.ResponseWriter, r *http.Request) {
		if !auth(w, r) {
			return
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		f.lastChatBody = body
		f.mu.Unlock()
		fmt.Fprint(w, `{"textResponse":"hello back","sources":[{"title":"doc.pdf","chunk":"relevant text","score":0.82,"docpath":"custom-documents/doc.pdf"}]}`)
	})

	mux.HandleFunc("GET /api/v1/system/users", func(w http.ResponseWriter, r *http.Request) {
		if !auth(w, r) {
			return
		}
		if f.adminOnly {
			http.Error(w, `{"error":"admin required"}`, http.StatusForbidden)
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]any{"users": f.users})
	})

	return mux
}

func slugify(name string, id int) string {
	return fmt.Sprintf("%s-%d", strings.ToLower(strings.ReplaceAll(name, " ", "-")), id)
}

// newTestClient builds a client pointed at the httptest server.
func newTestClient(t *testing.T, ts *httptest.Server, apiKey string) *Client {
	t.Helper()
	u, err := url.Parse(ts.URL)
	if err != nil {
		t.Fatalf("failed to parse test server URL: %v", err)
	}
	c, err := New(Config{Host: "http://" + u.Hostname(), Port: u.Port(), APIKey: apiKey})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return c
}

func TestValidateConnectionAuthenticated(t *testing.T) {
	backend := newFakeBackend("good-key")
	ts := httptest.NewServer(backend.handler())
	defer ts.Close()

	c := newTestClient(t, ts, "good-key")
	status := c.ValidateConnection(context.Background())

	if !status.Authenticated {
		t.Fatalf("expected authenticated=true, got error %q", status.Error)
	}
	if status.Error != "" {
		t.Errorf("expected empty error, got %q", status.Error)
	}
}

func TestValidateConnectionInvalidKey(t *testing.T) {
	for _, code := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		t.Run(http.StatusText(code), func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(code)
			}))
			defer ts.Close()

			c := newTestClient(t, ts, "bad-key")
			status := c.ValidateConnection(context.Background())

			if status.Authenticated {
				t.Fatal("expected authenticated=false")
			}
			if status.Error != "Invalid API Key" {
				t.Errorf("expected fixed message %q, got %q", "Invalid API Key", status.Error)
			}
		})
	}
}

func TestValidateConnectionOtherStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := newTestClient(t, ts, "any")
	status := c.ValidateConnection(context.Background())

	if status.Authenticated {
		t.Fatal("expected authenticated=false")
	}
	if !strings.Contains(status.Error, "500") || !strings.Contains(status.Error, "Internal Server Error") {
		t.Errorf("expected status code and text in error, got %q", status.Error)
	}
}

func TestValidateConnectionTransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // nothing listening anymore

	c := newTestClient(t, ts, "any")
	status := c.ValidateConnection(context.Background())

	if status.Authenticated {
		t.Fatal("expected authenticated=false")
	}
	if !strings.Contains(status.Error, "could not reach the server") {
		t.Errorf("expected transport remediation guidance, got %q", status.Error)
	}
}

func TestListWorkspacesEmpty(t *testing.T) {
	backend := newFakeBackend("key")
	ts := httptest.NewServer(backend.handler())
	defer ts.Close()

	c := newTestClient(t, ts, "key")
	workspaces, err := c.ListWorkspaces(context.Background())
	if err != nil {
		t.Fatalf("expected no error on empty server, got %v", err)
	}
	if len(workspaces) != 0 {
		t.Errorf("expected empty list, got %d workspaces", len(workspaces))
	}
	if workspaces == nil {
		t.Error("expected empty slice, got nil")
	}
}

func TestCreateThenListWorkspace(t *testing.T) {
	backend := newFakeBackend("key")
	ts := httptest.NewServer(backend.handler())
	defer ts.Close()

	c := newTestClient(t, ts, "key")
	ctx := context.Background()

	created, err := c.CreateWorkspace(ctx, "Q1 Finance")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Name != "Q1 Finance" {
		t.Errorf("expected created name %q, got %q", "Q1 Finance", created.Name)
	}
	if created.Slug == "" {
		t.Error("expected server-assigned slug")
	}

	workspaces, err := c.ListWorkspaces(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	found := false
	for _, ws := range workspaces {
		if ws.Name == "Q1 Finance" {
			found = true
		}
	}
	if !found {
		t.Errorf("created workspace not present in list: %+v", workspaces)
	}
}

func TestGetWorkspaceNotFound(t *testing.T) {
	backend := newFakeBackend("key")
	ts := httptest.NewServer(backend.handler())
	defer ts.Close()

	c := newTestClient(t, ts, "key")
	_, err := c.GetWorkspace(context.Background(), "no-such-slug")
	if err == nil {
		t.Fatal("expected error for missing workspace")
	}
	if !IsNotFound(err) {
		t.Errorf("expected NotFound error, got %v", err)
	}
	if !strings.Contains(err.Error(), "no-such-slug") {
		t.Errorf("expected slug in error message, got %q", err.Error())
	}
}

func TestDeleteAbsentWorkspaceFails(t *testing.T) {
	backend := newFakeBackend("key")
	ts := httptest.NewServer(backend.handler())
	defer ts.Close()

	c := newTestClient(t, ts, "key")
	_, err := c.DeleteWorkspace(context.Background(), "never-existed")
	if err == nil {
		t.Fatal("expected delete of absent slug to fail, not succeed silently")
	}
	if !IsRequest(err) {
		t.Errorf("expected RequestError, got %v", err)
	}
	if !strings.Contains(err.Error(), "never-existed") {
		t.Errorf("expected response body text in error, got %q", err.Error())
	}
}

func TestDeleteExistingWorkspace(t *testing.T) {
	backend := newFakeBackend("key")
	ts := httptest.NewServer(backend.handler())
	defer ts.Close()

	c := newTestClient(t, ts, "key")
	ctx := context.Background()

	created, err := c.CreateWorkspace(ctx, "Temporary")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	result, err := c.DeleteWorkspace(ctx, created.Slug)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if !result.Success {
		t.Error("expected success=true")
	}

	// Deleting again must fail; deletion is not idempotent.
	if _, err := c.DeleteWorkspace(ctx, created.Slug); err == nil {
		t.Error("expected second delete of same slug to fail")
	}
}

func TestChatModeLiteral(t *testing.T) {
	backend := newFakeBackend("key")
	ts := httptest.NewServer(backend.handler())
	defer ts.Close()

	c := newTestClient(t, ts, "key")
	ctx := context.Background()

	for _, mode := range []string{"chat", "query"} {
		t.Run(mode, func(t *testing.T) {
			if _, err := c.Chat(ctx, "some-workspace", "hi", mode); err != nil {
				t.Fatalf("chat failed: %v", err)
			}
			var body map[string]any
			if err := json.Unmarshal(backend.lastChatBody, &body); err != nil {
				t.Fatalf("failed to parse recorded body: %v", err)
			}
			if body["mode"] != mode {
				t.Errorf("expected body mode %q, got %v", mode, body["mode"])
			}
			if body["message"] != "hi" {
				t.Errorf("expected body message %q, got %v", "hi", body["message"])
			}
		})
	}
}

func TestChatModeDefaultsToChat(t *testing.T) {
	backend := newFakeBackend("key")
	ts := httptest.NewServer(backend.handler())
	defer ts.Close()

	c := newTestClient(t, ts, "key")
	if _, err := c.Chat(context.Background(), "some-workspace", "hi", ""); err != nil {
		t.Fatalf("chat failed: %v", err)
	}

	var body map[string]any
	if err := json.Unmarshal(backend.lastChatBody, &body); err != nil {
		t.Fatalf("failed to parse recorded body: %v", err)
	}
	if body["mode"] != "chat" {
		t.Errorf("expected omitted mode to default to \"chat\", got %v", body["mode"])
	}
}

func TestChatSourcesKeepRawPayload(t *testing.T) {
	backend := newFakeBackend("key")
	ts := httptest.NewServer(backend.handler())
	defer ts.Close()

	c := newTestClient(t, ts, "key")
	result, err := c.Chat(context.Background(), "some-workspace", "hi", "query")
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if result.Text != "hello back" {
		t.Errorf("unexpected text %q", result.Text)
	}
	if len(result.Sources) != 1 {
		t.Fatalf("expected 1 source, got %d", len(result.Sources))
	}

	src := result.Sources[0]
	if src.Title != "doc.pdf" || src.Chunk != "relevant text" {
		t.Errorf("known fields not decoded: %+v", src)
	}
	// Fields the client does not model must survive in the raw payload.
	if !strings.Contains(string(src.Raw), "docpath") {
		t.Errorf("opaque field lost from raw payload: %s", src.Raw)
	}
}

func TestListUsersAdminDenied(t *testing.T) {
	backend := newFakeBackend("key")
	backend.adminOnly = true
	ts := httptest.NewServer(backend.handler())
	defer ts.Close()

	c := newTestClient(t, ts, "key")
	_, err := c.ListUsers(context.Background())
	if err == nil {
		t.Fatal("expected error when admin access is denied")
	}
	if !strings.Contains(err.Error(), "admin") {
		t.Errorf("expected message to name the admin requirement, got %q", err.Error())
	}
}

func TestListUsers(t *testing.T) {
	backend := newFakeBackend("key")
	backend.users = []User{
		{ID: 1, Username: "root", Role: "admin"},
		{ID: 2, Username: "analyst", Role: "default"},
	}
	ts := httptest.NewServer(backend.handler())
	defer ts.Close()

	c := newTestClient(t, ts, "key")
	users, err := c.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("list users failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].Username != "root" || users[0].Role != "admin" {
		t.Errorf("unexpected first user: %+v", users[0])
	}
}

func TestRequestHeaders(t *testing.T) {
	backend := newFakeBackend("secret-key")
	ts := httptest.NewServer(backend.handler())
	defer ts.Close()

	c := newTestClient(t, ts, "secret-key")
	if _, err := c.ListWorkspaces(context.Background()); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	h := backend.lastHeaders
	if got := h.Get("Authorization"); got != "Bearer secret-key" {
		t.Errorf("expected bearer header, got %q", got)
	}
	if got := h.Get("Accept"); got != "application/json" {
		t.Errorf("expected JSON accept header, got %q", got)
	}
	if got := h.Get("Content-Type"); got != "application/json" {
		t.Errorf("expected JSON content type, got %q", got)
	}
}

func TestUpdateEmbeddings(t *testing.T) {
	backend := newFakeBackend("key")
	ts := httptest.NewServer(backend.handler())
	defer ts.Close()

	c := newTestClient(t, ts, "key")
	result, err := c.UpdateEmbeddings(context.Background(), "finance-docs")
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if !result.Success {
		t.Error("expected success=true")
	}
	if !strings.Contains(string(result.ServerResponse), "finance-docs") {
		t.Errorf("expected verbatim server response, got %s", result.ServerResponse)
	}
}

func TestNormalizeHost(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "http://localhost", want: "http://localhost"},
		{in: "localhost", want: "http://localhost"},
		{in: "http://localhost/", want: "http://localhost"},
		{in: "https://rag.internal", want: "https://rag.internal"},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := normalizeHost(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("normalizeHost(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("normalizeHost(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("normalizeHost(%q) = %q, want %q", tt.in, got, tt.want)
		}
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
