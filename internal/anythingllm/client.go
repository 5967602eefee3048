// Package anythingllm wraps the REST surface of an AnythingLLM-style RAG
// backend: connection validation, workspace lifecycle, chat and admin
// listing. Every operation performs exactly one outbound request and maps
// the outcome into the client's error taxonomy; there are no retries and no
// client-side caching.
package anythingllm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/network/standard"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// Config holds the connection settings for one client instance. It is
// immutable once the client is built; changing settings means building a new
// client. An empty APIKey is legal at construction and simply causes
// authenticated calls to fail.
type Config struct {
	Host   string `json:"host"`
	Port   string `json:"port"`
	APIKey string `json:"apiKey"`
}

// Client is an authenticated HTTP client for the RAG backend. Safe for
// sequential reuse; it makes no concurrent-safety claims beyond holding no
// mutable state after construction.
type Client struct {
	client  *client.Client
	baseURL string
	authz   string
}

// New builds a client from cfg. The host is normalized (scheme added when
// missing, trailing slash stripped) so the base path is always
// {host}:{port}/api/v1 with no duplicated slashes.
func New(cfg Config) (*Client, error) {
	host, err := normalizeHost(cfg.Host)
	if err != nil {
		return nil, fmt.Errorf("invalid host: %w", err)
	}

	c, err := client.NewClient(
		client.WithDialTimeout(10*time.Second),
		client.WithMaxIdleConnDuration(60*time.Second),
		client.WithDialer(standard.NewDialer()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	return &Client{
		client:  c,
		baseURL: fmt.Sprintf("%s:%s", host, cfg.Port),
		authz:   "Bearer " + cfg.APIKey,
	}, nil
}

// BaseURL returns the normalized scheme://host:port the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// normalizeHost ensures the host carries a scheme and no path or trailing
// slash.
func normalizeHost(host string) (string, error) {
	host = strings.TrimRight(strings.TrimSpace(host), "/")
	if host == "" {
		return "", fmt.Errorf("host is empty")
	}
	if !strings.Contains(host, "://") {
		host = "http://" + host
	}
	u, err := url.Parse(host)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("cannot parse host %q", host)
	}
	return fmt.Sprintf("%s://%s", u.Scheme, u.Host), nil
}

// do performs one request against path and returns the status code and body.
// Transport-level failures come back as a TransportError; HTTP-level status
// handling is left to the caller.
func (c *Client) do(ctx context.Context, method, path string, body []byte) (int, []byte, error) {
	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer func() {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
	}()

	req.SetMethod(method)
	req.SetRequestURI(c.baseURL + path)
	req.Header.Set("Authorization", c.authz)
	req.Header.Set("Accept", "application/json")
	req.Header.SetContentTypeBytes([]byte("application/json"))
	if body != nil {
		req.SetBody(body)
	}

	if err := c.client.Do(ctx, req, resp); err != nil {
		return 0, nil, NewTransportError(err)
	}

	// The response body is released with resp, copy it out.
	respBody := make([]byte, len(resp.Body()))
	copy(respBody, resp.Body())

	return resp.StatusCode(), respBody, nil
}

// ValidateConnection probes the auth endpoint. It never returns an error:
// every outcome, including transport failure, is folded into the returned
// status so callers can render it directly.
func (c *Client) ValidateConnection(ctx context.Context) ConnectionStatus {
	status, _, err := c.do(ctx, consts.MethodGet, endpointAuth, nil)
	if err != nil {
		msg := err.Error()
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			msg = apiErr.UserMessage()
		}
		return ConnectionStatus{Authenticated: false, Error: msg}
	}

	switch {
	case status >= 200 && status < 300:
		return ConnectionStatus{Authenticated: true}
	case status == consts.StatusUnauthorized, status == consts.StatusForbidden:
		return ConnectionStatus{Authenticated: false, Error: "Invalid API Key"}
	default:
		return ConnectionStatus{
			Authenticated: false,
			Error:         fmt.Sprintf("HTTP %d %s", status, http.StatusText(status)),
		}
	}
}

// ListWorkspaces returns all workspaces in server order. A server with no
// workspaces yields an empty slice, not an error.
func (c *Client) ListWorkspaces(ctx context.Context) ([]Workspace, error) {
	status, body, err := c.do(ctx, consts.MethodGet, endpointWorkspaces, nil)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(status, body); err != nil {
		return nil, err
	}

	var listResp workspacesResponse
	if err := sonic.Unmarshal(body, &listResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if listResp.Workspaces == nil {
		return []Workspace{}, nil
	}
	return listResp.Workspaces, nil
}

// GetWorkspace fetches a single workspace by slug. Absence, whether reported
// as a 404 or as an empty workspace object, is a NotFoundError naming the
// slug.
func (c *Client) GetWorkspace(ctx context.Context, slug string) (*Workspace, error) {
	status, body, err := c.do(ctx, consts.MethodGet, fmt.Sprintf(endpointWorkspaceBySlug, slug), nil)
	if err != nil {
		return nil, err
	}
	switch {
	case status == consts.StatusUnauthorized || status == consts.StatusForbidden:
		return nil, NewAuthenticationError(status)
	case status < 200 || status >= 300:
		return nil, NewNotFoundError(slug)
	}

	var wsResp workspaceResponse
	if err := sonic.Unmarshal(body, &wsResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if wsResp.Workspace == nil {
		return nil, NewNotFoundError(slug)
	}
	return wsResp.Workspace, nil
}

// CreateWorkspace creates a workspace with the given display name. The
// server assigns the numeric ID and the URL-safe slug.
func (c *Client) CreateWorkspace(ctx context.Context, name string) (*Workspace, error) {
	reqBody, err := sonic.Marshal(createWorkspaceRequest{Name: name})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	status, body, err := c.do(ctx, consts.MethodPost, endpointWorkspaceNew, reqBody)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(status, body); err != nil {
		return nil, err
	}

	var wsResp workspaceResponse
	if err := sonic.Unmarshal(body, &wsResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if wsResp.Workspace == nil {
		return nil, NewRequestError(status, http.StatusText(status), "server returned no workspace")
	}
	return wsResp.Workspace, nil
}

// DeleteWorkspace deletes the workspace identified by slug. Deletion is not
// idempotent: deleting a slug the server no longer knows fails with a
// RequestError rather than succeeding silently.
func (c *Client) DeleteWorkspace(ctx context.Context, slug string) (*DeleteResult, error) {
	status, body, err := c.do(ctx, consts.MethodDelete, fmt.Sprintf(endpointWorkspaceBySlug, slug), nil)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(status, body); err != nil {
		return nil, err
	}
	return &DeleteResult{Success: true}, nil
}

// UpdateEmbeddings triggers a server-side re-indexing job for the workspace.
// Fire-and-forget: the server's response is passed through verbatim and the
// client never polls for job completion.
func (c *Client) UpdateEmbeddings(ctx context.Context, slug string) (*RefreshResult, error) {
	status, body, err := c.do(ctx, consts.MethodPost, fmt.Sprintf(endpointWorkspaceEmbeddings, slug), []byte("{}"))
	if err != nil {
		return nil, err
	}
	if err := checkStatus(status, body); err != nil {
		return nil, err
	}
	return &RefreshResult{Success: true, ServerResponse: body}, nil
}

// Chat sends a message to the workspace. Mode is "chat" (history-aware) or
// "query" (single-shot); an empty mode defaults to "chat" so the request
// body always carries an explicit mode.
func (c *Client) Chat(ctx context.Context, slug, message, mode string) (*ChatResult, error) {
	if mode == "" {
		mode = ModeChat
	}
	reqBody, err := sonic.Marshal(chatRequest{Message: message, Mode: mode})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	status, body, err := c.do(ctx, consts.MethodPost, fmt.Sprintf(endpointWorkspaceChat, slug), reqBody)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(status, body); err != nil {
		return nil, err
	}

	var chatResp chatResponse
	if err := sonic.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if chatResp.Sources == nil {
		chatResp.Sources = []Citation{}
	}
	return &ChatResult{Text: chatResp.TextResponse, Sources: chatResp.Sources}, nil
}

// ListUsers lists backend accounts. The endpoint is admin-only; a denial
// keeps the RequestError kind but names the privilege problem in the message
// so callers can tell it apart from a generic failure.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	status, body, err := c.do(ctx, consts.MethodGet, endpointSystemUsers, nil)
	if err != nil {
		return nil, err
	}
	if status == consts.StatusUnauthorized || status == consts.StatusForbidden {
		return nil, &APIError{
			Code:    "REQUEST_ERROR",
			Message: "listing users requires an admin API key",
			Status:  status,
			Err:     ErrRequest,
		}
	}
	if err := checkStatus(status, body); err != nil {
		return nil, err
	}

	var listResp usersResponse
	if err := sonic.Unmarshal(body, &listResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if listResp.Users == nil {
		return []User{}, nil
	}
	return listResp.Users, nil
}

// checkStatus maps a non-2xx status into the error taxonomy, keeping the
// response body text for diagnostics.
func checkStatus(status int, body []byte) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == consts.StatusUnauthorized || status == consts.StatusForbidden:
		return NewAuthenticationError(status)
	default:
		return NewRequestError(status, http.StatusText(status), strings.TrimSpace(string(body)))
	}
}
