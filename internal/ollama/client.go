// Package ollama is a minimal client for an Ollama-style inference daemon:
// a root reachability probe, a one-shot generate call and the installed
// model listing. It deliberately stays a thin two-and-a-half endpoint
// wrapper; workspace semantics live on the RAG backend.
package ollama

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/network/standard"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const (
	endpointRoot     = "/"
	endpointGenerate = "/api/generate"
	endpointTags     = "/api/tags"
)

// Client talks to one Ollama daemon. No auth: the daemon is a local,
// unauthenticated service.
type Client struct {
	client  *client.Client
	baseURL string
}

// New builds a client for the daemon at baseURL (e.g. http://localhost:11434).
func New(baseURL string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL is empty")
	}
	c, err := client.NewClient(
		client.WithDialTimeout(10*time.Second),
		client.WithDialer(standard.NewDialer()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}
	return &Client{client: c, baseURL: trimSlash(baseURL)}, nil
}

func trimSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (int, []byte, error) {
	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer func() {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
	}()

	req.SetMethod(method)
	req.SetRequestURI(c.baseURL + path)
	if body != nil {
		req.Header.SetContentTypeBytes([]byte("application/json"))
		req.SetBody(body)
	}

	if err := c.client.Do(ctx, req, resp); err != nil {
		return 0, nil, fmt.Errorf("could not reach the Ollama daemon: %w", err)
	}

	respBody := make([]byte, len(resp.Body()))
	copy(respBody, resp.Body())
	return resp.StatusCode(), respBody, nil
}

// Ping probes the daemon root. A running daemon answers 200 with a plain
// banner.
func (c *Client) Ping(ctx context.Context) error {
	status, _, err := c.do(ctx, consts.MethodGet, endpointRoot, nil)
	if err != nil {
		return err
	}
	if status != consts.StatusOK {
		return fmt.Errorf("daemon answered HTTP %d %s", status, http.StatusText(status))
	}
	return nil
}

// Generate runs a single non-streaming completion against model.
func (c *Client) Generate(ctx context.Context, model, prompt string) (*GenerateResult, error) {
	reqBody, err := sonic.Marshal(generateRequest{Model: model, Prompt: prompt, Stream: false})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	status, body, err := c.do(ctx, consts.MethodPost, endpointGenerate, reqBody)
	if err != nil {
		return nil, err
	}
	if status != consts.StatusOK {
		return nil, fmt.Errorf("generate failed with HTTP %d %s: %s", status, http.StatusText(status), body)
	}

	var genResp generateResponse
	if err := sonic.Unmarshal(body, &genResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return &GenerateResult{Text: genResp.Response, Model: genResp.Model, Done: genResp.Done}, nil
}

// ListModels returns the models installed on the daemon.
func (c *Client) ListModels(ctx context.Context) ([]Model, error) {
	status, body, err := c.do(ctx, consts.MethodGet, endpointTags, nil)
	if err != nil {
		return nil, err
	}
	if status != consts.StatusOK {
		return nil, fmt.Errorf("listing models failed with HTTP %d %s", status, http.StatusText(status))
	}

	var tagsResp tagsResponse
	if err := sonic.Unmarshal(body, &tagsResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if tagsResp.Models == nil {
		return []Model{}, nil
	}
	return tagsResp.Models, nil
}
