// Package graphstore publishes node-link exports to an external graph
// service, the downstream consumer of completed conversions. Publishing is
// fire-and-forget from the tree's point of view: a failure here can never
// corrupt the in-memory corpus.
package graphstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/wenjia-h/corpustree/internal/tree"
)

// Client communicates with the graph service HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// graphRequest is the body for PUT /graphs/{id}.
type graphRequest struct {
	Name      string        `json:"name,omitempty"`
	NodeCount int           `json:"node_count"`
	EdgeCount int           `json:"edge_count"`
	Graph     tree.NodeLink `json:"graph"`
}

// PublishGraph uploads a corpus export under the given id.
func (c *Client) PublishGraph(ctx context.Context, corpusID, name string, nl tree.NodeLink) error {
	body, err := json.Marshal(graphRequest{
		Name:      name,
		NodeCount: len(nl.Nodes),
		EdgeCount: len(nl.Links),
		Graph:     nl,
	})
	if err != nil {
		return fmt.Errorf("marshal graph: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/graphs/"+corpusID, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("publish graph: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("publish graph %s: status %d: %s", corpusID, resp.StatusCode, string(respBody))
	}
	return nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
