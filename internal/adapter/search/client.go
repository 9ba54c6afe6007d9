// Package search provides the vector-search collaborator client and the
// degrade-to-empty retriever built on top of it.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client queries one logical collection of a semantic-search service.
type Client struct {
	baseURL    string
	collection string
	httpClient *http.Client
}

// NewClient creates a new search client scoped to collection.
func NewClient(baseURL, collection string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		collection: collection,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Document is one hit returned by the backend, already in relevance
// order. The client does not re-rank.
type Document struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

type searchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

type searchResponse struct {
	Results []Document `json:"results"`
}

// Search returns the top-k documents for query.
func (c *Client) Search(ctx context.Context, query string, topK int) ([]Document, error) {
	body, err := json.Marshal(searchRequest{Query: query, TopK: topK})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/collections/%s/search", c.baseURL, c.collection)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API error [%d]: %s", resp.StatusCode, string(respBody))
	}

	var result searchResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return result.Results, nil
}
