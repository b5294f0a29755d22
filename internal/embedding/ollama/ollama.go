// Package ollama provides an embedding client for a local Ollama server.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"hawkai/internal/domain"
)

const (
	defaultBaseURL = "http://localhost:11434"
	defaultModel   = "mxbai-embed-large"
	defaultTimeout = 30 * time.Second
)

// Config configures the Ollama embeddings client.
type Config struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client calls the Ollama /api/embeddings endpoint. It must be the same
// model at index-build time and query time for a given corpus.
type Client struct {
	client    *http.Client
	baseURL   string
	model     string
	dimension int
}

type embedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embedResponse struct {
	Embedding []float64 `json:"embedding"`
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
	}
}

// Name returns the identifier of this embedder implementation.
func (c *Client) Name() string { return "ollama" }

// Dimension returns the vector size, known after the first successful embed.
func (c *Client) Dimension() int { return c.dimension }

// Embed returns an embedding vector for the given text.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	body, err := json.Marshal(embedRequest{Model: c.model, Prompt: text})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &domain.ExternalServiceError{Service: "embedding", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(resp.Body)
		return nil, &domain.ExternalServiceError{
			Service: "embedding",
			Err:     fmt.Errorf("ollama status %d: %s", resp.StatusCode, string(payload)),
		}
	}

	var out embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &domain.ExternalServiceError{Service: "embedding", Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(out.Embedding) == 0 {
		return nil, &domain.ExternalServiceError{Service: "embedding", Err: fmt.Errorf("empty embedding for model %s", c.model)}
	}
	if c.dimension == 0 {
		c.dimension = len(out.Embedding)
	}
	return out.Embedding, nil
}

// Ping checks that the server is reachable without running inference.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", http.NoBody)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return &domain.ExternalServiceError{Service: "embedding", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &domain.ExternalServiceError{Service: "embedding", Err: fmt.Errorf("ollama status %d", resp.StatusCode)}
	}
	return nil
}
