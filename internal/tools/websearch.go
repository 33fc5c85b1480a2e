package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	tavilyEndpoint   = "https://api.tavily.com/search"
	tavilyMaxResults = 5
)

// WebSearch queries the Tavily search API for recent news and web content.
type WebSearch struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

var _ Tool = (*WebSearch)(nil)

// NewWebSearch constructs the Tavily-backed web search tool.
func NewWebSearch(apiKey string) *WebSearch {
	return &WebSearch{
		apiKey:   apiKey,
		endpoint: tavilyEndpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (w *WebSearch) Name() string { return "web_search" }

func (w *WebSearch) Description() string {
	return "Search the web for recent news and articles about a query."
}

func (w *WebSearch) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "The search query",
			},
		},
		"required": []string{"query"},
	}
}

// Call posts the query to Tavily and returns the top snippets as JSON text.
func (w *WebSearch) Call(ctx context.Context, args json.RawMessage) (string, error) {
	var input struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal(args, &input); err != nil {
		return "", fmt.Errorf("decode arguments: %w", err)
	}
	if strings.TrimSpace(input.Query) == "" {
		return "", errors.New("query must not be empty")
	}
	if strings.TrimSpace(w.apiKey) == "" {
		return "", errors.New("tavily API key is missing")
	}

	payload, err := json.Marshal(map[string]any{
		"query":   input.Query,
		"api_key": w.apiKey,
		"depth":   "basic",
	})
	if err != nil {
		return "", err
	}

	resp, err := w.post(ctx, payload)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("tavily http %d", resp.StatusCode)
	}

	var response struct {
		Results []struct {
			Title   string `json:"title"`
			URL     string `json:"url"`
			Content string `json:"content"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("decode tavily response: %w", err)
	}

	type snippet struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Snippet string `json:"snippet"`
	}
	results := make([]snippet, 0, tavilyMaxResults)
	for _, r := range response.Results {
		results = append(results, snippet{Title: r.Title, URL: r.URL, Snippet: r.Content})
		if len(results) >= tavilyMaxResults {
			break
		}
	}

	out, err := json.Marshal(results)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// post sends the request, backing off and retrying on 429 with a doubling
// delay capped at 30 seconds.
func (w *WebSearch) post(ctx context.Context, payload []byte) (*http.Response, error) {
	delay := time.Second
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := w.client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}
		resp.Body.Close()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		if delay < 30*time.Second {
			delay *= 2
		}
	}
}
