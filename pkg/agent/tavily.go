package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	tavilyBaseURL = "https://api.tavily.com"
	// the agent only cares about current events
	tavilySearchDays = 14

	searchRetries = 3
)

// TavilyClient is a minimal client for the Tavily search REST API.
type TavilyClient struct {
	apiKey     string
	maxResults int
	baseURL    string
	client     *http.Client
}

func NewTavilyClient(apiKey string, maxResults int) *TavilyClient {
	return &TavilyClient{
		apiKey:     apiKey,
		maxResults: maxResults,
		baseURL:    tavilyBaseURL,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

type SearchResult struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	Content       string `json:"content"`
	PublishedDate string `json:"published_date"`
}

type tavilySearchRequest struct {
	APIKey      string `json:"api_key"`
	Query       string `json:"query"`
	MaxResults  int    `json:"max_results"`
	SearchDepth string `json:"search_depth"`
	Days        int    `json:"days"`
}

type tavilySearchResponse struct {
	Results []SearchResult `json:"results"`
}

func (c *TavilyClient) Search(ctx context.Context, query string) ([]SearchResult, error) {
	body, err := json.Marshal(tavilySearchRequest{
		APIKey:      c.apiKey,
		Query:       query,
		MaxResults:  c.maxResults,
		SearchDepth: "advanced",
		Days:        tavilySearchDays,
	})
	if err != nil {
		return nil, err
	}

	var searchResp tavilySearchResponse
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("tavily search returned status %d", resp.StatusCode)
		}
		return json.NewDecoder(resp.Body).Decode(&searchResp)
	}

	if err := backoff.Retry(operation, backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), searchRetries), ctx)); err != nil {
		return nil, err
	}
	return searchResp.Results, nil
}
