package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://google.serper.dev/search"

	// fetchedResults is how many organic results we ask the provider for;
	// keptResults is how many make it into the formatted block.
	fetchedResults = 5
	keptResults    = 3

	noResultsMessage = "No search results found."
	apologyMessage   = "I wasn't able to search the web just now, so I'll answer from what I already know."
)

// Search_Result is a single organic entry from the Serper API.
type Search_Result struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

type serperRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num"`
}

type serperResponse struct {
	Organic []Search_Result `json:"organic"`
}

// Client wraps the Serper web search API. Search never returns an error: any
// provider fault is downgraded to a fixed apology string so a failed lookup
// degrades the conversation instead of aborting it.
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// NewClientFromEnv builds a client keyed by SERPER_API_KEY. The client is
// still constructed when the key is absent; Enabled reports whether searching
// is actually possible.
func NewClientFromEnv() *Client {
	return &Client{
		APIKey:     os.Getenv("SERPER_API_KEY"),
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Enabled reports whether a search credential is configured.
func (c *Client) Enabled() bool {
	return c.APIKey != ""
}

// Search runs the query and returns formatted markdown, the no-results
// message, or the apology string. It never propagates a provider fault.
func (c *Client) Search(ctx context.Context, query string) string {
	results, err := c.fetch(ctx, query)
	if err != nil {
		return apologyMessage
	}
	return Format_Results(query, results)
}

func (c *Client) fetch(ctx context.Context, query string) ([]Search_Result, error) {
	baseURL := c.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	jsonData, err := json.Marshal(serperRequest{Q: query, Num: fetchedResults})
	if err != nil {
		return nil, fmt.Errorf("error marshalling request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request to Serper API: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Serper API request failed with status %d: %s", resp.StatusCode, string(responseBody))
	}

	var result serperResponse
	if err := json.Unmarshal(responseBody, &result); err != nil {
		return nil, fmt.Errorf("error unmarshalling Serper API response: %w", err)
	}

	return result.Organic, nil
}

// Format_Results converts organic results into a markdown block: a header
// quoting the query, then up to three numbered entries with a bolded title,
// the snippet, and a markdown link back to the source.
func Format_Results(query string, results []Search_Result) string {
	if len(results) == 0 {
		return noResultsMessage
	}

	if len(results) > keptResults {
		results = results[:keptResults]
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Here's what I found for %q:", query))
	for i, r := range results {
		builder.WriteString("\n\n")
		builder.WriteString(fmt.Sprintf("%d. **%s**\n%s\n[%s](%s)", i+1, r.Title, r.Snippet, r.Title, r.Link))
	}
	return builder.String()
}
