package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"nephro-assistant-be/pkg/store"
)

const defaultBaseURL = "https://serpapi.com/search"

// resultCount is the fixed number of organic results requested and surfaced.
const resultCount = 3

// Result is a web search outcome. Failures are reported in-band through the
// Answer text so a search outage never aborts a chat turn.
type Result struct {
	Answer  string
	Sources []store.WebSource
}

// Client queries SerpAPI's Google engine. A missing API key degrades every
// search to an in-band "unavailable" result without touching the network.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewClientWithBaseURL is used by tests to point the client at a stub server.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = baseURL
	return c
}

type serpResponse struct {
	AnswerBox struct {
		Answer string `json:"answer"`
	} `json:"answer_box"`
	OrganicResults []struct {
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic_results"`
}

// Search runs the query through SerpAPI. The answer box is preferred; otherwise
// up to three organic snippets are joined with blank lines. Non-200 responses
// and transport errors become a generic in-band failure message.
func (c *Client) Search(ctx context.Context, query string) Result {
	if c.apiKey == "" {
		return Result{Answer: "Web search unavailable: SERPAPI_API_KEY not set.", Sources: []store.WebSource{}}
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("api_key", c.apiKey)
	params.Set("engine", "google")
	params.Set("num", fmt.Sprintf("%d", resultCount))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return Result{Answer: "Web search failed.", Sources: []store.WebSource{}}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{Answer: "Web search failed.", Sources: []store.WebSource{}}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{Answer: "Web search failed.", Sources: []store.WebSource{}}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{Answer: "Web search failed.", Sources: []store.WebSource{}}
	}

	var data serpResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return Result{Answer: "Web search failed.", Sources: []store.WebSource{}}
	}

	answer := "No good web answer found."
	sources := []store.WebSource{}

	if data.AnswerBox.Answer != "" {
		answer = data.AnswerBox.Answer
	} else if len(data.OrganicResults) > 0 {
		var snippets []string
		for _, r := range data.OrganicResults {
			if r.Snippet != "" {
				snippets = append(snippets, r.Snippet)
			}
		}
		if len(snippets) > 0 {
			answer = strings.Join(snippets, "\n\n")
		}
		for i, r := range data.OrganicResults {
			if i >= resultCount {
				break
			}
			sources = append(sources, store.WebSource{Link: r.Link, Snippet: r.Snippet})
		}
	}

	return Result{Answer: answer, Sources: sources}
}
