// In file: internal/tools/search_tool.go
package tools

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/coriolis-labs/scout/internal/faults"
)

// --- Search Tool Implementation ---

const (
	serpapiBaseURL = "https://serpapi.com/search.json"
	serpapiKeyHint = "Please get a key from https://serpapi.com/users/sign_up and set the SERPAPI_API_KEY environment variable."

	// searchResultLimit caps how many organic results are relayed back.
	// Reasoning-service prompts and chat responses stay readable when the
	// tool returns a handful of hits instead of a full results page.
	searchResultLimit = 5
)

// SearchTool performs a Google web search through the SerpApi service and
// returns the top organic results in a numbered, skimmable format.
type SearchTool struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Statically verify that SearchTool implements the ToolExecutor interface.
var _ ToolExecutor = (*SearchTool)(nil)

// NewSearchTool creates a new instance of the SearchTool. As with the other
// tools, an empty API key defers the failure to execution time, where it
// becomes a credential error string rather than a startup crash.
func NewSearchTool(apiKey string) *SearchTool {
	return &SearchTool{
		apiKey:  apiKey,
		baseURL: serpapiBaseURL,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// Definition describes the tool to the reasoning service.
func (st *SearchTool) Definition() Tool {
	return NewFunctionTool(
		"get_search_results",
		"Perform a web search for a given query.",
		JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"query": {
					Type:        "string",
					Description: "The search query string.",
				},
			},
			Required: []string{"query"},
		},
	)
}

// serpapiResponse is the slice of the SerpApi reply the tool reads.
type serpapiResponse struct {
	OrganicResults []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic_results"`
}

// Execute runs the search and formats the top results.
func (st *SearchTool) Execute(arguments string) (string, error) {
	var args struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return "", fmt.Errorf("invalid arguments for search tool: %w", err)
	}

	log.Printf("🛠️ get_search_results: searching for %q", args.Query)
	if args.Query == "" {
		return "Error: Search query cannot be empty.", nil
	}
	if st.apiKey == "" {
		return faults.CredentialMissing("SERPAPI_API_KEY", serpapiKeyHint), nil
	}

	base, err := url.Parse(st.baseURL)
	if err != nil {
		return faults.TransportFailure("SerpApi", err), nil
	}
	params := url.Values{}
	params.Add("engine", "google")
	params.Add("q", args.Query)
	params.Add("api_key", st.apiKey)
	base.RawQuery = params.Encode()

	req, err := http.NewRequest("GET", base.String(), nil)
	if err != nil {
		return faults.TransportFailure("SerpApi", err), nil
	}
	req.Header.Set("User-Agent", "Scout-Agent/1.0")

	resp, err := st.httpClient.Do(req)
	if err != nil {
		return faults.TransportFailure("SerpApi", err), nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return faults.TransportFailure("SerpApi", err), nil
	}
	if resp.StatusCode != http.StatusOK {
		return faults.ProviderHTTPError("SerpApi", resp.StatusCode, strings.TrimSpace(string(body))), nil
	}

	var apiResp serpapiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return faults.ResponseParseFailure("SerpApi", err), nil
	}
	if len(apiResp.OrganicResults) == 0 {
		return "No search results found.", nil
	}

	results := apiResp.OrganicResults
	if len(results) > searchResultLimit {
		results = results[:searchResultLimit]
	}
	formatted := make([]string, 0, len(results))
	for i, result := range results {
		formatted = append(formatted, fmt.Sprintf("%d. %s\n   Link: %s\n   Snippet: %s", i+1, result.Title, result.Link, result.Snippet))
	}

	out, err := json.Marshal(formatted)
	if err != nil {
		return faults.ResponseParseFailure("SerpApi", err), nil
	}
	return string(out), nil
}
