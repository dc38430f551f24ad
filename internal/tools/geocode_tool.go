// In file: internal/tools/geocode_tool.go
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

// --- Geocoding Tool Implementation ---

const (
	opencageBaseURL = "https://api.opencagedata.com/geocode/v1/json"
	opencageKeyHint = "Please get a free key from https://opencagedata.com/pricing and set the OPENCAGE_API_KEY environment variable."
)

// GeocodeTool resolves a place name to latitude/longitude coordinates using
// the OpenCage Geocoding API. It is registered as a tool in its own right and
// is also called directly by the weather tool, which needs coordinates before
// it can query the forecast service.
type GeocodeTool struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Statically verify that GeocodeTool implements the ToolExecutor interface.
var _ ToolExecutor = (*GeocodeTool)(nil)

// NewGeocodeTool creates a new instance of the GeocodeTool.
//
// An empty API key is accepted on purpose: the tool still registers and
// describes itself to the reasoning service, and a dispatch to it returns the
// credential error string without touching the network. Startup never fails
// over a missing key.
func NewGeocodeTool(apiKey string) *GeocodeTool {
	return &GeocodeTool{
		apiKey:  apiKey,
		baseURL: opencageBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Definition describes the tool to the reasoning service.
func (gt *GeocodeTool) Definition() Tool {
	return NewFunctionTool(
		"get_location_coords",
		"Get the latitude and longitude for a given location name.",
		JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"location_name": {
					Type:        "string",
					Description: "The name of the city or location.",
				},
			},
			Required: []string{"location_name"},
		},
	)
}

// Execute unmarshals the arguments and performs the lookup.
func (gt *GeocodeTool) Execute(arguments string) (string, error) {
	var args struct {
		LocationName string `json:"location_name"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return "", fmt.Errorf("invalid arguments for geocoding tool: %w", err)
	}
	return gt.locate(args.LocationName), nil
}

// opencageResponse is the slice of the OpenCage reply the tool reads.
type opencageResponse struct {
	Results []struct {
		Geometry struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"geometry"`
	} `json:"results"`
}

// Coordinates is the successful result shape, returned as compact JSON so it
// is equally easy for the user, the weather tool, and the logs to consume.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// locate performs the actual geocoding call and always returns a string:
// either the coordinates JSON or one of the fault strings. The weather tool
// calls it directly so both tools share a single geocoding path.
func (gt *GeocodeTool) locate(locationName string) string {
	log.Printf("🛠️ get_location_coords: looking up %q", locationName)

	if locationName == "" {
		return "Error: Location name cannot be empty."
	}
	if gt.apiKey == "" {
		return faults.CredentialMissing("OPENCAGE_API_KEY", opencageKeyHint)
	}

	requestURL := fmt.Sprintf("%s?q=%s&key=%s", gt.baseURL, url.QueryEscape(locationName), url.QueryEscape(gt.apiKey))
	req, err := http.NewRequest("GET", requestURL, nil)
	if err != nil {
		return faults.TransportFailure("OpenCage", err)
	}
	req.Header.Set("User-Agent", "Scout-Agent/1.0")

	resp, err := gt.httpClient.Do(req)
	if err != nil {
		return faults.TransportFailure("OpenCage", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return faults.TransportFailure("OpenCage", err)
	}
	if resp.StatusCode != http.StatusOK {
		return faults.ProviderHTTPError("OpenCage", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var apiResp opencageResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return faults.ResponseParseFailure("OpenCage", err)
	}
	if len(apiResp.Results) == 0 {
		return fmt.Sprintf("Error: No coordinates found for location '%s'.", locationName)
	}

	geometry := apiResp.Results[0].Geometry
	coords, err := json.Marshal(Coordinates{Latitude: geometry.Lat, Longitude: geometry.Lng})
	if err != nil {
		return faults.ResponseParseFailure("OpenCage", err)
	}
	return string(coords)
}
