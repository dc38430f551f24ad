// In file: internal/tools/weather_tool.go
package tools

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/coriolis-labs/scout/internal/faults"
)

// --- Weather Tool Implementation ---

const openMeteoBaseURL = "https://api.open-meteo.com/v1/forecast"

// WeatherTool reports the current weather for a named location. Open-Meteo
// only accepts coordinates, so the tool first resolves the location through
// the geocoding tool and then queries the forecast endpoint. Open-Meteo
// itself needs no API key.
type WeatherTool struct {
	geocoder   *GeocodeTool
	baseURL    string
	httpClient *http.Client
}

// Statically verify that WeatherTool implements the ToolExecutor interface.
var _ ToolExecutor = (*WeatherTool)(nil)

// NewWeatherTool creates a new instance of the WeatherTool. The geocoder is
// shared with the standalone geocoding tool so both resolve names the same
// way, including the same credential handling.
func NewWeatherTool(geocoder *GeocodeTool) *WeatherTool {
	return &WeatherTool{
		geocoder: geocoder,
		baseURL:  openMeteoBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Definition describes the tool to the reasoning service.
func (wt *WeatherTool) Definition() Tool {
	return NewFunctionTool(
		"get_current_weather",
		"Get the current weather for a specified location.",
		JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"location": {
					Type:        "string",
					Description: "The city and state, e.g. San Francisco, CA",
				},
			},
			Required: []string{"location"},
		},
	)
}

// openMeteoResponse is the slice of the Open-Meteo reply the tool reads.
type openMeteoResponse struct {
	CurrentWeather struct {
		Temperature float64 `json:"temperature"`
		WindSpeed   float64 `json:"windspeed"`
	} `json:"current_weather"`
}

// Execute resolves the location to coordinates and fetches the current
// weather. Geocoding runs exactly once per call; if it fails, its error
// string is returned unchanged and the forecast service is never contacted.
func (wt *WeatherTool) Execute(arguments string) (string, error) {
	var args struct {
		Location string `json:"location"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return "", fmt.Errorf("invalid arguments for weather tool: %w", err)
	}

	log.Printf("🛠️ get_current_weather: fetching weather for %q", args.Location)
	if args.Location == "" {
		return "Error: Location cannot be empty.", nil
	}

	coordsResult := wt.geocoder.locate(args.Location)

	// A successful lookup is a Coordinates JSON object; anything that does
	// not decode as one is a geocoding error string and is passed through.
	var coords Coordinates
	if err := json.Unmarshal([]byte(coordsResult), &coords); err != nil {
		return coordsResult, nil
	}

	requestURL := fmt.Sprintf("%s?latitude=%g&longitude=%g&current_weather=true", wt.baseURL, coords.Latitude, coords.Longitude)
	req, err := http.NewRequest("GET", requestURL, nil)
	if err != nil {
		return faults.TransportFailure("Open-Meteo", err), nil
	}
	req.Header.Set("User-Agent", "Scout-Agent/1.0")

	resp, err := wt.httpClient.Do(req)
	if err != nil {
		return faults.TransportFailure("Open-Meteo", err), nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return faults.TransportFailure("Open-Meteo", err), nil
	}
	if resp.StatusCode != http.StatusOK {
		return faults.ProviderHTTPError("Open-Meteo", resp.StatusCode, strings.TrimSpace(string(body))), nil
	}

	var apiResp openMeteoResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return faults.ResponseParseFailure("Open-Meteo", err), nil
	}

	current := apiResp.CurrentWeather
	return fmt.Sprintf("The current weather in %s is %g°C with a wind speed of %g km/h.", args.Location, current.Temperature, current.WindSpeed), nil
}
