package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Client talks to the external geocoding and directions providers. Both
// default to the public OSM endpoints and can be pointed elsewhere via
// GEOCODER_URL and DIRECTIONS_URL.
type Client struct {
	httpClient  *http.Client
	geocodeBase string // Nominatim-compatible
	routeBase   string // OSRM-compatible
}

func NewClient() *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		geocodeBase: envOr("GEOCODER_URL", "https://nominatim.openstreetmap.org"),
		routeBase:   envOr("DIRECTIONS_URL", "https://router.project-osrm.org"),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Geocode resolves a place name to a lng/lat pair using the first match.
func (c *Client) Geocode(ctx context.Context, name string) (float64, float64, error) {
	u := fmt.Sprintf("%s/search?q=%s&format=json&limit=1", c.geocodeBase, url.QueryEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, 0, err
	}
	// Nominatim requires an identifying UA
	req.Header.Set("User-Agent", "transit-info/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return 0, 0, err
	}
	if len(results) == 0 {
		return 0, 0, fmt.Errorf("no geocoding result for %q", name)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, err
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, err
	}
	return lng, lat, nil
}

// RouteLine asks the directions provider for a path through the given
// [lng, lat] waypoints and returns the GeoJSON LineString geometry.
func (c *Client) RouteLine(ctx context.Context, coords [][]float64) (json.RawMessage, error) {
	if len(coords) < 2 {
		return nil, errors.New("at least two waypoints are required")
	}

	pairs := make([]string, 0, len(coords))
	for _, p := range coords {
		pairs = append(pairs, fmt.Sprintf("%f,%f", p[0], p[1]))
	}
	u := fmt.Sprintf("%s/route/v1/driving/%s?overview=full&geometries=geojson",
		c.routeBase, strings.Join(pairs, ";"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directions provider returned status %d", resp.StatusCode)
	}

	var out struct {
		Code   string `json:"code"`
		Routes []struct {
			Geometry json.RawMessage `json:"geometry"`
		} `json:"routes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if out.Code != "Ok" || len(out.Routes) == 0 {
		return nil, fmt.Errorf("directions lookup failed: %s", out.Code)
	}
	return out.Routes[0].Geometry, nil
}
