// Package geocode resolves coordinates to a street address via the
// Nominatim reverse-geocoding API.
//
// Lookups are strictly best-effort: a timeout or service error yields an
// empty address, never a hard failure, because the operator can always type
// the address by hand.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dasrj/oficiogen/internal/metrics"
)

// =============================================================================
// Client
// =============================================================================

// Config holds the reverse-geocoding client settings.
type Config struct {
	// BaseURL is the Nominatim endpoint root.
	// Example: "https://nominatim.openstreetmap.org"
	BaseURL string

	// UserAgent identifies this tool to the service, as its usage policy
	// requires.
	UserAgent string

	// Timeout bounds one lookup end to end.
	Timeout time.Duration
}

// Client performs reverse-geocoding lookups.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	logger    *slog.Logger
}

// NewClient creates a reverse-geocoding client.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		http:      &http.Client{Timeout: cfg.Timeout},
		logger:    logger,
	}
}

// Address mirrors the fields of a Nominatim reverse response we use.
type Address struct {
	Road          string `json:"road"`
	HouseNumber   string `json:"house_number"`
	Suburb        string `json:"suburb"`
	Neighbourhood string `json:"neighbourhood"`
	City          string `json:"city"`
	Town          string `json:"town"`
	Village       string `json:"village"`
	State         string `json:"state"`
	Postcode      string `json:"postcode"`
}

type reverseResponse struct {
	Address Address `json:"address"`
	Error   string  `json:"error"`
}

// Reverse resolves the given coordinates to a formatted address. An empty
// string with a nil error means the lookup failed softly (timeout, service
// error, or no result); callers treat that as "type it yourself".
func (c *Client) Reverse(ctx context.Context, lat, lon string) (string, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", lat)
	q.Set("lon", lon)
	q.Set("accept-language", "pt-BR")

	reqURL := fmt.Sprintf("%s/reverse?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		metrics.GeocodeLookups.WithLabelValues("error").Inc()
		return "", err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.GeocodeLookups.WithLabelValues("timeout").Inc()
		c.logger.Warn("reverse geocoding request failed", "lat", lat, "lon", lon, "error", err)
		return "", nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.GeocodeLookups.WithLabelValues("error").Inc()
		c.logger.Warn("reverse geocoding returned non-OK status", "status", resp.StatusCode)
		return "", nil
	}

	var body reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		metrics.GeocodeLookups.WithLabelValues("error").Inc()
		c.logger.Warn("failed to decode reverse geocoding response", "error", err)
		return "", nil
	}
	if body.Error != "" {
		metrics.GeocodeLookups.WithLabelValues("empty").Inc()
		return "", nil
	}

	formatted := FormatAddress(body.Address)
	if formatted == "" {
		metrics.GeocodeLookups.WithLabelValues("empty").Inc()
		return "", nil
	}

	metrics.GeocodeLookups.WithLabelValues("ok").Inc()
	return formatted, nil
}

// FormatAddress assembles the display address from the response components:
// street with house number, then neighbourhood, city, state, and postal code.
func FormatAddress(a Address) string {
	var parts []string

	if a.Road != "" {
		street := a.Road
		if a.HouseNumber != "" {
			street += ", " + a.HouseNumber
		}
		parts = append(parts, street)
	}

	if bairro := firstNonEmpty(a.Suburb, a.Neighbourhood); bairro != "" {
		parts = append(parts, bairro)
	}
	if cidade := firstNonEmpty(a.City, a.Town, a.Village); cidade != "" {
		parts = append(parts, cidade)
	}
	if a.State != "" {
		parts = append(parts, a.State)
	}
	if a.Postcode != "" {
		parts = append(parts, "CEP: "+a.Postcode)
	}

	return strings.Join(parts, ", ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
