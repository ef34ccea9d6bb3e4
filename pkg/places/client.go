// Package places provides clients for the Google Maps geocoding, nearby
// search and place details APIs.
package places

import (
	"context"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://maps.googleapis.com"

// ErrNoResults is returned by Geocode when the provider matches nothing for
// the given location string.
var ErrNoResults = eris.New("places: no results")

// Client performs Google Maps API operations.
type Client interface {
	// Geocode converts a location string to coordinates and a formatted address.
	Geocode(ctx context.Context, location string) (*GeoResult, error)
	// NearbySearch returns businesses within a radius of a coordinate.
	NearbySearch(ctx context.Context, q NearbyQuery) ([]RawPlace, error)
	// PlaceDetails fetches contact-level fields for a place. A provider-side
	// failure returns (nil, nil): detail data is best-effort.
	PlaceDetails(ctx context.Context, placeID string) (*PlaceDetail, error)
}

// GeoResult is the geocoded origin of a search.
type GeoResult struct {
	Lat              float64
	Lng              float64
	FormattedAddress string
}

// NearbyQuery describes a nearby-search request.
type NearbyQuery struct {
	Lat        float64
	Lng        float64
	RadiusKm   int
	Keyword    string // optional business-type filter
	MaxResults int    // cap applied client-side; 0 means no cap
}

// RawPlace is a single nearby-search result as returned by the provider.
type RawPlace struct {
	PlaceID  string       `json:"place_id"`
	Name     string       `json:"name"`
	Vicinity string       `json:"vicinity"`
	Geometry placeGeometry `json:"geometry"`
	Rating   float64      `json:"rating"`
	Reviews  int          `json:"user_ratings_total"`
	Types    []string     `json:"types"`
}

type placeGeometry struct {
	Location latLng `json:"location"`
}

type latLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Lat returns the place latitude, 0 when the provider sent no geometry.
func (p RawPlace) Lat() float64 { return p.Geometry.Location.Lat }

// Lng returns the place longitude, 0 when the provider sent no geometry.
func (p RawPlace) Lng() float64 { return p.Geometry.Location.Lng }

// PlaceDetail holds the richer fields from the Place Details API.
type PlaceDetail struct {
	Name             string       `json:"name"`
	FormattedAddress string       `json:"formatted_address"`
	Phone            string       `json:"formatted_phone_number"`
	Website          string       `json:"website"`
	Rating           float64      `json:"rating"`
	Reviews          int          `json:"user_ratings_total"`
	OpeningHours     openingHours `json:"opening_hours"`
}

type openingHours struct {
	WeekdayText []string `json:"weekday_text"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit sets the requests-per-second limit for Maps API calls.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a Google Maps API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: rate.NewLimiter(10, 1),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}
