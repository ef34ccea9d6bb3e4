package places

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/rotisserie/eris"
)

// geocodeResponse is the JSON response from the Geocoding API.
type geocodeResponse struct {
	Results []geocodeResult `json:"results"`
	Status  string          `json:"status"`
}

type geocodeResult struct {
	Geometry struct {
		Location latLng `json:"location"`
	} `json:"geometry"`
	FormattedAddress string `json:"formatted_address"`
}

func (c *httpClient) Geocode(ctx context.Context, location string) (*GeoResult, error) {
	params := url.Values{
		"address": {location},
		"key":     {c.apiKey},
	}

	body, err := c.get(ctx, "/maps/api/geocode/json", params)
	if err != nil {
		return nil, eris.Wrap(err, "places: geocode request")
	}

	var resp geocodeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, eris.Wrap(err, "places: geocode parse response")
	}

	switch {
	case resp.Status == "OK" && len(resp.Results) > 0:
		r := resp.Results[0]
		return &GeoResult{
			Lat:              r.Geometry.Location.Lat,
			Lng:              r.Geometry.Location.Lng,
			FormattedAddress: r.FormattedAddress,
		}, nil
	case resp.Status == "ZERO_RESULTS":
		return nil, eris.Wrapf(ErrNoResults, "places: no location found for %q", location)
	default:
		return nil, eris.Errorf("places: geocoding error: %s", resp.Status)
	}
}

// get performs a rate-limited GET against the Maps API and returns the body.
func (c *httpClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "places: rate limit")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "places: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "places: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "places: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("places: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
