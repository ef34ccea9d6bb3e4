package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/rotisserie/eris"
)

// nearbyResponse is the JSON response from the Nearby Search API.
type nearbyResponse struct {
	Results []RawPlace `json:"results"`
	Status  string     `json:"status"`
}

func (c *httpClient) NearbySearch(ctx context.Context, q NearbyQuery) ([]RawPlace, error) {
	params := url.Values{
		"location": {fmt.Sprintf("%g,%g", q.Lat, q.Lng)},
		"radius":   {strconv.Itoa(q.RadiusKm * 1000)}, // km to meters
		"rankby":   {"prominence"},
		"key":      {c.apiKey},
	}
	if q.Keyword != "" {
		params.Set("keyword", q.Keyword)
	}

	body, err := c.get(ctx, "/maps/api/place/nearbysearch/json", params)
	if err != nil {
		return nil, eris.Wrap(err, "places: nearby search request")
	}

	var resp nearbyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, eris.Wrap(err, "places: nearby search parse response")
	}

	switch resp.Status {
	case "OK":
		results := resp.Results
		if q.MaxResults > 0 && len(results) > q.MaxResults {
			results = results[:q.MaxResults]
		}
		return results, nil
	case "ZERO_RESULTS":
		return nil, nil
	default:
		return nil, eris.Errorf("places: nearby search error: %s", resp.Status)
	}
}

// detailFields is the fixed field mask requested from the Details API.
const detailFields = "name,formatted_address,formatted_phone_number,website,url,rating,user_ratings_total,opening_hours"

// detailsResponse is the JSON response from the Place Details API.
type detailsResponse struct {
	Result PlaceDetail `json:"result"`
	Status string      `json:"status"`
}

func (c *httpClient) PlaceDetails(ctx context.Context, placeID string) (*PlaceDetail, error) {
	params := url.Values{
		"place_id": {placeID},
		"fields":   {detailFields},
		"key":      {c.apiKey},
	}

	body, err := c.get(ctx, "/maps/api/place/details/json", params)
	if err != nil {
		return nil, eris.Wrap(err, "places: details request")
	}

	var resp detailsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, eris.Wrap(err, "places: details parse response")
	}

	// Details are best-effort: a non-OK status means the caller proceeds
	// with search-level data only.
	if resp.Status != "OK" {
		return nil, nil
	}

	return &resp.Result, nil
}
