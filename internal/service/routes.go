package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// GoogleRouteProvider resolves distance/duration quotes via the Google
// Distance Matrix API.
type GoogleRouteProvider struct {
	apiKey string
	client *http.Client
}

// Ensure GoogleRouteProvider implements RouteProvider.
var _ RouteProvider = (*GoogleRouteProvider)(nil)

// NewGoogleRouteProvider creates a new GoogleRouteProvider.
func NewGoogleRouteProvider(apiKey string) *GoogleRouteProvider {
	return &GoogleRouteProvider{
		apiKey: apiKey,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type distanceMatrixResponse struct {
	Status string `json:"status"`
	Rows   []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Value float64 `json:"value"` // meters
			} `json:"distance"`
			Duration struct {
				Value float64 `json:"value"` // seconds
			} `json:"duration"`
		} `json:"elements"`
	} `json:"rows"`
}

// DistanceTime returns the driving distance and duration between two
// addresses. Address resolution failures map to ErrLocationNotFound; any
// other API failure maps to ErrRouteUnavailable.
func (g *GoogleRouteProvider) DistanceTime(ctx context.Context, origin, destination string) (Route, error) {
	if origin == "" || destination == "" {
		return Route{}, ErrInvalidAddress
	}

	q := url.Values{}
	q.Set("origins", origin)
	q.Set("destinations", destination)
	q.Set("mode", "driving")
	q.Set("key", g.apiKey)
	endpoint := "https://maps.googleapis.com/maps/api/distancematrix/json?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Route{}, err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return Route{}, fmt.Errorf("%w: %v", ErrRouteUnavailable, err)
	}
	defer resp.Body.Close()

	var body distanceMatrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Route{}, fmt.Errorf("%w: %v", ErrRouteUnavailable, err)
	}

	if body.Status != "OK" || len(body.Rows) == 0 || len(body.Rows[0].Elements) == 0 {
		return Route{}, ErrRouteUnavailable
	}

	element := body.Rows[0].Elements[0]
	switch element.Status {
	case "OK":
	case "NOT_FOUND", "ZERO_RESULTS":
		return Route{}, ErrLocationNotFound
	default:
		return Route{}, ErrRouteUnavailable
	}

	if element.Distance.Value <= 0 || element.Duration.Value <= 0 {
		return Route{}, ErrRouteUnavailable
	}

	return Route{
		DistanceMeters:  element.Distance.Value,
		DurationSeconds: element.Duration.Value,
	}, nil
}
