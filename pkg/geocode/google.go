package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/manzanit0/addressmap/pkg/apperr"
	"github.com/manzanit0/addressmap/pkg/whttp"
)

const DefaultGoogleBaseURL = "https://maps.googleapis.com"

const StatusOK = "OK"

// GoogleResponse mirrors the parts of the Geocoding API payload we consume.
type GoogleResponse struct {
	Results []GoogleResult `json:"results"`
	Status  string         `json:"status"`
}

type GoogleResult struct {
	FormattedAddress string `json:"formatted_address"`
	Geometry         struct {
		Location Coordinates `json:"location"`
	} `json:"geometry"`
}

type GoogleOption func(*gc)

// WithGoogleBaseURL points the client at another host, e.g. a test server.
func WithGoogleBaseURL(baseURL string) GoogleOption {
	return func(c *gc) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

func NewGoogleClient(h *http.Client, apiKey string, opts ...GoogleOption) *gc {
	c := &gc{h: h, apiKey: apiKey, baseURL: DefaultGoogleBaseURL}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

type gc struct {
	h       *http.Client
	apiKey  string
	baseURL string
}

var _ Client = (*gc)(nil)

func (c *gc) Geocode(ctx context.Context, address string) (*Location, error) {
	params := url.Values{}
	params.Set("address", address)
	params.Set("key", c.apiKey)

	endpoint := fmt.Sprintf("%s/maps/api/geocode/json?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperr.Geocode(fmt.Errorf("build request: %w", err))
	}

	res, err := c.h.Do(req)
	if err != nil {
		return nil, apperr.GeocodeUpstream(whttp.StripURL(err))
	}

	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, apperr.GeocodeUpstream(fmt.Errorf("unexpected response status: %s", res.Status))
	}

	var d GoogleResponse
	if err := json.NewDecoder(res.Body).Decode(&d); err != nil {
		return nil, apperr.GeocodeUpstream(fmt.Errorf("decode response: %w", err))
	}

	if d.Status != StatusOK {
		return nil, apperr.Geocode(fmt.Errorf("geocoding status %q", d.Status))
	}

	if len(d.Results) == 0 {
		return nil, apperr.MalformedResponse(errors.New("status OK without results"))
	}

	// Several matches are possible; the first one wins.
	first := d.Results[0]
	return &Location{
		Coordinates:      first.Geometry.Location,
		Query:            address,
		FormattedAddress: first.FormattedAddress,
	}, nil
}
