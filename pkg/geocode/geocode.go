package geocode

import "context"

// Client translates a free-text address into coordinates. Implementations
// return *apperr.Error values so callers can tell provider failures apart.
type Client interface {
	Geocode(ctx context.Context, address string) (*Location, error)
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Location struct {
	Coordinates      Coordinates
	Query            string
	FormattedAddress string
}
