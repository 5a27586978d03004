package geocode

import (
	"context"
	"errors"

	"github.com/codingsince1985/geo-golang"
	"github.com/codingsince1985/geo-golang/openstreetmap"

	"github.com/manzanit0/addressmap/pkg/apperr"
)

func NewOpenstreetmapClient() *oc {
	return &oc{geocoder: openstreetmap.Geocoder()}
}

type oc struct {
	geocoder geo.Geocoder
}

var _ Client = (*oc)(nil)

// Geocode ignores ctx: geo-golang doesn't take one.
func (c *oc) Geocode(_ context.Context, address string) (*Location, error) {
	location, err := c.geocoder.Geocode(address)
	if err != nil {
		return nil, apperr.GeocodeUpstream(err)
	}

	if location == nil {
		return nil, apperr.Geocode(errors.New("no match for address"))
	}

	return &Location{
		Coordinates: Coordinates{Lat: location.Lat, Lng: location.Lng},
		Query:       address,
	}, nil
}
