package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/manzanit0/addressmap/pkg/apperr"
	"github.com/manzanit0/addressmap/pkg/geocode"
)

type stubGeocoder struct {
	location *geocode.Location
	err      error
}

func (s stubGeocoder) Geocode(_ context.Context, _ string) (*geocode.Location, error) {
	return s.location, s.err
}

func TestLookup(t *testing.T) {
	testCases := []struct {
		desc     string
		geocoder stubGeocoder
		want     []string
		wantErr  string
	}{
		{
			desc: "when the address resolves, a table with the coordinates is printed",
			geocoder: stubGeocoder{location: &geocode.Location{
				Coordinates: geocode.Coordinates{Lat: 35.681236, Lng: 139.767125},
				Query:       "Tokyo Station",
			}},
			want: []string{"Tokyo Station", "35.681236", "139.767125", "16", "https://www.google.com/maps/search/"},
		},
		{
			desc: "the formatted address is preferred over the query",
			geocoder: stubGeocoder{location: &geocode.Location{
				Coordinates:      geocode.Coordinates{Lat: 35.681236, Lng: 139.767125},
				Query:            "tokyo stn",
				FormattedAddress: "1 Chome Marunouchi, Chiyoda City",
			}},
			want: []string{"1 Chome Marunouchi, Chiyoda City"},
		},
		{
			desc:     "when the address doesn't resolve, the user facing message is returned",
			geocoder: stubGeocoder{err: apperr.Geocode(nil)},
			wantErr:  "Could not fetch location!",
		},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			var buf bytes.Buffer
			err := lookup(context.Background(), tC.geocoder, &buf, "Tokyo Station")

			if tC.wantErr != "" {
				if err == nil || err.Error() != tC.wantErr {
					t.Fatalf("got error %v, expected %q", err, tC.wantErr)
				}

				if buf.Len() != 0 {
					t.Errorf("expected nothing printed, got:\n%s", buf.String())
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %s", err.Error())
			}

			for _, s := range tC.want {
				if !strings.Contains(buf.String(), s) {
					t.Errorf("expected output to contain %q, got:\n%s", s, buf.String())
				}
			}
		})
	}
}
