package geocode_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/manzanit0/addressmap/pkg/apperr"
	"github.com/manzanit0/addressmap/pkg/geocode"
)

// newGoogleServer fakes the Geocoding API. Every query string it receives is
// sent on queries when that is non-nil.
func newGoogleServer(t *testing.T, status int, body string, queries chan<- string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/maps/api/geocode/json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		if queries != nil {
			queries <- r.URL.RawQuery
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestGoogleGeocode(t *testing.T) {
	testCases := []struct {
		desc     string
		status   int
		body     string
		want     *geocode.Coordinates
		wantKind apperr.Kind
		wantMsg  string
	}{
		{
			desc:   "when the status is OK, the first result's location is returned",
			status: http.StatusOK,
			body:   `{"status":"OK","results":[{"geometry":{"location":{"lat":35.681236,"lng":139.767125}}},{"geometry":{"location":{"lat":1,"lng":2}}}]}`,
			want:   &geocode.Coordinates{Lat: 35.681236, Lng: 139.767125},
		},
		{
			desc:     "when there are zero results, it fails with the generic geocode message",
			status:   http.StatusOK,
			body:     `{"status":"ZERO_RESULTS","results":[]}`,
			wantKind: apperr.KindGeocode,
			wantMsg:  "Could not fetch location!",
		},
		{
			desc:     "when the request is denied, it fails with the same message as zero results",
			status:   http.StatusOK,
			body:     `{"status":"REQUEST_DENIED","error_message":"The provided API key is invalid.","results":[]}`,
			wantKind: apperr.KindGeocode,
			wantMsg:  "Could not fetch location!",
		},
		{
			desc:     "when the status is OK but there are no results, it fails as a malformed response",
			status:   http.StatusOK,
			body:     `{"status":"OK","results":[]}`,
			wantKind: apperr.KindMalformedResponse,
			wantMsg:  "No coordinates returned for that address!",
		},
		{
			desc:     "when the body isn't JSON, it fails as a geocode error",
			status:   http.StatusOK,
			body:     `<html>oops</html>`,
			wantKind: apperr.KindGeocode,
			wantMsg:  "Could not fetch location!",
		},
		{
			desc:     "when the provider answers with a server error, it fails as a geocode error",
			status:   http.StatusInternalServerError,
			body:     `{}`,
			wantKind: apperr.KindGeocode,
			wantMsg:  "Could not fetch location!",
		},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			srv := newGoogleServer(t, tC.status, tC.body, nil)
			c := geocode.NewGoogleClient(srv.Client(), "secret", geocode.WithGoogleBaseURL(srv.URL))

			got, err := c.Geocode(context.Background(), "Tokyo Station")

			if tC.want != nil {
				if err != nil {
					t.Fatalf("unexpected error: %s", err.Error())
				}

				if got.Coordinates != *tC.want {
					t.Errorf("got %v, expected %v", got.Coordinates, *tC.want)
				}

				return
			}

			if err == nil {
				t.Fatalf("expected error, got %v", got)
			}

			if !apperr.Is(err, tC.wantKind) {
				t.Errorf("got kind %s, expected %s", apperr.As(err).Kind, tC.wantKind)
			}

			if err.Error() != tC.wantMsg {
				t.Errorf("got message %q, expected %q", err.Error(), tC.wantMsg)
			}
		})
	}
}

func TestGoogleGeocodeSendsOneRequestWithEncodedAddress(t *testing.T) {
	testCases := []struct {
		desc    string
		address string
		want    string
	}{
		{
			desc:    "spaces and unicode are URL-encoded",
			address: "東京駅 1-9",
			want:    "address=%E6%9D%B1%E4%BA%AC%E9%A7%85+1-9&key=secret",
		},
		{
			desc:    "an empty address is forwarded as-is",
			address: "",
			want:    "address=&key=secret",
		},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			queries := make(chan string, 10)
			srv := newGoogleServer(t, http.StatusOK, `{"status":"ZERO_RESULTS","results":[]}`, queries)
			c := geocode.NewGoogleClient(srv.Client(), "secret", geocode.WithGoogleBaseURL(srv.URL))

			_, _ = c.Geocode(context.Background(), tC.address)

			if len(queries) != 1 {
				t.Fatalf("got %d requests, expected exactly 1", len(queries))
			}

			if query := <-queries; query != tC.want {
				t.Errorf("got query %q, expected %q", query, tC.want)
			}
		})
	}
}

func TestGoogleGeocodeUnreachable(t *testing.T) {
	srv := newGoogleServer(t, http.StatusOK, `{}`, nil)
	url := srv.URL
	srv.Close()

	c := geocode.NewGoogleClient(http.DefaultClient, "secret", geocode.WithGoogleBaseURL(url))
	_, err := c.Geocode(context.Background(), "Tokyo Station")
	if err == nil {
		t.Fatal("expected error when the provider is unreachable")
	}

	e := apperr.As(err)
	if e.Kind != apperr.KindGeocode || !e.Upstream {
		t.Errorf("got %+v, expected an upstream geocode error", e)
	}
}
