package whttp_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/manzanit0/addressmap/pkg/whttp"
)

func TestRedactURL(t *testing.T) {
	testCases := []struct {
		desc string
		raw  string
		want string
	}{
		{
			desc: "the api key is masked",
			raw:  "https://maps.googleapis.com/maps/api/geocode/json?address=Tokyo+Station&key=abc",
			want: "https://maps.googleapis.com/maps/api/geocode/json?address=Tokyo+Station&key=%2A%2A%2A%2A%2A",
		},
		{
			desc: "urls without credentials are left alone",
			raw:  "https://nominatim.openstreetmap.org/search?q=Tokyo",
			want: "https://nominatim.openstreetmap.org/search?q=Tokyo",
		},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			u, err := url.Parse(tC.raw)
			if err != nil {
				t.Fatal(err)
			}

			if got := whttp.RedactURL(u); got != tC.want {
				t.Errorf("got %s, expected %s", got, tC.want)
			}
		})
	}
}

func TestLoggingClientKeepsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"OK"}`))
	}))
	defer srv.Close()

	res, err := whttp.NewLoggingClient().Get(srv.URL + "?key=abc")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	if string(body) != `{"status":"OK"}` {
		t.Errorf("got body %s after logging", body)
	}
}

func TestStripURL(t *testing.T) {
	cause := errors.New("connection refused")
	err := &url.Error{Op: "Get", URL: "https://maps.googleapis.com/maps/api/js?key=abc", Err: cause}

	got := whttp.StripURL(err)
	if strings.Contains(got.Error(), "abc") {
		t.Errorf("got %s, expected the url to be gone", got.Error())
	}

	if !errors.Is(got, cause) {
		t.Errorf("expected %v to wrap the cause", got)
	}
}
