// Command geocode resolves an address from the terminal and prints where the
// map would be centered.
//
//	geocode "Tokyo Station"
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/olekukonko/tablewriter"

	"github.com/manzanit0/addressmap/pkg/apperr"
	"github.com/manzanit0/addressmap/pkg/env"
	"github.com/manzanit0/addressmap/pkg/geocode"
	"github.com/manzanit0/addressmap/pkg/logger"
	"github.com/manzanit0/addressmap/pkg/mapview"
	"github.com/manzanit0/addressmap/pkg/whttp"
)

const ServiceName = "geocode"

func main() {
	env.LoadDotEnv()

	verbose := flag.Bool("v", false, "log outbound requests")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-v] <address>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *verbose {
		logger.InitGlobalSlog(ServiceName, "text", env.Debug())
	} else {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdout, strings.Join(flag.Args(), " ")); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, w io.Writer, address string) error {
	geocoder, err := newGeocoder()
	if err != nil {
		return err
	}

	return lookup(ctx, geocoder, w, address)
}

func lookup(ctx context.Context, geocoder geocode.Client, w io.Writer, address string) error {
	location, err := geocoder.Geocode(ctx, address)
	if err != nil {
		var e *apperr.Error
		if errors.As(err, &e) && e.Err != nil {
			return fmt.Errorf("%s (%s)", e.Message, e.Err.Error())
		}

		return err
	}

	view, marker := mapview.Render(mapview.DefaultContainer, location.Coordinates)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Address", "Latitude", "Longitude", "Zoom", "Link"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.Append([]string{
		displayName(location),
		fmt.Sprintf("%f", marker.Position.Lat),
		fmt.Sprintf("%f", marker.Position.Lng),
		fmt.Sprint(view.Zoom),
		view.Link(),
	})
	table.Render()

	return nil
}

func displayName(l *geocode.Location) string {
	if l.FormattedAddress != "" {
		return l.FormattedAddress
	}

	return l.Query
}

func newGeocoder() (geocode.Client, error) {
	provider, err := env.GeocoderProvider()
	if err != nil {
		return nil, err
	}

	if provider == env.ProviderOpenstreetmap {
		return geocode.NewOpenstreetmapClient(), nil
	}

	apiKey, err := env.GoogleAPIKey()
	if err != nil {
		return nil, err
	}

	return geocode.NewGoogleClient(whttp.NewLoggingClient(), apiKey), nil
}
