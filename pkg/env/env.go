// package env contains simple getters for the configuration shared by the
// web server and the command line tool.
//
// The Google API key is meant to be baked into the binary at build time:
//
//	go build -ldflags "-X github.com/manzanit0/addressmap/pkg/env.googleAPIKey=$GOOGLE_API_KEY" ./cmd/web
//
// When it isn't, GOOGLE_API_KEY is read from the environment, or from a .env
// file in the working directory.
package env

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// googleAPIKey is set through -ldflags.
var googleAPIKey string

const (
	ProviderGoogle        = "google"
	ProviderOpenstreetmap = "openstreetmap"
)

// LoadDotEnv populates the environment from .env, if there is one. Variables
// already set are left alone.
func LoadDotEnv() {
	_ = godotenv.Load()
}

func GoogleAPIKey() (string, error) {
	if googleAPIKey != "" {
		return googleAPIKey, nil
	}

	var key string
	if key = os.Getenv("GOOGLE_API_KEY"); key == "" {
		return "", fmt.Errorf("missing GOOGLE_API_KEY: build with -ldflags or set the environment variable")
	}

	return key, nil
}

func Port() string {
	var port string
	if port = os.Getenv("PORT"); port == "" {
		port = "8080"
	}

	return port
}

// GeocoderProvider is the geocoding backend to use, google unless told
// otherwise.
func GeocoderProvider() (string, error) {
	provider := strings.ToLower(os.Getenv("GEOCODER_PROVIDER"))
	switch provider {
	case "", ProviderGoogle:
		return ProviderGoogle, nil
	case ProviderOpenstreetmap:
		return ProviderOpenstreetmap, nil
	default:
		return "", fmt.Errorf("unsupported GEOCODER_PROVIDER %q", provider)
	}
}

func Debug() bool {
	debug, err := strconv.ParseBool(os.Getenv("DEBUG"))
	return err == nil && debug
}

// LogFormat is either "json" or "text".
func LogFormat() string {
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "text") {
		return "text"
	}

	return "json"
}
