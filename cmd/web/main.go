package main

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/manzanit0/addressmap/pkg/alert"
	"github.com/manzanit0/addressmap/pkg/env"
	"github.com/manzanit0/addressmap/pkg/geocode"
	"github.com/manzanit0/addressmap/pkg/logger"
	"github.com/manzanit0/addressmap/pkg/maplib"
	"github.com/manzanit0/addressmap/pkg/middleware"
	"github.com/manzanit0/addressmap/pkg/whttp"
)

const ServiceName = "web"

//go:embed templates/*.html
var templates embed.FS

func init() {
	env.LoadDotEnv()
	logger.InitGlobalSlog(ServiceName, env.LogFormat(), env.Debug())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, stop); err != nil {
		slog.Error("server shutdown abruptly", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("server exited")
}

func run(ctx context.Context, stop context.CancelFunc) error {
	apiKey, err := env.GoogleAPIKey()
	if err != nil {
		return err
	}

	geocoder, err := newGeocoder(apiKey)
	if err != nil {
		return fmt.Errorf("create geocoder: %w", err)
	}

	tag := maplib.NewScriptTag(maplib.DefaultScriptID)
	loader := maplib.NewLoader(whttp.NewLoggingClient(), tag, apiKey)
	fc := NewFormController(loader, tag, geocoder)

	// A failed load is reported on the page; the server keeps running so the
	// user gets to see it.
	_ = fc.Start(ctx)

	r, err := newRouter(fc, env.Debug())
	if err != nil {
		return fmt.Errorf("create router: %w", err)
	}

	port := env.Port()
	srv := &http.Server{Addr: fmt.Sprintf(":%s", port), Handler: r}

	go func() {
		slog.Info(fmt.Sprintf("serving HTTP on :%s", port))

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server shutdown abruptly", "error", err.Error())
		} else {
			slog.Info("server shutdown gracefully")
		}

		stop()
	}()

	// Listen for OS interrupt
	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	return nil
}

func newRouter(fc *FormController, debug bool) (*gin.Engine, error) {
	tmpl, err := template.ParseFS(templates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)

	r.Use(middleware.TraceID())
	r.Use(middleware.Recovery(alert.NewSlogNotifier(nil)))
	r.Use(middleware.Logger(debug))
	if debug {
		r.Use(whttp.DumpRequests(log.New(os.Stdout, "", log.LstdFlags)))
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	r.GET("/", fc.ShowForm)
	r.POST("/", fc.Submit)
	r.GET("/api/v1/geocode", fc.Lookup)

	return r, nil
}

func newGeocoder(apiKey string) (geocode.Client, error) {
	provider, err := env.GeocoderProvider()
	if err != nil {
		return nil, err
	}

	if provider == env.ProviderOpenstreetmap {
		return geocode.NewOpenstreetmapClient(), nil
	}

	return geocode.NewGoogleClient(whttp.NewLoggingClient(), apiKey), nil
}
