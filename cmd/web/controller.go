package main

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/manzanit0/addressmap/pkg/apperr"
	"github.com/manzanit0/addressmap/pkg/geocode"
	"github.com/manzanit0/addressmap/pkg/maplib"
	"github.com/manzanit0/addressmap/pkg/mapview"
)

const pageTemplate = "index.html"

type state int

const (
	stateUninitialized state = iota
	stateReady
)

func (s state) String() string {
	if s == stateReady {
		return "ready"
	}
	return "uninitialized"
}

// Page is everything the form template needs. Map and Marker are only set
// after a successful search.
type Page struct {
	ScriptID  string
	ScriptSrc string
	Container string
	Address   string
	Alert     string
	Map       *mapview.MapView
	Marker    *mapview.Marker
}

type SearchForm struct {
	Address string `form:"address"`
}

type listener func(ctx context.Context, address string) Page

// FormController owns the page lifecycle. It starts uninitialized and only
// becomes ready, with the submit listener attached, once the maps library has
// loaded. A failed load leaves it uninitialized for the life of the process.
type FormController struct {
	loader   maplib.MapLibraryLoader
	tag      *maplib.ScriptTag
	geocoder geocode.Client

	mu           sync.RWMutex
	state        state
	onSubmit     listener
	startupAlert string
}

func NewFormController(loader maplib.MapLibraryLoader, tag *maplib.ScriptTag, geocoder geocode.Client) *FormController {
	return &FormController{loader: loader, tag: tag, geocoder: geocoder}
}

// Start loads the maps library and attaches the submit listener. It is not
// retried on failure.
func (fc *FormController) Start(ctx context.Context) error {
	if err := fc.loader.Load(ctx); err != nil {
		logFailure(ctx, "failed to load google maps api", err)

		fc.mu.Lock()
		fc.startupAlert = apperr.MsgLoadFailedAlert
		fc.mu.Unlock()

		return err
	}

	slog.InfoContext(ctx, "google maps api loaded successfully")

	fc.mu.Lock()
	fc.state = stateReady
	fc.onSubmit = fc.search
	fc.mu.Unlock()

	return nil
}

func (fc *FormController) State() state {
	fc.mu.RLock()
	defer fc.mu.RUnlock()
	return fc.state
}

func (fc *FormController) page() Page {
	fc.mu.RLock()
	defer fc.mu.RUnlock()

	return Page{
		ScriptID:  fc.tag.ID,
		ScriptSrc: fc.tag.Src(),
		Container: mapview.DefaultContainer,
		Alert:     fc.startupAlert,
	}
}

// ShowForm handles GET /.
func (fc *FormController) ShowForm(c *gin.Context) {
	c.HTML(http.StatusOK, pageTemplate, fc.page())
}

// Submit handles POST /, the form's submit event. Without a listener attached
// the submission is ignored and the page is rendered as it was.
func (fc *FormController) Submit(c *gin.Context) {
	fc.mu.RLock()
	onSubmit := fc.onSubmit
	fc.mu.RUnlock()

	if onSubmit == nil {
		slog.WarnContext(c.Request.Context(), "submission ignored", "state", fc.State().String())
		fc.ShowForm(c)
		return
	}

	var form SearchForm
	if err := c.ShouldBind(&form); err != nil {
		slog.WarnContext(c.Request.Context(), "unable to read form", "error", err.Error())
	}

	c.HTML(http.StatusOK, pageTemplate, onSubmit(c.Request.Context(), form.Address))
}

func (fc *FormController) search(ctx context.Context, address string) Page {
	p := fc.page()
	p.Address = address

	res, err := fc.resolve(ctx, address)
	if err != nil {
		logFailure(ctx, "search failed", err, "address", address)
		p.Alert = apperr.As(err).Message
		return p
	}

	p.Map, p.Marker = res.view, res.marker
	return p
}

type result struct {
	location *geocode.Location
	view     *mapview.MapView
	marker   *mapview.Marker
}

// resolve runs the geocode → render pipeline. Nothing is rendered unless the
// address resolved.
func (fc *FormController) resolve(ctx context.Context, address string) (*result, error) {
	location, err := fc.geocoder.Geocode(ctx, address)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "address resolved",
		"address", address,
		"lat", location.Coordinates.Lat,
		"lng", location.Coordinates.Lng)

	view, marker := mapview.Render(mapview.DefaultContainer, location.Coordinates)
	return &result{location: location, view: view, marker: marker}, nil
}

func logFailure(ctx context.Context, msg string, err error, args ...any) {
	e := apperr.As(err)
	args = append(args, "kind", e.Kind.String(), "error", e.Message)
	if e.Err != nil {
		args = append(args, "cause", e.Err.Error())
	}

	slog.ErrorContext(ctx, msg, args...)
}
