// Package mapview builds the map widget drawn for a resolved address: a view
// centered on the coordinates and a single marker on top of it.
package mapview

import (
	"fmt"
	"net/url"

	"github.com/manzanit0/addressmap/pkg/geocode"
)

// DefaultContainer is the id of the element the page draws the map into.
const DefaultContainer = "map"

// Zoom is street level, which is what a postal address calls for.
const Zoom = 16

type MapView struct {
	Container string              `json:"container"`
	Center    geocode.Coordinates `json:"center"`
	Zoom      int                 `json:"zoom"`
}

type Marker struct {
	Position geocode.Coordinates `json:"position"`
	Map      *MapView            `json:"-"`
}

// Render creates a view on container centered at c, and a marker at the same
// point bound to it. The marker never exists without its view.
func Render(container string, c geocode.Coordinates) (*MapView, *Marker) {
	view := &MapView{Container: container, Center: c, Zoom: Zoom}
	marker := &Marker{Position: c, Map: view}
	return view, marker
}

// Link returns a Google Maps URL showing the view's center.
func (m *MapView) Link() string {
	q := url.Values{}
	q.Set("api", "1")
	q.Set("query", fmt.Sprintf("%f,%f", m.Center.Lat, m.Center.Lng))
	q.Set("zoom", fmt.Sprint(m.Zoom))
	return "https://www.google.com/maps/search/?" + q.Encode()
}
