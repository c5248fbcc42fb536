package transit

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

var (
	// ErrMissingCoordinates is reported when a route endpoint does not
	// resolve to a destination with known coordinates.
	ErrMissingCoordinates = errors.New("route endpoint has no coordinates")

	// ErrUnknownRoute is reported when a selection targets a route id that
	// is not in the currently held set.
	ErrUnknownRoute = errors.New("route not found in catalog")
)

// ViewportPadding is the margin, in pixels, the map client should keep
// around the two endpoints when framing a selected route.
const ViewportPadding = 60

// LatLng is a geographic coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Route is an immutable snapshot of a transportation route as held by the
// catalog. Absent or malformed numeric source fields are carried as 0.
type Route struct {
	ID            uint
	Name          string
	OriginID      uint
	DestinationID uint
	Mode          TransportMode
	DistanceKm    float64
	TimeMinutes   int
	BaseFare      float64
	FarePerKm     float64
	Description   string
}

// FilterState is the ephemeral UI filter. Zero values mean "no filter".
type FilterState struct {
	DestinationID uint
	Mode          TransportMode
}

// RouteSelection is the event emitted for the map collaborator when a
// route with two resolvable endpoints is selected.
type RouteSelection struct {
	RouteID          uint   `json:"route_id"`
	Origin           LatLng `json:"origin"`
	Destination      LatLng `json:"destination"`
	OriginLabel      string `json:"origin_label"`
	DestinationLabel string `json:"destination_label"`
	Padding          int    `json:"padding"`
}

// RouteStats is a derived aggregate over a route set.
type RouteStats struct {
	Total         int                   `json:"total"`
	ByMode        map[TransportMode]int `json:"by_mode"`
	TotalDistance float64               `json:"total_distance"`
	AvgDistance   float64               `json:"avg_distance"`
}

// RouteSource lists all active routes. Backed by the database in
// production and by fixtures in tests.
type RouteSource interface {
	ListActive(ctx context.Context) ([]Route, error)
}

// Endpoint is what the destination lookup knows about a route endpoint.
// Coord is nil when the destination exists but has no coordinates.
type Endpoint struct {
	Name  string
	Coord *LatLng
}

// DestinationLookup resolves a destination id to its display name and
// optional coordinates.
type DestinationLookup interface {
	Endpoint(ctx context.Context, id uint) (Endpoint, error)
}

// MapRenderer draws a selected route. Exactly one selection is visible at
// a time; Clear removes the previously drawn path before a new Draw.
type MapRenderer interface {
	Draw(sel RouteSelection)
	Clear()
}

// Catalog owns the fetched route set, applies filters and fare math, and
// emits the currently selected route for map display. Not safe for
// concurrent use; callers drive it from a single request/UI flow.
type Catalog struct {
	source   RouteSource
	lookup   DestinationLookup
	renderer MapRenderer

	routes   []Route
	loaded   bool
	selected *RouteSelection
}

// NewCatalog builds an empty catalog. renderer may be nil when no map
// collaborator is attached (API-only callers).
func NewCatalog(source RouteSource, lookup DestinationLookup, renderer MapRenderer) *Catalog {
	return &Catalog{source: source, lookup: lookup, renderer: renderer}
}

// Load replaces the held route set with a fresh fetch. On failure the
// catalog retains no stale state: the set is emptied and the error is
// returned for the caller to surface with a retry affordance. A later
// successful Load fully replaces the empty set.
func (c *Catalog) Load(ctx context.Context) ([]Route, error) {
	routes, err := c.source.ListActive(ctx)
	if err != nil {
		c.routes = nil
		c.loaded = false
		logrus.WithError(err).Warn("transit: route load failed")
		return nil, fmt.Errorf("load routes: %w", err)
	}
	c.routes = routes
	c.loaded = true
	return c.Routes(), nil
}

// Retry re-invokes Load after a failure.
func (c *Catalog) Retry(ctx context.Context) ([]Route, error) {
	return c.Load(ctx)
}

// Loaded reports whether the last Load succeeded.
func (c *Catalog) Loaded() bool {
	return c.loaded
}

// Routes returns a copy of the held set, preserving fetch order.
func (c *Catalog) Routes() []Route {
	out := make([]Route, len(c.routes))
	copy(out, c.routes)
	return out
}

// Select resolves both endpoints of the identified route and emits a
// RouteSelection for the map collaborator. When either endpoint lacks
// coordinates it fails with ErrMissingCoordinates and draws nothing; the
// previous selection stays untouched in that case.
func (c *Catalog) Select(ctx context.Context, routeID uint) (RouteSelection, error) {
	var route *Route
	for i := range c.routes {
		if c.routes[i].ID == routeID {
			route = &c.routes[i]
			break
		}
	}
	if route == nil {
		return RouteSelection{}, fmt.Errorf("select %d: %w", routeID, ErrUnknownRoute)
	}

	origin, err := c.lookup.Endpoint(ctx, route.OriginID)
	if err != nil {
		return RouteSelection{}, fmt.Errorf("resolve origin %d: %w", route.OriginID, err)
	}
	dest, err := c.lookup.Endpoint(ctx, route.DestinationID)
	if err != nil {
		return RouteSelection{}, fmt.Errorf("resolve destination %d: %w", route.DestinationID, err)
	}
	if origin.Coord == nil || dest.Coord == nil {
		return RouteSelection{}, fmt.Errorf("route %d: %w", routeID, ErrMissingCoordinates)
	}

	sel := RouteSelection{
		RouteID:          route.ID,
		Origin:           *origin.Coord,
		Destination:      *dest.Coord,
		OriginLabel:      origin.Name,
		DestinationLabel: dest.Name,
		Padding:          ViewportPadding,
	}

	// One visible selection at a time: tear down the previous path first.
	if c.selected != nil && c.renderer != nil {
		c.renderer.Clear()
	}
	c.selected = &sel
	if c.renderer != nil {
		c.renderer.Draw(sel)
	}
	return sel, nil
}

// Selected returns the current selection, or nil when nothing is drawn.
func (c *Catalog) Selected() *RouteSelection {
	return c.selected
}

// Fare computes the display fare for a route. Metered modes (taxi, van)
// add the per-kilometer component when both distance and rate are
// positive; every other combination degrades to the flat base fare.
func Fare(r Route) float64 {
	if r.Mode.Metered() && r.DistanceKm > 0 && r.FarePerKm > 0 {
		return r.BaseFare + r.DistanceKm*r.FarePerKm
	}
	return r.BaseFare
}

// Filter applies the destination and mode predicates as an AND, keeping
// the input order. The destination predicate matches a route when the id
// equals either endpoint. An empty result is not an error.
func Filter(routes []Route, state FilterState) []Route {
	out := make([]Route, 0, len(routes))
	for _, r := range routes {
		if state.DestinationID != 0 && r.OriginID != state.DestinationID && r.DestinationID != state.DestinationID {
			continue
		}
		if state.Mode != "" && r.Mode != state.Mode {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Stats aggregates a route set. Absent distances count as 0 toward the
// sum rather than being skipped, and the average is 0 for an empty set.
func Stats(routes []Route) RouteStats {
	stats := RouteStats{ByMode: make(map[TransportMode]int)}
	for _, r := range routes {
		stats.Total++
		stats.ByMode[r.Mode]++
		stats.TotalDistance += r.DistanceKm
	}
	if stats.Total > 0 {
		stats.AvgDistance = stats.TotalDistance / float64(stats.Total)
	}
	return stats
}

// Modes returns the modes present in a route set, sorted for stable
// rendering of filter dropdowns.
func Modes(routes []Route) []TransportMode {
	seen := make(map[TransportMode]bool)
	for _, r := range routes {
		seen[r.Mode] = true
	}
	out := make([]TransportMode, 0, len(seen))
	for m := range seen {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
