package transit

import (
	"context"
	"errors"
	"testing"
)

// fakeSource returns a canned route list, or an error until cleared, to
// exercise the load/retry contract.
type fakeSource struct {
	routes []Route
	err    error
	calls  int
}

func (f *fakeSource) ListActive(ctx context.Context) ([]Route, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.routes, nil
}

// fakeLookup maps destination ids to endpoints. Missing ids behave like
// deleted destinations.
type fakeLookup struct {
	endpoints map[uint]Endpoint
}

func (f *fakeLookup) Endpoint(ctx context.Context, id uint) (Endpoint, error) {
	ep, ok := f.endpoints[id]
	if !ok {
		return Endpoint{}, ErrUnknownDestination
	}
	return ep, nil
}

// fakeRenderer records draw/clear calls in order.
type fakeRenderer struct {
	events []string
}

func (f *fakeRenderer) Draw(sel RouteSelection) { f.events = append(f.events, "draw") }
func (f *fakeRenderer) Clear()                  { f.events = append(f.events, "clear") }

func coord(lat, lng float64) *LatLng {
	return &LatLng{Lat: lat, Lng: lng}
}

func TestFareFlatForUnmeteredModes(t *testing.T) {
	// Distance and rate must be ignored for every mode outside {taxi, van},
	// even when both are set.
	for _, mode := range []TransportMode{ModeJeepney, ModeBus, ModeTricycle, ModeWalking, TransportMode("hovercraft"), TransportMode("")} {
		r := Route{Mode: mode, BaseFare: 15, DistanceKm: 12, FarePerKm: 8}
		if got := Fare(r); got != 15 {
			t.Errorf("Fare(%q) = %v, want flat base 15", mode, got)
		}
	}
}

func TestFareMeteredAddsPerKilometer(t *testing.T) {
	r := Route{ID: 1, Mode: ModeTaxi, DistanceKm: 10, BaseFare: 20, FarePerKm: 5}
	if got := Fare(r); got != 70 {
		t.Errorf("Fare(taxi, 10km, base 20, 5/km) = %v, want 70", got)
	}

	r.Mode = ModeVan
	if got := Fare(r); got != 70 {
		t.Errorf("Fare(van) = %v, want 70", got)
	}
}

func TestFareMeteredDegradesToBaseWithoutDistanceOrRate(t *testing.T) {
	cases := []struct {
		name string
		r    Route
	}{
		{"zero distance", Route{Mode: ModeTaxi, BaseFare: 30, DistanceKm: 0, FarePerKm: 5}},
		{"zero rate", Route{Mode: ModeVan, BaseFare: 30, DistanceKm: 8, FarePerKm: 0}},
		{"both zero", Route{Mode: ModeTaxi, BaseFare: 30}},
	}
	for _, tc := range cases {
		if got := Fare(tc.r); got != 30 {
			t.Errorf("%s: Fare = %v, want base 30", tc.name, got)
		}
	}
}

func TestFilterEmptyStateIsIdentity(t *testing.T) {
	routes := []Route{
		{ID: 3, Mode: ModeBus, OriginID: 1, DestinationID: 2},
		{ID: 1, Mode: ModeTaxi, OriginID: 2, DestinationID: 3},
		{ID: 2, Mode: ModeWalking, OriginID: 1, DestinationID: 3},
	}
	got := Filter(routes, FilterState{})
	if len(got) != len(routes) {
		t.Fatalf("Filter identity returned %d routes, want %d", len(got), len(routes))
	}
	for i := range routes {
		if got[i].ID != routes[i].ID {
			t.Errorf("order changed at %d: got id %d, want %d", i, got[i].ID, routes[i].ID)
		}
	}
}

func TestFilterModeAndDestinationIntersect(t *testing.T) {
	routes := []Route{
		{ID: 1, Mode: ModeTaxi, OriginID: 1, DestinationID: 2},
		{ID: 2, Mode: ModeTaxi, OriginID: 3, DestinationID: 4},
		{ID: 3, Mode: ModeBus, OriginID: 1, DestinationID: 2},
	}

	byMode := Filter(routes, FilterState{Mode: ModeTaxi})
	if len(byMode) != 2 || byMode[0].ID != 1 || byMode[1].ID != 2 {
		t.Fatalf("mode filter returned %v, want routes 1 and 2", byMode)
	}

	// Adding the destination predicate must intersect, not union.
	both := Filter(routes, FilterState{Mode: ModeTaxi, DestinationID: 2})
	if len(both) != 1 || both[0].ID != 1 {
		t.Fatalf("combined filter returned %v, want only route 1", both)
	}
}

func TestFilterDestinationMatchesEitherEndpoint(t *testing.T) {
	routes := []Route{
		{ID: 1, OriginID: 5, DestinationID: 2},
		{ID: 2, OriginID: 2, DestinationID: 5},
		{ID: 3, OriginID: 3, DestinationID: 4},
	}
	got := Filter(routes, FilterState{DestinationID: 5})
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("destination filter returned %v, want routes 1 and 2", got)
	}
}

func TestFilterNoMatchReturnsEmptyNotNilError(t *testing.T) {
	routes := []Route{{ID: 1, Mode: ModeBus}}
	got := Filter(routes, FilterState{Mode: ModeTricycle})
	if got == nil || len(got) != 0 {
		t.Fatalf("Filter miss = %v, want empty non-nil slice", got)
	}
}

func TestStatsEmptySet(t *testing.T) {
	got := Stats(nil)
	if got.Total != 0 || got.TotalDistance != 0 || got.AvgDistance != 0 || len(got.ByMode) != 0 {
		t.Fatalf("Stats(nil) = %+v, want all-zero aggregate", got)
	}
}

func TestStatsAggregation(t *testing.T) {
	routes := []Route{
		{Mode: ModeTaxi, DistanceKm: 10},
		{Mode: ModeTaxi, DistanceKm: 0}, // absent distance still counts toward the average
		{Mode: ModeBus, DistanceKm: 5},
	}
	got := Stats(routes)
	if got.Total != 3 {
		t.Errorf("Total = %d, want 3", got.Total)
	}
	if got.ByMode[ModeTaxi] != 2 || got.ByMode[ModeBus] != 1 {
		t.Errorf("ByMode = %v, want taxi:2 bus:1", got.ByMode)
	}
	if got.TotalDistance != 15 {
		t.Errorf("TotalDistance = %v, want 15", got.TotalDistance)
	}
	if got.AvgDistance != 5 {
		t.Errorf("AvgDistance = %v, want 5", got.AvgDistance)
	}
}

func TestLoadFailureEmptiesThenRetrySucceeds(t *testing.T) {
	src := &fakeSource{
		routes: []Route{{ID: 1}, {ID: 2}},
		err:    errors.New("connection refused"),
	}
	cat := NewCatalog(src, &fakeLookup{}, nil)

	if _, err := cat.Load(context.Background()); err == nil {
		t.Fatal("Load should fail when the source fails")
	}
	if cat.Loaded() || len(cat.Routes()) != 0 {
		t.Fatal("failed load must leave the catalog empty, not stale")
	}

	// Clearing the fault and retrying must fully replace the empty set.
	src.err = nil
	routes, err := cat.Retry(context.Background())
	if err != nil {
		t.Fatalf("Retry failed: %v", err)
	}
	if !cat.Loaded() || len(routes) != 2 {
		t.Fatalf("Retry returned %d routes, want 2", len(routes))
	}
}

func TestSelectEmitsSelectionAndFramesViewport(t *testing.T) {
	lookup := &fakeLookup{endpoints: map[uint]Endpoint{
		1: {Name: "City Hall", Coord: coord(11.006, 124.607)},
		2: {Name: "Lake Danao", Coord: coord(11.083, 124.694)},
	}}
	renderer := &fakeRenderer{}
	cat := NewCatalog(&fakeSource{routes: []Route{{ID: 7, OriginID: 1, DestinationID: 2}}}, lookup, renderer)
	if _, err := cat.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	sel, err := cat.Select(context.Background(), 7)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if sel.OriginLabel != "City Hall" || sel.DestinationLabel != "Lake Danao" {
		t.Errorf("labels = %q/%q", sel.OriginLabel, sel.DestinationLabel)
	}
	if sel.Origin.Lat != 11.006 || sel.Destination.Lng != 124.694 {
		t.Errorf("coordinates not carried through: %+v", sel)
	}
	if sel.Padding != ViewportPadding {
		t.Errorf("Padding = %d, want %d", sel.Padding, ViewportPadding)
	}
	if len(renderer.events) != 1 || renderer.events[0] != "draw" {
		t.Errorf("renderer events = %v, want single draw", renderer.events)
	}
}

func TestSelectTearsDownPreviousPath(t *testing.T) {
	lookup := &fakeLookup{endpoints: map[uint]Endpoint{
		1: {Name: "A", Coord: coord(1, 1)},
		2: {Name: "B", Coord: coord(2, 2)},
	}}
	renderer := &fakeRenderer{}
	cat := NewCatalog(&fakeSource{routes: []Route{
		{ID: 1, OriginID: 1, DestinationID: 2},
		{ID: 2, OriginID: 2, DestinationID: 1},
	}}, lookup, renderer)
	if _, err := cat.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	if _, err := cat.Select(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if _, err := cat.Select(context.Background(), 2); err != nil {
		t.Fatal(err)
	}

	want := []string{"draw", "clear", "draw"}
	if len(renderer.events) != len(want) {
		t.Fatalf("renderer events = %v, want %v", renderer.events, want)
	}
	for i := range want {
		if renderer.events[i] != want[i] {
			t.Fatalf("renderer events = %v, want %v", renderer.events, want)
		}
	}
	if cat.Selected() == nil || cat.Selected().RouteID != 2 {
		t.Errorf("Selected() = %+v, want route 2", cat.Selected())
	}
}

func TestSelectMissingCoordinatesDrawsNothing(t *testing.T) {
	// Origin exists but has no coordinates; the selection must fail and
	// must not issue any draw command.
	lookup := &fakeLookup{endpoints: map[uint]Endpoint{
		1: {Name: "No Coords"},
		2: {Name: "B", Coord: coord(2, 2)},
	}}
	renderer := &fakeRenderer{}
	cat := NewCatalog(&fakeSource{routes: []Route{{ID: 9, OriginID: 1, DestinationID: 2}}}, lookup, renderer)
	if _, err := cat.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	_, err := cat.Select(context.Background(), 9)
	if !errors.Is(err, ErrMissingCoordinates) {
		t.Fatalf("Select error = %v, want ErrMissingCoordinates", err)
	}
	if len(renderer.events) != 0 {
		t.Errorf("renderer events = %v, want none", renderer.events)
	}
	if cat.Selected() != nil {
		t.Errorf("Selected() = %+v, want nil", cat.Selected())
	}
}

func TestSelectUnknownRoute(t *testing.T) {
	cat := NewCatalog(&fakeSource{}, &fakeLookup{}, nil)
	if _, err := cat.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	_, err := cat.Select(context.Background(), 42)
	if !errors.Is(err, ErrUnknownRoute) {
		t.Fatalf("Select error = %v, want ErrUnknownRoute", err)
	}
}
