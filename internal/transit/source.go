package transit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"tourism_guide/internal/models"
)

// ErrUnknownDestination is reported when an endpoint id has no matching
// destination record at all.
var ErrUnknownDestination = errors.New("destination not found")

// GormRouteSource lists active routes from the database.
type GormRouteSource struct {
	db *gorm.DB
}

func NewGormRouteSource(db *gorm.DB) *GormRouteSource {
	return &GormRouteSource{db: db}
}

func (s *GormRouteSource) ListActive(ctx context.Context) ([]Route, error) {
	var records []models.Route
	if err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}

	routes := make([]Route, 0, len(records))
	for _, rec := range records {
		routes = append(routes, FromModel(rec))
	}
	return routes, nil
}

// FromModel converts a persisted route into the catalog snapshot form.
// Negative numerics are treated as absent, same as the legacy data where
// malformed values collapsed to 0.
func FromModel(rec models.Route) Route {
	return Route{
		ID:            rec.ID,
		Name:          rec.Name,
		OriginID:      rec.OriginID,
		DestinationID: rec.DestinationID,
		Mode:          TransportMode(strings.ToLower(strings.TrimSpace(rec.TransportMode))),
		DistanceKm:    nonNegative(rec.DistanceKm),
		TimeMinutes:   nonNegativeInt(rec.EstimatedTimeMinutes),
		BaseFare:      nonNegative(rec.BaseFare),
		FarePerKm:     nonNegative(rec.FarePerKm),
		Description:   rec.Description,
	}
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func nonNegativeInt(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// GormDestinationLookup resolves endpoints from the destinations table.
// The full dataset is loaded once and reused for the session, matching
// how the map page consumes it.
type GormDestinationLookup struct {
	db    *gorm.DB
	cache map[uint]Endpoint
}

func NewGormDestinationLookup(db *gorm.DB) *GormDestinationLookup {
	return &GormDestinationLookup{db: db}
}

func (l *GormDestinationLookup) Endpoint(ctx context.Context, id uint) (Endpoint, error) {
	if l.cache == nil {
		if err := l.warm(ctx); err != nil {
			return Endpoint{}, err
		}
	}
	ep, ok := l.cache[id]
	if !ok {
		return Endpoint{}, fmt.Errorf("destination %d: %w", id, ErrUnknownDestination)
	}
	return ep, nil
}

func (l *GormDestinationLookup) warm(ctx context.Context) error {
	var records []models.Destination
	if err := l.db.WithContext(ctx).Find(&records).Error; err != nil {
		return fmt.Errorf("load destinations: %w", err)
	}
	l.cache = make(map[uint]Endpoint, len(records))
	for _, rec := range records {
		ep := Endpoint{Name: rec.Name}
		if rec.HasCoordinates() {
			ep.Coord = &LatLng{Lat: *rec.Latitude, Lng: *rec.Longitude}
		}
		l.cache[rec.ID] = ep
	}
	return nil
}
