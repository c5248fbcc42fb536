package transit

import (
	"testing"

	"tourism_guide/internal/models"
)

func TestFromModelNormalizesMode(t *testing.T) {
	rec := models.Route{TransportMode: "  Taxi "}
	if got := FromModel(rec).Mode; got != ModeTaxi {
		t.Errorf("Mode = %q, want %q", got, ModeTaxi)
	}

	// Unrecognized modes are carried through; display falls back to the
	// generic style rather than rejecting the record.
	rec.TransportMode = "ferry"
	if got := FromModel(rec).Mode; got != TransportMode("ferry") {
		t.Errorf("Mode = %q, want ferry carried through", got)
	}
}

func TestFromModelTreatsNegativeNumericsAsAbsent(t *testing.T) {
	rec := models.Route{
		TransportMode:        "taxi",
		DistanceKm:           -3,
		EstimatedTimeMinutes: -10,
		BaseFare:             -5,
		FarePerKm:            -1,
	}
	r := FromModel(rec)
	if r.DistanceKm != 0 || r.TimeMinutes != 0 || r.BaseFare != 0 || r.FarePerKm != 0 {
		t.Errorf("negative numerics not clamped: %+v", r)
	}
	// Which in turn degrades the fare to the (zero) base, never negative.
	if got := Fare(r); got != 0 {
		t.Errorf("Fare = %v, want 0", got)
	}
}
