package transit

import "testing"

func TestFormatZeroRendersNotAvailable(t *testing.T) {
	// Zero and "unknown" are indistinguishable in the display contract:
	// a genuinely free route also shows N/A. Carried over as-is from the
	// site this replaces.
	if got := FormatFare(0); got != NotAvailable {
		t.Errorf("FormatFare(0) = %q, want %q", got, NotAvailable)
	}
	if got := FormatDistance(0); got != NotAvailable {
		t.Errorf("FormatDistance(0) = %q, want %q", got, NotAvailable)
	}
	if got := FormatTime(0); got != NotAvailable {
		t.Errorf("FormatTime(0) = %q, want %q", got, NotAvailable)
	}
}

func TestFormatPresentValues(t *testing.T) {
	if got := FormatFare(70); got != "₱70.00" {
		t.Errorf("FormatFare(70) = %q", got)
	}
	if got := FormatDistance(10.25); got != "10.2 km" {
		t.Errorf("FormatDistance(10.25) = %q", got)
	}
	if got := FormatTime(45); got != "45 mins" {
		t.Errorf("FormatTime(45) = %q", got)
	}
}

func TestCleanDescriptionSentinels(t *testing.T) {
	for _, sentinel := range []string{"", "0", "null"} {
		if got := CleanDescription(sentinel); got != "" {
			t.Errorf("CleanDescription(%q) = %q, want empty", sentinel, got)
		}
	}
	// Any other non-empty string passes through verbatim, including ones
	// that merely resemble the sentinels.
	for _, keep := range []string{"0 stops", "nullable", "Take the jeepney from the terminal."} {
		if got := CleanDescription(keep); got != keep {
			t.Errorf("CleanDescription(%q) = %q, want verbatim", keep, got)
		}
	}
}

func TestDisplayNameFallback(t *testing.T) {
	if got := DisplayName(Route{}); got != "Unnamed Route" {
		t.Errorf("DisplayName(unnamed) = %q", got)
	}
	if got := DisplayName(Route{Name: "Downtown Loop"}); got != "Downtown Loop" {
		t.Errorf("DisplayName = %q", got)
	}
}

func TestModeStyleDefaultsForUnknownModes(t *testing.T) {
	known := ModeStyle(ModeTaxi)
	if known == defaultStyle {
		t.Error("taxi should have its own style")
	}
	for _, m := range []TransportMode{"", "ferry", "HOVERCRAFT"} {
		if got := ModeStyle(m); got != defaultStyle {
			t.Errorf("ModeStyle(%q) = %+v, want default", m, got)
		}
	}
}

func TestPresentComputesFareAndFormats(t *testing.T) {
	r := Route{
		ID: 1, Name: "", OriginID: 10, DestinationID: 20,
		Mode: ModeTaxi, DistanceKm: 10, BaseFare: 20, FarePerKm: 5,
		Description: "null",
	}
	got := Present(r, "Pier 1", "Plaza")
	if got.Fare != 70 || got.FareDisplay != "₱70.00" {
		t.Errorf("fare = %v / %q", got.Fare, got.FareDisplay)
	}
	if got.Name != "Unnamed Route" {
		t.Errorf("name = %q", got.Name)
	}
	if got.OriginName != "Pier 1" || got.DestinationName != "Plaza" {
		t.Errorf("endpoint names = %q / %q", got.OriginName, got.DestinationName)
	}
	if got.Description != "" {
		t.Errorf("description sentinel leaked: %q", got.Description)
	}
	if got.Style != ModeStyle(ModeTaxi) {
		t.Errorf("style = %+v", got.Style)
	}
}
