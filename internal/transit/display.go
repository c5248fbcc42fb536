package transit

import "fmt"

// NotAvailable is rendered for fare, distance, and time when the value is
// exactly 0. Zero and "unknown" are deliberately indistinguishable here;
// that matches the site's historical display contract.
const NotAvailable = "N/A"

// fallbackRouteName labels routes saved without a name.
const fallbackRouteName = "Unnamed Route"

// DisplayRoute is the presentation-ready projection of a route, with fare
// computed and every numeric field pre-formatted.
type DisplayRoute struct {
	ID               uint          `json:"id"`
	Name             string        `json:"route_name"`
	OriginID         uint          `json:"origin_id"`
	OriginName       string        `json:"origin_name"`
	DestinationID    uint          `json:"destination_id"`
	DestinationName  string        `json:"destination_name"`
	Mode             TransportMode `json:"transport_mode"`
	Style            Style         `json:"style"`
	Fare             float64       `json:"fare"`
	FareDisplay      string        `json:"fare_display"`
	DistanceKm       float64       `json:"distance_km"`
	DistanceDisplay  string        `json:"distance_display"`
	TimeMinutes      int           `json:"estimated_time_minutes"`
	TimeDisplay      string        `json:"time_display"`
	Description      string        `json:"description"`
}

// FormatFare renders a fare amount in pesos, or N/A for 0.
func FormatFare(amount float64) string {
	if amount == 0 {
		return NotAvailable
	}
	return fmt.Sprintf("₱%.2f", amount)
}

// FormatDistance renders a distance in kilometers, or N/A for 0.
func FormatDistance(km float64) string {
	if km == 0 {
		return NotAvailable
	}
	return fmt.Sprintf("%.1f km", km)
}

// FormatTime renders an estimated travel time, or N/A for 0.
func FormatTime(minutes int) string {
	if minutes == 0 {
		return NotAvailable
	}
	return fmt.Sprintf("%d mins", minutes)
}

// CleanDescription collapses the legacy "no description" sentinels that
// accumulated in the routes table ("", "0", and the literal "null") into
// an empty string. Anything else passes through verbatim.
func CleanDescription(s string) string {
	switch s {
	case "", "0", "null":
		return ""
	}
	return s
}

// DisplayName returns the route label, falling back to a generic one.
func DisplayName(r Route) string {
	if r.Name == "" {
		return fallbackRouteName
	}
	return r.Name
}

// Present builds the display projection for one route. Endpoint names
// come from the destination lookup; callers pass what they resolved.
func Present(r Route, originName, destinationName string) DisplayRoute {
	fare := Fare(r)
	return DisplayRoute{
		ID:              r.ID,
		Name:            DisplayName(r),
		OriginID:        r.OriginID,
		OriginName:      originName,
		DestinationID:   r.DestinationID,
		DestinationName: destinationName,
		Mode:            r.Mode,
		Style:           ModeStyle(r.Mode),
		Fare:            fare,
		FareDisplay:     FormatFare(fare),
		DistanceKm:      r.DistanceKm,
		DistanceDisplay: FormatDistance(r.DistanceKm),
		TimeMinutes:     r.TimeMinutes,
		TimeDisplay:     FormatTime(r.TimeMinutes),
		Description:     CleanDescription(r.Description),
	}
}
