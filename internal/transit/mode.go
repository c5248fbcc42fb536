package transit

// TransportMode is the enumerated vehicle/travel type for a route.
type TransportMode string

const (
	ModeJeepney  TransportMode = "jeepney"
	ModeTaxi     TransportMode = "taxi"
	ModeBus      TransportMode = "bus"
	ModeVan      TransportMode = "van"
	ModeTricycle TransportMode = "tricycle"
	ModeWalking  TransportMode = "walking"
)

// Metered reports whether the per-kilometer fare component applies.
func (m TransportMode) Metered() bool {
	return m == ModeTaxi || m == ModeVan
}

// Known reports whether the mode is part of the enumeration. Unknown
// modes are tolerated everywhere and rendered with the default style.
func (m TransportMode) Known() bool {
	switch m {
	case ModeJeepney, ModeTaxi, ModeBus, ModeVan, ModeTricycle, ModeWalking:
		return true
	}
	return false
}

// Style is the icon and marker color the client renders for a mode.
type Style struct {
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

var modeStyles = map[TransportMode]Style{
	ModeJeepney:  {Icon: "fa-bus", Color: "#f59e0b"},
	ModeTaxi:     {Icon: "fa-taxi", Color: "#eab308"},
	ModeBus:      {Icon: "fa-bus-simple", Color: "#3b82f6"},
	ModeVan:      {Icon: "fa-van-shuttle", Color: "#8b5cf6"},
	ModeTricycle: {Icon: "fa-motorcycle", Color: "#ef4444"},
	ModeWalking:  {Icon: "fa-person-walking", Color: "#22c55e"},
}

var defaultStyle = Style{Icon: "fa-route", Color: "#6b7280"}

// ModeStyle maps a transport mode to its display style. Empty or
// unrecognized modes get the generic style so rendering never fails on
// unexpected enumeration values.
func ModeStyle(m TransportMode) Style {
	if s, ok := modeStyles[m]; ok {
		return s
	}
	return defaultStyle
}
