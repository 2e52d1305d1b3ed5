// Package route fetches a driving route from the routing service and
// maps its raw steps into the closed maneuver set the navigation engine
// understands. One fetch per destination selection; rerouting is not
// part of this engine.
package route

import "github.com/fuelmate/go-nav/pkg/geo"

// ManeuverType is the closed set of maneuver kinds the engine renders.
// Anything the routing service emits outside this set maps to Continue.
type ManeuverType string

const (
	ManeuverTurn       ManeuverType = "turn"
	ManeuverFork       ManeuverType = "fork"
	ManeuverRoundabout ManeuverType = "roundabout"
	ManeuverMerge      ManeuverType = "merge"
	ManeuverArrive     ManeuverType = "arrive"
	ManeuverDepart     ManeuverType = "depart"
	ManeuverContinue   ManeuverType = "continue"
)

// Modifier is the optional directional qualifier of a maneuver.
type Modifier string

const (
	ModifierNone     Modifier = ""
	ModifierLeft     Modifier = "left"
	ModifierRight    Modifier = "right"
	ModifierStraight Modifier = "straight"
)

// Step is one maneuver along the route. Steps are ordered; the order is
// the order maneuvers occur while driving.
type Step struct {
	Instruction     string       `json:"instruction"`
	DistanceMeters  float64      `json:"distance_m"`
	DurationSeconds float64      `json:"duration_s"`
	Maneuver        ManeuverType `json:"maneuver"`
	Modifier        Modifier     `json:"modifier,omitempty"`
}

// Route is a decoded route: the polyline geometry plus the maneuver
// list. Immutable once fetched; owned by the active navigation session.
type Route struct {
	Geometry    []geo.Coordinate `json:"geometry"`
	Steps       []Step           `json:"steps"`
	Destination geo.Coordinate   `json:"destination"`

	DistanceMeters  float64 `json:"distance_m"`
	DurationSeconds float64 `json:"duration_s"`
}

// MapManeuverType maps a raw routing-service maneuver type into the
// closed set. Unrecognized types default to Continue.
func MapManeuverType(raw string) ManeuverType {
	switch raw {
	case "turn", "end of road", "on ramp", "off ramp":
		return ManeuverTurn
	case "fork":
		return ManeuverFork
	case "roundabout", "rotary", "roundabout turn", "exit roundabout", "exit rotary":
		return ManeuverRoundabout
	case "merge":
		return ManeuverMerge
	case "arrive":
		return ManeuverArrive
	case "depart":
		return ManeuverDepart
	default:
		return ManeuverContinue
	}
}

// MapModifier maps a raw directional modifier ("slight left", "sharp
// right", ...) into left/right/straight, or none when absent.
func MapModifier(raw string) Modifier {
	switch raw {
	case "left", "slight left", "sharp left":
		return ModifierLeft
	case "right", "slight right", "sharp right":
		return ModifierRight
	case "straight":
		return ModifierStraight
	default:
		return ModifierNone
	}
}
