package model

import "strings"

// Objective is a victory objective dealt to a player when the session
// starts. Destroy objectives target a specific color and are only dealt
// when that color is in play and is not the assignee's own.
type Objective string

const (
	ObjectiveDestroyRed    Objective = "DESTROY_RED"
	ObjectiveDestroyBlue   Objective = "DESTROY_BLUE"
	ObjectiveDestroyGreen  Objective = "DESTROY_GREEN"
	ObjectiveDestroyYellow Objective = "DESTROY_YELLOW"
	ObjectiveDestroyBlack  Objective = "DESTROY_BLACK"
	ObjectiveDestroyWhite  Objective = "DESTROY_WHITE"

	ObjectiveConquerAfricaAndNorthAmerica  Objective = "CONQUER_AFRICA_AND_NORTH_AMERICA"
	ObjectiveConquerSouthAmericaAndEurope  Objective = "CONQUER_SOUTH_AMERICA_AND_EUROPE"
	ObjectiveConquerAsiaAndSouthAmerica    Objective = "CONQUER_ASIA_AND_SOUTH_AMERICA"
	ObjectiveConquerEuropeAndOceania       Objective = "CONQUER_EUROPE_AND_OCEANIA"
	ObjectiveConquerNorthAmericaAndOceania Objective = "CONQUER_NORTH_AMERICA_AND_OCEANIA"
	ObjectiveConquerAsia                   Objective = "CONQUER_ASIA"

	// ObjectiveConquer30Countries is the total catch-all: it is always
	// achievable and serves as the deterministic fallback when no other
	// objective can be dealt to a player.
	ObjectiveConquer30Countries Objective = "CONQUER_30_COUNTRIES"
)

// AllObjectives is the fixed objective catalog in canonical order
var AllObjectives = []Objective{
	ObjectiveDestroyRed,
	ObjectiveDestroyBlue,
	ObjectiveDestroyGreen,
	ObjectiveDestroyYellow,
	ObjectiveDestroyBlack,
	ObjectiveDestroyWhite,
	ObjectiveConquerAfricaAndNorthAmerica,
	ObjectiveConquerSouthAmericaAndEurope,
	ObjectiveConquerAsiaAndSouthAmerica,
	ObjectiveConquerEuropeAndOceania,
	ObjectiveConquerNorthAmericaAndOceania,
	ObjectiveConquerAsia,
	ObjectiveConquer30Countries,
}

const destroyPrefix = "DESTROY_"

// IsDestroy reports whether this is a destroy-color objective
func (o Objective) IsDestroy() bool {
	return strings.HasPrefix(string(o), destroyPrefix)
}

// TargetColor returns the color a destroy objective targets, and whether
// the objective is a destroy objective at all
func (o Objective) TargetColor() (PlayerColor, bool) {
	if !o.IsDestroy() {
		return "", false
	}
	return ParseColor(strings.TrimPrefix(string(o), destroyPrefix))
}
