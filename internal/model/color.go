package model

// PlayerColor identifies a player's color within a session. Colors are
// unique within a session while assigned.
type PlayerColor string

const (
	ColorRed    PlayerColor = "RED"
	ColorBlue   PlayerColor = "BLUE"
	ColorGreen  PlayerColor = "GREEN"
	ColorYellow PlayerColor = "YELLOW"
	ColorBlack  PlayerColor = "BLACK"
	ColorWhite  PlayerColor = "WHITE"
)

// AllColors is the canonical color order. Automatic allocation picks the
// first color in this order not already in use; the creator therefore
// always starts with RED.
var AllColors = []PlayerColor{
	ColorRed,
	ColorBlue,
	ColorGreen,
	ColorYellow,
	ColorBlack,
	ColorWhite,
}

// ParseColor returns the color matching the given name, if any
func ParseColor(name string) (PlayerColor, bool) {
	for _, c := range AllColors {
		if string(c) == name {
			return c, true
		}
	}
	return "", false
}
