package assign

import (
	"github.com/barmonse/teg-server/internal/model"
)

// NextAvailableColor returns the first color in the canonical order not
// present in used. Returns ErrNoColorAvailable if every color is taken;
// that cannot happen while session capacity stays within the color count,
// but the check is kept regardless.
func NextAvailableColor(used map[model.PlayerColor]bool) (model.PlayerColor, error) {
	for _, color := range model.AllColors {
		if !used[color] {
			return color, nil
		}
	}
	return "", model.ErrNoColorAvailable
}

// ColorTaken reports whether any member other than excludeUserID holds the
// candidate color. A member reasserting their own color is not a conflict.
func ColorTaken(players map[model.UserID]model.PlayerSlot, color model.PlayerColor, excludeUserID model.UserID) bool {
	for id, slot := range players {
		if id == excludeUserID {
			continue
		}
		if slot.Color == color {
			return true
		}
	}
	return false
}
