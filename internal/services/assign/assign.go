// Package assign holds the pure starting-state distribution logic: color
// allocation, country dealing, and objective dealing. Functions take their
// randomness source as an argument so results are reproducible under test
// and free of cross-session contention.
package assign

import (
	"github.com/barmonse/teg-server/internal/dependencies/random"
	"github.com/barmonse/teg-server/internal/model"
)

// Countries shuffles the full catalog with the supplied randomness source
// and deals it round-robin across the players in turn order. Per-player
// counts differ by at most one; the union of all hands is the catalog,
// partitioned with no overlaps.
func Countries(players []model.PlayerSlot, catalog []model.Country, rnd random.Random) map[model.UserID][]model.CountryID {
	if len(players) == 0 {
		return map[model.UserID][]model.CountryID{}
	}

	deck := make([]model.CountryID, len(catalog))
	for i, c := range catalog {
		deck[i] = c.ID
	}
	shuffle(deck, rnd)

	hands := make(map[model.UserID][]model.CountryID, len(players))
	for i, id := range deck {
		player := players[i%len(players)]
		hands[player.UserID] = append(hands[player.UserID], id)
	}
	return hands
}

// Objectives shuffles the objective catalog and deals one objective per
// player in turn order. For each player the first not-yet-consumed objective
// is taken if it is generic, or if it is a destroy objective whose target
// color is in play and differs from the assignee's own color; unusable
// destroy objectives are skipped and retained for later players. When the
// remaining catalog holds nothing usable the player receives the catch-all
// ObjectiveConquer30Countries, so the deal is total and never fails.
func Objectives(players []model.PlayerSlot, catalog []model.Objective, rnd random.Random) map[model.UserID]model.Objective {
	deck := make([]model.Objective, len(catalog))
	copy(deck, catalog)
	shuffle(deck, rnd)

	colorsInPlay := make(map[model.PlayerColor]bool, len(players))
	for _, p := range players {
		colorsInPlay[p.Color] = true
	}

	assigned := make(map[model.UserID]model.Objective, len(players))
	for _, player := range players {
		assigned[player.UserID] = model.ObjectiveConquer30Countries
		for i, obj := range deck {
			if target, isDestroy := obj.TargetColor(); isDestroy {
				if !colorsInPlay[target] || target == player.Color {
					continue
				}
			}
			assigned[player.UserID] = obj
			deck = append(deck[:i], deck[i+1:]...)
			break
		}
	}
	return assigned
}

// shuffle is a Fisher-Yates shuffle driven by the injected random source
func shuffle[T any](items []T, rnd random.Random) {
	for i := len(items) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
