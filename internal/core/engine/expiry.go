/*
 * file: expiry.go
 * package: engine
 * description:
 *     HandleExpiry is the turn-timer-fire handler: reload the game, drop
 *     the event if its turnId is stale, otherwise settle the game on
 *     time for the two-player case. Time-expiry semantics for games with
 *     more than two players are left undecided upstream (see spec's open
 *     questions) -- this handler takes no action for them rather than
 *     guessing a forfeiture rule.
 */

package engine

import "github.com/arborly/matchkeep/internal/core/ports"

// HandleExpiry applies one fired expiry event against store.
func HandleExpiry(store ports.Store, ev ExpiryEvent) error {
	game, err := store.FindGame(ev.GameID)
	if err != nil {
		return err
	}
	if game.TurnID == nil || *game.TurnID != ev.TurnID {
		// Stale fire: a move (or a later turn) has already superseded
		// this timer. Ignore it.
		return nil
	}

	players, err := store.FindGamePlayers(ev.GameID)
	if err != nil {
		return err
	}
	if len(players) != 2 {
		return nil
	}

	var winner uint
	found := false
	for _, p := range players {
		if p.UserID != ev.UserID {
			winner = p.UserID
			found = true
			break
		}
	}
	if !found {
		return nil
	}
	return store.EndGame(ev.GameID, &winner, "Time Expired")
}
