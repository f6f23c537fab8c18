/*
 * file: registry.go
 * package: games
 * description:
 *     Maps game-type name strings to their GameType implementation,
 *     registered once at boot. The engine consults this by name only; it
 *     never imports a concrete game type directly.
 */

package games

import (
	"strings"

	"github.com/arborly/matchkeep/internal/core/ports"
)

// DefaultRegistry returns the built-in game-type map: "chess" backed by
// notnil/chess, plus the internal "__ENDED_GAME" sentinel type the store
// facade uses to reload forcibly-terminated games.
func DefaultRegistry() map[string]ports.GameType {
	return map[string]ports.GameType{
		"chess":           ChessGame{},
		EndedGameSentinel: EndedGame{},
	}
}

// Load reconstructs a GameInstance from its serialized state. A state
// beginning with the EndedGame sentinel is always routed to EndedGame,
// never to the game's own registered GameType -- that is the whole point
// of the sentinel.
func Load(registry map[string]ports.GameType, gameType, state string, players []uint) (ports.GameInstance, bool) {
	if strings.HasPrefix(state, EndedGameSentinel) {
		return EndedGame{}.Deserialize(state, players)
	}
	gt, ok := registry[gameType]
	if !ok {
		return nil, false
	}
	return gt.Deserialize(state, players)
}
