/*
 * file: ended_game.go
 * package: games
 * description:
 *     EndedGame is the sentinel GameType used when the engine forces
 *     termination of a game (timeout, forced resignation) rather than the
 *     game type's own make_move reaching a natural end. Its serialized
 *     form is recognized by the "__ENDED_GAME" prefix; the store facade
 *     must route loading such a state here instead of to the game's
 *     original GameType.
 */

package games

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arborly/matchkeep/internal/core/ports"
)

// EndedGameSentinel is the prefix a serialized EndedGameInstance begins
// with; detecting it on load must bypass the original game type's
// deserializer.
const EndedGameSentinel = "__ENDED_GAME"

// EndedGame is the GameType for terminal wrapper instances.
type EndedGame struct{}

func (EndedGame) New(players []uint) (ports.GameInstance, bool) {
	return &EndedGameInstance{}, true
}

func (EndedGame) Deserialize(data string, players []uint) (ports.GameInstance, bool) {
	parts := strings.SplitN(data, ",", 5)
	if len(parts) != 5 {
		return nil, false
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	// parts[0] is the sentinel itself.
	winner, hasWinner := (*uint)(nil), false
	if parts[1] != "-" {
		id, err := strconv.ParseUint(parts[1], 10, 64)
		if err != nil {
			return nil, false
		}
		v := uint(id)
		winner, hasWinner = &v, true
	}
	_ = hasWinner
	return &EndedGameInstance{
		winner:    winner,
		reason:    parts[2],
		gameType:  parts[3],
		prevState: parts[4],
	}, true
}

// EndedGameInstance is a terminal wrapper carrying the reason play
// stopped, the original game type, and the last live serialized state.
type EndedGameInstance struct {
	winner    *uint
	reason    string
	gameType  string
	prevState string
}

// NewEndedGameInstance constructs the terminal wrapper the engine installs
// when it forces a game to end. prevState is the prior live instance's
// full serialization, or "-" if there was none.
func NewEndedGameInstance(prevState string, gameType string, winner *uint, reason string) *EndedGameInstance {
	if prevState == "" {
		prevState = "-"
	}
	return &EndedGameInstance{winner: winner, reason: reason, gameType: gameType, prevState: prevState}
}

func (e *EndedGameInstance) Turn() ports.GameTurn { return ports.Finished() }

func (e *EndedGameInstance) MakeMove(userID uint, move string) error {
	return fmt.Errorf("invalid move")
}

func (e *EndedGameInstance) EndState() ports.GameState {
	if e.winner == nil {
		return ports.GameState{Kind: ports.StateTie}
	}
	return ports.GameState{Kind: ports.StateWin, Winner: *e.winner}
}

func (e *EndedGameInstance) Scores() (ports.GameScore, bool) { return nil, false }

func (e *EndedGameInstance) Serialize() string {
	winner := "-"
	if e.winner != nil {
		winner = strconv.FormatUint(uint64(*e.winner), 10)
	}
	return fmt.Sprintf("%s, %s, %s, %s, %s", EndedGameSentinel, winner, e.reason, e.gameType, e.prevState)
}

func (e *EndedGameInstance) SerializeCurrent() string { return e.Serialize() }
