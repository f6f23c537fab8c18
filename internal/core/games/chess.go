/*
 * file: chess.go
 * package: games
 * description:
 *     ChessGame is the one concrete GameType this server ships: a thin
 *     adapter over github.com/notnil/chess. The engine never inspects a
 *     board directly — legality, check/stalemate detection, and FEN
 *     parsing are entirely delegated to that library, matching the
 *     engine's "opaque GameType" contract.
 */

package games

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"

	"github.com/arborly/matchkeep/internal/core/ports"
)

// ChessGame is the "chess" GameType.
type ChessGame struct{}

func (ChessGame) New(players []uint) (ports.GameInstance, bool) {
	if len(players) != 2 {
		return nil, false
	}
	return &ChessGameInstance{
		game:  chess.NewGame(),
		white: players[0],
		black: players[1],
	}, true
}

// Deserialize parses the "fen,[move0,move1,...]" format: everything before
// the first comma is the current position's FEN, the bracketed,
// comma-separated remainder is the move history kept for the full
// serialization (the board itself is already at the post-move position,
// the history is not replayed).
func (ChessGame) Deserialize(data string, players []uint) (ports.GameInstance, bool) {
	if len(players) != 2 {
		return nil, false
	}
	clean := strings.NewReplacer("[", "", "]", "").Replace(data)
	components := strings.Split(clean, ",")
	if len(components) == 0 {
		return nil, false
	}
	fen := strings.TrimSpace(components[0])
	var moves []string
	for _, m := range components[1:] {
		m = strings.TrimSpace(m)
		if m != "" {
			moves = append(moves, m)
		}
	}
	fenOpt, err := chess.FEN(fen)
	if err != nil {
		return nil, false
	}
	g := chess.NewGame(fenOpt)
	return &ChessGameInstance{
		game:  g,
		moves: moves,
		white: players[0],
		black: players[1],
	}, true
}

// ChessGameInstance wraps a live *chess.Game plus the move history kept
// purely for the full-state serialization.
type ChessGameInstance struct {
	game  *chess.Game
	moves []string
	white uint
	black uint
}

func (c *ChessGameInstance) chessPlayerToUser(p chess.Color) uint {
	if p == chess.White {
		return c.white
	}
	return c.black
}

func (c *ChessGameInstance) otherUser(u uint) uint {
	if u == c.white {
		return c.black
	}
	return c.white
}

func (c *ChessGameInstance) Turn() ports.GameTurn {
	if c.game.Outcome() != chess.NoOutcome {
		return ports.Finished()
	}
	return ports.Turn(c.chessPlayerToUser(c.game.Position().Turn()))
}

func (c *ChessGameInstance) MakeMove(userID uint, move string) error {
	if c.chessPlayerToUser(c.game.Position().Turn()) != userID {
		return fmt.Errorf("not player's turn")
	}
	parsed, err := chess.UCINotation{}.Decode(c.game.Position(), move)
	if err != nil {
		return fmt.Errorf("malformed move: %s", move)
	}
	if err := c.game.Move(parsed); err != nil {
		return fmt.Errorf("illegal move: %s", move)
	}
	c.moves = append(c.moves, move)
	return nil
}

func (c *ChessGameInstance) EndState() ports.GameState {
	switch c.game.Outcome() {
	case chess.Draw:
		return ports.GameState{Kind: ports.StateTie}
	case chess.WhiteWon:
		return ports.GameState{Kind: ports.StateWin, Winner: c.white}
	case chess.BlackWon:
		return ports.GameState{Kind: ports.StateWin, Winner: c.black}
	default:
		return ports.GameState{Kind: ports.StateInProgress}
	}
}

func (c *ChessGameInstance) Scores() (ports.GameScore, bool) {
	switch c.game.Outcome() {
	case chess.Draw:
		return ports.GameScore{c.white: 0.5, c.black: 0.5}, true
	case chess.WhiteWon:
		return ports.GameScore{c.white: 1, c.black: 0}, true
	case chess.BlackWon:
		return ports.GameScore{c.white: 0, c.black: 1}, true
	default:
		return nil, false
	}
}

func (c *ChessGameInstance) Serialize() string {
	var sb strings.Builder
	sb.WriteString(c.game.FEN())
	sb.WriteString(",[")
	for i, m := range c.moves {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(m)
	}
	sb.WriteString("]")
	return sb.String()
}

func (c *ChessGameInstance) SerializeCurrent() string {
	return c.game.FEN()
}
