/*
 * file: render.go
 * package: wire
 * description:
 *     Renders server -> client messages bit-exactly as the protocol
 *     requires. Integer ids serialize plainly; missing optionals
 *     serialize as "-"; GameState serializes as "-" (in progress), the
 *     winner's user id (win), or "tie".
 */

package wire

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arborly/matchkeep/internal/core/ports"
)

const dash = "-"

func optUint(v *uint) string {
	if v == nil {
		return dash
	}
	return strconv.FormatUint(uint64(*v), 10)
}

func optInt64(v *int64) string {
	if v == nil {
		return dash
	}
	return strconv.FormatInt(*v, 10)
}

func optString(v *string) string {
	if v == nil {
		return dash
	}
	return *v
}

// RenderGameState renders a GameState (or tournament-level reuse of the
// same kind) per the wire rule: "-" for in progress, the winner's id for
// a win, "tie" for a tie.
func RenderGameState(kind ports.GameStateKind, winner uint) string {
	switch kind {
	case ports.StateWin:
		return strconv.FormatUint(uint64(winner), 10)
	case ports.StateTie:
		return "tie"
	default:
		return dash
	}
}

func Okay() string { return "okay" }

func RenderError(err error) string { return "error " + err.Error() }

func RenderGenApikey(rawKeyHex32 string) string {
	return "gen_apikey " + rawKeyHex32
}

func RenderSelfUserInfo(id uint, name string, email *string) string {
	return fmt.Sprintf("self_user_info %d, %s, %s", id, name, optString(email))
}

func RenderNewGame(id uint) string {
	return fmt.Sprintf("new_game %d", id)
}

func RenderNewGameTmpUsers(id uint, apiKeys []string) string {
	return fmt.Sprintf("new_game_tmp_users %d, %s", id, strings.Join(apiKeys, ", "))
}

func RenderNewTournament(id uint) string {
	return fmt.Sprintf("new_tournament %d", id)
}

// GamePlayerRow is one row of a `game` message's player list:
// [uid, name, score-or-0, timeMs].
type GamePlayerRow struct {
	UserID uint
	Name   string
	Score  float64
	TimeMs int64
}

func renderGamePlayerRows(rows []GamePlayerRow) string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, r := range rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(fmt.Sprintf("[%d, %s, %v, %d]", r.UserID, r.Name, r.Score, r.TimeMs))
	}
	sb.WriteString("]")
	return sb.String()
}

// RenderGame renders the `game` message.
func RenderGame(
	id uint, gameType string, owner uint, started, finished bool,
	stateKind ports.GameStateKind, winner uint,
	suddenDeathMs, perMoveMs int64,
	currentMoveStart *int64, currentPlayer *uint,
	players []GamePlayerRow, state *string,
) string {
	return fmt.Sprintf(
		"game %d, %s, %d, %v, %v, %s, %d, %d, %s, %s, %s, %s",
		id, gameType, owner, started, finished,
		RenderGameState(stateKind, winner),
		suddenDeathMs, perMoveMs,
		optInt64(currentMoveStart), optUint(currentPlayer),
		renderGamePlayerRows(players), optString(state),
	)
}

// TournamentPlayerRow is one row of a `tournament` message's player list:
// [uid, name, win, loss, tie].
type TournamentPlayerRow struct {
	UserID uint
	Name   string
	Win    int
	Loss   int
	Tie    int
}

func renderTournamentPlayerRows(rows []TournamentPlayerRow) string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, r := range rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(fmt.Sprintf("[%d, %s, %d, %d, %d]", r.UserID, r.Name, r.Win, r.Loss, r.Tie))
	}
	sb.WriteString("]")
	return sb.String()
}

// RenderTournament renders the `tournament` message. gamesSerialization is
// the tournament instance's own games-list rendering (default: a
// bracketed list of game ids).
func RenderTournament(
	id uint, tournamentType string, owner uint, gameType string,
	started, finished bool, stateKind ports.GameStateKind, winner uint,
	players []TournamentPlayerRow, gamesSerialization string,
) string {
	return fmt.Sprintf(
		"tournament %d, %s, %d, %s, %v, %v, %s, %s, %s",
		id, tournamentType, owner, gameType, started, finished,
		RenderGameState(stateKind, winner),
		renderTournamentPlayerRows(players), gamesSerialization,
	)
}

// RenderTournamentGames renders a tournament's games as a bracketed,
// comma-separated list of game ids (the default games serialization).
func RenderTournamentGames(gameIDs []uint) string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, id := range gameIDs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatUint(uint64(id), 10))
	}
	sb.WriteString("]")
	return sb.String()
}

// RenderGo renders the `go` message (protocol 2 only).
func RenderGo(id uint, gameType string, timeMs, timeForTurnMs int64, state *string) string {
	return fmt.Sprintf("go %d, %s, %d, %d, %s", id, gameType, timeMs, timeForTurnMs, optString(state))
}

// RenderPosition renders the `position` message (protocol 1 only).
func RenderPosition(state *string) string {
	return "position " + optString(state)
}
