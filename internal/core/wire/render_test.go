package wire

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arborly/matchkeep/internal/core/ports"
)

func TestRenderGameStateKinds(t *testing.T) {
	assert.Equal(t, "-", RenderGameState(ports.StateInProgress, 0))
	assert.Equal(t, "tie", RenderGameState(ports.StateTie, 0))
	assert.Equal(t, "7", RenderGameState(ports.StateWin, 7))
}

func TestOkayAndRenderError(t *testing.T) {
	assert.Equal(t, "okay", Okay())
	assert.Equal(t, "error no such game", RenderError(errors.New("no such game")))
}

func TestRenderGenApikey(t *testing.T) {
	assert.Equal(t, "gen_apikey deadbeef", RenderGenApikey("deadbeef"))
}

func TestRenderSelfUserInfoWithAndWithoutEmail(t *testing.T) {
	email := "a@b.com"
	assert.Equal(t, "self_user_info 1, alice, a@b.com", RenderSelfUserInfo(1, "alice", &email))
	assert.Equal(t, "self_user_info 1, alice, -", RenderSelfUserInfo(1, "alice", nil))
}

func TestRenderNewGameAndTournament(t *testing.T) {
	assert.Equal(t, "new_game 42", RenderNewGame(42))
	assert.Equal(t, "new_tournament 9", RenderNewTournament(9))
}

func TestRenderNewGameTmpUsers(t *testing.T) {
	assert.Equal(t, "new_game_tmp_users 5, key1, key2", RenderNewGameTmpUsers(5, []string{"key1", "key2"}))
}

func TestRenderGameFullMessage(t *testing.T) {
	moveStart := int64(1700000000000)
	player := uint(3)
	state := "fen-state"

	msg := RenderGame(
		1, "chess", 3, true, false,
		ports.StateInProgress, 0,
		5000, 1000,
		&moveStart, &player,
		[]GamePlayerRow{
			{UserID: 3, Name: "alice", Score: 0, TimeMs: 5000},
			{UserID: 4, Name: "bob", Score: 0, TimeMs: 5000},
		},
		&state,
	)

	assert.Equal(t,
		"game 1, chess, 3, true, false, -, 5000, 1000, 1700000000000, 3, [[3, alice, 0, 5000], [4, bob, 0, 5000]], fen-state",
		msg,
	)
}

func TestRenderGameOmitsOptionalsBeforeStart(t *testing.T) {
	msg := RenderGame(
		1, "chess", 3, false, false,
		ports.StateInProgress, 0,
		5000, 1000,
		nil, nil,
		nil, nil,
	)
	assert.Equal(t, "game 1, chess, 3, false, false, -, 5000, 1000, -, -, [], -", msg)
}

func TestRenderTournamentFullMessage(t *testing.T) {
	msg := RenderTournament(
		1, "round_robin", 9, "chess", true, true,
		ports.StateWin, 3,
		[]TournamentPlayerRow{
			{UserID: 3, Name: "alice", Win: 2, Loss: 0, Tie: 0},
			{UserID: 4, Name: "bob", Win: 0, Loss: 2, Tie: 0},
		},
		RenderTournamentGames([]uint{10, 11}),
	)

	assert.Equal(t,
		"tournament 1, round_robin, 9, chess, true, true, 3, [[3, alice, 2, 0, 0], [4, bob, 0, 2, 0]], [10, 11]",
		msg,
	)
}

func TestRenderTournamentGamesEmpty(t *testing.T) {
	assert.Equal(t, "[]", RenderTournamentGames(nil))
}

func TestRenderGo(t *testing.T) {
	state := "fen"
	assert.Equal(t, "go 1, chess, 5000, 900, fen", RenderGo(1, "chess", 5000, 900, &state))
	assert.Equal(t, "go 1, chess, 5000, 900, -", RenderGo(1, "chess", 5000, 900, nil))
}

func TestRenderPosition(t *testing.T) {
	state := "fen"
	assert.Equal(t, "position fen", RenderPosition(&state))
	assert.Equal(t, "position -", RenderPosition(nil))
}
