package apperr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelMessages(t *testing.T) {
	assert.Equal(t, "no such user", ErrNoSuchUser.Error())
	assert.Equal(t, "you aren't a player in that game", ErrNotInGame.Error())
	assert.Equal(t, "it is not your turn to move in that game", ErrNotTurn.Error())
}

func TestInvalidCommand(t *testing.T) {
	err := &InvalidCommand{Cmd: "frobnicate"}
	assert.Equal(t, "unrecognized command: frobnicate", err.Error())
}

func TestInvalidNumberOfArguments(t *testing.T) {
	err := &InvalidNumberOfArguments{Cmd: "login", Expected: 2, Actual: 1}
	assert.Equal(t, "invalid number of arguments for command login - expected 2, found 1", err.Error())
}

func TestNoSuchGameType(t *testing.T) {
	err := &NoSuchGameType{Type: "checkers"}
	assert.Equal(t, "unsupported game type: checkers", err.Error())
}

func TestNoSuchTournamentType(t *testing.T) {
	err := &NoSuchTournamentType{Type: "swiss"}
	assert.Equal(t, "no such tournament type", err.Error())
}

func TestInvalidMove(t *testing.T) {
	err := &InvalidMove{Reason: "square is occupied"}
	assert.Equal(t, "invalid move: square is occupied", err.Error())
}

func TestInvalidProtocolForCommand(t *testing.T) {
	err := &InvalidProtocolForCommand{Proto: 1, Expected: 2}
	assert.Equal(t, "that command is only available in protocol version 2 (you are in version 1)", err.Error())
}
