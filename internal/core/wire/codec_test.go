package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborly/matchkeep/internal/core/apperr"
)

func TestParseCommandNoArgs(t *testing.T) {
	cmd, err := ParseCommand("logout")
	require.NoError(t, err)
	assert.Equal(t, "logout", cmd.Name)
	assert.Empty(t, cmd.Args)
}

func TestParseCommandWithArgs(t *testing.T) {
	cmd, err := ParseCommand("login foo@example.com, hunter2")
	require.NoError(t, err)
	assert.Equal(t, "login", cmd.Name)
	assert.Equal(t, []string{"foo@example.com", "hunter2"}, cmd.Args)
}

func TestParseCommandTrimsWhitespaceAroundArgs(t *testing.T) {
	cmd, err := ParseCommand("play 1,  e2e4  ")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "e2e4"}, cmd.Args)
}

func TestParseCommandUnknownVerb(t *testing.T) {
	_, err := ParseCommand("frobnicate 1")
	require.Error(t, err)
	var invalidCmd *apperr.InvalidCommand
	require.ErrorAs(t, err, &invalidCmd)
	assert.Equal(t, "frobnicate", invalidCmd.Cmd)
}

func TestParseCommandWrongArgCount(t *testing.T) {
	_, err := ParseCommand("join_game 1, 2")
	require.Error(t, err)
	var argErr *apperr.InvalidNumberOfArguments
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "join_game", argErr.Cmd)
	assert.Equal(t, 1, argErr.Expected)
	assert.Equal(t, 2, argErr.Actual)
}

func TestParseCommandZeroArgExpectedWithExtraWhitespace(t *testing.T) {
	cmd, err := ParseCommand("logout   ")
	require.NoError(t, err)
	assert.Empty(t, cmd.Args)
}

func TestParseCommandMissingRequiredArgs(t *testing.T) {
	_, err := ParseCommand("login")
	require.Error(t, err)
	var argErr *apperr.InvalidNumberOfArguments
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, 0, argErr.Actual)
}
