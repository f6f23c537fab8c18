package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborly/matchkeep/internal/core/ports"
)

func TestNewEndedGameInstanceWinSerializeRoundTrip(t *testing.T) {
	winner := uint(7)
	instance := NewEndedGameInstance("fen-state-here", "chess", &winner, "Time Expired")

	assert.Equal(t, ports.Finished(), instance.Turn())
	assert.Equal(t, ports.GameState{Kind: ports.StateWin, Winner: 7}, instance.EndState())

	serialized := instance.Serialize()
	restored, ok := EndedGame{}.Deserialize(serialized, nil)
	require.True(t, ok)
	assert.Equal(t, ports.GameState{Kind: ports.StateWin, Winner: 7}, restored.EndState())
}

func TestNewEndedGameInstanceTieSerializeRoundTrip(t *testing.T) {
	instance := NewEndedGameInstance("", "chess", nil, "Draw Agreed")

	serialized := instance.Serialize()
	restored, ok := EndedGame{}.Deserialize(serialized, nil)
	require.True(t, ok)
	assert.Equal(t, ports.GameState{Kind: ports.StateTie}, restored.EndState())
}

func TestEndedGameInstanceRejectsMoves(t *testing.T) {
	instance := NewEndedGameInstance("state", "chess", nil, "resigned")
	err := instance.MakeMove(1, "e2e4")
	assert.Error(t, err)

	_, ok := instance.Scores()
	assert.False(t, ok)
}

func TestEndedGameDeserializeRejectsMalformedData(t *testing.T) {
	_, ok := EndedGame{}.Deserialize("too,few,parts", nil)
	assert.False(t, ok)
}

func TestLoadRoutesSentinelPrefixToEndedGame(t *testing.T) {
	registry := DefaultRegistry()
	winner := uint(3)
	wrapped := NewEndedGameInstance("prior-fen", "chess", &winner, "forfeit")

	instance, ok := Load(registry, "chess", wrapped.Serialize(), []uint{1, 2})
	require.True(t, ok)
	assert.Equal(t, ports.Finished(), instance.Turn())
	assert.Equal(t, ports.GameState{Kind: ports.StateWin, Winner: 3}, instance.EndState())
}

func TestLoadRoutesNonSentinelToRegisteredGameType(t *testing.T) {
	registry := DefaultRegistry()
	live, ok := ChessGame{}.New([]uint{1, 2})
	require.True(t, ok)
	require.NoError(t, live.MakeMove(1, "e2e4"))

	instance, ok := Load(registry, "chess", live.Serialize(), []uint{1, 2})
	require.True(t, ok)
	assert.Equal(t, ports.Turn(2), instance.Turn())
}

func TestLoadUnknownGameTypeFails(t *testing.T) {
	registry := DefaultRegistry()
	_, ok := Load(registry, "checkers", "anything", []uint{1, 2})
	assert.False(t, ok)
}
