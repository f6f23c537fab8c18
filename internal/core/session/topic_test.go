package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsUserPrivate(t *testing.T) {
	assert.True(t, UserPrivateTopic(1).IsUserPrivate())
	assert.True(t, UserPrivateProtocolVersionTopic(1, Current).IsUserPrivate())
	assert.False(t, GlobalTopic().IsUserPrivate())
	assert.False(t, GameTopic(1).IsUserPrivate())
	assert.False(t, TournamentTopic(1).IsUserPrivate())
}

func TestTopicsWithDifferentIDsAreDistinct(t *testing.T) {
	assert.NotEqual(t, GameTopic(1), GameTopic(2))
	assert.NotEqual(t, TournamentTopic(1), TournamentTopic(2))
	assert.NotEqual(t, UserPrivateTopic(1), UserPrivateTopic(2))
	assert.Equal(t, GameTopic(1), GameTopic(1))
}
