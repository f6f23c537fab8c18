package tournament

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arborly/matchkeep/internal/core/domain"
)

func playersOf(ids ...uint) []domain.TournamentPlayer {
	out := make([]domain.TournamentPlayer, len(ids))
	for i, id := range ids {
		out[i] = domain.TournamentPlayer{UserID: id}
	}
	return out
}

func TestPermutationsPairsOrderMatters(t *testing.T) {
	result := permutations(playersOf(1, 2, 3), 2)

	assert.Len(t, result, 6, "3 players choose 2 ordered is 3*2=6")

	seen := make(map[[2]uint]bool)
	for _, tuple := range result {
		seen[[2]uint{tuple[0].UserID, tuple[1].UserID}] = true
	}
	assert.True(t, seen[[2]uint{1, 2}])
	assert.True(t, seen[[2]uint{2, 1}])
	assert.True(t, seen[[2]uint{1, 3}])
	assert.True(t, seen[[2]uint{3, 1}])
}

func TestPermutationsKEqualsLength(t *testing.T) {
	result := permutations(playersOf(1, 2), 2)
	assert.Len(t, result, 2)
}

func TestPermutationsKGreaterThanLengthIsNil(t *testing.T) {
	result := permutations(playersOf(1, 2), 3)
	assert.Nil(t, result)
}

func TestPermutationsKZeroOrNegativeIsNil(t *testing.T) {
	assert.Nil(t, permutations(playersOf(1, 2), 0))
	assert.Nil(t, permutations(playersOf(1, 2), -1))
}
