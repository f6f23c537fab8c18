/*
 * file: permutations.go
 * package: tournament
 * description:
 *     Enumerates every distinct ordered k-tuple of a player slice, the
 *     round-robin bracket's game list.
 */

package tournament

import "github.com/arborly/matchkeep/internal/core/domain"

// permutations returns every ordered k-length selection, without
// repetition, of players. Order matters (a game with players [A, B] is
// distinct from one with [B, A]).
func permutations(players []domain.TournamentPlayer, k int) [][]domain.TournamentPlayer {
	if k <= 0 || k > len(players) {
		return nil
	}
	var result [][]domain.TournamentPlayer
	used := make([]bool, len(players))
	current := make([]domain.TournamentPlayer, 0, k)

	var rec func()
	rec = func() {
		if len(current) == k {
			tuple := make([]domain.TournamentPlayer, k)
			copy(tuple, current)
			result = append(result, tuple)
			return
		}
		for i, p := range players {
			if used[i] {
				continue
			}
			used[i] = true
			current = append(current, p)
			rec()
			current = current[:len(current)-1]
			used[i] = false
		}
	}
	rec()
	return result
}
