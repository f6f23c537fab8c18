/*
 * file: tournament.go
 * package: ports
 * description:
 *     TournamentType/TournamentInstance mirror GameType/GameInstance for
 *     tournament brackets: an opaque, registered-by-name factory plus a
 *     live instance that the tournament engine drives.
 */

package ports

import "github.com/arborly/matchkeep/internal/core/domain"

// TournamentState is a tournament instance's standing classification.
type TournamentState struct {
	Kind GameStateKind
	// Winner is valid only when Kind == StateWin.
	Winner uint
}

// TournamentInstance is the live bracket logic for one tournament.
type TournamentInstance interface {
	// Serialize renders the instance for the `options` column (e.g. the
	// round-robin player-count, as a decimal integer string).
	Serialize() string
	// Advance is called after the tournament starts and after every game
	// belonging to it finishes. It materializes games on first call (if
	// none exist yet) and starts any not-yet-started game whose players
	// are all under the store's configured per-player concurrency cap.
	Advance(store Store, tournament *domain.Tournament, players []domain.TournamentPlayer) error
	// EndState computes the tournament's current standing from its
	// players' accumulated win/loss/tie counters and its games, loaded
	// through store.
	EndState(store Store, started bool, tournamentID uint, players []domain.TournamentPlayer) (TournamentState, error)
}

// TournamentType is the stateless factory for one kind of tournament,
// registered by name (e.g. "round_robin").
type TournamentType interface {
	// New parses options (the new_tournament command's options argument)
	// into a fresh instance. ok is false if options is malformed.
	New(options string) (instance TournamentInstance, ok bool)
	// Deserialize reconstructs an instance from a Tournament.Options
	// value previously produced by Serialize.
	Deserialize(options string) (instance TournamentInstance, ok bool)
}
