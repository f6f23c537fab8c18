/*
 * file: store.go
 * package: ports
 * description:
 *     Store is the typed CRUD-plus-business-rule facade over the
 *     relational backing store (spec component C). It owns the
 *     invariant-enforcing operations for users, games, game-players,
 *     tournaments and tournament-players, and invokes two injected
 *     callbacks after every mutation that changes observable state.
 */

package ports

import "github.com/arborly/matchkeep/internal/core/domain"

// GameChangedFunc is invoked after any mutation that changes a game's or a
// game-player's observable state.
type GameChangedFunc func(game *domain.Game, players []domain.GamePlayer, store Store)

// TournamentChangedFunc is invoked after any mutation that changes a
// tournament's or tournament-player's observable state.
type TournamentChangedFunc func(tournament *domain.Tournament, players []domain.TournamentPlayer, store Store)

// Store is the facade every game/tournament/session operation goes
// through to read or mutate durable state.
type Store interface {
	// Users

	FindUserByID(id uint) (*domain.User, error)
	FindUserByEmail(email string) (*domain.User, error)
	FindUserByApiKeyHash(hash string) (*domain.User, error)
	FindUserByCredentials(email, password string) (*domain.User, error)
	NewUser(name, email, password, apiKeyHash string) (*domain.User, error)
	NewTmpUser(name, apiKeyHash string) (*domain.User, error)
	SaveUser(u *domain.User) error

	// Games

	NewGame(gameType string, ownerID uint, t domain.GameTime, tournamentID *uint) (*domain.Game, error)
	FindGame(id uint) (*domain.Game, error)
	FindGamePlayers(gameID uint) ([]domain.GamePlayer, error)
	FindGamePlayer(gameID, userID uint) (*domain.GamePlayer, error)
	JoinGame(gameID, userID uint) error
	LeaveGame(gameID, userID uint) error
	StartGame(gameID, callerID uint) error
	MakeMove(gameID, userID uint, move string) error
	EndGame(gameID uint, winner *uint, reason string) error
	// FindWaitingGamesForUser returns, ordered by game-player id
	// ascending, every game in which userID currently has
	// WaitingForMove = true.
	FindWaitingGamesForUser(userID uint) ([]domain.Game, error)
	FindOldestWaitingGameForUser(userID uint) (*domain.Game, error)

	// Tournaments

	NewTournament(tournamentType, gameType string, ownerID uint, t domain.GameTime, options string) (*domain.Tournament, error)
	FindTournament(id uint) (*domain.Tournament, error)
	FindTournamentPlayers(tournamentID uint) ([]domain.TournamentPlayer, error)
	JoinTournament(tournamentID, userID uint) error
	LeaveTournament(tournamentID, userID uint) error
	StartTournament(tournamentID, callerID uint) error
	FindTournamentGames(tournamentID uint) ([]domain.Game, error)

	// WithoutCallbacks returns a derived Store that performs the same
	// operations but suppresses onGameChanged/onTournamentChanged, for
	// batch setup (e.g. tournament game materialization) that would
	// otherwise publish intermediate partial states.
	WithoutCallbacks() Store

	// MaxActiveGames is the configured per-player concurrency cap the
	// round-robin tournament engine gates game starts under.
	MaxActiveGames() int
}
