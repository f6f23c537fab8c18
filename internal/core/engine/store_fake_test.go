package engine

import (
	"errors"

	"github.com/arborly/matchkeep/internal/core/domain"
	"github.com/arborly/matchkeep/internal/core/ports"
)

// fakeStore implements ports.Store with just enough behavior to drive
// HandleExpiry: a single in-memory game plus its players, and an EndGame
// that records the call instead of persisting anything.
type fakeStore struct {
	game    *domain.Game
	players []domain.GamePlayer

	endGameCalls int
	endedWinner  *uint
	endedReason  string
}

func (s *fakeStore) FindUserByID(id uint) (*domain.User, error)                  { return nil, nil }
func (s *fakeStore) FindUserByEmail(email string) (*domain.User, error)         { return nil, nil }
func (s *fakeStore) FindUserByApiKeyHash(hash string) (*domain.User, error)     { return nil, nil }
func (s *fakeStore) FindUserByCredentials(email, password string) (*domain.User, error) {
	return nil, nil
}
func (s *fakeStore) NewUser(name, email, password, apiKeyHash string) (*domain.User, error) {
	return nil, nil
}
func (s *fakeStore) NewTmpUser(name, apiKeyHash string) (*domain.User, error) { return nil, nil }
func (s *fakeStore) SaveUser(u *domain.User) error                           { return nil }

func (s *fakeStore) NewGame(gameType string, ownerID uint, t domain.GameTime, tournamentID *uint) (*domain.Game, error) {
	return nil, nil
}

func (s *fakeStore) FindGame(id uint) (*domain.Game, error) {
	if s.game == nil || s.game.ID != id {
		return nil, errors.New("no such game")
	}
	return s.game, nil
}

func (s *fakeStore) FindGamePlayers(gameID uint) ([]domain.GamePlayer, error) {
	return s.players, nil
}

func (s *fakeStore) FindGamePlayer(gameID, userID uint) (*domain.GamePlayer, error) {
	for i := range s.players {
		if s.players[i].UserID == userID {
			return &s.players[i], nil
		}
	}
	return nil, errors.New("not in game")
}

func (s *fakeStore) JoinGame(gameID, userID uint) error        { return nil }
func (s *fakeStore) LeaveGame(gameID, userID uint) error       { return nil }
func (s *fakeStore) StartGame(gameID, callerID uint) error     { return nil }
func (s *fakeStore) MakeMove(gameID, userID uint, move string) error {
	return nil
}

func (s *fakeStore) EndGame(gameID uint, winner *uint, reason string) error {
	s.endGameCalls++
	s.endedWinner = winner
	s.endedReason = reason
	return nil
}

func (s *fakeStore) FindWaitingGamesForUser(userID uint) ([]domain.Game, error)     { return nil, nil }
func (s *fakeStore) FindOldestWaitingGameForUser(userID uint) (*domain.Game, error) { return nil, nil }

func (s *fakeStore) NewTournament(tournamentType, gameType string, ownerID uint, t domain.GameTime, options string) (*domain.Tournament, error) {
	return nil, nil
}
func (s *fakeStore) FindTournament(id uint) (*domain.Tournament, error) { return nil, nil }
func (s *fakeStore) FindTournamentPlayers(tournamentID uint) ([]domain.TournamentPlayer, error) {
	return nil, nil
}
func (s *fakeStore) JoinTournament(tournamentID, userID uint) error  { return nil }
func (s *fakeStore) LeaveTournament(tournamentID, userID uint) error { return nil }
func (s *fakeStore) StartTournament(tournamentID, callerID uint) error { return nil }
func (s *fakeStore) FindTournamentGames(tournamentID uint) ([]domain.Game, error) {
	return nil, nil
}

func (s *fakeStore) WithoutCallbacks() ports.Store { return s }
func (s *fakeStore) MaxActiveGames() int           { return 3 }
