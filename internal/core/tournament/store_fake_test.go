package tournament

import (
	"errors"

	"github.com/arborly/matchkeep/internal/core/domain"
	"github.com/arborly/matchkeep/internal/core/ports"
)

// fakeStore implements just enough of ports.Store to drive
// RoundRobinInstance against an in-memory set of games/players, without a
// database.
type fakeStore struct {
	nextGameID uint
	games      map[uint]*domain.Game
	players    map[uint][]domain.GamePlayer // gameID -> players
	maxActive  int
	quiet      bool
}

func newFakeStore(maxActive int) *fakeStore {
	return &fakeStore{
		games:     make(map[uint]*domain.Game),
		players:   make(map[uint][]domain.GamePlayer),
		maxActive: maxActive,
	}
}

func (s *fakeStore) FindUserByID(id uint) (*domain.User, error)              { return nil, nil }
func (s *fakeStore) FindUserByEmail(email string) (*domain.User, error)     { return nil, nil }
func (s *fakeStore) FindUserByApiKeyHash(hash string) (*domain.User, error) { return nil, nil }
func (s *fakeStore) FindUserByCredentials(email, password string) (*domain.User, error) {
	return nil, nil
}
func (s *fakeStore) NewUser(name, email, password, apiKeyHash string) (*domain.User, error) {
	return nil, nil
}
func (s *fakeStore) NewTmpUser(name, apiKeyHash string) (*domain.User, error) { return nil, nil }
func (s *fakeStore) SaveUser(u *domain.User) error                           { return nil }

func (s *fakeStore) NewGame(gameType string, ownerID uint, t domain.GameTime, tournamentID *uint) (*domain.Game, error) {
	s.nextGameID++
	g := &domain.Game{ID: s.nextGameID, OwnerID: ownerID, GameType: gameType, TournamentID: tournamentID}
	s.games[g.ID] = g
	return g, nil
}

func (s *fakeStore) FindGame(id uint) (*domain.Game, error) {
	g, ok := s.games[id]
	if !ok {
		return nil, errors.New("no such game")
	}
	return g, nil
}

func (s *fakeStore) FindGamePlayers(gameID uint) ([]domain.GamePlayer, error) {
	return s.players[gameID], nil
}

func (s *fakeStore) FindGamePlayer(gameID, userID uint) (*domain.GamePlayer, error) {
	for _, p := range s.players[gameID] {
		if p.UserID == userID {
			return &p, nil
		}
	}
	return nil, errors.New("not in game")
}

func (s *fakeStore) JoinGame(gameID, userID uint) error {
	s.players[gameID] = append(s.players[gameID], domain.GamePlayer{GameID: gameID, UserID: userID})
	return nil
}

func (s *fakeStore) LeaveGame(gameID, userID uint) error { return nil }

func (s *fakeStore) StartGame(gameID, callerID uint) error {
	g, ok := s.games[gameID]
	if !ok {
		return errors.New("no such game")
	}
	state := "started"
	g.State = &state
	return nil
}

func (s *fakeStore) MakeMove(gameID, userID uint, move string) error { return nil }
func (s *fakeStore) EndGame(gameID uint, winner *uint, reason string) error {
	g, ok := s.games[gameID]
	if !ok {
		return errors.New("no such game")
	}
	g.Finished = true
	g.Winner = winner
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
func (s *fakeStore) JoinTournament(tournamentID, userID uint) error    { return nil }
func (s *fakeStore) LeaveTournament(tournamentID, userID uint) error   { return nil }
func (s *fakeStore) StartTournament(tournamentID, callerID uint) error { return nil }

func (s *fakeStore) FindTournamentGames(tournamentID uint) ([]domain.Game, error) {
	var out []domain.Game
	for _, g := range s.games {
		if g.TournamentID != nil && *g.TournamentID == tournamentID {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (s *fakeStore) WithoutCallbacks() ports.Store {
	quiet := *s
	quiet.quiet = true
	return &quiet
}

func (s *fakeStore) MaxActiveGames() int { return s.maxActive }
