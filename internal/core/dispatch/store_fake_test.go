package dispatch

import (
	"errors"

	"github.com/arborly/matchkeep/internal/core/domain"
	"github.com/arborly/matchkeep/internal/core/ports"
)

// fakeStore is an in-memory ports.Store stand-in for dispatch tests: no
// business-rule enforcement, just enough bookkeeping to exercise the
// router's auth/protocol gating and message rendering.
type fakeStore struct {
	users             map[uint]*domain.User
	nextUserID        uint
	games             map[uint]*domain.Game
	gamePlayers       map[uint][]domain.GamePlayer
	nextGameID        uint
	tournaments       map[uint]*domain.Tournament
	tournamentPlayers map[uint][]domain.TournamentPlayer
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:             make(map[uint]*domain.User),
		games:             make(map[uint]*domain.Game),
		gamePlayers:       make(map[uint][]domain.GamePlayer),
		tournaments:       make(map[uint]*domain.Tournament),
		tournamentPlayers: make(map[uint][]domain.TournamentPlayer),
	}
}

func (s *fakeStore) addUser(name string) *domain.User {
	s.nextUserID++
	u := &domain.User{ID: s.nextUserID, Name: name, ApiKeyHash: "hash"}
	s.users[u.ID] = u
	return u
}

func (s *fakeStore) FindUserByID(id uint) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, errors.New("no such user")
	}
	return u, nil
}

func (s *fakeStore) FindUserByEmail(email string) (*domain.User, error) {
	for _, u := range s.users {
		if u.Email != nil && *u.Email == email {
			return u, nil
		}
	}
	return nil, errors.New("no such user")
}

func (s *fakeStore) FindUserByApiKeyHash(hash string) (*domain.User, error) {
	for _, u := range s.users {
		if u.ApiKeyHash == hash {
			return u, nil
		}
	}
	return nil, errors.New("invalid api key")
}

func (s *fakeStore) FindUserByCredentials(email, password string) (*domain.User, error) {
	return s.FindUserByEmail(email)
}

func (s *fakeStore) NewUser(name, email, password, apiKeyHash string) (*domain.User, error) {
	s.nextUserID++
	u := &domain.User{ID: s.nextUserID, Name: name, Email: &email, PasswordHash: &password, ApiKeyHash: apiKeyHash}
	s.users[u.ID] = u
	return u, nil
}

func (s *fakeStore) NewTmpUser(name, apiKeyHash string) (*domain.User, error) {
	s.nextUserID++
	u := &domain.User{ID: s.nextUserID, Name: name, ApiKeyHash: apiKeyHash}
	s.users[u.ID] = u
	return u, nil
}

func (s *fakeStore) SaveUser(u *domain.User) error {
	s.users[u.ID] = u
	return nil
}

func (s *fakeStore) NewGame(gameType string, ownerID uint, t domain.GameTime, tournamentID *uint) (*domain.Game, error) {
	s.nextGameID++
	g := &domain.Game{
		ID: s.nextGameID, OwnerID: ownerID, GameType: gameType, TournamentID: tournamentID,
		DurPerMoveMs: t.PerMoveMs, DurSuddenDeathMs: t.SuddenDeathMs,
	}
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
	return s.gamePlayers[gameID], nil
}

func (s *fakeStore) FindGamePlayer(gameID, userID uint) (*domain.GamePlayer, error) {
	for _, p := range s.gamePlayers[gameID] {
		if p.UserID == userID {
			return &p, nil
		}
	}
	return nil, errors.New("not in game")
}

func (s *fakeStore) JoinGame(gameID, userID uint) error {
	s.gamePlayers[gameID] = append(s.gamePlayers[gameID], domain.GamePlayer{GameID: gameID, UserID: userID})
	return nil
}

func (s *fakeStore) LeaveGame(gameID, userID uint) error { return nil }

func (s *fakeStore) StartGame(gameID, callerID uint) error {
	g, ok := s.games[gameID]
	if !ok {
		return errors.New("no such game")
	}
	state := "started-state"
	g.State = &state
	return nil
}

func (s *fakeStore) MakeMove(gameID, userID uint, move string) error { return nil }
func (s *fakeStore) EndGame(gameID uint, winner *uint, reason string) error {
	return nil
}

func (s *fakeStore) FindWaitingGamesForUser(userID uint) ([]domain.Game, error) {
	var out []domain.Game
	for _, g := range s.games {
		for _, p := range s.gamePlayers[g.ID] {
			if p.UserID == userID && p.WaitingForMove {
				out = append(out, *g)
			}
		}
	}
	return out, nil
}

func (s *fakeStore) FindOldestWaitingGameForUser(userID uint) (*domain.Game, error) {
	games, _ := s.FindWaitingGamesForUser(userID)
	if len(games) == 0 {
		return nil, nil
	}
	return &games[0], nil
}

func (s *fakeStore) NewTournament(tournamentType, gameType string, ownerID uint, t domain.GameTime, options string) (*domain.Tournament, error) {
	return nil, nil
}
func (s *fakeStore) FindTournament(id uint) (*domain.Tournament, error) {
	t, ok := s.tournaments[id]
	if !ok {
		return nil, errors.New("no such tournament")
	}
	return t, nil
}
func (s *fakeStore) FindTournamentPlayers(tournamentID uint) ([]domain.TournamentPlayer, error) {
	return s.tournamentPlayers[tournamentID], nil
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

func (s *fakeStore) WithoutCallbacks() ports.Store { return s }
func (s *fakeStore) MaxActiveGames() int           { return 3 }
