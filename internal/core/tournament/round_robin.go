/*
 * file: round_robin.go
 * package: tournament
 * description:
 *     Round-robin tournament type: on first advance, materializes one
 *     game per distinct ordered k-tuple of players; thereafter starts any
 *     not-yet-started game whose players are all under the store's
 *     per-player concurrency cap.
 */

package tournament

import (
	"strconv"

	"github.com/arborly/matchkeep/internal/core/domain"
	"github.com/arborly/matchkeep/internal/core/ports"
)

// RoundRobin is the "round_robin" TournamentType.
type RoundRobin struct{}

func (RoundRobin) New(options string) (ports.TournamentInstance, bool) {
	return deserializeRoundRobin(options)
}

func (RoundRobin) Deserialize(options string) (ports.TournamentInstance, bool) {
	return deserializeRoundRobin(options)
}

func deserializeRoundRobin(options string) (ports.TournamentInstance, bool) {
	n, err := strconv.Atoi(options)
	if err != nil || n <= 0 {
		return nil, false
	}
	return &RoundRobinInstance{numPlayersPerGame: n}, true
}

// RoundRobinInstance is the live bracket: a fixed number of players per
// game, all distinct ordered k-tuples played exactly once.
type RoundRobinInstance struct {
	numPlayersPerGame int
}

func (r *RoundRobinInstance) Serialize() string {
	return strconv.Itoa(r.numPlayersPerGame)
}

func (r *RoundRobinInstance) Advance(store ports.Store, t *domain.Tournament, players []domain.TournamentPlayer) error {
	if len(players) == 0 {
		return nil
	}
	games, err := store.FindTournamentGames(t.ID)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		if err := r.createGames(store, t, players); err != nil {
			return err
		}
		return r.Advance(store, t, players)
	}
	return r.startEligibleGames(store, t, players, games)
}

// createGames materializes one game per distinct ordered k-tuple of the
// tournament's current players. Every seat but the last in each game is
// joined through the callback-suppressed store so only one consolidated
// `game` publish occurs per created game.
func (r *RoundRobinInstance) createGames(store ports.Store, t *domain.Tournament, players []domain.TournamentPlayer) error {
	quiet := store.WithoutCallbacks()
	timeCfg := domain.GameTime{PerMoveMs: t.DurPerMoveMs, SuddenDeathMs: t.DurSuddenDeathMs}

	for _, tuple := range permutations(players, r.numPlayersPerGame) {
		game, err := quiet.NewGame(t.GameType, t.OwnerID, timeCfg, &t.ID)
		if err != nil {
			return err
		}
		for i, p := range tuple {
			if i < len(tuple)-1 {
				if err := quiet.JoinGame(game.ID, p.UserID); err != nil {
					return err
				}
			} else if err := store.JoinGame(game.ID, p.UserID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *RoundRobinInstance) startEligibleGames(store ports.Store, t *domain.Tournament, players []domain.TournamentPlayer, games []domain.Game) error {
	activeGames := make(map[uint]int, len(players))
	for _, p := range players {
		activeGames[p.UserID] = 0
	}

	gamePlayers := make(map[uint][]domain.GamePlayer, len(games))
	for _, g := range games {
		gps, err := store.FindGamePlayers(g.ID)
		if err != nil {
			return err
		}
		gamePlayers[g.ID] = gps
		if !gameIsActive(store, g) {
			continue
		}
		for _, gp := range gps {
			if _, ok := activeGames[gp.UserID]; ok {
				activeGames[gp.UserID]++
			}
		}
	}

	cap := store.MaxActiveGames()
	for _, g := range games {
		if g.Started() {
			continue
		}
		violatesThreshold := false
		for _, gp := range gamePlayers[g.ID] {
			if activeGames[gp.UserID] >= cap {
				violatesThreshold = true
				break
			}
		}
		if violatesThreshold {
			continue
		}
		if err := store.StartGame(g.ID, t.OwnerID); err != nil {
			return err
		}
		for _, gp := range gamePlayers[g.ID] {
			activeGames[gp.UserID]++
		}
	}
	return nil
}

func (r *RoundRobinInstance) EndState(store ports.Store, started bool, tournamentID uint, players []domain.TournamentPlayer) (ports.TournamentState, error) {
	if !started {
		return ports.TournamentState{Kind: ports.StateInProgress}, nil
	}
	if len(players) == 0 {
		return ports.TournamentState{Kind: ports.StateTie}, nil
	}

	games, err := store.FindTournamentGames(tournamentID)
	if err != nil {
		return ports.TournamentState{}, err
	}
	if len(games) == 0 {
		return ports.TournamentState{Kind: ports.StateInProgress}, nil
	}
	for _, g := range games {
		if !g.Finished {
			return ports.TournamentState{Kind: ports.StateInProgress}, nil
		}
	}

	maxScore := -(len(games)) - 1
	var winners []uint
	for _, p := range players {
		score := p.Win - p.Loss
		if score > maxScore {
			maxScore = score
			winners = []uint{p.UserID}
		} else if score == maxScore {
			winners = append(winners, p.UserID)
		}
	}
	if len(winners) == 1 {
		return ports.TournamentState{Kind: ports.StateWin, Winner: winners[0]}, nil
	}
	return ports.TournamentState{Kind: ports.StateTie}, nil
}

// gameIsActive reports whether g currently occupies a seat in a player's
// concurrent-game count: started, and not yet finished.
func gameIsActive(store ports.Store, g domain.Game) bool {
	if !g.Started() || g.Finished {
		return false
	}
	return true
}
