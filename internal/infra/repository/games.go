/*
 * file: games.go
 * package: repository
 * description:
 *     Game and GamePlayer CRUD plus the mutation operations that drive a
 *     match through its lifecycle: join/leave before start, start, make a
 *     move, and forced end (timeout or other engine-driven termination).
 *     persistGameState is the shared post-mutation step every one of
 *     those operations funnels through: serialize the live instance,
 *     recompute finished/winner/tie and each player's waiting-to-move
 *     flag and score, and save.
 */

package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/arborly/matchkeep/internal/core/apperr"
	"github.com/arborly/matchkeep/internal/core/domain"
	"github.com/arborly/matchkeep/internal/core/engine"
	"github.com/arborly/matchkeep/internal/core/games"
	"github.com/arborly/matchkeep/internal/core/ports"
)

func (r *GormStore) NewGame(gameType string, ownerID uint, t domain.GameTime, tournamentID *uint) (*domain.Game, error) {
	if _, ok := r.gameTypes[gameType]; !ok {
		return nil, &apperr.NoSuchGameType{Type: gameType}
	}
	g := &domain.Game{
		OwnerID:          ownerID,
		TournamentID:     tournamentID,
		GameType:         gameType,
		DurPerMoveMs:     t.PerMoveMs,
		DurSuddenDeathMs: t.SuddenDeathMs,
	}
	if err := r.db.Create(g).Error; err != nil {
		return nil, err
	}
	return g, nil
}

func (r *GormStore) FindGame(id uint) (*domain.Game, error) {
	var g domain.Game
	if err := r.db.First(&g, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNoSuchGame
		}
		return nil, err
	}
	return &g, nil
}

func (r *GormStore) FindGamePlayers(gameID uint) ([]domain.GamePlayer, error) {
	var players []domain.GamePlayer
	err := r.db.Where("game_id = ?", gameID).Order("id asc").Find(&players).Error
	return players, err
}

func (r *GormStore) FindGamePlayer(gameID, userID uint) (*domain.GamePlayer, error) {
	var p domain.GamePlayer
	err := r.db.Where("game_id = ? AND user_id = ?", gameID, userID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotInGame
		}
		return nil, err
	}
	return &p, nil
}

func (r *GormStore) JoinGame(gameID, userID uint) error {
	game, err := r.FindGame(gameID)
	if err != nil {
		return err
	}
	if game.Started() {
		return apperr.ErrGameAlreadyStarted
	}
	if _, err := r.FindGamePlayer(gameID, userID); err == nil {
		return apperr.ErrAlreadyInGame
	} else if !errors.Is(err, apperr.ErrNotInGame) {
		return err
	}

	player := &domain.GamePlayer{GameID: gameID, UserID: userID, TimeMs: game.DurSuddenDeathMs}
	if err := r.db.Create(player).Error; err != nil {
		return err
	}

	if r.onGameChanged != nil {
		players, err := r.FindGamePlayers(gameID)
		if err != nil {
			return err
		}
		r.onGameChanged(game, players, r)
	}
	return nil
}

func (r *GormStore) LeaveGame(gameID, userID uint) error {
	game, err := r.FindGame(gameID)
	if err != nil {
		return err
	}
	if game.Started() {
		return apperr.ErrGameAlreadyStarted
	}
	player, err := r.FindGamePlayer(gameID, userID)
	if err != nil {
		return err
	}
	if err := r.db.Delete(player).Error; err != nil {
		return err
	}

	if r.onGameChanged != nil {
		players, err := r.FindGamePlayers(gameID)
		if err != nil {
			return err
		}
		r.onGameChanged(game, players, r)
	}
	return nil
}

func (r *GormStore) StartGame(gameID, callerID uint) error {
	game, err := r.FindGame(gameID)
	if err != nil {
		return err
	}
	if game.OwnerID != callerID {
		return apperr.ErrDontOwnGame
	}
	if game.Started() {
		return apperr.ErrGameAlreadyStarted
	}
	players, err := r.FindGamePlayers(gameID)
	if err != nil {
		return err
	}

	gameType := r.gameTypes[game.GameType]
	instance, ok := gameType.New(userIDsOf(players))
	if !ok {
		return apperr.ErrInvalidNumberOfPlayers
	}

	r.startGameTimer(game, players, instance)
	if err := r.persistGameState(game, players, instance); err != nil {
		return err
	}

	if r.onGameChanged != nil {
		r.onGameChanged(game, players, r)
	}
	return nil
}

func (r *GormStore) MakeMove(gameID, userID uint, move string) error {
	game, err := r.FindGame(gameID)
	if err != nil {
		return err
	}
	if !game.Started() {
		return apperr.ErrNotTurn
	}
	players, err := r.FindGamePlayers(gameID)
	if err != nil {
		return err
	}

	instance, ok := games.Load(r.gameTypes, game.GameType, *game.State, userIDsOf(players))
	if !ok {
		return &apperr.NoSuchGameType{Type: game.GameType}
	}
	turn := instance.Turn()
	if turn.Kind != ports.TurnActive || turn.UserID != userID {
		return apperr.ErrNotTurn
	}
	if err := instance.MakeMove(userID, move); err != nil {
		return &apperr.InvalidMove{Reason: err.Error()}
	}

	adjustPlayerTime(game, players, userID)
	r.startGameTimer(game, players, instance)
	if err := r.persistGameState(game, players, instance); err != nil {
		return err
	}

	if r.onGameChanged != nil {
		r.onGameChanged(game, players, r)
	}

	if game.Finished {
		if err := r.handleGameEnd(game, players); err != nil {
			return err
		}
	}
	return nil
}

// EndGame forces a game to a terminal state outside its own game type's
// rules (a timer expiry, or any other engine-driven termination). The
// prior live instance's full serialization is preserved inside the
// installed EndedGameInstance so the match history is not lost.
func (r *GormStore) EndGame(gameID uint, winner *uint, reason string) error {
	game, err := r.FindGame(gameID)
	if err != nil {
		return err
	}
	players, err := r.FindGamePlayers(gameID)
	if err != nil {
		return err
	}

	var prevState string
	if game.State != nil {
		instance, ok := games.Load(r.gameTypes, game.GameType, *game.State, userIDsOf(players))
		if ok {
			if turn := instance.Turn(); turn.Kind == ports.TurnActive {
				adjustPlayerTime(game, players, turn.UserID)
			}
			prevState = instance.Serialize()
		}
	}

	ended := games.NewEndedGameInstance(prevState, game.GameType, winner, reason)
	if err := r.persistGameState(game, players, ended); err != nil {
		return err
	}

	if r.onGameChanged != nil {
		r.onGameChanged(game, players, r)
	}

	if game.Finished {
		if err := r.handleGameEnd(game, players); err != nil {
			return err
		}
	}
	return nil
}

func (r *GormStore) FindWaitingGamesForUser(userID uint) ([]domain.Game, error) {
	var ids []uint
	err := r.db.Model(&domain.GamePlayer{}).
		Where("user_id = ? AND waiting_for_move = ?", userID, true).
		Order("id asc").
		Pluck("game_id", &ids).Error
	if err != nil {
		return nil, err
	}
	games := make([]domain.Game, 0, len(ids))
	for _, id := range ids {
		g, err := r.FindGame(id)
		if err != nil {
			return nil, err
		}
		games = append(games, *g)
	}
	return games, nil
}

func (r *GormStore) FindOldestWaitingGameForUser(userID uint) (*domain.Game, error) {
	var gp domain.GamePlayer
	err := r.db.Where("user_id = ? AND waiting_for_move = ?", userID, true).
		Order("id asc").First(&gp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.FindGame(gp.GameID)
}

// persistGameState serializes instance onto game, recomputes the
// finished/winner/tie columns and each player's waiting-for-move flag and
// score, and saves both. startGameTimer, if the turn just advanced to an
// active player, must be called before this so its TurnID/CurrentMoveStartMs
// survive into the save (this function clears them again if the game has
// actually finished).
func (r *GormStore) persistGameState(game *domain.Game, players []domain.GamePlayer, instance ports.GameInstance) error {
	state := instance.Serialize()
	game.State = &state

	switch end := instance.EndState(); end.Kind {
	case ports.StateWin:
		w := end.Winner
		game.Finished = true
		game.Winner = &w
		tie := false
		game.IsTie = &tie
	case ports.StateTie:
		game.Finished = true
		game.Winner = nil
		tie := true
		game.IsTie = &tie
	}

	turn := instance.Turn()
	if turn.Kind == ports.TurnFinished {
		for i := range players {
			players[i].WaitingForMove = false
		}
		game.CurrentMoveStartMs = nil
		game.TurnID = nil
	} else {
		for i := range players {
			players[i].WaitingForMove = players[i].UserID == turn.UserID
		}
	}

	if scores, ok := instance.Scores(); ok {
		for i := range players {
			if s, has := scores[players[i].UserID]; has {
				score := s
				players[i].Score = &score
			}
		}
	}

	if err := r.db.Save(game).Error; err != nil {
		return err
	}
	for i := range players {
		if err := r.db.Save(&players[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// startGameTimer schedules the next turn's expiry and stamps the game with
// the fresh turnId/move-start time, if the instance is still active. A
// finished instance is left untouched here; persistGameState clears the
// stale values in that case.
func (r *GormStore) startGameTimer(game *domain.Game, players []domain.GamePlayer, instance ports.GameInstance) {
	turn := instance.Turn()
	if turn.Kind != ports.TurnActive {
		return
	}
	var remaining int64
	for _, p := range players {
		if p.UserID == turn.UserID {
			remaining = p.TimeMs
			break
		}
	}
	turnID, moveStartMs := engine.StartTurn(r.scheduler, game.ID, turn.UserID, game.DurPerMoveMs, remaining, time.Now())
	game.TurnID = &turnID
	game.CurrentMoveStartMs = &moveStartMs
}

// adjustPlayerTime debits the elapsed portion of the current turn from
// userID's sudden-death bank, clamped at zero. A no-op if no turn is
// currently in progress.
func adjustPlayerTime(game *domain.Game, players []domain.GamePlayer, userID uint) {
	if game.CurrentMoveStartMs == nil {
		return
	}
	elapsed := time.Now().UnixMilli() - *game.CurrentMoveStartMs
	for i := range players {
		if players[i].UserID == userID {
			players[i].TimeMs = engine.DebitTime(players[i].TimeMs, game.DurPerMoveMs, elapsed)
			break
		}
	}
}

// handleGameEnd updates a finished game's tournament standing, if it
// belongs to one: every tournament player's tie count increments on a
// draw; on a win, the winner's win count increments and every other
// player who actually took part in this particular game has their loss
// count incremented. The tournament's bracket is then advanced and its
// observers notified.
func (r *GormStore) handleGameEnd(game *domain.Game, gamePlayers []domain.GamePlayer) error {
	if game.TournamentID == nil {
		return nil
	}
	tournamentID := *game.TournamentID

	tournament, err := r.FindTournament(tournamentID)
	if err != nil {
		return err
	}
	players, err := r.FindTournamentPlayers(tournamentID)
	if err != nil {
		return err
	}

	tookPart := make(map[uint]bool, len(gamePlayers))
	for _, gp := range gamePlayers {
		tookPart[gp.UserID] = true
	}

	switch {
	case game.IsTie != nil && *game.IsTie:
		for i := range players {
			players[i].Tie++
		}
	case game.Winner != nil:
		winner := *game.Winner
		for i := range players {
			if players[i].UserID == winner {
				players[i].Win++
			} else if tookPart[players[i].UserID] {
				players[i].Loss++
			}
		}
	}

	for i := range players {
		if err := r.db.Save(&players[i]).Error; err != nil {
			return err
		}
	}

	instance, ok := r.tournamentTypes[tournament.TournamentType]
	if !ok {
		return &apperr.NoSuchTournamentType{Type: tournament.TournamentType}
	}
	bracket, ok := instance.Deserialize(tournament.Options)
	if !ok {
		return &apperr.NoSuchTournamentType{Type: tournament.TournamentType}
	}
	if err := bracket.Advance(r, tournament, players); err != nil {
		return err
	}

	tournament, err = r.FindTournament(tournamentID)
	if err != nil {
		return err
	}
	players, err = r.FindTournamentPlayers(tournamentID)
	if err != nil {
		return err
	}
	if r.onTournamentChanged != nil {
		r.onTournamentChanged(tournament, players, r)
	}
	return nil
}
