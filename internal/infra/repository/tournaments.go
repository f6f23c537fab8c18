/*
 * file: tournaments.go
 * package: repository
 * description:
 *     Tournament and TournamentPlayer CRUD plus the lifecycle operations:
 *     join/leave (leave forbidden once started), and start, which hands
 *     off to the registered TournamentType's bracket instance to
 *     materialize and start the first eligible games.
 */

package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/arborly/matchkeep/internal/core/apperr"
	"github.com/arborly/matchkeep/internal/core/domain"
)

func (r *GormStore) NewTournament(tournamentType, gameType string, ownerID uint, t domain.GameTime, options string) (*domain.Tournament, error) {
	if _, ok := r.tournamentTypes[tournamentType]; !ok {
		return nil, &apperr.NoSuchTournamentType{Type: tournamentType}
	}
	if _, ok := r.gameTypes[gameType]; !ok {
		return nil, &apperr.NoSuchGameType{Type: gameType}
	}

	tourney := &domain.Tournament{
		OwnerID:          ownerID,
		TournamentType:   tournamentType,
		GameType:         gameType,
		DurPerMoveMs:     t.PerMoveMs,
		DurSuddenDeathMs: t.SuddenDeathMs,
		Options:          options,
	}
	if err := r.db.Create(tourney).Error; err != nil {
		return nil, err
	}
	return tourney, nil
}

func (r *GormStore) FindTournament(id uint) (*domain.Tournament, error) {
	var t domain.Tournament
	if err := r.db.First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNoSuchTournament
		}
		return nil, err
	}
	return &t, nil
}

func (r *GormStore) FindTournamentPlayers(tournamentID uint) ([]domain.TournamentPlayer, error) {
	var players []domain.TournamentPlayer
	err := r.db.Where("tournament_id = ?", tournamentID).Order("id asc").Find(&players).Error
	return players, err
}

// findTournamentPlayer mirrors the original's choice of NoSuchUser (not
// NotInGame) for a missing tournament seat.
func (r *GormStore) findTournamentPlayer(tournamentID, userID uint) (*domain.TournamentPlayer, error) {
	var p domain.TournamentPlayer
	err := r.db.Where("tournament_id = ? AND user_id = ?", tournamentID, userID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNoSuchUser
		}
		return nil, err
	}
	return &p, nil
}

func (r *GormStore) JoinTournament(tournamentID, userID uint) error {
	t, err := r.FindTournament(tournamentID)
	if err != nil {
		return err
	}
	if _, err := r.findTournamentPlayer(tournamentID, userID); err == nil {
		return apperr.ErrAlreadyInGame
	} else if !errors.Is(err, apperr.ErrNoSuchUser) {
		return err
	}

	player := &domain.TournamentPlayer{TournamentID: tournamentID, UserID: userID}
	if err := r.db.Create(player).Error; err != nil {
		return err
	}

	if r.onTournamentChanged != nil {
		players, err := r.FindTournamentPlayers(tournamentID)
		if err != nil {
			return err
		}
		r.onTournamentChanged(t, players, r)
	}
	return nil
}

func (r *GormStore) LeaveTournament(tournamentID, userID uint) error {
	t, err := r.FindTournament(tournamentID)
	if err != nil {
		return err
	}
	if t.Started {
		return apperr.ErrGameAlreadyStarted
	}
	player, err := r.findTournamentPlayer(tournamentID, userID)
	if err != nil {
		return err
	}
	if err := r.db.Delete(player).Error; err != nil {
		return err
	}

	if r.onTournamentChanged != nil {
		players, err := r.FindTournamentPlayers(tournamentID)
		if err != nil {
			return err
		}
		r.onTournamentChanged(t, players, r)
	}
	return nil
}

func (r *GormStore) StartTournament(tournamentID, callerID uint) error {
	t, err := r.FindTournament(tournamentID)
	if err != nil {
		return err
	}
	if t.OwnerID != callerID {
		return apperr.ErrDontOwnGame
	}
	if t.Started {
		return apperr.ErrGameAlreadyStarted
	}

	t.Started = true
	if err := r.db.Save(t).Error; err != nil {
		return err
	}
	players, err := r.FindTournamentPlayers(tournamentID)
	if err != nil {
		return err
	}

	if r.onTournamentChanged != nil {
		r.onTournamentChanged(t, players, r)
	}

	typ, ok := r.tournamentTypes[t.TournamentType]
	if !ok {
		return &apperr.NoSuchTournamentType{Type: t.TournamentType}
	}
	bracket, ok := typ.Deserialize(t.Options)
	if !ok {
		return &apperr.NoSuchTournamentType{Type: t.TournamentType}
	}
	return bracket.Advance(r, t, players)
}

func (r *GormStore) FindTournamentGames(tournamentID uint) ([]domain.Game, error) {
	var g []domain.Game
	err := r.db.Where("tournament_id = ?", tournamentID).Order("id asc").Find(&g).Error
	return g, err
}
