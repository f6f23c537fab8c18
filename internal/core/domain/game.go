/*
 * file: game.go
 * package: domain
 * description:
 *     Defines the Game and GamePlayer entities. Games hold the durable
 *     record of a match; the live GameInstance they wrap is opaque to this
 *     package and lives behind the ports.GameType/ports.GameInstance
 *     interfaces.
 */

package domain

import "time"

// GameTime is a player's or game's time-control configuration: a per-move
// budget and a sudden-death bank, both in milliseconds.
type GameTime struct {
	PerMoveMs     int64
	SuddenDeathMs int64
}

// Game is the durable record of a single match. Lifecycle:
// Created -> (players join) -> Started (State becomes non-nil) -> Finished.
// Once started, leaving is forbidden.
type Game struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	OwnerID        uint   `gorm:"not null" json:"ownerId"`
	TournamentID   *uint  `gorm:"index" json:"tournamentId,omitempty"`
	GameType       string `gorm:"size:50;not null" json:"gameType"`
	Finished       bool   `gorm:"default:false" json:"finished"`
	Winner         *uint  `json:"winner,omitempty"`
	IsTie          *bool  `json:"isTie,omitempty"`
	DurPerMoveMs   int64  `gorm:"not null" json:"durPerMoveMs"`
	DurSuddenDeathMs int64 `gorm:"not null" json:"durSuddenDeathMs"`
	// CurrentMoveStartMs is the wall-clock time (unix millis) the current
	// turn began, or nil if no turn is in progress.
	CurrentMoveStartMs *int64 `json:"currentMoveStartMs,omitempty"`
	// TurnID identifies the current turn; timer-fire events carrying a
	// stale TurnID are ignored.
	TurnID *int64 `json:"turnId,omitempty"`
	// State holds the live instance's serialized form, or nil before the
	// game has started. An EndedGame sentinel is recognized by the
	// "__ENDED_GAME" prefix.
	State *string `json:"state,omitempty"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Started reports whether the game has an instance attached.
func (g *Game) Started() bool {
	return g.State != nil
}

// GamePlayer is a seat a user holds in a game. Created on join, deleted on
// leave (only before the game starts). At most one per (game, user).
type GamePlayer struct {
	ID             uint     `gorm:"primaryKey" json:"id"`
	GameID         uint     `gorm:"not null;index" json:"gameId"`
	UserID         uint     `gorm:"not null;index" json:"userId"`
	Score          *float64 `json:"score,omitempty"`
	WaitingForMove bool     `gorm:"default:false" json:"waitingForMove"`
	// TimeMs is the player's remaining sudden-death bank.
	TimeMs int64 `gorm:"not null" json:"timeMs"`

	CreatedAt time.Time `json:"-"`
}
