/*
 * file: tournament.go
 * package: domain
 * description:
 *     Defines the Tournament and TournamentPlayer entities. As with Game,
 *     the live tournament instance (round-robin bracket state) is opaque
 *     to this package.
 */

package domain

import "time"

// Tournament is the durable record of a bracket of games of one game type.
type Tournament struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	OwnerID          uint   `gorm:"not null" json:"ownerId"`
	TournamentType   string `gorm:"size:50;not null" json:"tournamentType"`
	GameType         string `gorm:"size:50;not null" json:"gameType"`
	DurPerMoveMs     int64  `gorm:"not null" json:"durPerMoveMs"`
	DurSuddenDeathMs int64  `gorm:"not null" json:"durSuddenDeathMs"`
	Started          bool   `gorm:"default:false" json:"started"`
	Finished         bool   `gorm:"default:false" json:"finished"`
	Winner           *uint  `json:"winner,omitempty"`
	// Options carries the tournament-type-specific configuration, e.g. the
	// round-robin player-per-game count, as a serialized string.
	Options string `gorm:"type:text" json:"options"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TournamentPlayer is a seat a user holds in a tournament, with its
// accumulated record. At most one per (tournament, user).
type TournamentPlayer struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	TournamentID uint `gorm:"not null;index" json:"tournamentId"`
	UserID       uint `gorm:"not null;index" json:"userId"`
	Win          int  `gorm:"default:0" json:"win"`
	Loss         int  `gorm:"default:0" json:"loss"`
	Tie          int  `gorm:"default:0" json:"tie"`

	CreatedAt time.Time `json:"-"`
}
