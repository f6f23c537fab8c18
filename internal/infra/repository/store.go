/*
 * file: store.go
 * package: repository
 * description:
 *     GormStore is the concrete GORM implementation of ports.Store: every
 *     CRUD-plus-business-rule operation the dispatcher and engine use goes
 *     through here. Mutations that change observable game/tournament state
 *     invoke the injected onGameChanged/onTournamentChanged callbacks,
 *     unless this instance was derived via WithoutCallbacks for quiet
 *     batch setup.
 */

package repository

import (
	"github.com/arborly/matchkeep/internal/core/domain"
	"github.com/arborly/matchkeep/internal/core/ports"

	"gorm.io/gorm"
)

// GormStore implements ports.Store over a PostgreSQL/GORM backend.
type GormStore struct {
	db              *gorm.DB
	gameTypes       map[string]ports.GameType
	tournamentTypes map[string]ports.TournamentType
	scheduler       ports.TimerScheduler
	maxActiveGames  int

	onGameChanged       ports.GameChangedFunc
	onTournamentChanged ports.TournamentChangedFunc
}

// New constructs the top-level Store. onGameChanged/onTournamentChanged
// may be nil, in which case mutations simply do not push anything.
// scheduler may be nil at construction time -- the timer service it backs
// is itself built from a Store, so callers typically wire it in afterward
// via SetScheduler.
func New(
	db *gorm.DB,
	gameTypes map[string]ports.GameType,
	tournamentTypes map[string]ports.TournamentType,
	scheduler ports.TimerScheduler,
	maxActiveGames int,
	onGameChanged ports.GameChangedFunc,
	onTournamentChanged ports.TournamentChangedFunc,
) *GormStore {
	return &GormStore{
		db:                  db,
		gameTypes:           gameTypes,
		tournamentTypes:     tournamentTypes,
		scheduler:           scheduler,
		maxActiveGames:      maxActiveGames,
		onGameChanged:       onGameChanged,
		onTournamentChanged: onTournamentChanged,
	}
}

// SetScheduler wires the turn-expiry scheduler in after construction,
// breaking the Store<->TimerService construction cycle (the timer service
// is built from a Store).
func (r *GormStore) SetScheduler(scheduler ports.TimerScheduler) {
	r.scheduler = scheduler
}

// WithoutCallbacks returns a derived store sharing the same connection and
// type registries but with both callbacks suppressed.
func (r *GormStore) WithoutCallbacks() ports.Store {
	quiet := *r
	quiet.onGameChanged = nil
	quiet.onTournamentChanged = nil
	return &quiet
}

func (r *GormStore) MaxActiveGames() int {
	return r.maxActiveGames
}

func userIDsOf(players []domain.GamePlayer) []uint {
	ids := make([]uint, len(players))
	for i, p := range players {
		ids[i] = p.UserID
	}
	return ids
}
