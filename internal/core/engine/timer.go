/*
 * file: timer.go
 * package: engine
 * description:
 *     TimerService is the single long-lived task that consumes scheduled
 *     turn-expiry events and runs the expiry handler. Scheduling is
 *     per-turn and one-shot; no cancellation is needed because a stale
 *     turnId makes late fires a no-op.
 */

package engine

import (
	"log"
	"time"

	"github.com/arborly/matchkeep/internal/core/ports"
)

// ExpiryEvent is emitted when a scheduled per-turn timer fires.
type ExpiryEvent struct {
	GameID uint
	UserID uint
	TurnID int64
}

// TimerService implements ports.TimerScheduler and drains fired events
// into HandleExpiry against the given store.
type TimerService struct {
	store  ports.Store
	events chan ExpiryEvent
}

func NewTimerService(store ports.Store) *TimerService {
	return &TimerService{store: store, events: make(chan ExpiryEvent, 256)}
}

// ScheduleExpiry spawns a one-shot task that sleeps for `after` and then
// enqueues the expiry event, per spec 4.E.
func (t *TimerService) ScheduleExpiry(gameID uint, turnID int64, userID uint, after time.Duration) {
	go func() {
		time.Sleep(after)
		t.events <- ExpiryEvent{GameID: gameID, UserID: userID, TurnID: turnID}
	}()
}

// Run consumes expiry events until events is closed. Intended to be
// started once, in its own goroutine, at boot.
func (t *TimerService) Run() {
	for ev := range t.events {
		if err := HandleExpiry(t.store, ev); err != nil {
			log.Printf("ERROR: failed to handle time expiry for game %d: %v", ev.GameID, err)
		}
	}
}
