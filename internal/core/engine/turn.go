/*
 * file: turn.go
 * package: engine
 * description:
 *     StartTurn implements the turn-start procedure (spec 4.D): assign a
 *     fresh random turnId, stamp the move-start time, and schedule the
 *     one-shot expiry timer for the player now on the clock.
 */

package engine

import (
	"math/rand"
	"time"

	"github.com/arborly/matchkeep/internal/core/ports"
)

// StartTurn generates a new turnId, schedules the mover's expiry timer
// for perMoveMs+timeMsRemaining from now, and returns the turnId and
// move-start timestamp (unix millis) to stamp onto the game.
func StartTurn(scheduler ports.TimerScheduler, gameID uint, userID uint, perMoveMs, timeMsRemaining int64, now time.Time) (turnID int64, moveStartMs int64) {
	turnID = rand.Int63()
	moveStartMs = now.UnixMilli()
	budget := time.Duration(TotalBudget(perMoveMs, timeMsRemaining)) * time.Millisecond
	scheduler.ScheduleExpiry(gameID, turnID, userID, budget)
	return turnID, moveStartMs
}
