/*
 * file: timer.go
 * package: ports
 * description:
 *     TimerScheduler is the boundary between the store facade (which
 *     decides a turn has started and needs a clock) and the timer service
 *     (which actually owns the sleep + fire).
 */

package ports

import "time"

// TimerScheduler schedules a one-shot per-turn expiry. No cancellation is
// exposed: the turnId carried by the eventual fire is compared against the
// game's current turnId, making late fires harmlessly idempotent.
type TimerScheduler interface {
	ScheduleExpiry(gameID uint, turnID int64, userID uint, after time.Duration)
}
