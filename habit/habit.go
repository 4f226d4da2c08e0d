// Package habit decides when a habit is actionable based on its frequency
// policy and last completion date. All functions are pure queries.
package habit

import (
	"time"

	"habitboard/lib/dates"
	"habitboard/models"
)

// EffectiveInterval returns the number of days between completions implied by
// the habit's frequency. Custom intervals below 1 are treated as 1.
func EffectiveInterval(h models.Habit) int {
	switch h.Frequency {
	case models.Daily:
		return 1
	case models.EveryTwoDays:
		return 2
	default:
		if h.IntervalDays < 1 {
			return 1
		}
		return h.IntervalDays
	}
}

// IsDue reports whether the habit is actionable on the reference date. A habit
// that has never been completed is always due.
func IsDue(h models.Habit, ref time.Time) bool {
	if h.LastCompleted == nil {
		return true
	}
	return dates.DaysBetween(*h.LastCompleted, ref) >= EffectiveInterval(h)
}

// DaysUntilDue returns how many days remain before a not-due habit becomes
// actionable, and 0 for a habit that is already due.
func DaysUntilDue(h models.Habit, ref time.Time) int {
	if IsDue(h, ref) {
		return 0
	}
	remaining := EffectiveInterval(h) - dates.DaysBetween(*h.LastCompleted, ref)
	if remaining < 0 {
		return 0
	}
	return remaining
}
