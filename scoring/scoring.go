// Package scoring computes how a completion event changes a user's points,
// XP, level and overall activity streak.
package scoring

import (
	"time"

	"habitboard/lib/dates"
	"habitboard/models"
)

// CompletionPoints is the fixed reward for completing any habit.
const CompletionPoints = 10

// Result holds the new aggregate values implied by one completion.
type Result struct {
	Points     int
	XP         int
	Level      int
	Streak     int
	LastActive time.Time
}

// ApplyCompletion computes the profile aggregates after one completion on the
// given day. It does not mutate the profile and does not re-validate whether
// the habit was due; callers gate that with the habit package. Invoking it
// twice for the same logical completion double-counts points.
func ApplyCompletion(p *models.UserProfile, today time.Time) Result {
	today = dates.Normalize(today)
	r := Result{
		Points:     p.Points + CompletionPoints,
		XP:         p.XP + CompletionPoints,
		LastActive: today,
	}
	r.Level = models.LevelForXP(r.XP)

	switch {
	case p.LastActive == nil:
		r.Streak = 1
	case dates.SameDay(*p.LastActive, today):
		// Multiple completions on the same day never inflate the streak.
		r.Streak = p.OverallStreak
	case dates.DaysBetween(*p.LastActive, today) == 1:
		r.Streak = p.OverallStreak + 1
	default:
		// A gap of two or more days, or a last-active date in the future
		// from clock skew, both restart the streak.
		r.Streak = 1
	}
	return r
}

// ApplyTo writes the result back onto a profile.
func (r Result) ApplyTo(p *models.UserProfile) {
	p.Points = r.Points
	p.XP = r.XP
	p.Level = r.Level
	p.OverallStreak = r.Streak
	la := r.LastActive
	p.LastActive = &la
}

// MarkCompleted records a completion on the habit itself: the last-completed
// date becomes today and the counter increments, unconditionally.
func MarkCompleted(h *models.Habit, today time.Time) {
	d := dates.Normalize(today)
	h.LastCompleted = &d
	h.TotalCompletions++
}
