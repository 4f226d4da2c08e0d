package dates

import "time"

// Normalize strips the time-of-day component from t, returning midnight UTC of
// the same calendar date. Every date the application stores or compares goes
// through this, so day arithmetic is never affected by clock shifts.
func Normalize(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date, UTC-normalized.
func Today() time.Time {
	return Normalize(time.Now())
}

// DaysBetween returns the signed number of whole calendar days from one date to
// another (to - from). Same day is 0, tomorrow is 1, yesterday is -1.
func DaysBetween(from, to time.Time) int {
	return int(Normalize(to).Sub(Normalize(from)).Hours() / 24)
}

// SameDay reports whether two instants fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return Normalize(a).Equal(Normalize(b))
}
