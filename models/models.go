package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"habitboard/errorvalues"
)

// Frequency describes how often a habit is meant to be completed.
type Frequency string

const (
	Daily        Frequency = "daily"
	EveryTwoDays Frequency = "every_two_days"
	Custom       Frequency = "custom"
)

// ParseFrequency maps user input to a Frequency, accepting a few spellings.
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily", "every day", "everyday":
		return Daily, nil
	case "every_two_days", "every two days", "every2days":
		return EveryTwoDays, nil
	case "custom":
		return Custom, nil
	}
	return "", errorvalues.ErrInvalidInput
}

const (
	// DefaultHabitTitle replaces an empty submitted title.
	DefaultHabitTitle = "New habit"
	// MaxHabits is the most habits a single user may own.
	MaxHabits = 15
	// MaxRosterNames bounds the identity-selection roster.
	MaxRosterNames = 50
)

type Habit struct {
	ID               string     `bson:"id" json:"id"`
	Title            string     `bson:"title" json:"title"`
	Frequency        Frequency  `bson:"frequency" json:"frequency"`
	IntervalDays     int        `bson:"interval_days" json:"interval_days"`
	LastCompleted    *time.Time `bson:"last_completed,omitempty" json:"last_completed,omitempty"`
	TotalCompletions int        `bson:"total_completions" json:"total_completions"`
}

// NewHabit builds a habit with a fresh ID, applying the normalization rules:
// the title is trimmed and falls back to a placeholder when empty, and the
// interval is derived from the frequency (custom intervals are clamped to 1).
func NewHabit(title string, freq Frequency, intervalDays int) Habit {
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultHabitTitle
	}
	switch freq {
	case Daily:
		intervalDays = 1
	case EveryTwoDays:
		intervalDays = 2
	default:
		if intervalDays < 1 {
			intervalDays = 1
		}
	}
	return Habit{
		ID:           uuid.NewString(),
		Title:        title,
		Frequency:    freq,
		IntervalDays: intervalDays,
	}
}

type UserProfile struct {
	Name           string     `bson:"name" json:"name"`
	CredentialHash string     `bson:"credential_hash" json:"credential_hash"`
	Points         int        `bson:"points" json:"points"`
	XP             int        `bson:"xp" json:"xp"`
	Level          int        `bson:"level" json:"level"`
	OverallStreak  int        `bson:"overall_streak" json:"overall_streak"`
	LastActive     *time.Time `bson:"last_active,omitempty" json:"last_active,omitempty"`
	Habits         []Habit    `bson:"habits" json:"habits"`
}

// LevelForXP derives the level implied by an XP total.
func LevelForXP(xp int) int {
	return xp/100 + 1
}

// NewUserProfile returns the all-default profile created on first entry.
func NewUserProfile(name, credentialHash string) *UserProfile {
	return &UserProfile{
		Name:           name,
		CredentialHash: credentialHash,
		Level:          LevelForXP(0),
		Habits:         []Habit{},
	}
}

// Clone returns a deep copy, so callers can mutate and persist a working copy
// without touching the snapshot other goroutines may be reading.
func (p *UserProfile) Clone() *UserProfile {
	cp := *p
	cp.Habits = make([]Habit, len(p.Habits))
	copy(cp.Habits, p.Habits)
	if p.LastActive != nil {
		t := *p.LastActive
		cp.LastActive = &t
	}
	for i := range cp.Habits {
		if lc := cp.Habits[i].LastCompleted; lc != nil {
			t := *lc
			cp.Habits[i].LastCompleted = &t
		}
	}
	return &cp
}

// LeaderboardEntry is a snapshot of one user's standing, copied from the
// profile at the moment of the triggering completion. It is derived state,
// never authoritative.
type LeaderboardEntry struct {
	Name   string `bson:"name" json:"name"`
	Points int    `bson:"points" json:"points"`
	Streak int    `bson:"streak" json:"streak"`
	Level  int    `bson:"level" json:"level"`
}

// Snapshot copies the leaderboard-relevant fields out of a profile.
func Snapshot(p *UserProfile) LeaderboardEntry {
	return LeaderboardEntry{
		Name:   p.Name,
		Points: p.Points,
		Streak: p.OverallStreak,
		Level:  p.Level,
	}
}

type Leaderboard struct {
	Players []LeaderboardEntry `bson:"players" json:"players"`
}

// Roster is the bounded, append-once list of names shown on the identity
// selection screen.
type Roster struct {
	Names []string `bson:"names" json:"names"`
}

// Append adds a name if the roster has room and the name is not already
// present. It reports whether the roster changed.
func (r *Roster) Append(name string) bool {
	if len(r.Names) >= MaxRosterNames {
		return false
	}
	for _, n := range r.Names {
		if n == name {
			return false
		}
	}
	r.Names = append(r.Names, name)
	return true
}
