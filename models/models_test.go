package models

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"habitboard/errorvalues"
)

func TestParseFrequency(t *testing.T) {
	freq, err := ParseFrequency("Daily")
	assert.NoError(t, err)
	assert.Equal(t, Daily, freq)

	freq, err = ParseFrequency("every two days")
	assert.NoError(t, err)
	assert.Equal(t, EveryTwoDays, freq)

	freq, err = ParseFrequency("  custom ")
	assert.NoError(t, err)
	assert.Equal(t, Custom, freq)

	_, err = ParseFrequency("fortnightly")
	assert.ErrorIs(t, err, errorvalues.ErrInvalidInput)
}

func TestNewHabitNormalizesTitle(t *testing.T) {
	h := NewHabit("  Read 20 pages  ", Daily, 0)
	assert.Equal(t, "Read 20 pages", h.Title)

	h = NewHabit("   ", Daily, 0)
	assert.Equal(t, DefaultHabitTitle, h.Title)
}

func TestNewHabitDerivesInterval(t *testing.T) {
	assert.Equal(t, 1, NewHabit("a", Daily, 9).IntervalDays)
	assert.Equal(t, 2, NewHabit("a", EveryTwoDays, 9).IntervalDays)
	assert.Equal(t, 4, NewHabit("a", Custom, 4).IntervalDays)
	assert.Equal(t, 1, NewHabit("a", Custom, 0).IntervalDays, "custom interval clamps to 1")
	assert.Equal(t, 1, NewHabit("a", Custom, -3).IntervalDays)
}

func TestNewHabitAssignsUniqueIDs(t *testing.T) {
	a := NewHabit("a", Daily, 0)
	b := NewHabit("b", Daily, 0)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestLevelForXP(t *testing.T) {
	assert.Equal(t, 1, LevelForXP(0))
	assert.Equal(t, 1, LevelForXP(99))
	assert.Equal(t, 2, LevelForXP(100))
	assert.Equal(t, 2, LevelForXP(105))
	assert.Equal(t, 11, LevelForXP(1000))
}

func TestNewUserProfileDefaults(t *testing.T) {
	p := NewUserProfile("amira", "hash")
	assert.Equal(t, "amira", p.Name)
	assert.Equal(t, "hash", p.CredentialHash)
	assert.Zero(t, p.Points)
	assert.Zero(t, p.XP)
	assert.Equal(t, 1, p.Level)
	assert.Zero(t, p.OverallStreak)
	assert.Nil(t, p.LastActive)
	assert.Empty(t, p.Habits)
}

func TestCloneIsIndependent(t *testing.T) {
	p := NewUserProfile("amira", "hash")
	p.Habits = append(p.Habits, NewHabit("read", Daily, 0))

	cp := p.Clone()
	cp.Points = 50
	cp.Habits[0].Title = "changed"
	cp.Habits = append(cp.Habits, NewHabit("run", Daily, 0))

	assert.Zero(t, p.Points)
	assert.Equal(t, "read", p.Habits[0].Title)
	assert.Len(t, p.Habits, 1)
}

func TestSnapshot(t *testing.T) {
	p := &UserProfile{Name: "amira", Points: 120, XP: 120, Level: 2, OverallStreak: 6}
	e := Snapshot(p)
	assert.Equal(t, LeaderboardEntry{Name: "amira", Points: 120, Streak: 6, Level: 2}, e)
}

func TestRosterAppend(t *testing.T) {
	r := &Roster{}
	assert.True(t, r.Append("amira"))
	assert.False(t, r.Append("amira"), "duplicate names are ignored")
	assert.Len(t, r.Names, 1)
}

func TestRosterAppendCapacity(t *testing.T) {
	r := &Roster{}
	for i := 0; i < MaxRosterNames; i++ {
		assert.True(t, r.Append(fmt.Sprintf("user-%d", i)))
	}
	assert.False(t, r.Append("one-too-many"))
	assert.Len(t, r.Names, MaxRosterNames)
}
