package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"habitboard/models"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func activeOn(p models.UserProfile, s string) *models.UserProfile {
	d := date(s)
	p.LastActive = &d
	return &p
}

func TestApplyCompletionPointsAndLevel(t *testing.T) {
	p := &models.UserProfile{Points: 95, XP: 95, Level: 1}
	r := ApplyCompletion(p, date("2024-01-05"))

	assert.Equal(t, 105, r.Points)
	assert.Equal(t, 105, r.XP)
	assert.Equal(t, 2, r.Level, "crossing 100 xp reaches level 2")
	assert.Equal(t, date("2024-01-05"), r.LastActive)
}

func TestApplyCompletionDoesNotMutateProfile(t *testing.T) {
	p := &models.UserProfile{Points: 40, XP: 40, OverallStreak: 2}
	_ = ApplyCompletion(p, date("2024-01-05"))
	assert.Equal(t, 40, p.Points)
	assert.Equal(t, 2, p.OverallStreak)
	assert.Nil(t, p.LastActive)
}

func TestStreakFirstEverCompletion(t *testing.T) {
	p := &models.UserProfile{}
	r := ApplyCompletion(p, date("2024-01-05"))
	assert.Equal(t, 1, r.Streak)
}

func TestStreakContinuesFromYesterday(t *testing.T) {
	p := activeOn(models.UserProfile{OverallStreak: 4}, "2024-01-04")
	r := ApplyCompletion(p, date("2024-01-05"))
	assert.Equal(t, 5, r.Streak)
}

func TestStreakUnchangedSameDay(t *testing.T) {
	p := activeOn(models.UserProfile{OverallStreak: 7}, "2024-01-05")
	r := ApplyCompletion(p, date("2024-01-05"))
	assert.Equal(t, 7, r.Streak, "multiple completions per day do not inflate the streak")
}

func TestStreakResetsAfterGap(t *testing.T) {
	p := activeOn(models.UserProfile{OverallStreak: 9}, "2024-01-02")
	r := ApplyCompletion(p, date("2024-01-05"))
	assert.Equal(t, 1, r.Streak)
}

func TestStreakResetsOnClockSkew(t *testing.T) {
	// Last active in the future relative to "today".
	p := activeOn(models.UserProfile{OverallStreak: 3}, "2024-01-07")
	r := ApplyCompletion(p, date("2024-01-05"))
	assert.Equal(t, 1, r.Streak)
}

func TestApplyTo(t *testing.T) {
	p := &models.UserProfile{Points: 90, XP: 90, Level: 1, OverallStreak: 2}
	r := ApplyCompletion(p, date("2024-01-05"))
	r.ApplyTo(p)

	assert.Equal(t, 100, p.Points)
	assert.Equal(t, 100, p.XP)
	assert.Equal(t, 2, p.Level)
	assert.NotNil(t, p.LastActive)
	assert.Equal(t, date("2024-01-05"), *p.LastActive)
}

func TestMarkCompleted(t *testing.T) {
	h := models.Habit{Frequency: models.Daily, TotalCompletions: 3}
	MarkCompleted(&h, date("2024-01-05"))

	assert.NotNil(t, h.LastCompleted)
	assert.Equal(t, date("2024-01-05"), *h.LastCompleted)
	assert.Equal(t, 4, h.TotalCompletions)
}

func TestMarkCompletedIgnoresDueStatus(t *testing.T) {
	// Completed today already; marking again still stamps and counts.
	d := date("2024-01-05")
	h := models.Habit{Frequency: models.Daily, LastCompleted: &d, TotalCompletions: 1}
	MarkCompleted(&h, d)

	assert.Equal(t, d, *h.LastCompleted)
	assert.Equal(t, 2, h.TotalCompletions)
}
