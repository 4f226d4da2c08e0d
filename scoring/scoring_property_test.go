package scoring

import (
	"testing"
	"time"

	"pgregory.net/rapid"

	"habitboard/lib/dates"
	"habitboard/models"
)

func TestApplyCompletionProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		points := rapid.IntRange(0, 100000).Draw(t, "points")
		streak := rapid.IntRange(1, 3650).Draw(t, "streak")
		gap := rapid.IntRange(-5, 30).Draw(t, "gap")
		hasActive := rapid.Bool().Draw(t, "hasActive")

		today := dates.Normalize(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))
		p := &models.UserProfile{
			Points:        points,
			XP:            points,
			Level:         models.LevelForXP(points),
			OverallStreak: streak,
		}
		if hasActive {
			last := today.AddDate(0, 0, -gap)
			p.LastActive = &last
		}

		r := ApplyCompletion(p, today)

		if r.Points != points+CompletionPoints {
			t.Fatalf("points: got %d, want %d", r.Points, points+CompletionPoints)
		}
		if r.XP != r.Points {
			t.Fatalf("xp %d diverged from points %d", r.XP, r.Points)
		}
		if r.Level != r.XP/100+1 {
			t.Fatalf("level %d is not derived from xp %d", r.Level, r.XP)
		}
		if r.Streak < 1 {
			t.Fatalf("streak %d below 1", r.Streak)
		}

		switch {
		case !hasActive:
			if r.Streak != 1 {
				t.Fatalf("first completion: streak %d, want 1", r.Streak)
			}
		case gap == 0:
			if r.Streak != streak {
				t.Fatalf("same day: streak %d, want unchanged %d", r.Streak, streak)
			}
		case gap == 1:
			if r.Streak != streak+1 {
				t.Fatalf("adjacent day: streak %d, want %d", r.Streak, streak+1)
			}
		default:
			if r.Streak != 1 {
				t.Fatalf("gap %d: streak %d, want reset to 1", gap, r.Streak)
			}
		}
	})
}
