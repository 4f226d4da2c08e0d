package leaderboard

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"

	"habitboard/models"
)

func TestReconcileProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(0, Size).Draw(t, "count")
		players := make([]models.LeaderboardEntry, 0, count)
		for i := 0; i < count; i++ {
			players = append(players, models.LeaderboardEntry{
				Name:   fmt.Sprintf("user-%d", i),
				Points: rapid.IntRange(0, 1000).Draw(t, fmt.Sprintf("points-%d", i)),
			})
		}
		// Incoming lists are sorted; Reconcile only has to keep them that way.
		players = Reconcile(players, models.LeaderboardEntry{Name: "seed", Points: 0})

		candidate := models.LeaderboardEntry{
			Name:   rapid.SampledFrom([]string{"user-0", "user-2", "newcomer"}).Draw(t, "name"),
			Points: rapid.IntRange(0, 2000).Draw(t, "candidatePoints"),
		}

		out := Reconcile(players, candidate)

		if len(out) > Size {
			t.Fatalf("list grew past %d entries: %d", Size, len(out))
		}
		seen := map[string]bool{}
		for i, p := range out {
			if seen[p.Name] {
				t.Fatalf("duplicate name %q", p.Name)
			}
			seen[p.Name] = true
			if i > 0 && out[i-1].Points < p.Points {
				t.Fatalf("not sorted descending at %d: %d < %d", i, out[i-1].Points, p.Points)
			}
		}
		if len(out) < Size && !seen[candidate.Name] {
			t.Fatalf("candidate missing from a non-full board")
		}
	})
}
