// Package leaderboard keeps the shared top-N list consistent as users post
// new standings.
package leaderboard

import (
	"sort"

	"habitboard/models"
)

// Size is the number of entries the leaderboard retains.
const Size = 5

// Reconcile folds one user's latest standing into the current list: any
// existing entry with the same name is dropped, the candidate is appended,
// and the result is sorted descending by points and truncated to Size.
// Ordering between equal point totals is unspecified (stable on insertion).
// The returned slice fully replaces the stored document.
func Reconcile(players []models.LeaderboardEntry, candidate models.LeaderboardEntry) []models.LeaderboardEntry {
	out := make([]models.LeaderboardEntry, 0, len(players)+1)
	for _, p := range players {
		if p.Name != candidate.Name {
			out = append(out, p)
		}
	}
	out = append(out, candidate)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Points > out[j].Points
	})
	if len(out) > Size {
		out = out[:Size]
	}
	return out
}
