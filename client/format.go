package client

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"habitboard/habit"
	"habitboard/models"
)

func PrintBanner(message string) {
	bannerChar := "+"
	bannerLength := len(message) + 4
	bannerLine := strings.Repeat(bannerChar, bannerLength)

	fmt.Println(bannerLine)
	fmt.Printf("%s %s %s\n", bannerChar, message, bannerChar)
	fmt.Println(bannerLine)
	fmt.Println()
}

func PrintError(message string) {
	message = "error: " + message
	bannerChar := "*"
	bannerLength := len(message) + 4
	bannerLine := strings.Repeat(bannerChar, bannerLength)

	fmt.Println(bannerLine)
	fmt.Printf("%s %s %s\n", bannerChar, message, bannerChar)
	fmt.Println(bannerLine)
	fmt.Println()
}

// RenderHabits lists the user's habits with a 1-based index so commands can
// pick them by number, along with due status relative to the reference date.
func RenderHabits(habits []models.Habit, ref time.Time) string {
	if len(habits) == 0 {
		return "No habits yet. Use 'add' to create one.\n"
	}
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tTITLE\tEVERY\tDONE\tSTATUS")
	for i, h := range habits {
		status := "due today"
		if !habit.IsDue(h, ref) {
			days := habit.DaysUntilDue(h, ref)
			if days == 1 {
				status = "due tomorrow"
			} else {
				status = fmt.Sprintf("due in %d days", days)
			}
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n",
			i+1, h.Title, intervalLabel(h), h.TotalCompletions, status)
	}
	w.Flush()
	return b.String()
}

func intervalLabel(h models.Habit) string {
	days := habit.EffectiveInterval(h)
	if days == 1 {
		return "day"
	}
	return fmt.Sprintf("%d days", days)
}

// RenderLeaderboard prints the shared top list in rank order.
func RenderLeaderboard(board models.Leaderboard) string {
	if len(board.Players) == 0 {
		return "The leaderboard is empty. Complete a habit to get on it!\n"
	}
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tNAME\tPOINTS\tSTREAK\tLEVEL")
	for i, p := range board.Players {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\n", i+1, p.Name, p.Points, p.Streak, p.Level)
	}
	w.Flush()
	return b.String()
}

// RenderProfile prints the user's own running totals.
func RenderProfile(p models.UserProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s — level %d\n", p.Name, p.Level)
	fmt.Fprintf(&b, "  points: %d\n", p.Points)
	fmt.Fprintf(&b, "  xp:     %d\n", p.XP)
	fmt.Fprintf(&b, "  streak: %d day(s)\n", p.OverallStreak)
	fmt.Fprintf(&b, "  habits: %d of %d\n", len(p.Habits), models.MaxHabits)
	return b.String()
}
