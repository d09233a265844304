package progress

import (
	"math"
	"time"

	"github.com/drillforge/drillforge/internal/models"
)

const (
	recentWindow = 10
	trendWindow  = 5
	weekSpan     = 7 * 24 * time.Hour
)

// Summarize computes aggregate statistics over a user's attempt history.
// The attempts slice must already be ordered most-recent-first (the
// storage layer guarantees this); it is never re-sorted here.
//
// Improvement compares the newest up-to-five attempts with the next
// up-to-five. Both group averages are rounded independently before
// subtracting, which can differ by a point from rounding the true
// difference. Existing dashboards depend on that exact behavior.
func Summarize(attempts []models.AttemptWithDrill, now time.Time) models.UserStats {
	stats := models.UserStats{
		TotalAttempts:   len(attempts),
		RecentAttempts:  []models.RecentAttempt{},
		DifficultyStats: map[string]int{},
	}
	if len(attempts) == 0 {
		return stats
	}

	sum := 0
	weekStart := now.Add(-weekSpan)
	for _, a := range attempts {
		sum += a.Score
		stats.DifficultyStats[a.Difficulty]++
		if !a.CreatedAt.Before(weekStart) && !a.CreatedAt.After(now) {
			stats.WeeklyAttempts++
		}
	}
	stats.AverageScore = roundAvg(sum, len(attempts))

	for _, a := range attempts[:min(recentWindow, len(attempts))] {
		stats.RecentAttempts = append(stats.RecentAttempts, models.RecentAttempt{
			Score:     a.Score,
			CreatedAt: a.CreatedAt,
		})
	}

	recent := attempts[:min(trendWindow, len(attempts))]
	older := attempts[min(trendWindow, len(attempts)):min(2*trendWindow, len(attempts))]
	if len(older) > 0 {
		stats.Improvement = groupAvg(recent) - groupAvg(older)
	}

	return stats
}

// groupAvg returns the rounded average score of a group, 0 when empty.
func groupAvg(attempts []models.AttemptWithDrill) int {
	if len(attempts) == 0 {
		return 0
	}
	sum := 0
	for _, a := range attempts {
		sum += a.Score
	}
	return roundAvg(sum, len(attempts))
}

func roundAvg(sum, n int) int {
	return int(math.Round(float64(sum) / float64(n)))
}
