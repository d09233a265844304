package progress_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drillforge/drillforge/internal/models"
	"github.com/drillforge/drillforge/internal/progress"
)

// attemptsFromScores builds a newest-first history where attempt i was
// made i days before now.
func attemptsFromScores(now time.Time, scores ...int) []models.AttemptWithDrill {
	attempts := make([]models.AttemptWithDrill, 0, len(scores))
	for i, score := range scores {
		attempts = append(attempts, models.AttemptWithDrill{
			Attempt: models.Attempt{
				Score:     score,
				CreatedAt: now.Add(-time.Duration(i) * 24 * time.Hour),
			},
			Difficulty: models.DifficultyMedium,
		})
	}
	return attempts
}

func TestSummarize_Empty(t *testing.T) {
	stats := progress.Summarize(nil, time.Now())

	assert.Equal(t, 0, stats.TotalAttempts)
	assert.Equal(t, 0, stats.AverageScore)
	assert.Empty(t, stats.RecentAttempts)
	assert.Equal(t, 0, stats.Improvement)
	assert.Empty(t, stats.DifficultyStats)
	assert.Equal(t, 0, stats.WeeklyAttempts)
}

func TestSummarize_SingleAttempt(t *testing.T) {
	now := time.Now()
	stats := progress.Summarize(attemptsFromScores(now, 72), now)

	assert.Equal(t, 1, stats.TotalAttempts)
	assert.Equal(t, 72, stats.AverageScore)
	assert.Equal(t, 0, stats.Improvement, "no older group means no trend")
	require.Len(t, stats.RecentAttempts, 1)
	assert.Equal(t, 72, stats.RecentAttempts[0].Score)
}

func TestSummarize_AverageRounding(t *testing.T) {
	now := time.Now()

	// (70+71)/2 = 70.5 rounds away from zero to 71.
	stats := progress.Summarize(attemptsFromScores(now, 70, 71), now)
	assert.Equal(t, 71, stats.AverageScore)
}

func TestSummarize_RecentAttemptsCapped(t *testing.T) {
	now := time.Now()
	scores := make([]int, 15)
	for i := range scores {
		scores[i] = i * 5
	}

	stats := progress.Summarize(attemptsFromScores(now, scores...), now)

	require.Len(t, stats.RecentAttempts, 10)
	assert.Equal(t, 0, stats.RecentAttempts[0].Score, "newest attempt comes first")
	assert.Equal(t, 45, stats.RecentAttempts[9].Score)
}

func TestSummarize_Improvement(t *testing.T) {
	now := time.Now()

	// recent avg = (90+80+70+60+50)/5 = 70, older avg = (40+30+20+10+0)/5 = 20
	stats := progress.Summarize(attemptsFromScores(now, 90, 80, 70, 60, 50, 40, 30, 20, 10, 0), now)
	assert.Equal(t, 50, stats.Improvement)
}

func TestSummarize_ImprovementNegative(t *testing.T) {
	now := time.Now()

	stats := progress.Summarize(attemptsFromScores(now, 10, 20, 30, 40, 50, 90, 90, 90, 90, 90), now)
	assert.Equal(t, -60, stats.Improvement)
}

func TestSummarize_ImprovementRoundsGroupsIndependently(t *testing.T) {
	now := time.Now()

	// recent avg = 403/5 = 80.6 → 81, older avg = 101/5 = 20.2 → 20.
	// Each group rounds before subtracting, giving 61; rounding the true
	// difference (60.4) would give 60.
	stats := progress.Summarize(attemptsFromScores(now, 80, 80, 80, 80, 83, 20, 20, 20, 20, 21), now)
	assert.Equal(t, 61, stats.Improvement)
}

func TestSummarize_ImprovementIgnoresBeyondTen(t *testing.T) {
	now := time.Now()

	// The eleventh attempt (score 100) is outside both trend groups.
	stats := progress.Summarize(attemptsFromScores(now, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 100), now)
	assert.Equal(t, 0, stats.Improvement)
}

func TestSummarize_DifficultyStats(t *testing.T) {
	now := time.Now()
	attempts := []models.AttemptWithDrill{
		{Attempt: models.Attempt{Score: 80, CreatedAt: now}, Difficulty: models.DifficultyEasy},
		{Attempt: models.Attempt{Score: 60, CreatedAt: now}, Difficulty: models.DifficultyHard},
		{Attempt: models.Attempt{Score: 40, CreatedAt: now}, Difficulty: models.DifficultyEasy},
	}

	stats := progress.Summarize(attempts, now)

	assert.Equal(t, map[string]int{
		models.DifficultyEasy: 2,
		models.DifficultyHard: 1,
	}, stats.DifficultyStats)
}

func TestSummarize_WeeklyAttempts(t *testing.T) {
	now := time.Now()
	attempts := []models.AttemptWithDrill{
		{Attempt: models.Attempt{Score: 100, CreatedAt: now.Add(-2 * 24 * time.Hour)}},
		{Attempt: models.Attempt{Score: 50, CreatedAt: now.Add(-10 * 24 * time.Hour)}},
	}

	stats := progress.Summarize(attempts, now)
	assert.Equal(t, 1, stats.WeeklyAttempts)
}

func TestSummarize_WeeklyWindowInclusive(t *testing.T) {
	now := time.Now()
	attempts := []models.AttemptWithDrill{
		{Attempt: models.Attempt{Score: 10, CreatedAt: now}},
		{Attempt: models.Attempt{Score: 20, CreatedAt: now.Add(-7 * 24 * time.Hour)}},
		{Attempt: models.Attempt{Score: 30, CreatedAt: now.Add(-7*24*time.Hour - time.Second)}},
	}

	stats := progress.Summarize(attempts, now)
	assert.Equal(t, 2, stats.WeeklyAttempts, "both window bounds are inclusive")
}

func TestSummarize_Deterministic(t *testing.T) {
	now := time.Now()
	attempts := attemptsFromScores(now, 88, 77, 66, 55)

	first := progress.Summarize(attempts, now)
	second := progress.Summarize(attempts, now)
	assert.Equal(t, first, second)
}
