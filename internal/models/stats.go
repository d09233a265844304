package models

import "time"

// RecentAttempt is the slim projection of an attempt shown on the dashboard.
type RecentAttempt struct {
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// UserStats summarizes a user's attempt history. RecentAttempts holds at
// most the ten newest attempts, most recent first. Improvement is the
// rounded average of the newest up-to-five attempts minus the rounded
// average of the next up-to-five.
type UserStats struct {
	TotalAttempts   int             `json:"totalAttempts"`
	AverageScore    int             `json:"averageScore"`
	RecentAttempts  []RecentAttempt `json:"recentAttempts"`
	Improvement     int             `json:"improvement"`
	DifficultyStats map[string]int  `json:"difficultyStats"`
	WeeklyAttempts  int             `json:"weeklyAttempts"`
}

// StatsSummary is the cached dashboard row refreshed in the background
// after each submission.
type StatsSummary struct {
	UserID        string    `json:"user_id"`
	TotalAttempts int       `json:"total_attempts"`
	AverageScore  int       `json:"average_score"`
	UpdatedAt     time.Time `json:"updated_at"`
}
