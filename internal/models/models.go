package models

import "time"

// Difficulty levels a drill can be tagged with.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// ValidDifficulty reports whether s is one of the known difficulty levels.
func ValidDifficulty(s string) bool {
	return s == DifficultyEasy || s == DifficultyMedium || s == DifficultyHard
}

type Question struct {
	ID       int      `json:"id"`
	Prompt   string   `json:"prompt"`
	Keywords []string `json:"keywords"`
}

type Answer struct {
	QuestionID int    `json:"questionId"`
	Answer     string `json:"answer"`
}

type Drill struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Difficulty string     `json:"difficulty"`
	Tags       []string   `json:"tags"`
	Questions  []Question `json:"questions"`
	CreatedAt  time.Time  `json:"created_at"`
}

type DrillFilter struct {
	Difficulty string
	Tag        string
	Limit      int
	Offset     int
}

type Attempt struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	DrillID   string    `json:"drill_id"`
	Answers   []Answer  `json:"answers"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// AttemptWithDrill is an attempt joined with the metadata of the drill it
// was made against, as returned by history and statistics queries.
type AttemptWithDrill struct {
	Attempt
	DrillTitle string `json:"drill_title"`
	Difficulty string `json:"difficulty"`
}

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
