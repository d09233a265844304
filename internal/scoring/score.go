package scoring

import (
	"math"
	"strings"

	"github.com/drillforge/drillforge/internal/models"
)

// Score computes the keyword-match percentage for a set of submitted
// answers against a drill's questions. For each question the first answer
// with a matching QuestionID is used; questions without an answer are
// skipped and their keywords do not count toward the denominator. A
// keyword matches when it appears as a case-insensitive substring of the
// answer text, and counts at most once per question.
//
// The result is always in [0, 100]. When no keywords are in play the
// score is 0, never an error.
func Score(answers []models.Answer, questions []models.Question) int {
	totalKeywords := 0
	matchedKeywords := 0

	for _, q := range questions {
		answer, ok := findAnswer(answers, q.ID)
		if !ok {
			continue
		}

		answerText := strings.ToLower(answer.Answer)
		totalKeywords += len(q.Keywords)

		for _, keyword := range q.Keywords {
			if strings.Contains(answerText, strings.ToLower(keyword)) {
				matchedKeywords++
			}
		}
	}

	if totalKeywords == 0 {
		return 0
	}
	return int(math.Round(float64(matchedKeywords) / float64(totalKeywords) * 100))
}

// findAnswer returns the first answer for the given question id.
func findAnswer(answers []models.Answer, questionID int) (models.Answer, bool) {
	for _, a := range answers {
		if a.QuestionID == questionID {
			return a, true
		}
	}
	return models.Answer{}, false
}
