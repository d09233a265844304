package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/drillforge/drillforge/internal/errors"
	"github.com/drillforge/drillforge/internal/models"
	"github.com/drillforge/drillforge/internal/services"
	"github.com/drillforge/drillforge/internal/testutil/mocks"
)

func submitDrill() *models.Drill {
	return &models.Drill{
		ID:         "drill-1",
		Title:      "HTTP basics",
		Difficulty: models.DifficultyEasy,
		Questions: []models.Question{
			{ID: 1, Prompt: "What does a 404 status mean?", Keywords: []string{"not found"}},
			{ID: 2, Prompt: "Name an idempotent HTTP method", Keywords: []string{"get", "put"}},
		},
	}
}

func newAttemptService(drillRepo *mocks.MockDrillRepository, attemptRepo *mocks.MockAttemptRepository) services.AttemptService {
	return services.NewAttemptService(drillRepo, attemptRepo, nil, nil)
}

func TestSubmitAttempt_ScoresAndPersists(t *testing.T) {
	drillRepo := new(mocks.MockDrillRepository)
	attemptRepo := new(mocks.MockAttemptRepository)
	svc := newAttemptService(drillRepo, attemptRepo)

	drillRepo.On("Get", mock.Anything, "drill-1").Return(submitDrill(), nil)
	attemptRepo.On("Insert", mock.Anything, mock.MatchedBy(func(a models.Attempt) bool {
		return a.ID != "" && a.UserID == "user-1" && a.DrillID == "drill-1" && a.Score == 100
	})).Return(nil)

	attempt, err := svc.SubmitAttempt(context.Background(), "user-1", "drill-1", []models.Answer{
		{QuestionID: 1, Answer: "It means the resource was NOT FOUND"},
		{QuestionID: 2, Answer: "GET and PUT are idempotent"},
	})
	require.NoError(t, err)
	assert.Equal(t, 100, attempt.Score)
	assert.False(t, attempt.CreatedAt.IsZero())
	attemptRepo.AssertExpectations(t)
}

func TestSubmitAttempt_PartialScore(t *testing.T) {
	drillRepo := new(mocks.MockDrillRepository)
	attemptRepo := new(mocks.MockAttemptRepository)
	svc := newAttemptService(drillRepo, attemptRepo)

	drillRepo.On("Get", mock.Anything, "drill-1").Return(submitDrill(), nil)
	attemptRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)

	// 2 of 3 keywords matched: round(2/3*100) = 67.
	attempt, err := svc.SubmitAttempt(context.Background(), "user-1", "drill-1", []models.Answer{
		{QuestionID: 1, Answer: "not found"},
		{QuestionID: 2, Answer: "get"},
	})
	require.NoError(t, err)
	assert.Equal(t, 67, attempt.Score)
}

func TestSubmitAttempt_DrillNotFound(t *testing.T) {
	drillRepo := new(mocks.MockDrillRepository)
	attemptRepo := new(mocks.MockAttemptRepository)
	svc := newAttemptService(drillRepo, attemptRepo)

	drillRepo.On("Get", mock.Anything, "missing").Return(nil, nil)

	_, err := svc.SubmitAttempt(context.Background(), "user-1", "missing", []models.Answer{
		{QuestionID: 1, Answer: "anything"},
	})
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeNotFound, appErr.Code)
	attemptRepo.AssertNotCalled(t, "Insert")
}

func TestSubmitAttempt_AnswerCountMismatch(t *testing.T) {
	drillRepo := new(mocks.MockDrillRepository)
	attemptRepo := new(mocks.MockAttemptRepository)
	svc := newAttemptService(drillRepo, attemptRepo)

	drillRepo.On("Get", mock.Anything, "drill-1").Return(submitDrill(), nil)

	_, err := svc.SubmitAttempt(context.Background(), "user-1", "drill-1", []models.Answer{
		{QuestionID: 1, Answer: "only one answer"},
	})
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
	attemptRepo.AssertNotCalled(t, "Insert")
}

func TestSubmitAttempt_UnknownQuestionID(t *testing.T) {
	drillRepo := new(mocks.MockDrillRepository)
	attemptRepo := new(mocks.MockAttemptRepository)
	svc := newAttemptService(drillRepo, attemptRepo)

	drillRepo.On("Get", mock.Anything, "drill-1").Return(submitDrill(), nil)

	_, err := svc.SubmitAttempt(context.Background(), "user-1", "drill-1", []models.Answer{
		{QuestionID: 1, Answer: "fine"},
		{QuestionID: 99, Answer: "no such question"},
	})
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
}

func TestSubmitAttempt_DuplicateAnswer(t *testing.T) {
	drillRepo := new(mocks.MockDrillRepository)
	attemptRepo := new(mocks.MockAttemptRepository)
	svc := newAttemptService(drillRepo, attemptRepo)

	drillRepo.On("Get", mock.Anything, "drill-1").Return(submitDrill(), nil)

	_, err := svc.SubmitAttempt(context.Background(), "user-1", "drill-1", []models.Answer{
		{QuestionID: 1, Answer: "first"},
		{QuestionID: 1, Answer: "second"},
	})
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
}

func TestSubmitAttempt_InvalidAnswers(t *testing.T) {
	tests := []struct {
		name    string
		answers []models.Answer
	}{
		{"empty", nil},
		{"too many", make([]models.Answer, 11)},
		{"non-positive question id", []models.Answer{{QuestionID: 0, Answer: "x"}}},
		{"empty text", []models.Answer{{QuestionID: 1, Answer: ""}}},
		{"too long", []models.Answer{{QuestionID: 1, Answer: strings.Repeat("a", 5001)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drillRepo := new(mocks.MockDrillRepository)
			attemptRepo := new(mocks.MockAttemptRepository)
			svc := newAttemptService(drillRepo, attemptRepo)

			_, err := svc.SubmitAttempt(context.Background(), "user-1", "drill-1", tt.answers)
			require.Error(t, err)
			appErr, ok := err.(*errors.AppError)
			require.True(t, ok)
			assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
			drillRepo.AssertNotCalled(t, "Get")
		})
	}
}

func TestListAttempts_DefaultAndMaxLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero uses default", 0, 10},
		{"negative uses default", -3, 10},
		{"within bounds kept", 25, 25},
		{"above max clamped", 500, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attemptRepo := new(mocks.MockAttemptRepository)
			svc := newAttemptService(new(mocks.MockDrillRepository), attemptRepo)

			attemptRepo.On("ListByUser", mock.Anything, "user-1", tt.want).
				Return([]models.AttemptWithDrill{}, nil)

			_, err := svc.ListAttempts(context.Background(), "user-1", tt.limit)
			require.NoError(t, err)
			attemptRepo.AssertExpectations(t)
		})
	}
}

func TestListAttempts_NilResultBecomesEmptySlice(t *testing.T) {
	attemptRepo := new(mocks.MockAttemptRepository)
	svc := newAttemptService(new(mocks.MockDrillRepository), attemptRepo)

	attemptRepo.On("ListByUser", mock.Anything, "user-1", 10).Return(nil, nil)

	attempts, err := svc.ListAttempts(context.Background(), "user-1", 0)
	require.NoError(t, err)
	assert.NotNil(t, attempts)
	assert.Empty(t, attempts)
}

func TestSubmitAttempt_SetsUTCCreatedAt(t *testing.T) {
	drillRepo := new(mocks.MockDrillRepository)
	attemptRepo := new(mocks.MockAttemptRepository)
	svc := newAttemptService(drillRepo, attemptRepo)

	drillRepo.On("Get", mock.Anything, "drill-1").Return(submitDrill(), nil)
	attemptRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)

	before := time.Now().UTC()
	attempt, err := svc.SubmitAttempt(context.Background(), "user-1", "drill-1", []models.Answer{
		{QuestionID: 1, Answer: "not found"},
		{QuestionID: 2, Answer: "put"},
	})
	require.NoError(t, err)
	assert.False(t, attempt.CreatedAt.Before(before))
	assert.Equal(t, time.UTC, attempt.CreatedAt.Location())
}
