// handlers/store.go
package handlers

import (
	"context"
	"time"

	"goal-tracker/models"
)

// Store handler'ların kullandığı kalıcılık katmanı; *database.Store bunu sağlar.
type Store interface {
	CreateUser(ctx context.Context, u *models.User) error
	UserByLogin(ctx context.Context, login string) (*models.User, error)
	UserByID(ctx context.Context, id int64) (*models.User, error)
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
	UpdateProfile(ctx context.Context, id int64, p models.ProfileUpdate) error
	UpdatePassword(ctx context.Context, id int64, hash string) error

	ListGoals(ctx context.Context, userID int64, f models.GoalFilter) ([]models.Goal, error)
	GetGoal(ctx context.Context, userID, goalID int64) (*models.Goal, error)
	CreateGoal(ctx context.Context, g *models.Goal) error
	UpdateGoal(ctx context.Context, g *models.Goal) error
	DeleteGoal(ctx context.Context, userID, goalID int64) error
	GoalsDueBetween(ctx context.Context, userID int64, from, to models.Date) ([]models.Goal, error)

	ListSubgoals(ctx context.Context, goalID int64) ([]models.Subgoal, error)
	GetSubgoal(ctx context.Context, goalID, subgoalID int64) (*models.Subgoal, error)
	CreateSubgoal(ctx context.Context, s *models.Subgoal) error
	UpdateSubgoal(ctx context.Context, s *models.Subgoal) error
	DeleteSubgoal(ctx context.Context, goalID, subgoalID int64) error

	ListTransactions(ctx context.Context, goalID int64) ([]models.Transaction, error)
	AddTransaction(ctx context.Context, t *models.Transaction) error

	ListRates(ctx context.Context) ([]models.Rate, error)
	UpsertRate(ctx context.Context, r models.Rate) error

	ListAchievements(ctx context.Context, userID int64) ([]models.Achievement, error)
	UnlockAchievements(ctx context.Context, userID int64, codes []string) ([]string, error)
	SaveStatistics(ctx context.Context, st models.UserStatistics) error
	Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)

	LogActivity(ctx context.Context, a models.Activity) error
	RecentActivity(ctx context.Context, userID int64, limit int) ([]models.Activity, error)
}

// Publisher gerçek zamanlı olay akışı.
type Publisher interface {
	Publish(userID int64, eventType string, payload interface{})
}
