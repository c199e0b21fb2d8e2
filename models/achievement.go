// models/achievement.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Achievement struct {
	ID          int64      `json:"achievement_id"`
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Points      int        `json:"points"`
	Category    string     `json:"category"`
	Unlocked    bool       `json:"unlocked"`
	UnlockedAt  *time.Time `json:"unlocked_at"`
}

// UserStatistics user_statistics tablosundaki anlık görüntü.
type UserStatistics struct {
	UserID           int64           `json:"user_id"`
	TotalGoals       int             `json:"total_goals"`
	CompletedGoals   int             `json:"completed_goals"`
	TotalPoints      int             `json:"total_points"`
	CurrentStreak    int             `json:"current_streak"`
	LongestStreak    int             `json:"longest_streak"`
	TotalSavedAmount decimal.Decimal `json:"total_saved_amount"`
	LastCalculatedAt time.Time       `json:"last_calculated_at"`
}

type LeaderboardEntry struct {
	Rank           int    `json:"rank"`
	Username       string `json:"username"`
	TotalPoints    int    `json:"total_points"`
	Level          int    `json:"level"`
	CompletedGoals int    `json:"completed_goals"`
	CurrentStreak  int    `json:"current_streak"`
	LongestStreak  int    `json:"longest_streak"`
}

type Activity struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	GoalID      *int64    `json:"goal_id"`
	Type        string    `json:"action_type"`
	Description string    `json:"description"`
	IPAddress   string    `json:"ip_address,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

const (
	ActivityGoalCreated      = "goal_created"
	ActivityGoalUpdated      = "goal_updated"
	ActivityGoalDeleted      = "goal_deleted"
	ActivityTransactionAdded = "transaction_added"
	ActivityAchievement      = "achievement_unlocked"
)
