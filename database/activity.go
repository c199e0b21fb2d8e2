// database/activity.go
package database

import (
	"context"

	"goal-tracker/models"
)

func (s *Store) LogActivity(ctx context.Context, a models.Activity) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO activity_logs (user_id, goal_id, action_type, description, ip_address)
        VALUES ($1, $2, $3, $4, $5)
    `, a.UserID, a.GoalID, a.Type, a.Description, a.IPAddress)
	return err
}

func (s *Store) RecentActivity(ctx context.Context, userID int64, limit int) ([]models.Activity, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT log_id, user_id, goal_id, action_type, description, created_at
        FROM activity_logs
        WHERE user_id = $1
        ORDER BY created_at DESC, log_id DESC
        LIMIT $2
    `, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := []models.Activity{}
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.UserID, &a.GoalID, &a.Type, &a.Description, &a.CreatedAt); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}
