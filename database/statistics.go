// database/statistics.go
package database

import (
	"context"

	"goal-tracker/models"
)

func (s *Store) SaveStatistics(ctx context.Context, st models.UserStatistics) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO user_statistics
            (user_id, total_goals, completed_goals, total_points, current_streak,
             longest_streak, total_saved_amount, last_calculated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (user_id) DO UPDATE
        SET total_goals = EXCLUDED.total_goals,
            completed_goals = EXCLUDED.completed_goals,
            total_points = EXCLUDED.total_points,
            current_streak = EXCLUDED.current_streak,
            longest_streak = EXCLUDED.longest_streak,
            total_saved_amount = EXCLUDED.total_saved_amount,
            last_calculated_at = EXCLUDED.last_calculated_at
    `,
		st.UserID, st.TotalGoals, st.CompletedGoals, st.TotalPoints, st.CurrentStreak,
		st.LongestStreak, st.TotalSavedAmount, st.LastCalculatedAt,
	)
	return err
}

// Leaderboard son kaydedilen istatistiklere göre sıralar.
func (s *Store) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT u.username, st.total_points, st.completed_goals,
               st.current_streak, st.longest_streak
        FROM user_statistics st
        JOIN users u ON u.user_id = st.user_id
        WHERE u.is_active = TRUE
        ORDER BY st.total_points DESC, st.completed_goals DESC, u.username ASC
        LIMIT $1
    `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.LeaderboardEntry{}
	for rows.Next() {
		e := models.LeaderboardEntry{Rank: len(entries) + 1}
		if err := rows.Scan(&e.Username, &e.TotalPoints, &e.CompletedGoals, &e.CurrentStreak, &e.LongestStreak); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
