// database/achievements.go
package database

import (
	"context"
	"database/sql"

	"goal-tracker/models"
)

// ListAchievements tüm katalog, kullanıcının açtıkları işaretli.
func (s *Store) ListAchievements(ctx context.Context, userID int64) ([]models.Achievement, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT a.achievement_id, a.code, a.name, a.description, a.icon, a.points, a.category,
               ua.unlocked_at
        FROM achievements a
        LEFT JOIN user_achievements ua
               ON ua.achievement_id = a.achievement_id AND ua.user_id = $1
        ORDER BY a.category, a.name
    `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	achievements := []models.Achievement{}
	for rows.Next() {
		var a models.Achievement
		err := rows.Scan(&a.ID, &a.Code, &a.Name, &a.Description, &a.Icon, &a.Points, &a.Category, &a.UnlockedAt)
		if err != nil {
			return nil, err
		}
		a.Unlocked = a.UnlockedAt != nil
		achievements = append(achievements, a)
	}
	return achievements, rows.Err()
}

// UnlockAchievements sadece yeni açılan kodları döner; tekrar çağrılması zararsız.
func (s *Store) UnlockAchievements(ctx context.Context, userID int64, codes []string) ([]string, error) {
	unlocked := []string{}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for _, code := range codes {
			res, err := tx.ExecContext(ctx, `
                INSERT INTO user_achievements (user_id, achievement_id)
                SELECT $1, achievement_id FROM achievements WHERE code = $2
                ON CONFLICT (user_id, achievement_id) DO NOTHING
            `, userID, code)
			if err != nil {
				return err
			}
			if n, _ := res.RowsAffected(); n > 0 {
				unlocked = append(unlocked, code)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return unlocked, nil
}
