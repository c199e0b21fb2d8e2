// database/goals.go
package database

import (
	"context"
	"strconv"
	"strings"

	"goal-tracker/models"
)

const goalColumns = `
    g.goal_id, g.user_id, g.title, g.description, g.category, g.priority, g.status,
    g.is_financial, g.target_value, g.current_value, g.currency, g.start_date, g.due_date,
    g.completed_at, g.created_at, g.updated_at`

func goalDest(g *models.Goal) []interface{} {
	return []interface{}{
		&g.ID, &g.UserID, &g.Title, &g.Description, &g.Category, &g.Priority, &g.Status,
		&g.IsFinancial, &g.TargetValue, &g.CurrentValue, &g.Currency, &g.StartDate, &g.DueDate,
		&g.CompletedAt, &g.CreatedAt, &g.UpdatedAt,
	}
}

func (s *Store) ListGoals(ctx context.Context, userID int64, f models.GoalFilter) ([]models.Goal, error) {
	query := `
        SELECT ` + goalColumns + `,
               COALESCE(sg.total, 0), COALESCE(sg.completed, 0), COALESCE(ft.contributed, 0)
        FROM goals g
        LEFT JOIN (
            SELECT goal_id,
                   COUNT(*) AS total,
                   COUNT(*) FILTER (WHERE status = 'completed') AS completed
            FROM subgoals
            GROUP BY goal_id
        ) sg ON sg.goal_id = g.goal_id
        LEFT JOIN (
            SELECT goal_id, SUM(converted_amount) AS contributed
            FROM financial_transactions
            WHERE transaction_type = 'deposit'
            GROUP BY goal_id
        ) ft ON ft.goal_id = g.goal_id
        WHERE g.user_id = $1
    `

	args := []interface{}{userID}
	argCount := 2

	if f.Status != "" {
		query += ` AND g.status = $` + strconv.Itoa(argCount)
		args = append(args, f.Status)
		argCount++
	}
	if f.Category != "" {
		query += ` AND g.category = $` + strconv.Itoa(argCount)
		args = append(args, f.Category)
		argCount++
	}
	if f.Priority != "" {
		query += ` AND g.priority = $` + strconv.Itoa(argCount)
		args = append(args, f.Priority)
		argCount++
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		n := strconv.Itoa(argCount)
		query += ` AND (g.title ILIKE $` + n + ` OR g.description ILIKE $` + n + `)`
		args = append(args, "%"+escapeLike(search)+"%")
		argCount++
	}

	// Sıralama, "progress" hesaplandıktan sonra handler'da yapılır
	switch f.Sort {
	case "priority":
		query += ` ORDER BY CASE g.priority
                       WHEN 'critical' THEN 0 WHEN 'high' THEN 1
                       WHEN 'medium' THEN 2 ELSE 3 END, g.due_date ASC`
	case "created":
		query += ` ORDER BY g.created_at DESC`
	default:
		query += ` ORDER BY g.due_date ASC`
	}
	query += `, g.goal_id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := []models.Goal{}
	for rows.Next() {
		var g models.Goal
		dest := append(goalDest(&g), &g.TotalSubgoals, &g.CompletedSubgoals, &g.TotalContributed)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// GetGoal sahibi olmayan kullanıcı için de ErrNotFound döner.
func (s *Store) GetGoal(ctx context.Context, userID, goalID int64) (*models.Goal, error) {
	var g models.Goal
	err := s.db.QueryRowContext(ctx, `
        SELECT `+goalColumns+`
        FROM goals g
        WHERE g.goal_id = $1 AND g.user_id = $2
    `, goalID, userID).Scan(goalDest(&g)...)
	if err != nil {
		return nil, notFound(err)
	}
	return &g, nil
}

func (s *Store) CreateGoal(ctx context.Context, g *models.Goal) error {
	return s.db.QueryRowContext(ctx, `
        INSERT INTO goals
            (user_id, title, description, category, priority, status,
             is_financial, target_value, current_value, currency, start_date, due_date)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING goal_id, created_at, updated_at
    `,
		g.UserID, g.Title, g.Description, g.Category, g.Priority, g.Status,
		g.IsFinancial, g.TargetValue, g.CurrentValue, g.Currency, g.StartDate, g.DueDate,
	).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
}

// UpdateGoal değiştirilebilir tüm alanları yazar.
func (s *Store) UpdateGoal(ctx context.Context, g *models.Goal) error {
	res, err := s.db.ExecContext(ctx, `
        UPDATE goals
        SET title = $1,
            description = $2,
            category = $3,
            priority = $4,
            status = $5,
            start_date = $6,
            due_date = $7,
            target_value = $8,
            current_value = $9,
            completed_at = $10,
            updated_at = NOW()
        WHERE goal_id = $11 AND user_id = $12
    `,
		g.Title, g.Description, g.Category, g.Priority, g.Status,
		g.StartDate, g.DueDate, g.TargetValue, g.CurrentValue, g.CompletedAt,
		g.ID, g.UserID,
	)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

func (s *Store) DeleteGoal(ctx context.Context, userID, goalID int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM goals WHERE goal_id = $1 AND user_id = $2`, goalID, userID)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

// GoalsDueBetween takvim görünümü için, uçlar dahil.
func (s *Store) GoalsDueBetween(ctx context.Context, userID int64, from, to models.Date) ([]models.Goal, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT `+goalColumns+`
        FROM goals g
        WHERE g.user_id = $1 AND g.due_date BETWEEN $2 AND $3
        ORDER BY g.due_date ASC, g.goal_id ASC
    `, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := []models.Goal{}
	for rows.Next() {
		var g models.Goal
		if err := rows.Scan(goalDest(&g)...); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
