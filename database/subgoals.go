// database/subgoals.go
package database

import (
	"context"

	"goal-tracker/models"
)

const subgoalColumns = `
    subgoal_id, goal_id, title, description, target_value, current_value, status,
    due_date, completed_at, position, depends_on_subgoal_id, created_at, updated_at`

func subgoalDest(sg *models.Subgoal) []interface{} {
	return []interface{}{
		&sg.ID, &sg.GoalID, &sg.Title, &sg.Description, &sg.TargetValue, &sg.CurrentValue, &sg.Status,
		&sg.DueDate, &sg.CompletedAt, &sg.Position, &sg.DependsOnSubgoalID, &sg.CreatedAt, &sg.UpdatedAt,
	}
}

func (s *Store) ListSubgoals(ctx context.Context, goalID int64) ([]models.Subgoal, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT `+subgoalColumns+`
        FROM subgoals
        WHERE goal_id = $1
        ORDER BY position ASC, subgoal_id ASC
    `, goalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subgoals := []models.Subgoal{}
	for rows.Next() {
		var sg models.Subgoal
		if err := rows.Scan(subgoalDest(&sg)...); err != nil {
			return nil, err
		}
		subgoals = append(subgoals, sg)
	}
	return subgoals, rows.Err()
}

func (s *Store) GetSubgoal(ctx context.Context, goalID, subgoalID int64) (*models.Subgoal, error) {
	var sg models.Subgoal
	err := s.db.QueryRowContext(ctx, `
        SELECT `+subgoalColumns+`
        FROM subgoals
        WHERE subgoal_id = $1 AND goal_id = $2
    `, subgoalID, goalID).Scan(subgoalDest(&sg)...)
	if err != nil {
		return nil, notFound(err)
	}
	return &sg, nil
}

// CreateSubgoal pozisyonu hedefteki en büyük pozisyonun bir fazlası olur.
func (s *Store) CreateSubgoal(ctx context.Context, sg *models.Subgoal) error {
	return s.db.QueryRowContext(ctx, `
        INSERT INTO subgoals
            (goal_id, title, description, due_date, target_value, current_value,
             depends_on_subgoal_id, status, position)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8,
            (SELECT COALESCE(MAX(position), 0) + 1 FROM subgoals WHERE goal_id = $1))
        RETURNING subgoal_id, position, created_at, updated_at
    `,
		sg.GoalID, sg.Title, sg.Description, sg.DueDate, sg.TargetValue, sg.CurrentValue,
		sg.DependsOnSubgoalID, sg.Status,
	).Scan(&sg.ID, &sg.Position, &sg.CreatedAt, &sg.UpdatedAt)
}

func (s *Store) UpdateSubgoal(ctx context.Context, sg *models.Subgoal) error {
	res, err := s.db.ExecContext(ctx, `
        UPDATE subgoals
        SET title = $1,
            description = $2,
            status = $3,
            due_date = $4,
            current_value = $5,
            completed_at = $6,
            updated_at = NOW()
        WHERE subgoal_id = $7 AND goal_id = $8
    `,
		sg.Title, sg.Description, sg.Status, sg.DueDate, sg.CurrentValue, sg.CompletedAt,
		sg.ID, sg.GoalID,
	)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

func (s *Store) DeleteSubgoal(ctx context.Context, goalID, subgoalID int64) error {
	res, err := s.db.ExecContext(ctx, `
        DELETE FROM subgoals WHERE subgoal_id = $1 AND goal_id = $2
    `, subgoalID, goalID)
	if err != nil {
		return err
	}
	return expectAffected(res)
}
