// database/transactions.go
package database

import (
	"context"
	"database/sql"

	"goal-tracker/models"
)

func (s *Store) ListTransactions(ctx context.Context, goalID int64) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT transaction_id, goal_id, user_id, amount, currency, converted_amount,
               conversion_rate, transaction_type, description, transaction_date, created_at
        FROM financial_transactions
        WHERE goal_id = $1
        ORDER BY transaction_date DESC, transaction_id DESC
    `, goalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txs := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		err := rows.Scan(
			&t.ID, &t.GoalID, &t.UserID, &t.Amount, &t.Currency, &t.ConvertedAmount,
			&t.ConversionRate, &t.Type, &t.Description, &t.TransactionDate, &t.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

// AddTransaction kaydı ekler ve hedefin current_value değerini aynı
// transaction içinde günceller.
func (s *Store) AddTransaction(ctx context.Context, t *models.Transaction) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
            INSERT INTO financial_transactions
                (goal_id, user_id, amount, currency, converted_amount, conversion_rate,
                 transaction_type, description, transaction_date)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
            RETURNING transaction_id, created_at
        `,
			t.GoalID, t.UserID, t.Amount, t.Currency, t.ConvertedAmount, t.ConversionRate,
			t.Type, t.Description, t.TransactionDate,
		).Scan(&t.ID, &t.CreatedAt)
		if err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `
            UPDATE goals
            SET current_value = current_value + $1, updated_at = NOW()
            WHERE goal_id = $2 AND user_id = $3
        `, t.Delta(), t.GoalID, t.UserID)
		if err != nil {
			return err
		}
		return expectAffected(res)
	})
}
