// database/rates.go
package database

import (
	"context"

	"goal-tracker/models"
)

func (s *Store) ListRates(ctx context.Context) ([]models.Rate, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT from_currency, to_currency, rate, updated_at
        FROM currency_rates
        ORDER BY from_currency, to_currency
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rates := []models.Rate{}
	for rows.Next() {
		var r models.Rate
		if err := rows.Scan(&r.From, &r.To, &r.Rate, &r.UpdatedAt); err != nil {
			return nil, err
		}
		rates = append(rates, r)
	}
	return rates, rows.Err()
}

func (s *Store) UpsertRate(ctx context.Context, r models.Rate) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO currency_rates (from_currency, to_currency, rate)
        VALUES ($1, $2, $3)
        ON CONFLICT (from_currency, to_currency)
        DO UPDATE SET rate = EXCLUDED.rate, updated_at = NOW()
    `, r.From, r.To, r.Rate)
	return err
}
