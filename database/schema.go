// database/schema.go
package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"goal-tracker/currency"
	"goal-tracker/gamification"
)

var schema = []struct {
	name string
	ddl  string
}{
	{"users", `
        CREATE TABLE IF NOT EXISTS users (
            user_id SERIAL PRIMARY KEY,
            username VARCHAR(50) UNIQUE NOT NULL,
            email VARCHAR(100) UNIQUE NOT NULL,
            password_hash VARCHAR(255) NOT NULL,
            full_name VARCHAR(100) NOT NULL DEFAULT '',
            avatar_url VARCHAR(255),
            default_currency VARCHAR(3) NOT NULL DEFAULT 'BRL' CHECK (default_currency IN ('USD', 'BRL', 'EUR')),
            timezone VARCHAR(50) NOT NULL DEFAULT 'America/Sao_Paulo',
            language VARCHAR(10) NOT NULL DEFAULT 'pt-BR',
            theme VARCHAR(10) NOT NULL DEFAULT 'light' CHECK (theme IN ('light', 'dark', 'auto')),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            last_login TIMESTAMPTZ,
            is_active BOOLEAN NOT NULL DEFAULT TRUE
        )`},
	{"goals", `
        CREATE TABLE IF NOT EXISTS goals (
            goal_id SERIAL PRIMARY KEY,
            user_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
            title VARCHAR(200) NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            category VARCHAR(50) NOT NULL DEFAULT 'other',
            priority VARCHAR(10) NOT NULL DEFAULT 'medium' CHECK (priority IN ('low', 'medium', 'high', 'critical')),
            status VARCHAR(20) NOT NULL DEFAULT 'not_started' CHECK (status IN ('not_started', 'in_progress', 'completed', 'overdue', 'cancelled')),
            is_financial BOOLEAN NOT NULL DEFAULT FALSE,
            target_value NUMERIC(15, 2),
            current_value NUMERIC(15, 2) NOT NULL DEFAULT 0,
            currency VARCHAR(3) CHECK (currency IN ('USD', 'BRL', 'EUR')),
            start_date DATE NOT NULL,
            due_date DATE NOT NULL,
            completed_at TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`},
	{"subgoals", `
        CREATE TABLE IF NOT EXISTS subgoals (
            subgoal_id SERIAL PRIMARY KEY,
            goal_id INTEGER NOT NULL REFERENCES goals(goal_id) ON DELETE CASCADE,
            title VARCHAR(200) NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            target_value NUMERIC(15, 2),
            current_value NUMERIC(15, 2) NOT NULL DEFAULT 0,
            status VARCHAR(20) NOT NULL DEFAULT 'not_started' CHECK (status IN ('not_started', 'in_progress', 'completed', 'cancelled')),
            due_date DATE NOT NULL,
            completed_at TIMESTAMPTZ,
            position INTEGER NOT NULL DEFAULT 0,
            depends_on_subgoal_id INTEGER REFERENCES subgoals(subgoal_id) ON DELETE SET NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`},
	{"financial_transactions", `
        CREATE TABLE IF NOT EXISTS financial_transactions (
            transaction_id SERIAL PRIMARY KEY,
            goal_id INTEGER NOT NULL REFERENCES goals(goal_id) ON DELETE CASCADE,
            user_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
            amount NUMERIC(15, 2) NOT NULL,
            currency VARCHAR(3) NOT NULL CHECK (currency IN ('USD', 'BRL', 'EUR')),
            converted_amount NUMERIC(15, 2) NOT NULL,
            conversion_rate NUMERIC(10, 6) NOT NULL DEFAULT 1,
            transaction_type VARCHAR(20) NOT NULL DEFAULT 'deposit' CHECK (transaction_type IN ('deposit', 'withdrawal', 'adjustment')),
            description TEXT NOT NULL DEFAULT '',
            transaction_date DATE NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`},
	{"currency_rates", `
        CREATE TABLE IF NOT EXISTS currency_rates (
            rate_id SERIAL PRIMARY KEY,
            from_currency VARCHAR(3) NOT NULL,
            to_currency VARCHAR(3) NOT NULL,
            rate NUMERIC(10, 6) NOT NULL CHECK (rate > 0),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            UNIQUE (from_currency, to_currency)
        )`},
	{"achievements", `
        CREATE TABLE IF NOT EXISTS achievements (
            achievement_id SERIAL PRIMARY KEY,
            code VARCHAR(50) UNIQUE NOT NULL,
            name VARCHAR(100) NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            icon VARCHAR(50) NOT NULL DEFAULT '',
            points INTEGER NOT NULL DEFAULT 0,
            category VARCHAR(50) NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`},
	{"user_achievements", `
        CREATE TABLE IF NOT EXISTS user_achievements (
            user_achievement_id SERIAL PRIMARY KEY,
            user_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
            achievement_id INTEGER NOT NULL REFERENCES achievements(achievement_id) ON DELETE CASCADE,
            unlocked_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            UNIQUE (user_id, achievement_id)
        )`},
	{"user_statistics", `
        CREATE TABLE IF NOT EXISTS user_statistics (
            user_id INTEGER PRIMARY KEY REFERENCES users(user_id) ON DELETE CASCADE,
            total_goals INTEGER NOT NULL DEFAULT 0,
            completed_goals INTEGER NOT NULL DEFAULT 0,
            total_points INTEGER NOT NULL DEFAULT 0,
            current_streak INTEGER NOT NULL DEFAULT 0,
            longest_streak INTEGER NOT NULL DEFAULT 0,
            total_saved_amount NUMERIC(15, 2) NOT NULL DEFAULT 0,
            last_calculated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`},
	{"activity_logs", `
        CREATE TABLE IF NOT EXISTS activity_logs (
            log_id SERIAL PRIMARY KEY,
            user_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
            goal_id INTEGER REFERENCES goals(goal_id) ON DELETE SET NULL,
            action_type VARCHAR(50) NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            ip_address VARCHAR(45) NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`},
}

const indexes = `
        CREATE INDEX IF NOT EXISTS idx_goals_user_status ON goals(user_id, status);
        CREATE INDEX IF NOT EXISTS idx_goals_due_date ON goals(due_date);
        CREATE INDEX IF NOT EXISTS idx_subgoals_goal ON subgoals(goal_id);
        CREATE INDEX IF NOT EXISTS idx_transactions_goal ON financial_transactions(goal_id);
        CREATE INDEX IF NOT EXISTS idx_transactions_date ON financial_transactions(transaction_date);
        CREATE INDEX IF NOT EXISTS idx_user_achievements_user ON user_achievements(user_id);
        CREATE INDEX IF NOT EXISTS idx_activity_logs_user ON activity_logs(user_id, created_at);
`

// InitDB tabloları oluşturur ve kur / başarım tohumlarını ekler.
// Tekrar çalıştırmak güvenlidir.
func InitDB(ctx context.Context, s *Store) error {
	for _, t := range schema {
		if _, err := s.db.ExecContext(ctx, t.ddl); err != nil {
			return fmt.Errorf("%s tablosu oluşturulamadı: %w", t.name, err)
		}
		zap.L().Debug("Tablo hazır", zap.String("table", t.name))
	}

	if _, err := s.db.ExecContext(ctx, indexes); err != nil {
		return fmt.Errorf("indeksler oluşturulamadı: %w", err)
	}

	for _, r := range currency.Default.Rates() {
		_, err := s.db.ExecContext(ctx, `
            INSERT INTO currency_rates (from_currency, to_currency, rate)
            VALUES ($1, $2, $3)
            ON CONFLICT (from_currency, to_currency) DO NOTHING
        `, r.From, r.To, r.Rate)
		if err != nil {
			return fmt.Errorf("kur tohumu eklenemedi: %w", err)
		}
	}

	for _, a := range gamification.Catalog {
		_, err := s.db.ExecContext(ctx, `
            INSERT INTO achievements (code, name, description, icon, points, category)
            VALUES ($1, $2, $3, $4, $5, $6)
            ON CONFLICT (code) DO UPDATE
            SET name = EXCLUDED.name,
                description = EXCLUDED.description,
                icon = EXCLUDED.icon,
                points = EXCLUDED.points,
                category = EXCLUDED.category
        `, a.Code, a.Name, a.Description, a.Icon, a.Points, a.Category)
		if err != nil {
			return fmt.Errorf("başarım tohumu eklenemedi: %w", err)
		}
	}

	zap.L().Info("Veritabanı şeması hazır", zap.Int("tables", len(schema)))
	return nil
}
