// database/users.go
package database

import (
	"context"
	"database/sql"
	"time"

	"goal-tracker/models"
)

const userColumns = `
    user_id, username, email, password_hash, full_name, avatar_url,
    default_currency, timezone, language, theme, created_at, last_login`

func scanUser(sc rowScanner) (*models.User, error) {
	var u models.User
	err := sc.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName, &u.AvatarURL,
		&u.DefaultCurrency, &u.Timezone, &u.Language, &u.Theme, &u.CreatedAt, &u.LastLogin,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// CreateUser kullanıcıyı ve boş istatistik kaydını birlikte ekler.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
            INSERT INTO users (username, email, password_hash, full_name)
            VALUES ($1, $2, $3, $4)
            RETURNING user_id, default_currency, timezone, language, theme, created_at
        `, u.Username, u.Email, u.PasswordHash, u.FullName).Scan(
			&u.ID, &u.DefaultCurrency, &u.Timezone, &u.Language, &u.Theme, &u.CreatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicate
			}
			return err
		}

		_, err = tx.ExecContext(ctx, `INSERT INTO user_statistics (user_id) VALUES ($1)`, u.ID)
		return err
	})
}

// UserByLogin email veya kullanıcı adıyla arar.
func (s *Store) UserByLogin(ctx context.Context, login string) (*models.User, error) {
	return scanUser(s.db.QueryRowContext(ctx, `
        SELECT `+userColumns+`
        FROM users
        WHERE (email = $1 OR username = $1) AND is_active = TRUE
    `, login))
}

func (s *Store) UserByID(ctx context.Context, id int64) (*models.User, error) {
	return scanUser(s.db.QueryRowContext(ctx, `
        SELECT `+userColumns+`
        FROM users
        WHERE user_id = $1 AND is_active = TRUE
    `, id))
}

func (s *Store) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `UPDATE users SET last_login = $1 WHERE user_id = $2`, at, id)
	return err
}

func (s *Store) UpdateProfile(ctx context.Context, id int64, p models.ProfileUpdate) error {
	res, err := s.db.ExecContext(ctx, `
        UPDATE users
        SET full_name = COALESCE($1, full_name),
            avatar_url = COALESCE($2, avatar_url),
            default_currency = COALESCE($3, default_currency),
            timezone = COALESCE($4, timezone),
            language = COALESCE($5, language),
            theme = COALESCE($6, theme),
            updated_at = NOW()
        WHERE user_id = $7
    `, p.FullName, p.AvatarURL, p.DefaultCurrency, p.Timezone, p.Language, p.Theme, id)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

func (s *Store) UpdatePassword(ctx context.Context, id int64, hash string) error {
	res, err := s.db.ExecContext(ctx, `
        UPDATE users SET password_hash = $1, updated_at = NOW() WHERE user_id = $2
    `, hash, id)
	if err != nil {
		return err
	}
	return expectAffected(res)
}
