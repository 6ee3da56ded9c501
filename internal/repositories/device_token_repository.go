package repositories

import (
	"context"
	"database/sql"
	"time"
)

type DeviceTokenRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

// Save registers token for userID; registering the same pair twice is a no-op.
func (r *DeviceTokenRepository) Save(ctx context.Context, userID int, token string) error {
	_, err := r.DB.ExecContext(ctx, r.Dialect.Rebind(`INSERT INTO device_tokens (user_id, token, created_at) VALUES (?, ?, ?)`),
		userID, token, time.Now())
	if isUniqueViolation(err) {
		return nil
	}
	return mapWriteError(err)
}

func (r *DeviceTokenRepository) ListForUser(ctx context.Context, userID int) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, r.Dialect.Rebind(`SELECT token FROM device_tokens WHERE user_id = ? ORDER BY created_at DESC`), userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

func (r *DeviceTokenRepository) Delete(ctx context.Context, userID int, token string) error {
	_, err := r.DB.ExecContext(ctx, r.Dialect.Rebind(`DELETE FROM device_tokens WHERE user_id = ? AND token = ?`), userID, token)
	return err
}
