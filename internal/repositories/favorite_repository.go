package repositories

import (
	"context"
	"database/sql"
	"errors"

	"advertBack/internal/models"
)

type FavoriteRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

var errAlreadyFavorite = errors.New("favorite already present")

// Toggle removes the favorite when it exists and adds it otherwise, in one
// transaction. Losing an insert race to a concurrent toggle still reports
// added, since the pair is present either way.
func (r *FavoriteRepository) Toggle(ctx context.Context, userID, adID int) (string, error) {
	status := models.FavoriteAdded
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, r.Dialect.Rebind(`DELETE FROM favorites WHERE user_id = ? AND advertisement_id = ?`), userID, adID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n > 0 {
			status = models.FavoriteRemoved
			return nil
		}

		_, err = tx.ExecContext(ctx, r.Dialect.Rebind(`INSERT INTO favorites (user_id, advertisement_id) VALUES (?, ?)`), userID, adID)
		switch {
		case err == nil:
			return nil
		case isUniqueViolation(err):
			return errAlreadyFavorite
		case isMissingReferenceError(err):
			return models.ErrNoRecord
		default:
			return err
		}
	})
	if errors.Is(err, errAlreadyFavorite) {
		return models.FavoriteAdded, nil
	}
	if err != nil {
		return "", err
	}
	return status, nil
}

func (r *FavoriteRepository) IsFavorite(ctx context.Context, userID, adID int) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, r.Dialect.Rebind(`SELECT COUNT(*) FROM favorites WHERE user_id = ? AND advertisement_id = ?`),
		userID, adID).Scan(&n)
	return n > 0, err
}
