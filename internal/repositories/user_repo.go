package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"advertBack/internal/models"
)

type UserRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

const userColumns = `u.id, u.email, u.name, u.phone, u.password_hash, u.role, u.rating, u.region_id, u.created_at`

func scanUser(row rowScanner) (models.User, error) {
	var (
		u        models.User
		phone    sql.NullString
		regionID sql.NullInt64
	)
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &phone, &u.PasswordHash, &u.Role, &u.Rating, &regionID, &u.CreatedAt); err != nil {
		return models.User{}, err
	}
	if phone.Valid {
		u.Phone = &phone.String
	}
	if regionID.Valid {
		id := int(regionID.Int64)
		u.RegionID = &id
	}
	return u, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	id, err := insertID(ctx, r.DB, r.Dialect, `
		INSERT INTO users (email, name, phone, password_hash, role, rating, region_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.Email, user.Name, user.Phone, user.PasswordHash, user.Role, user.Rating, user.RegionID, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, models.ErrDuplicateEmail
		}
		return models.User{}, mapWriteError(err)
	}
	user.ID = id
	return user, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (models.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx, r.Dialect.Rebind(`SELECT `+userColumns+` FROM users u WHERE u.id = ?`), id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.ErrNoRecord
	}
	return u, err
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx, r.Dialect.Rebind(`SELECT `+userColumns+` FROM users u WHERE u.email = ?`), email))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.ErrNoRecord
	}
	return u, err
}

// EmailExists is the seeding precondition for fixed accounts.
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, r.Dialect.Rebind(`SELECT COUNT(*) FROM users WHERE email = ?`), email).Scan(&n)
	return n > 0, err
}

// ListUsers returns users ordered by name with their region and number of
// advertisements.
func (r *UserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+userColumns+`, rg.name, rg.city_name,
		       (SELECT COUNT(*) FROM advertisements a WHERE a.user_id = u.id)
		FROM users u
		LEFT JOIN regions rg ON rg.id = u.region_id
		ORDER BY u.name, u.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var (
			u          models.User
			phone      sql.NullString
			regionID   sql.NullInt64
			regionName sql.NullString
			cityName   sql.NullString
		)
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &phone, &u.PasswordHash, &u.Role, &u.Rating, &regionID, &u.CreatedAt,
			&regionName, &cityName, &u.AdCount); err != nil {
			return nil, err
		}
		if phone.Valid {
			u.Phone = &phone.String
		}
		if regionID.Valid {
			id := int(regionID.Int64)
			u.RegionID = &id
			u.Region = &models.Region{ID: id, Name: regionName.String, CityName: cityName.String}
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) UpdateUser(ctx context.Context, id int, upd models.UserUpdate) error {
	res, err := r.DB.ExecContext(ctx, r.Dialect.Rebind(`UPDATE users SET email = ?, name = ? WHERE id = ?`),
		upd.Email, upd.Name, id)
	if err != nil {
		if isUniqueViolation(err) {
			return models.ErrDuplicateEmail
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		_, err = r.GetUserByID(ctx, id)
		return err
	}
	return nil
}

func (r *UserRepository) DeleteUser(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, r.Dialect.Rebind(`DELETE FROM users WHERE id = ?`), id)
	if err != nil {
		return mapWriteError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrNoRecord
	}
	return nil
}

// FirstUser returns the lowest user id and its region, 0 when unset.
func (r *UserRepository) FirstUser(ctx context.Context) (models.FirstUser, error) {
	var (
		fu       models.FirstUser
		regionID sql.NullInt64
	)
	err := r.DB.QueryRowContext(ctx, `SELECT id, region_id FROM users ORDER BY id LIMIT 1`).Scan(&fu.UserID, &regionID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.FirstUser{}, models.ErrNoRecord
	}
	if err != nil {
		return models.FirstUser{}, err
	}
	fu.RegionID = int(regionID.Int64)
	return fu, nil
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

// IDs returns every user id in ascending order.
func (r *UserRepository) IDs(ctx context.Context) ([]int, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// InsertBatch writes users with one multi-row INSERT inside a transaction.
func (r *UserRepository) InsertBatch(ctx context.Context, users []models.User) error {
	if len(users) == 0 {
		return nil
	}
	rows := make([]string, 0, len(users))
	args := make([]interface{}, 0, len(users)*8)
	for _, u := range users {
		rows = append(rows, "(?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args, u.Email, u.Name, u.Phone, u.PasswordHash, u.Role, u.Rating, u.RegionID, u.CreatedAt)
	}
	query := `INSERT INTO users (email, name, phone, password_hash, role, rating, region_id, created_at) VALUES ` +
		strings.Join(rows, ", ")

	return withTx(ctx, r.DB, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, r.Dialect.Rebind(query), args...); err != nil {
			return fmt.Errorf("insert %d users: %w", len(users), err)
		}
		return nil
	})
}
