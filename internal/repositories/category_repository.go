package repositories

import (
	"context"
	"database/sql"
	"errors"

	"advertBack/internal/models"
)

type CategoryRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func scanCategory(row rowScanner) (models.Category, error) {
	var (
		c          models.Category
		parentID   sql.NullInt64
		parentName sql.NullString
	)
	if err := row.Scan(&c.ID, &c.Name, &parentID, &parentName); err != nil {
		return models.Category{}, err
	}
	if parentID.Valid {
		id := int(parentID.Int64)
		c.ParentID = &id
	}
	c.ParentName = parentName.String
	return c, nil
}

func (r *CategoryRepository) queryCategories(ctx context.Context, query string, args ...interface{}) ([]models.Category, error) {
	rows, err := r.DB.QueryContext(ctx, r.Dialect.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// List returns every category ordered by name, with its parent's name.
func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	return r.queryCategories(ctx, `
		SELECT c.id, c.name, c.parent_id, p.name
		FROM categories c
		LEFT JOIN categories p ON p.id = c.parent_id
		ORDER BY c.name, c.id`)
}

// ListWithAdCounts is List plus the number of advertisements filed directly
// under each category.
func (r *CategoryRepository) ListWithAdCounts(ctx context.Context) ([]models.Category, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT c.id, c.name, c.parent_id, p.name,
		       (SELECT COUNT(*) FROM advertisements a WHERE a.category_id = c.id)
		FROM categories c
		LEFT JOIN categories p ON p.id = c.parent_id
		ORDER BY c.name, c.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var (
			c          models.Category
			parentID   sql.NullInt64
			parentName sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.Name, &parentID, &parentName, &c.AdCount); err != nil {
			return nil, err
		}
		if parentID.Valid {
			id := int(parentID.Int64)
			c.ParentID = &id
		}
		c.ParentName = parentName.String
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// ListLeaves returns categories that have a parent.
func (r *CategoryRepository) ListLeaves(ctx context.Context) ([]models.Category, error) {
	return r.queryCategories(ctx, `
		SELECT c.id, c.name, c.parent_id, p.name
		FROM categories c
		JOIN categories p ON p.id = c.parent_id
		ORDER BY c.id`)
}

// SearchByName returns up to limit categories whose name contains term.
func (r *CategoryRepository) SearchByName(ctx context.Context, term string, limit int) ([]models.Category, error) {
	return r.queryCategories(ctx, `
		SELECT c.id, c.name, c.parent_id, p.name
		FROM categories c
		LEFT JOIN categories p ON p.id = c.parent_id
		WHERE c.name LIKE ?
		ORDER BY c.name, c.id
		LIMIT ?`, "%"+escapeLike(term)+"%", limit)
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int) (models.Category, error) {
	c, err := scanCategory(r.DB.QueryRowContext(ctx, r.Dialect.Rebind(`
		SELECT c.id, c.name, c.parent_id, p.name
		FROM categories c
		LEFT JOIN categories p ON p.id = c.parent_id
		WHERE c.id = ?`), id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Category{}, models.ErrNoRecord
	}
	return c, err
}

func (r *CategoryRepository) Create(ctx context.Context, c models.Category) (models.Category, error) {
	id, err := insertID(ctx, r.DB, r.Dialect, `INSERT INTO categories (name, parent_id) VALUES (?, ?)`, c.Name, c.ParentID)
	if err != nil {
		return models.Category{}, mapWriteError(err)
	}
	c.ID = id
	return c, nil
}

func (r *CategoryRepository) Update(ctx context.Context, c models.Category) error {
	res, err := r.DB.ExecContext(ctx, r.Dialect.Rebind(`UPDATE categories SET name = ?, parent_id = ? WHERE id = ?`),
		c.Name, c.ParentID, c.ID)
	if err != nil {
		return mapWriteError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetByID(ctx, c.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, r.Dialect.Rebind(`DELETE FROM categories WHERE id = ?`), id)
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

func (r *CategoryRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&n)
	return n, err
}
