package repositories

import (
	"context"
	"database/sql"
	"errors"

	"advertBack/internal/models"
)

type RegionRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

// List orders regions by city when byCity is set, otherwise by region name.
func (r *RegionRepository) List(ctx context.Context, byCity bool) ([]models.Region, error) {
	query := `SELECT id, name, city_name FROM regions ORDER BY name, city_name, id`
	if byCity {
		query = `SELECT id, name, city_name FROM regions ORDER BY city_name, id`
	}
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	regions := []models.Region{}
	for rows.Next() {
		var reg models.Region
		if err := rows.Scan(&reg.ID, &reg.Name, &reg.CityName); err != nil {
			return nil, err
		}
		regions = append(regions, reg)
	}
	return regions, rows.Err()
}

func (r *RegionRepository) GetByID(ctx context.Context, id int) (models.Region, error) {
	var reg models.Region
	err := r.DB.QueryRowContext(ctx, r.Dialect.Rebind(`SELECT id, name, city_name FROM regions WHERE id = ?`), id).
		Scan(&reg.ID, &reg.Name, &reg.CityName)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Region{}, models.ErrNoRecord
	}
	return reg, err
}

func (r *RegionRepository) Create(ctx context.Context, reg models.Region) (models.Region, error) {
	id, err := insertID(ctx, r.DB, r.Dialect, `INSERT INTO regions (name, city_name) VALUES (?, ?)`, reg.Name, reg.CityName)
	if err != nil {
		return models.Region{}, err
	}
	reg.ID = id
	return reg, nil
}

func (r *RegionRepository) Update(ctx context.Context, reg models.Region) error {
	res, err := r.DB.ExecContext(ctx, r.Dialect.Rebind(`UPDATE regions SET name = ?, city_name = ? WHERE id = ?`),
		reg.Name, reg.CityName, reg.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		_, err = r.GetByID(ctx, reg.ID)
		return err
	}
	return nil
}

func (r *RegionRepository) Delete(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, r.Dialect.Rebind(`DELETE FROM regions WHERE id = ?`), id)
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

func (r *RegionRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM regions`).Scan(&n)
	return n, err
}

// IDs returns every region id, used to scatter generated users.
func (r *RegionRepository) IDs(ctx context.Context) ([]int, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id FROM regions ORDER BY id`)
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
