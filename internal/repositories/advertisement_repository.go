package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"advertBack/internal/models"
)

const advertisementColumns = `
		a.id, a.title, a.price, a.description, a.status, a.created_at,
		a.user_id, u.name, u.rating,
		a.category_id, c.name,
		a.region_id, r.name, r.city_name,
		(SELECT p.photo_url FROM advertisement_photos p
		  WHERE p.advertisement_id = a.id AND p.is_main = TRUE
		  ORDER BY p.id LIMIT 1)`

const advertisementJoins = `
		FROM advertisements a
		JOIN users u ON u.id = a.user_id
		JOIN categories c ON c.id = a.category_id
		JOIN regions r ON r.id = a.region_id`

type AdvertisementRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAdvertisement(row rowScanner) (models.Advertisement, error) {
	var (
		a           models.Advertisement
		description sql.NullString
		mainPhoto   sql.NullString
		user        models.User
		category    models.Category
		region      models.Region
	)
	err := row.Scan(
		&a.ID, &a.Title, &a.Price, &description, &a.Status, &a.CreatedAt,
		&a.UserID, &user.Name, &user.Rating,
		&a.CategoryID, &category.Name,
		&a.RegionID, &region.Name, &region.CityName,
		&mainPhoto,
	)
	if err != nil {
		return models.Advertisement{}, err
	}
	a.Description = description.String
	user.ID = a.UserID
	category.ID = a.CategoryID
	region.ID = a.RegionID
	a.User, a.Category, a.Region = &user, &category, &region
	if mainPhoto.Valid {
		a.Photos = []models.AdvertisementPhoto{{AdvertisementID: a.ID, PhotoURL: mainPhoto.String, IsMain: true}}
	}
	return a, nil
}

func (r *AdvertisementRepository) queryAdvertisements(ctx context.Context, query string, params ...interface{}) ([]models.Advertisement, error) {
	rows, err := r.DB.QueryContext(ctx, r.Dialect.Rebind(query), params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ads := []models.Advertisement{}
	for rows.Next() {
		a, err := scanAdvertisement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan advertisement: %w", err)
		}
		ads = append(ads, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ads, nil
}

// listingConditions builds the WHERE clause of the public listing. Only
// active advertisements are visible and every supplied criterion narrows.
func listingConditions(f models.ListingFilter) (string, []interface{}) {
	conditions := []string{"a.status = ?"}
	params := []interface{}{models.StatusActive}

	if f.SearchString != "" {
		pattern := "%" + escapeLike(f.SearchString) + "%"
		conditions = append(conditions, "(a.title LIKE ? OR a.description LIKE ?)")
		params = append(params, pattern, pattern)
	}
	if f.CategoryID != nil {
		conditions = append(conditions, "a.category_id = ?")
		params = append(params, *f.CategoryID)
	}
	if f.RegionID != nil {
		conditions = append(conditions, "a.region_id = ?")
		params = append(params, *f.RegionID)
	}
	if f.MinPrice != nil {
		conditions = append(conditions, "a.price >= ?")
		params = append(params, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		conditions = append(conditions, "a.price <= ?")
		params = append(params, *f.MaxPrice)
	}
	return " WHERE " + strings.Join(conditions, " AND "), params
}

// List returns one page of active advertisements matching f and the total
// number of matches.
func (r *AdvertisementRepository) List(ctx context.Context, f models.ListingFilter, limit, offset int) ([]models.Advertisement, int, error) {
	where, params := listingConditions(f)

	var total int
	countQuery := "SELECT COUNT(*) FROM advertisements a" + where
	if err := r.DB.QueryRowContext(ctx, r.Dialect.Rebind(countQuery), params...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count listing: %w", err)
	}
	if total == 0 || offset < 0 || offset >= total {
		return []models.Advertisement{}, total, nil
	}

	query := "SELECT" + advertisementColumns + advertisementJoins + where +
		" ORDER BY a.created_at DESC, a.id DESC LIMIT ? OFFSET ?"
	ads, err := r.queryAdvertisements(ctx, query, append(params, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	return ads, total, nil
}

// ListPage pages over every advertisement regardless of status, newest first.
func (r *AdvertisementRepository) ListPage(ctx context.Context, limit, offset int) ([]models.Advertisement, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM advertisements").Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 || offset < 0 || offset >= total {
		return []models.Advertisement{}, total, nil
	}
	query := "SELECT" + advertisementColumns + advertisementJoins +
		" ORDER BY a.created_at DESC, a.id DESC LIMIT ? OFFSET ?"
	ads, err := r.queryAdvertisements(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return ads, total, nil
}

func (r *AdvertisementRepository) ListByUser(ctx context.Context, userID int) ([]models.Advertisement, error) {
	query := "SELECT" + advertisementColumns + advertisementJoins +
		" WHERE a.user_id = ? ORDER BY a.created_at DESC, a.id DESC"
	return r.queryAdvertisements(ctx, query, userID)
}

func (r *AdvertisementRepository) ListByCategory(ctx context.Context, categoryID int) ([]models.Advertisement, error) {
	query := "SELECT" + advertisementColumns + advertisementJoins +
		" WHERE a.category_id = ? ORDER BY a.created_at DESC, a.id DESC"
	return r.queryAdvertisements(ctx, query, categoryID)
}

// ListFavorites returns the advertisements userID has marked, most recently
// published first.
func (r *AdvertisementRepository) ListFavorites(ctx context.Context, userID int) ([]models.Advertisement, error) {
	query := "SELECT" + advertisementColumns + advertisementJoins +
		" JOIN favorites f ON f.advertisement_id = a.id WHERE f.user_id = ? ORDER BY a.created_at DESC, a.id DESC"
	return r.queryAdvertisements(ctx, query, userID)
}

// GetByID loads the advertisement with its owner, category, region, every
// photo and the number of messages that reference it.
func (r *AdvertisementRepository) GetByID(ctx context.Context, id int) (models.Advertisement, error) {
	query := "SELECT" + advertisementColumns + advertisementJoins + " WHERE a.id = ?"
	a, err := scanAdvertisement(r.DB.QueryRowContext(ctx, r.Dialect.Rebind(query), id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Advertisement{}, models.ErrNoRecord
	}
	if err != nil {
		return models.Advertisement{}, err
	}

	photos, err := r.photos(ctx, r.DB, id)
	if err != nil {
		return models.Advertisement{}, err
	}
	a.Photos = photos

	err = r.DB.QueryRowContext(ctx, r.Dialect.Rebind(`SELECT COUNT(*) FROM messages WHERE advertisement_id = ?`), id).
		Scan(&a.MessageCount)
	if err != nil {
		return models.Advertisement{}, err
	}
	return a, nil
}

func (r *AdvertisementRepository) photos(ctx context.Context, q querier, adID int) ([]models.AdvertisementPhoto, error) {
	rows, err := q.QueryContext(ctx, r.Dialect.Rebind(`
		SELECT id, advertisement_id, photo_url, is_main
		FROM advertisement_photos
		WHERE advertisement_id = ?
		ORDER BY is_main DESC, id`), adID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	photos := []models.AdvertisementPhoto{}
	for rows.Next() {
		var p models.AdvertisementPhoto
		if err := rows.Scan(&p.ID, &p.AdvertisementID, &p.PhotoURL, &p.IsMain); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// Create stores the advertisement and its photos in one transaction.
func (r *AdvertisementRepository) Create(ctx context.Context, ad models.Advertisement) (models.Advertisement, error) {
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		id, err := insertID(ctx, tx, r.Dialect, `
			INSERT INTO advertisements (title, price, description, status, created_at, user_id, category_id, region_id)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			ad.Title, ad.Price, nullableString(ad.Description), ad.Status, ad.CreatedAt, ad.UserID, ad.CategoryID, ad.RegionID)
		if err != nil {
			return mapWriteError(err)
		}
		ad.ID = id

		for i := range ad.Photos {
			ad.Photos[i].AdvertisementID = id
			photoID, err := r.insertPhoto(ctx, tx, ad.Photos[i])
			if err != nil {
				return err
			}
			ad.Photos[i].ID = photoID
		}
		return nil
	})
	if err != nil {
		return models.Advertisement{}, err
	}
	return ad, nil
}

func (r *AdvertisementRepository) insertPhoto(ctx context.Context, q querier, p models.AdvertisementPhoto) (int, error) {
	return insertID(ctx, q, r.Dialect,
		`INSERT INTO advertisement_photos (advertisement_id, photo_url, is_main) VALUES (?, ?, ?)`,
		p.AdvertisementID, p.PhotoURL, p.IsMain)
}

func (r *AdvertisementRepository) exists(ctx context.Context, q querier, id int) (bool, error) {
	var n int
	err := q.QueryRowContext(ctx, r.Dialect.Rebind(`SELECT COUNT(*) FROM advertisements WHERE id = ?`), id).Scan(&n)
	return n > 0, err
}

func (r *AdvertisementRepository) Exists(ctx context.Context, id int) (bool, error) {
	return r.exists(ctx, r.DB, id)
}

// Update saves the editable fields. When newMain is set, the current main
// photos are replaced by it inside the same transaction and returned so the
// caller can release their files once the change is committed.
func (r *AdvertisementRepository) Update(ctx context.Context, ad models.Advertisement, newMain *models.AdvertisementPhoto) ([]models.AdvertisementPhoto, error) {
	var replaced []models.AdvertisementPhoto
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, r.Dialect.Rebind(`
			UPDATE advertisements
			SET title = ?, price = ?, description = ?, category_id = ?, region_id = ?
			WHERE id = ?`),
			ad.Title, ad.Price, nullableString(ad.Description), ad.CategoryID, ad.RegionID, ad.ID)
		if err != nil {
			return mapWriteError(err)
		}
		if err := r.requireAffected(ctx, tx, res, ad.ID); err != nil {
			return err
		}
		if newMain == nil {
			return nil
		}

		current, err := r.photos(ctx, tx, ad.ID)
		if err != nil {
			return err
		}
		for _, p := range current {
			if !p.IsMain {
				continue
			}
			if _, err := tx.ExecContext(ctx, r.Dialect.Rebind(`DELETE FROM advertisement_photos WHERE id = ?`), p.ID); err != nil {
				return err
			}
			replaced = append(replaced, p)
		}

		photo := *newMain
		photo.AdvertisementID = ad.ID
		photo.IsMain = true
		_, err = r.insertPhoto(ctx, tx, photo)
		return err
	})
	if err != nil {
		return nil, err
	}
	return replaced, nil
}

// UpdateCore is the API variant: it also reassigns the owner and leaves the
// description and photos alone.
func (r *AdvertisementRepository) UpdateCore(ctx context.Context, ad models.Advertisement) error {
	return withTx(ctx, r.DB, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, r.Dialect.Rebind(`
			UPDATE advertisements
			SET title = ?, price = ?, category_id = ?, user_id = ?, region_id = ?
			WHERE id = ?`),
			ad.Title, ad.Price, ad.CategoryID, ad.UserID, ad.RegionID, ad.ID)
		if err != nil {
			return mapWriteError(err)
		}
		return r.requireAffected(ctx, tx, res, ad.ID)
	})
}

// requireAffected distinguishes a missing row from an update that changed
// nothing; MySQL reports zero affected rows for both.
func (r *AdvertisementRepository) requireAffected(ctx context.Context, q querier, res sql.Result, id int) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	ok, err := r.exists(ctx, q, id)
	if err != nil {
		return err
	}
	if !ok {
		return models.ErrNoRecord
	}
	return nil
}

func (r *AdvertisementRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	res, err := r.DB.ExecContext(ctx, r.Dialect.Rebind(`UPDATE advertisements SET status = ? WHERE id = ?`), status, id)
	if err != nil {
		return err
	}
	return r.requireAffected(ctx, r.DB, res, id)
}

func (r *AdvertisementRepository) Delete(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, r.Dialect.Rebind(`DELETE FROM advertisements WHERE id = ?`), id)
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

// DeleteOwned removes the advertisement only when userID owns it.
func (r *AdvertisementRepository) DeleteOwned(ctx context.Context, id, userID int) (bool, error) {
	res, err := r.DB.ExecContext(ctx, r.Dialect.Rebind(`DELETE FROM advertisements WHERE id = ? AND user_id = ?`), id, userID)
	if err != nil {
		return false, mapWriteError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SellerPhone returns the owner's phone, nil when the owner has none.
func (r *AdvertisementRepository) SellerPhone(ctx context.Context, adID int) (*string, error) {
	var phone sql.NullString
	err := r.DB.QueryRowContext(ctx, r.Dialect.Rebind(`
		SELECT u.phone FROM advertisements a JOIN users u ON u.id = a.user_id WHERE a.id = ?`), adID).Scan(&phone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNoRecord
	}
	if err != nil {
		return nil, err
	}
	if !phone.Valid || strings.TrimSpace(phone.String) == "" {
		return nil, nil
	}
	return &phone.String, nil
}

func (r *AdvertisementRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM advertisements`).Scan(&n)
	return n, err
}

// InsertBatch stores many advertisements with their photos in a single
// transaction, reusing prepared statements.
func (r *AdvertisementRepository) InsertBatch(ctx context.Context, ads []models.Advertisement) error {
	if len(ads) == 0 {
		return nil
	}
	return withTx(ctx, r.DB, func(tx *sql.Tx) error {
		adQuery := r.Dialect.Rebind(`
			INSERT INTO advertisements (title, price, description, status, created_at, user_id, category_id, region_id)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if r.Dialect == Postgres {
			adQuery += " RETURNING id"
		}
		adStmt, err := tx.PrepareContext(ctx, adQuery)
		if err != nil {
			return err
		}
		defer adStmt.Close()

		photoStmt, err := tx.PrepareContext(ctx, r.Dialect.Rebind(
			`INSERT INTO advertisement_photos (advertisement_id, photo_url, is_main) VALUES (?, ?, ?)`))
		if err != nil {
			return err
		}
		defer photoStmt.Close()

		for _, ad := range ads {
			args := []interface{}{ad.Title, ad.Price, nullableString(ad.Description), ad.Status, ad.CreatedAt, ad.UserID, ad.CategoryID, ad.RegionID}
			var id int64
			if r.Dialect == Postgres {
				if err := adStmt.QueryRowContext(ctx, args...).Scan(&id); err != nil {
					return fmt.Errorf("insert advertisement %q: %w", ad.Title, err)
				}
			} else {
				res, err := adStmt.ExecContext(ctx, args...)
				if err != nil {
					return fmt.Errorf("insert advertisement %q: %w", ad.Title, err)
				}
				if id, err = res.LastInsertId(); err != nil {
					return err
				}
			}
			for _, p := range ad.Photos {
				if _, err := photoStmt.ExecContext(ctx, id, p.PhotoURL, p.IsMain); err != nil {
					return fmt.Errorf("insert photo for advertisement %d: %w", id, err)
				}
			}
		}
		return nil
	})
}
