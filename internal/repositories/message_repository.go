package repositories

import (
	"context"
	"database/sql"
	"time"

	"advertBack/internal/models"
)

type MessageRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

const messageSelect = `
		SELECT m.id, m.text, m.sent_at, m.is_read, m.from_user_id, m.to_user_id, m.advertisement_id,
		       fu.name, fu.rating, tu.name, tu.rating, a.title, a.price, a.status
		FROM messages m
		JOIN users fu ON fu.id = m.from_user_id
		JOIN users tu ON tu.id = m.to_user_id
		LEFT JOIN advertisements a ON a.id = m.advertisement_id`

func (r *MessageRepository) queryMessages(ctx context.Context, query string, args ...interface{}) ([]models.Message, error) {
	rows, err := r.DB.QueryContext(ctx, r.Dialect.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var (
			m        models.Message
			adID     sql.NullInt64
			from, to models.User
			adTitle  sql.NullString
			adPrice  sql.NullFloat64
			adStatus sql.NullString
		)
		if err := rows.Scan(&m.ID, &m.Text, &m.SentAt, &m.IsRead, &m.FromUserID, &m.ToUserID, &adID,
			&from.Name, &from.Rating, &to.Name, &to.Rating, &adTitle, &adPrice, &adStatus); err != nil {
			return nil, err
		}
		from.ID, to.ID = m.FromUserID, m.ToUserID
		m.FromUser, m.ToUser = &from, &to
		if adID.Valid {
			id := int(adID.Int64)
			m.AdvertisementID = &id
			if adTitle.Valid {
				m.Advertisement = &models.Advertisement{ID: id, Title: adTitle.String, Price: adPrice.Float64, Status: adStatus.String}
			}
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// ListForUser returns every message sent or received by userID, newest first.
func (r *MessageRepository) ListForUser(ctx context.Context, userID int) ([]models.Message, error) {
	return r.queryMessages(ctx, messageSelect+`
		WHERE m.from_user_id = ? OR m.to_user_id = ?
		ORDER BY m.sent_at DESC, m.id DESC`, userID, userID)
}

// Conversation returns the messages exchanged between two users, oldest first.
func (r *MessageRepository) Conversation(ctx context.Context, userID, otherID int) ([]models.Message, error) {
	return r.queryMessages(ctx, messageSelect+`
		WHERE (m.from_user_id = ? AND m.to_user_id = ?) OR (m.from_user_id = ? AND m.to_user_id = ?)
		ORDER BY m.sent_at ASC, m.id ASC`, userID, otherID, otherID, userID)
}

func (r *MessageRepository) Create(ctx context.Context, m models.Message) (models.Message, error) {
	if m.SentAt.IsZero() {
		m.SentAt = time.Now()
	}
	id, err := insertID(ctx, r.DB, r.Dialect, `
		INSERT INTO messages (text, sent_at, is_read, from_user_id, to_user_id, advertisement_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.Text, m.SentAt, false, m.FromUserID, m.ToUserID, m.AdvertisementID)
	if err != nil {
		return models.Message{}, mapWriteError(err)
	}
	m.ID = id
	m.IsRead = false
	return m, nil
}

// MarkRead flags every unread message from fromID to toID as read.
func (r *MessageRepository) MarkRead(ctx context.Context, fromID, toID int) (int, error) {
	res, err := r.DB.ExecContext(ctx, r.Dialect.Rebind(`
		UPDATE messages SET is_read = TRUE
		WHERE from_user_id = ? AND to_user_id = ? AND is_read = FALSE`), fromID, toID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}
