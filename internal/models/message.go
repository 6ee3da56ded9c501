package models

import "time"

type Message struct {
	ID              int            `json:"id"`
	Text            string         `json:"text"`
	SentAt          time.Time      `json:"sent_at"`
	IsRead          bool           `json:"is_read"`
	FromUserID      int            `json:"from_user_id"`
	ToUserID        int            `json:"to_user_id"`
	AdvertisementID *int           `json:"advertisement_id,omitempty"`
	FromUser        *User          `json:"from_user,omitempty"`
	ToUser          *User          `json:"to_user,omitempty"`
	Advertisement   *Advertisement `json:"advertisement,omitempty"`
}
