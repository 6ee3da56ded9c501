package models

import "time"

// ChatSummary is one row of the inbox: everything exchanged with one other user.
type ChatSummary struct {
	InterlocutorID  int            `json:"interlocutor_id"`
	Interlocutor    *User          `json:"interlocutor,omitempty"`
	LastMessage     string         `json:"last_message"`
	LastMessageDate time.Time      `json:"last_message_date"`
	FormattedDate   string         `json:"formatted_date"`
	UnreadCount     int            `json:"unread_count"`
	Advertisement   *Advertisement `json:"advertisement,omitempty"`
	MessageCount    int            `json:"message_count"`
}

type ConversationView struct {
	OtherUser     User      `json:"other_user"`
	CurrentUserID int       `json:"current_user_id"`
	AdID          *int      `json:"ad_id,omitempty"`
	AdTitle       string    `json:"ad_title,omitempty"`
	Messages      []Message `json:"messages"`
}
