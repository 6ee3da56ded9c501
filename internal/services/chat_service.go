package services

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"advertBack/internal/events"
	"advertBack/internal/models"
	"advertBack/internal/notify"

	"go.uber.org/zap"
)

type ChatService struct {
	Messages     MessageStore
	Users        UserStore
	Ads          AdvertisementStore
	DeviceTokens DeviceTokenStore
	Push         MessagePusher
	Notifier     notify.Notifier
	Events       events.Publisher
	Now          func() time.Time
}

func (s *ChatService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Conversations builds the inbox of userID.
func (s *ChatService) Conversations(ctx context.Context, userID int) ([]models.ChatSummary, error) {
	msgs, err := s.Messages.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return GroupConversations(userID, msgs, s.now()), nil
}

// GroupConversations folds messages into one summary per other party. The
// most recent message of each group supplies the preview text, date and
// advertisement; summaries are ordered by that date, newest first.
func GroupConversations(userID int, msgs []models.Message, now time.Time) []models.ChatSummary {
	sorted := make([]models.Message, len(msgs))
	copy(sorted, msgs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SentAt.After(sorted[j].SentAt)
	})

	index := map[int]int{}
	summaries := []models.ChatSummary{}
	for _, m := range sorted {
		otherID, other := m.FromUserID, m.FromUser
		if m.FromUserID == userID {
			otherID, other = m.ToUserID, m.ToUser
		}

		i, ok := index[otherID]
		if !ok {
			summaries = append(summaries, models.ChatSummary{
				InterlocutorID:  otherID,
				Interlocutor:    other,
				LastMessage:     m.Text,
				LastMessageDate: m.SentAt,
				Advertisement:   m.Advertisement,
			})
			i = len(summaries) - 1
			index[otherID] = i
		}

		summaries[i].MessageCount++
		if m.ToUserID == userID && !m.IsRead {
			summaries[i].UnreadCount++
		}
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].LastMessageDate.After(summaries[j].LastMessageDate)
	})
	for i := range summaries {
		summaries[i].FormattedDate = FormatChatDate(summaries[i].LastMessageDate, now)
	}
	return summaries
}

// FormatChatDate renders t relative to now: a clock time today, "Вчера" for
// the previous calendar day and dd.MM.yy otherwise.
func FormatChatDate(t, now time.Time) string {
	t = t.In(now.Location())
	if sameDay(t, now) {
		return t.Format("15:04")
	}
	if sameDay(t, now.AddDate(0, 0, -1)) {
		return "Вчера"
	}
	return t.Format("02.01.06")
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Conversation opens the thread between userID and otherID and marks what
// otherID sent as read.
func (s *ChatService) Conversation(ctx context.Context, userID, otherID int, adID *int) (models.ConversationView, error) {
	other, err := s.Users.GetUserByID(ctx, otherID)
	if err != nil {
		return models.ConversationView{}, err
	}

	view := models.ConversationView{OtherUser: other, CurrentUserID: userID, AdID: adID}
	if adID != nil {
		ad, err := s.Ads.GetByID(ctx, *adID)
		switch {
		case err == nil:
			view.AdTitle = ad.Title
		case !errors.Is(err, models.ErrNoRecord):
			return models.ConversationView{}, err
		}
	}

	if _, err := s.Messages.MarkRead(ctx, otherID, userID); err != nil {
		return models.ConversationView{}, err
	}
	view.Messages, err = s.Messages.Conversation(ctx, userID, otherID)
	if err != nil {
		return models.ConversationView{}, err
	}
	return view, nil
}

// Send stores a message from fromID to toID. Blank text is ignored and
// reported as a nil message. Delivery to live sockets, push notification and
// event publishing happen after the message is stored and never fail the send.
func (s *ChatService) Send(ctx context.Context, fromID, toID int, text string, adID *int) (*models.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	sender, err := s.Users.GetUserByID(ctx, fromID)
	if err != nil {
		return nil, err
	}
	recipient, err := s.Users.GetUserByID(ctx, toID)
	if err != nil {
		return nil, err
	}
	if adID != nil {
		ok, err := s.Ads.Exists(ctx, *adID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, models.ErrNoRecord
		}
	}

	msg, err := s.Messages.Create(ctx, models.Message{
		Text:            text,
		SentAt:          s.now(),
		FromUserID:      fromID,
		ToUserID:        toID,
		AdvertisementID: adID,
	})
	if err != nil {
		return nil, err
	}
	msg.FromUser, msg.ToUser = &sender, &recipient

	s.deliver(ctx, msg, sender.Name)
	return &msg, nil
}

func (s *ChatService) deliver(ctx context.Context, msg models.Message, senderName string) {
	if s.Push != nil {
		s.Push.PushMessage(msg.ToUserID, msg)
	}

	if s.Notifier != nil && s.DeviceTokens != nil {
		tokens, err := s.DeviceTokens.ListForUser(ctx, msg.ToUserID)
		if err != nil {
			zap.S().Warnw("load device tokens", "user_id", msg.ToUserID, "error", err)
		} else if len(tokens) > 0 {
			n := notify.Notification{
				Title: senderName,
				Body:  msg.Text,
				Data: map[string]string{
					"type":         "message",
					"message_id":   strconv.Itoa(msg.ID),
					"from_user_id": strconv.Itoa(msg.FromUserID),
				},
			}
			if err := s.Notifier.Notify(ctx, tokens, n); err != nil {
				zap.S().Warnw("push notification", "user_id", msg.ToUserID, "error", err)
			}
		}
	}

	if s.Events != nil {
		ev := events.MessageEvent{ID: msg.ID, FromUserID: msg.FromUserID, ToUserID: msg.ToUserID, AdvertisementID: msg.AdvertisementID}
		if err := s.Events.Publish(ctx, events.SubjectMessageSent, ev); err != nil {
			zap.S().Warnw("publish message event", "id", msg.ID, "error", err)
		}
	}
}

// RegisterDeviceToken stores a push token for userID.
func (s *ChatService) RegisterDeviceToken(ctx context.Context, userID int, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		verr := models.NewValidationError()
		verr.Add("token", "token is required")
		return verr
	}
	return s.DeviceTokens.Save(ctx, userID, token)
}
