package notify

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

type Notification struct {
	Title string
	Body  string
	Data  map[string]string
}

type Notifier interface {
	Notify(ctx context.Context, tokens []string, n Notification) error
}

// Sender is the part of *messaging.Client the notifier needs.
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

type FCMNotifier struct {
	client Sender
	logger *zap.Logger
}

func NewFCMNotifier(client Sender, logger *zap.Logger) *FCMNotifier {
	return &FCMNotifier{client: client, logger: logger}
}

// NewFCMClient builds a messaging client from a service account file.
func NewFCMClient(ctx context.Context, credentialsFile string) (*messaging.Client, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	return app.Messaging(ctx)
}

func buildMessage(token string, n Notification) *messaging.Message {
	return &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Body,
		},
		Data: n.Data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "messages",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{"apns-priority": "10"},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{Title: n.Title, Body: n.Body},
					Sound: "default",
				},
			},
		},
	}
}

// Notify sends n to every token. A failing token does not stop the rest;
// the last error is returned.
func (f *FCMNotifier) Notify(ctx context.Context, tokens []string, n Notification) error {
	var lastErr error
	for _, token := range tokens {
		if _, err := f.client.Send(ctx, buildMessage(token, n)); err != nil {
			f.logger.Warn("fcm send failed", zap.Error(err))
			lastErr = err
		}
	}
	return lastErr
}

type Noop struct{}

func (Noop) Notify(context.Context, []string, Notification) error { return nil }
