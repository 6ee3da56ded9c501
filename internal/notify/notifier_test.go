package notify

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/messaging"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeSender struct {
	sent []*messaging.Message
	fail map[string]bool
}

func (f *fakeSender) Send(_ context.Context, m *messaging.Message) (string, error) {
	if f.fail[m.Token] {
		return "", errors.New("unregistered")
	}
	f.sent = append(f.sent, m)
	return "projects/x/messages/1", nil
}

func TestFCMNotifierSendsToEveryToken(t *testing.T) {
	sender := &fakeSender{fail: map[string]bool{"bad": true}}
	n := NewFCMNotifier(sender, zap.NewNop())

	err := n.Notify(context.Background(), []string{"a", "bad", "b"}, Notification{
		Title: "Новое сообщение",
		Body:  "привет",
		Data:  map[string]string{"from_user_id": "3"},
	})

	assert.Error(t, err)
	assert.Len(t, sender.sent, 2)
	assert.Equal(t, "a", sender.sent[0].Token)
	assert.Equal(t, "Новое сообщение", sender.sent[0].Notification.Title)
	assert.Equal(t, "3", sender.sent[1].Data["from_user_id"])
}

func TestFCMNotifierNoTokens(t *testing.T) {
	sender := &fakeSender{}
	n := NewFCMNotifier(sender, zap.NewNop())

	assert.NoError(t, n.Notify(context.Background(), nil, Notification{Title: "x"}))
	assert.Empty(t, sender.sent)
}
