package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const (
	SubjectAdvertisementCreated = "advertisement.created"
	SubjectAdvertisementUpdated = "advertisement.updated"
	SubjectAdvertisementDeleted = "advertisement.deleted"
	SubjectMessageSent          = "message.sent"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, payload interface{}) error
}

type NATSPublisher struct {
	nc     *nats.Conn
	logger *zap.Logger
}

func NewNATSPublisher(url string, logger *zap.Logger) (*NATSPublisher, error) {
	opts := []nats.Option{
		nats.Name("advert-back"),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warn("NATS disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
	}
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return &NATSPublisher{nc: nc, logger: logger}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, subject string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", subject, err)
	}
	if err := p.nc.Publish(subject, data); err != nil {
		p.logger.Error("NATS publish failed", zap.String("subject", subject), zap.Error(err))
		return err
	}
	return nil
}

func (p *NATSPublisher) Close() {
	p.nc.Close()
}

// Noop drops every event; used when no NATS URL is configured.
type Noop struct{}

func (Noop) Publish(context.Context, string, interface{}) error { return nil }

type AdvertisementEvent struct {
	ID     int    `json:"id"`
	UserID int    `json:"user_id"`
	Title  string `json:"title,omitempty"`
	Status string `json:"status,omitempty"`
}

type MessageEvent struct {
	ID              int  `json:"id"`
	FromUserID      int  `json:"from_user_id"`
	ToUserID        int  `json:"to_user_id"`
	AdvertisementID *int `json:"advertisement_id,omitempty"`
}
