package notify

import (
	"context"
	"encoding/json"
	"fmt"
)

// Backend publishes raw payloads to a named channel (queue or topic).
type Backend interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
	Close() error
}

// BrokerNotifier forwards events as JSON to a broker channel.
type BrokerNotifier struct {
	backend Backend
	channel string
}

func NewBrokerNotifier(backend Backend, channel string) *BrokerNotifier {
	return &BrokerNotifier{backend: backend, channel: channel}
}

func (b *BrokerNotifier) Notify(ctx context.Context, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("notify: marshal event: %w", err)
	}
	attrs := map[string]string{
		"type":    ev.Type,
		"action":  ev.Action,
		"user_id": ev.UserID,
	}
	if _, err := b.backend.Publish(ctx, b.channel, data, attrs); err != nil {
		return fmt.Errorf("notify: publish %s: %w", b.channel, err)
	}
	return nil
}

func (b *BrokerNotifier) Close() error {
	return b.backend.Close()
}
