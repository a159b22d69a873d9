// Package notify fans domain events out to connected clients and brokers.
package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"go-catat-jualan/internal/logging"
)

// Event types.
const (
	TypeStockUpdate = "stock_update"
	TypeOrderUpdate = "order_update"
)

// Event actions.
const (
	ActionProductCreated     = "product_created"
	ActionProductUpdated     = "product_updated"
	ActionProductDeleted     = "product_deleted"
	ActionProductLowStock    = "product_low_stock"
	ActionTransactionCreated = "transaction_created"
	ActionOrderCreated       = "order_created"
	ActionOrderUpdated       = "order_updated"
	ActionOrderReconciled    = "order_reconciled"
)

// Event is delivered to the owning user only.
type Event struct {
	Type    string    `json:"type"`
	Action  string    `json:"action"`
	UserID  string    `json:"userId"`
	Data    any       `json:"data,omitempty"`
	Message string    `json:"message,omitempty"`
	At      time.Time `json:"at"`
}

type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// Multi sends to every notifier and joins the errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, ev Event) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Dispatcher delivers events off the request path. Failures are logged, never
// returned to the caller.
type Dispatcher struct {
	target  Notifier
	log     logging.Logger
	timeout time.Duration
	now     func() time.Time
	wg      sync.WaitGroup
}

func NewDispatcher(target Notifier, log logging.Logger) *Dispatcher {
	return &Dispatcher{target: target, log: log, timeout: 5 * time.Second, now: time.Now}
}

// Publish stamps the event and sends it in the background.
func (d *Dispatcher) Publish(ctx context.Context, ev Event) {
	if d == nil || d.target == nil {
		return
	}
	if ev.At.IsZero() {
		ev.At = d.now()
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
		defer cancel()
		if err := d.target.Notify(sendCtx, ev); err != nil {
			d.log.Warn(sendCtx, "event delivery failed", "action", ev.Action, "user_id", ev.UserID, "error", err)
		}
	}()
}

// Wait blocks until in-flight events are delivered.
func (d *Dispatcher) Wait() {
	if d != nil {
		d.wg.Wait()
	}
}
