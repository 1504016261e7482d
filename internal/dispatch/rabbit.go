// Package dispatch moves post-checkout side effects out of the request
// path. Delivery is at-least-once with no idempotency key: an executor
// retry may run a task twice, which is acceptable for confirmation
// notifications.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nikolayk812/checkout-demo/internal/domain"
	"github.com/nikolayk812/checkout-demo/internal/port"
	amqp "github.com/rabbitmq/amqp091-go"
)

// enqueueTimeout bounds how long Schedule may wait on the broker, so an
// unavailable backend never blocks the request that scheduled the task.
const enqueueTimeout = 2 * time.Second

// Envelope is the wire format shared with the worker consuming the queue.
type Envelope struct {
	Task       string            `json:"task"`
	Args       map[string]string `json:"args"`
	EnqueuedAt time.Time         `json:"enqueued_at"`
}

type RabbitDispatcher struct {
	ch *amqp.Channel
}

// NewRabbit opens a channel and declares a durable queue per known task,
// so publishing never fails on missing infrastructure.
func NewRabbit(conn *amqp.Connection, taskQueues ...string) (*RabbitDispatcher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("conn.Channel: %w", err)
	}

	for _, queue := range taskQueues {
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			return nil, fmt.Errorf("ch.QueueDeclare[%s]: %w", queue, err)
		}
	}

	return &RabbitDispatcher{ch: ch}, nil
}

func (d *RabbitDispatcher) Close() error {
	return d.ch.Close()
}

func (d *RabbitDispatcher) Schedule(ctx context.Context, task string, args map[string]string) error {
	body, err := json.Marshal(Envelope{
		Task:       task,
		Args:       args,
		EnqueuedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, enqueueTimeout)
	defer cancel()

	err = d.ch.PublishWithContext(ctx, "", task, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("ch.PublishWithContext[%s]: %w", task, errors.Join(domain.ErrDispatch, err))
	}

	return nil
}

var _ port.Dispatcher = (*RabbitDispatcher)(nil)
