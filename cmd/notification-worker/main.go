// The notification worker executes confirmation tasks out of process.
// It consumes the task queue at-least-once: a redelivered message sends
// the confirmation again rather than being deduplicated.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/nikolayk812/checkout-demo/internal/config"
	"github.com/nikolayk812/checkout-demo/internal/dispatch"
	"github.com/nikolayk812/checkout-demo/internal/tasks"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("notification-worker failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conn, err := amqp.Dial(cfg.RabbitURL)
	if err != nil {
		return fmt.Errorf("amqp.Dial: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("conn.Channel: %w", err)
	}

	if _, err := ch.QueueDeclare(tasks.SendConfirmationEmail, true, false, false, false, nil); err != nil {
		return fmt.Errorf("ch.QueueDeclare: %w", err)
	}

	msgs, err := ch.Consume(tasks.SendConfirmationEmail, "notification-worker", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("ch.Consume: %w", err)
	}

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		<-stop
		cancel()
	}()

	logger.Info("notification-worker consuming", "queue", tasks.SendConfirmationEmail)

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("messages channel closed")
			}

			if err := handle(logger, msg.Body); err != nil {
				logger.Error("handle task", "error", err)
				_ = msg.Nack(false, false)
				continue
			}
			_ = msg.Ack(false)
		}
	}
}

func handle(logger *slog.Logger, body []byte) error {
	var env dispatch.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("json.Unmarshal: %w", err)
	}

	switch env.Task {
	case tasks.SendConfirmationEmail:
		email, err := tasks.EmailFromArgs(env.Args)
		if err != nil {
			return fmt.Errorf("tasks.EmailFromArgs: %w", err)
		}

		// mail transport lives elsewhere; the worker's contract is to
		// log the send
		logger.Info("sending confirmation email", "email", email)
		return nil
	default:
		return fmt.Errorf("task[%s] is unknown", env.Task)
	}
}
