// Package checkout orchestrates the transition from a live session cart
// to a durable order: preview aggregation, order persistence, cart
// clearing, pending-reference bookkeeping and confirmation dispatch.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nikolayk812/checkout-demo/internal/cart"
	"github.com/nikolayk812/checkout-demo/internal/domain"
	"github.com/nikolayk812/checkout-demo/internal/port"
	"github.com/nikolayk812/checkout-demo/internal/tasks"
	"github.com/shopspring/decimal"
)

// pendingOrderKey is the session slot holding the order ID between a
// completed checkout and the one-shot completion view.
const pendingOrderKey = "pending_order_id"

type Summary struct {
	Items []domain.LineItem
	Total decimal.Decimal
}

type Service struct {
	orders     port.OrderRepository
	catalog    port.CatalogRepository
	dispatcher port.Dispatcher
	logger     *slog.Logger
}

func NewService(orders port.OrderRepository, catalog port.CatalogRepository, dispatcher port.Dispatcher, logger *slog.Logger) *Service {
	return &Service{
		orders:     orders,
		catalog:    catalog,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Preview aggregates the session's current cart without mutating anything.
func (s *Service) Preview(ctx context.Context, sess port.Session) (Summary, error) {
	items, total, err := Aggregate(ctx, cart.Items(sess), s.catalog)
	if err != nil {
		return Summary{}, fmt.Errorf("aggregate: %w", err)
	}

	return Summary{Items: items, Total: total}, nil
}

// Complete turns the session's cart into a persisted order.
//
// Persistence happens-before both cart clearing and task scheduling: a
// failed write leaves the cart untouched, and a confirmation is never
// dispatched for an order that was not saved. A dispatch failure is
// logged and swallowed since the order is already durable.
func (s *Service) Complete(ctx context.Context, sess port.Session, email string) (int64, error) {
	if strings.TrimSpace(email) == "" {
		return 0, fmt.Errorf("email is empty: %w", domain.ErrValidation)
	}

	lineItems, _, err := Aggregate(ctx, cart.Items(sess), s.catalog)
	if err != nil {
		return 0, fmt.Errorf("aggregate: %w", err)
	}

	snapshot := make(map[string]domain.OrderItem, len(lineItems))
	for _, li := range lineItems {
		snapshot[li.Name] = domain.OrderItem{
			Quantity: li.Quantity,
			Total:    li.Total,
		}
	}

	orderID, err := s.orders.Create(ctx, domain.Order{
		Email: email,
		Items: snapshot,
	})
	if err != nil {
		return 0, fmt.Errorf("orders.Create: %w", errors.Join(domain.ErrPersistence, err))
	}

	cart.Clear(sess)
	sess.Set(pendingOrderKey, orderID)

	if err := s.dispatcher.Schedule(ctx, tasks.SendConfirmationEmail, tasks.ConfirmationArgs(email)); err != nil {
		s.logger.Warn("confirmation dispatch failed",
			"order_id", orderID,
			"error", err)
	}

	return orderID, nil
}

// ShowCompletion consumes the pending-order reference set by Complete.
//
// The reference is read-once: the first call returns the order and
// removes it, a repeat call reports pending=false so the caller
// redirects to the start state without side effects.
func (s *Service) ShowCompletion(ctx context.Context, sess port.Session) (domain.Order, bool, error) {
	v, ok := sess.Pop(pendingOrderKey)
	if !ok {
		return domain.Order{}, false, nil
	}

	orderID, ok := v.(int64)
	if !ok {
		return domain.Order{}, false, fmt.Errorf("pending order reference[%v] is not an order ID", v)
	}

	order, found, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return domain.Order{}, false, fmt.Errorf("orders.Get[%d]: %w", orderID, err)
	}
	if !found {
		return domain.Order{}, false, fmt.Errorf("order[%d]: %w", orderID, domain.ErrNotFound)
	}

	// already empty when Complete cleared it, kept for the invariant
	// that a shown completion never leaves cart state behind
	cart.Clear(sess)

	return order, true, nil
}
