// Package payment drives a verified gateway outcome to its terminal order
// state, exactly once per order.
package payment

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/nddat0406/taynguyennuts-sub001/database"
	"github.com/nddat0406/taynguyennuts-sub001/models"
	"github.com/nddat0406/taynguyennuts-sub001/vnpay"
)

var (
	ErrOrderNotFound  = database.ErrOrderNotFound
	ErrInvalidOutcome = errors.New("outcome did not pass verification")
)

// OrderStore is the persistence collaborator. CompareAndSetStatus and
// FinalizePaid are atomic conditional transitions; both report false when
// the order was not pending anymore.
type OrderStore interface {
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	CompareAndSetStatus(ctx context.Context, id string, expected, next models.OrderStatus) (bool, error)
	FinalizePaid(ctx context.Context, id string) (bool, error)
}

// Notifier requests customer-facing messages for finalized orders.
// Failures are the notifier's problem, never the order's.
type Notifier interface {
	SendConfirmation(ctx context.Context, order models.Order) error
	SendFailure(ctx context.Context, order models.Order) error
}

type Finalizer struct {
	store    OrderStore
	notifier Notifier
	logger   *zap.Logger
}

func NewFinalizer(store OrderStore, notifier Notifier, logger *zap.Logger) *Finalizer {
	return &Finalizer{
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// Finalize transitions the order for a verified callback outcome and
// returns the resulting status.
//
// Redeliveries are expected: a non-pending order is a successful no-op that
// returns the prior status and triggers nothing downstream. The pending
// check and the transition are one conditional update, so two concurrent
// deliveries for the same order cannot both apply. Persistence errors are
// returned to the caller; the gateway's own retry drives redelivery.
func (f *Finalizer) Finalize(ctx context.Context, orderID string, outcome vnpay.Outcome) (models.OrderStatus, error) {
	ctx, span := otel.Tracer("payment").Start(ctx, "FinalizeOrder")
	defer span.End()
	span.SetAttributes(
		attribute.String("order.id", orderID),
		attribute.Bool("outcome.success", outcome.Success),
	)

	if !outcome.Valid {
		return "", ErrInvalidOutcome
	}

	order, err := f.store.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			f.logger.Warn("Callback for unknown order, possible forged or stale reference",
				zap.String("order_id", orderID))
			return "", err
		}
		span.RecordError(err)
		return "", fmt.Errorf("load order: %w", err)
	}

	if order.Status != models.OrderStatusPending {
		f.logger.Info("Order already finalized, ignoring redelivery",
			zap.String("order_id", orderID),
			zap.String("status", string(order.Status)))
		return order.Status, nil
	}

	if outcome.Success {
		return f.markPaid(ctx, *order)
	}
	return f.markFailed(ctx, *order, outcome)
}

func (f *Finalizer) markPaid(ctx context.Context, order models.Order) (models.OrderStatus, error) {
	transitioned, err := f.store.FinalizePaid(ctx, order.ID)
	if err != nil {
		return "", fmt.Errorf("finalize paid: %w", err)
	}
	if !transitioned {
		// A concurrent delivery won the conditional update.
		return f.currentStatus(ctx, order.ID)
	}

	f.logger.Info("Order paid", zap.String("order_id", order.ID))

	order.Status = models.OrderStatusPaid
	if err := f.notifier.SendConfirmation(ctx, order); err != nil {
		f.logger.Error("Failed to request confirmation notification",
			zap.String("order_id", order.ID), zap.Error(err))
	}
	return models.OrderStatusPaid, nil
}

func (f *Finalizer) markFailed(ctx context.Context, order models.Order, outcome vnpay.Outcome) (models.OrderStatus, error) {
	transitioned, err := f.store.CompareAndSetStatus(ctx, order.ID, models.OrderStatusPending, models.OrderStatusFailed)
	if err != nil {
		return "", fmt.Errorf("mark failed: %w", err)
	}
	if !transitioned {
		return f.currentStatus(ctx, order.ID)
	}

	f.logger.Info("Order failed",
		zap.String("order_id", order.ID),
		zap.String("response_code", outcome.ResponseCode),
		zap.String("transaction_status", outcome.TxnStatus))

	order.Status = models.OrderStatusFailed
	if err := f.notifier.SendFailure(ctx, order); err != nil {
		f.logger.Error("Failed to request failure notification",
			zap.String("order_id", order.ID), zap.Error(err))
	}
	return models.OrderStatusFailed, nil
}

func (f *Finalizer) currentStatus(ctx context.Context, orderID string) (models.OrderStatus, error) {
	order, err := f.store.GetOrder(ctx, orderID)
	if err != nil {
		return "", fmt.Errorf("reload order: %w", err)
	}
	return order.Status, nil
}
