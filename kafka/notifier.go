package kafka

import (
	"context"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/nddat0406/taynguyennuts-sub001/circuitbreaker"
	"github.com/nddat0406/taynguyennuts-sub001/models"
)

// Notifier asks the notification service for a confirmation email by
// publishing a payment event. The caller treats it as fire-and-forget; the
// circuit breaker keeps a dead broker from stalling the callback path.
type Notifier struct {
	producer sarama.SyncProducer
	topic    string
	breaker  *circuitbreaker.CircuitBreaker
	logger   *zap.Logger
}

func NewNotifier(producer sarama.SyncProducer, topic string, logger *zap.Logger) *Notifier {
	return &Notifier{
		producer: producer,
		topic:    topic,
		breaker:  circuitbreaker.NewCircuitBreaker(5, 30*time.Second),
		logger:   logger,
	}
}

func (n *Notifier) SendConfirmation(ctx context.Context, order models.Order) error {
	event := models.OrderEvent{
		OrderID:    order.ID,
		UserID:     order.UserID,
		Status:     order.Status,
		TotalPrice: order.TotalPrice,
		EventType:  "payment_success",
	}
	return n.breaker.Execute(ctx, func() error {
		return PublishOrderEvent(ctx, n.producer, n.topic, event, n.logger)
	})
}

// SendFailure reports a declined payment so the notification service can
// tell the customer. Same fire-and-forget contract as SendConfirmation.
func (n *Notifier) SendFailure(ctx context.Context, order models.Order) error {
	event := models.OrderEvent{
		OrderID:    order.ID,
		UserID:     order.UserID,
		Status:     order.Status,
		TotalPrice: order.TotalPrice,
		EventType:  "payment_failed",
	}
	return n.breaker.Execute(ctx, func() error {
		return PublishOrderEvent(ctx, n.producer, n.topic, event, n.logger)
	})
}
