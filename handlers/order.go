package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/IBM/sarama"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/nddat0406/taynguyennuts-sub001/database"
	"github.com/nddat0406/taynguyennuts-sub001/kafka"
	"github.com/nddat0406/taynguyennuts-sub001/middleware"
	"github.com/nddat0406/taynguyennuts-sub001/models"
)

type OrderHandler struct {
	db       *sql.DB
	store    *database.Store
	producer sarama.SyncProducer
	topic    string
	logger   *zap.Logger
}

func NewOrderHandler(db *sql.DB, store *database.Store, producer sarama.SyncProducer, topic string, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		db:       db,
		store:    store,
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// CreateOrder creates a pending order with its staged line items. The
// order stays pending until the gateway callback finalizes it.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	ctx, span := otel.Tracer("order").Start(c.Request.Context(), "CreateOrder")
	defer span.End()

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	span.SetAttributes(
		attribute.Int("user_id", req.UserID),
		attribute.Int("items.count", len(req.Items)),
	)

	orderID := uuid.NewString()
	items := make([]models.OrderItem, 0, len(req.Items))
	totalPrice := 0.0

	for _, line := range req.Items {
		var price float64
		var stock int
		err := h.db.QueryRowContext(ctx,
			"SELECT price, stock FROM products WHERE id = $1",
			line.ProductID,
		).Scan(&price, &stock)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown product", "product_id": line.ProductID})
				return
			}
			span.RecordError(err)
			h.logger.Error("Failed to load product", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if stock < line.Quantity {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":      "Product not available",
				"product_id": line.ProductID,
				"stock":      stock,
			})
			return
		}

		items = append(items, models.OrderItem{
			OrderID:   orderID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: price,
		})
		totalPrice += float64(line.Quantity) * price
	}

	order := models.Order{
		ID:         orderID,
		UserID:     req.UserID,
		Status:     models.OrderStatusPending,
		TotalPrice: totalPrice,
	}

	if err := h.store.CreateOrder(ctx, &order, items); err != nil {
		span.RecordError(err)
		h.logger.Error("Failed to create order", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	span.SetAttributes(attribute.String("order.id", order.ID))

	event := models.OrderEvent{
		OrderID:    order.ID,
		UserID:     order.UserID,
		Status:     order.Status,
		TotalPrice: order.TotalPrice,
		EventType:  "order_created",
	}
	if err := kafka.PublishOrderEvent(ctx, h.producer, h.topic, event, h.logger); err != nil {
		h.logger.Error("Failed to publish order_created event", zap.Error(err))
		// Don't fail the request, but log the error
	}

	h.logger.Info("Order created",
		zap.String("trace_id", middleware.GetTraceID(ctx)),
		zap.String("order_id", order.ID))
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	ctx, span := otel.Tracer("order").Start(c.Request.Context(), "GetOrder")
	defer span.End()

	orderID := c.Param("id")
	span.SetAttributes(attribute.String("order.id", orderID))

	order, err := h.store.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, database.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		span.RecordError(err)
		h.logger.Error("Failed to get order", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, order)
}
