package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/nddat0406/taynguyennuts-sub001/database"
)

// AdminHandler serves routes behind the admin gate.
type AdminHandler struct {
	store  *database.Store
	logger *zap.Logger
}

func NewAdminHandler(store *database.Store, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{store: store, logger: logger}
}

func (h *AdminHandler) ListOrders(c *gin.Context) {
	ctx, span := otel.Tracer("admin").Start(c.Request.Context(), "ListOrders")
	defer span.End()

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 || limit > 200 {
		limit = 50
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	span.SetAttributes(attribute.Int("limit", limit), attribute.Int("offset", offset))

	orders, err := h.store.ListOrders(ctx, limit, offset)
	if err != nil {
		span.RecordError(err)
		h.logger.Error("Failed to list orders", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, orders)
}
