package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/nddat0406/taynguyennuts-sub001/cache"
	"github.com/nddat0406/taynguyennuts-sub001/middleware"
	"github.com/nddat0406/taynguyennuts-sub001/payment"
	"github.com/nddat0406/taynguyennuts-sub001/vnpay"
)

const replayMarkerTTL = 48 * time.Hour

// CallbackHandler receives VNPay return/IPN callbacks, authenticates them
// and hands verified outcomes to the finalizer.
type CallbackHandler struct {
	verifier    *vnpay.Verifier
	finalizer   *payment.Finalizer
	redisClient *redis.Client // optional; replay audit only
	logger      *zap.Logger
}

func NewCallbackHandler(verifier *vnpay.Verifier, finalizer *payment.Finalizer, redisClient *redis.Client, logger *zap.Logger) *CallbackHandler {
	return &CallbackHandler{
		verifier:    verifier,
		finalizer:   finalizer,
		redisClient: redisClient,
		logger:      logger,
	}
}

// HandleVNPayReturn serves GET query callbacks and POST form callbacks
// alike; VNPay retries the same notification until it gets a non-5xx
// answer, so every path below must be safe to replay.
func (h *CallbackHandler) HandleVNPayReturn(c *gin.Context) {
	ctx, span := otel.Tracer("payment").Start(c.Request.Context(), "HandleVNPayReturn")
	defer span.End()
	traceID := middleware.GetTraceID(ctx)

	if err := c.Request.ParseForm(); err != nil {
		middleware.RecordCallback("malformed")
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid callback"})
		return
	}
	params := vnpay.ParseCallback(c.Request.Form)
	span.SetAttributes(attribute.String("vnpay.txn_ref", params.TxnRef()))

	// Required fields are checked before the signature: a callback that
	// cannot be interpreted is rejected as malformed no matter how it is
	// signed.
	if !params.HasResultFields() || params.TxnRef() == "" {
		middleware.RecordCallback("malformed")
		h.logger.Warn("Callback missing required fields",
			zap.String("trace_id", traceID),
			zap.Any("params", params))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid callback"})
		return
	}

	if !h.verifier.VerifyParams(params) {
		middleware.RecordCallback("invalid_signature")
		// Raw params are kept in the log for the audit trail; a forged
		// callback is a security event, not a transient failure.
		h.logger.Warn("Callback signature verification failed",
			zap.String("trace_id", traceID),
			zap.Any("params", params))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid signature"})
		return
	}

	outcome := vnpay.Interpret(params, true)

	h.auditReplay(c, params.TxnRef(), traceID)

	status, err := h.finalizer.Finalize(ctx, params.TxnRef(), outcome)
	if err != nil {
		if errors.Is(err, payment.ErrOrderNotFound) {
			middleware.RecordCallback("order_not_found")
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}
		span.RecordError(err)
		h.logger.Error("Failed to finalize order",
			zap.String("trace_id", traceID),
			zap.String("order_id", params.TxnRef()),
			zap.Error(err))
		// 5xx so the gateway's own retry redelivers.
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	middleware.RecordOrderFinalized(string(status))

	if outcome.Success {
		middleware.RecordCallback("success")
		c.JSON(http.StatusOK, gin.H{"message": "Payment succeeded", "data": params})
		return
	}
	middleware.RecordCallback("declined")
	c.JSON(http.StatusBadRequest, gin.H{"message": "Payment failed", "data": params})
}

// auditReplay leaves a best-effort marker so redeliveries show up in logs
// and metrics. The database CAS is the actual idempotence guard; Redis
// being down changes nothing here.
func (h *CallbackHandler) auditReplay(c *gin.Context, txnRef, traceID string) {
	if h.redisClient == nil {
		return
	}
	first, err := cache.MarkCallbackSeen(c.Request.Context(), h.redisClient, txnRef, replayMarkerTTL)
	if err != nil {
		h.logger.Debug("Replay marker unavailable",
			zap.String("trace_id", traceID), zap.Error(err))
		return
	}
	if !first {
		middleware.RecordCallback("replay")
		h.logger.Info("Duplicate callback delivery",
			zap.String("trace_id", traceID),
			zap.String("order_id", txnRef))
	}
}
