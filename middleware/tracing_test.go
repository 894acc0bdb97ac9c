package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// The router must pick up W3C trace context from inbound headers so spans
// started inside handlers join the caller's trace.
func TestInboundTraceContextPropagates(t *testing.T) {
	otel.SetTextMapPropagator(propagation.TraceContext{})

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(otelgin.Middleware("test-service"))

	var gotTraceID string
	router.GET("/ping", func(c *gin.Context) {
		gotTraceID = GetTraceID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	const traceID = "4bf92f3577b34da6a3ce929d0e0e4736"
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("traceparent", "00-"+traceID+"-00f067aa0ba902b7-01")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if gotTraceID != traceID {
		t.Errorf("Expected inbound trace id %s, got %q", traceID, gotTraceID)
	}
}

func TestGetTraceID_EmptyOutsideSpan(t *testing.T) {
	if id := GetTraceID(httptest.NewRequest(http.MethodGet, "/", nil).Context()); id != "" {
		t.Errorf("Expected empty trace id outside a span, got %q", id)
	}
}
