package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/nddat0406/taynguyennuts-sub001/auth"
	"github.com/nddat0406/taynguyennuts-sub001/cache"
	"github.com/nddat0406/taynguyennuts-sub001/config"
	"github.com/nddat0406/taynguyennuts-sub001/database"
	"github.com/nddat0406/taynguyennuts-sub001/handlers"
	"github.com/nddat0406/taynguyennuts-sub001/kafka"
	"github.com/nddat0406/taynguyennuts-sub001/middleware"
	"github.com/nddat0406/taynguyennuts-sub001/payment"
	"github.com/nddat0406/taynguyennuts-sub001/vnpay"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg := config.Load()
	if cfg.VNPHashSecret == "" {
		logger.Fatal("VNP_HASH_SECRET must be configured; callbacks cannot be verified without it")
	}

	// Initialize database
	db, err := database.InitDB(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()
	store := database.NewStore(db)

	// Initialize Redis (advisory caches only; the service runs without it)
	redisClient, err := cache.InitRedis(cfg, logger)
	if err != nil {
		logger.Warn("Redis unavailable, continuing without caches", zap.Error(err))
		redisClient = nil
	}

	// Initialize Kafka producer
	producer, err := kafka.InitProducer(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize Kafka producer", zap.Error(err))
	}
	defer producer.Close()

	// Initialize OpenTelemetry
	shutdown, err := middleware.InitTracing("taynguyennuts-backend", cfg.JaegerEndpoint)
	if err != nil {
		logger.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer shutdown()

	// Payment core
	verifier := vnpay.NewVerifier(cfg.VNPHashSecret)
	notifier := kafka.NewNotifier(producer, cfg.KafkaTopic, logger)
	finalizer := payment.NewFinalizer(store, notifier, logger)

	callbackHandler := handlers.NewCallbackHandler(verifier, finalizer, redisClient, logger)
	orderHandler := handlers.NewOrderHandler(db, store, producer, cfg.KafkaTopic, logger)
	productHandler := handlers.NewProductHandler(db, redisClient, logger)
	adminHandler := handlers.NewAdminHandler(store, logger)
	adminGate := auth.NewEmailGate(cfg.AdminEmail)

	// Setup REST API with Gin
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("taynguyennuts-backend"))
	router.Use(middleware.LoggerMiddleware(logger))
	router.Use(middleware.MetricsMiddleware())

	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", middleware.PrometheusHandler())

	router.GET("/products", productHandler.GetProducts)
	router.GET("/products/:id", productHandler.GetProduct)

	router.POST("/orders", orderHandler.CreateOrder)
	router.GET("/orders/:id", orderHandler.GetOrder)

	// VNPay delivers the return URL as GET and the IPN as GET or POST form.
	router.GET("/payment/vnpay/return", callbackHandler.HandleVNPayReturn)
	router.POST("/payment/vnpay/return", callbackHandler.HandleVNPayReturn)

	admin := router.Group("/admin", middleware.AdminOnly(adminGate, cfg.JWTSecret, logger))
	admin.GET("/orders", adminHandler.ListOrders)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start REST server", zap.Error(err))
		}
	}()

	logger.Info("Taynguyennuts backend started", zap.String("addr", cfg.ListenAddr))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	logger.Info("Server exited")
}
