package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/strumhouse/strumhouse-main-sub001/config"
	"github.com/strumhouse/strumhouse-main-sub001/cron"
	"github.com/strumhouse/strumhouse-main-sub001/database"
	blockedRepoPkg "github.com/strumhouse/strumhouse-main-sub001/database/repository/blocked"
	bookingRepoPkg "github.com/strumhouse/strumhouse-main-sub001/database/repository/booking"
	paymentRepoPkg "github.com/strumhouse/strumhouse-main-sub001/database/repository/payment"
	recordsRepoPkg "github.com/strumhouse/strumhouse-main-sub001/database/repository/records"
	serviceRepoPkg "github.com/strumhouse/strumhouse-main-sub001/database/repository/service"
	userRepoPkg "github.com/strumhouse/strumhouse-main-sub001/database/repository/user"
	"github.com/strumhouse/strumhouse-main-sub001/handlers"
	"github.com/strumhouse/strumhouse-main-sub001/middleware"
	"github.com/strumhouse/strumhouse-main-sub001/routes"
	"github.com/strumhouse/strumhouse-main-sub001/services/admin"
	"github.com/strumhouse/strumhouse-main-sub001/services/booking"
	"github.com/strumhouse/strumhouse-main-sub001/services/notification"
	"github.com/strumhouse/strumhouse-main-sub001/services/payment"
	"github.com/strumhouse/strumhouse-main-sub001/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := utils.InitLogger(cfg.Env)
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()
	mongoClient, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to connect to MongoDB: %v", err)
	}
	db := mongoClient.Database(cfg.MongoDBName)

	cacheClient, err := utils.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisCacheDB)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to connect to Redis: %v", err)
	}

	stripe.Key = cfg.StripeKey

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo(db)
	serviceRepo := serviceRepoPkg.NewMongoServiceRepo(db)
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo(db)
	blockedRepo := blockedRepoPkg.NewMongoBlockedRepo(db)
	paymentRepo := paymentRepoPkg.NewMongoPaymentRepo(db)
	recordsRepo := recordsRepoPkg.NewMongoSummaryRepo(db)

	// background queue for payment/booking reconciliation.
	queueOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}
	queueClient := asynq.NewClient(queueOpt)
	defer queueClient.Close()
	reconcileSrv := cron.StartReconcileWorker(queueOpt, bookingRepo, paymentRepo, logger)

	// services.
	events := notification.NewRedisPublisher(cacheClient, logger)
	availabilitySvc := &booking.DefaultAvailabilityService{
		Bookings: bookingRepo,
		Blocked:  blockedRepo,
	}
	bookingSvc := &booking.DefaultBookingService{
		Users:        userRepo,
		Services:     serviceRepo,
		Repo:         bookingRepo,
		Availability: availabilitySvc,
		Events:       events,
		Logger:       logger,
	}
	paymentSvc := &payment.DefaultService{
		Payments:   paymentRepo,
		Bookings:   bookingRepo,
		Gateway:    payment.StripeGateway{},
		Secret:     cfg.PaymentWebhookSecret,
		Currency:   cfg.Currency,
		Events:     events,
		Reconciler: payment.NewAsynqReconciler(queueClient),
		Logger:     logger,
	}
	adminSvc := &admin.DefaultAdminService{Records: recordsRepo}

	utils.StartHealthMonitor(cacheClient, mongoClient)

	// router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(cors.Default())
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	routes.RegisterRoutes(router, &routes.Bundle{
		Booking:    handlers.NewBookingHandler(bookingSvc, availabilitySvc, logger),
		Payment:    handlers.NewPaymentHandler(paymentSvc, logger),
		Admin:      handlers.NewAdminHandler(adminSvc, blockedRepo, logger),
		Catalog:    handlers.NewCatalogHandler(serviceRepo, logger),
		AdminToken: cfg.AdminToken,
	})

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	reconcileSrv.Shutdown()
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		logger.Sugar().Warnf("main: error disconnecting MongoDB: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
