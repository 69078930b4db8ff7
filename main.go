package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"schooldocs_backend/internals/configs"
	database "schooldocs_backend/internals/databases"
	"schooldocs_backend/internals/features/notifications/notifications/scheduler"
	payment "schooldocs_backend/internals/features/payments/payment_transactions/service"
	helper "schooldocs_backend/internals/helpers"
	middlewares "schooldocs_backend/internals/middlewares"
	routes "schooldocs_backend/internals/route"
)

func main() {
	configs.LoadEnv()
	log := zap.L()
	defer func() { _ = log.Sync() }()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ErrorHandler:            helper.ErrorHandler,
		BodyLimit:               8 * 1024 * 1024,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
		ReadTimeout:             15 * time.Second,
		WriteTimeout:            30 * time.Second,
		IdleTimeout:             90 * time.Second,
	})

	middlewares.SetupMiddlewares(app)

	// DB client: real pool or the unavailable stub
	db := database.Get()
	database.WarmUpQueries(db)

	ctx, stop := context.WithCancel(context.Background())
	retentionDone := scheduler.StartRetentionScheduler(ctx, db)

	if configs.MidtransServerKey != "" {
		payment.InitMidtrans(configs.MidtransServerKey, configs.MidtransUseProd)
	}

	routes.SetupRoutes(app, db)

	port := configs.GetEnv("PORT", "3000")
	go func() {
		log.Info("listening", zap.String("port", port))
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Warn("http shutdown", zap.Error(err))
	}

	stop()
	select {
	case <-retentionDone:
	case <-shutdownCtx.Done():
	}
	database.Close(db)
}
