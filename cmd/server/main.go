package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/stephanygrace/customer-portal/docs"
	"github.com/stephanygrace/customer-portal/internal/auth"
	"github.com/stephanygrace/customer-portal/internal/config"
	"github.com/stephanygrace/customer-portal/internal/database"
	"github.com/stephanygrace/customer-portal/internal/documents"
	"github.com/stephanygrace/customer-portal/internal/handlers"
	"github.com/stephanygrace/customer-portal/internal/notify"
	"github.com/stephanygrace/customer-portal/internal/portal"
	"github.com/stephanygrace/customer-portal/internal/scheduler"
	"github.com/stephanygrace/customer-portal/internal/store"
)

// @title Customer Portal API
// @version 1.0
// @description Customer-facing bookings, quotes and invoices aggregated from the field-service platform.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to initialise database: %v", err)
	}

	client, fetcher := portal.NewUpstream(cfg)

	var publisher notify.Publisher = notify.NopPublisher{}
	if cfg.NATSURL != "" {
		natsPublisher, err := notify.Connect(cfg.NATSURL, cfg.NATSSubject)
		if err != nil {
			log.Fatalf("Failed to set up NATS publisher: %v", err)
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
	}

	prober := scheduler.NewProber(client, cfg.UpstreamProbeEndpoint, cfg.UpstreamTimeout)
	if err := prober.Start(cfg.UpstreamProbeSchedule); err != nil {
		log.Fatalf("Failed to start upstream probe: %v", err)
	}
	defer prober.Stop()

	h := handlers.NewHandler(handlers.Deps{
		Fetcher:   fetcher,
		Composer:  documents.NewComposer(),
		Users:     store.NewUserStore(db),
		Messages:  store.NewMessageStore(db),
		Publisher: publisher,
		Tokens:    auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL),
		Prober:    prober,
	}, cfg.UpstreamTimeout)

	router := gin.Default()
	router.Use(handlers.RequestID())
	h.RegisterRoutes(router)

	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}
	go func() {
		log.Printf("Starting customer portal on :%s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received, exiting...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}
