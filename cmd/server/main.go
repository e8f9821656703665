package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"transit_info/internal/config"
	"transit_info/internal/controllers"
	"transit_info/internal/geo"
	"transit_info/internal/logger"
	"transit_info/internal/metrics"
	"transit_info/internal/middleware"
	"transit_info/internal/publisher"
	"transit_info/internal/routes"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Structured logging to a rotating file
	logger.Setup()

	// Connect to the database. This also loads .env, so anything that
	// reads provider URLs must be constructed after this point.
	config.InitDB()
	controllers.SetGeoLookup(geo.NewClient())

	// Metrics on a separate listener when configured
	col := metrics.NewCollector()
	if addr := config.Getenv("METRICS_ADDR", ""); addr != "" {
		col.Serve(addr)
	}
	controllers.SetMetrics(col)

	// Optional alert event broadcasting
	var pub *publisher.AlertPublisher
	if natsURL := config.Getenv("NATS_URL", ""); natsURL != "" {
		var err error
		pub, err = publisher.NewAlertPublisher(natsURL, config.Getenv("NATS_SUBJECT_PREFIX", "transit.alerts"))
		if err != nil {
			log.Fatalf("nats error: %v", err)
		}
		controllers.SetAlertPublisher(pub)
	}

	r := routes.SetupRouter(col)

	srv := &http.Server{
		// Wrap with CORS for the browser client
		Addr:    "0.0.0.0:" + config.Getenv("PORT", "8080"),
		Handler: middleware.EnableCORS(r),
	}

	go func() {
		log.Printf("🚀 Server running at %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
	if pub != nil {
		pub.Close()
	}
}
