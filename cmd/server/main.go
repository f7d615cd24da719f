package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beatworks/workshop-dashboard/internal/band"
	"github.com/beatworks/workshop-dashboard/internal/blobstore"
	"github.com/beatworks/workshop-dashboard/internal/catalog"
	"github.com/beatworks/workshop-dashboard/internal/changes"
	"github.com/beatworks/workshop-dashboard/internal/config"
	"github.com/beatworks/workshop-dashboard/internal/dashboard"
	"github.com/beatworks/workshop-dashboard/internal/db"
	"github.com/beatworks/workshop-dashboard/internal/media"
	"github.com/beatworks/workshop-dashboard/internal/middleware"
	"github.com/beatworks/workshop-dashboard/internal/quote"
	"github.com/beatworks/workshop-dashboard/internal/repository"
	"github.com/beatworks/workshop-dashboard/internal/site"
	"github.com/beatworks/workshop-dashboard/internal/workshops"

	"github.com/rs/cors"
)

func main() {
	// Create context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Setup database connection
	conn, err := db.NewConnection(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close()

	// Run migrations
	if err := db.RunMigrations(cfg.Database); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create repositories
	changeRepo := repository.NewChangeRepository(conn.Pool)
	workshopRepo := repository.NewWorkshopRepository(conn.Pool)
	catalogRepo := repository.NewCatalogRepository(conn.Pool)
	siteRepo := repository.NewSiteRepository(conn.Pool)
	bandRepo := repository.NewBandRepository(conn.Pool)
	mediaRepo := repository.NewMediaRepository(conn.Pool)
	statsRepo := repository.NewStatsRepository(conn.Pool)

	blobs := blobstore.NewHTTPStore(cfg.BlobBaseURL, cfg.BlobToken)

	var quotes quote.Generator
	if cfg.AnthropicAPIKey != "" {
		quotes = quote.NewAnthropicGenerator(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	} else {
		log.Println("No Anthropic API key configured; quote drafting disabled")
	}

	// Create services
	changeService := changes.NewService(changeRepo, blobs)
	workshopService := workshops.NewService(workshopRepo, catalogRepo, quotes)
	mediaService := media.NewService(mediaRepo, blobs)
	dashboardService := dashboard.NewService(statsRepo)
	catalogHandler := catalog.NewHTTPHandler(catalogRepo)
	siteHandler := site.NewHTTPHandler(siteRepo)
	bandHandler := band.NewHTTPHandler(bandRepo)

	mux := http.NewServeMux()
	mount := func(prefix string, handler http.Handler) {
		wrapped := middleware.LoggingMiddleware(handler)
		mux.Handle(prefix, wrapped)
		mux.Handle(prefix+"/", wrapped)
	}
	mount("/changes", changes.NewHTTPHandler(changeService))
	mount("/workshops", workshops.NewHTTPHandler(workshopService))
	mount("/pricing", catalogHandler.Pricing())
	mount("/locations", catalogHandler.Locations())
	mount("/content", siteHandler.Content())
	mount("/team", siteHandler.Team())
	mount("/testimonials", siteHandler.Testimonials())
	mount("/faq", siteHandler.FAQ())
	mount("/shows", bandHandler.Shows())
	mount("/posts", bandHandler.Posts())
	mount("/media", media.NewHTTPHandler(mediaService))
	mount("/dashboard/stats", dashboard.NewHTTPHandler(dashboardService))

	// Setup CORS
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      corsHandler.Handler(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting dashboard API on %s", cfg.ServerAddr)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
