//	@title			Support Auditor API
//	@version		1.0
//	@description	Call-recording intake: presigned or local uploads plus a call metadata catalog.
//
//	@host		localhost:8080
//	@BasePath	/

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/spandan3/sentiment-flow/internal/call"
	"github.com/spandan3/sentiment-flow/internal/config"
	"github.com/spandan3/sentiment-flow/internal/db"
	appMiddleware "github.com/spandan3/sentiment-flow/internal/middleware"
	"github.com/spandan3/sentiment-flow/internal/storage"
	"github.com/spandan3/sentiment-flow/internal/upload"

	_ "github.com/spandan3/sentiment-flow/docs/swagger"
)

func main() {
	cfg := config.Load()

	pool, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	// Storage mode is decided exactly once, here; every component below
	// receives the selector by injection.
	selector, err := storage.NewSelector(cfg)
	if err != nil {
		log.Fatalf("storage init failed: %v", err)
	}

	// Wire dependencies: repository → service → handler
	callRepo := call.NewPostgresRepository(pool)
	callSvc := call.NewService(callRepo)
	callHandler := call.NewHandler(callSvc)

	coordinator := upload.NewCoordinator(selector)
	uploadHandler := upload.NewHandler(coordinator, selector)

	// Router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Swagger UI — available at http://localhost:8080/swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/uploads", func(r chi.Router) {
		r.Post("/presign", uploadHandler.Presign)
		// Catch-all because object keys contain slashes (calls/<uuid>.<ext>).
		r.Post("/local/*", uploadHandler.UploadLocal)
		r.Get("/storage-mode", uploadHandler.StorageMode)
	})

	r.Route("/calls", func(r chi.Router) {
		r.Post("/", callHandler.Register)
		r.Get("/", callHandler.List)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("server listening on :%s (env=%s, storage=%s)", cfg.Port, cfg.AppEnv, selector.Mode())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-quit
	log.Println("shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}

	log.Println("server stopped")
}
