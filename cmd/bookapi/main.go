package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"book-api/pkg/api"
	"book-api/pkg/config"
	"book-api/pkg/dao"
	"book-api/pkg/database"
	"book-api/pkg/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @title Books api
// @version 1.0.0
// @description A simple books api.
// @BasePath /
func main() {
	config.LoadDotEnv()

	if len(os.Args) < 2 || os.Args[1] == "serve" {
		if err := serve(config.NewConfig()); err != nil {
			log.Fatalf("[ERROR] %v", err)
		}
		return
	}

	switch command := os.Args[1]; command {
	case "seed":
		if err := seed(config.NewConfig()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "-h", "--help", "help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command>\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve   Start the HTTP server (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  seed    Create the tables and load the sample catalog\n")
	fmt.Fprintf(os.Stderr, "  help    Show this message\n")
}

func seed(cfg *config.Config) error {
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Seed(db); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	log.Println("[INFO] Sample data loaded")
	return nil
}

func serve(cfg *config.Config) error {
	log.Println("[INFO] Starting book api...")
	gin.SetMode(cfg.HTTP.Mode)

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if cfg.Database.Seed {
		if err := database.Seed(db); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		log.Println("[INFO] Sample data loaded")
	}

	srv := &http.Server{
		Addr:    cfg.HTTP.Addr(),
		Handler: newRouter(cfg, db),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[INFO] Book api listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		log.Printf("[INFO] Received %s, shutting down within %v", sig, cfg.Global.ShutdownTimeout)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Global.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Println("[INFO] Server exiting")
	return nil
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

func newRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	var limiter *middleware.IPRateLimiter
	if cfg.RateLimit.RPS > 0 {
		limiter = middleware.NewIPRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		log.Printf("[INFO] Rate limiting %.2f req/s per client, burst %d", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	return api.NewRouter(api.RouterConfig{
		Books:          dao.NewBookDAO(db),
		Authors:        dao.NewAuthorDAO(db),
		DB:             db,
		TrustedProxies: cfg.HTTP.TrustedProxies,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RateLimiter:    limiter,
	})
}
