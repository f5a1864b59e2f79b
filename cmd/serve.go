/*
serve.go - HTTP server command

STARTUP SEQUENCE:
  1. Load configuration (.env + environment, flag overrides)
  2. Open the SQLite backend
  3. Wire the API handler and router
  4. Serve with graceful shutdown

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close the database
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/glasspay/paytrack/api"
	"github.com/glasspay/paytrack/config"
	"github.com/glasspay/paytrack/store/sqlite"
)

var (
	servePort int
	serveDB   string
	serveUser string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "HTTP server port (overrides PAYTRACK_PORT)")
	serveCmd.Flags().StringVar(&serveDB, "db", "", "SQLite database path (overrides PAYTRACK_DB, \":memory:\" allowed)")
	serveCmd.Flags().StringVar(&serveUser, "user", "", "User ID scoping the database (overrides PAYTRACK_USER)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if servePort != 0 {
		cfg.Port = servePort
	}
	if serveDB != "" {
		cfg.DBPath = serveDB
	}
	if serveUser != "" {
		cfg.UserID = serveUser
	}

	backend, err := sqlite.New(cfg.DBPath, cfg.UserID)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer backend.Close()

	handler := api.NewHandler(backend, cfg.Rates)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost:%d", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("Server stopped")
	return nil
}
