package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rgehrsitz/obbbcalc/internal/api"
	"github.com/rgehrsitz/obbbcalc/internal/calculation"
	"github.com/spf13/cobra"
)

// portEnv names the environment variable holding the default server port
const portEnv = "OBBB_PORT"

func defaultPort() int {
	if v := os.Getenv(portEnv); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			return port
		}
	}
	return 8080
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long:  `Start an HTTP server exposing the estimate, summary and comparison endpoints under /api.`,
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	cmd.Flags().Int("port", defaultPort(), "Port to listen on (default from $"+portEnv+")")
	cmd.Flags().StringSlice("origins", nil, "Allowed CORS origins (default: local development origins)")
	cmd.Flags().Bool("debug", false, "Log calculation details")
	addRulesFlag(cmd)
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	rules, err := loadRules(cmd)
	if err != nil {
		return err
	}
	port, _ := cmd.Flags().GetInt("port")
	origins, _ := cmd.Flags().GetStringSlice("origins")

	var logger calculation.Logger
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		logger = simpleCLILogger{}
	}
	handler := api.NewHandler(rules, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      api.NewRouter(handler, origins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on http://localhost:%d", port)
		log.Printf("API available at http://localhost:%d/api", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-quit:
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Println("Server stopped")
	return nil
}
