package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/cte-checker/internal/server"
)

var (
	serverAddr   string
	serverDebug  bool
	readTimeout  time.Duration
	writeTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server for comparing fiscal documents.

The API provides endpoints for:
  - POST /api/v1/compare  - Compare NF-e documents against a CT-e
  - POST /api/v1/info     - Detect document kind and keys
  - GET  /api/v1/rules    - List comparison rules
  - GET  /health          - Health check

Examples:
  # Start server on default port
  cte-checker serve

  # Start on custom port
  cte-checker serve --address :9090

  # Start in debug mode
  cte-checker serve --debug`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", ":8080", "Server listen address (env: CTE_CHECKER_ADDRESS)")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 30*time.Second, "HTTP read timeout")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", time.Minute, "HTTP write timeout")
	serveCmd.Flags().BoolVar(&cargoCheck, "cargo", false, "Reconcile the CT-e cargo value on every comparison")
}

func runServe(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if flags.Changed("address") {
		settings.Server.Address = serverAddr
	}
	if flags.Changed("debug") {
		settings.Server.Debug = serverDebug
	}
	if flags.Changed("cargo") {
		settings.Checks.CargoValue = cargoCheck
	}

	read, _ := settings.ReadTimeout()
	if flags.Changed("read-timeout") {
		read = readTimeout
	}
	write, _ := settings.WriteTimeout()
	if flags.Changed("write-timeout") {
		write = writeTimeout
	}

	srv := server.NewServer(&server.Config{
		Address:      settings.Server.Address,
		ReadTimeout:  read,
		WriteTimeout: write,
		Debug:        settings.Server.Debug,
		CargoCheck:   settings.Checks.CargoValue,
		Logger:       logger,
	})

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		fmt.Println("\nShutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	fmt.Printf("Starting server on %s\n", settings.Server.Address)
	if settings.Checks.CargoValue {
		fmt.Println("Cargo value reconciliation enabled")
	}

	return srv.Run()
}
