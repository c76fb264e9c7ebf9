package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/omar10996-hub/trading/internal/alpaca"
	"github.com/omar10996-hub/trading/internal/config"
	"github.com/omar10996-hub/trading/internal/logger"
	"github.com/omar10996-hub/trading/internal/server"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Initialize the Alpaca client. Startup does not verify connectivity:
	// with missing or placeholder credentials every call fails at request
	// time instead, and /health reports the connection as down.
	client := alpaca.NewClient(&cfg.Alpaca, log)

	router := server.NewRouter(client, log)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("Starting trading API server", zap.String("address", addr))

	if err := router.Run(addr); err != nil {
		log.Fatal("Server failed", zap.Error(err))
	}
}
