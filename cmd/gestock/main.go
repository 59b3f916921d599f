// Package main implements an interactive stock management tool backed by
// a JSON data file.
package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/dparodi/gestock/internal/cli"
	"github.com/dparodi/gestock/internal/config"
	"github.com/dparodi/gestock/internal/product/service"
	"github.com/dparodi/gestock/internal/product/store"
)

func main() {
	// Load configuration
	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		log.Fatalf("Error loading configuration: %v", cfgErr)
	}

	// Set up structured logging. Logs go to stderr; stdout belongs to the menu.
	logLevel, logger := newLogger(cfg)
	logger.Info("Stock manager starting...", "config", cfg.String(), "actual_slog_level", logLevel.String())

	productStore := store.NewFileStore(cfg.Data.File, logger)
	inventory := service.NewService(productStore, logger)
	logger.Info("Inventory loaded", "products", len(inventory.List()))

	// Ctrl-C ends the session cleanly instead of killing a half-typed prompt.
	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt)
	go func() {
		<-sigint
		fmt.Println("\nGoodbye!")
		os.Exit(0)
	}()

	menu := cli.NewMenu(inventory, os.Stdin, os.Stdout)
	menu.Run()
}

func newLogger(cfg *config.Config) (slog.Level, *slog.Logger) {
	logLevel := toLevel(cfg.Log.Level)
	loggerOpts := &slog.HandlerOptions{
		AddSource: logLevel == slog.LevelDebug,
		Level:     logLevel,
	}
	logHandler := slog.NewJSONHandler(os.Stderr, loggerOpts)
	logger := slog.New(logHandler)
	return logLevel, logger
}

// toLevel converts a string representation of a log level to slog.Level.
func toLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
