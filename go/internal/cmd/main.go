package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
	"github.com/mcdev12/clicker/go/internal/config"
	"github.com/mcdev12/clicker/go/internal/tui"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", os.Getenv("CLICKER_CONFIG"), "path to YAML config file")
	flag.Parse()

	// Load .env file if it exists
	envErr := godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logFile, err := setupLogging(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	if envErr != nil {
		log.Debug().Err(envErr).Msg("could not load .env file")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	services, err := setupServices(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("failed to set up services")
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer services.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Error().Err(err).Msg("failed to create screen")
		fmt.Fprintf(os.Stderr, "failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		log.Error().Err(err).Msg("failed to init screen")
		fmt.Fprintf(os.Stderr, "failed to init screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	log.Info().
		Str("policy", cfg.Game.Policy).
		Str("data_dir", cfg.Storage.Dir).
		Bool("audio", services.Sound.Enabled()).
		Msg("starting osu! clicker")

	ui := tui.New(screen, services.Controller, services.Updates.Events(), services.Sound)
	if err := ui.Run(ctx); err != nil {
		log.Error().Err(err).Msg("ui stopped with error")
	}

	log.Info().Msg("osu! clicker shutdown complete")
}

// setupLogging sends the global logger to a file, since the terminal belongs to the UI
func setupLogging(cfg config.LogConfig) (*os.File, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: f, NoColor: true})
	zerolog.SetGlobalLevel(level)
	return f, nil
}
