package main

import (
	"context"
	"fmt"

	"github.com/mcdev12/clicker/go/internal/audio"
	"github.com/mcdev12/clicker/go/internal/config"
	"github.com/mcdev12/clicker/go/internal/events"
	"github.com/mcdev12/clicker/go/internal/kvstore"
	"github.com/mcdev12/clicker/go/internal/leaderboard"
	"github.com/mcdev12/clicker/go/internal/round"
	"github.com/rs/zerolog/log"
)

const uiEventBuffer = 64

type Services struct {
	Controller *round.Controller
	Updates    *events.ChanSink
	Sound      *audio.Player
}

func setupServices(ctx context.Context, cfg config.Config) (*Services, error) {
	// Storage layer → Leaderboard store → Round controller

	kv, err := kvstore.NewFileStore(cfg.Storage.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	board := leaderboard.New(kv, cfg.Storage.Key, cfg.Storage.Size)

	updates := events.NewChanSink(uiEventBuffer)
	sink := events.Fanout{events.LogSink{}, updates}

	controller, err := round.NewController(ctx, cfg.Round(), board, sink)
	if err != nil {
		return nil, fmt.Errorf("failed to create round controller: %w", err)
	}

	sound, err := audio.NewPlayer(cfg.Audio.Enabled)
	if err != nil {
		// Non-fatal, game can run without sound
		log.Warn().Err(err).Msg("audio initialization failed")
	}

	return &Services{
		Controller: controller,
		Updates:    updates,
		Sound:      sound,
	}, nil
}

func (s *Services) Close() {
	s.Controller.Close()
	s.Sound.Close()
}
