package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	corecmd "groovebot/internal/command/core"
	musiccmd "groovebot/internal/command/music"
	translatecmd "groovebot/internal/command/translate"
	"groovebot/internal/config"
	"groovebot/internal/core"
	"groovebot/internal/discord"
	"groovebot/internal/logging"
	"groovebot/internal/storage"
	"groovebot/internal/translate"
	"groovebot/internal/version"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration error")
	}
	logging.Setup(cfg.LogLevel, cfg.LogPath)
	log.Info().Str("version", version.Version).Msgf("starting %s", version.AppName)

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		log.Fatal().Err(err).Msg("storage init failed")
	}
	defer store.Close()

	bot, err := discord.NewBot(cfg, store)
	if err != nil {
		log.Fatal().Err(err).Msg("bot init failed")
	}

	guildScoped := []core.Middleware{
		core.WithGroupAccessCheck(),
		core.WithGuildOnly(),
		core.WithAdminCheck(),
		core.WithCommandLogger(),
	}

	corecmd.Register(guildScoped...)
	musiccmd.Register(&musiccmd.Deps{
		Conductor: bot.Conductor(),
		Voice:     bot,
	}, guildScoped...)
	translatecmd.Register(&translatecmd.MessageTranslateCommand{
		Client: translate.NewClient(cfg.TranslateEndpoint, cfg.TranslateAPIKey),
		RoleJA: cfg.TranslateRoleJA,
		RoleEN: cfg.TranslateRoleEN,
	}, core.WithGroupAccessCheck())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := bot.Run(ctx); err != nil {
		log.Error().Err(err).Msg("bot exited with error")
		os.Exit(1)
	}
	log.Info().Msg("bot exited cleanly")
}
