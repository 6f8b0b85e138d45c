// Package discord hosts the gateway-facing side of the bot: session setup,
// event dispatch, slash command registration, and the voice transport handed
// to the playback core.
package discord

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"groovebot/internal/config"
	"groovebot/internal/core"
	"groovebot/internal/engine"
	"groovebot/internal/player"
	"groovebot/internal/session"
	"groovebot/internal/storage"
)

const shutdownTimeout = 5 * time.Second

// Bot owns the Discord session and the playback components wired around it.
type Bot struct {
	dg      *discordgo.Session
	cfg     *config.Config
	storage *storage.Storage

	node      *engine.Node
	registry  *session.Registry
	conductor *player.Conductor
	reactor   *player.Reactor
	transport *voiceTransport

	log zerolog.Logger
}

// NewBot builds the session and the playback stack but does not connect yet.
func NewBot(cfg *config.Config, store *storage.Storage) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentsMessageContent

	b := &Bot{
		dg:      dg,
		cfg:     cfg,
		storage: store,
		log:     log.With().Str("component", "discord").Logger(),
	}

	b.transport = newVoiceTransport(dg)
	b.registry = session.NewRegistry()
	b.node = engine.NewNode(cfg.EngineAddress, cfg.EnginePassword, cfg.EngineSecure)
	notif := &notifier{dg: dg}
	b.reactor = player.NewReactor(b.registry, b.node, b.transport, notif)
	b.conductor = player.NewConductor(b.registry, b.node, b.transport, cfg.SearchPrefix)

	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onGuildCreate)
	dg.AddHandler(b.onInteractionCreate)
	dg.AddHandler(b.onMessageCreate)

	return b, nil
}

// Conductor exposes the playback command surface to the command packages.
func (b *Bot) Conductor() *player.Conductor { return b.conductor }

// Run connects to Discord, starts the engine event feed, and blocks until ctx
// is done.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.dg.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	defer b.dg.Close()

	// the gateway ready may not have landed yet, so resolve the bot user
	// over REST before opening the engine feed
	me, err := b.dg.User("@me")
	if err != nil {
		return fmt.Errorf("resolve bot user: %w", err)
	}
	go b.node.Listen(ctx, me.ID, b.reactor)

	<-ctx.Done()
	b.log.Info().Msg("shutdown signal received, disconnecting")
	b.shutdownSessions()
	return nil
}

// shutdownSessions leaves every connected guild so voice channels do not keep
// a ghost member after the process exits.
func (b *Bot) shutdownSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, s := range b.registry.Drain() {
		if err := b.node.DestroySession(ctx, s.GuildID()); err != nil {
			b.log.Warn().Err(err).Str("guild", s.GuildID()).Msg("engine teardown failed on shutdown")
		}
		if err := b.transport.Disconnect(ctx, s.GuildID()); err != nil {
			b.log.Warn().Err(err).Str("guild", s.GuildID()).Msg("voice disconnect failed on shutdown")
		}
	}
}

// FindUserVoiceState reports which voice channel the member occupies.
func (b *Bot) FindUserVoiceState(guildID, userID string) (*core.VoiceState, error) {
	guild, err := b.dg.State.Guild(guildID)
	if err != nil {
		return nil, fmt.Errorf("guild lookup: %w", err)
	}
	for _, vs := range guild.VoiceStates {
		if vs.UserID == userID {
			return &core.VoiceState{ChannelID: vs.ChannelID, UserID: userID}, nil
		}
	}
	return nil, player.ErrNotInVoiceChannel
}

func (b *Bot) isGuildBlacklisted(guildID string) bool {
	return slices.Contains(b.cfg.DiscordGuildBlacklist, guildID)
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.log.Info().Str("user", r.User.Username).Int("guilds", len(r.Guilds)).
		Msg("discord session ready")

	for _, g := range r.Guilds {
		if b.isGuildBlacklisted(g.ID) {
			b.log.Info().Str("guild", g.ID).Msg("leaving blacklisted guild")
			if err := s.GuildLeave(g.ID); err != nil {
				b.log.Error().Err(err).Str("guild", g.ID).Msg("failed to leave guild")
			}
			continue
		}
		if b.cfg.InitSlashCommands {
			if err := b.registerCommands(g.ID); err != nil {
				b.log.Error().Err(err).Str("guild", g.ID).Msg("slash command registration failed")
			}
		}
	}
	if !b.cfg.InitSlashCommands {
		b.log.Info().Msg("slash command registration skipped")
	}
}

func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	if b.isGuildBlacklisted(g.ID) {
		b.log.Info().Str("guild", g.ID).Msg("leaving blacklisted guild")
		if err := s.GuildLeave(g.ID); err != nil {
			b.log.Error().Err(err).Str("guild", g.ID).Msg("failed to leave guild")
		}
		return
	}
	if b.cfg.InitSlashCommands {
		if err := b.registerCommands(g.ID); err != nil {
			b.log.Error().Err(err).Str("guild", g.ID).Msg("slash command registration failed")
		}
	}
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	name := i.ApplicationCommandData().Name
	cmd, ok := core.GetCommand(name)
	if !ok {
		b.log.Warn().Str("command", name).Msg("unknown command")
		return
	}

	ctx := &core.SlashContext{Session: s, Event: i, Storage: b.storage}
	if err := cmd.Run(ctx); err != nil {
		b.log.Error().Err(err).Str("command", name).Msg("command failed")
		_ = core.RespondEphemeral(s, i, fmt.Sprintf("Error: %v", err))
	}
}

// onMessageCreate feeds guild messages to commands that react to messages,
// such as the role-triggered translator.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	for _, cmd := range core.AllCommands() {
		mh, ok := cmd.(core.MessageHandler)
		if !ok {
			continue
		}
		ctx := &core.MessageContext{Session: s, Event: m, Storage: b.storage}
		if err := mh.Message(ctx); err != nil {
			b.log.Error().Err(err).Str("command", cmd.Name()).Msg("message handler failed")
		}
	}
}

// registerCommands reconciles the guild's slash commands with the registry,
// pacing the writes to stay under Discord's command-update limits.
var registrationLimiter = rate.NewLimiter(rate.Limit(2), 1)

func (b *Bot) registerCommands(guildID string) error {
	appID := b.dg.State.User.ID

	existing, err := b.dg.ApplicationCommands(appID, guildID)
	if err != nil {
		return fmt.Errorf("list commands: %w", err)
	}

	wanted := map[string]*discordgo.ApplicationCommand{}
	for _, cmd := range core.AllCommands() {
		if sp, ok := cmd.(core.SlashProvider); ok {
			if def := sp.SlashDefinition(); def != nil {
				wanted[def.Name] = def
			}
		}
	}

	for _, old := range existing {
		if _, ok := wanted[old.Name]; ok {
			continue
		}
		if err := registrationLimiter.Wait(context.Background()); err != nil {
			return err
		}
		b.log.Info().Str("guild", guildID).Str("command", old.Name).Msg("deleting obsolete command")
		if err := b.dg.ApplicationCommandDelete(appID, guildID, old.ID); err != nil {
			b.log.Error().Err(err).Str("command", old.Name).Msg("command delete failed")
		}
	}

	for _, def := range wanted {
		if err := registrationLimiter.Wait(context.Background()); err != nil {
			return err
		}
		if _, err := b.dg.ApplicationCommandCreate(appID, guildID, def); err != nil {
			b.log.Error().Err(err).Str("command", def.Name).Str("guild", guildID).
				Msg("command create failed")
		}
	}
	return nil
}
