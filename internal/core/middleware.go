package core

import (
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"groovebot/internal/storage"
)

type Middleware func(Command) Command

type wrappedCommand struct {
	Command
	wrap func(ctx interface{}) error
}

func (w *wrappedCommand) Run(ctx interface{}) error {
	if w.wrap != nil {
		return w.wrap(ctx)
	}
	return w.Command.Run(ctx)
}

func (w *wrappedCommand) Message(ctx *MessageContext) error {
	if w.wrap != nil {
		return w.wrap(ctx)
	}
	if mh, ok := w.Command.(MessageHandler); ok {
		return mh.Message(ctx)
	}
	return nil
}

func (w *wrappedCommand) SlashDefinition() *discordgo.ApplicationCommand {
	if sp, ok := w.Command.(SlashProvider); ok {
		return sp.SlashDefinition()
	}
	return nil
}

func ApplyMiddlewares(cmd Command, mws ...Middleware) Command {
	for _, mw := range mws {
		cmd = mw(cmd)
	}
	return cmd
}

// WithGuildOnly drops interactions that arrive outside a guild (DMs).
func WithGuildOnly() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				if v, ok := ctx.(*SlashContext); ok && v.Event.GuildID == "" {
					return RespondEphemeral(v.Session, v.Event, "This command only works in a server.")
				}
				if v, ok := ctx.(*MessageContext); ok && v.Event.GuildID == "" {
					return nil
				}
				return cmd.Run(ctx)
			},
		}
	}
}

// WithGroupAccessCheck silently skips commands whose group a guild disabled.
func WithGroupAccessCheck() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				var guildID string
				var store *storage.Storage

				switch v := ctx.(type) {
				case *SlashContext:
					guildID = v.Event.GuildID
					store = v.Storage
				case *MessageContext:
					guildID = v.Event.GuildID
					store = v.Storage
				default:
					return cmd.Run(ctx)
				}

				if cmd.Group() != "" && store != nil {
					disabled, err := store.IsGroupDisabled(guildID, cmd.Group())
					if err == nil && disabled {
						if v, ok := ctx.(*SlashContext); ok {
							return RespondEphemeral(v.Session, v.Event, "This command group is disabled on this server.")
						}
						return nil
					}
				}
				return cmd.Run(ctx)
			},
		}
	}
}

// WithCommandLogger records slash invocations in the guild's command history.
func WithCommandLogger() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				if v, ok := ctx.(*SlashContext); ok && v.Storage != nil && v.Event.Member != nil {
					entry := storage.CommandHistoryRecord{
						ChannelID: v.Event.ChannelID,
						UserID:    v.Event.Member.User.ID,
						Username:  v.Event.Member.User.Username,
						Command:   cmd.Name(),
						Datetime:  time.Now(),
					}
					if ch, err := v.Session.State.Channel(v.Event.ChannelID); err == nil {
						entry.ChannelName = ch.Name
					}
					if g, err := v.Session.State.Guild(v.Event.GuildID); err == nil {
						entry.GuildName = g.Name
					}
					if err := v.Storage.AppendCommandToHistory(v.Event.GuildID, entry); err != nil {
						log.Warn().Err(err).Str("command", cmd.Name()).Msg("command history write failed")
					}
				}
				return cmd.Run(ctx)
			},
		}
	}
}

// WithAdminCheck rejects admin-only commands from regular members.
func WithAdminCheck() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				v, ok := ctx.(*SlashContext)
				if !ok || !cmd.RequireAdmin() {
					return cmd.Run(ctx)
				}
				if v.Event.Member == nil || !IsAdministrator(v.Session, v.Event.GuildID, v.Event.Member) {
					return RespondEphemeral(v.Session, v.Event, "You need administrator rights for that.")
				}
				return cmd.Run(ctx)
			},
		}
	}
}
