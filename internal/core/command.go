// Package core defines the command framework: the Command interface, the
// runtime contexts handed to commands, the registry and the middleware chain.
package core

import (
	"github.com/bwmarrin/discordgo"

	"groovebot/internal/storage"
)

type Command interface {
	Name() string
	Description() string
	Aliases() []string
	Group() string
	Category() string
	RequireAdmin() bool
	Run(ctx interface{}) error
}

// SlashProvider marks a command that registers a slash definition with
// Discord.
type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

// MessageHandler marks a command that reacts to plain guild messages instead
// of (or in addition to) interactions.
type MessageHandler interface {
	Message(ctx *MessageContext) error
}

// SlashContext is what the runtime hands a command for a slash interaction.
type SlashContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Storage *storage.Storage
}

// MessageContext is what the runtime hands a command for a guild message.
type MessageContext struct {
	Session *discordgo.Session
	Event   *discordgo.MessageCreate
	Storage *storage.Storage
}

// VoiceState holds the minimal voice channel state for a user.
type VoiceState struct {
	ChannelID string
	UserID    string
}

// VoiceStateFinder resolves which voice channel a guild member currently
// occupies. Implemented by the Discord bot.
type VoiceStateFinder interface {
	FindUserVoiceState(guildID, userID string) (*VoiceState, error)
}
