// Package translate bridges languages in chat: messages from members holding
// a configured language role are reposted in the other language.
package translate

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"groovebot/internal/core"
	"groovebot/internal/translate"
)

const translateTimeout = 15 * time.Second

type MessageTranslateCommand struct {
	Client *translate.Client
	RoleJA string // members with this role write Japanese; translated to English
	RoleEN string // members with this role write English; translated to Japanese
}

// Register installs the translator when an API endpoint is configured.
func Register(cmd *MessageTranslateCommand, mws ...core.Middleware) {
	if !cmd.Client.Configured() {
		log.Info().Msg("translation API not configured, translator disabled")
		return
	}
	core.Register(cmd, mws...)
}

func (c *MessageTranslateCommand) Name() string        { return "translate" }
func (c *MessageTranslateCommand) Description() string { return "Translate messages between languages" }
func (c *MessageTranslateCommand) Aliases() []string   { return nil }
func (c *MessageTranslateCommand) Group() string       { return "translate" }
func (c *MessageTranslateCommand) Category() string    { return "🗨️ Chat" }
func (c *MessageTranslateCommand) RequireAdmin() bool  { return false }

func (c *MessageTranslateCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: "Translate a text",
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "text",
				Description: "Text to translate",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "to",
				Description: "Target language",
				Required:    true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "English", Value: "EN"},
					{Name: "Japanese", Value: "JA"},
				},
			},
		},
	}
}

// Run handles the explicit slash form; the auto mode reacts to messages.
func (c *MessageTranslateCommand) Run(ctx interface{}) error {
	if mc, ok := ctx.(*core.MessageContext); ok {
		return c.Message(mc)
	}
	sc, ok := ctx.(*core.SlashContext)
	if !ok {
		return nil
	}

	var text, target string
	for _, opt := range sc.Event.ApplicationCommandData().Options {
		switch opt.Name {
		case "text":
			text = opt.StringValue()
		case "to":
			target = opt.StringValue()
		}
	}

	if err := core.Defer(sc.Session, sc.Event); err != nil {
		return err
	}

	tctx, cancel := context.WithTimeout(context.Background(), translateTimeout)
	defer cancel()

	translated, err := c.Client.Translate(tctx, text, target)
	if err != nil {
		return core.Followup(sc.Session, sc.Event, "Translation failed: "+err.Error())
	}
	return core.Followup(sc.Session, sc.Event, translated)
}

func (c *MessageTranslateCommand) Message(ctx *core.MessageContext) error {
	m := ctx.Event
	if m.GuildID == "" || m.Member == nil {
		return nil
	}
	content := strings.TrimSpace(m.Content)
	if content == "" || strings.HasPrefix(content, "http") {
		return nil
	}

	var target string
	switch {
	case c.RoleJA != "" && slices.Contains(m.Member.Roles, c.RoleJA):
		target = "EN"
	case c.RoleEN != "" && slices.Contains(m.Member.Roles, c.RoleEN):
		target = "JA"
	default:
		return nil
	}

	tctx, cancel := context.WithTimeout(context.Background(), translateTimeout)
	defer cancel()

	translated, err := c.Client.Translate(tctx, content, target)
	if err != nil {
		log.Warn().Err(err).Str("guild", m.GuildID).Msg("translation failed")
		return nil
	}
	if strings.EqualFold(strings.TrimSpace(translated), content) {
		// already in the target language
		return nil
	}

	_, err = ctx.Session.ChannelMessageSendReply(m.ChannelID, translated, m.Reference())
	if err != nil {
		log.Warn().Err(err).Str("channel", m.ChannelID).Msg("translated reply failed")
	}
	return nil
}

var _ core.MessageHandler = (*MessageTranslateCommand)(nil)
