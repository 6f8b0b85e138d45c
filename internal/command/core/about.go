package core

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"groovebot/internal/core"
	"groovebot/internal/version"
)

const latencyPrecision = time.Millisecond

type AboutCommand struct{}

func (c *AboutCommand) Name() string        { return "about" }
func (c *AboutCommand) Description() string { return "About this bot" }
func (c *AboutCommand) Aliases() []string   { return nil }
func (c *AboutCommand) Group() string       { return "core" }
func (c *AboutCommand) Category() string    { return "🕯️ Information" }
func (c *AboutCommand) RequireAdmin() bool  { return false }

func (c *AboutCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *AboutCommand) Run(ctx interface{}) error {
	sc, ok := ctx.(*core.SlashContext)
	if !ok {
		return nil
	}
	return core.RespondEmbed(sc.Session, sc.Event, &discordgo.MessageEmbed{
		Title: version.AppName,
		Description: fmt.Sprintf(
			"A music bot that hands the heavy lifting to an external audio engine.\nVersion: `%s`",
			version.Version),
	})
}
