package core

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"groovebot/internal/core"
)

type LogCommand struct{}

func (c *LogCommand) Name() string        { return "cmd-log" }
func (c *LogCommand) Description() string { return "Review recently used commands" }
func (c *LogCommand) Aliases() []string   { return nil }
func (c *LogCommand) Group() string       { return "core" }
func (c *LogCommand) Category() string    { return "⚙️ Settings" }
func (c *LogCommand) RequireAdmin() bool  { return true }

func (c *LogCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *LogCommand) Run(ctx interface{}) error {
	sc, ok := ctx.(*core.SlashContext)
	if !ok {
		return nil
	}

	history, err := sc.Storage.FetchCommandHistory(sc.Event.GuildID)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		return core.RespondEphemeral(sc.Session, sc.Event, "No commands recorded yet.")
	}

	var sb strings.Builder
	for _, rec := range history {
		fmt.Fprintf(&sb, "%s  /%s  by %s in #%s\n",
			rec.Datetime.Format("2006-01-02 15:04"),
			rec.Command, rec.Username, rec.ChannelName)
	}
	return core.RespondEphemeral(sc.Session, sc.Event, "```\n"+sb.String()+"```")
}
