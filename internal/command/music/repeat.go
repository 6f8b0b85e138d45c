package music

import (
	"github.com/bwmarrin/discordgo"

	"groovebot/internal/core"
)

type RepeatCommand struct{ base }

func (c *RepeatCommand) Name() string        { return "repeat" }
func (c *RepeatCommand) Description() string { return "Toggle repeating the current track" }

func (c *RepeatCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *RepeatCommand) Run(ctx interface{}) error {
	sc, ok := ctx.(*core.SlashContext)
	if !ok {
		return nil
	}

	enabled, err := c.deps.Conductor.ToggleRepeat(sc.Event.GuildID)
	msg := "Repeat is off."
	if enabled {
		msg = "Repeat is on; finished tracks play again."
	}
	return respondOutcome(sc, err, msg)
}
