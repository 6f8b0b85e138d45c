package music

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"groovebot/internal/core"
)

type ClearCommand struct{ base }

func (c *ClearCommand) Name() string        { return "clear" }
func (c *ClearCommand) Description() string { return "Clear the queue, keeping the current track" }

func (c *ClearCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *ClearCommand) Run(ctx interface{}) error {
	sc, ok := ctx.(*core.SlashContext)
	if !ok {
		return nil
	}

	cleared, err := c.deps.Conductor.Clear(sc.Event.GuildID)
	return respondOutcome(sc, err,
		fmt.Sprintf("Cleared %s from the queue.", plural(cleared, "track")))
}

type ShuffleCommand struct{ base }

func (c *ShuffleCommand) Name() string        { return "shuffle" }
func (c *ShuffleCommand) Description() string { return "Shuffle the queue" }

func (c *ShuffleCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *ShuffleCommand) Run(ctx interface{}) error {
	sc, ok := ctx.(*core.SlashContext)
	if !ok {
		return nil
	}

	shuffled, err := c.deps.Conductor.Shuffle(sc.Event.GuildID)
	return respondOutcome(sc, err,
		fmt.Sprintf("Shuffled %s.", plural(shuffled, "track")))
}
