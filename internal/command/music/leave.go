package music

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"groovebot/internal/core"
)

type LeaveCommand struct{ base }

func (c *LeaveCommand) Name() string        { return "leave" }
func (c *LeaveCommand) Description() string { return "Leave the voice channel and drop the queue" }

func (c *LeaveCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *LeaveCommand) Run(ctx interface{}) error {
	sc, ok := ctx.(*core.SlashContext)
	if !ok {
		return nil
	}

	left, err := c.deps.Conductor.Leave(context.Background(), sc.Event.GuildID)
	if err != nil {
		return respondOutcome(sc, err, "")
	}
	if !left {
		return core.RespondEphemeral(sc.Session, sc.Event, "I'm not in a voice channel.")
	}
	return core.Respond(sc.Session, sc.Event, "Left the voice channel.")
}
