package music

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"groovebot/internal/core"
)

type StopCommand struct{ base }

func (c *StopCommand) Name() string        { return "stop" }
func (c *StopCommand) Description() string { return "Stop playback, keeping the queue" }

func (c *StopCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *StopCommand) Run(ctx interface{}) error {
	sc, ok := ctx.(*core.SlashContext)
	if !ok {
		return nil
	}

	stopped, err := c.deps.Conductor.Stop(context.Background(), sc.Event.GuildID)
	return respondOutcome(sc, err,
		fmt.Sprintf("Stopped **%s**. Use /play to continue the queue.", stopped.Track.Info.Title))
}
