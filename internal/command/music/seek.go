package music

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"groovebot/internal/core"
)

type SeekCommand struct{ base }

func (c *SeekCommand) Name() string        { return "seek" }
func (c *SeekCommand) Description() string { return "Jump to a position in the current track" }

func (c *SeekCommand) SlashDefinition() *discordgo.ApplicationCommand {
	minPos := 0.0
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "seconds",
				Description: "Position in seconds from the start",
				MinValue:    &minPos,
				Required:    true,
			},
		},
	}
}

func (c *SeekCommand) Run(ctx interface{}) error {
	sc, ok := ctx.(*core.SlashContext)
	if !ok {
		return nil
	}

	seconds := optionInt(sc, "seconds", 0)
	err := c.deps.Conductor.Seek(context.Background(), sc.Event.GuildID, seconds)
	pos := time.Duration(seconds) * time.Second
	return respondOutcome(sc, err, fmt.Sprintf("Jumped to %s.", pos))
}
