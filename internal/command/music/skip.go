package music

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"groovebot/internal/core"
)

type SkipCommand struct{ base }

func (c *SkipCommand) Name() string        { return "skip" }
func (c *SkipCommand) Description() string { return "Skip to the next track" }

func (c *SkipCommand) SlashDefinition() *discordgo.ApplicationCommand {
	minCount := 1.0
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "count",
				Description: "How many tracks to skip",
				MinValue:    &minCount,
				Required:    false,
			},
		},
	}
}

func (c *SkipCommand) Run(ctx interface{}) error {
	sc, ok := ctx.(*core.SlashContext)
	if !ok {
		return nil
	}

	n := int(optionInt(sc, "count", 1))
	skipped, err := c.deps.Conductor.Skip(context.Background(), sc.Event.GuildID, n)
	return respondOutcome(sc, err,
		fmt.Sprintf("Skipped **%s**.", skipped.Track.Info.Title))
}
