package music

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"groovebot/internal/core"
	"groovebot/internal/discord"
)

const queueViewLimit = 10

type QueueCommand struct{ base }

func (c *QueueCommand) Name() string        { return "queue" }
func (c *QueueCommand) Description() string { return "Show the upcoming tracks" }

func (c *QueueCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *QueueCommand) Run(ctx interface{}) error {
	sc, ok := ctx.(*core.SlashContext)
	if !ok {
		return nil
	}

	view, err := c.deps.Conductor.QueueView(sc.Event.GuildID, queueViewLimit)
	if err != nil {
		return respondOutcome(sc, err, "")
	}
	if len(view) == 0 {
		return core.Respond(sc.Session, sc.Event, "The queue is empty.")
	}

	var sb strings.Builder
	for i, qt := range view {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, discord.TrackLine(qt.Track))
	}
	return core.RespondEmbed(sc.Session, sc.Event, &discordgo.MessageEmbed{
		Title:       "Queue",
		Description: sb.String(),
	})
}
