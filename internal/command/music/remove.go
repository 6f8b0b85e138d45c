package music

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"groovebot/internal/core"
	"groovebot/internal/session"
)

type RemoveCommand struct{ base }

func (c *RemoveCommand) Name() string        { return "remove" }
func (c *RemoveCommand) Description() string { return "Remove a track from the queue" }

func (c *RemoveCommand) SlashDefinition() *discordgo.ApplicationCommand {
	minPos := 1.0
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "position",
				Description: "Queue position to remove, as shown by /queue",
				MinValue:    &minPos,
				Required:    true,
			},
		},
	}
}

func (c *RemoveCommand) Run(ctx interface{}) error {
	sc, ok := ctx.(*core.SlashContext)
	if !ok {
		return nil
	}

	// the queue view is 1-based
	index := int(optionInt(sc, "position", 1)) - 1
	removed, err := c.deps.Conductor.Remove(sc.Event.GuildID, index)
	if errors.Is(err, session.ErrIndexOutOfRange) {
		return core.RespondEphemeral(sc.Session, sc.Event, "No track at that position.")
	}
	return respondOutcome(sc, err,
		fmt.Sprintf("Removed **%s** from the queue.", removed.Track.Info.Title))
}
