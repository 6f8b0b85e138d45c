package music

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"groovebot/internal/core"
)

type PlayCommand struct{ base }

func (c *PlayCommand) Name() string        { return "play" }
func (c *PlayCommand) Description() string { return "Play a track by link or search query" }

func (c *PlayCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "query",
				Description: "Link or song name; leave empty to start the queued tracks",
				Required:    false,
			},
		},
	}
}

func (c *PlayCommand) Run(ctx interface{}) error {
	sc, ok := ctx.(*core.SlashContext)
	if !ok {
		return nil
	}

	// track resolution is network-bound, so acknowledge first
	if err := core.Defer(sc.Session, sc.Event); err != nil {
		return fmt.Errorf("defer response: %w", err)
	}

	report, err := c.deps.Conductor.Play(context.Background(),
		sc.Event.GuildID,
		sc.Event.Member.User.ID,
		userVoiceChannel(c.deps, sc),
		sc.Event.ChannelID,
		optionString(sc, "query"),
	)
	if err != nil {
		return core.Followup(sc.Session, sc.Event, fmt.Sprintf("Error: %v", err))
	}

	switch {
	case report.StartedHead:
		return core.Followup(sc.Session, sc.Event, "Starting the queued tracks.")
	case report.PlaylistName != "":
		return core.FollowupEmbed(sc.Session, sc.Event, &discordgo.MessageEmbed{
			Title: "Playlist Added",
			Description: fmt.Sprintf("**%s**: %s queued",
				report.PlaylistName, plural(len(report.Added), "track")),
		})
	case len(report.Added) == 1:
		return core.FollowupEmbed(sc.Session, sc.Event, &discordgo.MessageEmbed{
			Title:       "Track Added",
			Description: report.Added[0].Track.Info.Title,
		})
	default:
		return core.Followup(sc.Session, sc.Event,
			fmt.Sprintf("%s queued.", plural(len(report.Added), "track")))
	}
}
