package music

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"groovebot/internal/core"
)

type JoinCommand struct{ base }

func (c *JoinCommand) Name() string        { return "join" }
func (c *JoinCommand) Description() string { return "Join your voice channel" }

func (c *JoinCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionChannel,
				Name:        "channel",
				Description: "Voice channel to join instead of yours",
				ChannelTypes: []discordgo.ChannelType{
					discordgo.ChannelTypeGuildVoice,
				},
				Required: false,
			},
		},
	}
}

func (c *JoinCommand) Run(ctx interface{}) error {
	sc, ok := ctx.(*core.SlashContext)
	if !ok {
		return nil
	}

	voiceChannelID := ""
	for _, opt := range sc.Event.ApplicationCommandData().Options {
		if opt.Name == "channel" {
			voiceChannelID = opt.ChannelValue(nil).ID
		}
	}
	if voiceChannelID == "" {
		voiceChannelID = userVoiceChannel(c.deps, sc)
	}

	_, created, err := c.deps.Conductor.Join(context.Background(),
		sc.Event.GuildID, voiceChannelID, sc.Event.ChannelID)
	if err != nil {
		return respondOutcome(sc, err, "")
	}
	if !created {
		return core.Respond(sc.Session, sc.Event, "Already connected; I'll reply here now.")
	}
	return core.Respond(sc.Session, sc.Event, "Joined your voice channel.")
}
