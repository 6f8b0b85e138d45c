package music

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"groovebot/internal/core"
)

type VolumeCommand struct{ base }

func (c *VolumeCommand) Name() string        { return "volume" }
func (c *VolumeCommand) Description() string { return "Set the playback volume" }

func (c *VolumeCommand) SlashDefinition() *discordgo.ApplicationCommand {
	minVol := 0.0
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "level",
				Description: "Volume level, 100 is normal",
				MinValue:    &minVol,
				Required:    true,
			},
		},
	}
}

func (c *VolumeCommand) Run(ctx interface{}) error {
	sc, ok := ctx.(*core.SlashContext)
	if !ok {
		return nil
	}

	level := int(optionInt(sc, "level", 100))
	accepted, err := c.deps.Conductor.SetVolume(context.Background(), sc.Event.GuildID, level)
	if err == nil && sc.Storage != nil {
		if serr := sc.Storage.SetVolume(sc.Event.GuildID, accepted); serr != nil {
			log.Warn().Err(serr).Str("guild", sc.Event.GuildID).Msg("volume persist failed")
		}
	}
	return respondOutcome(sc, err, fmt.Sprintf("Volume set to %d.", accepted))
}
