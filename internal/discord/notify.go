package discord

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"groovebot/internal/core"
	"groovebot/internal/engine"
)

// notifier posts playback embeds to the guild's reply channel. Delivery is
// best effort; a failed message never disturbs playback.
type notifier struct {
	dg *discordgo.Session
}

func (n *notifier) NowPlaying(channelID string, track engine.Track) {
	if channelID == "" {
		return
	}
	_, err := n.dg.ChannelMessageSendEmbed(channelID, &discordgo.MessageEmbed{
		Title:       "Now Playing",
		Description: TrackLine(track),
		Color:       core.EmbedColor,
	})
	if err != nil {
		log.Warn().Err(err).Str("channel", channelID).Msg("now-playing message failed")
	}
}

// TrackLine renders a track as a markdown line, linking the title when the
// track has a public URI.
func TrackLine(track engine.Track) string {
	title := track.Info.Title
	if title == "" {
		title = "Unknown track"
	}
	line := title
	if track.Info.URI != "" {
		line = fmt.Sprintf("[%s](%s)", title, track.Info.URI)
	}
	if track.Info.Author != "" {
		line += " by " + track.Info.Author
	}
	if track.Info.IsStream {
		line += " (live)"
	} else if track.Info.Length > 0 {
		line += " `" + FormatDuration(time.Duration(track.Info.Length)*time.Millisecond) + "`"
	}
	return line
}

// FormatDuration renders h:mm:ss, dropping the hour part for short tracks.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
