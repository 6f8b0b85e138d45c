// Package music holds the playback slash commands. Each command translates
// its interaction into a Conductor call and renders the outcome.
package music

import (
	"errors"
	"fmt"

	"groovebot/internal/core"
	"groovebot/internal/player"
)

const (
	group    = "music"
	category = "🎵 Music"
)

// Deps is everything a music command needs at runtime.
type Deps struct {
	Conductor *player.Conductor
	Voice     core.VoiceStateFinder
}

// Register installs all playback commands wrapped in mws.
func Register(deps *Deps, mws ...core.Middleware) {
	for _, cmd := range []core.Command{
		&JoinCommand{base{deps}},
		&LeaveCommand{base{deps}},
		&PlayCommand{base{deps}},
		&SkipCommand{base{deps}},
		&PauseCommand{base{deps}},
		&ResumeCommand{base{deps}},
		&StopCommand{base{deps}},
		&SeekCommand{base{deps}},
		&RemoveCommand{base{deps}},
		&ClearCommand{base{deps}},
		&ShuffleCommand{base{deps}},
		&QueueCommand{base{deps}},
		&VolumeCommand{base{deps}},
		&RepeatCommand{base{deps}},
	} {
		core.Register(cmd, mws...)
	}
}

// base supplies the attributes shared by every music command.
type base struct{ deps *Deps }

func (base) Aliases() []string  { return nil }
func (base) Group() string      { return group }
func (base) Category() string   { return category }
func (base) RequireAdmin() bool { return false }

// respondOutcome reports err as an ephemeral message when it is one of the
// expected user-facing preconditions, otherwise propagates it so the dispatch
// layer logs it.
func respondOutcome(ctx *core.SlashContext, err error, ok string) error {
	if err == nil {
		return core.Respond(ctx.Session, ctx.Event, ok)
	}
	if isUserError(err) {
		return core.RespondEphemeral(ctx.Session, ctx.Event, err.Error())
	}
	return err
}

func isUserError(err error) bool {
	return errors.Is(err, player.ErrNotInVoiceChannel) ||
		errors.Is(err, player.ErrNotConnected) ||
		errors.Is(err, player.ErrNothingPlaying) ||
		errors.Is(err, player.ErrQueueEmpty)
}

// userVoiceChannel resolves the invoking member's voice channel, or "" when
// they are not in one.
func userVoiceChannel(deps *Deps, ctx *core.SlashContext) string {
	if ctx.Event.Member == nil {
		return ""
	}
	vs, err := deps.Voice.FindUserVoiceState(ctx.Event.GuildID, ctx.Event.Member.User.ID)
	if err != nil || vs == nil {
		return ""
	}
	return vs.ChannelID
}

func optionString(ctx *core.SlashContext, name string) string {
	for _, opt := range ctx.Event.ApplicationCommandData().Options {
		if opt.Name == name {
			return opt.StringValue()
		}
	}
	return ""
}

func optionInt(ctx *core.SlashContext, name string, fallback int64) int64 {
	for _, opt := range ctx.Event.ApplicationCommandData().Options {
		if opt.Name == name {
			return opt.IntValue()
		}
	}
	return fallback
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
