package core

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"groovebot/internal/core"
)

// ToggleGroupCommand lets guild admins disable a command group, e.g. turn the
// music commands off on a server that only wants translation.
type ToggleGroupCommand struct{}

func (c *ToggleGroupCommand) Name() string        { return "cmd-toggle" }
func (c *ToggleGroupCommand) Description() string { return "Enable or disable a command group" }
func (c *ToggleGroupCommand) Aliases() []string   { return nil }
func (c *ToggleGroupCommand) Group() string       { return "" } // never locked out
func (c *ToggleGroupCommand) Category() string    { return "⚙️ Settings" }
func (c *ToggleGroupCommand) RequireAdmin() bool  { return true }

func (c *ToggleGroupCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "group",
				Description: "Command group",
				Required:    true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "music", Value: "music"},
					{Name: "translate", Value: "translate"},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionBoolean,
				Name:        "enabled",
				Description: "Whether the group should be available",
				Required:    true,
			},
		},
	}
}

func (c *ToggleGroupCommand) Run(ctx interface{}) error {
	sc, ok := ctx.(*core.SlashContext)
	if !ok {
		return nil
	}

	var group string
	var enabled bool
	for _, opt := range sc.Event.ApplicationCommandData().Options {
		switch opt.Name {
		case "group":
			group = opt.StringValue()
		case "enabled":
			enabled = opt.BoolValue()
		}
	}

	var err error
	if enabled {
		err = sc.Storage.EnableGroup(sc.Event.GuildID, group)
	} else {
		err = sc.Storage.DisableGroup(sc.Event.GuildID, group)
	}
	if err != nil {
		return err
	}

	state := "disabled"
	if enabled {
		state = "enabled"
	}
	return core.Respond(sc.Session, sc.Event, fmt.Sprintf("Group `%s` is now %s.", group, state))
}
