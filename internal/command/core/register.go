package core

import "groovebot/internal/core"

// Register installs the maintenance commands wrapped in mws.
func Register(mws ...core.Middleware) {
	for _, cmd := range []core.Command{
		&PingCommand{},
		&AboutCommand{},
		&LogCommand{},
		&ToggleGroupCommand{},
	} {
		core.Register(cmd, mws...)
	}
}
