package core

import "sync"

var (
	regMu    sync.RWMutex
	registry = map[string]Command{}
)

// Register installs a command under its name and aliases, wrapped in the
// given middlewares (applied innermost first).
func Register(cmd Command, mws ...Middleware) {
	cmd = ApplyMiddlewares(cmd, mws...)
	regMu.Lock()
	defer regMu.Unlock()
	registry[cmd.Name()] = cmd
	for _, a := range cmd.Aliases() {
		registry[a] = cmd
	}
}

// GetCommand returns the command registered under name.
func GetCommand(name string) (Command, bool) {
	regMu.RLock()
	defer regMu.RUnlock()
	cmd, ok := registry[name]
	return cmd, ok
}

// AllCommands returns every registered command once, aliases deduplicated.
func AllCommands() []Command {
	regMu.RLock()
	defer regMu.RUnlock()
	seen := map[string]bool{}
	list := make([]Command, 0, len(registry))
	for _, cmd := range registry {
		if seen[cmd.Name()] {
			continue
		}
		seen[cmd.Name()] = true
		list = append(list, cmd)
	}
	return list
}
