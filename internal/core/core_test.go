package core

import (
	"path/filepath"
	"testing"

	"groovebot/internal/storage"
)

type stubCommand struct {
	name    string
	aliases []string
	group   string
	runs    int
	lastCtx interface{}
}

func (c *stubCommand) Name() string        { return c.name }
func (c *stubCommand) Description() string { return "stub" }
func (c *stubCommand) Aliases() []string   { return c.aliases }
func (c *stubCommand) Group() string       { return c.group }
func (c *stubCommand) Category() string    { return "test" }
func (c *stubCommand) RequireAdmin() bool  { return false }
func (c *stubCommand) Run(ctx interface{}) error {
	c.runs++
	c.lastCtx = ctx
	return nil
}

func resetRegistry() {
	regMu.Lock()
	registry = map[string]Command{}
	regMu.Unlock()
}

func TestRegistry_AliasesResolveToSameCommand(t *testing.T) {
	resetRegistry()
	t.Cleanup(resetRegistry)

	Register(&stubCommand{name: "play", aliases: []string{"p"}})

	byName, ok := GetCommand("play")
	if !ok {
		t.Fatal("command not found by name")
	}
	byAlias, ok := GetCommand("p")
	if !ok {
		t.Fatal("command not found by alias")
	}
	if byName != byAlias {
		t.Error("alias resolved to a different command")
	}
	if all := AllCommands(); len(all) != 1 {
		t.Errorf("AllCommands returned %d entries, want 1 (aliases deduplicated)", len(all))
	}
}

func TestApplyMiddlewares_Order(t *testing.T) {
	var trace []string
	mw := func(tag string) Middleware {
		return func(cmd Command) Command {
			return &wrappedCommand{
				Command: cmd,
				wrap: func(ctx interface{}) error {
					trace = append(trace, tag)
					return cmd.Run(ctx)
				},
			}
		}
	}

	stub := &stubCommand{name: "x"}
	cmd := ApplyMiddlewares(stub, mw("inner"), mw("outer"))

	if err := cmd.Run(nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	// the last middleware wraps the whole chain, so it fires first
	if len(trace) != 2 || trace[0] != "outer" || trace[1] != "inner" {
		t.Errorf("middleware order %v, want [outer inner]", trace)
	}
	if stub.runs != 1 {
		t.Errorf("command ran %d times, want 1", stub.runs)
	}
}

func TestWithGroupAccessCheck_PassesUnknownContexts(t *testing.T) {
	store, err := storage.New(filepath.Join(t.TempDir(), "datastore.json"))
	if err != nil {
		t.Fatalf("storage: %v", err)
	}
	defer store.Close()

	stub := &stubCommand{name: "x", group: "music"}
	cmd := ApplyMiddlewares(stub, WithGroupAccessCheck())

	// a context the middleware doesn't recognize goes straight through
	if err := cmd.Run(struct{}{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if stub.runs != 1 {
		t.Errorf("command ran %d times, want 1", stub.runs)
	}
}

func TestWrappedCommand_KeepsSlashDefinition(t *testing.T) {
	stub := &stubCommand{name: "x"}
	cmd := ApplyMiddlewares(stub, WithGuildOnly())

	// a wrapped command without a provider must not claim a definition
	sp, ok := cmd.(SlashProvider)
	if !ok {
		t.Fatal("wrapped command lost the provider surface")
	}
	if def := sp.SlashDefinition(); def != nil {
		t.Errorf("unexpected definition: %+v", def)
	}
}
