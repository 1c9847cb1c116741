package command

import (
	"github.com/zjrosen/spanedit/internal/log"
)

// Outcome reports what Dispatch did with an input.
type Outcome struct {
	// Command is nil when no command handled the intent.
	Command Command
	Result  ExecuteResult
}

// Changed reports whether the dispatched command modified content.
func (o Outcome) Changed() bool {
	return o.Command != nil && o.Result == Executed && o.Command.ChangesContent()
}

// Registry provides intent-based command dispatch. Commands are registered
// under every intent returned by Intents().
type Registry struct {
	commands map[Intent]Command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[Intent]Command),
	}
}

// DefaultRegistry returns a registry holding every built-in command.
// historyUndo and historyRedo stay unregistered and pass through to the host.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&InsertTextCommand{})
	r.Register(&InsertParagraphCommand{})
	r.Register(&DeleteContentBackwardCommand{})
	r.Register(&DeleteContentForwardCommand{})
	r.Register(&DeleteWordBackwardCommand{})
	r.Register(&DeleteByCutCommand{})
	r.Register(&InsertFromPasteCommand{})
	return r
}

// Register adds a command under each of its intents, replacing any previous
// registration.
func (r *Registry) Register(cmd Command) {
	for _, in := range cmd.Intents() {
		r.commands[in] = cmd
	}
}

// Get retrieves the command for an intent.
func (r *Registry) Get(in Intent) (Command, bool) {
	cmd, ok := r.commands[in]
	return cmd, ok
}

// Dispatch routes an input to its command. Composition in progress and
// unregistered intents pass through untouched.
func (r *Registry) Dispatch(c Controller, in Input) (Outcome, error) {
	if in.IsComposing {
		log.Debug(log.CatCommand, "composing input passed through", "intent", in.Type)
		return Outcome{Result: PassThrough}, nil
	}
	cmd, ok := r.Get(in.Type)
	if !ok {
		log.Debug(log.CatCommand, "unhandled intent passed through", "intent", in.Type)
		return Outcome{Result: PassThrough}, nil
	}
	res, err := cmd.Execute(c, in)
	out := Outcome{Command: cmd, Result: res}
	if err != nil {
		log.ErrorErr(log.CatCommand, "command failed", err, "command", cmd.ID(), "intent", in.Type)
		return out, err
	}
	log.Debug(log.CatCommand, "dispatched", "command", cmd.ID(), "intent", in.Type, "result", res)
	return out, nil
}
