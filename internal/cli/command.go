package cli

import "context"

// Command is a CLI command handler. Cobra parses flags into the handler's
// fields, then calls Execute with the remaining positional arguments.
type Command interface {
	Execute(ctx context.Context, args []string) error
}
