package executor

import "context"

// Executor defines the interface for executing external commands
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	// ExecuteStream runs the command and calls onLine for every stdout line
	// as it is produced.
	ExecuteStream(ctx context.Context, onLine func(line string), name string, args ...string) error
}
