// Package internal contains the main application logic for the CLI.
package internal

import (
	"context"

	"github.com/syssam/forcegen/connection"
	"github.com/syssam/forcegen/internal/commands"
)

// Run executes the command line with connection names resolved through
// getenv. Empty variables count as unset.
func Run(ctx context.Context, getenv func(string) string) error {
	lookup := func(key string) (string, bool) {
		v := getenv(key)
		return v, v != ""
	}
	rootCmd := commands.NewRootCmdWithCache(connection.NewCache().WithLookup(lookup))
	return rootCmd.ExecuteContext(ctx)
}
