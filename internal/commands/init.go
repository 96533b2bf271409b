package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/syssam/forcegen/internal/config"
)

type initOptions struct {
	*rootOptions
	force bool
}

func newInitCmd(root *rootOptions) *cobra.Command {
	opts := &initOptions{rootOptions: root}
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(opts.configPath); err == nil && !opts.force {
				return fmt.Errorf("%s already exists, use --force to overwrite", opts.configPath)
			}
			if err := config.Default().Save(opts.configPath); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", opts.configPath)
			return err
		},
	}
	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite an existing configuration file")
	return cmd
}
