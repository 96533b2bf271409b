package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/pentops/log.go/log"
	"github.com/spf13/cobra"

	"github.com/syssam/forcegen/compiler/load"
)

type snapshotOptions struct {
	*rootOptions
	selected bool
}

func newSnapshotCmd(root *rootOptions) *cobra.Command {
	opts := &snapshotOptions{rootOptions: root}
	cmd := &cobra.Command{
		Use:   "snapshot FILE",
		Short: "Save the described catalog to a file",
		Long: `Describe the catalog of the configured connection and save it. The format
follows the file extension: .json, .yaml or .msgpack. A snapshot can be used
as the catalog of later runs without connecting.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshot(cmd.Context(), cmd.OutOrStdout(), opts, args[0])
		},
	}
	cmd.Flags().BoolVar(&opts.selected, "selected", false, "Keep only the objects selected by the configuration")
	return cmd
}

func runSnapshot(ctx context.Context, out io.Writer, opts *snapshotOptions, path string) error {
	if _, err := load.FormatOf(path); err != nil {
		return err
	}
	cfg, err := opts.load()
	if err != nil {
		return err
	}
	src, err := opts.openSource(ctx, cfg)
	if err != nil {
		return err
	}
	catalog, err := load.Snapshot(ctx, src, cfg.BatchSize)
	if err != nil {
		return err
	}
	if opts.selected {
		catalog.Objects = cfg.ObjectFilter().Filter(catalog.Objects)
	}
	if err := load.WriteCatalog(path, catalog); err != nil {
		return err
	}
	log.WithFields(ctx, map[string]interface{}{
		"file":    path,
		"objects": len(catalog.Objects),
	}).Info("snapshot written")
	_, err = fmt.Fprintf(out, "wrote %d objects to %s\n", len(catalog.Objects), path)
	return err
}
