package commands

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/syssam/forcegen/compiler/filter"
	"github.com/syssam/forcegen/compiler/load"
)

type objectsOptions struct {
	*rootOptions
	catalog string
}

func newObjectsCmd(root *rootOptions) *cobra.Command {
	opts := &objectsOptions{rootOptions: root}
	cmd := &cobra.Command{
		Use:   "objects [OBJECT...]",
		Short: "List catalog objects",
		Long: `List the names of every object in the catalog. With arguments, list the
named objects and every object they reference, directly or not, in
breadth-first order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runObjects(cmd.Context(), cmd.OutOrStdout(), opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.catalog, "catalog", "", "Catalog snapshot to read instead of connecting")
	return cmd
}

func runObjects(ctx context.Context, out io.Writer, opts *objectsOptions, args []string) error {
	cfg, err := opts.load()
	if err != nil {
		return err
	}
	if opts.catalog != "" {
		cfg.Catalog = opts.catalog
		cfg.Connection = ""
	}
	src, err := opts.openSource(ctx, cfg)
	if err != nil {
		return err
	}

	var names []string
	if len(args) == 0 {
		if names, err = src.ObjectNames(ctx); err != nil {
			return err
		}
		slices.Sort(names)
	} else {
		objects, err := load.DescribeAll(ctx, src, cfg.BatchSize)
		if err != nil {
			return err
		}
		names = filter.ClosureNames(args, objects)
	}
	for _, name := range names {
		if _, err := fmt.Fprintln(out, name); err != nil {
			return err
		}
	}
	return nil
}
