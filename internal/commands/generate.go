package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/pentops/log.go/log"
	"github.com/spf13/cobra"

	"github.com/syssam/forcegen/compiler/gen"
	"github.com/syssam/forcegen/internal/config"
)

type generateOptions struct {
	*rootOptions
	all     bool
	watch   bool
	target  string
	catalog string
	exclude []string
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	opts := &generateOptions{rootOptions: root}
	cmd := &cobra.Command{
		Use:   "generate [OBJECT...]",
		Short: "Generate entities for the configured objects",
		Long: `Generate one Go file per object. The requested objects are generated
together with every object they reference, and with User. "*" or --all
generates every object of the catalog.`,
		Example: `  # Generate the objects listed in forcegen.yaml
  forcegen generate

  # Generate Account, Contact and everything they reference
  forcegen generate Account Contact

  # Regenerate whenever the catalog snapshot changes
  forcegen generate --catalog catalog.json --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), cmd.OutOrStdout(), opts, args)
		},
	}
	cmd.Flags().BoolVar(&opts.all, "all", false, "Generate every object")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Regenerate when the catalog snapshot or the configuration changes")
	cmd.Flags().StringVarP(&opts.target, "target", "t", "", "Output directory, overrides the configuration")
	cmd.Flags().StringVar(&opts.catalog, "catalog", "", "Catalog snapshot to generate from instead of connecting")
	cmd.Flags().StringSliceVar(&opts.exclude, "exclude", nil, "Objects to leave out, also as reference targets")
	return cmd
}

// config loads the configuration file and applies the command line.
func (o *generateOptions) config(args []string) (*config.Config, error) {
	cfg, err := o.load()
	if err != nil {
		return nil, err
	}
	if o.target != "" {
		cfg.Target = o.target
	}
	if o.catalog != "" {
		cfg.Catalog = o.catalog
		cfg.Connection = ""
	}
	cfg.Exclude = append(cfg.Exclude, o.exclude...)
	switch {
	case o.all:
		cfg.Objects = []string{config.AllObjects}
	case len(args) > 0:
		cfg.Objects = args
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", o.configPath, err)
	}
	return cfg, nil
}

func runGenerate(ctx context.Context, out io.Writer, opts *generateOptions, args []string) error {
	run := func(ctx context.Context) error {
		cfg, err := opts.config(args)
		if err != nil {
			return err
		}
		n, err := opts.generate(ctx, cfg)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "generated %d objects in %s\n", n, cfg.Target)
		return err
	}
	if err := run(ctx); err != nil {
		return err
	}
	if !opts.watch {
		return nil
	}
	cfg, err := opts.config(args)
	if err != nil {
		return err
	}
	if cfg.Catalog == "" {
		return errors.New("--watch requires a catalog snapshot")
	}
	log.WithField(ctx, "catalog", cfg.Catalog).Info("watching for changes")
	return watch(ctx, []string{cfg.Catalog, opts.configPath}, run)
}

func (o *generateOptions) generate(ctx context.Context, cfg *config.Config) (int, error) {
	genOpts, err := cfg.Options()
	if err != nil {
		return 0, err
	}
	g, err := gen.NewGenerator(genOpts...)
	if err != nil {
		return 0, err
	}
	src, err := o.openSource(ctx, cfg)
	if err != nil {
		return 0, err
	}
	return g.Generate(ctx, src)
}
