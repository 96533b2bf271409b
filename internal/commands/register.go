// Package commands contains all CLI command definitions.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/pentops/log.go/log"
	"github.com/spf13/cobra"

	"github.com/syssam/forcegen/compiler/load"
	"github.com/syssam/forcegen/connection"
	"github.com/syssam/forcegen/internal/config"
)

type rootOptions struct {
	configPath  string
	connections *connection.Cache
}

// NewRootCmd creates and returns the root command for the CLI. Connection
// names are resolved from the process environment.
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithCache(connection.NewCache())
}

// NewRootCmdWithCache is like NewRootCmd but resolves connection names
// through connections.
func NewRootCmdWithCache(connections *connection.Cache) *cobra.Command {
	opts := &rootOptions{connections: connections}
	rootCmd := &cobra.Command{
		Use:           "forcegen",
		Short:         "Generate Go entities from a remote object catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", config.DefaultPath, "Path of the configuration file")

	rootCmd.AddCommand(
		newInitCmd(opts),
		newGenerateCmd(opts),
		newObjectsCmd(opts),
		newSnapshotCmd(opts),
	)
	return rootCmd
}

// load reads and validates the configuration file.
func (o *rootOptions) load() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file %s not found, run forcegen init", o.configPath)
		}
		return nil, err
	}
	return cfg, nil
}

// openSource returns the catalog snapshot of cfg if it has one, and a REST
// source for its connection otherwise.
func (o *rootOptions) openSource(ctx context.Context, cfg *config.Config) (load.Source, error) {
	if cfg.Catalog != "" {
		log.WithField(ctx, "catalog", cfg.Catalog).Debug("replaying snapshot")
		return load.OpenFile(cfg.Catalog)
	}
	props, err := o.connections.Load(ctx, cfg.Connection)
	if err != nil {
		return nil, err
	}
	timeout, err := props.Timeout()
	if err != nil {
		return nil, err
	}
	client := &http.Client{Timeout: timeout}
	session, err := connection.Login(ctx, client, props)
	if err != nil {
		return nil, err
	}
	src, err := load.NewRESTSource(session.InstanceURL, session.AccessToken)
	if err != nil {
		return nil, err
	}
	src.WithHTTPClient(client)
	if cfg.APIVersion != "" {
		src.WithAPIVersion(cfg.APIVersion)
	}
	return src, nil
}
