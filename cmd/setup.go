package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

// SetupDatabase opens the configured database, applies migrations and seeds
// the default accounts.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	if err := r.openStore(cmd.String("config")); err != nil {
		return err
	}

	r.logger.Info("store initialized", "path", r.config.Database.Path)
	return r.writePlainln("%s", r.palette.OK("Store database ready at "+r.config.Database.Path))
}

// SetupConfig writes the example configuration file.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if err := createConfig(path); err != nil {
		return err
	}
	return r.writePlainln("%s", r.palette.OK("Wrote "+path))
}
