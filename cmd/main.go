package main

import (
	"context"
	"errors"
	"os"

	"github.com/mshakhov/discstore/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if loaded, err := shared.LoadConfig("config.toml"); err == nil {
		config = loaded
	} else if !errors.Is(err, shared.ErrMissingConfig) {
		logger.Warn("ignoring malformed config.toml, using defaults", "err", err)
	}

	runner := NewRunner(RunnerOpts{
		Config: config,
		Logger: logger,
	})
	defer func() {
		if runner.db != nil {
			runner.db.Close()
		}
	}()

	app := &cli.Command{
		Name:     "discstore",
		Usage:    "Music salon inventory and sales tracker",
		Version:  "1.0.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		switch {
		case errors.Is(err, shared.ErrAuthFailed), errors.Is(err, shared.ErrForbidden):
			logger.Error(err.Error())
			os.Exit(1)
		case errors.Is(err, shared.ErrConstraint), errors.Is(err, shared.ErrNotFound),
			errors.Is(err, shared.ErrInvalidInput), errors.Is(err, shared.ErrInvalidDate):
			logger.Error(err.Error())
			os.Exit(2)
		default:
			logger.Fatalf("application error: %v", err)
		}
	}
}
