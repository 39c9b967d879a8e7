package main

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mshakhov/discstore/internal/auth"
	"github.com/mshakhov/discstore/internal/formatter"
	"github.com/mshakhov/discstore/internal/repositories"
	"github.com/mshakhov/discstore/internal/shared"
	"github.com/mshakhov/discstore/internal/ui"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	logger  *log.Logger
	output  io.Writer
	input   io.Reader
	palette *ui.Palette

	db      *sql.DB
	users   *repositories.UserRepository
	discs   *repositories.DiscRepository
	works   *repositories.WorkRepository
	ledger  *repositories.OperationRepository
	reports *repositories.ReportRepository
	authn   *auth.Authenticator

	session *auth.Session
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config   *shared.Config
	Logger   *log.Logger
	Output   io.Writer
	Input    io.Reader
	Database *sql.DB
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}

	r := &Runner{
		config:  opts.Config,
		logger:  opts.Logger,
		output:  opts.Output,
		input:   opts.Input,
		palette: ui.DefaultPalette(),
	}

	if opts.Database != nil {
		r.attach(opts.Database)
	}

	return r
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, menuCommand, catalogCommand, ledgerCommand, reportCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// attach wires the repositories and the authenticator to an open database.
func (r *Runner) attach(db *sql.DB) {
	r.db = db
	r.users = repositories.NewUserRepository(db)
	r.discs = repositories.NewDiscRepository(db)
	r.works = repositories.NewWorkRepository(db)
	r.ledger = repositories.NewOperationRepository(db)
	r.reports = repositories.NewReportRepository(db)
	r.authn = auth.NewAuthenticator(r.users, r.config.Auth.BcryptCost, r.logger)
}

// openStore opens the configured database, applies pending migrations and
// seeds the default accounts. Safe to call on every command start; an already
// attached store (as in tests) is reused as-is.
func (r *Runner) openStore(configPath string) error {
	if r.db != nil {
		return nil
	}

	// An absent config file falls back to the defaults; a file that exists
	// but does not parse must not be silently ignored, the store could end
	// up on the wrong database.
	if configPath != "" {
		config, err := shared.LoadConfig(configPath)
		switch {
		case err == nil:
			r.config = config
		case errors.Is(err, shared.ErrMissingConfig):
			r.logger.Debug("config file not found, using defaults", "path", configPath)
		default:
			return err
		}
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return err
	}
	if r.config.Database.MaxOpenConns > 0 {
		shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return fmt.Errorf("migrations failed: %w", err)
	}

	r.attach(db)

	if err := r.authn.SeedDefaults(r.config.Auth); err != nil {
		db.Close()
		return fmt.Errorf("seeding default accounts failed: %w", err)
	}

	return nil
}

// login authenticates the credential flags and stores the session.
func (r *Runner) login(cmd *cli.Command) error {
	session, err := r.authn.Login(cmd.String("username"), cmd.String("password"))
	if err != nil {
		return err
	}
	r.session = session
	r.logger.Debug("authenticated", "user", session.Username, "role", session.Role, "session", session.ID)
	return nil
}

// requireAdmin rejects the command unless the active session is an administrator.
func (r *Runner) requireAdmin() error {
	if !r.session.IsAdmin() {
		return shared.ErrForbidden
	}
	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	return r.writePlain(format+"\n", args...)
}

func (r *Runner) writeHeader(title string) {
	r.writePlainln("\n%s", r.palette.Title("=== "+title+" ==="))
}

// writeTable renders a report table as aligned text, or CSV when asked.
func (r *Runner) writeTable(table *formatter.Table, asCSV bool) error {
	if asCSV {
		data, err := table.ToCSV()
		if err != nil {
			return err
		}
		return r.writePlain("%s", data)
	}
	return r.writePlain("%s", table.Render())
}
