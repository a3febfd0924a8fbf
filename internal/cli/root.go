package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/shelf/internal/config"
	"github.com/roach88/shelf/internal/logging"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	Database   string // --db, overrides config and environment
	ConfigPath string // --config

	// Getenv reads environment overrides (for testing).
	// If nil, defaults to os.Getenv.
	Getenv func(string) string

	// Sessions generates the session token attached to log lines (for
	// testing). If nil, defaults to UUIDv7Generator.
	Sessions logging.SessionGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the shelf CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "shelf",
		Short: "shelf - a small book catalog",
		Long: `A small catalog of books (title, author, year) kept in a local SQLite file.

Run "shelf shell" for an interactive session, or use the one-shot
commands below from scripts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite catalog (default from config, "+config.EnvDatabase+" or katalog.db)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config (default "+config.DefaultFile+" if present)")

	// Add subcommands
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewSearchCommand(opts))
	cmd.AddCommand(NewEditCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewShellCommand(opts))
	cmd.AddCommand(NewPlayCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// settings resolves the configuration: flags over environment over the
// config file over defaults.
func (o *RootOptions) settings() (config.Config, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}

	getenv := o.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if err := cfg.ApplyEnv(getenv); err != nil {
		return config.Config{}, err
	}

	if o.Database != "" {
		cfg.Database = o.Database
	}
	if o.Verbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// logger builds the session logger. Logs go to the command's error
// stream; a redirected stream gets plain text.
func (o *RootOptions) logger(cmd *cobra.Command, cfg config.Config) *slog.Logger {
	gen := o.Sessions
	if gen == nil {
		gen = logging.UUIDv7Generator{}
	}
	level, _ := config.ParseLevel(cfg.LogLevel)
	session := gen.Generate()

	if w := cmd.ErrOrStderr(); w != os.Stderr {
		return logging.New(w, logging.Options{Level: level, NoColor: true, Session: session})
	}
	return logging.Stderr(level, session)
}

// formatter returns the output formatter for cmd.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: o.Format, Writer: cmd.OutOrStdout(), Verbose: o.Verbose}
}
