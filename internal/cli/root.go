// Package cli implements the gripe command tree. All user-facing text
// lives here; the store never prints.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/gripe/internal/config"
	"github.com/roach88/gripe/internal/store"
)

// RootOptions holds global flags and the resolved configuration shared
// by all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	DataFile   string
	Backend    string

	Config *config.Config
	Logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the gripe CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "gripe",
		Short: "Gripe - a grievance tracker",
		Long: `A small single-user grievance tracker: record, browse, vote on,
and resolve complaints, persisted to a local file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}

			cfg, err := config.Load(opts.ConfigPath)
			if err != nil {
				return err
			}
			// Flags beat config file and environment.
			if cmd.Flags().Changed("data") {
				cfg.DataFile = opts.DataFile
			}
			if cmd.Flags().Changed("backend") {
				cfg.Backend = opts.Backend
			}
			if cmd.Flags().Changed("format") {
				cfg.Format = opts.Format
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			opts.Config = cfg
			opts.Format = cfg.Format
			opts.Logger = newLogger(opts.Verbose)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default gripe.yaml if present)")
	cmd.PersistentFlags().StringVar(&opts.DataFile, "data", "", "backing data file (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.Backend, "backend", "", "storage backend: json|sqlite (overrides config)")

	// Add subcommands
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewVoteCommand(opts))
	cmd.AddCommand(NewResolveCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewMenuCommand(opts))

	return cmd
}

// OpenStore opens the configured storage backend.
func (o *RootOptions) OpenStore() (store.Store, error) {
	switch o.Config.Backend {
	case config.BackendSQLite:
		return store.OpenSQLite(o.Config.DataFile)
	default:
		return store.NewFileStore(o.Config.DataFile, store.WithLogger(o.Logger)), nil
	}
}

// newLogger builds the CLI logger. Diagnostics go to stderr so JSON
// output on stdout stays parseable.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
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
