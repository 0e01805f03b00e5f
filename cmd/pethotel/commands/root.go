package commands

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// rootOptions holds global flags for all commands.
type rootOptions struct {
	configPath string
	dbPath     string
	verbose    bool
	output     string

	version string
}

// Execute runs the root command
func Execute(ctx context.Context, version, commit, buildDate string) error {
	rootCmd := newRootCommand(version, commit, buildDate)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	opts := &rootOptions{version: version}

	rootCmd := &cobra.Command{
		Use:   "pethotel",
		Short: "Pet hotel booking manager",
		Long: `pethotel records the bookings of a pet hotel: baths, grooming, transport,
hotel stays and daycare days, one booking per client visit.

Bookings are kept in a single SQLite file. Configuration is read from
pethotel.yaml, a .env file and PETHOTEL_* environment variables.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(validFormats, opts.output) {
				return usageError("invalid output format %q: must be one of %v", opts.output, validFormats)
			}
			if opts.verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			return nil
		},
	}

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return WrapExitError(ExitUsage, "invalid flags", err)
	})

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file path (default pethotel.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "database file, overrides database.path")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "text", "output format (text|json|yaml)")

	// Add subcommands
	rootCmd.AddCommand(newInitCommand(opts))
	rootCmd.AddCommand(newAddCommand(opts))
	rootCmd.AddCommand(newUpdateCommand(opts))
	rootCmd.AddCommand(newGetCommand(opts))
	rootCmd.AddCommand(newListCommand(opts))
	rootCmd.AddCommand(newDeleteCommand(opts))
	rootCmd.AddCommand(newPurgeCommand(opts))
	rootCmd.AddCommand(newDaycareCommand(opts))
	rootCmd.AddCommand(newExportCommand(opts))
	rootCmd.AddCommand(newHealthCommand(opts))

	return rootCmd
}
