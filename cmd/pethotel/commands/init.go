package commands

import (
	"fmt"
	"os"

	"github.com/deleonhotel/pethotel/pkg/config"
	"github.com/deleonhotel/pethotel/pkg/stores"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newInitCommand(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a pethotel workspace",
		Long: `Write a default pethotel.yaml and create the booking database.

The database path is taken from --db, or defaults to data/pethotel.db. An
existing config file is only overwritten with --force; an existing database
is opened and left as it is.`,
		Example: `  # Initialize in the current directory
  pethotel init

  # Custom locations
  pethotel init --config /etc/pethotel/pethotel.yaml --db /var/lib/pethotel/bookings.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configFile()

			log.Info().
				Str("config", path).
				Bool("force", force).
				Msg("Initializing workspace")

			if _, err := os.Stat(path); err == nil && !force {
				return usageError("config file %s already exists (use --force to overwrite)", path)
			}

			cfg := config.Default()
			if opts.dbPath != "" {
				cfg.Database.Path = opts.dbPath
			}

			if err := config.Write(path, cfg); err != nil {
				return WrapExitError(ExitFailure, "failed to write config", err)
			}

			store, err := stores.NewSQLiteStore(cfg.StoreConfig())
			if err != nil {
				return WrapExitError(ExitFailure, "failed to create store", err)
			}
			if err := store.Init(cmd.Context()); err != nil {
				return WrapExitError(ExitFailure, "failed to initialize database", err)
			}
			if err := store.Close(); err != nil {
				return WrapExitError(ExitFailure, "failed to close database", err)
			}

			out := &OutputFormatter{Format: opts.output, Writer: cmd.OutOrStdout()}
			return out.Success(message{
				Text: fmt.Sprintf("Created config file %s\nInitialized database %s", path, cfg.Database.Path),
				Fields: map[string]interface{}{
					"config":   path,
					"database": cfg.Database.Path,
				},
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	return cmd
}
