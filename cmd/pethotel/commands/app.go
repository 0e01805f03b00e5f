package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/deleonhotel/pethotel/pkg/config"
	"github.com/deleonhotel/pethotel/pkg/stores"
	"github.com/deleonhotel/pethotel/pkg/telemetry"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

// app is what a command needs to talk to the booking store.
type app struct {
	cfg    *config.Config
	tel    *telemetry.Telemetry
	sqlite *stores.SQLiteStore
	store  stores.BookingStore
	out    *OutputFormatter
}

func (o *rootOptions) configFile() string {
	if o.configPath != "" {
		return o.configPath
	}
	return config.DefaultConfigFile
}

// loadConfig reads the config file and applies command-line overrides.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configFile())
	if err != nil {
		return nil, WrapExitError(ExitFailure, "failed to load configuration", err)
	}

	if o.dbPath != "" {
		cfg.Database.Path = o.dbPath
	}
	if o.verbose {
		cfg.Logging.Level = "debug"
	}

	return cfg, nil
}

// openApp loads configuration, starts telemetry and opens the store.
func openApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	cfg, err := opts.loadConfig()
	if err != nil {
		return nil, err
	}

	tel, err := telemetry.NewTelemetry(cfg.TelemetryConfig(opts.version))
	if err != nil {
		return nil, WrapExitError(ExitFailure, "failed to initialize telemetry", err)
	}

	if opts.verbose {
		tel.Events.Subscribe(eventPrinter(cmd.ErrOrStderr()), nil)
	}

	sqlite, err := stores.NewSQLiteStore(cfg.StoreConfig())
	if err != nil {
		_ = tel.Shutdown(context.Background())
		return nil, WrapExitError(ExitFailure, "failed to create store", err)
	}

	if err := sqlite.Init(cmd.Context()); err != nil {
		_ = tel.Events.PublishStoreUnavailable(err.Error())
		_ = tel.Shutdown(context.Background())
		return nil, WrapExitError(ExitFailure, "failed to open database", err)
	}

	log.Debug().
		Str("database", sqlite.Path()).
		Str("config", opts.configFile()).
		Msg("Opened booking store")

	return &app{
		cfg:    cfg,
		tel:    tel,
		sqlite: sqlite,
		store:  stores.NewInstrumentedStore(sqlite, tel),
		out:    &OutputFormatter{Format: opts.output, Writer: cmd.OutOrStdout()},
	}, nil
}

// close releases the store and flushes telemetry.
func (a *app) close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return errors.Join(a.store.Close(), a.tel.Shutdown(ctx))
}

// withApp runs fn with an open app and closes it afterwards.
func withApp(cmd *cobra.Command, opts *rootOptions, fn func(ctx context.Context, a *app) error) error {
	a, err := openApp(cmd, opts)
	if err != nil {
		return err
	}

	runErr := fn(cmd.Context(), a)
	if closeErr := a.close(); closeErr != nil {
		if runErr == nil {
			return WrapExitError(ExitFailure, "failed to close store", closeErr)
		}
		log.Warn().Err(closeErr).Msg("Failed to close store")
	}
	return runErr
}

// eventPrinter writes audit events as one line each.
func eventPrinter(w io.Writer) telemetry.EventSubscriber {
	return func(e telemetry.Event) {
		fmt.Fprintf(w, "[%s] %s %s\n", e.Level, e.Type, e.Message)
	}
}

func parseBookingID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, usageError("invalid booking id %q", arg)
	}
	return id, nil
}

// getExisting reads a booking, mapping a missing row to ExitNotFound.
func getExisting(ctx context.Context, store stores.BookingStore, id int64) (*stores.Booking, error) {
	booking, err := store.GetBooking(ctx, id)
	if errors.Is(err, stores.ErrBookingNotFound) {
		return nil, WrapExitError(ExitNotFound, fmt.Sprintf("booking %d not found", id), err)
	}
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func validateDate(flag, value string) error {
	if _, err := time.Parse(stores.DateLayout, value); err != nil {
		return usageError("invalid %s %q: expected YYYY-MM-DD", flag, value)
	}
	return nil
}
