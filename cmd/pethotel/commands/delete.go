package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newDeleteCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a booking",
		Example: `  pethotel delete 12`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseBookingID(args[0])
			if err != nil {
				return err
			}

			log.Info().Int64("id", id).Msg("Deleting booking")

			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				if _, err := getExisting(ctx, a.store, id); err != nil {
					return err
				}

				if err := a.store.DeleteBooking(ctx, id); err != nil {
					return err
				}

				return a.out.Success(message{
					Text:   fmt.Sprintf("Deleted booking %d", id),
					Fields: map[string]interface{}{"id": id},
				})
			})
		},
	}

	return cmd
}

func newPurgeCommand(opts *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete every booking",
		Long: `Delete every booking. The table itself is kept. Because this cannot be
undone, --yes is required.`,
		Example: `  pethotel purge --yes`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return usageError("refusing to delete all bookings without --yes")
			}

			log.Warn().Msg("Deleting all bookings")

			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				n, err := a.store.DeleteAllBookings(ctx)
				if err != nil {
					return err
				}

				return a.out.Success(message{
					Text:   fmt.Sprintf("Deleted %d bookings", n),
					Fields: map[string]interface{}{"deleted": n},
				})
			})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deleting all bookings")

	return cmd
}
