package commands

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newUpdateCommand(opts *rootOptions) *cobra.Command {
	var flags bookingFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a booking",
		Long: `Update an existing booking. Fields whose flags are given are replaced; the
others keep their current value. The whole row is then written back.`,
		Example: `  # Move a booking to another day
  pethotel update 12 --date 2024-03-18

  # Remove the bath and add transport
  pethotel update 12 --bath=false --transport`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseBookingID(args[0])
			if err != nil {
				return err
			}

			log.Info().Int64("id", id).Msg("Updating booking")

			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				booking, err := getExisting(ctx, a.store, id)
				if err != nil {
					return err
				}

				if err := flags.apply(cmd, booking); err != nil {
					return err
				}

				if err := a.store.UpdateBooking(ctx, id, booking); err != nil {
					return err
				}
				return a.out.Success(booking)
			})
		},
	}

	flags.register(cmd)

	return cmd
}
