package commands

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newDaycareCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daycare <id> [date...]",
		Short: "Set the daycare dates of a booking",
		Long: `Replace the daycare dates of a booking with the given dates. With no dates
the list is cleared. Other fields of the booking are not touched.`,
		Example: `  # Three daycare days
  pethotel daycare 12 2024-03-18 2024-03-19 2024-03-20

  # Clear them
  pethotel daycare 12`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseBookingID(args[0])
			if err != nil {
				return err
			}

			dates := args[1:]
			for _, d := range dates {
				if err := validateDate("daycare date", d); err != nil {
					return err
				}
			}

			log.Info().
				Int64("id", id).
				Strs("dates", dates).
				Msg("Setting daycare dates")

			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				if _, err := getExisting(ctx, a.store, id); err != nil {
					return err
				}

				if err := a.store.SetDaycareDates(ctx, id, dates); err != nil {
					return err
				}

				booking, err := a.store.GetBooking(ctx, id)
				if err != nil {
					return err
				}
				return a.out.Success(booking)
			})
		},
	}

	return cmd
}
