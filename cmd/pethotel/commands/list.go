package commands

import (
	"context"

	"github.com/deleonhotel/pethotel/pkg/stores"
	"github.com/spf13/cobra"
)

func newListCommand(opts *rootOptions) *cobra.Command {
	var (
		year  int
		month int
		date  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bookings",
		Long: `List bookings in id order, optionally filtered by year, by year and month,
or by an exact date.

Filters compare the stored date text: --year 2024 matches every booking whose
date starts with "2024", --month 3 additionally requires "-03-".`,
		Example: `  # Everything
  pethotel list

  # March 2024
  pethotel list --year 2024 --month 3

  # One day, as JSON
  pethotel list --date 2024-03-15 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			byYear := flags.Changed("year")
			byMonth := flags.Changed("month")
			byDate := flags.Changed("date")

			switch {
			case byMonth && !byYear:
				return usageError("--month requires --year")
			case byDate && (byYear || byMonth):
				return usageError("--date cannot be combined with --year or --month")
			case byYear && (year < 1 || year > 9999):
				return usageError("invalid year %d", year)
			case byMonth && (month < 1 || month > 12):
				return usageError("invalid month %d: expected 1-12", month)
			case byDate:
				if err := validateDate("date", date); err != nil {
					return err
				}
			}

			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				var (
					bookings []*stores.Booking
					err      error
				)

				switch {
				case byMonth:
					bookings, err = a.store.ListBookingsByMonth(ctx, year, month)
				case byYear:
					bookings, err = a.store.ListBookingsByYear(ctx, year)
				case byDate:
					bookings, err = a.store.ListBookingsByDate(ctx, date)
				default:
					bookings, err = a.store.ListBookings(ctx)
				}
				if err != nil {
					return err
				}

				return a.out.Success(bookings)
			})
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "only bookings in this year")
	cmd.Flags().IntVar(&month, "month", 0, "only bookings in this month (requires --year)")
	cmd.Flags().StringVar(&date, "date", "", "only bookings on this date (YYYY-MM-DD)")

	return cmd
}
