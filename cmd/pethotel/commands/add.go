package commands

import (
	"context"

	"github.com/deleonhotel/pethotel/pkg/stores"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// bookingFlags are the booking fields shared by add and update.
type bookingFlags struct {
	client    string
	date      string
	bath      bool
	grooming  bool
	transport bool
	hotel     bool
	daycare   []string
}

func (f *bookingFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.client, "client", "", "client name")
	cmd.Flags().StringVar(&f.date, "date", "", "booking date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&f.bath, "bath", false, "bath service")
	cmd.Flags().BoolVar(&f.grooming, "grooming", false, "grooming service")
	cmd.Flags().BoolVar(&f.transport, "transport", false, "transport service")
	cmd.Flags().BoolVar(&f.hotel, "hotel", false, "hotel stay")
	cmd.Flags().StringSliceVar(&f.daycare, "daycare", nil, "daycare dates (YYYY-MM-DD, comma separated)")
}

// apply copies the flags the user set onto b.
func (f *bookingFlags) apply(cmd *cobra.Command, b *stores.Booking) error {
	flags := cmd.Flags()

	if flags.Changed("client") {
		b.ClientName = f.client
	}
	if flags.Changed("date") {
		if err := validateDate("date", f.date); err != nil {
			return err
		}
		b.Date = f.date
	}
	if flags.Changed("bath") {
		b.Bath = f.bath
	}
	if flags.Changed("grooming") {
		b.Grooming = f.grooming
	}
	if flags.Changed("transport") {
		b.Transport = f.transport
	}
	if flags.Changed("hotel") {
		b.HotelStay = f.hotel
	}
	if flags.Changed("daycare") {
		for _, d := range f.daycare {
			if err := validateDate("daycare date", d); err != nil {
				return err
			}
		}
		b.DaycareDates = f.daycare
	}

	return nil
}

func newAddCommand(opts *rootOptions) *cobra.Command {
	var flags bookingFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a booking",
		Long: `Add a new booking. The booking id is assigned by the database and printed
on success.`,
		Example: `  # Bath and grooming on a single day
  pethotel add --client "Bidu" --date 2024-03-15 --bath --grooming

  # Hotel stay with two daycare days
  pethotel add --client "Luna" --date 2024-03-15 --hotel --daycare 2024-03-16,2024-03-17`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			booking := &stores.Booking{}
			if err := flags.apply(cmd, booking); err != nil {
				return err
			}

			log.Info().
				Str("client", booking.ClientName).
				Str("date", booking.Date).
				Msg("Adding booking")

			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				if err := a.store.CreateBooking(ctx, booking); err != nil {
					return err
				}
				return a.out.Success(booking)
			})
		},
	}

	flags.register(cmd)
	_ = cmd.MarkFlagRequired("client")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}
