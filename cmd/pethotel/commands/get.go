package commands

import (
	"context"

	"github.com/spf13/cobra"
)

func newGetCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one booking",
		Long:  `Show one booking. Exits with status 2 when the booking does not exist.`,
		Example: `  pethotel get 12
  pethotel get 12 -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseBookingID(args[0])
			if err != nil {
				return err
			}

			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				booking, err := getExisting(ctx, a.store, id)
				if err != nil {
					return err
				}
				return a.out.Success(booking)
			})
		},
	}

	return cmd
}
