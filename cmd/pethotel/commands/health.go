package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newHealthCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check the booking database",
		Long: `Open the database, ping it and count the bookings. Exits with status 1
when the database cannot be used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				if err := a.store.HealthCheck(ctx); err != nil {
					return WrapExitError(ExitFailure, "health check failed", err)
				}

				count, err := a.store.CountBookings(ctx)
				if err != nil {
					return WrapExitError(ExitFailure, "health check failed", err)
				}

				return a.out.Success(message{
					Text: fmt.Sprintf("ok: %d bookings in %s", count, a.sqlite.Path()),
					Fields: map[string]interface{}{
						"database": a.sqlite.Path(),
						"bookings": count,
					},
				})
			})
		},
	}

	return cmd
}
