package cli

import (
	"github.com/spf13/cobra"

	"coworking/internal/app"
)

// NewRunJobsCommand creates the run-jobs command.
func NewRunJobsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run-jobs",
		Short: "Run booking maintenance once",
		Long: `Run the booking maintenance jobs once and exit:

  - confirmed bookings whose end time has passed become completed
  - pending bookings with an unpaid checkout older than PENDING_BOOKING_TTL are cancelled

Useful when the server runs with JOBS_ENABLED=false and an external scheduler drives maintenance.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := connect(cmd.Context(), rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer env.Close()

			jobs := app.Build(env.conn, env.cfg, env.log).Jobs

			completed, err := jobs.CompleteFinishedBookings(cmd.Context())
			if err != nil {
				return err
			}
			cancelled, err := jobs.CancelAbandonedCheckouts(cmd.Context())
			if err != nil {
				return err
			}

			return printResult(cmd.OutOrStdout(), rootOpts.Format, "Booking jobs finished", map[string]any{
				"completed": completed,
				"cancelled": cancelled,
			})
		},
	}

	return cmd
}
