package cli

import (
	"github.com/spf13/cobra"

	"coworking/internal/db"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	var printOnly bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		Long: `Apply the coworking schema to the database named by DATABASE_URL.

Every statement is idempotent, so running it against an up to date database is a no-op.
Use --print to write the schema to stdout without connecting.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if printOnly {
				_, err := cmd.OutOrStdout().Write([]byte(db.Schema()))
				return err
			}

			env, err := connect(cmd.Context(), rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer env.Close()

			return printResult(cmd.OutOrStdout(), rootOpts.Format, "Schema applied", nil)
		},
	}

	cmd.Flags().BoolVar(&printOnly, "print", false, "print the schema instead of applying it")

	return cmd
}
