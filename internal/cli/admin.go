package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"coworking/internal/app"
	"coworking/internal/entities"
	apperrors "coworking/internal/errors"
)

// CreateAdminOptions holds flags for the create-admin command.
type CreateAdminOptions struct {
	*RootOptions
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// NewCreateAdminCommand creates the create-admin command.
func NewCreateAdminCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CreateAdminOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		Long: `Create a user with the admin role. Public registration only creates regular users.

Example:
  coworkctl create-admin --email ops@example.com --password 's3cret-pass' --first-name Ops --last-name Team`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreateAdmin(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Email, "email", "", "admin email (required)")
	cmd.Flags().StringVar(&opts.Password, "password", "", "admin password, at least 8 characters (required)")
	cmd.Flags().StringVar(&opts.FirstName, "first-name", "Admin", "first name")
	cmd.Flags().StringVar(&opts.LastName, "last-name", "User", "last name")
	cmd.Flags().StringVar(&opts.Phone, "phone", "", "phone number in E.164 format")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func runCreateAdmin(opts *CreateAdminOptions, cmd *cobra.Command) error {
	if strings.TrimSpace(opts.Email) == "" {
		return errors.New("--email cannot be empty")
	}
	if len(opts.Password) < 8 {
		return errors.New("--password must be at least 8 characters")
	}

	env, err := connect(cmd.Context(), opts.RootOptions, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer env.Close()

	users := app.Build(env.conn, env.cfg, env.log).Services.Users
	u, err := users.CreateAdmin(cmd.Context(), entities.RegisterRequest{
		FirstName: opts.FirstName,
		LastName:  opts.LastName,
		Email:     opts.Email,
		Password:  opts.Password,
		Phone:     opts.Phone,
	})
	if err != nil {
		if httpErr := apperrors.As(err); httpErr != nil && httpErr.Code < 500 {
			return describe(httpErr)
		}
		return err
	}

	return printResult(cmd.OutOrStdout(), opts.Format, "Admin created", map[string]any{
		"id":    u.ID,
		"email": u.Email,
		"role":  u.Role,
	})
}

// describe flattens field errors into a single line for the terminal.
func describe(e *apperrors.HTTPError) error {
	if len(e.Fields) == 0 {
		return errors.New(e.Message)
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return errors.New(e.Message + ": " + strings.Join(parts, "; "))
}
