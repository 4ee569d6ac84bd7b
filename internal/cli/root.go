package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"coworking/internal/app"
	"coworking/internal/config"
	"coworking/internal/logger"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the coworking admin CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "coworkctl",
		Short: "Coworking booking administration",
		Long:  "Operational tasks for the coworking booking service: schema migration, admin accounts and booking maintenance.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewCreateAdminCommand(opts))
	cmd.AddCommand(NewRunJobsCommand(opts))

	return cmd
}

// environment is what every subcommand needs once the flags are valid.
type environment struct {
	cfg  *config.Config
	log  *logger.Logger
	conn *sql.DB
}

func (e *environment) Close() {
	if e.conn != nil {
		e.conn.Close()
	}
}

// connect loads configuration, opens the database and applies the schema.
// Logs go to stderr so json output on stdout stays parseable.
func connect(ctx context.Context, opts *RootOptions, errOut io.Writer) (*environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level := logger.WARN
	if opts.Verbose {
		level = logger.DEBUG
	}
	log := logger.New(logger.Config{
		Level:   level,
		Format:  logger.TEXT,
		Output:  errOut,
		Service: "coworkctl",
	})

	conn, err := app.OpenDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &environment{cfg: cfg, log: log, conn: conn}, nil
}

// printResult writes fields as json or as aligned "key: value" lines.
func printResult(w io.Writer, format string, message string, fields map[string]any) error {
	if format == "json" {
		out := map[string]any{"message": message}
		for k, v := range fields {
			out[k] = v
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprintln(w, message)
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s: %v\n", k, fields[k])
	}
	return nil
}
