package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"guildbot/database"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the guildbot CLI. Without a subcommand it runs the bot.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "guildbot",
		Short:        "Discord community bot",
		SilenceUsage: true,
		RunE:         runBot,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "run",
			Short: "Run the bot until interrupted",
			Args:  cobra.NoArgs,
			RunE:  runBot,
		},
		newMigrateCmd(),
	)
	return root
}

func runBot(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return Run(ctx)
}

func newMigrateCmd() *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	migrate.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply every pending migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return database.MigrateUp()
			},
		},
		&cobra.Command{
			Use:   "down [steps]",
			Short: "Roll back migrations (default 1)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				steps := 1
				if len(args) == 1 {
					n, err := strconv.Atoi(args[0])
					if err != nil {
						return fmt.Errorf("invalid step count %q: %w", args[0], err)
					}
					steps = n
				}
				return database.MigrateDown(steps)
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show the current schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				status, err := database.MigrateStatus()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatMigrationStatus(status))
				return nil
			},
		},
	)
	return migrate
}

func formatMigrationStatus(status *database.MigrationStatus) string {
	switch {
	case !status.Applied:
		return color.YellowString("No migrations applied")
	case status.Dirty:
		return color.RedString("Version %d (dirty)", status.Version)
	default:
		return color.GreenString("Version %d", status.Version)
	}
}
