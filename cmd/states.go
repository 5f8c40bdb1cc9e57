package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/zjrosen/vizsync/internal/config"
	"github.com/zjrosen/vizsync/internal/flags"
	"github.com/zjrosen/vizsync/internal/infrastructure/sqlite"
	"github.com/zjrosen/vizsync/internal/presentation"
)

var statesCmd = &cobra.Command{
	Use:   "states",
	Short: "List saved workspace states",
	Long: `List saved workspace states as JSON, most recently updated first.

Examples:
  vizsync states
  vizsync states | jq '.[].name'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listStates(cmd.Context(), os.Stdout, cfg)
	},
}

var statesDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved workspace state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := deleteState(cmd.Context(), cfg, args[0]); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	},
}

func init() {
	statesCmd.AddCommand(statesDeleteCmd)
	rootCmd.AddCommand(statesCmd)
}

// withStateDB opens the configured state database for one command.
func withStateDB(c config.Config, fn func(db *sqlite.DB) error) (err error) {
	if !flags.New(c.Flags).Enabled(flags.FlagStatePersistence) || c.StateDB == "" {
		return ErrPersistenceDisabled
	}
	db, err := sqlite.NewDB(c.StateDB)
	if err != nil {
		return fmt.Errorf("opening state database: %w", err)
	}
	defer func() { err = multierr.Append(err, db.Close()) }()
	return fn(db)
}

func listStates(ctx context.Context, w io.Writer, c config.Config) error {
	return withStateDB(c, func(db *sqlite.DB) error {
		states, err := db.StateRepository().List(ctx)
		if err != nil {
			return fmt.Errorf("listing states: %w", err)
		}
		return presentation.NewFormatter(w).FormatStates(presentation.FromSavedStates(states))
	})
}

func deleteState(ctx context.Context, c config.Config, name string) error {
	return withStateDB(c, func(db *sqlite.DB) error {
		if err := db.StateRepository().Delete(ctx, name); err != nil {
			return fmt.Errorf("deleting state %s: %w", name, err)
		}
		return nil
	})
}
