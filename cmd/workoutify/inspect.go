package main

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sakif/workoutify/internal/apperror"
	"github.com/sakif/workoutify/internal/tui"
)

func (a *app) newTablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the tables that can be inspected",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			p := a.printer(cmd)
			if p.JSONMode() {
				return p.JSON(db.Tables())
			}
			for _, t := range db.Tables() {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
			return nil
		},
	}
}

func (a *app) newRowsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rows <table>",
		Short: "Show every row of a table, ordered by primary key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			rows, err := db.ListRows(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printer(cmd).Rows(rows)
		},
	}
}

func (a *app) newRowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "row <table> <id>",
		Short: "Show one row by primary key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1])
			if err != nil {
				return err
			}

			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			row, err := db.GetRow(cmd.Context(), args[0], id)
			if err != nil {
				return err
			}
			return a.printer(cmd).Row(row)
		},
	}
}

func (a *app) newDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <table> <id>",
		Short: "Delete one row by primary key",
		Long: `Delete removes one row. Deleting a user also deletes their sleep,
workouts and meals; deleting a workout or meal deletes its sets or items.
Foods and exercises that are still referenced cannot be deleted.

Without --yes the row is shown and you must type 'yes' to confirm.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			table := args[0]
			id, err := parseID(args[1])
			if err != nil {
				return err
			}

			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			p := a.printer(cmd)
			if !yes {
				row, err := db.GetRow(cmd.Context(), table, id)
				if err != nil {
					return err
				}
				p.Info("about to delete:")
				if err := p.Row(row); err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), "Type 'yes' to confirm delete: ")
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if strings.ToLower(strings.TrimSpace(answer)) != "yes" {
					p.Warning("delete cancelled")
					return nil
				}
			}

			if err := db.DeleteRow(cmd.Context(), table, id); err != nil {
				return err
			}
			p.Success("deleted %s #%d", table, id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func (a *app) newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Browse and delete rows interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			return tui.Run(cmd.Context(), db)
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.ValidationFailed("id", fmt.Sprintf("invalid id %q; must be a positive integer", s))
	}
	return id, nil
}
