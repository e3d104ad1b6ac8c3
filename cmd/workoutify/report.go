package main

import (
	"github.com/spf13/cobra"

	"github.com/sakif/workoutify/internal/service"
)

func (a *app) newSummaryCmd() *cobra.Command {
	var (
		userID int64
		days   int
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print a user's dashboard summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("days") {
				days = a.cfg.SummaryDefaultDays
			}

			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			summary, err := service.NewSummaryService(db, a.logger).Summary(cmd.Context(), userID, days)
			if err != nil {
				return err
			}
			return a.printer(cmd).Summary(userID, days, summary)
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "user id")
	cmd.Flags().IntVar(&days, "days", service.DefaultSummaryDays, "number of days (1-90)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func (a *app) newFoodsCmd() *cobra.Command {
	foods := &cobra.Command{
		Use:   "foods",
		Short: "Browse the food catalog",
	}

	foods.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List every food",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				db, err := a.openDB()
				if err != nil {
					return err
				}
				defer db.Close()

				list, err := service.NewCatalogService(db, db, a.logger).ListFoods(cmd.Context())
				if err != nil {
					return err
				}
				return a.printer(cmd).Foods(list)
			},
		},
		&cobra.Command{
			Use:   "search <query>",
			Short: "Find foods whose name contains query (case-insensitive)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				db, err := a.openDB()
				if err != nil {
					return err
				}
				defer db.Close()

				list, err := service.NewCatalogService(db, db, a.logger).SearchFoods(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return a.printer(cmd).Foods(list)
			},
		},
	)
	return foods
}
