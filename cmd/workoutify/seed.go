package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/sakif/workoutify/internal/seed"
)

func (a *app) newSeedCmd() *cobra.Command {
	var (
		days     int
		reset    bool
		randSeed uint64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with demo users, catalog and history",
		Long: `Seed creates 5 users, 10 exercises and 10 foods, then generates --days
days of sleep, meals and workouts for every user, ending yesterday.
The first user trains twice on one day of each week.

Seeding refuses to run on a database that already has users unless
--reset is given, which deletes ALL existing data first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			p := a.printer(cmd)
			if reset {
				if err := db.Reset(cmd.Context()); err != nil {
					return err
				}
				p.Warning("existing data deleted")
			}

			if !cmd.Flags().Changed("rand-seed") {
				randSeed = uint64(time.Now().UnixNano())
			}
			res, err := seed.Run(cmd.Context(), db, seed.Options{Days: days, Seed: randSeed}, a.logger)
			if err != nil {
				return err
			}

			if p.JSONMode() {
				return p.JSON(res)
			}
			p.Success("seed completed")
			p.Info("%d users, %d exercises, %d foods", res.Users, res.Exercises, res.Foods)
			p.Info("%d sleep entries, %d meals (%d items), %d workouts (%d sets)",
				res.Sleep, res.Meals, res.MealItems, res.Workouts, res.Sets)
			p.Info("user %d has one day per week with two workouts", res.SpecialUserID)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", seed.DefaultDays, "days of history to generate")
	cmd.Flags().BoolVar(&reset, "reset", false, "delete all existing data first")
	cmd.Flags().Uint64Var(&randSeed, "rand-seed", 0, "random seed for reproducible data (default: time based)")
	return cmd
}
