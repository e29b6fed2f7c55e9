package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/fittracker/internal/buildinfo"
	"github.com/dmitrijs2005/fittracker/internal/client/app"
	"github.com/dmitrijs2005/fittracker/internal/client/cli"
	"github.com/dmitrijs2005/fittracker/internal/client/config"
	"github.com/dmitrijs2005/fittracker/internal/client/models"
	"github.com/dmitrijs2005/fittracker/internal/client/tui"
	"github.com/dmitrijs2005/fittracker/internal/common"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "fittracker",
		Short:         common.AppName + " personal fitness tracker",
		Long:          "Track habits, meals, workouts, water and reminders.\n\nRun without arguments to start the full-screen interface.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), cfg)
		},
	}
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(newREPLCmd(), newExportCmd(), newResetCmd(), newVersionCmd())
	return root
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file, err := cmd.Flags().GetString(config.FlagConfig)
	if err != nil {
		return nil, err
	}
	return config.Load(config.LoadOptions{File: file, Flags: cmd.Flags()})
}

func newREPLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start the line-oriented shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return cli.Run(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

var exportNames = map[string]models.CollectionKey{
	"habits":    models.KeyHabits,
	"meals":     models.KeyMeals,
	"workouts":  models.KeyWorkouts,
	"water":     models.KeyHydrationLog,
	"hydration": models.KeyHydrationLog,
	"reminders": models.KeyReminders,
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [collection]",
		Short: "Export one collection or the whole document as JSON",
		Long:  "Export one of habits, meals, workouts, water or reminders, or everything when no collection is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var key models.CollectionKey
			if len(args) == 1 {
				k, ok := exportNames[args[0]]
				if !ok {
					return fmt.Errorf("unknown collection %q", args[0])
				}
				key = k
			}

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			var loc string
			if key == "" {
				loc, err = a.Export.ExportAll(cmd.Context())
			} else {
				loc, err = a.Export.ExportCollection(cmd.Context(), key)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), loc)
			return nil
		},
	}
}

func newResetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all local data and the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("refusing to erase data without --yes")
			}
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All data cleared")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the reset")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
		},
	}
}

func openApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return app.New(cmd.Context(), cfg)
}
