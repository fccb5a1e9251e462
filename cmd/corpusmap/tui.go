package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/lumipallolabs/corpusmap/internal/core"
	"github.com/lumipallolabs/corpusmap/internal/ui/tui"
)

var (
	tuiWatch   bool
	tuiNoCache bool
)

// tuiCmd runs the interactive terminal dashboard.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse the treemap in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		dir, err := resolveDataDir()
		if err != nil {
			return err
		}

		ctrl := core.NewController(chartOptions(), core.Events{})
		app := tui.NewApp(ctrl, tui.Config{
			Version: Version,
			DataDir: dir,
			TaxPath: taxPath,
			Watch:   tuiWatch,
			NoCache: tuiNoCache,
		})

		p := tea.NewProgram(app, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("tui: %w", err)
		}
		return nil
	},
}

func init() {
	tuiCmd.Flags().BoolVarP(&tuiWatch, "watch", "w", false, "reload when the data directory changes")
	tuiCmd.Flags().BoolVar(&tuiNoCache, "no-cache", false, "skip snapshot loading and saving")
}
