package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumipallolabs/corpusmap/internal/core"
	"github.com/lumipallolabs/corpusmap/internal/logging"
	"github.com/lumipallolabs/corpusmap/internal/palette"
	"github.com/lumipallolabs/corpusmap/internal/prefs"
)

// Global flag values.
var (
	verbose bool
	quiet   bool

	dataDir     string
	taxPath     string
	rootLabel   string
	childColors string
	breadcrumbs bool
)

// rootCmd is the base command for corpusmap.
var rootCmd = &cobra.Command{
	Use:   "corpusmap",
	Short: "Treemap dashboard for catalog collections",
	Long: `Corpusmap visualizes how a catalog's metric values distribute across
its collection hierarchy. It builds a two-level category tree from flat
record files and renders it as a squarified treemap, in the terminal or
as an SVG dashboard served over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logging.Setup(verbose, quiet)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")

	rootCmd.PersistentFlags().StringVarP(&dataDir, "data", "d", "", "directory of record files (defaults to the last used directory)")
	rootCmd.PersistentFlags().StringVarP(&taxPath, "taxonomy", "t", "", "taxonomy YAML file")
	rootCmd.PersistentFlags().StringVar(&rootLabel, "root-label", "", "label for the hierarchy root")
	rootCmd.PersistentFlags().StringVar(&childColors, "child-colors", "inherit", "subcategory coloring: inherit or variant")
	rootCmd.PersistentFlags().BoolVar(&breadcrumbs, "breadcrumbs", true, "show a breadcrumb trail instead of a back hint")

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDataDir falls back to the last directory the user loaded
func resolveDataDir() (string, error) {
	if dataDir != "" {
		return dataDir, nil
	}
	pm := prefs.NewManager()
	if err := pm.Load(); err == nil {
		if dir := pm.DefaultDataDir(); dir != "" {
			return dir, nil
		}
	}
	return "", fmt.Errorf("no data directory: pass --data or load one first")
}

// chartOptions translates the shared flags into pipeline options
func chartOptions() core.Options {
	opts := core.DefaultOptions()
	opts.UseBreadcrumbs = breadcrumbs
	if rootLabel != "" {
		opts.RootLabel = rootLabel
	}
	if childColors == "variant" {
		opts.ChildColorMode = palette.ModeVariant
	}
	return opts
}
