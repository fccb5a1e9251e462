package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lumipallolabs/corpusmap/internal/core"
	"github.com/lumipallolabs/corpusmap/internal/layout"
	"github.com/lumipallolabs/corpusmap/internal/loader"
)

var (
	renderOut    string
	renderWidth  int
	renderHeight int
	renderZoom   string
)

// renderCmd produces a single SVG snapshot of the treemap.
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the treemap once as SVG",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		dir, err := resolveDataDir()
		if err != nil {
			return err
		}

		records, err := loader.LoadDir(dir)
		if err != nil {
			return err
		}
		tax, err := loader.LoadTaxonomy(taxPath)
		if err != nil {
			return err
		}

		ctrl := core.NewController(chartOptions(), core.Events{})
		if err := ctrl.SetData(records, tax); err != nil {
			// Renders as the placeholder document
			fmt.Fprintln(os.Stderr, err.Error())
		}
		if renderZoom != "" {
			if !ctrl.ZoomToName(renderZoom) {
				return fmt.Errorf("no zoomable category %q", renderZoom)
			}
		}

		doc := ctrl.RenderSVG(layout.Viewport{
			Width:  float64(renderWidth),
			Height: float64(renderHeight),
		}, nil)

		if renderOut == "" || renderOut == "-" {
			_, err = os.Stdout.Write(doc)
			return err
		}
		return os.WriteFile(renderOut, doc, 0644)
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "-", "output file (- for stdout)")
	renderCmd.Flags().IntVar(&renderWidth, "width", 1200, "viewport width in pixels")
	renderCmd.Flags().IntVar(&renderHeight, "height", 800, "viewport height in pixels")
	renderCmd.Flags().StringVar(&renderZoom, "zoom", "", "render zoomed into the named category")
}
