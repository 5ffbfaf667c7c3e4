// mandelview opens a desktop window for exploring the Mandelbrot set.
//
// Controls:
//
//	mouse wheel  zoom in/out around the cursor
//	left drag    pan
//	right drag   select a region to zoom into
//	R            reset the view
//	+ / -        increase/decrease max iterations
//	M            switch between linear and smooth HSV coloring
//	O            toggle the status overlay
//	Esc          cancel a selection, or quit
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	mandel "github.com/marben/mandel_explorer"
)

type viewConfig struct {
	width, height int
	rowAlign      int32
	iterations    int32
	region        string
	mode          string
}

func mainCmd() *cobra.Command {
	cfg := viewConfig{}

	cmd := &cobra.Command{
		Use:   "mandelview",
		Short: "Explore the Mandelbrot set in a window",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			// At this point usage information has already been printed if obviously incorrect.
			cmd.SilenceUsage = true
			return run(cfg)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&cfg.width, "width", 800, "initial window width")
	flags.IntVar(&cfg.height, "height", 600, "initial window height")
	flags.Int32Var(&cfg.rowAlign, "row-align", 64, "pixel buffer row alignment in bytes")
	flags.Int32Var(&cfg.iterations, "iterations", mandel.DefaultMaxIterations, "initial max iterations")
	flags.StringVar(&cfg.region, "region", "", "start at a named landmark")
	flags.StringVar(&cfg.mode, "mode", mandel.ModeLinear.String(), "coloring mode: linear or hsv")

	return cmd
}

func run(cfg viewConfig) error {
	if cfg.width <= 0 || cfg.height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", cfg.width, cfg.height)
	}

	e := mandel.NewExplorer(cfg.width, cfg.height)
	if cfg.region != "" {
		r, err := mandel.LookupRegion(cfg.region)
		if err != nil {
			return err
		}
		e.SetViewport(r.Viewport(cfg.width, cfg.height))
	}

	mode, err := mandel.ParseColorMode(cfg.mode)
	if err != nil {
		return err
	}
	props := e.Properties()
	props.MaxIterations = cfg.iterations
	props.Mode = mode
	if err := e.ApplyProperties(props); err != nil {
		return err
	}

	w := newWindow(e, cfg.rowAlign)

	ebiten.SetWindowTitle("Mandelbrot explorer")
	ebiten.SetWindowSize(cfg.width, cfg.height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	log.Printf("window %dx%d: %s", cfg.width, cfg.height, e.Overlay().Text())
	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("ebiten.RunGame: %w", err)
	}
	return nil
}

func main() {
	ctx := context.Background()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
