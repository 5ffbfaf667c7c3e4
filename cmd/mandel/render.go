package main

import (
	"errors"
	"fmt"
	"image"
	"log"
	"time"

	"github.com/spf13/cobra"

	mandel "github.com/marben/mandel_explorer"
	"github.com/marben/mandel_explorer/internal/present"
)

var errDegenerateSelection = errors.New("selection too small to frame")

type renderOptions struct {
	width, height int32
	rowAlign      int32

	region      string
	centerReal  float64
	centerImag  float64
	worldHeight float64

	iterations int32
	mode       string
	ramp       mandel.ColorRamp

	zooms     []string
	pan       string
	selection string

	output  string
	overlay bool
}

func renderCmd() *cobra.Command {
	opts := renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one view to a PNG file",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			// At this point usage information has already been printed if obviously incorrect.
			cmd.SilenceUsage = true
			return runRender(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.Int32Var(&opts.width, "width", 800, "image width in pixels")
	flags.Int32Var(&opts.height, "height", 600, "image height in pixels")
	flags.Int32Var(&opts.rowAlign, "row-align", 4, "pixel buffer row alignment in bytes")

	flags.StringVar(&opts.region, "region", "", "start from a named landmark (see 'mandel regions')")
	flags.Float64Var(&opts.centerReal, "center-real", mandel.DefaultCenterReal, "real part of the view center")
	flags.Float64Var(&opts.centerImag, "center-imag", mandel.DefaultCenterImag, "imaginary part of the view center")
	flags.Float64Var(&opts.worldHeight, "world-height", 0, "height of the view in world units (default keeps the reset scale)")

	flags.Int32Var(&opts.iterations, "iterations", mandel.DefaultMaxIterations, "maximum iterations per point")
	flags.StringVar(&opts.mode, "mode", mandel.ModeLinear.String(), "coloring mode: linear or hsv")
	flags.Uint8Var(&opts.ramp.RedMin, "red-min", mandel.DefaultRamp.RedMin, "red at 0 iterations")
	flags.Uint8Var(&opts.ramp.RedMax, "red-max", mandel.DefaultRamp.RedMax, "red at max iterations")
	flags.Uint8Var(&opts.ramp.GreenMin, "green-min", mandel.DefaultRamp.GreenMin, "green at 0 iterations")
	flags.Uint8Var(&opts.ramp.GreenMax, "green-max", mandel.DefaultRamp.GreenMax, "green at max iterations")
	flags.Uint8Var(&opts.ramp.BlueMin, "blue-min", mandel.DefaultRamp.BlueMin, "blue at 0 iterations")
	flags.Uint8Var(&opts.ramp.BlueMax, "blue-max", mandel.DefaultRamp.BlueMax, "blue at max iterations")

	flags.StringArrayVar(&opts.zooms, "zoom", nil, "wheel zoom step x,y,delta (repeatable, 120 = one notch in)")
	flags.StringVar(&opts.pan, "pan", "", "pan by dx,dy pixels")
	flags.StringVar(&opts.selection, "select", "", "zoom into the selection x0,y0,x1,y1")

	flags.StringVarP(&opts.output, "output", "o", "mandel.png", "output file")
	flags.BoolVar(&opts.overlay, "overlay", false, "stamp the status line into the image")

	return cmd
}

// setup builds the explorer state described by the flags.
func setup(cmd *cobra.Command, opts renderOptions) (*mandel.Explorer, error) {
	e := mandel.NewExplorer(int(opts.width), int(opts.height))

	if opts.region != "" {
		r, err := mandel.LookupRegion(opts.region)
		if err != nil {
			return nil, err
		}
		e.SetViewport(r.Viewport(int(opts.width), int(opts.height)))
	}

	mode, err := mandel.ParseColorMode(opts.mode)
	if err != nil {
		return nil, err
	}

	props := e.Properties()
	props.MaxIterations = opts.iterations
	props.Ramp = opts.ramp
	props.Mode = mode
	if cmd.Flags().Changed("center-real") {
		props.CenterReal = opts.centerReal
	}
	if cmd.Flags().Changed("center-imag") {
		props.CenterImag = opts.centerImag
	}
	if cmd.Flags().Changed("world-height") {
		props.Height = opts.worldHeight
	}
	if err := e.ApplyProperties(props); err != nil {
		return nil, err
	}

	for _, z := range opts.zooms {
		var x, y, delta int
		if _, err := fmt.Sscanf(z, "%d,%d,%d", &x, &y, &delta); err != nil {
			return nil, fmt.Errorf("--zoom %q: %w", z, err)
		}
		e.Wheel(x, y, delta)
	}

	if opts.pan != "" {
		var dx, dy int
		if _, err := fmt.Sscanf(opts.pan, "%d,%d", &dx, &dy); err != nil {
			return nil, fmt.Errorf("--pan %q: %w", opts.pan, err)
		}
		e.BeginDrag(image.Point{})
		e.DragTo(image.Pt(dx, dy))
		e.EndDrag()
	}

	if opts.selection != "" {
		var x0, y0, x1, y1 int
		if _, err := fmt.Sscanf(opts.selection, "%d,%d,%d,%d", &x0, &y0, &x1, &y1); err != nil {
			return nil, fmt.Errorf("--select %q: %w", opts.selection, err)
		}
		e.BeginSelection(image.Pt(x0, y0))
		e.UpdateSelection(image.Pt(x1, y1))
		if !e.CommitSelection() {
			return nil, fmt.Errorf("--select %q: %w", opts.selection, errDegenerateSelection)
		}
	}

	return e, nil
}

func runRender(cmd *cobra.Command, opts renderOptions) error {
	if opts.width <= 0 || opts.height <= 0 {
		return fmt.Errorf("invalid size %dx%d", opts.width, opts.height)
	}

	e, err := setup(cmd, opts)
	if err != nil {
		return err
	}

	buf := mandel.NewPixelBuffer(opts.width, opts.height, opts.rowAlign)

	start := time.Now()
	if _, err := e.Repaint(buf); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	log.Printf("rendered %dx%d in %s: %s", opts.width, opts.height, time.Since(start), e.Overlay().Text())

	out := present.PNGFile{Path: opts.output, Overlay: opts.overlay}
	if err := out.Present(buf, e.Overlay()); err != nil {
		return err
	}

	log.Printf("saved to %q", opts.output)
	return nil
}
