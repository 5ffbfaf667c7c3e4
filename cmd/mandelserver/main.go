// mandelserver serves the Mandelbrot explorer to web browsers.
// Every websocket connection gets its own view; the server renders frames
// and streams them back as PNG images.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
)

type serverConfig struct {
	addr     string
	width    int
	height   int
	rowAlign int32
	overlay  bool
}

func mainCmd() *cobra.Command {
	cfg := serverConfig{}

	cmd := &cobra.Command{
		Use:   "mandelserver",
		Short: "Serve the Mandelbrot explorer over http and websocket",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			// At this point usage information has already been printed if obviously incorrect.
			cmd.SilenceUsage = true
			return run(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.addr, "addr", ":8080", "http listen address")
	flags.IntVar(&cfg.width, "width", 800, "initial view width in pixels")
	flags.IntVar(&cfg.height, "height", 600, "initial view height in pixels")
	flags.Int32Var(&cfg.rowAlign, "row-align", 64, "pixel buffer row alignment in bytes")
	flags.BoolVar(&cfg.overlay, "overlay", true, "stamp the status line and selection into frames")

	return cmd
}

func run(ctx context.Context, cfg serverConfig) error {
	if cfg.width <= 0 || cfg.height <= 0 {
		return fmt.Errorf("invalid initial size %dx%d", cfg.width, cfg.height)
	}

	srv := webServer(cfg)

	errc := make(chan error, 1)
	go func() {
		log.Printf("listening on http://localhost%s", cfg.addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("httpServer: %w", err)
	case <-ctx.Done():
	}

	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := mainCmd().ExecuteContext(ctx); err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
