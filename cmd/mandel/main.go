// mandel renders views of the Mandelbrot set to PNG files.
package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

func mainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mandel",
		Short: "Render the Mandelbrot set",
		Args:  cobra.ExactArgs(0),
	}

	cmd.AddCommand(renderCmd(), regionsCmd())
	return cmd
}

func main() {
	ctx := context.Background()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
