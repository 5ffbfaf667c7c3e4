package main

import (
	"fmt"

	"github.com/spf13/cobra"

	mandel "github.com/marben/mandel_explorer"
)

func regionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "List the named landmarks accepted by render --region",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, name := range mandel.RegionNames() {
				r, err := mandel.LookupRegion(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-14s re [%g, %g]  im [%g, %g]\n", name, r.Xmin, r.Xmax, r.Ymin, r.Ymax)
			}
			return nil
		},
	}
}
