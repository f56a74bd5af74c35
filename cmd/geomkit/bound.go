package main

import (
	"fmt"
	"sort"

	"geomkit/internal/bounds"
	"geomkit/internal/scene"

	"github.com/spf13/cobra"
)

func newBoundCmd(a *app) *cobra.Command {
	var seed uint64
	var compare bool
	cmd := &cobra.Command{
		Use:   "bound <fixture>",
		Short: "Print the minimal bounding sphere of every point set in a fixture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := scene.Load(args[0])
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", args[0], err)
			}
			names := make([]string, 0, len(sc.PointSets))
			for name := range sc.PointSets {
				names = append(names, name)
			}
			sort.Strings(names)

			for _, name := range names {
				pts := sc.PointSets[name]
				s := bounds.Compute(pts)
				if cmd.Flags().Changed("seed") {
					s = bounds.ComputeWith(pts, bounds.NewShuffler(seed))
				}
				fmt.Fprintf(a.out, "%-16s %4d points | welzl center %s radius %.5g\n",
					name, len(pts), fmtVec(s.Center), s.Radius)
				if compare {
					r := bounds.Ritter(pts)
					box := bounds.AABBFromPoints(pts)
					ratio := float32(1)
					if s.Radius > 0 {
						ratio = r.Radius / s.Radius
					}
					fmt.Fprintf(a.out, "%-16s %4s        | ritter center %s radius %.5g (%.3fx)\n",
						"", "", fmtVec(r.Center), r.Radius, ratio)
					fmt.Fprintf(a.out, "%-16s %4s        | box    min %s max %s\n",
						"", "", fmtVec(box.Min()), fmtVec(box.Max()))
				}
				a.log.Debug("bounded point set", "name", name, "points", len(pts), "radius", s.Radius)
			}
			return nil
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 0, "shuffle seed (default: the fixed library seed)")
	cmd.Flags().BoolVar(&compare, "compare", false, "also print Ritter's sphere and the bounding box")
	return cmd
}
