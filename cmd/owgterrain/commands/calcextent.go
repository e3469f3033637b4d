package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openwebglobe/terrain/internal/mercator"
	"github.com/openwebglobe/terrain/internal/quadtree"
	"github.com/openwebglobe/terrain/internal/status"
)

// newCalcExtentCmd computes the tile extent [tx0,ty0,tx1,ty1] at maxlod
// covering a WGS84 bounding box, the same Mercator/quadtree mapping
// used by the triangulate/resample tools, exposed standalone so a
// dataset's extent can be computed before createlayer runs.
func newCalcExtentCmd() *cobra.Command {
	var (
		maxlod      int
		west, south float64
		east, north float64
		ellipsoidal bool
	)

	cmd := &cobra.Command{
		Use:   "calcextent",
		Short: "Compute the covering tile extent for a WGS84 bounding box",
		RunE: func(cmd *cobra.Command, args []string) error {
			if east < west || north < south {
				return status.Area("bounding box has no area: east>=west and north>=south are required")
			}

			mode := mercator.Spherical
			if ellipsoidal {
				mode = mercator.Ellipsoidal
			}

			pxW, pyN := quadtree.WGS84ToPixel(west, north, maxlod, mode)
			pxE, pyS := quadtree.WGS84ToPixel(east, south, maxlod, mode)

			tx0, ty0 := quadtree.PixelToTile(pxW, pyN, maxlod)
			tx1, ty1 := quadtree.PixelToTile(pxE, pyS, maxlod)

			fmt.Fprintf(cmd.OutOrStdout(), "--tx0=%d --ty0=%d --tx1=%d --ty1=%d\n", tx0, ty0, tx1, ty1)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxlod, "maxlod", 10, "level of detail to compute the extent at")
	cmd.Flags().Float64Var(&west, "west", -180, "bounding box west longitude, degrees")
	cmd.Flags().Float64Var(&south, "south", -85, "bounding box south latitude, degrees")
	cmd.Flags().Float64Var(&east, "east", 180, "bounding box east longitude, degrees")
	cmd.Flags().Float64Var(&north, "north", 85, "bounding box north latitude, degrees")
	cmd.Flags().BoolVar(&ellipsoidal, "ellipsoidal", false, "use WGS84-ellipsoidal Mercator instead of spherical")
	return cmd
}
