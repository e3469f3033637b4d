// Command owgterrain builds and serves an OpenWebGlobe Mercator terrain
// tile pyramid: layer creation, extent calculation, triangulation, and
// coarser-LOD resampling, plus a read-only status server. Grounded on
// the teacher's cmd/geo layout, split from one humacli-bound server
// command into a cobra tree of independent tools, per SPEC_FULL.md §0's
// CLI description.
package main

import (
	"fmt"
	"os"

	"github.com/openwebglobe/terrain/cmd/owgterrain/commands"
	"github.com/openwebglobe/terrain/internal/status"
)

func main() {
	root := commands.NewRootCmd()
	if err := root.Execute(); err != nil {
		var code *status.Code
		if c, ok := err.(*status.Code); ok {
			code = c
		} else {
			code = status.Config(err.Error())
		}
		fmt.Fprintln(os.Stderr, "owgterrain:", code.Message)
		os.Exit(code.Value)
	}
}
