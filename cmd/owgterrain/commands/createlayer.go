package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openwebglobe/terrain/internal/layerconfig"
	"github.com/openwebglobe/terrain/internal/status"
)

func newCreateLayerCmd() *cobra.Command {
	var (
		root   string
		name   string
		typ    string
		format string
		maxlod int
		tx0    int64
		ty0    int64
		tx1    int64
		ty1    int64
	)

	cmd := &cobra.Command{
		Use:   "createlayer",
		Short: "Initialize a new layer directory (layersettings, ProcessStatus, tiles/)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return status.Params("--layer is required")
			}

			settings := layerconfig.NewSettings(
				name,
				layerconfig.LayerType(typ),
				layerconfig.Format(format),
				maxlod,
				layerconfig.Extent{TX0: tx0, TY0: ty0, TX1: tx1, TY1: ty1},
			)
			if err := settings.Validate(); err != nil {
				return status.Config(err.Error())
			}

			l, err := layerconfig.Create(root, name, settings)
			if err != nil {
				return status.File(err.Error())
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created layer %q at %s\n", name, l.Root)
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "directory holding the layer's top-level folder")
	cmd.Flags().StringVar(&name, "layer", "", "layer name (required)")
	cmd.Flags().StringVar(&typ, "type", string(layerconfig.TypeElevation), "layer type: image or elevation")
	cmd.Flags().StringVar(&format, "format", string(layerconfig.FormatRaw), "tile format: png, jpg, json, or raw")
	cmd.Flags().IntVar(&maxlod, "maxlod", 10, "maximum level of detail")
	cmd.Flags().Int64Var(&tx0, "tx0", 0, "extent: minimum tile x at maxlod")
	cmd.Flags().Int64Var(&ty0, "ty0", 0, "extent: minimum tile y at maxlod")
	cmd.Flags().Int64Var(&tx1, "tx1", 0, "extent: maximum tile x at maxlod")
	cmd.Flags().Int64Var(&ty1, "ty1", 0, "extent: maximum tile y at maxlod")
	return cmd
}
