// Package commands assembles the owgterrain cobra command tree:
// createlayer, calcextent, triangulate, resample, catalog, and status.
// Each subcommand owns its own flag set rather than binding into one
// humacli.Options struct, since unlike the teacher's single-server
// cmd/geo, owgterrain is a multi-tool CLI whose subcommands share
// little beyond --layer/--root.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/openwebglobe/terrain/internal/config"
)

// NewRootCmd builds the owgterrain root command and wires every
// subcommand.
func NewRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:     "owgterrain",
		Short:   "Build and serve an OpenWebGlobe Mercator terrain tile pyramid",
		Version: "0.1.0",
		// SilenceUsage/SilenceErrors: subcommand errors carry a
		// *status.Code that main decodes into the process exit code;
		// cobra's default usage dump on error would bury that message.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			d, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cmd.SetContext(withDefaults(cmd.Context(), d))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to an owgterrain.yaml defaults file")

	root.AddCommand(
		newCreateLayerCmd(),
		newCalcExtentCmd(),
		newTriangulateCmd(),
		newResampleCmd(),
		newCatalogCmd(),
		newStatusCmd(),
	)
	return root
}
