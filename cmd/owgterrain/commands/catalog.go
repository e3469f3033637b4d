package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	owgcatalog "github.com/openwebglobe/terrain/internal/catalog"
	"github.com/openwebglobe/terrain/internal/status"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Query the DuckDB tile catalog",
	}
	cmd.AddCommand(newCatalogListCmd(), newCatalogCountCmd())
	return cmd
}

func newCatalogListCmd() *cobra.Command {
	var (
		dataDir string
		layer   string
		lod     int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List indexed tiles for a layer at one LOD",
		RunE: func(cmd *cobra.Command, args []string) error {
			if layer == "" {
				return status.Params("--layer is required")
			}
			cat, err := owgcatalog.Open(owgcatalog.Config{DataDir: dataDir})
			if err != nil {
				return status.Config(err.Error())
			}
			tiles, err := cat.ListTiles(layer, lod)
			if err != nil {
				return status.File(err.Error())
			}
			for _, t := range tiles {
				fmt.Fprintf(cmd.OutOrStdout(), "%d/%d/%d\t%s\t%d points\t%s\n", t.LOD, t.TX, t.TY, t.Path, t.PointCount, t.WrittenAt)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dataDir, "catalog-dir", ".", "directory holding the catalog database")
	cmd.Flags().StringVar(&layer, "layer", "", "layer name (required)")
	cmd.Flags().IntVar(&lod, "lod", 0, "level of detail to list")
	return cmd
}

func newCatalogCountCmd() *cobra.Command {
	var (
		dataDir string
		layer   string
	)
	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count indexed tiles for a layer across all LODs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if layer == "" {
				return status.Params("--layer is required")
			}
			cat, err := owgcatalog.Open(owgcatalog.Config{DataDir: dataDir})
			if err != nil {
				return status.Config(err.Error())
			}
			n, err := cat.CountTiles(layer)
			if err != nil {
				return status.File(err.Error())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\n", n)
			return nil
		},
	}
	cmd.Flags().StringVar(&dataDir, "catalog-dir", ".", "directory holding the catalog database")
	cmd.Flags().StringVar(&layer, "layer", "", "layer name (required)")
	return cmd
}
