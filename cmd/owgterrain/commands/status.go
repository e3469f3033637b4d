package commands

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/openwebglobe/terrain/internal/layerconfig"
	"github.com/openwebglobe/terrain/internal/status"
	"github.com/openwebglobe/terrain/internal/statusapi"
)

func newStatusCmd() *cobra.Command {
	var (
		root       string
		name       string
		host       string
		port       string
		catalogDir string
		serve      bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report a layer's process status, or serve it over HTTP with --serve",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return status.Params("--layer is required")
			}

			if serve {
				srv, err := statusapi.New(statusapi.Config{
					Host:       host,
					Port:       port,
					LayerRoot:  root,
					LayerName:  name,
					CatalogDir: catalogDir,
				})
				if err != nil {
					return status.Config(err.Error())
				}
				fmt.Fprintf(cmd.OutOrStdout(), "owgterrain status API listening on http://%s:%s\n", host, port)
				if err := http.ListenAndServe(host+":"+port, srv); err != nil {
					return status.Config(err.Error())
				}
				return nil
			}

			layer := layerconfig.Open(root, name)
			ps, err := layer.LoadProcessStatus()
			if err != nil {
				return status.File(err.Error())
			}
			orphaned := ps.Orphaned()
			fmt.Fprintf(cmd.OutOrStdout(), "layer %q: %d records, %d orphaned\n", name, len(ps.Records), len(orphaned))
			for _, r := range orphaned {
				fmt.Fprintf(cmd.OutOrStdout(), "  orphaned: %s (started %s)\n", r.Filename, r.Start)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "directory holding the layer's top-level folder")
	cmd.Flags().StringVar(&name, "layer", "", "layer name (required)")
	cmd.Flags().BoolVar(&serve, "serve", false, "serve status over HTTP instead of printing once")
	cmd.Flags().StringVar(&host, "host", "127.0.0.1", "host to bind to when --serve is set")
	cmd.Flags().StringVar(&port, "port", "8087", "port to listen on when --serve is set")
	cmd.Flags().StringVar(&catalogDir, "catalog-dir", ".", "directory holding the catalog database, used by --serve")
	return cmd
}
