package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openwebglobe/terrain/internal/catalog"
	"github.com/openwebglobe/terrain/internal/layerconfig"
	"github.com/openwebglobe/terrain/internal/status"
	"github.com/openwebglobe/terrain/internal/tiledriver"
	"github.com/openwebglobe/terrain/internal/tilestore"
)

func newTriangulateCmd() *cobra.Command {
	var (
		root             string
		name             string
		numThreads       int
		amount           int
		maxPoints        int
		generateJobs     bool
		overrideJobQueue bool
		enableLocking    bool
		catalogDir       string
		useCatalog       bool
	)

	cmd := &cobra.Command{
		Use:   "triangulate",
		Short: "Triangulate queued tiles into tile JSON and .tri checkpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return status.Params("--layer is required")
			}

			defaults := defaultsFrom(cmd.Context())
			if !cmd.Flags().Changed("numthreads") {
				numThreads = defaults.NumThreads
			}
			if !cmd.Flags().Changed("maxpoints") {
				maxPoints = defaults.MaxPoints
			}
			if !cmd.Flags().Changed("enable_locking") {
				enableLocking = !defaults.NoLock
			}

			layer := layerconfig.Open(root, name)
			settings, err := layer.LoadSettings()
			if err != nil {
				return status.Config(fmt.Sprintf("load layersettings for %q: %v", name, err))
			}

			noLock := !enableLocking
			queueLock := tilestore.NewFileLock(layer.JobQueuePath()+".lock", noLock)
			queue := tilestore.Open(layer.JobQueuePath(), layer.JobQueueSeekPath(), queueLock)

			if generateJobs {
				records := jobsForExtent(settings.Extent, settings.MaxLOD)
				if err := queue.Generate(records, overrideJobQueue); err != nil {
					return status.File(err.Error())
				}
				fmt.Fprintf(cmd.OutOrStdout(), "generated %d jobs for layer %q\n", len(records), name)
				return nil
			}

			var cat *catalog.Catalog
			if useCatalog {
				c, err := catalog.Open(catalog.Config{DataDir: catalogDir})
				if err != nil {
					return status.Config(fmt.Sprintf("open catalog: %v", err))
				}
				cat = c
			}

			driver := tiledriver.NewDriver(layer, maxPoints, noLock)
			process := func(job tilestore.JobRecord) error {
				if err := driver.ProcessTile(int64(job.X), int64(job.Y), int(job.LOD)); err != nil {
					return err
				}
				if cat != nil {
					path := layer.TilePath(int(job.LOD), int64(job.X), int64(job.Y), "json")
					pts, _ := tilestore.ReadPTS(layer.TempTilePath(int(job.LOD), int64(job.X), int64(job.Y), "pts"))
					_ = cat.RecordTile(name, int(job.LOD), int64(job.X), int64(job.Y), path, len(pts))
				}
				return nil
			}

			tileErrs, err := tiledriver.RunWorkerPool(context.Background(), numThreads, amount, queue, process)
			if err != nil {
				return status.File(err.Error())
			}
			for _, te := range tileErrs {
				fmt.Fprintf(cmd.ErrOrStderr(), "tile (%d,%d,%d): %v\n", te.Job.X, te.Job.Y, te.Job.LOD, te.Err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "processed layer %q: %d tile errors\n", name, len(tileErrs))
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "directory holding the layer's top-level folder")
	cmd.Flags().StringVar(&name, "layer", "", "layer name (required)")
	cmd.Flags().IntVar(&numThreads, "numthreads", 4, "number of worker goroutines")
	cmd.Flags().IntVar(&amount, "amount", 64, "number of jobs fetched from the queue per batch")
	cmd.Flags().IntVar(&maxPoints, "maxpoints", 2048, "maximum vertices retained per output tile mesh")
	cmd.Flags().BoolVar(&generateJobs, "generatejobs", false, "generate the job queue for this layer's extent instead of processing it")
	cmd.Flags().BoolVar(&overrideJobQueue, "overridejobqueue", false, "allow --generatejobs to replace an already-populated queue")
	cmd.Flags().BoolVar(&enableLocking, "enable_locking", true, "use advisory file locking (disable with --enable_locking=false for --nolock single-process runs)")
	cmd.Flags().BoolVar(&useCatalog, "catalog", false, "record each processed tile in the DuckDB catalog")
	cmd.Flags().StringVar(&catalogDir, "catalog-dir", ".", "directory holding the catalog database")
	return cmd
}

// jobsForExtent walks settings' tile extent at maxlod and returns one
// job record per tile, per spec.md §6 "--generatejobs".
func jobsForExtent(extent layerconfig.Extent, maxlod int) []tilestore.JobRecord {
	var records []tilestore.JobRecord
	for ty := extent.TY0; ty <= extent.TY1; ty++ {
		for tx := extent.TX0; tx <= extent.TX1; tx++ {
			records = append(records, tilestore.JobRecord{X: int32(tx), Y: int32(ty), LOD: int32(maxlod)})
		}
	}
	return records
}
