// Package statusapi exposes a read-only Huma/Datastar status surface
// over a layer's tile-store and job-queue state (SPEC_FULL.md §1, §3):
// operator-facing monitoring only, never tile bytes. Grounded on the
// teacher's internal/server + internal/api wiring (humago adapter,
// huma.Get route registration) and internal/api/editor's Datastar SSE
// pattern, generalized from an editor backend to a read-only status
// feed.
package statusapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"

	"github.com/openwebglobe/terrain/internal/catalog"
	"github.com/openwebglobe/terrain/internal/layerconfig"
	"github.com/openwebglobe/terrain/internal/tilestore"
)

// Config locates the layer and catalog this status server reports on.
type Config struct {
	Host       string
	Port       string
	LayerRoot  string
	LayerName  string
	CatalogDir string
}

// Server is the read-only status HTTP server.
type Server struct {
	cfg     Config
	mux     *http.ServeMux
	humaAPI huma.API
	layer   *layerconfig.Layer
	cat     *catalog.Catalog
}

// New builds a Server. The catalog connection is optional: if it
// cannot be opened, tile-count endpoints degrade to "unavailable"
// rather than failing server startup.
func New(cfg Config) (*Server, error) {
	mux := http.NewServeMux()

	humaConfig := huma.DefaultConfig("owgterrain status API", "1.0.0")
	humaConfig.Info.Description = "Read-only monitoring for an OpenWebGlobe terrain layer: process status, job-queue depth, and the tile catalog."
	humaConfig.Servers = []*huma.Server{
		{URL: fmt.Sprintf("http://%s:%s", cfg.Host, cfg.Port), Description: "Local server"},
	}
	humaAPI := humago.New(mux, humaConfig)

	s := &Server{
		cfg:     cfg,
		mux:     mux,
		humaAPI: humaAPI,
		layer:   layerconfig.Open(cfg.LayerRoot, cfg.LayerName),
	}

	if cat, err := catalog.Open(catalog.Config{DataDir: cfg.CatalogDir, DBName: "catalog"}); err == nil {
		s.cat = cat
	}

	s.routes()
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) routes() {
	huma.Get(s.humaAPI, "/health", s.getHealth, huma.OperationTags("health"))
	huma.Get(s.humaAPI, "/status", s.getStatus, huma.OperationTags("status"))
	huma.Get(s.humaAPI, "/queue", s.getQueue, huma.OperationTags("status"))
	huma.Get(s.humaAPI, "/catalog/{lod}", s.getCatalog, huma.OperationTags("status"))
	s.mux.HandleFunc("/status/stream", s.streamStatus)
}

// HealthBody reports liveness only.
type HealthBody struct {
	Status string `json:"status" doc:"Health status" example:"ok"`
}

func (s *Server) getHealth(ctx context.Context, _ *struct{}) (*struct{ Body HealthBody }, error) {
	return &struct{ Body HealthBody }{Body: HealthBody{Status: "ok"}}, nil
}

// StatusBody summarizes one layer's process status, per spec.md §6
// "Process status".
type StatusBody struct {
	Layer          string `json:"layer"`
	OrphanedCount  int    `json:"orphaned_count"`
	TotalTiles     int64  `json:"total_tiles,omitempty"`
	CatalogEnabled bool   `json:"catalog_enabled"`
}

func (s *Server) getStatus(ctx context.Context, _ *struct{}) (*struct{ Body StatusBody }, error) {
	body := StatusBody{Layer: s.cfg.LayerName, CatalogEnabled: s.cat != nil}

	ps, err := s.layer.LoadProcessStatus()
	if err == nil {
		body.OrphanedCount = len(ps.Orphaned())
	}
	if s.cat != nil {
		if n, err := s.cat.CountTiles(s.cfg.LayerName); err == nil {
			body.TotalTiles = n
		}
	}
	return &struct{ Body StatusBody }{Body: body}, nil
}

// QueueBody reports the job queue's remaining depth.
type QueueBody struct {
	Remaining int64 `json:"remaining"`
}

func (s *Server) getQueue(ctx context.Context, _ *struct{}) (*struct{ Body QueueBody }, error) {
	q := tilestore.Open(s.layer.JobQueuePath(), s.layer.JobQueueSeekPath(), tilestore.NewFileLock(s.layer.JobQueuePath()+".lock", true))
	remaining, err := q.Remaining()
	if err != nil {
		return nil, huma.Error500InternalServerError("reading queue cursor", err)
	}
	return &struct{ Body QueueBody }{Body: QueueBody{Remaining: remaining}}, nil
}

// CatalogInput selects one LOD's tile list.
type CatalogInput struct {
	LOD int `path:"lod" doc:"Level of detail"`
}

// CatalogBody lists the catalog's indexed tiles for one LOD.
type CatalogBody struct {
	Tiles []catalog.TileRecord `json:"tiles"`
}

func (s *Server) getCatalog(ctx context.Context, input *CatalogInput) (*struct{ Body CatalogBody }, error) {
	if s.cat == nil {
		return nil, huma.Error503ServiceUnavailable("catalog not available")
	}
	tiles, err := s.cat.ListTiles(s.cfg.LayerName, input.LOD)
	if err != nil {
		return nil, huma.Error500InternalServerError("listing catalog", err)
	}
	return &struct{ Body CatalogBody }{Body: CatalogBody{Tiles: tiles}}, nil
}

// streamStatus pushes a fresh status snapshot to the client every
// second over Datastar SSE, for a live operator dashboard. It never
// serves tile bytes -- only the same fields getStatus/getQueue report.
func (s *Server) streamStatus(w http.ResponseWriter, r *http.Request) {
	sse := newSSE(w, r)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			status, _ := s.getStatus(r.Context(), &struct{}{})
			queue, _ := s.getQueue(r.Context(), &struct{}{})
			signals := map[string]any{"status": nil, "queue": nil}
			if status != nil {
				signals["status"] = status.Body
			}
			if queue != nil {
				signals["queue"] = queue.Body
			}
			sse.sendSignals(signals)
		}
	}
}
