package statusapi

import (
	"context"
	"testing"

	"github.com/openwebglobe/terrain/internal/layerconfig"
)

func TestGetStatusReportsOrphanedRecords(t *testing.T) {
	root := t.TempDir()
	settings := layerconfig.NewSettings("elv0", layerconfig.TypeElevation, layerconfig.FormatRaw, 8, layerconfig.Extent{})
	l, err := layerconfig.Create(root, "elv0", settings)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := l.SaveProcessStatus(&layerconfig.ProcessStatus{Records: []layerconfig.ProcessRecord{
		{Filename: "a.tif", Processing: true, Finished: false},
	}}); err != nil {
		t.Fatalf("SaveProcessStatus: %v", err)
	}

	s := &Server{cfg: Config{LayerName: "elv0"}, layer: l}
	resp, err := s.getStatus(context.Background(), &struct{}{})
	if err != nil {
		t.Fatalf("getStatus: %v", err)
	}
	if resp.Body.OrphanedCount != 1 {
		t.Fatalf("OrphanedCount = %d, want 1", resp.Body.OrphanedCount)
	}
	if resp.Body.CatalogEnabled {
		t.Fatalf("CatalogEnabled = true, want false (no catalog wired in this test)")
	}
}
