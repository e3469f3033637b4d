package layerconfig

import (
	"os"
	"testing"
)

func TestCreateAndLoadSettings(t *testing.T) {
	root := t.TempDir()
	settings := NewSettings("elevation0", TypeElevation, FormatRaw, 10, Extent{TX0: 0, TY0: 0, TX1: 3, TY1: 3})

	l, err := Create(root, "elevation0", settings)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := os.Stat(l.TilesDir()); err != nil {
		t.Fatalf("tiles dir missing: %v", err)
	}
	if _, err := os.Stat(l.TempTilesDir()); err != nil {
		t.Fatalf("temp tiles dir missing: %v", err)
	}

	got, err := l.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if got.Name != settings.Name || got.MaxLOD != settings.MaxLOD || got.SRS != DefaultSRS {
		t.Fatalf("LoadSettings() = %+v, want %+v", got, settings)
	}

	if _, err := os.Stat(l.settingsJSONPath()); err != nil {
		t.Fatalf("json mirror missing: %v", err)
	}
}

func TestRejectUnsupportedSRS(t *testing.T) {
	s := NewSettings("bad", TypeImage, FormatPNG, 5, Extent{})
	s.SRS = "EPSG:4326"
	if err := s.Validate(); err == nil {
		t.Fatal("expected Validate to reject a non-3857 SRS")
	}
}

func TestOrphanedProcessingRecords(t *testing.T) {
	root := t.TempDir()
	settings := NewSettings("img0", TypeImage, FormatPNG, 8, Extent{TX1: 1, TY1: 1})
	l, err := Create(root, "img0", settings)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	ps := &ProcessStatus{Records: []ProcessRecord{
		{Filename: "a.tif", Start: "2026-01-01T00:00:00Z", Processing: true, Finished: false},
		{Filename: "b.tif", Start: "2026-01-01T00:00:00Z", Finish: "2026-01-01T01:00:00Z", Processing: false, Finished: true},
	}}
	if err := l.SaveProcessStatus(ps); err != nil {
		t.Fatalf("SaveProcessStatus: %v", err)
	}

	orphaned, err := l.MarkOrphaned()
	if err != nil {
		t.Fatalf("MarkOrphaned: %v", err)
	}
	if len(orphaned) != 1 || orphaned[0].Filename != "a.tif" {
		t.Fatalf("MarkOrphaned() = %+v, want exactly a.tif", orphaned)
	}
}
