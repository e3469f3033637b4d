package commands

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/openwebglobe/terrain/internal/layerconfig"
)

func TestCreateLayerCmdWritesSettings(t *testing.T) {
	root := t.TempDir()
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"createlayer", "--root", root, "--layer", "elev0", "--maxlod", "6"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	l := layerconfig.Open(root, "elev0")
	settings, err := l.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if settings.MaxLOD != 6 {
		t.Fatalf("MaxLOD = %d, want 6", settings.MaxLOD)
	}
	if _, err := filepath.Abs(l.TilesDir()); err != nil {
		t.Fatalf("TilesDir: %v", err)
	}
}

func TestCreateLayerCmdRequiresLayerName(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"createlayer", "--root", t.TempDir()})
	cmd.SetOut(bytes.NewBuffer(nil))
	if err := cmd.Execute(); err == nil {
		t.Fatal("Execute: want error for missing --layer")
	}
}

func TestCalcExtentCmdRejectsEmptyBox(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"calcextent", "--west", "10", "--east", "5"})
	cmd.SetOut(bytes.NewBuffer(nil))
	if err := cmd.Execute(); err == nil {
		t.Fatal("Execute: want error for a bounding box with no area")
	}
}
