package layerconfig

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
)

// Layer is a handle onto one layer's directory tree at Root, per
// spec.md §6's directory layout.
type Layer struct {
	Root string
}

// Open returns a handle onto an existing layer directory under root.
func Open(root, name string) *Layer {
	return &Layer{Root: filepath.Join(root, name)}
}

// Create initializes a fresh layer directory (the createlayer tool,
// SPEC_FULL.md §3): lays out tiles/ and temp/tiles/, writes the
// initial layersettings.xml/.json pair, and seeds an empty
// ProcessStatus.xml.
func Create(root, name string, settings Settings) (*Layer, error) {
	l := &Layer{Root: filepath.Join(root, name)}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	for _, dir := range []string{l.Root, l.TilesDir(), l.TempTilesDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("layerconfig: create %s: %w", dir, err)
		}
	}
	if err := l.SaveSettings(settings); err != nil {
		return nil, err
	}
	if err := l.SaveProcessStatus(&ProcessStatus{}); err != nil {
		return nil, err
	}
	return l, nil
}

// TilesDir is <root>/<layer>/tiles.
func (l *Layer) TilesDir() string { return filepath.Join(l.Root, "tiles") }

// TempTilesDir is <root>/<layer>/temp/tiles.
func (l *Layer) TempTilesDir() string { return filepath.Join(l.Root, "temp", "tiles") }

// TilePath returns the path of one tile file, per spec.md §4.11:
// tiles/<lod>/<tx>/<ty>.<ext>. ext does not include the leading dot.
func (l *Layer) TilePath(lod int, tx, ty int64, ext string) string {
	return filepath.Join(l.TilesDir(), itoa(lod), itoa64(tx), itoa64(ty)+"."+ext)
}

// TempTilePath is TilePath's counterpart under temp/tiles.
func (l *Layer) TempTilePath(lod int, tx, ty int64, ext string) string {
	return filepath.Join(l.TempTilesDir(), itoa(lod), itoa64(tx), itoa64(ty)+"."+ext)
}

// EnsureTileDir creates the parent directory for a tile path lazily,
// per spec.md §4.11 "directories are created lazily".
func EnsureTileDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

func (l *Layer) settingsXMLPath() string  { return filepath.Join(l.Root, "layersettings.xml") }
func (l *Layer) settingsJSONPath() string { return filepath.Join(l.Root, "layersettings.json") }
func (l *Layer) processStatusPath() string {
	return filepath.Join(l.Root, "ProcessStatus.xml")
}

// JobQueuePath is the append-only job-queue file, per spec.md §4.11.
func (l *Layer) JobQueuePath() string { return filepath.Join(l.Root, "jobqueue.jobs") }

// JobQueueSeekPath is the sibling cursor file.
func (l *Layer) JobQueueSeekPath() string { return l.JobQueuePath() + ".seek" }

// LoadSettings reads layersettings.xml, the canonical copy.
func (l *Layer) LoadSettings() (Settings, error) {
	var s Settings
	data, err := os.ReadFile(l.settingsXMLPath())
	if err != nil {
		return s, err
	}
	if err := xml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("layerconfig: parse %s: %w", l.settingsXMLPath(), err)
	}
	return s, nil
}

// SaveSettings writes both layersettings.xml (canonical) and
// layersettings.json (mirror), per spec.md §6.
func (l *Layer) SaveSettings(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	xmlData, err := xml.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(l.settingsXMLPath(), append([]byte(xml.Header), xmlData...), 0o644); err != nil {
		return err
	}
	jsonData, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(l.settingsJSONPath(), jsonData, 0o644)
}

// LoadProcessStatus reads ProcessStatus.xml. A missing file is treated
// as an empty status document rather than an error.
func (l *Layer) LoadProcessStatus() (*ProcessStatus, error) {
	data, err := os.ReadFile(l.processStatusPath())
	if err != nil {
		if os.IsNotExist(err) {
			return &ProcessStatus{}, nil
		}
		return nil, err
	}
	ps := &ProcessStatus{}
	if err := xml.Unmarshal(data, ps); err != nil {
		return nil, fmt.Errorf("layerconfig: parse %s: %w", l.processStatusPath(), err)
	}
	return ps, nil
}

// SaveProcessStatus writes ProcessStatus.xml.
func (l *Layer) SaveProcessStatus(ps *ProcessStatus) error {
	data, err := xml.MarshalIndent(ps, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(l.processStatusPath(), append([]byte(xml.Header), data...), 0o644)
}

// MarkOrphaned scans ProcessStatus.xml for records left "processing"
// by a run that never finished (spec.md §6) and reports them without
// modifying the file -- the caller decides how to requeue them.
func (l *Layer) MarkOrphaned() ([]ProcessRecord, error) {
	ps, err := l.LoadProcessStatus()
	if err != nil {
		return nil, err
	}
	return ps.Orphaned(), nil
}

func itoa(n int) string   { return fmt.Sprintf("%d", n) }
func itoa64(n int64) string { return fmt.Sprintf("%d", n) }
