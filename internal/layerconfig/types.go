package layerconfig

import "encoding/xml"

// LayerType is the kind of data a layer holds.
type LayerType string

const (
	TypeImage     LayerType = "image"
	TypeElevation LayerType = "elevation"
)

// Format is the on-disk tile format for a layer.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPG  Format = "jpg"
	FormatJSON Format = "json"
	FormatRaw  Format = "raw"
)

// Extent is an inclusive tile-coordinate bounding box at a layer's
// maximum LOD: [tx0,ty0,tx1,ty1].
type Extent struct {
	TX0 int64 `xml:"tx0" json:"tx0"`
	TY0 int64 `xml:"ty0" json:"ty0"`
	TX1 int64 `xml:"tx1" json:"tx1"`
	TY1 int64 `xml:"ty1" json:"ty1"`
}

// Settings is the canonical per-layer configuration, per spec.md §6
// "layersettings fields". The XML and JSON mirrors marshal the same
// keys (lowercase XML elements, lowerCamelCase-free JSON tags to match
// the XML element names exactly, per the "mirror" requirement).
type Settings struct {
	XMLName xml.Name  `xml:"layersettings" json:"-"`
	Name    string    `xml:"name" json:"name"`
	Type    LayerType `xml:"type" json:"type"`
	Format  Format    `xml:"format" json:"format"`
	MaxLOD  int       `xml:"maxlod" json:"maxlod"`
	SRS     string    `xml:"srs" json:"srs"`
	Extent  Extent    `xml:"extent" json:"extent"`
}

// DefaultSRS is the only spatial reference system spec.md supports.
const DefaultSRS = "EPSG:3857"

// NewSettings builds a Settings value with SRS pinned to DefaultSRS.
func NewSettings(name string, typ LayerType, format Format, maxlod int, extent Extent) Settings {
	return Settings{
		Name:   name,
		Type:   typ,
		Format: format,
		MaxLOD: maxlod,
		SRS:    DefaultSRS,
		Extent: extent,
	}
}

// Validate reports a configuration error for an unsupported SRS or a
// malformed type/format/extent combination, per spec.md §7.6.
func (s Settings) Validate() error {
	if s.SRS != DefaultSRS {
		return &ValidationError{Field: "srs", Reason: "unsupported SRS: " + s.SRS}
	}
	if s.Type != TypeImage && s.Type != TypeElevation {
		return &ValidationError{Field: "type", Reason: "must be \"image\" or \"elevation\""}
	}
	switch s.Format {
	case FormatPNG, FormatJPG, FormatJSON, FormatRaw:
	default:
		return &ValidationError{Field: "format", Reason: "must be png, jpg, json, or raw"}
	}
	if s.MaxLOD < 0 {
		return &ValidationError{Field: "maxlod", Reason: "must be >= 0"}
	}
	if s.Extent.TX1 < s.Extent.TX0 || s.Extent.TY1 < s.Extent.TY0 {
		return &ValidationError{Field: "extent", Reason: "tx1/ty1 must be >= tx0/ty0"}
	}
	return nil
}

// ValidationError names the offending field of a Settings value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "layerconfig: " + e.Field + ": " + e.Reason
}

// ProcessRecord is one bookkeeping entry in ProcessStatus.xml: the
// processing state of a single input dataset, per spec.md §6
// "Process status".
type ProcessRecord struct {
	Filename   string `xml:"filename" json:"filename"`
	Start      string `xml:"start" json:"start"` // ISO-8601
	Finish     string `xml:"finish,omitempty" json:"finish,omitempty"`
	Message    string `xml:"message" json:"message"`
	Finished   bool   `xml:"finished" json:"finished"`
	Processing bool   `xml:"processing" json:"processing"`
	LOD        int    `xml:"lod" json:"lod"`
	Extent     Extent `xml:"extent" json:"extent"`
}

// Orphaned reports whether this record was left in the "processing"
// state by a run that never finished — it is "processing" with no
// recorded finish (spec.md §6: "treated as orphaned by a subsequent run").
func (r ProcessRecord) Orphaned() bool {
	return r.Processing && !r.Finished
}

// ProcessStatus is the root element of ProcessStatus.xml: one record
// per input dataset processed into this layer.
type ProcessStatus struct {
	XMLName xml.Name        `xml:"processstatus" json:"-"`
	Records []ProcessRecord `xml:"record" json:"records"`
}

// Orphaned returns every record left processing with no finish.
func (ps *ProcessStatus) Orphaned() []ProcessRecord {
	var out []ProcessRecord
	for _, r := range ps.Records {
		if r.Orphaned() {
			out = append(out, r)
		}
	}
	return out
}
