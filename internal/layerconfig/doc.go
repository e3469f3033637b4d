// Package layerconfig manages one layer's on-disk directory, per
// spec.md §6 "EXTERNAL INTERFACES":
//
//	<root>/<layer>/
//	  layersettings.xml         # canonical settings
//	  layersettings.json        # mirror for web clients
//	  tiles/<lod>/<tx>/<ty>.<ext>
//	  temp/tiles/<lod>/<tx>/<ty>.<ext>
//	  ProcessStatus.xml
//	  jobqueue.jobs
//	  jobqueue.jobs.seek
//
// layersettings.xml is canonical; layersettings.json is a mirror kept
// in sync on every Save. No third-party XML library appears anywhere
// in the retrieved corpus, so this package uses the standard library's
// encoding/xml and encoding/json directly (see DESIGN.md).
package layerconfig
