package statusapi

import (
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

// sseContext wraps a Datastar SSE generator, per the teacher's
// internal/api/editor.SSEContext, trimmed to the one operation this
// read-only status feed needs: pushing signal updates.
type sseContext struct {
	gen *datastar.ServerSentEventGenerator
}

func newSSE(w http.ResponseWriter, r *http.Request) *sseContext {
	return &sseContext{gen: datastar.NewSSE(w, r)}
}

func (c *sseContext) sendSignals(signals map[string]any) {
	c.gen.MarshalAndPatchSignals(signals)
}
