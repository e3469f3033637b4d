package delaunay

// linearIndexNode is the locatorNode payload the linear strategy stores
// on each triangle: the triangle's current slot in the backing slice.
type linearIndexNode struct {
	index int
}

// LinearLocator iterates every alive triangle and returns the first
// that reports Inside or an Edge*/Vertex* relation. It is the default,
// correctness-baseline strategy (spec.md §4.5).
type LinearLocator struct {
	triangles          []*Triangle
	edgeEpsilon        float64
	coincidenceEpsilon float64
}

// NewLinearLocator creates a linear point-location strategy.
func NewLinearLocator() *LinearLocator {
	return &LinearLocator{
		edgeEpsilon:        defaultEdgeEpsilon(),
		coincidenceEpsilon: defaultCoincidenceEpsilon(),
	}
}

func (l *LinearLocator) AddTriangle(t *Triangle) {
	t.locatorNode = &linearIndexNode{index: len(l.triangles)}
	l.triangles = append(l.triangles, t)
}

func (l *LinearLocator) RemoveTriangle(t *Triangle) {
	node, ok := t.locatorNode.(*linearIndexNode)
	if !ok {
		return
	}
	last := len(l.triangles) - 1
	idx := node.index
	l.triangles[idx] = l.triangles[last]
	if ln, ok := l.triangles[idx].locatorNode.(*linearIndexNode); ok {
		ln.index = idx
	}
	l.triangles = l.triangles[:last]
	t.locatorNode = nil
}

func (l *LinearLocator) Locate(x, y float64) (*Triangle, PointTriangleRelation) {
	for _, t := range l.triangles {
		rel := classify(t, x, y, l.edgeEpsilon, l.coincidenceEpsilon)
		if rel == Inside || rel.IsEdge() || rel.IsVertex() {
			return t, rel
		}
	}
	return nil, Outside
}

func (l *LinearLocator) Traverse(fn func(*Triangle)) {
	for _, t := range l.triangles {
		fn(t)
	}
}

func (l *LinearLocator) SpatialTraverse(r Rect, fn func(*Triangle)) {
	for _, t := range l.triangles {
		if rectsIntersect(triangleBound(t), r) {
			fn(t)
		}
	}
}

func (l *LinearLocator) SetEpsilon(edgeEpsilon, coincidenceEpsilon float64) {
	l.edgeEpsilon = edgeEpsilon
	l.coincidenceEpsilon = coincidenceEpsilon
}

func defaultEdgeEpsilon() float64        { return 1e-12 }
func defaultCoincidenceEpsilon() float64 { return 1e-12 }

var _ Locator = (*LinearLocator)(nil)
