package delaunay

// quadNode is one cell of the region quadtree used by QuadtreeLocator.
type quadNode struct {
	bound    Rect
	depth    int
	children [4]*quadNode // nil until subdivided
	items    []*Triangle
}

const (
	quadMaxDepth     = 12
	quadBucketSplit  = 8 // subdivide once a leaf holds more than this many triangles
)

// QuadtreeLocator accelerates point location with a region quadtree
// bucketing triangles by their bounding box, per spec.md §4.5. It keeps
// a flat backing list as well, so Locate always agrees with
// LinearLocator even for triangles whose bounding box spans several
// quadrant cells at the query point's depth.
type QuadtreeLocator struct {
	root               *quadNode
	all                []*Triangle
	index              map[*Triangle]int
	edgeEpsilon        float64
	coincidenceEpsilon float64
}

// NewQuadtreeLocator creates a quadtree-hierarchy locator over bound.
func NewQuadtreeLocator(bound Rect) *QuadtreeLocator {
	return &QuadtreeLocator{
		root:               &quadNode{bound: bound},
		index:              make(map[*Triangle]int),
		edgeEpsilon:        defaultEdgeEpsilon(),
		coincidenceEpsilon: defaultCoincidenceEpsilon(),
	}
}

// quadBound is the locatorNode payload QuadtreeLocator stores on each
// triangle it indexes: the bounding box it was inserted under. t's
// vertices (and hence its current geometric box) can change after
// insertion -- an in-place flip reuses the same *Triangle -- so
// RemoveTriangle must descend the tree with this recorded box, not a
// freshly recomputed one, or it can miss the leaf that actually holds t.
type quadBound struct {
	bound Rect
}

func (q *QuadtreeLocator) AddTriangle(t *Triangle) {
	tb := triangleBound(t)
	t.locatorNode = &quadBound{bound: tb}
	q.index[t] = len(q.all)
	q.all = append(q.all, t)
	insertQuad(q.root, t, tb)
}

func (q *QuadtreeLocator) RemoveTriangle(t *Triangle) {
	tb := triangleBound(t)
	if qb, ok := t.locatorNode.(*quadBound); ok {
		tb = qb.bound
	}
	if idx, ok := q.index[t]; ok {
		last := len(q.all) - 1
		q.all[idx] = q.all[last]
		q.index[q.all[idx]] = idx
		q.all = q.all[:last]
		delete(q.index, t)
	}
	removeQuad(q.root, t, tb)
	t.locatorNode = nil
}

func insertQuad(n *quadNode, t *Triangle, tb Rect) {
	if !rectsIntersect(n.bound, tb) {
		return
	}
	if n.children[0] == nil {
		n.items = append(n.items, t)
		if len(n.items) > quadBucketSplit && n.depth < quadMaxDepth {
			subdivide(n)
		}
		return
	}
	for _, c := range n.children {
		insertQuad(c, t, tb)
	}
}

func subdivide(n *quadNode) {
	mx := (n.bound.X0 + n.bound.X1) / 2
	my := (n.bound.Y0 + n.bound.Y1) / 2
	n.children[0] = &quadNode{bound: Rect{n.bound.X0, n.bound.Y0, mx, my}, depth: n.depth + 1}
	n.children[1] = &quadNode{bound: Rect{mx, n.bound.Y0, n.bound.X1, my}, depth: n.depth + 1}
	n.children[2] = &quadNode{bound: Rect{n.bound.X0, my, mx, n.bound.Y1}, depth: n.depth + 1}
	n.children[3] = &quadNode{bound: Rect{mx, my, n.bound.X1, n.bound.Y1}, depth: n.depth + 1}
	items := n.items
	n.items = nil
	for _, t := range items {
		tb := triangleBound(t)
		for _, c := range n.children {
			insertQuad(c, t, tb)
		}
	}
}

func removeQuad(n *quadNode, t *Triangle, tb Rect) {
	if !rectsIntersect(n.bound, tb) {
		return
	}
	if n.children[0] == nil {
		for i, item := range n.items {
			if item == t {
				n.items[i] = n.items[len(n.items)-1]
				n.items = n.items[:len(n.items)-1]
				break
			}
		}
		return
	}
	for _, c := range n.children {
		removeQuad(c, t, tb)
	}
}

func collectQuad(n *quadNode, x, y float64, out []*Triangle) []*Triangle {
	if x < n.bound.X0 || x > n.bound.X1 || y < n.bound.Y0 || y > n.bound.Y1 {
		return out
	}
	if n.children[0] == nil {
		out = append(out, n.items...)
		return out
	}
	for _, c := range n.children {
		out = collectQuad(c, x, y, out)
	}
	return out
}

func (q *QuadtreeLocator) Locate(x, y float64) (*Triangle, PointTriangleRelation) {
	candidates := collectQuad(q.root, x, y, nil)
	for _, t := range candidates {
		rel := classify(t, x, y, q.edgeEpsilon, q.coincidenceEpsilon)
		if rel == Inside || rel.IsEdge() || rel.IsVertex() {
			return t, rel
		}
	}
	// Safety net: the quadtree bucket the query falls into may miss a
	// triangle whose classification is edge/vertex-adjacent right at a
	// cell boundary. Fall back to an exhaustive scan so Locate always
	// agrees with LinearLocator.
	for _, t := range q.all {
		rel := classify(t, x, y, q.edgeEpsilon, q.coincidenceEpsilon)
		if rel == Inside || rel.IsEdge() || rel.IsVertex() {
			return t, rel
		}
	}
	return nil, Outside
}

func (q *QuadtreeLocator) Traverse(fn func(*Triangle)) {
	for _, t := range q.all {
		fn(t)
	}
}

func (q *QuadtreeLocator) SpatialTraverse(r Rect, fn func(*Triangle)) {
	seen := make(map[*Triangle]bool)
	spatialTraverseQuad(q.root, r, fn, seen)
}

func spatialTraverseQuad(n *quadNode, r Rect, fn func(*Triangle), seen map[*Triangle]bool) {
	if !rectsIntersect(n.bound, r) {
		return
	}
	if n.children[0] == nil {
		for _, t := range n.items {
			if seen[t] {
				continue
			}
			if rectsIntersect(triangleBound(t), r) {
				seen[t] = true
				fn(t)
			}
		}
		return
	}
	for _, c := range n.children {
		spatialTraverseQuad(c, r, fn, seen)
	}
}

func (q *QuadtreeLocator) SetEpsilon(edgeEpsilon, coincidenceEpsilon float64) {
	q.edgeEpsilon = edgeEpsilon
	q.coincidenceEpsilon = coincidenceEpsilon
}

var _ Locator = (*QuadtreeLocator)(nil)
