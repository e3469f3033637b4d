package delaunay

// kdNode is one cell of the kd-tree used by KDTreeLocator; unlike the
// quadtree's four-way split, each node splits into exactly two children
// on an axis that alternates with depth.
type kdNode struct {
	bound    Rect
	depth    int
	axis     int // 0 = split on x, 1 = split on y
	children [2]*kdNode
	items    []*Triangle
}

const (
	kdMaxDepth    = 16
	kdBucketSplit = 8
)

// KDTreeLocator accelerates point location with an alternating-axis
// binary space partition, per spec.md §4.5. Like QuadtreeLocator it
// keeps a flat backing list to guarantee it agrees with LinearLocator.
type KDTreeLocator struct {
	root               *kdNode
	all                []*Triangle
	index              map[*Triangle]int
	edgeEpsilon        float64
	coincidenceEpsilon float64
}

// NewKDTreeLocator creates a kd-tree-hierarchy locator over bound.
func NewKDTreeLocator(bound Rect) *KDTreeLocator {
	return &KDTreeLocator{
		root:               &kdNode{bound: bound, axis: 0},
		index:              make(map[*Triangle]int),
		edgeEpsilon:        defaultEdgeEpsilon(),
		coincidenceEpsilon: defaultCoincidenceEpsilon(),
	}
}

// kdBound is the locatorNode payload KDTreeLocator stores on each
// triangle it indexes: the bounding box it was inserted under, so
// RemoveTriangle can find the leaf that holds t even if a later
// in-place vertex swap (an edge flip reusing the same *Triangle)
// changed t's current geometric box. See quadBound for the same
// reasoning in QuadtreeLocator.
type kdBound struct {
	bound Rect
}

func (k *KDTreeLocator) AddTriangle(t *Triangle) {
	tb := triangleBound(t)
	t.locatorNode = &kdBound{bound: tb}
	k.index[t] = len(k.all)
	k.all = append(k.all, t)
	insertKD(k.root, t, tb)
}

func (k *KDTreeLocator) RemoveTriangle(t *Triangle) {
	tb := triangleBound(t)
	if kb, ok := t.locatorNode.(*kdBound); ok {
		tb = kb.bound
	}
	if idx, ok := k.index[t]; ok {
		last := len(k.all) - 1
		k.all[idx] = k.all[last]
		k.index[k.all[idx]] = idx
		k.all = k.all[:last]
		delete(k.index, t)
	}
	removeKD(k.root, t, tb)
	t.locatorNode = nil
}

func insertKD(n *kdNode, t *Triangle, tb Rect) {
	if !rectsIntersect(n.bound, tb) {
		return
	}
	if n.children[0] == nil {
		n.items = append(n.items, t)
		if len(n.items) > kdBucketSplit && n.depth < kdMaxDepth {
			splitKD(n)
		}
		return
	}
	insertKD(n.children[0], t, tb)
	insertKD(n.children[1], t, tb)
}

func splitKD(n *kdNode) {
	childAxis := 1 - n.axis
	if n.axis == 0 {
		mx := (n.bound.X0 + n.bound.X1) / 2
		n.children[0] = &kdNode{bound: Rect{n.bound.X0, n.bound.Y0, mx, n.bound.Y1}, depth: n.depth + 1, axis: childAxis}
		n.children[1] = &kdNode{bound: Rect{mx, n.bound.Y0, n.bound.X1, n.bound.Y1}, depth: n.depth + 1, axis: childAxis}
	} else {
		my := (n.bound.Y0 + n.bound.Y1) / 2
		n.children[0] = &kdNode{bound: Rect{n.bound.X0, n.bound.Y0, n.bound.X1, my}, depth: n.depth + 1, axis: childAxis}
		n.children[1] = &kdNode{bound: Rect{n.bound.X0, my, n.bound.X1, n.bound.Y1}, depth: n.depth + 1, axis: childAxis}
	}
	items := n.items
	n.items = nil
	for _, t := range items {
		tb := triangleBound(t)
		insertKD(n.children[0], t, tb)
		insertKD(n.children[1], t, tb)
	}
}

func removeKD(n *kdNode, t *Triangle, tb Rect) {
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
	removeKD(n.children[0], t, tb)
	removeKD(n.children[1], t, tb)
}

func collectKD(n *kdNode, x, y float64, out []*Triangle) []*Triangle {
	if x < n.bound.X0 || x > n.bound.X1 || y < n.bound.Y0 || y > n.bound.Y1 {
		return out
	}
	if n.children[0] == nil {
		out = append(out, n.items...)
		return out
	}
	out = collectKD(n.children[0], x, y, out)
	out = collectKD(n.children[1], x, y, out)
	return out
}

func (k *KDTreeLocator) Locate(x, y float64) (*Triangle, PointTriangleRelation) {
	candidates := collectKD(k.root, x, y, nil)
	for _, t := range candidates {
		rel := classify(t, x, y, k.edgeEpsilon, k.coincidenceEpsilon)
		if rel == Inside || rel.IsEdge() || rel.IsVertex() {
			return t, rel
		}
	}
	for _, t := range k.all {
		rel := classify(t, x, y, k.edgeEpsilon, k.coincidenceEpsilon)
		if rel == Inside || rel.IsEdge() || rel.IsVertex() {
			return t, rel
		}
	}
	return nil, Outside
}

func (k *KDTreeLocator) Traverse(fn func(*Triangle)) {
	for _, t := range k.all {
		fn(t)
	}
}

func (k *KDTreeLocator) SpatialTraverse(r Rect, fn func(*Triangle)) {
	seen := make(map[*Triangle]bool)
	spatialTraverseKD(k.root, r, fn, seen)
}

func spatialTraverseKD(n *kdNode, r Rect, fn func(*Triangle), seen map[*Triangle]bool) {
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
	spatialTraverseKD(n.children[0], r, fn, seen)
	spatialTraverseKD(n.children[1], r, fn, seen)
}

func (k *KDTreeLocator) SetEpsilon(edgeEpsilon, coincidenceEpsilon float64) {
	k.edgeEpsilon = edgeEpsilon
	k.coincidenceEpsilon = coincidenceEpsilon
}

var _ Locator = (*KDTreeLocator)(nil)
