// Package navigation implements the core of atui: the mutable entity
// tree with path-addressed traversal, the navigation context resolved
// from a selection, and the fuzzy filter over the flattened view.
//
// Nodes live in a flat arena indexed by NodeID; parent/child relations
// are ID lists. Paths are chains of child indices from a root, so
// mutation is an O(depth) walk with no nested pointer juggling, and a
// stale path is an ordinary out-of-range condition rather than a crash.
package navigation

import (
	"strings"

	"github.com/ocasazza/atui/pkg/model"
)

// NodeID indexes a node in the tree arena.
type NodeID int

// Path is a chain of child indices from a root node. A path is only
// meaningful against the tree shape it was resolved from; re-resolve
// after any expand/collapse.
type Path []int

// Kind classifies a tree node by the hierarchy tier it represents.
type Kind int

const (
	KindDomain Kind = iota
	KindProduct
	KindProject
)

// Display decoration prepended to node names when flattening. The filter
// strips these so queries match semantic content only.
const (
	MarkerExpanded  = "▾ "
	MarkerCollapsed = "▸ "
	MarkerLeaf      = "  "

	IconDomain      = "● "
	IconProduct     = "⬢ "
	IconUnavailable = "⊘ "
	IconProject     = "▫ "

	indentUnit = "  "
)

// Node is a single entry in the arena. Exactly one payload field is set,
// matching Kind.
type Node struct {
	Name     string
	Kind     Kind
	Product  model.Product
	Project  model.Project
	Expanded bool
	Selected bool
	Children []NodeID
}

// Row is one line of the flattened, expand-state-respecting view.
type Row struct {
	Text     string
	Depth    int
	Selected bool
	ID       NodeID
}

// Tree owns the node arena. It is built once from discovered domain data
// and mutated only by navigation for the rest of the session.
type Tree struct {
	nodes []Node
	roots []NodeID
	gen   int
}

// Build constructs the tree for a domain: products become root nodes,
// their projects become children. Confluence starts expanded when it has
// spaces, mirroring the common first action of browsing into it.
func Build(domain model.Domain) *Tree {
	t := &Tree{}
	for _, product := range domain.Products {
		icon := IconProduct
		if !product.Available {
			icon = IconUnavailable
		}
		rootID := t.add(Node{
			Name:     icon + product.Name,
			Kind:     KindProduct,
			Product:  product,
			Expanded: product.Type == model.ProductConfluence && len(product.Projects) > 0,
		})
		for _, project := range product.Projects {
			childID := t.add(Node{
				Name:    IconProject + project.Name,
				Kind:    KindProject,
				Project: project,
			})
			t.nodes[rootID].Children = append(t.nodes[rootID].Children, childID)
		}
		t.roots = append(t.roots, rootID)
	}
	return t
}

func (t *Tree) add(n Node) NodeID {
	t.nodes = append(t.nodes, n)
	return NodeID(len(t.nodes) - 1)
}

// Generation is bumped by every mutation that can change the visible row
// count. Callers holding derived state (paths, filtered rows) compare
// generations to detect staleness.
func (t *Tree) Generation() int { return t.gen }

// Flatten returns the visible rows in pre-order, descending into a
// node's children only when it is expanded. The result is recomputed on
// every call; no state is retained.
func (t *Tree) Flatten() []Row {
	var rows []Row
	for _, id := range t.roots {
		t.flattenNode(id, 0, &rows)
	}
	return rows
}

func (t *Tree) flattenNode(id NodeID, depth int, rows *[]Row) {
	n := &t.nodes[id]

	marker := MarkerLeaf
	if len(n.Children) > 0 {
		if n.Expanded {
			marker = MarkerExpanded
		} else {
			marker = MarkerCollapsed
		}
	}
	text := strings.Repeat(indentUnit, depth) + marker + n.Name

	*rows = append(*rows, Row{Text: text, Depth: depth, Selected: n.Selected, ID: id})

	if n.Expanded {
		for _, child := range n.Children {
			t.flattenNode(child, depth+1, rows)
		}
	}
}

// ResolvePath converts a visible row index into a structural path by
// re-walking the flatten order. Returns false when the index is out of
// range for the current tree shape.
func (t *Tree) ResolvePath(visibleIndex int) (Path, bool) {
	if visibleIndex < 0 {
		return nil, false
	}
	counter := 0
	for rootIdx, id := range t.roots {
		if path, ok := t.resolveNode(id, visibleIndex, &counter, Path{rootIdx}); ok {
			return path, true
		}
	}
	return nil, false
}

func (t *Tree) resolveNode(id NodeID, target int, counter *int, path Path) (Path, bool) {
	if *counter == target {
		out := make(Path, len(path))
		copy(out, path)
		return out, true
	}
	*counter++

	n := &t.nodes[id]
	if !n.Expanded {
		return nil, false
	}
	for childIdx, child := range n.Children {
		if found, ok := t.resolveNode(child, target, counter, append(path, childIdx)); ok {
			return found, true
		}
	}
	return nil, false
}

// nodeAt walks a path from the roots. Any out-of-range segment yields
// false: paths are allowed to go stale between computation and use.
func (t *Tree) nodeAt(path Path) (NodeID, bool) {
	if len(path) == 0 || path[0] < 0 || path[0] >= len(t.roots) {
		return 0, false
	}
	id := t.roots[path[0]]
	for _, idx := range path[1:] {
		children := t.nodes[id].Children
		if idx < 0 || idx >= len(children) {
			return 0, false
		}
		id = children[idx]
	}
	return id, true
}

// NodeAt returns a copy of the node addressed by path.
func (t *Tree) NodeAt(path Path) (Node, bool) {
	id, ok := t.nodeAt(path)
	if !ok {
		return Node{}, false
	}
	return t.nodes[id], true
}

// PathOf resolves a node identity back to its current path, regardless of
// expand state. Used to reconcile filtered rows after tree mutations.
func (t *Tree) PathOf(target NodeID) (Path, bool) {
	for rootIdx, id := range t.roots {
		if path, ok := t.pathOfNode(id, target, Path{rootIdx}); ok {
			return path, true
		}
	}
	return nil, false
}

func (t *Tree) pathOfNode(id, target NodeID, path Path) (Path, bool) {
	if id == target {
		out := make(Path, len(path))
		copy(out, path)
		return out, true
	}
	for childIdx, child := range t.nodes[id].Children {
		if found, ok := t.pathOfNode(child, target, append(path, childIdx)); ok {
			return found, true
		}
	}
	return nil, false
}

// SetExpanded sets the expand flag on the node at path. A stale path is a
// no-op. Collapsing or expanding changes the visible row count, so the
// generation is bumped.
func (t *Tree) SetExpanded(path Path, expanded bool) {
	id, ok := t.nodeAt(path)
	if !ok {
		return
	}
	if t.nodes[id].Expanded != expanded {
		t.nodes[id].Expanded = expanded
		t.gen++
	}
}

// SetSelected sets the selection flag on the node at path. A stale path
// is a no-op.
func (t *Tree) SetSelected(path Path, selected bool) {
	id, ok := t.nodeAt(path)
	if !ok {
		return
	}
	t.nodes[id].Selected = selected
}

// ClearSelected drops the selection flag everywhere.
func (t *Tree) ClearSelected() {
	for i := range t.nodes {
		t.nodes[i].Selected = false
	}
}

// SelectedCount returns how many nodes carry the selection flag. The
// single-selection invariant holds this at 0 or 1.
func (t *Tree) SelectedCount() int {
	count := 0
	for i := range t.nodes {
		if t.nodes[i].Selected {
			count++
		}
	}
	return count
}

// Len returns the total number of nodes in the arena.
func (t *Tree) Len() int { return len(t.nodes) }
