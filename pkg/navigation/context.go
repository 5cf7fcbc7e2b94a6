package navigation

import (
	"fmt"
	"strings"

	"github.com/ocasazza/atui/pkg/model"
)

// Context is the resolved (domain, product, project) selection. It is
// replaced wholesale on every successful selection; the fields are value
// copies of the tree payloads, never aliases into the arena.
type Context struct {
	Domain  *model.Domain
	Product *model.Product
	Project *model.Project
}

// IsComplete reports whether all three tiers are resolved. Command
// execution is gated on this.
func (c Context) IsComplete() bool {
	return c.Domain != nil && c.Product != nil && c.Project != nil
}

// DisplayPath renders the selection as "domain > product > project".
func (c Context) DisplayPath() string {
	var parts []string
	if c.Domain != nil {
		parts = append(parts, c.Domain.Name)
	}
	if c.Product != nil {
		parts = append(parts, c.Product.Name)
	}
	if c.Project != nil {
		parts = append(parts, c.Project.Name)
	}
	if len(parts) == 0 {
		return "No selection"
	}
	return strings.Join(parts, " > ")
}

// CQL returns the query fragment scoping operations to the selected
// project, e.g. `space = "ENG"` for Confluence or `project = "OPS"` for
// the tracker products. Defined iff the context is complete.
func (c Context) CQL() (string, bool) {
	if !c.IsComplete() {
		return "", false
	}
	return fmt.Sprintf("%s = %q", c.Product.Type.CQLField(), c.Project.Key), true
}

// Select resolves the node at path into a fresh Context and moves the
// selection flag there. The domain is supplied by the caller (a session
// talks to a single known instance). Selecting a product clears any
// previously chosen project; walking further down picks up the project.
// Afterward exactly the node at path is selected tree-wide.
func (t *Tree) Select(path Path, domain model.Domain) (Context, bool) {
	id, ok := t.nodeAt(path)
	if !ok {
		return Context{}, false
	}

	d := domain
	ctx := Context{Domain: &d}

	rootID := t.roots[path[0]]
	if root := &t.nodes[rootID]; root.Kind == KindProduct {
		product := root.Product
		ctx.Product = &product
	}

	// Walk the remaining segments; the deepest project node wins.
	walk := rootID
	for _, idx := range path[1:] {
		walk = t.nodes[walk].Children[idx]
		if n := &t.nodes[walk]; n.Kind == KindProject {
			project := n.Project
			ctx.Project = &project
		}
	}

	t.ClearSelected()
	t.nodes[id].Selected = true
	return ctx, true
}

// SelectWithParentExpansion selects a node chosen from filtered results,
// where the ancestor product may still be collapsed. It forces the root
// product expanded so the selection is visible, then resolves the same
// context as Select. When path terminates in a project node the returned
// context is complete.
func (t *Tree) SelectWithParentExpansion(path Path, domain model.Domain) (Context, bool) {
	if len(path) > 1 {
		t.SetExpanded(path[:1], true)
	}
	return t.Select(path, domain)
}
