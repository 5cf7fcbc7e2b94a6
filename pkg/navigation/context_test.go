package navigation

import (
	"testing"

	"github.com/ocasazza/atui/pkg/model"
)

func TestContextIsComplete(t *testing.T) {
	d := &model.Domain{Name: "d"}
	p := &model.Product{Name: "p"}
	s := &model.Project{Key: "S"}

	cases := []struct {
		ctx  Context
		want bool
	}{
		{Context{}, false},
		{Context{Domain: d}, false},
		{Context{Domain: d, Product: p}, false},
		{Context{Domain: d, Product: p, Project: s}, true},
	}
	for i, c := range cases {
		if got := c.ctx.IsComplete(); got != c.want {
			t.Errorf("case %d: IsComplete() = %v, want %v", i, got, c.want)
		}
	}
}

func TestContextCQLOnlyWhenComplete(t *testing.T) {
	d := &model.Domain{Name: "d"}
	p := &model.Product{Name: "Wiki", Type: model.ProductConfluence}

	if _, ok := (Context{Domain: d, Product: p}).CQL(); ok {
		t.Error("CQL defined for an incomplete context")
	}

	ctx := Context{Domain: d, Product: p, Project: &model.Project{Key: "ENG"}}
	cql, ok := ctx.CQL()
	if !ok {
		t.Fatal("CQL undefined for a complete context")
	}
	if cql != `space = "ENG"` {
		t.Errorf("cql = %q, want %q", cql, `space = "ENG"`)
	}
}

func TestContextCQLJiraUsesProjectField(t *testing.T) {
	ctx := Context{
		Domain:  &model.Domain{Name: "d"},
		Product: &model.Product{Name: "Jira", Type: model.ProductJira},
		Project: &model.Project{Key: "OPS"},
	}
	cql, ok := ctx.CQL()
	if !ok {
		t.Fatal("CQL undefined for a complete context")
	}
	if cql != `project = "OPS"` {
		t.Errorf("cql = %q, want %q", cql, `project = "OPS"`)
	}
}

func TestContextDisplayPath(t *testing.T) {
	if got := (Context{}).DisplayPath(); got != "No selection" {
		t.Errorf("empty DisplayPath() = %q", got)
	}

	ctx := Context{
		Domain:  &model.Domain{Name: "example.atlassian.net"},
		Product: &model.Product{Name: "Wiki"},
		Project: &model.Project{Name: "ENG"},
	}
	want := "example.atlassian.net > Wiki > ENG"
	if got := ctx.DisplayPath(); got != want {
		t.Errorf("DisplayPath() = %q, want %q", got, want)
	}
}

func TestSelectProjectResolvesFullContext(t *testing.T) {
	domain := testDomain()
	tree := Build(domain)

	ctx, ok := tree.Select(Path{0, 1}, domain)
	if !ok {
		t.Fatal("Select failed")
	}
	if !ctx.IsComplete() {
		t.Fatal("expected a complete context from a project selection")
	}
	if ctx.Project.Key != "ENG" {
		t.Errorf("selected project %q, want ENG", ctx.Project.Key)
	}
	cql, _ := ctx.CQL()
	if cql != `space = "ENG"` {
		t.Errorf("cql = %q", cql)
	}
}

func TestSelectProductClearsProject(t *testing.T) {
	domain := testDomain()
	tree := Build(domain)

	if _, ok := tree.Select(Path{0, 0}, domain); !ok {
		t.Fatal("project Select failed")
	}
	ctx, ok := tree.Select(Path{0}, domain)
	if !ok {
		t.Fatal("product Select failed")
	}
	if ctx.Project != nil {
		t.Error("selecting a product kept a stale project")
	}
	if ctx.Product == nil || ctx.Product.Type != model.ProductConfluence {
		t.Errorf("unexpected product: %+v", ctx.Product)
	}
}

func TestSelectMarksExactlyOneNode(t *testing.T) {
	domain := testDomain()
	tree := Build(domain)

	tree.Select(Path{0, 0}, domain)
	tree.Select(Path{0, 1}, domain)

	if n := tree.SelectedCount(); n != 1 {
		t.Errorf("expected exactly 1 selected node, got %d", n)
	}
	node, _ := tree.NodeAt(Path{0, 1})
	if !node.Selected {
		t.Error("most recent selection target is not marked")
	}
}

func TestSelectStalePathFails(t *testing.T) {
	domain := testDomain()
	tree := Build(domain)

	if _, ok := tree.Select(Path{0, 7}, domain); ok {
		t.Error("Select succeeded on a nonexistent path")
	}
	if tree.SelectedCount() != 0 {
		t.Error("failed Select left a selection flag behind")
	}
}

func TestSelectWithParentExpansion(t *testing.T) {
	domain := testDomain()
	tree := Build(domain)
	tree.SetExpanded(Path{0}, false)

	ctx, ok := tree.SelectWithParentExpansion(Path{0, 1}, domain)
	if !ok {
		t.Fatal("SelectWithParentExpansion failed")
	}
	if !ctx.IsComplete() {
		t.Error("expected a complete context")
	}
	node, _ := tree.NodeAt(Path{0})
	if !node.Expanded {
		t.Error("parent product was not expanded")
	}
	if n := tree.SelectedCount(); n != 1 {
		t.Errorf("expected exactly 1 selected node, got %d", n)
	}
}
