package navigation

import (
	"testing"
)

func filterFixtureRows() []Row {
	return []Row{
		{Text: "▾ ⬢ Wiki", Depth: 0, ID: 0},
		{Text: "    ▫ DOCS", Depth: 1, ID: 1},
		{Text: "    ▫ ENG", Depth: 1, ID: 2},
	}
}

func TestCleanRowText(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"▾ ⬢ Wiki", "Wiki"},
		{"▸ ⬢ Jira (coming soon)", "Jira (coming soon)"},
		{"    ▫ ENG", "ENG"},
		{"  ⊘ Jira", "Jira"},
		{"ENG", "ENG"},
	}
	for _, c := range cases {
		if got := CleanRowText(c.in); got != c.want {
			t.Errorf("CleanRowText(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestMatchRowsDropsNonMatches(t *testing.T) {
	rows := filterFixtureRows()
	out := MatchRows("eng", rows)

	if len(out) > len(rows) {
		t.Fatalf("filter produced more rows than it was given: %d > %d", len(out), len(rows))
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 match for %q, got %d", "eng", len(out))
	}
	if out[0].ID != 2 {
		t.Errorf("matched row ID = %d, want 2 (ENG)", out[0].ID)
	}
	if len(out[0].MatchPositions) == 0 {
		t.Error("surviving row has no matched positions")
	}
}

func TestMatchRowsOriginalIndexValid(t *testing.T) {
	rows := filterFixtureRows()
	for _, query := range []string{"w", "o", "i", "docs"} {
		for _, fr := range MatchRows(query, rows) {
			if fr.OriginalIndex < 0 || fr.OriginalIndex >= len(rows) {
				t.Fatalf("query %q: original index %d out of range", query, fr.OriginalIndex)
			}
			if rows[fr.OriginalIndex].Text != fr.Text {
				t.Errorf("query %q: original index points at the wrong row", query)
			}
		}
	}
}

func TestMatchRowsRanksWordStartHigher(t *testing.T) {
	rows := []Row{
		{Text: "▫ Shipping", Depth: 1, ID: 0},
		{Text: "▫ DOCS", Depth: 1, ID: 1},
	}
	out := MatchRows("s", rows)
	if len(out) != 2 {
		t.Fatalf("expected both rows to match, got %d", len(out))
	}
	// Word-start "S" in Shipping outranks the trailing "S" of DOCS.
	if out[0].ID != 0 {
		t.Errorf("expected Shipping first, got row ID %d", out[0].ID)
	}
}

func TestMatchRowsStableOnEqualScore(t *testing.T) {
	rows := []Row{
		{Text: "▫ ALPHA", Depth: 1, ID: 0},
		{Text: "▫ ALPHA", Depth: 1, ID: 1},
	}
	out := MatchRows("alpha", rows)
	if len(out) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(out))
	}
	if out[0].ID != 0 || out[1].ID != 1 {
		t.Errorf("equal-score rows reordered: %d, %d", out[0].ID, out[1].ID)
	}
}

func TestMatchRowsEmptyQuery(t *testing.T) {
	if out := MatchRows("", filterFixtureRows()); out != nil {
		t.Errorf("empty query returned %d rows, want nil", len(out))
	}
}

func TestFilterLifecycle(t *testing.T) {
	var f Filter
	rows := filterFixtureRows()

	f.Enter()
	if !f.Active || f.Query != "" {
		t.Fatalf("Enter left filter in state %+v", f)
	}

	f.SetQuery("eng", rows, 3)
	if len(f.Rows()) != 1 {
		t.Fatalf("expected 1 row, got %d", len(f.Rows()))
	}
	if f.StaleFor(3) {
		t.Error("filter stale against its own generation")
	}
	if !f.StaleFor(4) {
		t.Error("filter not stale after a generation bump")
	}

	idx, ok := f.OriginalIndex(0)
	if !ok || idx != 2 {
		t.Errorf("OriginalIndex(0) = %d, %v; want 2, true", idx, ok)
	}
	if _, ok := f.OriginalIndex(5); ok {
		t.Error("OriginalIndex accepted an out-of-range position")
	}

	f.SetQuery("", rows, 3)
	if f.Rows() != nil {
		t.Error("clearing the query kept stale rows")
	}

	f.Exit()
	if f.Active || f.Query != "" || f.Rows() != nil {
		t.Errorf("Exit left filter in state %+v", f)
	}
}

func TestFilteredSelectionSurvivesCollapse(t *testing.T) {
	// The reconciliation chain used by the UI: filter, collapse the
	// parent, then resolve the chosen row by node identity.
	domain := testDomain()
	tree := Build(domain)

	var f Filter
	f.Enter()
	f.SetQuery("eng", tree.Flatten(), tree.Generation())
	rows := f.Rows()
	if len(rows) != 1 {
		t.Fatalf("expected 1 filtered row, got %d", len(rows))
	}
	chosen := rows[0].ID

	tree.SetExpanded(Path{0}, false)
	if !f.StaleFor(tree.Generation()) {
		t.Fatal("filter should be stale after collapse")
	}

	path, ok := tree.PathOf(chosen)
	if !ok {
		t.Fatal("node identity lost after collapse")
	}
	ctx, ok := tree.SelectWithParentExpansion(path, domain)
	if !ok || !ctx.IsComplete() || ctx.Project.Key != "ENG" {
		t.Errorf("reconciled selection wrong: ok=%v ctx=%+v", ok, ctx)
	}
}
