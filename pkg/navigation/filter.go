package navigation

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// FilteredRow is one surviving row of a filter pass. OriginalIndex points
// back into the exact flattened slice the pass ran over; it is invalid
// after any tree mutation, which is why the row also carries the node
// identity for reconciliation.
type FilteredRow struct {
	Text           string
	Depth          int
	Selected       bool
	Score          int
	MatchPositions []int // indices into the cleaned text, for highlighting
	OriginalIndex  int
	ID             NodeID
}

// CleanRowText strips structural decoration (indentation, expand markers,
// kind icons) from a flattened row so queries match semantic content only.
func CleanRowText(text string) string {
	s := strings.TrimLeft(text, " ")
	for _, marker := range []string{MarkerExpanded, MarkerCollapsed} {
		s = strings.TrimPrefix(s, marker)
	}
	s = strings.TrimLeft(s, " ")
	for _, icon := range []string{IconDomain, IconProduct, IconUnavailable, IconProject} {
		s = strings.TrimPrefix(s, icon)
	}
	return strings.TrimSpace(s)
}

// MatchRows runs a fuzzy subsequence match of query against every row and
// returns the survivors ordered by descending score. Word-boundary and
// contiguous matches outscore scattered ones (sahilm/fuzzy's bonus
// scheme); zero-match rows are dropped. The sort is stable, so rows with
// equal score keep their original flattened order.
func MatchRows(query string, rows []Row) []FilteredRow {
	if query == "" {
		return nil
	}

	var out []FilteredRow
	for i, row := range rows {
		clean := CleanRowText(row.Text)
		matches := fuzzy.Find(query, []string{clean})
		if len(matches) == 0 {
			continue
		}
		out = append(out, FilteredRow{
			Text:           row.Text,
			Depth:          row.Depth,
			Selected:       row.Selected,
			Score:          matches[0].Score,
			MatchPositions: matches[0].MatchedIndexes,
			OriginalIndex:  i,
			ID:             row.ID,
		})
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Score > out[b].Score
	})
	return out
}

// Filter holds live search state: the query, the rows of the last pass,
// and the tree generation that pass was computed against. Results are
// recomputed from the full unfiltered view on every query edit; queries
// are a handful of characters, so incremental filtering buys nothing.
type Filter struct {
	Active bool
	Query  string

	rows []FilteredRow
	gen  int
}

// Enter activates search mode with an empty query.
func (f *Filter) Enter() {
	f.Active = true
	f.Query = ""
	f.rows = nil
}

// Exit deactivates search mode and discards all results.
func (f *Filter) Exit() {
	f.Active = false
	f.Query = ""
	f.rows = nil
}

// SetQuery replaces the query and recomputes the pass against rows, which
// must be the current Flatten() output of a tree at generation gen.
func (f *Filter) SetQuery(query string, rows []Row, gen int) {
	f.Query = query
	f.gen = gen
	if query == "" {
		f.rows = nil
		return
	}
	f.rows = MatchRows(query, rows)
}

// Rows returns the current pass results, or nil when no query is set.
func (f *Filter) Rows() []FilteredRow { return f.rows }

// StaleFor reports whether the last pass was computed against an older
// tree shape. Stale results must not be used for index-based selection.
func (f *Filter) StaleFor(gen int) bool { return f.gen != gen }

// OriginalIndex maps a filtered row position back to its index in the
// unfiltered flattened view used for this pass.
func (f *Filter) OriginalIndex(filteredIndex int) (int, bool) {
	if filteredIndex < 0 || filteredIndex >= len(f.rows) {
		return 0, false
	}
	return f.rows[filteredIndex].OriginalIndex, true
}
