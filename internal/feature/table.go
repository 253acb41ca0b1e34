package feature

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/knowledge-engine/tweetsift/internal/weighting"
)

// Scheme selects which weight fills the table cells
type Scheme string

const (
	SchemeCount Scheme = "count"
	SchemeTFIDF Scheme = "tfidf"
)

// Table is the wide-format classifier input: one row per document, one
// numeric column per vocabulary term, plus the label.
type Table struct {
	Terms []string
	Rows  []Row
}

// Row holds one document's feature vector. Values is indexed like Terms.
type Row struct {
	DocID  string
	Label  bool
	Values []float64
}

// Labels returns the per-row label slice in row order
func (t Table) Labels() []bool {
	labels := make([]bool, len(t.Rows))
	for i, row := range t.Rows {
		labels[i] = row.Label
	}
	return labels
}

// ClassCounts returns the number of rows per label class
func (t Table) ClassCounts() (pos, neg int) {
	for _, row := range t.Rows {
		if row.Label {
			pos++
		} else {
			neg++
		}
	}
	return pos, neg
}

// Build pivots the long-format weighted relation into a wide table using the
// chosen scheme. Absent (document, term) combinations are filled with an
// explicit zero. Terms are sorted so column order is stable across runs.
func Build(records []weighting.Weighted, terms []string, labels map[string]bool, scheme Scheme) (Table, error) {
	sorted := make([]string, len(terms))
	copy(sorted, terms)
	sort.Strings(sorted)

	colIndex := make(map[string]int, len(sorted))
	for i, term := range sorted {
		colIndex[term] = i
	}

	rowIndex := make(map[string]int)
	rows := make([]Row, 0)

	for _, rec := range records {
		i, ok := rowIndex[rec.DocID]
		if !ok {
			label, hasLabel := labels[rec.DocID]
			if !hasLabel {
				return Table{}, fmt.Errorf("document %s has no label", rec.DocID)
			}
			i = len(rows)
			rowIndex[rec.DocID] = i
			rows = append(rows, Row{
				DocID:  rec.DocID,
				Label:  label,
				Values: make([]float64, len(sorted)),
			})
		}

		j, ok := colIndex[rec.Term]
		if !ok {
			return Table{}, fmt.Errorf("term %q is not a vocabulary column", rec.Term)
		}

		switch scheme {
		case SchemeCount:
			rows[i].Values[j] = float64(rec.Count)
		case SchemeTFIDF:
			rows[i].Values[j] = rec.TFIDF
		default:
			return Table{}, fmt.Errorf("unknown weighting scheme %q", scheme)
		}
	}

	return Table{Terms: sorted, Rows: rows}, nil
}

// Balance down-samples the majority class so both classes have exactly the
// size of the smaller one. Each class draws uniformly without replacement,
// determined entirely by seed; surviving rows keep their original order.
// A table missing one class entirely balances to zero rows.
func Balance(t Table, seed int64) Table {
	r := rand.New(rand.NewSource(seed))

	byLabel := map[bool][]int{}
	for i, row := range t.Rows {
		byLabel[row.Label] = append(byLabel[row.Label], i)
	}

	m := len(byLabel[true])
	if len(byLabel[false]) < m {
		m = len(byLabel[false])
	}

	selected := make([]int, 0, 2*m)
	for _, label := range []bool{false, true} {
		idx := byLabel[label]
		if len(idx) <= m {
			selected = append(selected, idx...)
			continue
		}
		perm := r.Perm(len(idx))
		for _, p := range perm[:m] {
			selected = append(selected, idx[p])
		}
	}
	sort.Ints(selected)

	rows := make([]Row, 0, len(selected))
	for _, i := range selected {
		rows = append(rows, t.Rows[i])
	}
	return Table{Terms: t.Terms, Rows: rows}
}
