package weighting

import (
	"fmt"
	"math"
	"sort"

	"github.com/knowledge-engine/tweetsift/internal/aggregate"
)

// Weighted is one (document, term) record of the long-format weighted
// relation: tf = Count/Total, idf = ln(N/DocsWithTerm), tf-idf = tf * idf.
type Weighted struct {
	DocID        string
	Term         string
	Count        int
	Total        int
	TF           float64
	DocsWithTerm int
	IDF          float64
	TFIDF        float64
}

// Compute derives the weighted relation from the aggregate. Record order is
// deterministic: documents in aggregate order, terms sorted within each
// document.
//
// A document frequency of zero for a materialized term, or a non-positive
// document total, means the vocabulary and the aggregate were built from
// different corpus slices; that is a wiring bug and fails fast.
func Compute(agg *aggregate.Aggregate) ([]Weighted, error) {
	n := agg.Len()
	out := make([]Weighted, 0, n)

	for _, docID := range agg.DocIDs() {
		total := agg.Total(docID)
		if total <= 0 {
			return nil, fmt.Errorf("document %s has non-positive total %d in the aggregate", docID, total)
		}

		counts := agg.Counts(docID)
		terms := make([]string, 0, len(counts))
		for term := range counts {
			terms = append(terms, term)
		}
		sort.Strings(terms)

		for _, term := range terms {
			df := agg.DocsWith(term)
			if df < 1 || df > n {
				return nil, fmt.Errorf("term %q has document frequency %d outside [1, %d]", term, df, n)
			}

			count := counts[term]
			tf := float64(count) / float64(total)
			idf := math.Log(float64(n) / float64(df))
			out = append(out, Weighted{
				DocID:        docID,
				Term:         term,
				Count:        count,
				Total:        total,
				TF:           tf,
				DocsWithTerm: df,
				IDF:          idf,
				TFIDF:        tf * idf,
			})
		}
	}

	return out, nil
}

// IDFByTerm collapses the weighted relation to a term → idf map
func IDFByTerm(records []Weighted) map[string]float64 {
	out := make(map[string]float64)
	for _, rec := range records {
		out[rec.Term] = rec.IDF
	}
	return out
}
