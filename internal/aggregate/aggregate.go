package aggregate

import (
	"github.com/RoaringBitmap/roaring"

	"github.com/knowledge-engine/tweetsift/internal/tokenizer"
)

// Aggregate is the sparse document-term relation after vocabulary
// restriction. Only (document, term) pairs with a positive count are
// materialized; documents whose tokens never hit the vocabulary are dropped
// before the aggregate is built.
type Aggregate struct {
	// counts[docID][term] = raw occurrence count (> 0)
	counts map[string]map[string]int
	// totals[docID] = sum of counts over vocabulary terms (> 0)
	totals map[string]int
	// termDocs[term] = bitmap of surviving-document ordinals containing it
	termDocs map[string]*roaring.Bitmap
	// docIDs holds surviving documents in input order; the index of a
	// document in this slice is its bitmap ordinal
	docIDs []string
	labels map[string]bool
}

// DropReport accounts for documents excluded because no token matched the
// vocabulary. Exclusion is silent by policy but must stay observable so
// class balance can be verified downstream.
type DropReport struct {
	Kept    int
	Dropped int
	// DroppedByLabel splits the dropped count by label class
	DroppedByLabel map[bool]int
}

// Build restricts every document to the vocabulary and aggregates counts.
// Documents with a zero total are excluded from the aggregate entirely and
// reported, not zero-filled.
func Build(docs []tokenizer.DocTokens, vocabulary map[string]struct{}) (*Aggregate, DropReport) {
	agg := &Aggregate{
		counts:   make(map[string]map[string]int),
		totals:   make(map[string]int),
		termDocs: make(map[string]*roaring.Bitmap),
		labels:   make(map[string]bool),
	}
	report := DropReport{DroppedByLabel: map[bool]int{}}

	for _, doc := range docs {
		termCounts := make(map[string]int)
		total := 0
		for _, tok := range doc.Tokens {
			if _, ok := vocabulary[tok]; !ok {
				continue
			}
			termCounts[tok]++
			total++
		}

		if total == 0 {
			report.Dropped++
			report.DroppedByLabel[doc.Label]++
			continue
		}

		ordinal := uint32(len(agg.docIDs))
		agg.docIDs = append(agg.docIDs, doc.DocID)
		agg.counts[doc.DocID] = termCounts
		agg.totals[doc.DocID] = total
		agg.labels[doc.DocID] = doc.Label
		report.Kept++

		for term := range termCounts {
			bm := agg.termDocs[term]
			if bm == nil {
				bm = roaring.NewBitmap()
				agg.termDocs[term] = bm
			}
			bm.Add(ordinal)
		}
	}

	return agg, report
}

// DocIDs returns the surviving document IDs in input order
func (a *Aggregate) DocIDs() []string {
	return a.docIDs
}

// Len returns N, the number of surviving documents
func (a *Aggregate) Len() int {
	return len(a.docIDs)
}

// Counts returns the per-term raw counts of one document
func (a *Aggregate) Counts(docID string) map[string]int {
	return a.counts[docID]
}

// Total returns the document's summed count over vocabulary terms
func (a *Aggregate) Total(docID string) int {
	return a.totals[docID]
}

// Label returns the document's label class
func (a *Aggregate) Label(docID string) bool {
	return a.labels[docID]
}

// Labels returns a docID → label map over the surviving documents
func (a *Aggregate) Labels() map[string]bool {
	out := make(map[string]bool, len(a.labels))
	for id, label := range a.labels {
		out[id] = label
	}
	return out
}

// DocsWith returns the document frequency of a term: how many surviving
// documents contain it at least once
func (a *Aggregate) DocsWith(term string) int {
	bm := a.termDocs[term]
	if bm == nil {
		return 0
	}
	return int(bm.GetCardinality())
}

// ObservedTerms returns how many vocabulary terms actually occur in the
// surviving aggregate
func (a *Aggregate) ObservedTerms() int {
	return len(a.termDocs)
}
