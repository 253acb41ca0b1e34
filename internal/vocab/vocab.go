package vocab

import (
	"sort"

	"github.com/knowledge-engine/tweetsift/internal/tokenizer"
)

// Count tallies corpus-wide occurrences of every distinct token
func Count(docs []tokenizer.DocTokens) map[string]int {
	counts := make(map[string]int)
	for _, d := range docs {
		for _, tok := range d.Tokens {
			counts[tok]++
		}
	}
	return counts
}

// TopK selects the working vocabulary: every term whose competition rank is
// at most k, where terms tied on count share a rank. The cutoff is the k-th
// largest count including duplicates, and every term with at least that
// count is kept, so ties at the boundary inflate the result beyond k.
// Sorting and slicing the first k terms would silently break ties; don't.
func TopK(counts map[string]int, k int) map[string]struct{} {
	vocabulary := make(map[string]struct{}, k)
	if k <= 0 || len(counts) == 0 {
		return vocabulary
	}

	if len(counts) <= k {
		for term := range counts {
			vocabulary[term] = struct{}{}
		}
		return vocabulary
	}

	values := make([]int, 0, len(counts))
	for _, c := range counts {
		values = append(values, c)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))
	threshold := values[k-1]

	for term, c := range counts {
		if c >= threshold {
			vocabulary[term] = struct{}{}
		}
	}
	return vocabulary
}

// Terms returns the vocabulary as a sorted slice, for stable column order
func Terms(vocabulary map[string]struct{}) []string {
	terms := make([]string, 0, len(vocabulary))
	for term := range vocabulary {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}
