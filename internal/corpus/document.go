package corpus

import (
	"math/rand"
	"sort"
	"time"
)

// Document is one tweet carried through the pipeline. Only ID, Text and
// IsPrez participate in feature extraction; the remaining fields pass
// through untouched.
type Document struct {
	ID        string
	Text      string
	IsPrez    bool
	CreatedAt time.Time
	Favorites int
	Source    string
}

// ClassCounts returns the number of documents per label class
func ClassCounts(docs []Document) (prez, pre int) {
	for _, d := range docs {
		if d.IsPrez {
			prez++
		} else {
			pre++
		}
	}
	return prez, pre
}

// SampleByLabel draws, without replacement, up to n documents from each label
// class. The draw is uniform and fully determined by seed; documents keep
// their original relative order in the result.
func SampleByLabel(docs []Document, n int, seed int64) []Document {
	r := rand.New(rand.NewSource(seed))

	byLabel := map[bool][]int{}
	for i, d := range docs {
		byLabel[d.IsPrez] = append(byLabel[d.IsPrez], i)
	}

	selected := make([]int, 0, 2*n)
	for _, label := range []bool{false, true} {
		idx := byLabel[label]
		if len(idx) <= n {
			selected = append(selected, idx...)
			continue
		}
		perm := r.Perm(len(idx))
		for _, p := range perm[:n] {
			selected = append(selected, idx[p])
		}
	}
	sort.Ints(selected)

	out := make([]Document, 0, len(selected))
	for _, i := range selected {
		out = append(out, docs[i])
	}
	return out
}
