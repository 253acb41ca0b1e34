package split

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/knowledge-engine/tweetsift/internal/feature"
)

// Stratified partitions the table into train and test sets. Within each
// label class a fraction of the rows is drawn uniformly (seeded) for
// training; the complement becomes the test set, so the two sides are a
// true partition of the input rows.
func Stratified(t feature.Table, fraction float64, seed int64) (train, test feature.Table) {
	r := rand.New(rand.NewSource(seed))

	byLabel := map[bool][]int{}
	for i, row := range t.Rows {
		byLabel[row.Label] = append(byLabel[row.Label], i)
	}

	inTrain := make(map[int]bool, len(t.Rows))
	for _, label := range []bool{false, true} {
		idx := byLabel[label]
		if len(idx) == 0 {
			continue
		}
		n := int(math.Round(fraction * float64(len(idx))))
		if n > len(idx) {
			n = len(idx)
		}
		perm := r.Perm(len(idx))
		for _, p := range perm[:n] {
			inTrain[idx[p]] = true
		}
	}

	trainIdx := make([]int, 0, len(inTrain))
	testIdx := make([]int, 0, len(t.Rows)-len(inTrain))
	for i := range t.Rows {
		if inTrain[i] {
			trainIdx = append(trainIdx, i)
		} else {
			testIdx = append(testIdx, i)
		}
	}
	sort.Ints(trainIdx)
	sort.Ints(testIdx)

	return subset(t, trainIdx), subset(t, testIdx)
}

func subset(t feature.Table, idx []int) feature.Table {
	rows := make([]feature.Row, 0, len(idx))
	for _, i := range idx {
		rows = append(rows, t.Rows[i])
	}
	return feature.Table{Terms: t.Terms, Rows: rows}
}

// Confusion is a 2x2 confusion matrix; rows are the true class, columns the
// predicted class.
type Confusion struct {
	TruePos  int // true=yes, predicted=yes
	FalseNeg int // true=yes, predicted=no
	FalsePos int // true=no, predicted=yes
	TrueNeg  int // true=no, predicted=no
}

// Evaluate builds the confusion matrix of predictions against true labels
func Evaluate(truth, predicted []bool) (Confusion, error) {
	if len(truth) != len(predicted) {
		return Confusion{}, fmt.Errorf("label length mismatch: %d true vs %d predicted", len(truth), len(predicted))
	}

	var c Confusion
	for i := range truth {
		switch {
		case truth[i] && predicted[i]:
			c.TruePos++
		case truth[i] && !predicted[i]:
			c.FalseNeg++
		case !truth[i] && predicted[i]:
			c.FalsePos++
		default:
			c.TrueNeg++
		}
	}
	return c, nil
}

// Total returns the number of evaluated examples
func (c Confusion) Total() int {
	return c.TruePos + c.FalseNeg + c.FalsePos + c.TrueNeg
}

// Accuracy is the matrix trace over its sum; zero on an empty matrix
func (c Confusion) Accuracy() float64 {
	total := c.Total()
	if total == 0 {
		return 0
	}
	return float64(c.TruePos+c.TrueNeg) / float64(total)
}

func (c Confusion) String() string {
	return fmt.Sprintf("TP=%d FN=%d FP=%d TN=%d acc=%.4f",
		c.TruePos, c.FalseNeg, c.FalsePos, c.TrueNeg, c.Accuracy())
}
