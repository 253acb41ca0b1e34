package classifier

import (
	"github.com/knowledge-engine/tweetsift/internal/feature"
)

// Classifier is the contract the pipeline expects from any learner: fit on a
// wide feature table, predict one label per row. The learning algorithm
// behind it is a black box; its errors propagate unchanged.
type Classifier interface {
	Fit(t feature.Table) error
	Predict(t feature.Table) ([]bool, error)
}
