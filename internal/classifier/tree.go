package classifier

import (
	"fmt"
	"strconv"

	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/trees"

	"github.com/knowledge-engine/tweetsift/internal/feature"
)

// DecisionTree adapts golearn's decision-tree learner to the Classifier
// contract. Conversion to and from golearn's instance format is the only
// logic here; induction and prediction stay inside the library.
type DecisionTree struct {
	tree *trees.ID3DecisionTree
	// pruneSplit is the train/prune split used by the learner's reduced
	// error pruning
	pruneSplit float64
}

// NewDecisionTree returns a tree learner with the default prune split
func NewDecisionTree() *DecisionTree {
	return &DecisionTree{pruneSplit: 0.6}
}

// Fit trains a fresh tree on the table
func (d *DecisionTree) Fit(t feature.Table) error {
	if len(t.Rows) == 0 {
		return fmt.Errorf("cannot fit on an empty feature table")
	}

	inst, err := toInstances(t)
	if err != nil {
		return err
	}

	d.tree = trees.NewID3DecisionTree(d.pruneSplit)
	if err := d.tree.Fit(inst); err != nil {
		return fmt.Errorf("tree fit failed: %w", err)
	}
	return nil
}

// Predict returns one label per table row
func (d *DecisionTree) Predict(t feature.Table) ([]bool, error) {
	if d.tree == nil {
		return nil, fmt.Errorf("predict called before fit")
	}

	inst, err := toInstances(t)
	if err != nil {
		return nil, err
	}

	pred, err := d.tree.Predict(inst)
	if err != nil {
		return nil, fmt.Errorf("tree predict failed: %w", err)
	}

	labels := make([]bool, len(t.Rows))
	for i := range t.Rows {
		labels[i] = base.GetClass(pred, i) == "true"
	}
	return labels, nil
}

// toInstances converts a feature table into golearn DenseInstances: one
// float attribute per term column plus a categorical class attribute.
func toInstances(t feature.Table) (*base.DenseInstances, error) {
	inst := base.NewDenseInstances()

	specs := make([]base.AttributeSpec, 0, len(t.Terms))
	for _, term := range t.Terms {
		specs = append(specs, inst.AddAttribute(base.NewFloatAttribute(term)))
	}

	class := base.NewCategoricalAttribute()
	class.SetName("is_prez")
	classSpec := inst.AddAttribute(class)
	if err := inst.AddClassAttribute(class); err != nil {
		return nil, fmt.Errorf("failed to set class attribute: %w", err)
	}

	if err := inst.Extend(len(t.Rows)); err != nil {
		return nil, fmt.Errorf("failed to allocate instances: %w", err)
	}

	for i, row := range t.Rows {
		if len(row.Values) != len(t.Terms) {
			return nil, fmt.Errorf("row %s has %d values for %d columns", row.DocID, len(row.Values), len(t.Terms))
		}
		for j, v := range row.Values {
			inst.Set(specs[j], i, base.PackFloatToBytes(v))
		}
		inst.Set(classSpec, i, class.GetSysValFromString(strconv.FormatBool(row.Label)))
	}

	return inst, nil
}
