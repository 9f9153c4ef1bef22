package textmodel

import (
	"fmt"

	"github.com/itchan-dev/threadsim/internal/rng"
	internal_errors "github.com/itchan-dev/threadsim/shared/errors"
)

// Blend combines models so that each contributes in proportion to its weight.
// Weights are relative and zero-weight models contribute nothing. When every
// contributing model is a *Text of the same state size the chains are merged
// into a single *Text, otherwise the result samples one source per call.
// Blend never modifies its inputs.
func Blend(models []Model, weights []float64) (Model, error) {
	if len(models) != len(weights) {
		return nil, fmt.Errorf("%w: %d models, %d weights", internal_errors.ErrWeightsMismatch, len(models), len(weights))
	}

	var (
		used      []Model
		usedW     []float64
		total     float64
		allTexts  = true
		stateSize = -1
	)
	for i, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("weight %d is negative: %v", i, w)
		}
		if w == 0 {
			continue
		}
		used = append(used, models[i])
		usedW = append(usedW, w)
		total += w

		t, ok := models[i].(*Text)
		if !ok || (stateSize >= 0 && t.opts.StateSize != stateSize) {
			allTexts = false
			continue
		}
		stateSize = t.opts.StateSize
	}
	if len(used) == 0 {
		return nil, internal_errors.ErrNoWeight
	}
	if len(used) == 1 {
		return used[0], nil
	}

	if !allTexts {
		return &mixture{models: used, weights: usedW}, nil
	}

	first := used[0].(*Text)
	merged := &Text{opts: first.opts, chain: newChain(stateSize)}
	for i, m := range used {
		t := m.(*Text)
		merged.chain.merge(t.chain, usedW[i]/total)
		merged.rejoined += t.rejoined
	}
	return merged, nil
}

// mixture picks one source per sentence.
type mixture struct {
	models  []Model
	weights []float64
}

func (m *mixture) Sample(r *rng.Rand) (string, bool) {
	return rng.Weighted(r, m.models, m.weights).Sample(r)
}
