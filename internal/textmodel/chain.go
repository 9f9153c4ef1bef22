package textmodel

import (
	"strings"

	"github.com/itchan-dev/threadsim/internal/rng"
)

const (
	beginToken = "\x02BEGIN"
	endToken   = "\x03END"
	keySep     = "\x1f"

	// walks longer than this are abandoned as runaway loops
	maxSentenceTokens = 200
)

type transitions struct {
	tokens  []string
	weights []float64
	index   map[string]int
}

func (t *transitions) add(token string, weight float64) {
	if i, ok := t.index[token]; ok {
		t.weights[i] += weight
		return
	}
	t.index[token] = len(t.tokens)
	t.tokens = append(t.tokens, token)
	t.weights = append(t.weights, weight)
}

// chain is a weighted Markov chain over token states.
// States are kept in insertion order so sampling stays reproducible for a seed.
type chain struct {
	stateSize int
	states    map[string]*transitions
	order     []string
}

func newChain(stateSize int) *chain {
	return &chain{stateSize: stateSize, states: make(map[string]*transitions)}
}

func stateKey(state []string) string {
	return strings.Join(state, keySep)
}

func (c *chain) add(key, token string, weight float64) {
	t, ok := c.states[key]
	if !ok {
		t = &transitions{index: make(map[string]int)}
		c.states[key] = t
		c.order = append(c.order, key)
	}
	t.add(token, weight)
}

func (c *chain) beginState() []string {
	state := make([]string, c.stateSize)
	for i := range state {
		state[i] = beginToken
	}
	return state
}

func (c *chain) train(sentence []string) {
	items := append(c.beginState(), sentence...)
	items = append(items, endToken)
	for i := 0; i+c.stateSize < len(items); i++ {
		c.add(stateKey(items[i:i+c.stateSize]), items[i+c.stateSize], 1)
	}
}

// merge adds every transition of other scaled by weight.
func (c *chain) merge(other *chain, weight float64) {
	for _, key := range other.order {
		t := other.states[key]
		for i, token := range t.tokens {
			c.add(key, token, t.weights[i]*weight)
		}
	}
}

// walk generates one token sequence, or nil if the walk runs away.
func (c *chain) walk(r *rng.Rand) []string {
	state := c.beginState()
	var out []string
	for len(out) < maxSentenceTokens {
		t, ok := c.states[stateKey(state)]
		if !ok {
			return out
		}
		next := rng.Weighted(r, t.tokens, t.weights)
		if next == endToken {
			return out
		}
		out = append(out, next)
		state = append(state[1:], next)
	}
	return nil
}
