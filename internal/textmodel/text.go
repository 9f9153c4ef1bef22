// Package textmodel implements the sentence generator used for post prose:
// a Markov chain trained on a corpus, sampled one sentence at a time, and
// blendable with other models by weight.
package textmodel

import (
	"fmt"
	"math"
	"strings"

	"github.com/itchan-dev/threadsim/internal/rng"
	internal_errors "github.com/itchan-dev/threadsim/shared/errors"
)

// Model produces one sentence per call. ok is false when no usable sentence
// was found; callers treat that as a miss, not a failure.
type Model interface {
	Sample(r *rng.Rand) (sentence string, ok bool)
}

type Options struct {
	StateSize int
	// Tries bounds the walks attempted per Sample.
	Tries int
	// TestOutput rejects sentences that copy too long a run of the corpus.
	TestOutput      bool
	MaxOverlapRatio float64
	MaxOverlapTotal int
	Tokenizer       Tokenizer
}

func DefaultOptions() Options {
	return Options{
		StateSize:       2,
		Tries:           10,
		TestOutput:      true,
		MaxOverlapRatio: 0.7,
		MaxOverlapTotal: 15,
		Tokenizer:       WordTokenizer{},
	}
}

// Text is a trained chain together with the text it was trained on.
type Text struct {
	opts     Options
	chain    *chain
	rejoined string // every training sentence, space padded, for the overlap test
}

var _ Model = (*Text)(nil)

// Train builds a model from raw corpus text.
func Train(corpus string, opts Options) (*Text, error) {
	if opts.Tokenizer == nil {
		opts.Tokenizer = WordTokenizer{}
	}
	if opts.StateSize < 1 {
		return nil, &internal_errors.ConfigError{Field: "state_size", Message: fmt.Sprintf("must be positive, got %d", opts.StateSize)}
	}
	if opts.Tries < 1 {
		opts.Tries = 1
	}

	c := newChain(opts.StateSize)
	var rejoined strings.Builder
	count := 0
	for _, sentence := range SplitSentences(corpus) {
		tokens := opts.Tokenizer.Split(sentence)
		if len(tokens) == 0 {
			continue
		}
		c.train(tokens)
		rejoined.WriteString(" " + opts.Tokenizer.Join(tokens) + " \n")
		count++
	}
	if count == 0 {
		return nil, internal_errors.ErrEmptyCorpus
	}

	return &Text{opts: opts, chain: c, rejoined: rejoined.String()}, nil
}

func (t *Text) Sample(r *rng.Rand) (string, bool) {
	for i := 0; i < t.opts.Tries; i++ {
		tokens := t.chain.walk(r)
		if len(tokens) == 0 {
			continue
		}
		if t.opts.TestOutput && t.overlapsCorpus(tokens) {
			continue
		}
		return t.opts.Tokenizer.Join(tokens), true
	}
	return "", false
}

// overlapsCorpus reports whether any run of overlapMax+1 tokens appears verbatim in the corpus.
func (t *Text) overlapsCorpus(tokens []string) bool {
	overlapRatio := int(math.Round(t.opts.MaxOverlapRatio * float64(len(tokens))))
	overlapMax := min(t.opts.MaxOverlapTotal, overlapRatio)
	gramCount := max(len(tokens)-overlapMax, 1)
	for i := 0; i < gramCount; i++ {
		end := min(i+overlapMax+1, len(tokens))
		gram := " " + t.opts.Tokenizer.Join(tokens[i:end]) + " "
		if strings.Contains(t.rejoined, gram) {
			return true
		}
	}
	return false
}
