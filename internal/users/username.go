package users

import (
	"strconv"

	"github.com/itchan-dev/threadsim/internal/rng"
)

var (
	adjectives = []string{
		"Fast", "Faster", "Retina", "Mask", "Efficient", "YOLO", "SSD",
		"SPP", "Refine", "Cascade", "Stair", "Squeeze", "FRD", "Res",
		"Scout", "Look", "Resolve", "Search", "Salient", "Detect",
		"Context", "Mobile", "Rapid", "Speed", "Vision", "Eye", "View", "Seek",
	}
	suffixSeparators  = []string{"", "-", " "}
	suffixes          = []string{"RCNN", "CNN", "Net", "Det", "NeXt", "LITE", "9000"}
	versionSeparators = []string{"-", " "}
	versionLetters    = []string{"R", "v", "D"}

	// include : omit
	suffixWeights  = []float64{6, 1}
	versionWeights = []float64{4, 1}
	includeOrOmit  = []bool{true, false}
)

const (
	versionMin = 2
	versionMax = 50
)

// GenerateUsername builds a detector-style handle such as "RetinaNet v4" or "Mask-RCNN".
// Uniqueness is the caller's concern.
func GenerateUsername(r *rng.Rand) string {
	name := rng.Choice(r, adjectives)

	suffix := rng.Choice(r, suffixSeparators) + rng.Choice(r, suffixes)
	num := r.MinOf(2, versionMin, versionMax)
	version := rng.Choice(r, versionSeparators) + rng.Choice(r, versionLetters) + strconv.Itoa(num)

	if rng.Weighted(r, includeOrOmit, suffixWeights) {
		name += suffix
	}
	if rng.Weighted(r, includeOrOmit, versionWeights) {
		name += version
	}
	return name
}

// NameSpaceSize is the number of distinct usernames GenerateUsername can produce.
// Different token sequences may render identically, so this is an upper bound.
func NameSpaceSize() int {
	versionCount := len(versionSeparators) * len(versionLetters) * (versionMax - versionMin + 1)
	suffixCount := len(suffixSeparators) * len(suffixes)
	return len(adjectives) * (suffixCount + 1) * (versionCount + 1)
}
