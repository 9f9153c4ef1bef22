package users

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itchan-dev/threadsim/internal/rng"
	"github.com/itchan-dev/threadsim/shared/domain"
	internal_errors "github.com/itchan-dev/threadsim/shared/errors"
)

func TestGenerateUsername(t *testing.T) {
	r := rng.New(1)
	var withSuffix, withVersion int
	const n = 2000
	for i := 0; i < n; i++ {
		name := GenerateUsername(r)
		require.NotEmpty(t, name)

		hasAdjective := false
		for _, adj := range adjectives {
			if strings.HasPrefix(name, adj) {
				hasAdjective = true
				break
			}
		}
		require.True(t, hasAdjective, "username %q does not start with an adjective", name)

		for _, s := range suffixes {
			if strings.Contains(name, s) {
				withSuffix++
				break
			}
		}
		for _, l := range []string{"-R", " R", "-v", " v", "-D", " D"} {
			if idx := strings.LastIndex(name, l); idx >= 0 && idx+len(l) < len(name) && name[idx+len(l)] >= '0' && name[idx+len(l)] <= '9' {
				withVersion++
				break
			}
		}
	}
	// inclusion is favoured over omission
	assert.Greater(t, withSuffix, n/2)
	assert.Greater(t, withVersion, n/2)
}

func TestNewPool(t *testing.T) {
	pool, err := NewPool(rng.New(42), 50, 1000)
	require.NoError(t, err)
	require.Equal(t, 50, pool.Len())

	seen := map[string]bool{}
	for i, u := range pool.Users() {
		assert.Equal(t, i, u.Id)
		assert.False(t, seen[u.Username], "duplicate username %q", u.Username)
		seen[u.Username] = true
		assert.GreaterOrEqual(t, u.PostCount, postCountMin)
		assert.LessOrEqual(t, u.PostCount, postCountMax)
		assert.Equal(t, domain.RankFor(u.PostCount), u.Rank)

		found, ok := pool.Lookup(u.Username)
		require.True(t, ok)
		assert.Equal(t, u, found)
	}
	assert.Len(t, pool.PostCounts(), 50)
}

func TestNewPool_PostCountsSkewLow(t *testing.T) {
	pool, err := NewPool(rng.New(7), 400, 1000)
	require.NoError(t, err)

	low := 0
	for _, u := range pool.Users() {
		if u.PostCount < postCountMax/2 {
			low++
		}
	}
	// P(min of four below the midpoint) = 1 - 0.5^4
	assert.InDelta(t, 0.9375, float64(low)/400, 0.05)
}

func TestNewPool_Deterministic(t *testing.T) {
	a, err := NewPool(rng.New(3), 20, 100)
	require.NoError(t, err)
	b, err := NewPool(rng.New(3), 20, 100)
	require.NoError(t, err)
	assert.Equal(t, a.Users(), b.Users())
}

func TestNewPool_ExhaustedNameSpace(t *testing.T) {
	names := []string{"Alpha", "Beta"}
	generate := func(r *rng.Rand) string { return rng.Choice(r, names) }

	_, err := NewPoolWith(rng.New(1), 3, 50, generate)
	require.Error(t, err)
	assert.True(t, internal_errors.IsConfigError(err))
	assert.True(t, errors.Is(err, internal_errors.ErrNameSpaceExhausted))
}

func TestNewPool_InvalidSize(t *testing.T) {
	_, err := NewPool(rng.New(1), 0, 10)
	assert.True(t, internal_errors.IsConfigError(err))
}

func TestNameSpaceSize(t *testing.T) {
	assert.Equal(t, 28*22*295, NameSpaceSize())
}
