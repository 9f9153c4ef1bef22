package simulator

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itchan-dev/threadsim/internal/pagination"
	"github.com/itchan-dev/threadsim/internal/rng"
	"github.com/itchan-dev/threadsim/internal/textmodel"
	"github.com/itchan-dev/threadsim/internal/users"
	"github.com/itchan-dev/threadsim/shared/domain"
	internal_errors "github.com/itchan-dev/threadsim/shared/errors"
)

const (
	stubTechnical = "The backbone extracts features from the image. The detector predicts boxes from the features. Anchors cover the image at many scales."
	stubQueries   = "My detector finds nothing at all. The loss stays flat after the first epoch. What should I try next with my detector?"
	stubReplies   = "Check the labels on your images first. The anchors might be too large for your objects. Try a lower learning rate next."
	stubUpdates   = "Thanks, the labels were wrong after all. The detector finds objects now. The loss finally goes down."
)

// fixedModel always returns the same sentence, or misses when sentence is empty.
type fixedModel struct {
	sentence string
}

func (m fixedModel) Sample(*rng.Rand) (string, bool) {
	return m.sentence, m.sentence != ""
}

func fixedModels(sentence string) Models {
	m := fixedModel{sentence}
	return Models{Technical: m, Opener: m, Reply: m, AuthorUpdate: m}
}

func trainedModels(t *testing.T) Models {
	t.Helper()
	opts := textmodel.DefaultOptions()
	opts.TestOutput = false
	train := func(corpus string) textmodel.Model {
		m, err := textmodel.Train(corpus, opts)
		require.NoError(t, err)
		return m
	}
	return Models{
		Technical:    train(stubTechnical),
		Opener:       train(stubQueries),
		Reply:        train(stubReplies),
		AuthorUpdate: train(stubUpdates),
	}
}

func makeUsers(t *testing.T, seed uint64, n int) []domain.User {
	t.Helper()
	pool, err := users.NewPool(rng.New(seed), n, 1000)
	require.NoError(t, err)
	return pool.Users()
}

// countingRecorder tallies recorder callbacks.
type countingRecorder struct {
	posts, misses, images, pages int
}

func (c *countingRecorder) PostEmitted(*domain.Post)     { c.posts++ }
func (c *countingRecorder) SentenceMissed()              { c.misses++ }
func (c *countingRecorder) ImageAttached(domain.ImageId) { c.images++ }
func (c *countingRecorder) PageClosed(domain.Page)       { c.pages++ }

func run(t *testing.T, models Models, seed uint64, nUsers, minWords int, opts Options) (*domain.Thread, *countingRecorder) {
	t.Helper()
	rec := &countingRecorder{}
	sim, err := New(models, makeUsers(t, seed, nUsers), opts, rng.New(seed), rec)
	require.NoError(t, err)
	thread, err := sim.Run(minWords)
	require.NoError(t, err)
	return thread, rec
}

func assertThreadInvariants(t *testing.T, thread *domain.Thread, opts Options) {
	t.Helper()
	require.NotEmpty(t, thread.Posts)

	openers := 0
	words := 0
	seenImages := map[domain.ImageId]bool{}
	for i, post := range thread.Posts {
		assert.Equal(t, i+1, post.Index)
		if post.Role == domain.RoleOpener {
			openers++
			assert.Equal(t, 0, i, "opener must be the first post")
		}
		if i > 0 {
			prev := thread.Posts[i-1]
			assert.NotEqual(t, prev.Author.Id, post.Author.Id, "posts %d and %d share an author", prev.Index, post.Index)
			gap := post.Timestamp.Sub(prev.Timestamp)
			assert.GreaterOrEqual(t, gap, 5*time.Minute)
			assert.LessOrEqual(t, gap, 240*time.Minute)
		}
		assert.Equal(t, post.Author.Id == thread.OriginalPoster, post.IsOriginalPost)
		if i > 0 && post.IsOriginalPost {
			assert.Equal(t, domain.RoleAuthorUpdate, post.Role)
		}
		if !post.IsOriginalPost {
			assert.Equal(t, domain.RoleReply, post.Role)
			assert.Empty(t, post.Images(), "only the original poster posts images")
		}
		if post.Quote != nil {
			assert.Less(t, post.Quote.PostIndex, post.Index)
		}
		for _, id := range post.Images() {
			assert.False(t, seenImages[id], "image %d attached twice", id)
			seenImages[id] = true
			assert.True(t, thread.ImagePool.Has(id))
		}
		words += post.WordCount()
	}
	assert.Equal(t, 1, openers)
	assert.Equal(t, words, thread.TotalWordCount)
	assert.Len(t, thread.ImagePool, len(seenImages))
	assert.LessOrEqual(t, len(thread.ImagePool), opts.ImagePoolSize)

	var joined []*domain.Post
	for i, page := range thread.Pages {
		assert.Equal(t, i+1, page.Index)
		if i < len(thread.Pages)-1 {
			assert.Len(t, page.Posts, opts.PostsPerPage)
		} else {
			assert.NotEmpty(t, page.Posts)
			assert.LessOrEqual(t, len(page.Posts), opts.PostsPerPage)
		}
		joined = append(joined, page.Posts...)
	}
	assert.Equal(t, thread.Posts, joined)
	assert.Equal(t, pagination.Split(thread.Posts, opts.PostsPerPage), thread.Pages)
}

func TestRun_SmallThreadScenario(t *testing.T) {
	opts := DefaultOptions()
	thread, _ := run(t, trainedModels(t), 2021, 50, 100, opts)

	assert.GreaterOrEqual(t, len(thread.Posts), 1)
	require.Len(t, thread.Pages, 1)
	assert.Greater(t, thread.TotalWordCount, 100)
	assert.Equal(t, 1, thread.Posts[0].Index)
	assert.Equal(t, domain.RoleOpener, thread.Pages[0].Posts[0].Role)
	assert.Len(t, thread.Posts[0].Content, openerParagraphs)
	assert.Equal(t, opts.Epoch, thread.Posts[0].Timestamp)
	assertThreadInvariants(t, thread, opts)
}

func TestRun_InvariantsAcrossSeeds(t *testing.T) {
	opts := DefaultOptions()
	models := trainedModels(t)
	for seed := uint64(1); seed <= 8; seed++ {
		thread, rec := run(t, models, seed, 50, 3000, opts)
		assertThreadInvariants(t, thread, opts)
		assert.Greater(t, thread.TotalWordCount, 3000)
		assert.Equal(t, len(thread.Posts), rec.posts)
		assert.Equal(t, len(thread.Pages), rec.pages)
		assert.Equal(t, len(thread.ImagePool), rec.images)
	}
}

func TestRun_StopsRightAfterThreshold(t *testing.T) {
	opts := DefaultOptions()
	thread, _ := run(t, fixedModels("one two three four"), 5, 10, 500, opts)

	last := thread.Posts[len(thread.Posts)-1]
	assert.Greater(t, thread.TotalWordCount, 500)
	assert.LessOrEqual(t, thread.TotalWordCount-last.WordCount(), 500, "generation continued past the threshold")
}

func TestRun_HardStopAtMaxPosts(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxPosts = 45
	// every sentence misses, so the word target is never reached
	thread, rec := run(t, fixedModels(""), 9, 10, 1_000_000, opts)

	assert.Len(t, thread.Posts, 45)
	require.Len(t, thread.Pages, 3)
	assert.Len(t, thread.Pages[2].Posts, 5)
	assert.Greater(t, rec.misses, 0)
	assertThreadInvariants(t, thread, opts)
}

func TestRun_ImagePoolExhaustion(t *testing.T) {
	opts := DefaultOptions()
	opts.ImagePoolSize = 5
	opts.MaxPosts = 300
	// with two users the original poster writes every other post
	thread, _ := run(t, fixedModels("sentence"), 4, 2, 1_000_000, opts)

	assert.Len(t, thread.ImagePool, 5)
	assert.Equal(t, []domain.ImageId{1, 2, 3, 4, 5}, thread.ImagePool.Ids())
	assertThreadInvariants(t, thread, opts)
}

func TestRun_QuotesNeverRepeatBackToBack(t *testing.T) {
	opts := DefaultOptions()
	thread, _ := run(t, trainedModels(t), 17, 50, 20000, opts)

	var quotes []*domain.Quote
	for _, post := range thread.Posts {
		if post.Quote != nil {
			quotes = append(quotes, post.Quote)
		}
	}
	require.NotEmpty(t, quotes)
	for i := 1; i < len(quotes); i++ {
		assert.NotSame(t, quotes[i-1], quotes[i])
	}
}

func TestRun_Deterministic(t *testing.T) {
	opts := DefaultOptions()
	models := trainedModels(t)
	a, _ := run(t, models, 33, 50, 2000, opts)
	b, _ := run(t, models, 33, 50, 2000, opts)

	assert.Equal(t, a.Id, b.Id)
	assert.Equal(t, a.Posts, b.Posts)
	assert.Equal(t, a.TotalWordCount, b.TotalWordCount)
}

func TestRun_AuthorRetriesExhausted(t *testing.T) {
	opts := DefaultOptions()
	opts.AuthorRetries = 1
	sim, err := New(fixedModels("word"), makeUsers(t, 1, 2), opts, rng.New(1), nil)
	require.NoError(t, err)

	_, err = sim.Run(1_000_000)
	require.Error(t, err)
	assert.True(t, errors.Is(err, internal_errors.ErrAuthorSelection))
	assert.True(t, internal_errors.IsConfigError(err))
}

func TestNew_ConfigErrors(t *testing.T) {
	opts := DefaultOptions()
	models := fixedModels("word")

	broken := models
	broken.Reply = nil
	_, err := New(broken, makeUsers(t, 1, 5), opts, rng.New(1), nil)
	assert.True(t, internal_errors.IsConfigError(err))

	_, err = New(models, makeUsers(t, 1, 1), opts, rng.New(1), nil)
	assert.True(t, internal_errors.IsConfigError(err))

	_, err = New(models, nil, opts, rng.New(1), nil)
	assert.True(t, internal_errors.IsConfigError(err))

	bad := opts
	bad.PostsPerPage = 0
	_, err = New(models, makeUsers(t, 1, 5), bad, rng.New(1), nil)
	assert.True(t, internal_errors.IsConfigError(err))

	oversized := opts
	oversized.ImagePoolSize = MaxImagePoolSize + 1
	_, err = New(models, makeUsers(t, 1, 5), oversized, rng.New(1), nil)
	assert.True(t, internal_errors.IsConfigError(err))

	capped := opts
	capped.ImagePoolSize = MaxImagePoolSize
	_, err = New(models, makeUsers(t, 1, 5), capped, rng.New(1), nil)
	assert.NoError(t, err)

	single := opts
	single.MaxPosts = 1
	sim, err := New(models, makeUsers(t, 1, 1), single, rng.New(1), nil)
	require.NoError(t, err)
	thread, err := sim.Run(1_000_000)
	require.NoError(t, err)
	assert.Len(t, thread.Posts, 1)
}

func TestRun_OriginalPosterReturns(t *testing.T) {
	opts := DefaultOptions()
	thread, _ := run(t, fixedModels("word"), 12, 50, 1_000_000, opts)

	updates := 0
	for _, post := range thread.Posts {
		if post.Role == domain.RoleAuthorUpdate {
			updates++
		}
	}
	// roughly one redraw in five returns the original poster
	assert.Greater(t, updates, len(thread.Posts)/10)
}
