// Package simulator generates a forum thread post by post.
//
// Each iteration runs the same fixed sequence: select an author, advance the
// clock, classify the post's role, blend the sentence models for that author,
// compose the content, maybe prefix a quote, then emit the post and decide
// whether to stop. Every step depends on the one before it, so the loop is
// strictly sequential.
package simulator

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/itchan-dev/threadsim/internal/pagination"
	"github.com/itchan-dev/threadsim/internal/rng"
	"github.com/itchan-dev/threadsim/internal/textmodel"
	"github.com/itchan-dev/threadsim/shared/domain"
	internal_errors "github.com/itchan-dev/threadsim/shared/errors"
	"github.com/itchan-dev/threadsim/shared/logger"
)

// Models are the trained sentence sources. Technical is blended into every
// post; the other three are picked by post role.
type Models struct {
	Technical    textmodel.Model
	Opener       textmodel.Model
	Reply        textmodel.Model
	AuthorUpdate textmodel.Model
}

func (m Models) forRole(role domain.Role) textmodel.Model {
	switch role {
	case domain.RoleOpener:
		return m.Opener
	case domain.RoleAuthorUpdate:
		return m.AuthorUpdate
	default:
		return m.Reply
	}
}

func (m Models) validate() error {
	for name, model := range map[string]textmodel.Model{
		"technical": m.Technical, "opener": m.Opener, "reply": m.Reply, "author_update": m.AuthorUpdate,
	} {
		if model == nil {
			return &internal_errors.ConfigError{Field: name, Message: "model is not trained"}
		}
	}
	return nil
}

// MaxImagePoolSize caps the distinct image ids a thread may attach.
const MaxImagePoolSize = 100

type Options struct {
	PostsPerPage  int
	MaxPosts      int
	ImagePoolSize int
	AuthorRetries int
	// RoleWeight is the blend weight of the role corpus; the technical corpus
	// is weighted by the author's lifetime post count.
	RoleWeight float64
	Epoch      time.Time
}

func DefaultOptions() Options {
	return Options{
		PostsPerPage:  20,
		MaxPosts:      1000,
		ImagePoolSize: 100,
		AuthorRetries: 1000,
		RoleWeight:    5000,
		Epoch:         time.Date(2021, time.November, 9, 8, 0, 0, 0, time.UTC),
	}
}

// Recorder observes generation events.
type Recorder interface {
	PostEmitted(post *domain.Post)
	SentenceMissed()
	ImageAttached(id domain.ImageId)
	PageClosed(page domain.Page)
}

type nopRecorder struct{}

func (nopRecorder) PostEmitted(*domain.Post)     {}
func (nopRecorder) SentenceMissed()              {}
func (nopRecorder) ImageAttached(domain.ImageId) {}
func (nopRecorder) PageClosed(domain.Page)       {}

type blendKey struct {
	role      domain.Role
	postCount int
}

type Simulator struct {
	models Models
	users  []domain.User
	opts   Options
	r      *rng.Rand
	rec    Recorder

	// Blend is pure, so blended models are reused per role and post count.
	blends map[blendKey]textmodel.Model
}

// New validates its inputs; a nil recorder discards events.
func New(models Models, users []domain.User, opts Options, r *rng.Rand, rec Recorder) (*Simulator, error) {
	if err := models.validate(); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, &internal_errors.ConfigError{Field: "users", Message: "no users to post"}
	}
	if len(users) < 2 && opts.MaxPosts > 1 {
		return nil, &internal_errors.ConfigError{Field: "users", Message: "at least two users are needed to avoid double posting"}
	}
	if opts.PostsPerPage < 1 || opts.MaxPosts < 1 || opts.AuthorRetries < 1 || opts.ImagePoolSize < 0 || opts.RoleWeight <= 0 {
		return nil, &internal_errors.ConfigError{Message: fmt.Sprintf("invalid simulator options %+v", opts)}
	}
	if opts.ImagePoolSize > MaxImagePoolSize {
		return nil, &internal_errors.ConfigError{
			Field:   "image_pool_size",
			Message: fmt.Sprintf("must be at most %d, got %d", MaxImagePoolSize, opts.ImagePoolSize),
		}
	}
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Simulator{
		models: models,
		users:  users,
		opts:   opts,
		r:      r,
		rec:    rec,
		blends: make(map[blendKey]textmodel.Model),
	}, nil
}

// simulation carries everything that changes from one post to the next.
type simulation struct {
	thread     *domain.Thread
	pager      *pagination.Pager
	clock      time.Time
	lastAuthor domain.UserId
	op         domain.UserId

	// single rotating slot; every rotation stores a fresh quote
	nextQuote  *domain.Quote
	lastQuoted *domain.Quote
}

// Run generates posts until the thread holds more than minimumWords words
// or MaxPosts posts have been emitted.
func (s *Simulator) Run(minimumWords int) (*domain.Thread, error) {
	id, err := uuid.NewRandomFromReader(s.r)
	if err != nil {
		return nil, fmt.Errorf("thread id: %w", err)
	}

	sim := &simulation{
		thread: &domain.Thread{
			Id:        id,
			Users:     s.users,
			ImagePool: domain.ImagePool{},
		},
		pager:      pagination.NewPager(s.opts.PostsPerPage),
		lastAuthor: -1,
	}

	for i := 0; i < s.opts.MaxPosts; i++ {
		post, err := s.step(sim, i)
		if err != nil {
			return nil, err
		}
		s.emit(sim, post)

		if sim.thread.TotalWordCount > minimumWords {
			break
		}
	}
	if sim.pager.Flush() {
		pages := sim.pager.Pages()
		s.rec.PageClosed(pages[len(pages)-1])
	}

	sim.thread.Pages = sim.pager.Pages()
	sim.thread.OriginalPoster = sim.op
	logger.Log.Info("thread generated",
		"thread", sim.thread.Id,
		"posts", len(sim.thread.Posts),
		"pages", len(sim.thread.Pages),
		"words", sim.thread.TotalWordCount,
		"images", len(sim.thread.ImagePool))
	return sim.thread, nil
}

// step builds post i (0-based) without touching the thread.
func (s *Simulator) step(sim *simulation, i int) (*domain.Post, error) {
	author, err := s.selectAuthor(sim, i)
	if err != nil {
		return nil, err
	}
	s.advanceClock(sim, i)
	role := classifyRole(sim, i, author)

	model, err := s.blend(role, s.users[author])
	if err != nil {
		return nil, err
	}

	post := &domain.Post{
		Index:          i + 1,
		Author:         s.users[author],
		Timestamp:      sim.clock,
		IsOriginalPost: author == sim.op,
		Role:           role,
	}

	// decided against the slots as they stood before this post's paragraphs
	quote := s.pickQuote(sim)
	post.Content = s.composeContent(sim, post, model)
	if quote != nil {
		post.Quote = quote
		sim.lastQuoted = quote
	}
	return post, nil
}

func (s *Simulator) emit(sim *simulation, post *domain.Post) {
	sim.thread.Posts = append(sim.thread.Posts, post)
	sim.thread.TotalWordCount += post.WordCount()
	s.rec.PostEmitted(post)

	logger.Log.Debug("post emitted",
		"index", post.Index,
		"author", post.Author.Username,
		"role", post.Role.String(),
		"words", post.WordCount(),
		"total_words", sim.thread.TotalWordCount)

	if sim.pager.Add(post) {
		pages := sim.pager.Pages()
		s.rec.PageClosed(pages[len(pages)-1])
	}
}

func classifyRole(sim *simulation, i int, author domain.UserId) domain.Role {
	switch {
	case i == 0:
		return domain.RoleOpener
	case author == sim.op:
		return domain.RoleAuthorUpdate
	default:
		return domain.RoleReply
	}
}

func (s *Simulator) blend(role domain.Role, author domain.User) (textmodel.Model, error) {
	key := blendKey{role: role, postCount: author.PostCount}
	if m, ok := s.blends[key]; ok {
		return m, nil
	}
	m, err := textmodel.Blend(
		[]textmodel.Model{s.models.Technical, s.models.forRole(role)},
		[]float64{float64(author.PostCount), s.opts.RoleWeight},
	)
	if err != nil {
		return nil, fmt.Errorf("blend models for %s: %w", author.Username, err)
	}
	s.blends[key] = m
	return m, nil
}
