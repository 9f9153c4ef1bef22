// Package users creates the synthetic membership of a thread.
package users

import (
	"fmt"

	"github.com/itchan-dev/threadsim/internal/rng"
	"github.com/itchan-dev/threadsim/shared/domain"
	internal_errors "github.com/itchan-dev/threadsim/shared/errors"
	"github.com/itchan-dev/threadsim/shared/logger"
)

const (
	postCountMin = 1
	postCountMax = 7777
	// minimum of four draws, so relatively few users have high post counts
	postCountDraws = 4
)

// Generator produces candidate usernames.
type Generator func(r *rng.Rand) string

type Pool struct {
	users  []domain.User
	byName map[domain.Username]domain.UserId
}

// NewPool draws n unique users. retries bounds how many collisions are tolerated
// per user before the name space is considered exhausted.
func NewPool(r *rng.Rand, n, retries int) (*Pool, error) {
	return NewPoolWith(r, n, retries, GenerateUsername)
}

func NewPoolWith(r *rng.Rand, n, retries int, generate Generator) (*Pool, error) {
	if n < 1 {
		return nil, &internal_errors.ConfigError{Field: "users", Message: fmt.Sprintf("must be positive, got %d", n)}
	}

	p := &Pool{
		users:  make([]domain.User, 0, n),
		byName: make(map[domain.Username]domain.UserId, n),
	}
	for id := 0; id < n; id++ {
		name, err := p.uniqueName(r, retries, generate)
		if err != nil {
			return nil, &internal_errors.ConfigError{
				Field:   "users",
				Message: fmt.Sprintf("only %d of %d unique usernames after %d retries", id, n, retries),
				Err:     err,
			}
		}
		postCount := r.MinOf(postCountDraws, postCountMin, postCountMax)
		p.byName[name] = id
		p.users = append(p.users, domain.NewUser(id, name, postCount))
	}

	logger.Log.Debug("user pool ready", "users", n)
	return p, nil
}

func (p *Pool) uniqueName(r *rng.Rand, retries int, generate Generator) (string, error) {
	for attempt := 0; attempt <= retries; attempt++ {
		name := generate(r)
		if _, taken := p.byName[name]; !taken {
			return name, nil
		}
	}
	return "", internal_errors.ErrNameSpaceExhausted
}

// Users returns the users in generation order; a user's index is its Id.
func (p *Pool) Users() []domain.User {
	return p.users
}

// PostCounts maps each username to its lifetime post count.
func (p *Pool) PostCounts() map[domain.Username]int {
	counts := make(map[domain.Username]int, len(p.users))
	for _, u := range p.users {
		counts[u.Username] = u.PostCount
	}
	return counts
}

func (p *Pool) Lookup(name domain.Username) (domain.User, bool) {
	id, ok := p.byName[name]
	if !ok {
		return domain.User{}, false
	}
	return p.users[id], true
}

func (p *Pool) Len() int {
	return len(p.users)
}
