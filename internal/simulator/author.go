package simulator

import (
	"fmt"
	"time"

	"github.com/itchan-dev/threadsim/shared/domain"
	internal_errors "github.com/itchan-dev/threadsim/shared/errors"
)

const (
	// chance that a redraw goes straight to the original poster
	opReturnChance = 0.2

	minIntervalMinutes = 5
	maxIntervalMinutes = 240
)

// selectAuthor draws the author of post i. The first author becomes the
// original poster; afterwards nobody posts twice in a row.
func (s *Simulator) selectAuthor(sim *simulation, i int) (domain.UserId, error) {
	if i == 0 {
		author := s.drawUser()
		sim.op = author
		sim.lastAuthor = author
		return author, nil
	}

	for attempt := 0; attempt < s.opts.AuthorRetries; attempt++ {
		var candidate domain.UserId
		if s.r.Chance(opReturnChance) {
			candidate = sim.op
		} else {
			candidate = s.drawUser()
		}
		if candidate != sim.lastAuthor {
			sim.lastAuthor = candidate
			return candidate, nil
		}
	}
	return 0, &internal_errors.ConfigError{
		Field:   "author_retries",
		Message: fmt.Sprintf("post %d: no author other than %q after %d draws", i+1, s.users[sim.lastAuthor].Username, s.opts.AuthorRetries),
		Err:     internal_errors.ErrAuthorSelection,
	}
}

// drawUser skews toward low indices so a few users dominate the thread.
func (s *Simulator) drawUser() domain.UserId {
	return s.r.MinOf(2, 0, len(s.users)-1)
}

func (s *Simulator) advanceClock(sim *simulation, i int) {
	if i == 0 {
		sim.clock = s.opts.Epoch
		return
	}
	interval := s.r.MinOf(2, minIntervalMinutes, maxIntervalMinutes)
	sim.clock = sim.clock.Add(time.Duration(interval) * time.Minute)
}
