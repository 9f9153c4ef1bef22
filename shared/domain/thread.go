package domain

import (
	"sort"

	"github.com/google/uuid"
)

type Page struct {
	Index PageIndex // 1-based
	Posts []*Post
}

type Thread struct {
	Id             uuid.UUID
	Users          []User
	OriginalPoster UserId
	Posts          []*Post
	Pages          []Page
	TotalWordCount int
	ImagePool      ImagePool
}

// ImagePool is the set of image ids already attached somewhere in the thread.
type ImagePool map[ImageId]struct{}

func (p ImagePool) Has(id ImageId) bool {
	_, ok := p[id]
	return ok
}

func (p ImagePool) Add(id ImageId) {
	p[id] = struct{}{}
}

// Ids returns the used ids in ascending order.
func (p ImagePool) Ids() []ImageId {
	ids := make([]ImageId, 0, len(p))
	for id := range p {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
