// Package pagination slices a thread into fixed-size pages and computes the
// navigation links shown on each page.
package pagination

import "github.com/itchan-dev/threadsim/shared/domain"

// Pager buffers posts and closes a page every size posts.
type Pager struct {
	size   int
	buffer []*domain.Post
	pages  []domain.Page
}

func NewPager(size int) *Pager {
	return &Pager{size: max(1, size)}
}

// Add appends a post and reports whether it closed a page.
func (p *Pager) Add(post *domain.Post) bool {
	p.buffer = append(p.buffer, post)
	if len(p.buffer) < p.size {
		return false
	}
	p.closePage()
	return true
}

// Flush closes any partially filled page.
func (p *Pager) Flush() bool {
	if len(p.buffer) == 0 {
		return false
	}
	p.closePage()
	return true
}

func (p *Pager) closePage() {
	p.pages = append(p.pages, domain.Page{Index: len(p.pages) + 1, Posts: p.buffer})
	p.buffer = nil
}

func (p *Pager) Pages() []domain.Page {
	return p.pages
}

// Pending is the number of posts not yet on a closed page.
func (p *Pager) Pending() int {
	return len(p.buffer)
}

// Split partitions posts into pages of size, in order.
func Split(posts []*domain.Post, size int) []domain.Page {
	p := NewPager(size)
	for _, post := range posts {
		p.Add(post)
	}
	p.Flush()
	return p.Pages()
}
