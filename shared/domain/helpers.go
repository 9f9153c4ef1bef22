package domain

import (
	"fmt"
	"strings"
	"time"
)

// WordCount counts whitespace separated words across the paragraph's sentences.
func (p ParagraphBlock) WordCount() int {
	n := 0
	for _, s := range p.Sentences {
		n += len(strings.Fields(s))
	}
	return n
}

// WordCount includes the quoted paragraph.
func (p *Post) WordCount() int {
	n := 0
	if p.Quote != nil {
		n += p.Quote.Paragraph.WordCount()
	}
	for _, para := range p.Content {
		n += para.WordCount()
	}
	return n
}

// Images lists image ids attached to the post in paragraph order.
func (p *Post) Images() []ImageId {
	var ids []ImageId
	for _, para := range p.Content {
		if para.Image != nil {
			ids = append(ids, *para.Image)
		}
	}
	return ids
}

// for debug
func (p *Post) String() string {
	s := fmt.Sprintf("[index:%d, author:%s, role:%s, created:%s, paragraphs:%d, words:%d", p.Index, p.Author.Username, p.Role, p.Timestamp.Format(time.Stamp), len(p.Content), p.WordCount())
	if p.Quote != nil {
		s += fmt.Sprintf(", quote:%d/%d", p.Quote.PostIndex, p.Quote.ParagraphIndex)
	}
	return s + "]"
}

func (t *Thread) String() string {
	return fmt.Sprintf("[id:%s, users:%d, posts:%d, pages:%d, words:%d, images:%d]", t.Id, len(t.Users), len(t.Posts), len(t.Pages), t.TotalWordCount, len(t.ImagePool))
}
