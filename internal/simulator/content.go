package simulator

import (
	"github.com/itchan-dev/threadsim/internal/rng"
	"github.com/itchan-dev/threadsim/internal/textmodel"
	"github.com/itchan-dev/threadsim/shared/domain"
)

const (
	openerParagraphs = 6
	maxParagraphs    = 6

	decorationChance = 0.05
	imageChance      = 0.3
	// opener paragraphs after this index always want an image
	openerImageAfter = 2
	quotableChance   = 0.5
	quoteChance      = 0.1

	// uniform redraws before falling back to the lowest free image id
	maxImageDraws = 10000
)

var (
	// favours short paragraphs
	sentenceCounts = []int{1, 1, 1, 2, 2, 2, 3, 3, 4, 4, 5}

	decorations = []string{
		"😀", "🤣", "🙂", "🧐", "🤔", "😲", "😉", "🙄", "😕", "😆",
		"👀", "🤖", "🦕", "🌿", "🍄",
	}
)

func (s *Simulator) composeContent(sim *simulation, post *domain.Post, model textmodel.Model) []domain.ParagraphBlock {
	count := openerParagraphs
	if post.Role != domain.RoleOpener {
		count = s.r.Between(1, maxParagraphs)
	}

	content := make([]domain.ParagraphBlock, 0, count)
	for p := 0; p < count; p++ {
		para := s.composeParagraph(model)
		s.rotateQuote(sim, post, p, para)
		s.maybeAttachImage(sim, post, p, &para)
		content = append(content, para)
	}
	return content
}

func (s *Simulator) composeParagraph(model textmodel.Model) domain.ParagraphBlock {
	var para domain.ParagraphBlock
	n := rng.Choice(s.r, sentenceCounts)
	for i := 0; i < n; i++ {
		if sentence, ok := model.Sample(s.r); ok {
			para.Sentences = append(para.Sentences, sentence)
		} else {
			// a miss just shortens the paragraph
			s.rec.SentenceMissed()
		}
		if s.r.Chance(decorationChance) {
			emoji := rng.Choice(s.r, decorations)
			para.Emoji = emoji
			if last := len(para.Sentences) - 1; last >= 0 {
				para.Sentences[last] += " " + emoji
			} else {
				para.Sentences = append(para.Sentences, emoji)
			}
		}
	}
	return para
}

// rotateQuote sometimes makes para the next quotable paragraph. Only one slot
// is kept, so most flagged paragraphs are replaced before anyone quotes them.
func (s *Simulator) rotateQuote(sim *simulation, post *domain.Post, p int, para domain.ParagraphBlock) {
	if !s.r.Chance(quotableChance) {
		return
	}
	sim.nextQuote = &domain.Quote{
		PostIndex:      post.Index,
		ParagraphIndex: p + 1,
		Author:         post.Author.Username,
		Timestamp:      post.Timestamp,
		Paragraph: domain.ParagraphBlock{
			Sentences: append([]string(nil), para.Sentences...),
			Emoji:     para.Emoji,
		},
	}
}

func (s *Simulator) pickQuote(sim *simulation) *domain.Quote {
	if !s.r.Chance(quoteChance) {
		return nil
	}
	next := sim.nextQuote
	if next == nil || next == sim.lastQuoted {
		return nil
	}
	return next
}

func (s *Simulator) maybeAttachImage(sim *simulation, post *domain.Post, p int, para *domain.ParagraphBlock) {
	wantsImage := (post.Role == domain.RoleOpener && p > openerImageAfter) || s.r.Chance(imageChance)
	if !wantsImage || !post.IsOriginalPost {
		return
	}
	pool := sim.thread.ImagePool
	if len(pool) >= s.opts.ImagePoolSize {
		return
	}

	id := s.drawImage(pool)
	pool.Add(id)
	para.Image = &id
	s.rec.ImageAttached(id)
}

// drawImage returns an unused id in [1, ImagePoolSize]; the pool must not be full.
func (s *Simulator) drawImage(pool domain.ImagePool) domain.ImageId {
	for attempt := 0; attempt < maxImageDraws; attempt++ {
		id := s.r.Between(1, s.opts.ImagePoolSize)
		if !pool.Has(id) {
			return id
		}
	}
	for id := 1; id <= s.opts.ImagePoolSize; id++ {
		if !pool.Has(id) {
			return id
		}
	}
	return 0
}
