package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itchan-dev/threadsim/shared/domain"
)

func TestGeneration(t *testing.T) {
	g := New()

	g.PostEmitted(&domain.Post{
		Role:    domain.RoleOpener,
		Content: []domain.ParagraphBlock{{Sentences: []string{"one two three"}}},
	})
	g.PostEmitted(&domain.Post{
		Role:    domain.RoleReply,
		Quote:   &domain.Quote{Paragraph: domain.ParagraphBlock{Sentences: []string{"one two three"}}},
		Content: []domain.ParagraphBlock{{Sentences: []string{"four"}}, {}},
	})
	g.SentenceMissed()
	g.ImageAttached(4)
	g.PageClosed(domain.Page{Index: 1})

	assert.Equal(t, 1.0, testutil.ToFloat64(g.posts.WithLabelValues("opener")))
	assert.Equal(t, 1.0, testutil.ToFloat64(g.posts.WithLabelValues("reply")))
	assert.Equal(t, 0.0, testutil.ToFloat64(g.posts.WithLabelValues("author_update")))
	assert.Equal(t, 7.0, testutil.ToFloat64(g.wordsGenerated))
	assert.Equal(t, 3.0, testutil.ToFloat64(g.paragraphsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(g.quotesEmbedded))
	assert.Equal(t, 1.0, testutil.ToFloat64(g.sentenceMisses))
	assert.Equal(t, 1.0, testutil.ToFloat64(g.imagesAttached))
	assert.Equal(t, 1.0, testutil.ToFloat64(g.pagesClosed))
}

func TestGeneration_IndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.SentenceMissed()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.sentenceMisses))
}

func TestWriteTextfile(t *testing.T) {
	g := New()
	g.PageClosed(domain.Page{Index: 1})

	path := filepath.Join(t.TempDir(), "threadsim.prom")
	require.NoError(t, g.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "threadsim_pages_total 1")
}
