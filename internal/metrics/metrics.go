// Package metrics provides Prometheus counters describing a generated thread.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/itchan-dev/threadsim/shared/domain"
)

// Generation records simulator events on its own registry, so repeated runs
// in one process never collide on the default registerer.
type Generation struct {
	registry *prometheus.Registry

	posts           *prometheus.CounterVec
	sentenceMisses  prometheus.Counter
	imagesAttached  prometheus.Counter
	wordsGenerated  prometheus.Counter
	pagesClosed     prometheus.Counter
	quotesEmbedded  prometheus.Counter
	paragraphsTotal prometheus.Counter
}

func New() *Generation {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Generation{
		registry: reg,
		posts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "threadsim_posts_total",
				Help: "Posts generated, by role",
			},
			[]string{"role"},
		),
		sentenceMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "threadsim_sentence_misses_total",
			Help: "Sentences the blended model could not produce",
		}),
		imagesAttached: factory.NewCounter(prometheus.CounterOpts{
			Name: "threadsim_images_attached_total",
			Help: "Images attached to paragraphs",
		}),
		wordsGenerated: factory.NewCounter(prometheus.CounterOpts{
			Name: "threadsim_words_total",
			Help: "Words counted toward the thread's word target",
		}),
		pagesClosed: factory.NewCounter(prometheus.CounterOpts{
			Name: "threadsim_pages_total",
			Help: "Pages closed",
		}),
		quotesEmbedded: factory.NewCounter(prometheus.CounterOpts{
			Name: "threadsim_quotes_total",
			Help: "Posts that open with a quote",
		}),
		paragraphsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "threadsim_paragraphs_total",
			Help: "Paragraphs generated",
		}),
	}
}

func (g *Generation) PostEmitted(post *domain.Post) {
	g.posts.WithLabelValues(post.Role.String()).Inc()
	g.wordsGenerated.Add(float64(post.WordCount()))
	g.paragraphsTotal.Add(float64(len(post.Content)))
	if post.Quote != nil {
		g.quotesEmbedded.Inc()
	}
}

func (g *Generation) SentenceMissed() {
	g.sentenceMisses.Inc()
}

func (g *Generation) ImageAttached(domain.ImageId) {
	g.imagesAttached.Inc()
}

func (g *Generation) PageClosed(domain.Page) {
	g.pagesClosed.Inc()
}

// WriteTextfile writes the counters in the text exposition format, atomically,
// for the node_exporter textfile collector.
func (g *Generation) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, g.registry)
}
