package setup

import (
	"fmt"
	"time"

	"github.com/itchan-dev/threadsim/internal/corpus"
	"github.com/itchan-dev/threadsim/internal/metrics"
	"github.com/itchan-dev/threadsim/internal/render"
	"github.com/itchan-dev/threadsim/internal/rng"
	"github.com/itchan-dev/threadsim/internal/simulator"
	"github.com/itchan-dev/threadsim/internal/storage/fs"
	"github.com/itchan-dev/threadsim/internal/textmodel"
	"github.com/itchan-dev/threadsim/internal/users"
	"github.com/itchan-dev/threadsim/shared/config"
	internal_errors "github.com/itchan-dev/threadsim/shared/errors"
	"github.com/itchan-dev/threadsim/shared/logger"
)

// Dependencies holds everything a run needs, ready to use.
type Dependencies struct {
	Config    *config.Config
	Seed      uint64
	Simulator *simulator.Simulator
	Renderer  *render.Renderer // nil when rendering is disabled
	Metrics   *metrics.Generation
}

// SetupDependencies trains the models and builds the simulator. Every
// configuration problem surfaces here, before any post is generated.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	logger.Initialize(cfg.Log.Level, cfg.Log.JSON, nil)

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	r := rng.New(seed)
	logger.Log.Info("configuration loaded", "seed", seed, "users", cfg.Users, "corpus_dir", cfg.CorpusDir)

	corpora, err := corpus.Load(cfg.CorpusDir)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("corpora loaded", "sizes", corpora.String())

	models, err := TrainModels(corpora, ModelOptions(cfg.Model))
	if err != nil {
		return nil, err
	}

	pool, err := users.NewPool(r, cfg.Users, cfg.UsernameRetries)
	if err != nil {
		return nil, err
	}

	gen := metrics.New()
	sim, err := simulator.New(models, pool.Users(), SimulatorOptions(cfg), r, gen)
	if err != nil {
		return nil, err
	}

	deps := &Dependencies{Config: cfg, Seed: seed, Simulator: sim, Metrics: gen}
	if cfg.Render.OutputDir != "" {
		store, err := fs.New(cfg.Render.OutputDir)
		if err != nil {
			return nil, &internal_errors.ConfigError{Field: "render.output_dir", Message: "can't prepare output directory", Err: err}
		}
		deps.Renderer = render.New(store, render.Options{BaseURL: cfg.Render.BaseURL, Images: cfg.Render.Images})
	}
	return deps, nil
}

func ModelOptions(m config.Model) textmodel.Options {
	opts := textmodel.Options{
		StateSize:       m.StateSize,
		Tries:           m.Tries,
		TestOutput:      m.TestOutput,
		MaxOverlapRatio: m.MaxOverlapRatio,
		MaxOverlapTotal: m.MaxOverlapTotal,
		Tokenizer:       textmodel.WordTokenizer{},
	}
	if m.Tagged {
		opts.Tokenizer = textmodel.TaggedTokenizer{}
	}
	return opts
}

func SimulatorOptions(cfg *config.Config) simulator.Options {
	opts := simulator.DefaultOptions()
	opts.PostsPerPage = cfg.PostsPerPage
	opts.MaxPosts = cfg.MaxPosts
	opts.ImagePoolSize = cfg.ImagePoolSize
	opts.AuthorRetries = cfg.AuthorRetries
	opts.RoleWeight = cfg.Model.RoleWeight
	return opts
}

// TrainModels trains one model per corpus; an untrainable corpus is a configuration error.
func TrainModels(c *corpus.Corpora, opts textmodel.Options) (simulator.Models, error) {
	var models simulator.Models
	targets := []struct {
		name string
		text string
		dst  *textmodel.Model
	}{
		{corpus.TechnicalFile, c.Technical, &models.Technical},
		{corpus.QueriesFile, c.Queries, &models.Opener},
		{corpus.RepliesFile, c.Replies, &models.Reply},
		{corpus.UpdatesFile, c.Updates, &models.AuthorUpdate},
	}
	for _, t := range targets {
		m, err := textmodel.Train(t.text, opts)
		if err != nil {
			return simulator.Models{}, &internal_errors.ConfigError{Field: t.name, Message: "can't train model", Err: err}
		}
		*t.dst = m
	}
	logger.Log.Info("models trained", "state_size", opts.StateSize)
	return models, nil
}

// Summary is the one line a run prints.
func Summary(pages, posts, words int) string {
	return fmt.Sprintf("%d pages | %d posts | %d words", pages, posts, words)
}
