// Package corpus supplies the raw text the sentence models are trained on.
package corpus

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	internal_errors "github.com/itchan-dev/threadsim/shared/errors"
)

const (
	TechnicalFile = "corpus-science.txt" // background papers
	QueriesFile   = "corpus-queries.txt" // opening posts
	RepliesFile   = "corpus-replies.txt" // replies from other users
	UpdatesFile   = "corpus-updates.txt" // updates and replies from the original poster
)

//go:embed data/*.txt
var embedded embed.FS

type Corpora struct {
	Technical string
	Queries   string
	Replies   string
	Updates   string
}

// Load reads the four corpus files from dir. An empty dir selects the built-in corpora.
func Load(dir string) (*Corpora, error) {
	if dir == "" {
		return Embedded()
	}
	return load(func(name string) ([]byte, error) {
		return os.ReadFile(filepath.Join(dir, name))
	})
}

func Embedded() (*Corpora, error) {
	return load(func(name string) ([]byte, error) {
		return embedded.ReadFile("data/" + name)
	})
}

func load(read func(name string) ([]byte, error)) (*Corpora, error) {
	var c Corpora
	targets := []struct {
		name string
		dst  *string
	}{
		{TechnicalFile, &c.Technical},
		{QueriesFile, &c.Queries},
		{RepliesFile, &c.Replies},
		{UpdatesFile, &c.Updates},
	}
	for _, t := range targets {
		data, err := read(t.name)
		if err != nil {
			return nil, &internal_errors.ConfigError{Field: t.name, Message: "can't read corpus", Err: err}
		}
		text := string(data)
		if strings.TrimSpace(text) == "" {
			return nil, &internal_errors.ConfigError{Field: t.name, Message: "corpus is empty", Err: internal_errors.ErrEmptyCorpus}
		}
		*t.dst = text
	}
	return &c, nil
}

// String summarises corpus sizes for logging.
func (c *Corpora) String() string {
	return fmt.Sprintf("technical=%dw queries=%dw replies=%dw updates=%dw",
		len(strings.Fields(c.Technical)), len(strings.Fields(c.Queries)),
		len(strings.Fields(c.Replies)), len(strings.Fields(c.Updates)))
}
