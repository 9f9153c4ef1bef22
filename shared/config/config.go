package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"

	internal_errors "github.com/itchan-dev/threadsim/shared/errors"
)

// EnvPath names the environment variable holding an optional config file path.
const EnvPath = "THREADSIM_CONFIG"

const DefaultMinimumWordCount = 50000

type Config struct {
	Seed             uint64 `yaml:"seed"` // 0 derives a seed from the clock
	MinimumWordCount int    `yaml:"minimum_word_count" validate:"min=1"`
	Users            int    `yaml:"users" validate:"min=2"`
	PostsPerPage     int    `yaml:"posts_per_page" validate:"min=1"`
	MaxPosts         int    `yaml:"max_posts" validate:"min=1"`
	ImagePoolSize    int    `yaml:"image_pool_size" validate:"min=0,max=100"`
	UsernameRetries  int    `yaml:"username_retries" validate:"min=1"`
	AuthorRetries    int    `yaml:"author_retries" validate:"min=1"`
	CorpusDir        string `yaml:"corpus_dir"` // empty uses the embedded corpora

	Model   Model   `yaml:"model"`
	Log     Log     `yaml:"log"`
	Render  Render  `yaml:"render"`
	Metrics Metrics `yaml:"metrics"`
}

type Model struct {
	StateSize       int     `yaml:"state_size" validate:"min=1,max=4"`
	Tries           int     `yaml:"tries" validate:"min=1"`
	MaxOverlapRatio float64 `yaml:"max_overlap_ratio" validate:"gt=0,lte=1"`
	MaxOverlapTotal int     `yaml:"max_overlap_total" validate:"min=1"`
	TestOutput      bool    `yaml:"test_output"`
	Tagged          bool    `yaml:"tagged"` // lexical tagging tokenizer
	RoleWeight      float64 `yaml:"role_weight" validate:"gt=0"`
}

type Log struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn warning error"`
	JSON  bool   `yaml:"json"`
}

type Render struct {
	OutputDir string `yaml:"output_dir"` // empty disables rendering
	BaseURL   string `yaml:"base_url" validate:"required"`
	Images    bool   `yaml:"images"`
}

type Metrics struct {
	Textfile string `yaml:"textfile"` // empty disables export
}

func Default() *Config {
	return &Config{
		MinimumWordCount: DefaultMinimumWordCount,
		Users:            50,
		PostsPerPage:     20,
		MaxPosts:         1000,
		ImagePoolSize:    100,
		UsernameRetries:  1000,
		AuthorRetries:    1000,
		Model: Model{
			StateSize:       2,
			Tries:           10,
			MaxOverlapRatio: 0.7,
			MaxOverlapTotal: 15,
			TestOutput:      true,
			RoleWeight:      5000,
		},
		Log:    Log{Level: "info"},
		Render: Render{BaseURL: "/pp/", Images: true},
	}
}

// Load reads configPath over the defaults. An empty path yields the defaults.
func Load(configPath string) (*Config, error) {
	cfg := Default()
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, &internal_errors.ConfigError{Message: "can't read config file " + configPath, Err: err}
		}
		if err := yaml.UnmarshalStrict(data, cfg); err != nil {
			return nil, &internal_errors.ConfigError{Message: "can't unmarshal config file", Err: err}
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromEnv loads the file named by EnvPath, if any.
func LoadFromEnv() (*Config, error) {
	return Load(os.Getenv(EnvPath))
}

func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return &internal_errors.ConfigError{
				Field:   first.Namespace(),
				Message: fmt.Sprintf("failed %q constraint (value %v)", first.Tag(), first.Value()),
			}
		}
		return &internal_errors.ConfigError{Message: "invalid config", Err: err}
	}
	return nil
}
