// Package cli implements the threadsim command.
package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/itchan-dev/threadsim/internal/setup"
	"github.com/itchan-dev/threadsim/shared/config"
	"github.com/itchan-dev/threadsim/shared/logger"
)

func Execute() error {
	return newRootCmd(os.Stdout).Execute()
}

func newRootCmd(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "threadsim [minimum-word-count]",
		Short: "Generate a synthetic multi-page forum thread",
		Long: "threadsim simulates a forum thread, post by post, until it holds more than\n" +
			"minimum-word-count words (default " + strconv.Itoa(config.DefaultMinimumWordCount) + ") or reaches its post cap.\n" +
			"Settings are read from the YAML file named by $" + config.EnvPath + ".",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromEnv()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				n, err := parseWordCount(args[0])
				if err != nil {
					return err
				}
				cfg.MinimumWordCount = n
			}
			return run(cfg, out)
		},
	}
	return cmd
}

func parseWordCount(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("minimum word count must be an integer, got %q", arg)
	}
	if n < 1 {
		return 0, fmt.Errorf("minimum word count must be positive, got %d", n)
	}
	return n, nil
}

func run(cfg *config.Config, out io.Writer) error {
	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		return err
	}

	thread, err := deps.Simulator.Run(cfg.MinimumWordCount)
	if err != nil {
		return err
	}

	if deps.Renderer != nil {
		if _, err := deps.Renderer.Render(thread); err != nil {
			return err
		}
	}
	if cfg.Metrics.Textfile != "" {
		if err := deps.Metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			logger.Log.Warn("failed to write metrics textfile", "path", cfg.Metrics.Textfile, "error", err)
		}
	}

	_, err = fmt.Fprintln(out, setup.Summary(len(thread.Pages), len(thread.Posts), thread.TotalWordCount))
	return err
}
