package main

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/HootingYard/ubercoordinator/internal/domain/config"
	"github.com/HootingYard/ubercoordinator/internal/logging"
)

type globalFlags struct {
	config    string
	logLevel  string
	logFormat string
}

type commandContext struct {
	flags *globalFlags

	configOnce sync.Once
	config     config.Config
	configErr  error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

// ensureConfig loads the --config file, or ubercoordinator.yaml if present,
// over the defaults.
func (c *commandContext) ensureConfig() (config.Config, error) {
	c.configOnce.Do(func() {
		path := strings.TrimSpace(c.flags.config)
		if path == "" {
			c.config, c.configErr = config.LoadOrDefault(config.DefaultFile)
			return
		}
		c.config, c.configErr = config.Load(path)
	})
	return c.config, c.configErr
}

func (c *commandContext) logger(w io.Writer) (*slog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	return logging.New(logging.Options{
		Level:  c.flags.logLevel,
		Format: c.flags.logFormat,
		Output: w,
	})
}
