package cssyntax

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Config holds the in-process toggles accepted by the package's entry
// points. There is no configuration file in this package's scope, so
// Config is only ever built through functional options.
type Config struct {
	Debug  bool
	Logger *logrus.Logger
}

// Option configures a parse call.
type Option func(*Config)

// WithDebug logs each recoverable anomaly at logrus Debug level instead
// of Warn level. The same anomalies are logged either way.
func WithDebug(debug bool) Option {
	return func(c *Config) { c.Debug = debug }
}

// WithLogger overrides the default discarding logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(c *Config) { c.Logger = logger }
}

func newConfig(opts ...Option) *Config {
	c := &Config{Logger: discardingLogger()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func discardingLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
