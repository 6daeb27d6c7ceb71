package source

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/l7mp/rxcollections/pkg/metrics"
	"github.com/l7mp/rxcollections/pkg/snapshot"
)

// Option configures a source or an operator.
type Option func(*Config)

// Config is the resolved configuration of a source.
type Config struct {
	// Name identifies the collection in logs and metrics.
	Name string
	// Logger is the base logger; a zero Logger discards logs.
	Logger logr.Logger
	// Metrics receives instrumentation; nil disables it.
	Metrics *metrics.Metrics

	equal    any
	deferred bool
}

// WithName sets the collection name.
func WithName(name string) Option {
	return func(c *Config) { c.Name = name }
}

// WithLogger sets the logger.
func WithLogger(logger logr.Logger) Option {
	return func(c *Config) { c.Logger = logger }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Config) { c.Metrics = m }
}

// WithEqual sets the element equality, or the value equality for dictionaries. The element type
// must match the source; a mismatching equality is ignored and snapshot.DefaultEqual is used.
func WithEqual[T any](eq snapshot.EqualFunc[T]) Option {
	return func(c *Config) { c.equal = eq }
}

// Deferred makes a source silent until its first mutation: subscribers receive nothing until
// then, and the first mutation is published even if it leaves the collection empty.
func Deferred() Option {
	return func(c *Config) { c.deferred = true }
}

// NewConfig resolves opts on top of the defaults for the given collection kind.
func NewConfig(kind string, opts ...Option) Config {
	c := Config{}
	for _, o := range opts {
		o(&c)
	}
	if c.Name == "" {
		c.Name = fmt.Sprintf("%s-%s", kind, uuid.NewString()[:8])
	}
	if c.Logger.GetSink() == nil {
		c.Logger = logr.Discard()
	}
	return c
}

// Options returns an option that reproduces c.
func (c Config) Options() Option {
	return func(d *Config) { *d = c }
}

func equalFor[T any](c Config) snapshot.EqualFunc[T] {
	if c.equal == nil {
		return snapshot.DefaultEqual[T]
	}
	if eq, ok := c.equal.(snapshot.EqualFunc[T]); ok {
		return eq
	}
	c.Logger.Info("ignoring equality of mismatching element type", "collection", c.Name,
		"type", fmt.Sprintf("%T", c.equal))
	return snapshot.DefaultEqual[T]
}
