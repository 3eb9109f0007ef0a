package rangeindex

import "github.com/go-logr/logr"

const (
	// DefaultMaxEntries is the node fan-out used when none is configured.
	DefaultMaxEntries = 16
	minMaxEntries     = 2
)

type config struct {
	maxEntries int
	log        logr.Logger
}

// Option configures an Index.
type Option func(*config)

// WithMaxEntries sets the number of entries a node holds before it splits.
// Values below 2 are raised to 2.
func WithMaxEntries(n int) Option {
	return func(c *config) {
		if n < minMaxEntries {
			n = minMaxEntries
		}
		c.maxEntries = n
	}
}

// WithLogger sets the logger. Splits are logged at V(1), deletes at V(2).
func WithLogger(log logr.Logger) Option {
	return func(c *config) {
		c.log = log
	}
}

func newConfig(opts []Option) config {
	c := config{
		maxEntries: DefaultMaxEntries,
		log:        logr.Discard(),
	}
	for _, o := range opts {
		o(&c)
	}
	return c
}
