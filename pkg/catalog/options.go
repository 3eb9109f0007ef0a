package catalog

import (
	"github.com/go-logr/logr"
	"github.com/henderiw/rangetype/pkg/rangetype"
)

const (
	// DefaultSize bounds the id space when no size is configured.
	DefaultSize uint64 = 1 << 16
	// FirstDynamicID is where ClaimDynamic starts looking for a free id.
	FirstDynamicID rangetype.TypeID = 16384

	btreeDegree = 8
)

// ValidationFn is called for every claim except the initial entries.
type ValidationFn func(desc rangetype.Descriptor) error

type config struct {
	size       uint64
	validateFn ValidationFn
	log        logr.Logger
}

type Option func(*config)

// WithSize sets the size of the id space; valid ids are below size.
func WithSize(size uint64) Option {
	return func(c *config) {
		c.size = size
	}
}

func WithValidation(fn ValidationFn) Option {
	return func(c *config) {
		c.validateFn = fn
	}
}

// WithLogger sets the logger. Claims and releases are logged at V(1).
func WithLogger(log logr.Logger) Option {
	return func(c *config) {
		c.log = log
	}
}

func newConfig(opts []Option) config {
	c := config{
		size: DefaultSize,
		log:  logr.Discard(),
	}
	for _, o := range opts {
		o(&c)
	}
	return c
}
