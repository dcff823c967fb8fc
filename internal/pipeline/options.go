package pipeline

import (
	"github.com/Iron-Ham/shuttle/internal/event"
	"github.com/Iron-Ham/shuttle/internal/logging"
	"github.com/Iron-Ham/shuttle/internal/slot"
)

// Option configures a Pipeline.
type Option func(*config)

type config struct {
	capacity int
	logger   *logging.Logger
	bus      *event.Bus
}

func defaultConfig() config {
	return config{
		capacity: slot.DefaultCapacity,
		logger:   logging.NopLogger(),
		bus:      event.NewBus(),
	}
}

// WithCapacity sets the shared buffer capacity in bytes, which is the
// maximum number of bytes moved per round. Non-positive values are
// ignored and the default capacity is kept.
func WithCapacity(capacity int) Option {
	return func(c *config) {
		if capacity > 0 {
			c.capacity = capacity
		}
	}
}

// WithLogger sets the logger used for per-round debug logging and run
// reporting. Defaults to a no-op logger.
func WithLogger(logger *logging.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithBus sets the event bus the pipeline publishes telemetry on. Use
// this to observe rounds and stage completion without coupling to the
// pipeline internals.
func WithBus(bus *event.Bus) Option {
	return func(c *config) {
		if bus != nil {
			c.bus = bus
		}
	}
}
