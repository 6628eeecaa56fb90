// Package gen is the deterministic synthetic-entity engine. Every generator
// is a pure function of (config, index): nothing is stored, nothing is
// cached, and any index up to the configured total is servable in constant
// time and memory. Determinism is a compatibility contract: the draw order
// inside each generator is fixed and documented, because reordering draws
// changes every entity ever generated.
package gen

import "time"

// DefaultSeed is the base seed used when none is configured.
const DefaultSeed = 12345

// DefaultMaxPageSize caps a single page request.
const DefaultMaxPageSize = 500

// Config carries every knob the generators read. It is a plain value: the
// service layer owns the mutable copy and hands an immutable snapshot to each
// call, which is what makes concurrent use safe.
type Config struct {
	Seed     int64
	BaseTime time.Time // anchor for all generated timestamps

	WorkflowTotal        int
	PoolTotal            int
	ResourcePerPoolTotal int
	ResourceGlobalTotal  int
	BucketTotal          int
	DatasetTotal         int

	MaxPageSize int
}

// DefaultConfig returns the configuration the mock server boots with. The
// base time is a fixed instant, not time.Now(), so that two processes started
// a week apart still agree on every byte of output.
func DefaultConfig() Config {
	return Config{
		Seed:                 DefaultSeed,
		BaseTime:             time.Date(2024, time.March, 18, 12, 0, 0, 0, time.UTC),
		WorkflowTotal:        2500,
		PoolTotal:            8,
		ResourcePerPoolTotal: 24,
		ResourceGlobalTotal:  192,
		BucketTotal:          12,
		DatasetTotal:         40,
		MaxPageSize:          DefaultMaxPageSize,
	}
}

// Generator produces entities for one configuration snapshot. It holds no
// mutable state; methods may be called concurrently.
type Generator struct {
	cfg Config
}

// New returns a Generator over the given config snapshot.
func New(cfg Config) *Generator {
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = DefaultMaxPageSize
	}
	return &Generator{cfg: cfg}
}

// Config returns the snapshot this generator was built over.
func (g *Generator) Config() Config {
	return g.cfg
}
