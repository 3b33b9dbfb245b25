package search

import "runtime"

type config struct {
	blockSize        uint64
	maxWorkers       int
	minPartitionSize uint64
}

func newConfig(opts []Option) config {
	cfg := config{
		blockSize:        DefaultBlockSize,
		maxWorkers:       runtime.NumCPU(),
		minPartitionSize: DefaultMinPartitionSize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Option tunes a searcher. Zero values are kept as given and surface as
// error entries in the search result rather than being corrected silently.
type Option func(*config)

// WithBlockSize sets how many bytes are read from the source per block.
// Default 0x1000.
func WithBlockSize(n uint64) Option {
	return func(c *config) { c.blockSize = n }
}

// WithMaxWorkers caps the number of concurrent workers of a Parallel
// searcher. Default runtime.NumCPU().
func WithMaxWorkers(n int) Option {
	return func(c *config) { c.maxWorkers = n }
}

// WithMinPartitionSize sets the minimum range size assigned to one worker;
// smaller ranges use fewer workers or run inline. Default 0x10000.
func WithMinPartitionSize(n uint64) Option {
	return func(c *config) { c.minPartitionSize = n }
}
