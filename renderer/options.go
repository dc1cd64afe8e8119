package renderer

import (
	"runtime"
	"time"
)

const (
	DefaultFrameW          = 256
	DefaultFrameH          = 256
	DefaultSamplesPerPixel = 150
	DefaultMaxDepth        = 50
	DefaultWorkers         = 16
)

type Options struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Number of samples.
	SamplesPerPixel uint32

	// Path length cutoff.
	MaxDepth uint32

	// Number of tracers that process blocks in parallel. A value of 0
	// selects the number of available CPUs.
	Workers int

	// Seed for the per-block random number generators. A value of 0
	// selects a time-based seed.
	Seed int64
}

// Replace unset or invalid values with their defaults and return the result.
func (opts Options) withDefaults() Options {
	if opts.FrameW == 0 {
		opts.FrameW = DefaultFrameW
	}
	if opts.FrameH == 0 {
		opts.FrameH = DefaultFrameH
	}
	if opts.SamplesPerPixel == 0 {
		opts.SamplesPerPixel = DefaultSamplesPerPixel
	}
	if opts.MaxDepth == 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	return opts
}
