package renderer

import "time"

type TracerStat struct {
	// The tracer id.
	Id string

	// The number of blocks and rows traced and the percentage of total
	// frame area they represent.
	Blocks       uint32
	Rows         uint32
	FramePercent float32

	// Time spent tracing blocks.
	RenderTime time.Duration
}

type FrameStats struct {
	// Individual tracer stats.
	Tracers []TracerStat

	// Total render time for entire frame.
	RenderTime time.Duration
}
