package tracer

import (
	"time"

	"github.com/snagy/rustrace/scene"
)

// A contiguous range of frame rows. Rows are indexed in camera space: row 0
// is the bottom of the image plane.
type Block struct {
	Y uint32
	H uint32
}

// A unit of work that is processed by a tracer.
type BlockRequest struct {
	Block

	// Frame dims.
	FrameW uint32
	FrameH uint32

	// The number of emitted rays per traced pixel.
	SamplesPerPixel uint32

	// A seed value for the random number generator used by this request.
	Seed int64

	// The private RGB output buffer for the block rows. The tracer fills
	// it with FrameW*H*3 bytes in camera row order.
	Pixels []uint8
}

// Create a block request and allocate its output buffer.
func NewBlockRequest(block Block, frameW, frameH, spp uint32, seed int64) *BlockRequest {
	return &BlockRequest{
		Block:           block,
		FrameW:          frameW,
		FrameH:          frameH,
		SamplesPerPixel: spp,
		Seed:            seed,
		Pixels:          make([]uint8, frameW*block.H*3),
	}
}

// Tracer statistics.
type Stats struct {
	// The number of blocks and rows traced during the last frame.
	Blocks uint32
	Rows   uint32

	// Time spent tracing blocks during the last frame.
	RenderTime time.Duration
}

type Tracer interface {
	// Get tracer id.
	Id() string

	// Attach the scene and camera. Both must not be modified while the
	// tracer is in use.
	Setup(sc *scene.Scene, camera *scene.Camera) error

	// Trace a block and fill its pixel buffer. Trace is never called
	// concurrently for the same tracer.
	Trace(*BlockRequest) error

	// Reset the statistics collected for the last frame.
	ResetStats()

	// Retrieve last frame statistics.
	Stats() *Stats

	// Shutdown and cleanup tracer.
	Close()
}
