package cpu

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/chewxy/math32"
	"github.com/snagy/rustrace/log"
	"github.com/snagy/rustrace/scene"
	"github.com/snagy/rustrace/tracer"
	"github.com/snagy/rustrace/types"
)

const invGamma float32 = 1.0 / 2.2

type cpuTracer struct {
	logger log.Logger

	sync.Mutex

	// The tracer id.
	id string

	// Path length cutoff.
	maxDepth int

	sc     *scene.Scene
	camera *scene.Camera

	// Statistics for last rendered frame.
	stats *tracer.Stats
}

// Create a new cpu tracer. A non-positive maxDepth selects DefaultMaxDepth.
func NewTracer(id string, maxDepth int) tracer.Tracer {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	return &cpuTracer{
		logger:   log.New(fmt.Sprintf("cpu tracer (%s)", id)),
		id:       id,
		maxDepth: maxDepth,
		stats:    &tracer.Stats{},
	}
}

// Get tracer id.
func (tr *cpuTracer) Id() string {
	return tr.id
}

// Attach the scene and camera used for tracing blocks.
func (tr *cpuTracer) Setup(sc *scene.Scene, camera *scene.Camera) error {
	if sc == nil {
		return ErrSceneNotDefined
	}
	if camera == nil {
		return ErrCameraNotDefined
	}

	tr.Lock()
	defer tr.Unlock()
	tr.sc = sc
	tr.camera = camera
	return nil
}

// Trace a block of rows. Each block uses its own random number generator
// seeded from the request seed and the block position so the traced values
// do not depend on which tracer processes the block.
func (tr *cpuTracer) Trace(req *tracer.BlockRequest) error {
	tr.Lock()
	defer tr.Unlock()

	if tr.sc == nil || tr.camera == nil {
		return ErrNotSetup
	}
	if req.FrameW == 0 || req.FrameH == 0 || req.SamplesPerPixel == 0 {
		return ErrInvalidRequest
	}
	if req.Y+req.H > req.FrameH || uint32(len(req.Pixels)) < req.FrameW*req.H*3 {
		return ErrInvalidRequest
	}

	start := time.Now()
	rng := rand.New(rand.NewSource(BlockSeed(req.Seed, req.Y)))

	frameW := float32(req.FrameW)
	frameH := float32(req.FrameH)
	invSpp := 1.0 / float32(req.SamplesPerPixel)
	offset := 0
	for y := req.Y; y < req.Y+req.H; y++ {
		for x := uint32(0); x < req.FrameW; x++ {
			var col types.Vec3
			for s := uint32(0); s < req.SamplesPerPixel; s++ {
				u := (float32(x) + rng.Float32()) / frameW
				v := (float32(y) + rng.Float32()) / frameH
				col = col.Add(Color(tr.camera.GetRay(u, v, rng), tr.sc, 0, tr.maxDepth, rng))
			}

			col = col.Mul(invSpp).Pow(invGamma)
			req.Pixels[offset] = toByte(col[0])
			req.Pixels[offset+1] = toByte(col[1])
			req.Pixels[offset+2] = toByte(col[2])
			offset += 3
		}
	}

	elapsed := time.Since(start)
	tr.stats.Blocks++
	tr.stats.Rows += req.H
	tr.stats.RenderTime += elapsed
	tr.logger.Debugf("traced rows [%d, %d) in %s", req.Y, req.Y+req.H, elapsed)
	return nil
}

// Reset the statistics collected for the last frame.
func (tr *cpuTracer) ResetStats() {
	tr.Lock()
	defer tr.Unlock()
	*tr.stats = tracer.Stats{}
}

// Retrieve last frame statistics.
func (tr *cpuTracer) Stats() *tracer.Stats {
	tr.Lock()
	defer tr.Unlock()
	stats := *tr.stats
	return &stats
}

// Shutdown and cleanup tracer.
func (tr *cpuTracer) Close() {
	tr.Lock()
	defer tr.Unlock()
	tr.sc = nil
	tr.camera = nil
}

// Derive the random seed for the block that starts at row y.
func BlockSeed(seed int64, y uint32) int64 {
	// splitmix64 finalizer
	h := uint64(y) + 0x9e3779b97f4a7c15
	h = (h ^ (h >> 30)) * 0xbf58476d1ce4e5b9
	h = (h ^ (h >> 27)) * 0x94d049bb133111eb
	h ^= h >> 31
	return seed ^ int64(h)
}

// Convert a gamma corrected channel value to a byte. Values outside the
// displayable range saturate.
func toByte(c float32) uint8 {
	v := c * 255.99
	if math32.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
