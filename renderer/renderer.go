package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/snagy/rustrace/log"
	"github.com/snagy/rustrace/scene"
	"github.com/snagy/rustrace/tracer"
	"github.com/snagy/rustrace/tracer/cpu"
	"golang.org/x/sync/errgroup"
)

type Renderer interface {
	// Render frame and return its RGB pixels, 3 bytes per pixel, with the
	// top image row first.
	Render(ctx context.Context) ([]uint8, error)

	// Shutdown renderer and any attached tracer.
	Close()

	// Get render statistics.
	Stats() FrameStats
}

// The default renderer splits frames into blocks using a BlockScheduler and
// distributes them to a pool of tracers.
type defaultRenderer struct {
	logger log.Logger

	sc        *scene.Scene
	camera    *scene.Camera
	scheduler tracer.BlockScheduler
	tracers   []tracer.Tracer
	options   Options

	stats FrameStats
}

// Create a new renderer backed by opts.Workers cpu tracers.
func NewDefault(sc *scene.Scene, camera *scene.Camera, scheduler tracer.BlockScheduler, opts Options) (Renderer, error) {
	opts = opts.withDefaults()

	tracers := make([]tracer.Tracer, opts.Workers)
	for idx := range tracers {
		tracers[idx] = cpu.NewTracer(fmt.Sprintf("cpu-%d", idx), int(opts.MaxDepth))
	}

	return NewWithTracers(sc, camera, scheduler, tracers, opts)
}

// Create a new renderer that distributes blocks to the supplied tracers.
func NewWithTracers(sc *scene.Scene, camera *scene.Camera, scheduler tracer.BlockScheduler, tracers []tracer.Tracer, opts Options) (Renderer, error) {
	if sc == nil {
		return nil, ErrSceneNotDefined
	}
	if camera == nil {
		return nil, ErrCameraNotDefined
	}
	if len(tracers) == 0 {
		return nil, ErrNoTracers
	}
	if scheduler == nil {
		scheduler = tracer.ScanlineScheduler()
	}

	r := &defaultRenderer{
		logger:    log.New("renderer"),
		sc:        sc,
		camera:    camera,
		scheduler: scheduler,
		tracers:   tracers,
		options:   opts.withDefaults(),
	}

	for _, tr := range tracers {
		if err := tr.Setup(sc, camera); err != nil {
			r.Close()
			return nil, err
		}
	}

	r.logger.Infof("attached %d tracers; frame %dx%d, %d spp, seed %d", len(tracers), r.options.FrameW, r.options.FrameH, r.options.SamplesPerPixel, r.options.Seed)
	return r, nil
}

// Shutdown renderer and any attached tracer.
func (r *defaultRenderer) Close() {
	for _, tr := range r.tracers {
		tr.Close()
	}
	r.tracers = nil
}

// Check that every frame row is assigned to exactly one block.
func coversFrame(blocks []tracer.Block, frameH uint32) bool {
	covered := make([]bool, frameH)
	var rows uint32
	for _, block := range blocks {
		if block.Y >= frameH || block.H > frameH-block.Y {
			return false
		}
		for y := block.Y; y < block.Y+block.H; y++ {
			if covered[y] {
				return false
			}
			covered[y] = true
		}
		rows += block.H
	}
	return rows == frameH
}

// Get render statistics.
func (r *defaultRenderer) Stats() FrameStats {
	return r.stats
}

// Render frame. Blocks are fed to one worker per tracer; the frame is only
// assembled once every worker has exited.
func (r *defaultRenderer) Render(ctx context.Context) ([]uint8, error) {
	if len(r.tracers) == 0 {
		return nil, ErrNoTracers
	}

	start := time.Now()
	frameW, frameH := r.options.FrameW, r.options.FrameH

	blocks := r.scheduler.Schedule(len(r.tracers), frameH)
	if !coversFrame(blocks, frameH) {
		return nil, ErrIncompleteFrame
	}

	requests := make([]*tracer.BlockRequest, len(blocks))
	for idx, block := range blocks {
		requests[idx] = tracer.NewBlockRequest(block, frameW, frameH, r.options.SamplesPerPixel, r.options.Seed)
	}

	for _, tr := range r.tracers {
		tr.ResetStats()
	}

	r.logger.Noticef("rendering %dx%d frame (%d blocks, %d tracers)", frameW, frameH, len(blocks), len(r.tracers))

	g, gctx := errgroup.WithContext(ctx)
	reqChan := make(chan *tracer.BlockRequest)
	g.Go(func() error {
		defer close(reqChan)
		for _, req := range requests {
			select {
			case reqChan <- req:
			case <-gctx.Done():
				return nil
			}
		}
		return nil
	})
	for _, tr := range r.tracers {
		tr := tr
		g.Go(func() error {
			for req := range reqChan {
				if gctx.Err() != nil {
					return nil
				}
				if err := tr.Trace(req); err != nil {
					return err
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ErrInterrupted
	}

	// Block rows are stored bottom-up; the frame is stored top-down
	rowBytes := frameW * 3
	frame := make([]uint8, frameW*frameH*3)
	for _, req := range requests {
		for row := uint32(0); row < req.H; row++ {
			dst := (frameH - 1 - (req.Y + row)) * rowBytes
			copy(frame[dst:dst+rowBytes], req.Pixels[row*rowBytes:(row+1)*rowBytes])
		}
	}

	r.updateStats(time.Since(start))
	r.logger.Noticef("rendered frame in %s", r.stats.RenderTime)
	return frame, nil
}

func (r *defaultRenderer) updateStats(renderTime time.Duration) {
	r.stats.RenderTime = renderTime
	r.stats.Tracers = make([]TracerStat, len(r.tracers))
	for idx, tr := range r.tracers {
		stats := tr.Stats()
		r.stats.Tracers[idx] = TracerStat{
			Id:           tr.Id(),
			Blocks:       stats.Blocks,
			Rows:         stats.Rows,
			FramePercent: 100.0 * float32(stats.Rows) / float32(r.options.FrameH),
			RenderTime:   stats.RenderTime,
		}
	}
}
