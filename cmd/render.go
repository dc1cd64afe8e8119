package cmd

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/snagy/rustrace/asset/frame"
	"github.com/snagy/rustrace/renderer"
	"github.com/snagy/rustrace/scene"
	"github.com/snagy/rustrace/scene/reader"
	"github.com/snagy/rustrace/tracer"
	"github.com/urfave/cli"
)

const defaultBoxPct = 0.5

// Frame parameters that can be supplied as positional arguments.
type frameParams struct {
	width  uint32
	height uint32
	boxPct float32
	blockH uint32
}

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	opts, params := renderOptions(ctx)

	// Load scene
	start := time.Now()
	var sc *scene.Scene
	if sceneFile := ctx.String("scene"); sceneFile != "" {
		var err error
		if sc, err = reader.ReadScene(sceneFile); err != nil {
			return err
		}
	} else {
		sc = scene.NewProceduralScene(params.boxPct, rand.New(rand.NewSource(opts.Seed)))
	}
	logger.Noticef("scene ready in %s; %d primitives, %d materials", time.Since(start), len(sc.Primitives), len(sc.Materials))

	camCfg := sc.Camera
	if camCfg == nil {
		camCfg = scene.DefaultCamera()
	}
	camera := camCfg.Build(float32(opts.FrameW) / float32(opts.FrameH))
	logger.Debugf("%s", camera)

	scheduler, err := tracer.SchedulerByName(ctx.String("scheduler"), params.blockH)
	if err != nil {
		return err
	}

	// Create renderer
	r, err := renderer.NewDefault(sc, camera, scheduler, opts)
	if err != nil {
		return err
	}
	defer r.Close()

	renderCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	pixels, err := r.Render(renderCtx)
	if err != nil {
		return err
	}

	// Display stats
	displayFrameStats(r.Stats())

	outFile := ctx.String("out")
	if outFile == "" {
		outFile = fmt.Sprintf("out%dx%d.png", opts.FrameW, opts.FrameH)
	}
	start = time.Now()
	if err = frame.Write(outFile, pixels, opts.FrameW, opts.FrameH); err != nil {
		return err
	}
	logger.Noticef("wrote frame to %s in %s", outFile, time.Since(start))

	return nil
}

// Collect the render options from the command flags and the positional
// arguments. Non-positive counts fall back to their defaults.
func renderOptions(ctx *cli.Context) (renderer.Options, frameParams) {
	params := frameParams{
		width:  positiveDim("width", ctx.Int("width"), renderer.DefaultFrameW),
		height: positiveDim("height", ctx.Int("height"), renderer.DefaultFrameH),
		boxPct: float32(ctx.Float64("box-pct")),
		blockH: positiveDim("block-height", ctx.Int("block-height"), 1),
	}
	params = parseFrameArgs(ctx.Args(), params)

	opts := renderer.Options{
		FrameW:          params.width,
		FrameH:          params.height,
		SamplesPerPixel: positiveDim("spp", ctx.Int("spp"), renderer.DefaultSamplesPerPixel),
		MaxDepth:        positiveDim("max-depth", ctx.Int("max-depth"), renderer.DefaultMaxDepth),
		Workers:         ctx.Int("workers"),
		Seed:            resolveSeed(ctx.Int64("seed")),
	}
	return opts, params
}

// Replace a zero seed with a time-based one.
func resolveSeed(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}

// Apply the optional "width height box_pct" positional arguments. Malformed
// values keep their current setting.
func parseFrameArgs(args []string, params frameParams) frameParams {
	if len(args) > 0 {
		params.width = parseDim("width", args[0], params.width)
	}
	if len(args) > 1 {
		params.height = parseDim("height", args[1], params.height)
	}
	if len(args) > 2 {
		boxPct, err := strconv.ParseFloat(args[2], 32)
		if err != nil {
			logger.Warningf("ignoring malformed box_pct %q; using %g", args[2], params.boxPct)
		} else {
			params.boxPct = float32(boxPct)
		}
	}
	if len(args) > 3 {
		logger.Warningf("ignoring %d extra arguments", len(args)-3)
	}
	return params
}

func parseDim(name, arg string, def uint32) uint32 {
	val, err := strconv.Atoi(arg)
	if err != nil {
		logger.Warningf("ignoring malformed %s %q; using %d", name, arg, def)
		return def
	}
	return positiveDim(name, val, def)
}

func positiveDim(name string, val int, def uint32) uint32 {
	if val <= 0 {
		logger.Warningf("ignoring non-positive %s %d; using %d", name, val, def)
		return def
	}
	return uint32(val)
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Tracer", "Blocks", "Rows", "% of frame", "Render time"})
	for _, stat := range stats.Tracers {
		table.Append([]string{
			stat.Id,
			fmt.Sprintf("%d", stat.Blocks),
			fmt.Sprintf("%d", stat.Rows),
			fmt.Sprintf("%02.1f %%", stat.FramePercent),
			stat.RenderTime.String(),
		})
	}
	table.SetFooter([]string{"", "", "", "TOTAL", stats.RenderTime.String()})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
