package main

import (
	"fmt"
	"os"

	"github.com/snagy/rustrace/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	sceneFlags := []cli.Flag{
		cli.Float64Flag{
			Name:  "box-pct",
			Value: 0.5,
			Usage: "probability that a procedurally generated object is a box",
		},
		cli.Int64Flag{
			Name:  "seed",
			Value: 0,
			Usage: "random seed; 0 selects a time-based seed",
		},
	}

	app := cli.NewApp()
	app.Name = "rustrace"
	app.Usage = "render scenes of spheres and boxes using path tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "set log level (debug, info, notice, warning, error)",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame",
			Description: `
Render a single frame of a scene file or, if no scene is specified, of a
procedurally generated scene and write it to an image file. The output format
is selected by the file extension (png, ppm, bmp, tif).

The frame width, height and box percentage may also be supplied as positional
arguments. Malformed values are replaced by their defaults.`,
			ArgsUsage: "[width [height [box_pct]]]",
			Flags: append([]cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: 256,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 256,
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "spp",
					Value: 150,
					Usage: "samples per pixel",
				},
				cli.IntFlag{
					Name:  "max-depth",
					Value: 50,
					Usage: "max number of bounces per path",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: 16,
					Usage: "number of parallel tracers; 0 selects the number of cpus",
				},
				cli.StringFlag{
					Name:  "scheduler",
					Value: "scanline",
					Usage: "block scheduler (scanline, tile, even)",
				},
				cli.IntFlag{
					Name:  "block-height",
					Value: 1,
					Usage: "block height for the tile scheduler",
				},
				cli.StringFlag{
					Name:  "scene",
					Usage: "scene file or http(s) URL to render instead of the procedural scene",
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: "image filename for the rendered frame (default: out{width}x{height}.png)",
				},
			}, sceneFlags...),
			Action: cmd.RenderFrame,
		},
		{
			Name:  "scene",
			Usage: "scene tools",
			Subcommands: []cli.Command{
				{
					Name:      "generate",
					Usage:     "write the procedural scene to a YAML file",
					ArgsUsage: "scene.yaml",
					Flags:     sceneFlags,
					Action:    cmd.GenerateScene,
				},
				{
					Name:      "info",
					Usage:     "display scene information",
					ArgsUsage: "[scene_file]",
					Flags:     sceneFlags,
					Action:    cmd.ShowSceneInfo,
				},
				{
					Name:      "convert",
					Usage:     "convert JSON scene files to YAML",
					ArgsUsage: "scene_file1.json scene_file2.json ...",
					Action:    cmd.ConvertScene,
				},
			},
		},
		{
			Name:   "list-devices",
			Usage:  "list available cpu resources",
			Action: cmd.ListDevices,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
