package cmd

import (
	"bytes"
	"fmt"
	"math/rand"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/snagy/rustrace/scene"
	"github.com/snagy/rustrace/scene/reader"
	"github.com/snagy/rustrace/scene/writer"
	"github.com/urfave/cli"
)

// Write the procedural scene to a file.
func GenerateScene(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing output scene file argument")
	}

	seed := resolveSeed(ctx.Int64("seed"))

	sc := scene.NewProceduralScene(float32(ctx.Float64("box-pct")), rand.New(rand.NewSource(seed)))
	sceneFile := ctx.Args().First()
	if err := writer.WriteScene(sc, sceneFile); err != nil {
		return err
	}

	logger.Noticef("wrote scene (seed %d) to %s:\n%s", seed, sceneFile, sc.Stats())
	return nil
}

// Display scene info. Without a scene file argument the procedural scene is
// described instead.
func ShowSceneInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	var sc *scene.Scene
	if ctx.NArg() == 0 {
		seed := resolveSeed(ctx.Int64("seed"))
		logger.Noticef("describing procedural scene (seed %d)", seed)
		sc = scene.NewProceduralScene(float32(ctx.Float64("box-pct")), rand.New(rand.NewSource(seed)))
	} else {
		var err error
		if sc, err = reader.ReadScene(ctx.Args().First()); err != nil {
			return err
		}
	}

	logger.Noticef("scene information:\n%s\n%s", sc.Stats(), sceneTable(sc))
	return nil
}

func sceneTable(sc *scene.Scene) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"#", "Primitive", "Origin", "Size", "Material", "Parameters"})
	for idx, prim := range sc.Primitives {
		size := fmt.Sprintf("r=%.3g", prim.Radius())
		if prim.Type == scene.BoxPrimitive {
			size = fmt.Sprintf("%.3g x %.3g x %.3g", 2*prim.Dimensions[0], 2*prim.Dimensions[1], 2*prim.Dimensions[2])
		}

		table.Append([]string{
			fmt.Sprintf("%d", idx),
			prim.Type.String(),
			fmt.Sprintf("(%.2f, %.2f, %.2f)", prim.Origin[0], prim.Origin[1], prim.Origin[2]),
			size,
			prim.Material.Type.String(),
			materialParams(prim.Material),
		})
	}
	table.Render()
	return buf.String()
}

func materialParams(mat *scene.Material) string {
	switch mat.Type {
	case scene.LambertianMaterial:
		return fmt.Sprintf("albedo (%.2f, %.2f, %.2f)", mat.Albedo[0], mat.Albedo[1], mat.Albedo[2])
	case scene.MetallicMaterial:
		return fmt.Sprintf("albedo (%.2f, %.2f, %.2f) roughness %.2f", mat.Albedo[0], mat.Albedo[1], mat.Albedo[2], mat.Roughness)
	case scene.DielectricMaterial:
		return fmt.Sprintf("ior %.2f", mat.IOR)
	}
	return ""
}
