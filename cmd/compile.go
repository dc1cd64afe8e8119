package cmd

import (
	"path/filepath"
	"strings"

	"github.com/snagy/rustrace/scene/reader"
	"github.com/snagy/rustrace/scene/writer"
	"github.com/urfave/cli"
)

// Convert scene files to the YAML format. Each output file is written next
// to its input.
func ConvertScene(ctx *cli.Context) error {
	setupLogging(ctx)

	for idx := 0; idx < ctx.NArg(); idx++ {
		sceneFile := ctx.Args().Get(idx)
		ext := strings.ToLower(filepath.Ext(sceneFile))
		if ext != ".json" && ext != ".yml" {
			logger.Warningf("skipping unsupported file %s", sceneFile)
			continue
		}

		logger.Noticef("converting scene: %s", sceneFile)
		sc, err := reader.ReadScene(sceneFile)
		if err != nil {
			return err
		}

		yamlFile := strings.TrimSuffix(sceneFile, filepath.Ext(sceneFile)) + ".yaml"
		if err = writer.WriteScene(sc, yamlFile); err != nil {
			return err
		}
		logger.Noticef("wrote %s:\n%s", yamlFile, sc.Stats())
	}

	return nil
}
