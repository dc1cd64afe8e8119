package writer

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/snagy/rustrace/scene"
	sceneio "github.com/snagy/rustrace/scene/io"
	"gopkg.in/yaml.v3"
)

// The Writer interface is implemented by all scene writers.
type Writer interface {
	// Write scene definition
	Write(*scene.Scene) error
}

// Write scene to a YAML file.
func WriteScene(sc *scene.Scene, filename string) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
	default:
		return errors.Errorf("scene writer: unsupported file format '%s'", filepath.Ext(filename))
	}

	return newYamlWriter(filename).Write(sc)
}

type yamlWriter struct {
	sceneFile string
}

func newYamlWriter(sceneFile string) *yamlWriter {
	return &yamlWriter{sceneFile: sceneFile}
}

func (w *yamlWriter) Write(sc *scene.Scene) error {
	f, err := os.Create(w.sceneFile)
	if err != nil {
		return errors.Wrapf(err, "scene writer: could not create %s", w.sceneFile)
	}
	defer f.Close()

	buf := bufio.NewWriter(f)
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)
	if err = enc.Encode(sceneio.NewDocument(sc)); err != nil {
		return errors.Wrapf(err, "scene writer: could not encode %s", w.sceneFile)
	}
	if err = enc.Close(); err != nil {
		return errors.Wrapf(err, "scene writer: could not encode %s", w.sceneFile)
	}
	if err = buf.Flush(); err != nil {
		return errors.Wrapf(err, "scene writer: could not write %s", w.sceneFile)
	}
	return errors.Wrapf(f.Sync(), "scene writer: could not write %s", w.sceneFile)
}
