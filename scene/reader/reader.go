package reader

import (
	"time"

	"github.com/pkg/errors"
	"github.com/snagy/rustrace/asset"
	"github.com/snagy/rustrace/log"
	"github.com/snagy/rustrace/scene"
	sceneio "github.com/snagy/rustrace/scene/io"
	"gopkg.in/yaml.v3"
)

var logger = log.New("scene reader")

// The Reader interface is implemented by all scene readers.
type Reader interface {
	// Read scene definition from a resource.
	Read(*asset.Resource) (*scene.Scene, error)
}

// Read scene from a local file or http(s) URL.
func ReadScene(filename string) (*scene.Scene, error) {
	res, err := asset.NewResource(filename, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	reader, err := readerFor(res)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	sc, err := reader.Read(res)
	if err != nil {
		return nil, err
	}

	logger.Infof("parsed %s in %s", res.Path(), time.Since(start))
	return sc, nil
}

// Select reader based on file extension.
func readerFor(res *asset.Resource) (Reader, error) {
	switch res.Ext() {
	case ".yaml", ".yml", ".json":
		// JSON documents are valid YAML
		return &yamlReader{}, nil
	}
	return nil, errors.Errorf("scene reader: unsupported file format '%s'", res.Ext())
}

// Includes nested deeper than this are rejected; this also stops include
// cycles.
const maxIncludeDepth = 8

type yamlReader struct{}

func (r *yamlReader) Read(res *asset.Resource) (*scene.Scene, error) {
	doc, err := r.decode(res, 0)
	if err != nil {
		return nil, err
	}

	sc, err := doc.Scene()
	if err != nil {
		return nil, errors.Wrapf(err, "scene reader: %s", res.Path())
	}

	for name := range doc.Materials {
		if used := usesMaterial(doc, name); !used {
			logger.Warningf("%s: material %q is not referenced by any primitive", res.Path(), name)
		}
	}
	return sc, nil
}

// Decode a document and merge its includes into it.
func (r *yamlReader) decode(res *asset.Resource, depth int) (*sceneio.Document, error) {
	var doc sceneio.Document
	dec := yaml.NewDecoder(res)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrapf(err, "scene reader: could not decode %s", res.Path())
	}

	includes := doc.Include
	doc.Include = nil
	for _, incPath := range includes {
		if depth == maxIncludeDepth {
			return nil, errors.Errorf("scene reader: %s: includes nested deeper than %d levels", res.Path(), maxIncludeDepth)
		}

		incDoc, err := r.decodeInclude(incPath, res, depth+1)
		if err != nil {
			return nil, err
		}
		if err = doc.Merge(incDoc); err != nil {
			return nil, errors.Wrapf(err, "scene reader: %s: include '%s'", res.Path(), incPath)
		}
	}
	return &doc, nil
}

func (r *yamlReader) decodeInclude(incPath string, parent *asset.Resource, depth int) (*sceneio.Document, error) {
	res, err := asset.NewResource(incPath, parent)
	if err != nil {
		return nil, errors.Wrapf(err, "scene reader: %s", parent.Path())
	}
	defer res.Close()

	if _, err = readerFor(res); err != nil {
		return nil, err
	}
	logger.Debugf("%s: including %s", parent.Path(), res.Path())
	return r.decode(res, depth)
}

func usesMaterial(doc *sceneio.Document, name string) bool {
	for _, prim := range doc.Primitives {
		if prim.Material == name {
			return true
		}
	}
	return false
}
