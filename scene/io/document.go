// Package io defines the serialized form of a scene that is shared by the
// scene readers and writers.
package io

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/snagy/rustrace/scene"
	"github.com/snagy/rustrace/types"
)

// A scene document. Primitives reference materials by name. Included
// documents are resolved relative to the including one.
type Document struct {
	Include    []string             `yaml:"include,omitempty"`
	Camera     *Camera              `yaml:"camera,omitempty"`
	Materials  map[string]*Material `yaml:"materials"`
	Primitives []*Primitive         `yaml:"primitives"`
}

type Camera struct {
	LookFrom  types.Vec3 `yaml:"look_from,flow"`
	LookAt    types.Vec3 `yaml:"look_at,flow"`
	Up        types.Vec3 `yaml:"up,flow"`
	FOV       float32    `yaml:"fov"`
	Aperture  float32    `yaml:"aperture"`
	FocusDist float32    `yaml:"focus_dist,omitempty"`
}

type Material struct {
	Type      string      `yaml:"type"`
	Albedo    *types.Vec3 `yaml:"albedo,flow,omitempty"`
	Roughness float32     `yaml:"roughness,omitempty"`
	IOR       float32     `yaml:"ior,omitempty"`
}

type Primitive struct {
	Type     string      `yaml:"type"`
	Origin   types.Vec3  `yaml:"origin,flow"`
	Radius   float32     `yaml:"radius,omitempty"`
	Dims     *types.Vec3 `yaml:"dims,flow,omitempty"`
	Material string      `yaml:"material"`
}

// Build a scene from the document. Materials are added in the order they are
// first referenced by a primitive.
func (doc *Document) Scene() (*scene.Scene, error) {
	sc := scene.NewScene()

	if doc.Camera != nil {
		cfg := &scene.CameraConfig{
			LookFrom:  doc.Camera.LookFrom,
			LookAt:    doc.Camera.LookAt,
			Up:        doc.Camera.Up,
			FOV:       doc.Camera.FOV,
			Aperture:  doc.Camera.Aperture,
			FocusDist: doc.Camera.FocusDist,
		}
		if err := cfg.Validate(); err != nil {
			return nil, errors.Wrap(err, "camera")
		}
		sc.SetCamera(cfg)
	}

	materials := make(map[string]*scene.Material, len(doc.Materials))
	for primIndex, docPrim := range doc.Primitives {
		if docPrim == nil {
			return nil, errors.Errorf("scene: primitive %d is empty", primIndex)
		}

		mat, found := materials[docPrim.Material]
		if !found {
			docMat, defined := doc.Materials[docPrim.Material]
			if !defined || docMat == nil {
				return nil, errors.Wrapf(scene.ErrUnknownMaterial, "primitive %d references material %q", primIndex, docPrim.Material)
			}

			var err error
			if mat, err = docMat.material(); err != nil {
				return nil, errors.Wrapf(err, "material %q", docPrim.Material)
			}
			if err = sc.AddMaterial(mat); err != nil {
				return nil, err
			}
			materials[docPrim.Material] = mat
		}

		prim, err := docPrim.primitive(mat)
		if err != nil {
			return nil, errors.Wrapf(err, "primitive %d", primIndex)
		}
		if err = sc.AddPrimitive(prim); err != nil {
			return nil, errors.Wrapf(err, "primitive %d", primIndex)
		}
	}

	return sc, nil
}

// Merge the contents of an included document. Included primitives follow the
// primitives already in doc and a camera is only taken if doc has none.
// Material names must be unique across documents.
func (doc *Document) Merge(inc *Document) error {
	for name, mat := range inc.Materials {
		if _, exists := doc.Materials[name]; exists {
			return errors.Wrapf(scene.ErrDuplicateMaterial, "material %q is defined more than once", name)
		}
		if doc.Materials == nil {
			doc.Materials = make(map[string]*Material, len(inc.Materials))
		}
		doc.Materials[name] = mat
	}
	doc.Primitives = append(doc.Primitives, inc.Primitives...)
	if doc.Camera == nil {
		doc.Camera = inc.Camera
	}
	return nil
}

func (m *Material) material() (*scene.Material, error) {
	switch m.Type {
	case scene.LambertianMaterial.String():
		if m.Albedo == nil {
			return nil, errors.New("scene: lambertian material requires an albedo")
		}
		return scene.NewLambertian(*m.Albedo), nil
	case scene.MetallicMaterial.String():
		if m.Albedo == nil {
			return nil, errors.New("scene: metallic material requires an albedo")
		}
		return scene.NewMetallic(*m.Albedo, m.Roughness), nil
	case scene.DielectricMaterial.String():
		if m.IOR <= 0 {
			return nil, errors.New("scene: dielectric material requires a positive ior")
		}
		return scene.NewDielectric(m.IOR), nil
	}
	return nil, errors.Wrapf(scene.ErrUnknownMaterial, "type %q", m.Type)
}

func (p *Primitive) primitive(mat *scene.Material) (*scene.Primitive, error) {
	switch p.Type {
	case scene.SpherePrimitive.String():
		return scene.NewSphere(p.Origin, p.Radius, mat), nil
	case scene.BoxPrimitive.String():
		if p.Dims == nil {
			return nil, errors.Wrap(scene.ErrInvalidDimensions, "box requires dims")
		}
		return scene.NewBox(p.Origin, *p.Dims, mat), nil
	}
	return nil, errors.Wrapf(scene.ErrUnknownPrimitive, "type %q", p.Type)
}

// Create a document from a scene. Materials are named after their index in
// the scene material list.
func NewDocument(sc *scene.Scene) *Document {
	doc := &Document{
		Materials:  make(map[string]*Material, len(sc.Materials)),
		Primitives: make([]*Primitive, 0, len(sc.Primitives)),
	}

	if cfg := sc.Camera; cfg != nil {
		doc.Camera = &Camera{
			LookFrom:  cfg.LookFrom,
			LookAt:    cfg.LookAt,
			Up:        cfg.Up,
			FOV:       cfg.FOV,
			Aperture:  cfg.Aperture,
			FocusDist: cfg.FocusDist,
		}
	}

	for index, mat := range sc.Materials {
		docMat := &Material{Type: mat.Type.String()}
		switch mat.Type {
		case scene.LambertianMaterial:
			albedo := mat.Albedo
			docMat.Albedo = &albedo
		case scene.MetallicMaterial:
			albedo := mat.Albedo
			docMat.Albedo = &albedo
			docMat.Roughness = mat.Roughness
		case scene.DielectricMaterial:
			docMat.IOR = mat.IOR
		}
		doc.Materials[materialName(index)] = docMat
	}

	for _, prim := range sc.Primitives {
		docPrim := &Primitive{
			Type:     prim.Type.String(),
			Origin:   prim.Origin,
			Material: materialName(sc.MaterialIndex(prim.Material)),
		}
		switch prim.Type {
		case scene.SpherePrimitive:
			docPrim.Radius = prim.Radius()
		case scene.BoxPrimitive:
			dims := prim.Dimensions
			docPrim.Dims = &dims
		}
		doc.Primitives = append(doc.Primitives, docPrim)
	}

	return doc
}

func materialName(index int) string {
	return fmt.Sprintf("mat%03d", index)
}
