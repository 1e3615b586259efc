package scene

import (
	"context"
	"math/rand"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/geometry"
	"github.com/df07/go-path-tracer/pkg/loaders"
	"github.com/df07/go-path-tracer/pkg/material"
	"github.com/df07/go-path-tracer/pkg/renderer"
	"github.com/df07/go-path-tracer/pkg/texture"
)

// FromFile loads a JSON scene description and assembles it
func FromFile(ctx context.Context, path string, logger core.Logger) (*Scene, error) {
	sf, err := loaders.LoadSceneFile(path)
	if err != nil {
		return nil, err
	}
	b, err := NewBuilderFromFile(sf, filepath.Dir(path), logger)
	if err != nil {
		return nil, errors.Wrapf(err, "in scene file %q", path)
	}
	return b.BuildContext(ctx, BuildOptions{UseBVH: sf.UseBVH(), Logger: logger})
}

// NewBuilderFromFile turns a parsed scene description into a builder. Image paths
// are resolved against baseDir.
func NewBuilderFromFile(sf *loaders.SceneFile, baseDir string, logger core.Logger) (*Builder, error) {
	if logger == nil {
		logger = renderer.NopLogger{}
	}

	a := &fileAssembler{
		file:      sf,
		baseDir:   baseDir,
		logger:    logger,
		textures:  make(map[string]texture.Texture),
		resolving: make(map[string]bool),
	}

	materials := make(map[string]material.Material, len(sf.Materials))
	for name, mf := range sf.Materials {
		mat, err := a.material(mf)
		if err != nil {
			return nil, errors.Wrapf(err, "material %q", name)
		}
		materials[name] = mat
	}

	b := NewBuilder().WithName(sf.Name).WithCamera(cameraFromFile(sf.Camera))
	for i, s := range sf.Spheres {
		mat, ok := materials[s.Material]
		if !ok {
			return nil, errors.Wrapf(loaders.ErrUnknownReference, "sphere %d: material %q", i, s.Material)
		}
		center := vec(s.Center)
		if s.Center2 != nil {
			b.Add(geometry.NewMovingSphere(center, vec(*s.Center2), s.Radius, mat))
		} else {
			b.Add(geometry.NewSphere(center, s.Radius, mat))
		}
	}
	return b, nil
}

type fileAssembler struct {
	file      *loaders.SceneFile
	baseDir   string
	logger    core.Logger
	textures  map[string]texture.Texture
	resolving map[string]bool
}

func (a *fileAssembler) material(mf loaders.MaterialFile) (material.Material, error) {
	switch mf.Type {
	case loaders.MaterialLambertian:
		if mf.Texture == "" {
			return material.NewLambertian(vec(mf.Albedo)), nil
		}
		tex, err := a.texture(mf.Texture)
		if err != nil {
			return nil, err
		}
		return material.NewTexturedLambertian(tex), nil
	case loaders.MaterialMetal:
		return material.NewMetal(vec(mf.Albedo), mf.Fuzz), nil
	case loaders.MaterialDielectric:
		return material.NewDielectric(mf.RefractionIndex), nil
	}
	return nil, errors.Errorf("unknown material type %q", mf.Type)
}

// texture resolves a named texture once; checkers share their children
func (a *fileAssembler) texture(name string) (texture.Texture, error) {
	if tex, ok := a.textures[name]; ok {
		return tex, nil
	}
	tf, ok := a.file.Textures[name]
	if !ok {
		return nil, errors.Wrapf(loaders.ErrUnknownReference, "texture %q", name)
	}
	if a.resolving[name] {
		return nil, errors.Errorf("texture %q: reference cycle", name)
	}
	a.resolving[name] = true
	defer delete(a.resolving, name)

	var tex texture.Texture
	switch tf.Type {
	case loaders.TextureSolid:
		tex = texture.NewSolidColor(vec(tf.Color))
	case loaders.TextureChecker:
		even, err := a.texture(tf.Even)
		if err != nil {
			return nil, err
		}
		odd, err := a.texture(tf.Odd)
		if err != nil {
			return nil, err
		}
		tex = texture.NewCheckerTexture(tf.Scale, even, odd)
	case loaders.TextureImage:
		path := tf.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(a.baseDir, path)
		}
		tex = texture.LoadImageTexture(path, a.logger)
	case loaders.TextureNoise:
		tex = texture.NewNoiseTexture(noiseScale(tf.Scale), rand.New(rand.NewSource(tf.Seed)))
	case loaders.TextureMarble:
		tex = texture.NewMarbleTexture(noiseScale(tf.Scale), rand.New(rand.NewSource(tf.Seed)))
	default:
		return nil, errors.Errorf("texture %q: unknown type %q", name, tf.Type)
	}

	a.textures[name] = tex
	return tex, nil
}

// noiseScale defaults an unset frequency to 1
func noiseScale(scale float64) float64 {
	if scale == 0 {
		return 1
	}
	return scale
}

// cameraFromFile applies the fields present in the file over the defaults
func cameraFromFile(cf loaders.CameraFile) renderer.CameraConfig {
	config := renderer.DefaultCameraConfig()
	if cf.AspectRatio != nil {
		config.AspectRatio = *cf.AspectRatio
	}
	if cf.Width != nil {
		config.Width = *cf.Width
	}
	if cf.SamplesPerPixel != nil {
		config.SamplesPerPixel = *cf.SamplesPerPixel
	}
	if cf.MaxDepth != nil {
		config.MaxDepth = *cf.MaxDepth
	}
	if cf.VFov != nil {
		config.VFov = *cf.VFov
	}
	if cf.Center != nil {
		config.Center = vec(*cf.Center)
	}
	if cf.LookAt != nil {
		config.LookAt = vec(*cf.LookAt)
	}
	if cf.Up != nil {
		config.Up = vec(*cf.Up)
	}
	if cf.DefocusAngle != nil {
		config.DefocusAngle = *cf.DefocusAngle
	}
	if cf.FocusDistance != nil {
		config.FocusDistance = *cf.FocusDistance
	}
	return config
}

func vec(v [3]float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
