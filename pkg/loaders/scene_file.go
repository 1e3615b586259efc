package loaders

import (
	"encoding/json"
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"
)

// Texture kinds understood in scene files
const (
	TextureSolid   = "solid"
	TextureChecker = "checker"
	TextureImage   = "image"
	TextureNoise   = "noise"
	TextureMarble  = "marble"
)

// Material kinds understood in scene files
const (
	MaterialLambertian = "lambertian"
	MaterialMetal      = "metal"
	MaterialDielectric = "dielectric"
)

// ErrUnknownReference is wrapped by validation errors for names that are not defined
var ErrUnknownReference = errors.New("unknown reference")

// SceneFile is the JSON description of a scene of spheres
type SceneFile struct {
	Name      string                  `json:"name"`
	Camera    CameraFile              `json:"camera"`
	Textures  map[string]TextureFile  `json:"textures"`
	Materials map[string]MaterialFile `json:"materials"`
	Spheres   []SphereFile            `json:"spheres"`
	BVH       *bool                   `json:"bvh,omitempty"` // Defaults to true
}

// CameraFile overrides camera settings; absent fields keep their defaults
type CameraFile struct {
	AspectRatio     *float64    `json:"aspectRatio,omitempty"`
	Width           *int        `json:"width,omitempty"`
	SamplesPerPixel *int        `json:"samplesPerPixel,omitempty"`
	MaxDepth        *int        `json:"maxDepth,omitempty"`
	VFov            *float64    `json:"vfov,omitempty"`
	Center          *[3]float64 `json:"center,omitempty"`
	LookAt          *[3]float64 `json:"lookAt,omitempty"`
	Up              *[3]float64 `json:"up,omitempty"`
	DefocusAngle    *float64    `json:"defocusAngle,omitempty"`
	FocusDistance   *float64    `json:"focusDistance,omitempty"`
}

// TextureFile describes one named texture. Which fields apply depends on Type.
type TextureFile struct {
	Type  string     `json:"type"`
	Color [3]float64 `json:"color,omitempty"` // solid
	Scale float64    `json:"scale,omitempty"` // checker cell size, noise frequency
	Even  string     `json:"even,omitempty"`  // checker
	Odd   string     `json:"odd,omitempty"`   // checker
	Path  string     `json:"path,omitempty"`  // image, relative to the scene file
	Seed  int64      `json:"seed,omitempty"`  // noise, marble
}

// MaterialFile describes one named material. Which fields apply depends on Type.
type MaterialFile struct {
	Type            string     `json:"type"`
	Albedo          [3]float64 `json:"albedo,omitempty"`          // lambertian, metal
	Texture         string     `json:"texture,omitempty"`         // lambertian, overrides albedo
	Fuzz            float64    `json:"fuzz,omitempty"`            // metal
	RefractionIndex float64    `json:"refractionIndex,omitempty"` // dielectric
}

// SphereFile places one sphere. Center2, when present, makes the sphere move.
type SphereFile struct {
	Center   [3]float64  `json:"center"`
	Center2  *[3]float64 `json:"center2,omitempty"`
	Radius   float64     `json:"radius"`
	Material string      `json:"material"`
}

// UseBVH reports whether the scene asks for a BVH (the default)
func (f *SceneFile) UseBVH() bool {
	return f.BVH == nil || *f.BVH
}

// LoadSceneFile reads and validates a JSON scene description
func LoadSceneFile(path string) (*SceneFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open scene file %q", path)
	}
	defer file.Close()

	sf, err := ParseSceneFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "in scene file %q", path)
	}
	return sf, nil
}

// ParseSceneFile decodes and validates a JSON scene description
func ParseSceneFile(r io.Reader) (*SceneFile, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var sf SceneFile
	if err := dec.Decode(&sf); err != nil {
		return nil, errors.Wrap(err, "failed to decode scene")
	}
	if err := sf.Validate(); err != nil {
		return nil, err
	}
	return &sf, nil
}

// Validate checks kinds and cross references without touching the filesystem
func (f *SceneFile) Validate() error {
	for _, name := range sortedKeys(f.Textures) {
		tex := f.Textures[name]
		switch tex.Type {
		case TextureSolid, TextureNoise, TextureMarble:
		case TextureChecker:
			if tex.Scale <= 0 {
				return errors.Errorf("texture %q: checker scale must be positive", name)
			}
			for _, ref := range []string{tex.Even, tex.Odd} {
				if _, ok := f.Textures[ref]; !ok {
					return errors.Wrapf(ErrUnknownReference, "texture %q: checker texture %q", name, ref)
				}
				if ref == name {
					return errors.Errorf("texture %q: checker cannot reference itself", name)
				}
			}
		case TextureImage:
			if tex.Path == "" {
				return errors.Errorf("texture %q: image path is empty", name)
			}
		default:
			return errors.Errorf("texture %q: unknown type %q", name, tex.Type)
		}
	}

	for _, name := range sortedKeys(f.Materials) {
		mat := f.Materials[name]
		switch mat.Type {
		case MaterialLambertian:
			if mat.Texture != "" {
				if _, ok := f.Textures[mat.Texture]; !ok {
					return errors.Wrapf(ErrUnknownReference, "material %q: texture %q", name, mat.Texture)
				}
			}
		case MaterialMetal:
		case MaterialDielectric:
			if mat.RefractionIndex <= 0 {
				return errors.Errorf("material %q: refraction index must be positive", name)
			}
		default:
			return errors.Errorf("material %q: unknown type %q", name, mat.Type)
		}
	}

	for i, sphere := range f.Spheres {
		if _, ok := f.Materials[sphere.Material]; !ok {
			return errors.Wrapf(ErrUnknownReference, "sphere %d: material %q", i, sphere.Material)
		}
	}

	return nil
}

// sortedKeys gives map iteration a stable order so the first error reported is stable
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
