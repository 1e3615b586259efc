package renderer

import (
	"math"

	"github.com/pkg/errors"

	"github.com/df07/go-path-tracer/pkg/core"
)

// CameraConfig contains all camera and sampling parameters
type CameraConfig struct {
	AspectRatio     float64   `json:"aspectRatio"`     // Width over height
	Width           int       `json:"width"`           // Image width in pixels
	SamplesPerPixel int       `json:"samplesPerPixel"` // Random rays averaged per pixel
	MaxDepth        int       `json:"maxDepth"`        // Maximum ray bounces
	VFov            float64   `json:"vfov"`            // Vertical field of view in degrees
	Center          core.Vec3 `json:"center"`          // Camera position (look-from)
	LookAt          core.Vec3 `json:"lookAt"`          // Point the camera faces
	Up              core.Vec3 `json:"up"`              // Camera-relative up direction
	DefocusAngle    float64   `json:"defocusAngle"`    // Cone angle in degrees through each pixel; 0 disables depth of field
	FocusDistance   float64   `json:"focusDistance"`   // Distance to the plane of perfect focus
}

// DefaultCameraConfig returns the configuration used when a scene sets nothing
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		AspectRatio:     1.0,
		Width:           100,
		SamplesPerPixel: 10,
		MaxDepth:        10,
		VFov:            90,
		Center:          core.NewVec3(0, 0, 0),
		LookAt:          core.NewVec3(0, 0, -1),
		Up:              core.NewVec3(0, 1, 0),
		DefocusAngle:    0,
		FocusDistance:   10,
	}
}

// ImageHeight derives the pixel height from width and aspect ratio, never below 1
func (c CameraConfig) ImageHeight() int {
	height := int(float64(c.Width) / c.AspectRatio)
	if height < 1 {
		height = 1
	}
	return height
}

// WithOverrides returns a copy with width, samples and depth replaced where the argument is positive
func (c CameraConfig) WithOverrides(width, samplesPerPixel, maxDepth int) CameraConfig {
	if width > 0 {
		c.Width = width
	}
	if samplesPerPixel > 0 {
		c.SamplesPerPixel = samplesPerPixel
	}
	if maxDepth > 0 {
		c.MaxDepth = maxDepth
	}
	return c
}

// Validate reports the first configuration value that cannot produce an image
func (c CameraConfig) Validate() error {
	switch {
	case c.Width <= 0:
		return errors.Errorf("camera: width must be positive, got %d", c.Width)
	case c.AspectRatio <= 0 || math.IsNaN(c.AspectRatio) || math.IsInf(c.AspectRatio, 0):
		return errors.Errorf("camera: aspect ratio must be positive and finite, got %v", c.AspectRatio)
	case c.SamplesPerPixel <= 0:
		return errors.Errorf("camera: samples per pixel must be positive, got %d", c.SamplesPerPixel)
	case c.MaxDepth <= 0:
		return errors.Errorf("camera: max depth must be positive, got %d", c.MaxDepth)
	case c.VFov <= 0 || c.VFov >= 180:
		return errors.Errorf("camera: vertical field of view must be in (0, 180) degrees, got %v", c.VFov)
	case c.Center.Equals(c.LookAt):
		return errors.New("camera: center and look-at point coincide")
	case c.Up.Cross(c.Center.Subtract(c.LookAt)).NearZero():
		return errors.New("camera: up vector is parallel to the view direction")
	case c.FocusDistance <= 0:
		return errors.Errorf("camera: focus distance must be positive, got %v", c.FocusDistance)
	case c.DefocusAngle < 0:
		return errors.Errorf("camera: defocus angle must not be negative, got %v", c.DefocusAngle)
	}
	return nil
}

// Camera generates rays for rendering. Its viewport geometry is fixed at construction.
type Camera struct {
	config       CameraConfig
	imageHeight  int
	center       core.Vec3
	pixel00      core.Vec3 // Location of pixel (0, 0)
	pixelDeltaU  core.Vec3 // Offset to the pixel to the right
	pixelDeltaV  core.Vec3 // Offset to the pixel below
	u, v, w      core.Vec3 // Camera frame basis vectors
	defocusDiskU core.Vec3 // Defocus disk horizontal radius
	defocusDiskV core.Vec3 // Defocus disk vertical radius
}

// NewCamera validates config and computes the viewport
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	c := &Camera{
		config:      config,
		imageHeight: config.ImageHeight(),
		center:      config.Center,
	}

	theta := core.DegreesToRadians(config.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2 * h * config.FocusDistance
	viewportWidth := viewportHeight * (float64(config.Width) / float64(c.imageHeight))

	c.w = config.Center.Subtract(config.LookAt).Normalize()
	c.u = config.Up.Cross(c.w).Normalize()
	c.v = c.w.Cross(c.u)

	// Image rows run top to bottom, so the vertical edge points down
	viewportU := c.u.Multiply(viewportWidth)
	viewportV := c.v.Negate().Multiply(viewportHeight)

	c.pixelDeltaU = viewportU.Divide(float64(config.Width))
	c.pixelDeltaV = viewportV.Divide(float64(c.imageHeight))

	viewportUpperLeft := c.center.
		Subtract(c.w.Multiply(config.FocusDistance)).
		Subtract(viewportU.Divide(2)).
		Subtract(viewportV.Divide(2))
	c.pixel00 = viewportUpperLeft.Add(c.pixelDeltaU.Add(c.pixelDeltaV).Multiply(0.5))

	defocusRadius := config.FocusDistance * math.Tan(core.DegreesToRadians(config.DefocusAngle/2))
	c.defocusDiskU = c.u.Multiply(defocusRadius)
	c.defocusDiskV = c.v.Multiply(defocusRadius)

	return c, nil
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// Width returns the image width in pixels
func (c *Camera) Width() int {
	return c.config.Width
}

// Height returns the image height in pixels
func (c *Camera) Height() int {
	return c.imageHeight
}

// GetCameraForward returns the unit direction the camera looks along
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.w.Negate()
}

// GetRay returns a ray through a random point inside pixel (i, j), where j=0 is the top row.
// The origin is sampled from the defocus disk and the time from the shutter interval.
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	offset := sampler.Get2D()
	pixelSample := c.pixel00.
		Add(c.pixelDeltaU.Multiply(float64(i) + offset.X - 0.5)).
		Add(c.pixelDeltaV.Multiply(float64(j) + offset.Y - 0.5))

	origin := c.center
	if c.config.DefocusAngle > 0 {
		origin = c.defocusDiskSample(sampler)
	}

	return core.NewRayAtTime(origin, pixelSample.Subtract(origin), sampler.Get1D())
}

// defocusDiskSample returns a random point on the lens disk
func (c *Camera) defocusDiskSample(sampler core.Sampler) core.Vec3 {
	p := core.SamplePointInUnitDisk(sampler.Get2D())
	return c.center.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
}
