package core

// ShapeKind enumerates the closed set of geometry variants
type ShapeKind int

const (
	ShapeSphere ShapeKind = iota
	ShapePlane
	ShapeQuad
	ShapeBox
	ShapeDisc
	ShapeCapsule
	ShapeMedium
)

var shapeKindNames = [...]string{"sphere", "plane", "quad", "box", "disc", "capsule", "medium"}

func (k ShapeKind) String() string {
	if int(k) < 0 || int(k) >= len(shapeKindNames) {
		return "unknown"
	}
	return shapeKindNames[k]
}

// Shape is implemented by every geometry primitive
type Shape interface {
	// TryHit returns the nearest intersection with k in (kMin, kMax)
	TryHit(ray Ray, kMin, kMax float64) (HitRecord, bool)
	// FastTryHit only answers whether such an intersection exists
	FastTryHit(ray Ray, kMin, kMax float64) bool
	BoundingVolume() BoundingVolume
	Kind() ShapeKind
}

// Material decides how a path continues at a hit and how the colour of the
// continuation is combined with local light on the way back to the camera.
// chain holds the hits that precede hit on the current path, camera first.
type Material interface {
	// Scatter returns the next ray, or false when the path is absorbed here
	Scatter(hit *HitRecord, chain []HitRecord, ctx *RenderContext) (Ray, bool)
	// CalculateColour combines the colour seen along continuationRay with this material's contribution
	CalculateColour(continuation Vec3, continuationRay Ray, hit *HitRecord, chain []HitRecord, ctx *RenderContext) Vec3
}

// Light can be sampled for direct illumination of a hit point
type Light interface {
	// SampleLight picks a single point on the light and shadow-tests it
	SampleLight(hit *HitRecord, ctx *RenderContext) LightSample
	// CalculateLight returns the averaged, shadowed contribution at hit
	CalculateLight(hit *HitRecord, ctx *RenderContext) Vec3
}

// SingleSampleLight is implemented by lights whose samples never vary
type SingleSampleLight interface {
	SingleSample() bool
}

// LightSample is one shadow-tested sample of a light
type LightSample struct {
	Point     Vec3    // Sampled point on (or representing) the light
	Direction Vec3    // Unit direction from the hit point to the light
	Distance  float64 // Distance from the hit point to the light
	Colour    Vec3    // Attenuated, alignment-weighted contribution (zero when occluded)
	Visible   bool    // Whether the shadow ray was unoccluded
}

// Tracer is the query surface of the acceleration index
type Tracer interface {
	TryHit(ray Ray, kMin, kMax float64) (HitRecord, bool)
	AnyHit(ray Ray, kMin, kMax float64) bool
}
