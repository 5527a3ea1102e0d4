package core

// Object is a named pairing of geometry and material placed in a scene
type Object struct {
	Name     string
	Shape    Shape
	Material Material
}

// NewObject creates a scene object
func NewObject(name string, shape Shape, material Material) *Object {
	return &Object{Name: name, Shape: shape, Material: material}
}

// TryHit delegates to the shape and stamps the object and material on the record
func (o *Object) TryHit(ray Ray, kMin, kMax float64) (HitRecord, bool) {
	hit, ok := o.Shape.TryHit(ray, kMin, kMax)
	if !ok {
		return HitRecord{}, false
	}
	hit.Object = o
	hit.Material = o.Material
	return hit, true
}

// FastTryHit delegates the existence test to the shape
func (o *Object) FastTryHit(ray Ray, kMin, kMax float64) bool {
	return o.Shape.FastTryHit(ray, kMin, kMax)
}

// BoundingVolume returns the shape's bounding volume
func (o *Object) BoundingVolume() BoundingVolume {
	return o.Shape.BoundingVolume()
}
