package core

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Ray        Ray      // Ray that produced the hit
	Point      Vec3     // World-space point of intersection
	LocalPoint Vec3     // Shape-specific local point
	Normal     Vec3     // Unit surface normal, facing against the ray
	K          float64  // Parametric distance along the ray
	FrontFace  bool     // Whether ray hit the side the outward normal points to
	UV         Vec2     // Surface coordinate
	Object     *Object  // Struck object
	Material   Material // Material of the struck object
	Payload    any      // Optional shape-specific data
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// ObjectName returns the struck object's name, or "" when unknown
func (h *HitRecord) ObjectName() string {
	if h.Object == nil {
		return ""
	}
	return h.Object.Name
}
