package core

// RenderContext is threaded through every Scatter, CalculateColour and
// CalculateLight call. Each worker owns one; only Options, Tracer and Lights
// are shared, and those are never mutated during a render.
type RenderContext struct {
	Options     *RenderOptions
	Tracer      Tracer
	Lights      []Light
	Sampler     Sampler
	Diagnostics *Diagnostics
}

// DirectLight sums the contribution of every light at hit
func (c *RenderContext) DirectLight(hit *HitRecord) Vec3 {
	total := Vec3{}
	for _, light := range c.Lights {
		total = total.Add(light.CalculateLight(hit, c))
	}
	return total
}

// Occluded reports whether anything blocks the segment from point toward
// direction over (KMin, distance - KMin)
func (c *RenderContext) Occluded(point, direction Vec3, distance float64) bool {
	if c.Tracer == nil {
		return false
	}
	eps := c.Options.KMin
	if distance-eps <= eps {
		return false
	}
	return c.Tracer.AnyHit(Ray{Origin: point, Direction: direction}, eps, distance-eps)
}

// Record forwards a diagnostic when the context carries a collector
func (c *RenderContext) Record(kind DiagnosticKind, object string) {
	c.Diagnostics.Record(kind, object)
}
