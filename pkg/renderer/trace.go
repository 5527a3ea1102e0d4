package renderer

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// Magenta marks pixels whose evaluation faulted
var Magenta = core.NewVec3(1, 0, 1)

// unitTolerance is how far a normal's length may stray from 1 before it is corrected
const unitTolerance = 1e-6

// pathTracer is the per-worker state of a render: its own sampler,
// diagnostics and hit-chain scratch. It must not be shared between goroutines.
type pathTracer struct {
	job   *RenderJob
	index core.Tracer
	mode  Mode

	sampler     *core.RandomSampler
	diagnostics *core.Diagnostics
	ctx         core.RenderContext

	// chain and rays are reused across paths; both hold at most MaxBounces entries
	chain []core.HitRecord
	rays  []core.Ray

	// object is the last object touched, used to attribute pixel faults
	object string
}

func newPathTracer(job *RenderJob) *pathTracer {
	t := &pathTracer{
		job:         job,
		index:       job.index,
		mode:        job.config.Mode,
		sampler:     core.NewRandomSampler(job.options.Seed, 0),
		diagnostics: core.NewDiagnostics(),
		chain:       make([]core.HitRecord, 0, job.options.MaxBounces),
		rays:        make([]core.Ray, 0, job.options.MaxBounces),
	}
	t.ctx = core.RenderContext{
		Options:     &job.options,
		Tracer:      job.index,
		Lights:      job.scene.Lights,
		Sampler:     t.sampler,
		Diagnostics: t.diagnostics,
	}
	return t
}

// renderPixel averages SamplesPerPixel samples of pixel (x, y). The sampler is
// reseeded from the pixel index so the result does not depend on which worker
// renders it. A panic degrades the pixel to magenta.
func (t *pathTracer) renderPixel(x, y int) (colour core.Vec3, samples int) {
	defer func() {
		if r := recover(); r != nil {
			t.diagnostics.Record(core.DiagPixelFault, t.object)
			t.job.logger.Debug("pixel evaluation failed",
				zap.Int("x", x),
				zap.Int("y", y),
				zap.String("object", t.object),
				zap.String("panic", fmt.Sprint(r)))
			colour, samples = Magenta, 0
		}
	}()

	t.object = ""
	t.sampler.Reseed(t.job.options.Seed, uint64(y*t.job.width+x))

	var stats PixelStats
	for i := 0; i < t.job.options.SamplesPerPixel; i++ {
		ray := t.job.camera.GetRay(x, y, t.job.options.Jitter, t.sampler)
		sample := t.sample(ray)
		if !sample.IsFinite() {
			t.diagnostics.Record(core.DiagNonFiniteColour, t.object)
			sample = core.Vec3{}
		}
		stats.AddSample(sample)
	}
	return stats.GetColor(), stats.SampleCount
}

func (t *pathTracer) sample(ray core.Ray) core.Vec3 {
	if t.mode != ModeShaded {
		return t.debugColour(ray)
	}
	return t.trace(ray)
}

// trace follows one camera ray through the scene and unwinds the hit chain
// from the deepest hit back toward the camera
func (t *pathTracer) trace(ray core.Ray) core.Vec3 {
	opts := t.ctx.Options
	if opts.MaxBounces == 0 {
		return t.job.scene.Background(ray)
	}

	chain := t.chain[:0]
	rays := t.rays[:0]
	var colour core.Vec3

	current := ray
	for {
		if len(chain) == opts.MaxBounces {
			// Bounce budget exhausted: absorbed
			break
		}
		hit, ok := t.index.TryHit(current, opts.KMin, opts.KMax)
		if !ok {
			colour = t.job.scene.Background(current)
			break
		}
		t.validate(&hit)
		t.object = hit.ObjectName()

		chain = append(chain, hit)
		last := &chain[len(chain)-1]
		next, ok := last.Material.Scatter(last, chain[:len(chain)-1], &t.ctx)
		if !ok {
			// Absorbed here; the material still adds its own light while unwinding
			rays = append(rays, core.Ray{})
			break
		}
		rays = append(rays, next)
		current = next
	}

	for i := len(chain) - 1; i >= 0; i-- {
		hit := &chain[i]
		colour = hit.Material.CalculateColour(colour, rays[i], hit, chain[:i], &t.ctx)
	}
	return colour
}

// validate corrects a hit whose normal is not unit length or whose k lies
// outside the window, recording each correction
func (t *pathTracer) validate(hit *core.HitRecord) {
	opts := t.ctx.Options
	if length := hit.Normal.Length(); math.Abs(length-1) > unitTolerance {
		hit.Normal = hit.Normal.Normalize()
		t.diagnostics.Record(core.DiagNonUnitNormal, hit.ObjectName())
	}
	if hit.K < opts.KMin || hit.K > opts.KMax {
		hit.K = max(opts.KMin, min(opts.KMax, hit.K))
		t.diagnostics.Record(core.DiagKOutOfRange, hit.ObjectName())
	}
}
