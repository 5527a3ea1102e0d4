package renderer

import (
	"fmt"
	"strings"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// Mode selects what a pixel shows
type Mode string

const (
	ModeShaded  Mode = "shaded"  // Full path-traced colour
	ModeNormals Mode = "normals" // First-hit normal mapped to [0, 1]
	ModeFace    Mode = "face"    // Green for front faces, red for back faces
	ModeDepth   Mode = "depth"   // 1 / (1 + k) of the first hit
	ModeUV      Mode = "uv"      // Surface coordinate as red/green
	ModeScatter Mode = "scatter" // First scatter direction mapped to [0, 1]
	ModeLight   Mode = "light"   // Direct light arriving at the first hit
)

// Modes lists every mode in display order
var Modes = []Mode{ModeShaded, ModeNormals, ModeFace, ModeDepth, ModeUV, ModeScatter, ModeLight}

// ParseMode accepts a mode name; the empty string means shaded
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModeShaded, nil
	}
	for _, mode := range Modes {
		if strings.EqualFold(s, string(mode)) {
			return mode, nil
		}
	}
	return "", fmt.Errorf("unknown render mode %q", s)
}

var (
	frontColour = core.NewVec3(0, 1, 0)
	backColour  = core.NewVec3(1, 0, 0)
)

// toUnitColour maps a unit direction from [-1, 1] to [0, 1] per channel
func toUnitColour(direction core.Vec3) core.Vec3 {
	return direction.Add(core.NewVec3(1, 1, 1)).Multiply(0.5)
}

// debugColour evaluates a visualization mode for a camera ray
func (t *pathTracer) debugColour(ray core.Ray) core.Vec3 {
	hit, ok := t.index.TryHit(ray, t.ctx.Options.KMin, t.ctx.Options.KMax)
	if !ok {
		return core.Vec3{}
	}
	t.validate(&hit)

	switch t.mode {
	case ModeNormals:
		return toUnitColour(hit.Normal)
	case ModeFace:
		if hit.FrontFace {
			return frontColour
		}
		return backColour
	case ModeDepth:
		v := 1 / (1 + hit.K)
		return core.NewVec3(v, v, v)
	case ModeUV:
		return core.NewVec3(hit.UV.X, hit.UV.Y, 0)
	case ModeScatter:
		scattered, ok := hit.Material.Scatter(&hit, nil, &t.ctx)
		if !ok {
			return core.Vec3{}
		}
		return toUnitColour(scattered.Direction)
	case ModeLight:
		return t.ctx.DirectLight(&hit)
	default:
		return core.Vec3{}
	}
}
