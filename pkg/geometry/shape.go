package geometry

import (
	"errors"
	"math"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// ErrDegenerate is wrapped by every constructor that rejects its input
var ErrDegenerate = errors.New("degenerate geometry")

// thinPadding keeps flat shapes from producing zero-width bounding boxes
const thinPadding = 1e-4

// inRange reports whether k lies in the open interval (kMin, kMax)
func inRange(k, kMin, kMax float64) bool {
	return k > kMin && k < kMax
}

// nearestRoot returns the smaller root of a·k² + 2·halfB·k + c = 0 inside
// (kMin, kMax), falling back to the larger one
func nearestRoot(a, halfB, c, kMin, kMax float64) (float64, bool) {
	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return 0, false
	}
	sqrtD := math.Sqrt(discriminant)

	root := (-halfB - sqrtD) / a
	if inRange(root, kMin, kMax) {
		return root, true
	}
	root = (-halfB + sqrtD) / a
	if inRange(root, kMin, kMax) {
		return root, true
	}
	return 0, false
}

// padBox grows any axis thinner than thinPadding
func padBox(box core.AABB) core.AABB {
	size := box.Size()
	for axis := 0; axis < 3; axis++ {
		if size.Axis(axis) < thinPadding {
			delta := core.Vec3{}
			switch axis {
			case 0:
				delta.X = thinPadding / 2
			case 1:
				delta.Y = thinPadding / 2
			default:
				delta.Z = thinPadding / 2
			}
			box.Min = box.Min.Subtract(delta)
			box.Max = box.Max.Add(delta)
		}
	}
	return box
}

func validVec(v core.Vec3) bool {
	return v.IsFinite()
}
