package lights

import (
	"fmt"
	"math"
)

// AttenuationMode selects the distance falloff of a light
type AttenuationMode string

const (
	AttenuationConstant      AttenuationMode = "constant"
	AttenuationInverseSquare AttenuationMode = "inverse_square"
	AttenuationCustom        AttenuationMode = "custom"
)

// minAttenuationDistance keeps inverse-square finite when MinDistance is unset
const minAttenuationDistance = 1e-6

// Attenuation maps the distance to a light to a brightness factor
type Attenuation struct {
	Mode AttenuationMode `yaml:"mode"`
	// MinDistance clamps the inverse-square falloff near the light
	MinDistance float64 `yaml:"min_distance"`
	// Custom is used when Mode is AttenuationCustom
	Custom func(distance float64) float64 `yaml:"-"`
}

// ConstantAttenuation does not fall off with distance
func ConstantAttenuation() Attenuation {
	return Attenuation{Mode: AttenuationConstant}
}

// InverseSquare falls off as 1/d², clamped at minDistance
func InverseSquare(minDistance float64) Attenuation {
	return Attenuation{Mode: AttenuationInverseSquare, MinDistance: minDistance}
}

// CustomAttenuation uses fn for the falloff
func CustomAttenuation(fn func(distance float64) float64) Attenuation {
	return Attenuation{Mode: AttenuationCustom, Custom: fn}
}

// Validate checks the mode and its parameters
func (a Attenuation) Validate() error {
	switch a.Mode {
	case "", AttenuationConstant:
		return nil
	case AttenuationInverseSquare:
		if a.MinDistance < 0 {
			return fmt.Errorf("inverse square attenuation with negative min distance %g", a.MinDistance)
		}
		return nil
	case AttenuationCustom:
		if a.Custom == nil {
			return fmt.Errorf("custom attenuation without a falloff function")
		}
		return nil
	default:
		return fmt.Errorf("unknown attenuation mode %q", a.Mode)
	}
}

// Factor returns the brightness multiplier at distance
func (a Attenuation) Factor(distance float64) float64 {
	switch a.Mode {
	case AttenuationInverseSquare:
		clamp := math.Max(a.MinDistance, minAttenuationDistance)
		return 1.0 / math.Max(distance*distance, clamp*clamp)
	case AttenuationCustom:
		if a.Custom == nil {
			return 1
		}
		return a.Custom(distance)
	default:
		return 1
	}
}
