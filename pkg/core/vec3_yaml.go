package core

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML accepts either a [x, y, z] sequence or an {x, y, z} mapping
func (v *Vec3) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var components []float64
		if err := node.Decode(&components); err != nil {
			return err
		}
		if len(components) != 3 {
			return fmt.Errorf("line %d: vector needs 3 components, got %d", node.Line, len(components))
		}
		*v = NewVec3(components[0], components[1], components[2])
		return nil
	case yaml.MappingNode:
		var fields struct {
			X, Y, Z float64
		}
		if err := node.Decode(&fields); err != nil {
			return err
		}
		*v = NewVec3(fields.X, fields.Y, fields.Z)
		return nil
	case yaml.ScalarNode:
		// A single number fills every component, handy for grey colours
		var scalar float64
		if err := node.Decode(&scalar); err != nil {
			return err
		}
		*v = NewVec3(scalar, scalar, scalar)
		return nil
	default:
		return fmt.Errorf("line %d: cannot decode vector", node.Line)
	}
}

// MarshalYAML writes the vector as a flow sequence
func (v Vec3) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: fmt.Sprint(c)})
	}
	return node, nil
}
