package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/geometry"
	"github.com/df07/go-stochastic-raytracer/pkg/material"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool           `json:"hit"`
	Object       string         `json:"object,omitempty"`
	MaterialType string         `json:"materialType,omitempty"`
	GeometryType string         `json:"geometryType,omitempty"`
	Point        [3]float64     `json:"point"`
	Normal       [3]float64     `json:"normal"`
	Distance     float64        `json:"distance"`
	FrontFace    bool           `json:"frontFace"`
	Properties   map[string]any `json:"properties,omitempty"`
}

// colorSourceInfo describes a texture
func colorSourceInfo(source material.ColorSource) any {
	switch c := source.(type) {
	case nil:
		return nil
	case *material.SolidColor:
		return map[string]any{
			"type":  "solid",
			"color": toArray(c.Color),
			"hex": fmt.Sprintf("#%02x%02x%02x",
				int(min(c.Color.X, 1)*255), int(min(c.Color.Y, 1)*255), int(min(c.Color.Z, 1)*255)),
		}
	case *material.Checker:
		return map[string]any{"type": "checker", "even": toArray(c.Even), "odd": toArray(c.Odd), "scale": c.Scale}
	case *material.ImageTexture:
		return map[string]any{"type": "image", "width": c.Width, "height": c.Height, "bilinear": c.Bilinear}
	default:
		return map[string]any{"type": "unknown"}
	}
}

// extractMaterialInfo extracts detailed material information with type assertions
func extractMaterialInfo(mat core.Material) (string, map[string]any) {
	properties := make(map[string]any)

	switch m := mat.(type) {
	case *material.Standard:
		properties["albedo"] = colorSourceInfo(m.Albedo)
		properties["emission"] = colorSourceInfo(m.Emission)
		properties["diffusion"] = m.Diffusion
		return "standard", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["tint"] = colorSourceInfo(m.Tint)
		properties["emission"] = colorSourceInfo(m.Emission)
		properties["directLighting"] = m.DirectLighting
		return "dielectric", properties

	case *material.Phong:
		properties["albedo"] = colorSourceInfo(m.Albedo)
		properties["specular"] = colorSourceInfo(m.Specular)
		properties["shininess"] = m.Shininess
		properties["reflectivity"] = m.Reflectivity
		return "phong", properties

	case *material.Volumetric:
		properties["albedo"] = colorSourceInfo(m.Albedo)
		return "volumetric", properties
	}
	return "unknown", properties
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(shape core.Shape) (string, map[string]any) {
	properties := make(map[string]any)
	if shape == nil {
		return "unknown", properties
	}

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = toArray(geom.Center)
		properties["radius"] = geom.Radius
	case *geometry.Plane:
		properties["point"] = toArray(geom.Point)
		properties["normal"] = toArray(geom.Normal)
	case *geometry.Quad:
		properties["corner"] = toArray(geom.Corner)
		properties["u"] = toArray(geom.U)
		properties["v"] = toArray(geom.V)
	case *geometry.Box:
		properties["min"] = toArray(geom.Min)
		properties["max"] = toArray(geom.Max)
	case *geometry.Disc:
		properties["center"] = toArray(geom.Center)
		properties["normal"] = toArray(geom.Normal)
		properties["radius"] = geom.Radius
	case *geometry.Capsule:
		properties["a"] = toArray(geom.A)
		properties["b"] = toArray(geom.B)
		properties["radius"] = geom.Radius
	case *geometry.ConstantMedium:
		properties["density"] = geom.Density
		boundaryType, _ := extractGeometryInfo(geom.Boundary)
		properties["boundary"] = boundaryType
	}
	return shape.Kind().String(), properties
}

// handleInspect casts the centre ray of one pixel and describes what it hits
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}

	job, err := s.newJob(req, s.logger)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if pixelX < 0 || pixelX >= job.Width() || pixelY < 0 || pixelY >= job.Height() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	hit, ok := job.Inspect(pixelX, pixelY)
	if !ok {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	materialType, materialProps := extractMaterialInfo(hit.Material)
	var shape core.Shape
	if hit.Object != nil {
		shape = hit.Object.Shape
	}
	geometryType, geometryProps := extractGeometryInfo(shape)

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		Object:       hit.ObjectName(),
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        toArray(hit.Point),
		Normal:       toArray(hit.Normal),
		Distance:     hit.K,
		FrontFace:    hit.FrontFace,
		Properties: map[string]any{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
