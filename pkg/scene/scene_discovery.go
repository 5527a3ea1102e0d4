package scene

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-stochastic-raytracer/pkg/geometry"
)

const (
	// PresetGroup holds the scenes compiled into the binary
	PresetGroup = "Built-in Scenes"
	// FileGroup is the default group for scene files without a Group header
	FileGroup = "Scene Files"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `yaml:"id"`                  // Preset name, or "file:<basename>"
	Name        string `yaml:"name"`                // Scene name
	DisplayName string `yaml:"display_name"`        // Name plus variant
	Description string `yaml:"description"`         // Optional description
	Group       string `yaml:"group"`               // Grouping category
	Type        string `yaml:"type"`                // "preset" or "file"
	FilePath    string `yaml:"file_path,omitempty"` // Path to the scene file (file type only)
	Variant     string `yaml:"variant,omitempty"`   // Variant name (optional)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `yaml:"name"`
	Scenes []SceneInfo `yaml:"scenes"`
}

// ListPresetScenes describes every built-in scene
func ListPresetScenes() ([]SceneInfo, error) {
	var scenes []SceneInfo
	for _, name := range PresetNames() {
		s, err := Preset(name)
		if err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
		scenes = append(scenes, SceneInfo{
			ID:          name,
			Name:        s.Name,
			DisplayName: s.Name,
			Description: s.Description,
			Group:       PresetGroup,
			Type:        "preset",
		})
	}
	return scenes, nil
}

// ListSceneFiles scans dir for YAML scene files. A missing directory yields an empty list.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
		}
		files = append(files, matches...)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		info, err := ParseSceneMetadata(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to parse metadata for %s: %w", filePath, err)
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// ParseSceneMetadata extracts metadata from the header comments of a scene file:
//
//	# Scene: Cornell Box
//	# Variant: Empty Room
//	# Description: Classic Cornell box with no objects
//	# Group: Cornell Variants
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	info := SceneInfo{
		ID:          "file:" + nameWithoutExt,
		Name:        titleCase(nameWithoutExt),
		DisplayName: titleCase(nameWithoutExt),
		Group:       FileGroup,
		Type:        "file",
		FilePath:    filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		// Unreadable files still get listed; loading them reports the real error
		return info, nil
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Metadata ends at the first non-comment line
		if !strings.HasPrefix(line, "#") {
			break
		}
		content, ok := strings.CutPrefix(line, "# ")
		if !ok {
			continue
		}

		key, value, found := strings.Cut(content, ":")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)
		switch key {
		case "Scene":
			info.Name = value
		case "Variant":
			info.Variant = value
		case "Description":
			info.Description = value
		case "Group":
			if value != "" {
				info.Group = value
			}
		}
	}

	if info.Variant != "" {
		info.DisplayName = fmt.Sprintf("%s - %s", info.Name, info.Variant)
	} else {
		info.DisplayName = info.Name
	}

	return info, scanner.Err()
}

// ListAllScenes returns presets and the scene files in dir, grouped by
// category with the built-in group first
func ListAllScenes(dir string) ([]SceneGroup, error) {
	presetScenes, err := ListPresetScenes()
	if err != nil {
		return nil, err
	}
	fileScenes, err := ListSceneFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list scene files: %w", err)
	}

	groupMap := make(map[string][]SceneInfo)
	for _, s := range append(presetScenes, fileScenes...) {
		groupMap[s.Group] = append(groupMap[s.Group], s)
	}

	var groupNames []string
	for name := range groupMap {
		if name != PresetGroup {
			groupNames = append(groupNames, name)
		}
	}
	sort.Strings(groupNames)

	var groups []SceneGroup
	if builtIn, ok := groupMap[PresetGroup]; ok {
		groups = append(groups, SceneGroup{Name: PresetGroup, Scenes: builtIn})
	}
	for _, name := range groupNames {
		groups = append(groups, SceneGroup{Name: name, Scenes: groupMap[name]})
	}
	return groups, nil
}

// Open builds a scene from a preset name or a path to a YAML file
func Open(nameOrPath string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	if _, ok := presets[nameOrPath]; ok {
		return Preset(nameOrPath, cameraOverrides...)
	}
	s, err := LoadFile(nameOrPath)
	if err != nil {
		return nil, err
	}
	for _, override := range cameraOverrides {
		s.CameraConfig = geometry.MergeCameraConfig(s.CameraConfig, override)
	}
	if len(cameraOverrides) > 0 {
		if err := s.CameraConfig.Validate(); err != nil {
			return nil, fmt.Errorf("scene %q: %w", s.Name, err)
		}
		s.Camera = geometry.NewCamera(s.CameraConfig)
	}
	return s, nil
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
