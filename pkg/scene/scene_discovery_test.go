package scene

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"cornell-empty", "Cornell Empty"},
		{"fog_bank", "Fog Bank"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func writeSceneFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestParseSceneMetadata(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected SceneInfo
	}{
		{
			name: "complete_metadata.yaml",
			content: `# Scene: Cornell Box
# Variant: Empty Room
# Description: Classic Cornell box with no objects
# Group: Cornell Variants

name: cornell-empty`,
			expected: SceneInfo{
				ID:          "file:complete_metadata",
				Name:        "Cornell Box",
				DisplayName: "Cornell Box - Empty Room",
				Description: "Classic Cornell box with no objects",
				Group:       "Cornell Variants",
				Variant:     "Empty Room",
			},
		},
		{
			name: "partial_metadata.yaml",
			content: `# Scene: Fog Bank
# Description: Dense fog

name: fog-bank`,
			expected: SceneInfo{
				ID:          "file:partial_metadata",
				Name:        "Fog Bank",
				DisplayName: "Fog Bank",
				Description: "Dense fog",
				Group:       FileGroup,
			},
		},
		{
			name:    "no_metadata.yml",
			content: `name: bare`,
			expected: SceneInfo{
				ID:          "file:no_metadata",
				Name:        "No Metadata",
				DisplayName: "No Metadata",
				Group:       FileGroup,
			},
		},
		{
			name: "mixed_content.yaml",
			content: `# Scene: Test Scene
name: mixed
# Variant: Ignored`,
			expected: SceneInfo{
				ID:          "file:mixed_content",
				Name:        "Test Scene",
				DisplayName: "Test Scene",
				Group:       FileGroup,
			},
		},
	}

	dir := t.TempDir()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeSceneFile(t, dir, tc.name, tc.content)

			result, err := ParseSceneMetadata(path)
			if err != nil {
				t.Fatalf("ParseSceneMetadata() error: %v", err)
			}

			tc.expected.Type = "file"
			tc.expected.FilePath = path
			if result != tc.expected {
				t.Errorf("ParseSceneMetadata() = %+v, want %+v", result, tc.expected)
			}
		})
	}
}

func TestParseSceneMetadata_MissingFile(t *testing.T) {
	info, err := ParseSceneMetadata("nonexistent.yaml")
	if err != nil {
		t.Errorf("ParseSceneMetadata() should handle missing files gracefully: %v", err)
	}
	if info.DisplayName != "Nonexistent" {
		t.Errorf("Expected fallback display name, got %q", info.DisplayName)
	}
}

func TestListSceneFiles_MissingDirectory(t *testing.T) {
	scenes, err := ListSceneFiles(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Errorf("ListSceneFiles() error: %v", err)
	}
	if scenes == nil || len(scenes) != 0 {
		t.Errorf("Expected an empty, non-nil list, got %v", scenes)
	}
}

func TestListAllScenes(t *testing.T) {
	dir := t.TempDir()
	writeSceneFile(t, dir, "b.yaml", "# Scene: Beta\nname: b")
	writeSceneFile(t, dir, "a.yml", "# Scene: Alpha\n# Group: Custom\nname: a")
	writeSceneFile(t, dir, "notes.txt", "# Scene: Ignored")

	groups, err := ListAllScenes(dir)
	if err != nil {
		t.Fatalf("ListAllScenes() error: %v", err)
	}
	if len(groups) != 3 {
		t.Fatalf("Expected 3 groups, got %d: %+v", len(groups), groups)
	}

	if groups[0].Name != PresetGroup {
		t.Errorf("Expected built-in scenes first, got %q", groups[0].Name)
	}
	if len(groups[0].Scenes) != len(PresetNames()) {
		t.Errorf("Expected %d presets, got %d", len(PresetNames()), len(groups[0].Scenes))
	}
	for _, info := range groups[0].Scenes {
		if info.Type != "preset" || info.Description == "" {
			t.Errorf("Incomplete preset info %+v", info)
		}
	}

	if groups[1].Name != "Custom" || groups[1].Scenes[0].Name != "Alpha" {
		t.Errorf("Expected the Custom group second, got %+v", groups[1])
	}
	if groups[2].Name != FileGroup || groups[2].Scenes[0].Name != "Beta" {
		t.Errorf("Expected the default file group last, got %+v", groups[2])
	}
}

func TestOpen(t *testing.T) {
	s, err := Open("fog")
	if err != nil {
		t.Fatalf("Open(preset) failed: %v", err)
	}
	if s.Name != "fog" {
		t.Errorf("Expected fog, got %q", s.Name)
	}

	dir := t.TempDir()
	path := writeSceneFile(t, dir, "tiny.yaml", `
name: tiny
camera: {center: [0, 0, 5], look_at: [0, 0, 0]}
materials: {grey: {albedo: 0.5}}
objects:
  - {name: ball, material: grey, shape: {type: sphere, center: [0, 0, 0], radius: 1}}
`)
	s, err = Open(path, testCamera())
	if err != nil {
		t.Fatalf("Open(file) failed: %v", err)
	}
	if s.Camera.Width() != testCamera().Width {
		t.Errorf("Expected the override width %d, got %d", testCamera().Width, s.Camera.Width())
	}
}

func TestBundledSceneFilesLoad(t *testing.T) {
	files, err := ListSceneFiles(filepath.Join("..", "..", "scenes"))
	if err != nil {
		t.Fatalf("ListSceneFiles failed: %v", err)
	}
	if len(files) < 2 {
		t.Fatalf("Expected the bundled scene files, got %d", len(files))
	}

	for _, info := range files {
		t.Run(info.ID, func(t *testing.T) {
			if info.Group != "Examples" {
				t.Errorf("Expected group Examples, got %q", info.Group)
			}
			s, err := LoadFile(info.FilePath)
			if err != nil {
				t.Fatalf("LoadFile failed: %v", err)
			}
			if len(s.Objects) == 0 || len(s.Lights) == 0 {
				t.Errorf("Expected objects and lights, got %d and %d", len(s.Objects), len(s.Lights))
			}
			if err := s.Options.Validate(); err != nil {
				t.Errorf("Invalid render options: %v", err)
			}
		})
	}
}
