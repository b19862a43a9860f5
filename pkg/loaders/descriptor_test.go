package loaders

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

const sampleDescriptor = `comment: Spheres_from_few_materials

fovXdegree: 20
skyBoxImageFileName: ./Models/sky.jpg

Light: location_x: 6 location_y: 10 location_z: 0 intensity: 1 comment: key light
Light: location_x: -6 location_y: -10 location_z: 0 intensity: 2 comment:

sphereTextureFileName: ./Models/2k_moon.jpg

Material: kColor: 0 color_R: 1 color_G: 1 color_B: 1 kDirect: 0.3 ka_R: 0.25 ka_G: 0.20725 ka_B: 0.20725 kd_R: 1 kd_G: 0.829 kd_B: 0.829 ks_R: 0.296648 ks_G: 0.296648 ks_B: 0.296648 shininess: 1000 kReflection: 0.7 kTransmission: 0 refractiveIndex: 1.52 kTexture: 0 comment: Mirror

Sphere: center_x: 0 center_y: 0 center_z: -10 radius: 0.2 materialIndex: 0 textureIndex: 0
   Sphere: center_x: 0 center_y: 0 center_z: -20 radius: 1 materialIndex: 0 textureIndex: 0
`

func TestParseDescriptor(t *testing.T) {
	desc, err := ParseDescriptor(strings.NewReader(sampleDescriptor))
	if err != nil {
		t.Fatalf("ParseDescriptor failed: %v", err)
	}

	if desc.Comment != "Spheres_from_few_materials" {
		t.Errorf("Expected comment 'Spheres_from_few_materials', got %q", desc.Comment)
	}
	if desc.FovXDegree != 20 {
		t.Errorf("Expected fov 20, got %f", desc.FovXDegree)
	}
	if desc.SkyboxPath != "./Models/sky.jpg" {
		t.Errorf("Expected skybox path './Models/sky.jpg', got %q", desc.SkyboxPath)
	}

	if len(desc.Lights) != 2 {
		t.Fatalf("Expected 2 lights, got %d", len(desc.Lights))
	}
	if desc.Lights[0].Position != core.NewVec3(6, 10, 0) || desc.Lights[0].Comment != "key light" {
		t.Errorf("Unexpected first light: %+v", desc.Lights[0])
	}
	if desc.Lights[1].Intensity != 2 || desc.Lights[1].Comment != "" {
		t.Errorf("Unexpected second light: %+v", desc.Lights[1])
	}

	if len(desc.TexturePaths) != 1 || desc.TexturePaths[0] != "./Models/2k_moon.jpg" {
		t.Errorf("Unexpected texture paths: %v", desc.TexturePaths)
	}

	if len(desc.Materials) != 1 {
		t.Fatalf("Expected 1 material, got %d", len(desc.Materials))
	}
	m := desc.Materials[0]
	if m.KReflection != 0.7 || m.RefractiveIndex != 1.52 || m.Shininess != 1000 || m.Comment != "Mirror" {
		t.Errorf("Unexpected material: %+v", m)
	}
	if m.Kd != core.NewVec3(1, 0.829, 0.829) {
		t.Errorf("Expected kd (1, 0.829, 0.829), got %v", m.Kd)
	}

	if len(desc.Spheres) != 2 {
		t.Fatalf("Expected 2 spheres, got %d", len(desc.Spheres))
	}
	if desc.Spheres[1].Center != core.NewVec3(0, 0, -20) || desc.Spheres[1].Radius != 1 {
		t.Errorf("Unexpected second sphere: %+v", desc.Spheres[1])
	}
}

func TestParseDescriptor_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		line     int
		expected error
	}{
		{
			name:     "unknown record",
			input:    "comment: ok\nCamera: x: 1\n",
			line:     2,
			expected: ErrUnknownRecord,
		},
		{
			name:     "line without label",
			input:    "just some words\n",
			line:     1,
			expected: ErrUnknownRecord,
		},
		{
			name:     "malformed float",
			input:    "fovXdegree: wide\n",
			line:     1,
			expected: ErrInvalidNumber,
		},
		{
			name:     "missing value",
			input:    "\n\nfovXdegree:\n",
			line:     3,
			expected: ErrMissingToken,
		},
		{
			name:     "sphere with fields out of order",
			input:    "Sphere: center_y: 0 center_x: 0 center_z: -10 radius: 1 materialIndex: 0 textureIndex: 0\n",
			line:     1,
			expected: ErrMissingToken,
		},
		{
			name:     "truncated sphere",
			input:    "Sphere: center_x: 0 center_y: 0 center_z: -10 radius: 1 materialIndex: 0\n",
			line:     1,
			expected: ErrMissingToken,
		},
		{
			name:     "fractional index",
			input:    "Sphere: center_x: 0 center_y: 0 center_z: -10 radius: 1 materialIndex: 0.5 textureIndex: 0\n",
			line:     1,
			expected: ErrInvalidNumber,
		},
		{
			name:     "non-finite number",
			input:    "Light: location_x: NaN location_y: 0 location_z: 0 intensity: 1 comment: bad\n",
			line:     1,
			expected: ErrInvalidNumber,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDescriptor(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !errors.Is(err, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, err)
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("Expected *ParseError, got %T", err)
			}
			if parseErr.Line != tt.line {
				t.Errorf("Expected error on line %d, got %d", tt.line, parseErr.Line)
			}
		})
	}
}

func TestWriteDescriptor_RoundTrip(t *testing.T) {
	glass := material.NewMaterial()
	glass.KColor = 0.1
	glass.Color = core.NewVec3(1.0/3.0, 0.1, 0.7)
	glass.KDirect = 0.1
	glass.Ka = core.Splat(0.05)
	glass.Kd = core.Splat(1)
	glass.Ks = core.NewVec3(1e-7, 0.5, 123456.789)
	glass.Shininess = 1000
	glass.KReflection = 0.1
	glass.KTransmission = 0.8
	glass.RefractiveIndex = 1.52
	glass.Comment = "glass"

	original := &SceneDescriptor{
		Comment:    "round trip scene",
		FovXDegree: 70.123456789,
		SkyboxPath: "textures/sky box.png",
		Lights: []lights.PointLight{
			lights.NewPointLight(core.NewVec3(6, 10, 0), 1, "one"),
			lights.NewPointLight(core.NewVec3(-0.1, -1e-3, 2.5e10), 0.25, ""),
		},
		TexturePaths: []string{"moon.jpg", "/abs/marble.png"},
		Materials:    []material.Material{glass, material.NewMaterial()},
		Spheres: []geometry.Sphere{
			geometry.NewSphere(core.NewVec3(0, 0, -10), 0.2, 0, 1),
			geometry.NewSphere(core.NewVec3(1.1, -2.2, -30.000001), 2.5, 1, 0),
		},
	}

	var buf bytes.Buffer
	if err := WriteDescriptor(&buf, original); err != nil {
		t.Fatalf("WriteDescriptor failed: %v", err)
	}

	parsed, err := ParseDescriptor(&buf)
	if err != nil {
		t.Fatalf("ParseDescriptor failed on written output: %v\n%s", err, buf.String())
	}

	if !reflect.DeepEqual(original, parsed) {
		t.Errorf("Round trip mismatch:\noriginal: %+v\nparsed:   %+v", original, parsed)
	}
}

func TestWriteDescriptor_Stable(t *testing.T) {
	desc, err := ParseDescriptor(strings.NewReader(sampleDescriptor))
	if err != nil {
		t.Fatalf("ParseDescriptor failed: %v", err)
	}

	var first, second bytes.Buffer
	if err := WriteDescriptor(&first, desc); err != nil {
		t.Fatalf("WriteDescriptor failed: %v", err)
	}
	reparsed, err := ParseDescriptor(bytes.NewReader(first.Bytes()))
	if err != nil {
		t.Fatalf("ParseDescriptor failed: %v", err)
	}
	if err := WriteDescriptor(&second, reparsed); err != nil {
		t.Fatalf("WriteDescriptor failed: %v", err)
	}

	if first.String() != second.String() {
		t.Errorf("Written text changed between round trips:\n%s\n---\n%s", first.String(), second.String())
	}
}

func TestSaveAndLoadDescriptor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.txt")
	desc := &SceneDescriptor{
		Comment:    "saved",
		FovXDegree: 45,
		Spheres:    []geometry.Sphere{geometry.NewSphere(core.NewVec3(0, 0, -5), 1, 0, 0)},
	}

	if err := SaveDescriptor(path, desc); err != nil {
		t.Fatalf("SaveDescriptor failed: %v", err)
	}
	loaded, err := LoadDescriptor(path)
	if err != nil {
		t.Fatalf("LoadDescriptor failed: %v", err)
	}
	if !reflect.DeepEqual(desc, loaded) {
		t.Errorf("Expected %+v, got %+v", desc, loaded)
	}
}

func TestLoadDescriptor_Missing(t *testing.T) {
	_, err := LoadDescriptor(filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected os.ErrNotExist, got %v", err)
	}
}
