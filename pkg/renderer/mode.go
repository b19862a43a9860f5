package renderer

import (
	"fmt"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/integrator"
)

// Mode selects one of the demo stages, each a richer subset of the full
// algorithm. The color stages ignore the scene; the later stages trace it.
type Mode int

const (
	ModeStartingPoint Mode = iota
	ModeOneColor
	ModeRandomColor
	ModeColorSpace
	ModeLinearColors
	ModeRays
	ModeOneSphere
	ModeOneSphereColor
	ModeSphereList
	ModeNearestSphere
	ModeDiffuse
	ModeAmbient
	ModeSpecular
	ModeTexture
	ModeShadow
	ModeReflection
	ModeTransparency
)

var modeInfo = [...]struct {
	name        string
	description string
}{
	ModeStartingPoint:  {"starting-point", "Starting point: black image"},
	ModeOneColor:       {"one-color", "Colors: one color"},
	ModeRandomColor:    {"random-color", "Colors: random color"},
	ModeColorSpace:     {"color-space", "Colors: color space"},
	ModeLinearColors:   {"linear-colors", "Colors: linear colors"},
	ModeRays:           {"rays", "Rays calculation"},
	ModeOneSphere:      {"one-sphere", "Intersection: one sphere"},
	ModeOneSphereColor: {"one-sphere-color", "Intersection: one sphere with color"},
	ModeSphereList:     {"sphere-list", "Intersection: list of spheres"},
	ModeNearestSphere:  {"nearest-sphere", "Intersection: finding the nearest sphere"},
	ModeDiffuse:        {"diffuse", "Lighting: diffuse"},
	ModeAmbient:        {"ambient", "Lighting: ambient"},
	ModeSpecular:       {"specular", "Lighting: specular"},
	ModeTexture:        {"texture", "Texture"},
	ModeShadow:         {"shadow", "Shadow"},
	ModeReflection:     {"reflection", "Reflection"},
	ModeTransparency:   {"transparency", "Transparency"},
}

// Modes returns every mode in stage order
func Modes() []Mode {
	modes := make([]Mode, len(modeInfo))
	for i := range modes {
		modes[i] = Mode(i)
	}
	return modes
}

// ParseMode parses a mode name, case-insensitively
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, info := range modeInfo {
		if info.name == name {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown render mode %q", s)
}

// Valid reports whether m is a defined mode
func (m Mode) Valid() bool {
	return m >= 0 && int(m) < len(modeInfo)
}

func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeInfo[m].name
}

// Description returns a human readable label for the stage
func (m Mode) Description() string {
	if !m.Valid() {
		return m.String()
	}
	return modeInfo[m].description
}

// NeedsScene reports whether rendering in this mode reads the scene
func (m Mode) NeedsScene() bool {
	return m >= ModeRays
}

// MarshalText implements encoding.TextMarshaler
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid render mode %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (m *Mode) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	return m.UnmarshalText([]byte(name))
}

// MarshalYAML implements yaml.Marshaler
func (m Mode) MarshalYAML() (interface{}, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid render mode %d", int(m))
	}
	return m.String(), nil
}

// features returns the integrator terms of a tracing stage. Each stage adds
// to the one before it.
func (m Mode) features() integrator.Features {
	f := integrator.Features{Scope: integrator.ScopeNearest}
	switch {
	case m == ModeOneSphere:
		f.Scope = integrator.ScopeFirstSphere
		f.Silhouette = true
		return f
	case m == ModeOneSphereColor:
		f.Scope = integrator.ScopeFirstSphere
	case m == ModeSphereList:
		f.Scope = integrator.ScopeFirstInList
	}
	f.BaseColor = true
	f.Diffuse = m >= ModeDiffuse
	f.Ambient = m >= ModeAmbient
	f.Specular = m >= ModeSpecular
	f.Texture = m >= ModeTexture
	f.Shadow = m >= ModeShadow
	f.Reflection = m >= ModeReflection
	f.Transmission = m >= ModeTransparency
	return f
}
