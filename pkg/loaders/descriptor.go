package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Descriptor parse failures. Every error returned by ParseDescriptor is a
// *ParseError wrapping one of these.
var (
	ErrMissingToken  = errors.New("missing token")
	ErrInvalidNumber = errors.New("invalid number")
	ErrUnknownRecord = errors.New("unknown record type")
)

// Record labels of the descriptor format
const (
	recordComment = "comment"
	recordFov     = "fovXdegree"
	recordSkybox  = "skyBoxImageFileName"
	recordLight   = "Light"
	recordTexture = "sphereTextureFileName"
	recordMat     = "Material"
	recordSphere  = "Sphere"
)

// SceneDescriptor is the parsed, unvalidated content of a scene descriptor
// file. Texture paths are kept as written; resolving and decoding them is
// left to the scene package.
type SceneDescriptor struct {
	Comment      string
	FovXDegree   float64
	SkyboxPath   string
	Lights       []lights.PointLight
	TexturePaths []string // Order defines the sphere texture index
	Materials    []material.Material
	Spheres      []geometry.Sphere
}

// ParseError reports the descriptor line that failed to parse
type ParseError struct {
	Line int    // 1-based line number
	Text string // Offending line
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v (in %q)", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// LoadDescriptor reads and parses a scene descriptor file
func LoadDescriptor(filename string) (*SceneDescriptor, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene descriptor: %w", err)
	}
	defer file.Close()

	desc, err := ParseDescriptor(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return desc, nil
}

// ParseDescriptor parses descriptor text, one record per line. Lines that
// are empty or whitespace-only are skipped.
func ParseDescriptor(reader io.Reader) (*SceneDescriptor, error) {
	desc := &SceneDescriptor{}

	scanner := bufio.NewScanner(reader)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := desc.parseRecord(line); err != nil {
			return nil, &ParseError{Line: lineNo, Text: line, Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}

	return desc, nil
}

// parseRecord dispatches on the text before the first colon
func (d *SceneDescriptor) parseRecord(line string) error {
	trimmed := strings.TrimSpace(line)
	colon := strings.IndexByte(trimmed, ':')
	if colon < 0 {
		return fmt.Errorf("%w: no record label", ErrUnknownRecord)
	}
	recordType := trimmed[:colon]
	s := &tokenScanner{line: trimmed}

	var err error
	switch recordType {
	case recordComment:
		d.Comment, err = s.rest(recordComment)
	case recordFov:
		d.FovXDegree, err = s.floatValue(recordFov)
	case recordSkybox:
		d.SkyboxPath, err = s.rest(recordSkybox)
	case recordTexture:
		var path string
		if path, err = s.rest(recordTexture); err == nil {
			d.TexturePaths = append(d.TexturePaths, path)
		}
	case recordLight:
		var light lights.PointLight
		if light, err = parseLight(s); err == nil {
			d.Lights = append(d.Lights, light)
		}
	case recordMat:
		var mat material.Material
		if mat, err = parseMaterial(s); err == nil {
			d.Materials = append(d.Materials, mat)
		}
	case recordSphere:
		var sphere geometry.Sphere
		if sphere, err = parseSphere(s); err == nil {
			d.Spheres = append(d.Spheres, sphere)
		}
	default:
		return fmt.Errorf("%w %q", ErrUnknownRecord, recordType)
	}
	return err
}

func parseLight(s *tokenScanner) (lights.PointLight, error) {
	var light lights.PointLight
	err := s.sequence(
		func() error { return s.label(recordLight) },
		func() error { return s.vec3(&light.Position, "location_x", "location_y", "location_z") },
		func() (err error) { light.Intensity, err = s.floatValue("intensity"); return },
		func() (err error) { light.Comment, err = s.rest("comment"); return },
	)
	return light, err
}

func parseMaterial(s *tokenScanner) (material.Material, error) {
	m := material.NewMaterial()
	err := s.sequence(
		func() error { return s.label(recordMat) },
		func() (err error) { m.KColor, err = s.floatValue("kColor"); return },
		func() error { return s.vec3(&m.Color, "color_R", "color_G", "color_B") },
		func() (err error) { m.KDirect, err = s.floatValue("kDirect"); return },
		func() error { return s.vec3(&m.Ka, "ka_R", "ka_G", "ka_B") },
		func() error { return s.vec3(&m.Kd, "kd_R", "kd_G", "kd_B") },
		func() error { return s.vec3(&m.Ks, "ks_R", "ks_G", "ks_B") },
		func() (err error) { m.Shininess, err = s.floatValue("shininess"); return },
		func() (err error) { m.KReflection, err = s.floatValue("kReflection"); return },
		func() (err error) { m.KTransmission, err = s.floatValue("kTransmission"); return },
		func() (err error) { m.RefractiveIndex, err = s.floatValue("refractiveIndex"); return },
		func() (err error) { m.KTexture, err = s.floatValue("kTexture"); return },
		func() (err error) { m.Comment, err = s.rest("comment"); return },
	)
	return m, err
}

func parseSphere(s *tokenScanner) (geometry.Sphere, error) {
	var sphere geometry.Sphere
	err := s.sequence(
		func() error { return s.label(recordSphere) },
		func() error { return s.vec3(&sphere.Center, "center_x", "center_y", "center_z") },
		func() (err error) { sphere.Radius, err = s.floatValue("radius"); return },
		func() (err error) { sphere.MaterialIndex, err = s.intValue("materialIndex"); return },
		func() (err error) { sphere.TextureIndex, err = s.intValue("textureIndex"); return },
	)
	return sphere, err
}

// tokenScanner walks whitespace separated "label: value" tokens of one line
type tokenScanner struct {
	line string
	pos  int
}

// next returns the next whitespace separated token, or "" at end of line
func (s *tokenScanner) next() string {
	for s.pos < len(s.line) && isSpace(s.line[s.pos]) {
		s.pos++
	}
	start := s.pos
	for s.pos < len(s.line) && !isSpace(s.line[s.pos]) {
		s.pos++
	}
	return s.line[start:s.pos]
}

func (s *tokenScanner) sequence(steps ...func() error) error {
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func (s *tokenScanner) label(name string) error {
	if tok := s.next(); tok != name+":" {
		if tok == "" {
			return fmt.Errorf("%w: expected %q at end of line", ErrMissingToken, name+":")
		}
		return fmt.Errorf("%w: expected %q, found %q", ErrMissingToken, name+":", tok)
	}
	return nil
}

func (s *tokenScanner) value(name string) (string, error) {
	if err := s.label(name); err != nil {
		return "", err
	}
	tok := s.next()
	if tok == "" {
		return "", fmt.Errorf("%w: no value after %q", ErrMissingToken, name+":")
	}
	return tok, nil
}

func (s *tokenScanner) floatValue(name string) (float64, error) {
	tok, err := s.value(name)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %s: %q", ErrInvalidNumber, name, tok)
	}
	return f, nil
}

func (s *tokenScanner) intValue(name string) (int, error) {
	tok, err := s.value(name)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %q", ErrInvalidNumber, name, tok)
	}
	return n, nil
}

func (s *tokenScanner) vec3(v *core.Vec3, xName, yName, zName string) error {
	var err error
	if v.X, err = s.floatValue(xName); err != nil {
		return err
	}
	if v.Y, err = s.floatValue(yName); err != nil {
		return err
	}
	v.Z, err = s.floatValue(zName)
	return err
}

// rest consumes the label and returns the remainder of the line, trimmed.
// An empty remainder is allowed.
func (s *tokenScanner) rest(name string) (string, error) {
	if err := s.label(name); err != nil {
		return "", err
	}
	remainder := strings.TrimSpace(s.line[s.pos:])
	s.pos = len(s.line)
	return remainder, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v'
}
