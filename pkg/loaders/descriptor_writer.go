package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// WriteDescriptor serializes desc in the descriptor format, grouped by record
// type. Numbers use the shortest representation that parses back to the
// same float64, so ParseDescriptor(WriteDescriptor(d)) reproduces d.
func WriteDescriptor(w io.Writer, desc *SceneDescriptor) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%s: %s\n\n", recordComment, oneLine(desc.Comment))
	fmt.Fprintf(bw, "%s: %s\n", recordFov, formatFloat(desc.FovXDegree))
	fmt.Fprintf(bw, "%s: %s\n\n", recordSkybox, oneLine(desc.SkyboxPath))

	for _, l := range desc.Lights {
		fmt.Fprintf(bw, "%s: %s intensity: %s comment: %s\n",
			recordLight,
			formatVec3(l.Position, "location_x", "location_y", "location_z"),
			formatFloat(l.Intensity),
			oneLine(l.Comment))
	}
	bw.WriteString("\n")

	for _, path := range desc.TexturePaths {
		fmt.Fprintf(bw, "%s: %s\n", recordTexture, oneLine(path))
	}
	bw.WriteString("\n")

	for _, m := range desc.Materials {
		fmt.Fprintf(bw, "%s: kColor: %s %s kDirect: %s %s %s %s shininess: %s kReflection: %s kTransmission: %s refractiveIndex: %s kTexture: %s comment: %s\n",
			recordMat,
			formatFloat(m.KColor),
			formatVec3(m.Color, "color_R", "color_G", "color_B"),
			formatFloat(m.KDirect),
			formatVec3(m.Ka, "ka_R", "ka_G", "ka_B"),
			formatVec3(m.Kd, "kd_R", "kd_G", "kd_B"),
			formatVec3(m.Ks, "ks_R", "ks_G", "ks_B"),
			formatFloat(m.Shininess),
			formatFloat(m.KReflection),
			formatFloat(m.KTransmission),
			formatFloat(m.RefractiveIndex),
			formatFloat(m.KTexture),
			oneLine(m.Comment))
	}
	bw.WriteString("\n")

	for _, s := range desc.Spheres {
		fmt.Fprintf(bw, "%s: %s radius: %s materialIndex: %d textureIndex: %d\n",
			recordSphere,
			formatVec3(s.Center, "center_x", "center_y", "center_z"),
			formatFloat(s.Radius),
			s.MaterialIndex,
			s.TextureIndex)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write scene descriptor: %w", err)
	}
	return nil
}

// SaveDescriptor writes desc to filename, replacing any existing file
func SaveDescriptor(filename string, desc *SceneDescriptor) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create scene descriptor: %w", err)
	}
	if err := WriteDescriptor(file, desc); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatVec3(v core.Vec3, xName, yName, zName string) string {
	return fmt.Sprintf("%s: %s %s: %s %s: %s",
		xName, formatFloat(v.X), yName, formatFloat(v.Y), zName, formatFloat(v.Z))
}

// oneLine keeps free text on a single record line
func oneLine(s string) string {
	return strings.TrimSpace(strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s))
}
