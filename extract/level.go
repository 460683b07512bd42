package extract

import (
	"fmt"

	"github.com/cubebake/cubebake/cubemap"
)

// Level identifies a unit of extraction work: one specular mip level or
// the diffuse cubemap.
type Level struct {
	// Specular mip index; negative for the diffuse level.
	Mip int
}

// Diffuse is the level of the diffuse irradiance cubemap.
var Diffuse = Level{Mip: -1}

// Mip returns the level for a specular mip index.
func Mip(index int) Level {
	return Level{Mip: index}
}

func (l Level) IsDiffuse() bool {
	return l.Mip < 0
}

// FaceSize returns the face edge length in pixels for this level.
func (l Level) FaceSize() int {
	if l.IsDiffuse() {
		return cubemap.DiffuseFaceSize
	}
	return cubemap.FaceSize(l.Mip)
}

func (l Level) String() string {
	if l.IsDiffuse() {
		return "diffuse"
	}
	return fmt.Sprintf("mip%d", l.Mip)
}

// Label is the progress row label for the level's faces.
func (l Level) Label() string {
	if l.IsDiffuse() {
		return "Diffuse cubemap"
	}
	return fmt.Sprintf("Mip %d faces", l.Mip)
}

// CompositePath returns the composite render consumed by the level.
func (l Level) CompositePath(layout cubemap.Layout) string {
	if l.IsDiffuse() {
		return layout.DiffuseCompositePath()
	}
	return layout.CompositePath(l.Mip)
}

// OutputDir returns the directory receiving the level's face files.
func (l Level) OutputDir(layout cubemap.Layout) string {
	if l.IsDiffuse() {
		return layout.DiffuseDir()
	}
	return layout.MipDir(l.Mip)
}
