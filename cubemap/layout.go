package cubemap

import (
	"fmt"
	"path/filepath"
)

const diffuseName = "diffuse"

// Layout resolves the on-disk locations shared by the bake, crop and pack
// stages.
type Layout struct {
	// Directory receiving the composite renders.
	RenderDir string

	// Root of the per-level face directories.
	CroppedDir string
}

// DefaultLayout returns the layout rooted at the output/ directory.
func DefaultLayout() Layout {
	return Layout{
		RenderDir:  "output",
		CroppedDir: filepath.Join("output", "cropped"),
	}
}

// CompositePath returns the composite render for a specular mip level.
func (l Layout) CompositePath(mip int) string {
	return filepath.Join(l.RenderDir, fmt.Sprintf("cubemap_mip%d.hdr", mip))
}

// DiffuseCompositePath returns the composite render for the diffuse cubemap.
func (l Layout) DiffuseCompositePath() string {
	return filepath.Join(l.RenderDir, "cubemap_"+diffuseName+".hdr")
}

// MipDir returns the face directory of a specular mip level.
func (l Layout) MipDir(mip int) string {
	return MipDir(l.CroppedDir, mip)
}

// DiffuseDir returns the face directory of the diffuse cubemap.
func (l Layout) DiffuseDir() string {
	return DiffuseDir(l.CroppedDir)
}

// MipDir returns the face directory of a specular mip level below root.
func MipDir(root string, mip int) string {
	return filepath.Join(root, fmt.Sprintf("mip%d", mip))
}

// DiffuseDir returns the diffuse face directory below root.
func DiffuseDir(root string) string {
	return filepath.Join(root, diffuseName)
}

// FacePath returns the path of a face file inside a level directory.
func FacePath(levelDir string, face Face) string {
	return filepath.Join(levelDir, face.FileName())
}
