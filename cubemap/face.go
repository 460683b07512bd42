// Package cubemap describes where the six faces of a cubemap live inside a
// composite layout render and how the per-face files are named on disk.
package cubemap

import "fmt"

// Face identifies one of the six cubemap faces. The declaration order is the
// positional order expected by the container tool.
type Face uint8

const (
	Back Face = iota
	Front
	Top
	Bottom
	Right
	Left
)

// Faces lists all faces in container order.
var Faces = [6]Face{Back, Front, Top, Bottom, Right, Left}

var faceNames = [6]string{"BACK", "FRONT", "TOP", "BOTTOM", "RIGHT", "LEFT"}

// Cell coordinates of each face in the 4x3 composite grid.
var faceCells = [6][2]int{
	{3, 1}, // BACK
	{1, 1}, // FRONT
	{2, 0}, // TOP
	{2, 2}, // BOTTOM
	{2, 1}, // RIGHT
	{0, 1}, // LEFT
}

func (f Face) String() string {
	if int(f) >= len(faceNames) {
		return fmt.Sprintf("Face(%d)", uint8(f))
	}
	return faceNames[f]
}

// Index returns the 1-based face number used for output file names.
func (f Face) Index() int {
	return int(f) + 1
}

// FileName returns the name of the file holding this face inside a level
// directory (0001.exr .. 0006.exr).
func (f Face) FileName() string {
	return fmt.Sprintf("%04d.exr", f.Index())
}

// A square region of a composite image, in pixels.
type Rect struct {
	X, Y int
	Size int
}

// Max returns the inclusive bottom-right corner of the rectangle.
func (r Rect) Max() (int, int) {
	return r.X + r.Size - 1, r.Y + r.Size - 1
}

// Overlaps reports whether the two rectangles share at least one pixel.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.Size && o.X < r.X+r.Size &&
		r.Y < o.Y+o.Size && o.Y < r.Y+r.Size
}

// FaceRect returns the region occupied by face in a composite image whose
// faces are size pixels wide.
func FaceRect(face Face, size int) Rect {
	cell := faceCells[face]
	return Rect{X: cell[0] * size, Y: cell[1] * size, Size: size}
}

// LayoutWidth returns the composite image width for the given face size.
func LayoutWidth(size int) int { return 4 * size }

// LayoutHeight returns the composite image height for the given face size.
func LayoutHeight(size int) int { return 3 * size }
