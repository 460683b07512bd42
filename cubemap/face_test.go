package cubemap

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFaceRectTable(t *testing.T) {
	type spec struct {
		face Face
		expX int
		expY int
	}
	specs := []spec{
		{Back, 3 * 64, 64},
		{Front, 64, 64},
		{Top, 2 * 64, 0},
		{Bottom, 2 * 64, 2 * 64},
		{Right, 2 * 64, 64},
		{Left, 0, 64},
	}

	for index, s := range specs {
		r := FaceRect(s.face, 64)
		if r.X != s.expX || r.Y != s.expY || r.Size != 64 {
			t.Fatalf("[spec %d] expected %s at (%d, %d) size 64; got (%d, %d) size %d", index, s.face, s.expX, s.expY, r.X, r.Y, r.Size)
		}
	}
}

func TestFaceRectsAreDisjointAndInsideCanvas(t *testing.T) {
	for _, size := range []int{1, 8, 32, 33, 512} {
		w, h := LayoutWidth(size), LayoutHeight(size)
		for i, a := range Faces {
			ra := FaceRect(a, size)
			maxX, maxY := ra.Max()
			require.GreaterOrEqual(t, ra.X, 0)
			require.GreaterOrEqual(t, ra.Y, 0)
			require.Less(t, maxX, w, "face %s at size %d", a, size)
			require.Less(t, maxY, h, "face %s at size %d", a, size)

			for _, b := range Faces[i+1:] {
				assert.False(t, ra.Overlaps(FaceRect(b, size)), "faces %s and %s overlap at size %d", a, b, size)
			}
		}
	}
}

func TestRectMaxIsInclusive(t *testing.T) {
	x1, y1 := Rect{X: 16, Y: 8, Size: 8}.Max()
	assert.Equal(t, 23, x1)
	assert.Equal(t, 15, y1)
}

func TestFaceNaming(t *testing.T) {
	expNames := []string{"0001.exr", "0002.exr", "0003.exr", "0004.exr", "0005.exr", "0006.exr"}
	for i, face := range Faces {
		assert.Equal(t, i+1, face.Index())
		assert.Equal(t, expNames[i], face.FileName())
	}
	assert.Equal(t, "BOTTOM", Bottom.String())
	assert.Equal(t, "Face(9)", Face(9).String())
}

func TestFaceSize(t *testing.T) {
	expSizes := []int{512, 256, 128, 64, 32, 16, 8, 8, 8, 8}
	for mip, exp := range expSizes {
		if got := FaceSize(mip); got != exp {
			t.Fatalf("expected face size for mip %d to be %d; got %d", mip, exp, got)
		}
	}
	assert.Equal(t, MinFaceSize, FaceSize(40))
	assert.Equal(t, BaseFaceSize, FaceSize(-1))
}

func TestLayoutPaths(t *testing.T) {
	l := Layout{RenderDir: "render", CroppedDir: filepath.Join("render", "cropped")}

	assert.Equal(t, filepath.Join("render", "cubemap_mip3.hdr"), l.CompositePath(3))
	assert.Equal(t, filepath.Join("render", "cubemap_diffuse.hdr"), l.DiffuseCompositePath())
	assert.Equal(t, filepath.Join("render", "cropped", "mip7"), l.MipDir(7))
	assert.Equal(t, filepath.Join("render", "cropped", "diffuse"), l.DiffuseDir())
	assert.Equal(t, filepath.Join("render", "cropped", "mip0", "0004.exr"), FacePath(l.MipDir(0), Bottom))
	assert.Equal(t, filepath.Join("output", "cropped"), DefaultLayout().CroppedDir)
}
