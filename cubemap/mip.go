package cubemap

const (
	// Face size of mip level 0.
	BaseFaceSize = 512

	// Face sizes never drop below this value regardless of mip level.
	MinFaceSize = 8

	// Face size of the diffuse irradiance cubemap.
	DiffuseFaceSize = 32

	// Number of specular mip levels produced by the bake and crop stages.
	MipLevels = 10

	// Number of specular mip levels packed into the container. The last
	// extracted level is not packed.
	PackedMipLevels = 9
)

// FaceSize returns the face size for a specular mip level.
func FaceSize(mip int) int {
	if mip < 0 {
		mip = 0
	}
	if mip >= 31 {
		return MinFaceSize
	}
	size := BaseFaceSize >> uint(mip)
	if size < MinFaceSize {
		return MinFaceSize
	}
	return size
}
