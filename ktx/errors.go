package ktx

import "errors"

var (
	ErrMissingFaces  = errors.New("ktx: missing face files")
	ErrToolFailed    = errors.New("ktx: container tool failed")
	ErrOutputDir     = errors.New("ktx: could not create output directory")
	ErrUnknownFormat = errors.New("ktx: unsupported pixel format")
)
