package bake

import "errors"

var (
	ErrBakeFailed     = errors.New("bake: renderer exited with non-zero status")
	ErrMissingEnvMap  = errors.New("bake: no environment map specified")
	ErrMissingScene   = errors.New("bake: no scene file specified")
	ErrRendererFailed = errors.New("bake: could not run renderer")
)
