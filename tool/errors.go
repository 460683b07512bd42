package tool

import "errors"

var (
	ErrSpawn     = errors.New("tool: could not run process")
	ErrCancelled = errors.New("tool: process cancelled")
	ErrNotFound  = errors.New("tool: executable not found")
)
