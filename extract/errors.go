package extract

import "errors"

var (
	ErrMissingComposite = errors.New("extract: missing composite image")
	ErrOutputDir        = errors.New("extract: could not create output directory")
)
