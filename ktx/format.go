package ktx

import "fmt"

// Vulkan pixel formats accepted for the packed cubemaps.
const (
	FormatRGBA16F   = "R16G16B16A16_SFLOAT"
	FormatE5B9G9R9F = "E5B9G9R9_UFLOAT_PACK32"
)

// DefaultFormat is used unless configured otherwise.
const DefaultFormat = FormatRGBA16F

// DefaultZstdLevel is the supercompression level passed to the tool.
const DefaultZstdLevel = 3

// ValidateFormat rejects pixel formats the containers are not built with.
func ValidateFormat(format string) error {
	switch format {
	case FormatRGBA16F, FormatE5B9G9R9F:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
