package indexer

import (
	"fmt"
	"image"

	// Registered decoders for image.DecodeConfig.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"imgserve/internal/filesystem"
)

// readDimensions decodes only the image header at path.
func readDimensions(path string) (width, height int, err error) {
	f, err := filesystem.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode header of %s: %w", path, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, fmt.Errorf("invalid %s dimensions %dx%d in %s", format, cfg.Width, cfg.Height, path)
	}
	return cfg.Width, cfg.Height, nil
}
