package export

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/piwi3910/madori/internal/model"
	"github.com/piwi3910/madori/internal/render"
)

// EncodePNG renders scene without any selection and writes it as PNG.
func EncodePNG(w io.Writer, scene *model.Scene, opts render.Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", opts.Width, opts.Height)
	}
	img := render.Render(scene, model.Ref{}, opts)
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// ExportPNG writes the rendered plan to path.
func ExportPNG(path string, scene *model.Scene, opts render.Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create PNG file: %w", err)
	}
	if err := EncodePNG(f, scene, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write PNG file: %w", err)
	}
	return nil
}
