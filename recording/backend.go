package recording

import (
	"image"
	"io"
)

// Canvas describes the drawing surface handed to Backend.Begin.
type Canvas struct {
	Width, Height float64

	// Background is drawn first unless HasBackground is false.
	Background    Paint
	HasBackground bool
}

// Style is the resolved style of one frame.
type Style struct {
	Fill      Paint
	Filled    bool
	Stroke    Paint
	Stroked   bool
	LineWidth float64

	// Ghost is 0 for the current time and i for the i-th ghost layer.
	Ghost int
}

// Backend is the interface that all export backends must implement.
// Backends receive frames in drawing order and translate them to their
// output format (SVG elements, plotter moves, pixels).
//
// Backends are created via the registry using NewBackend(name) and
// registered via Register() in their init() functions.
type Backend interface {
	// Begin initializes the backend for the given canvas. It must be
	// called before DrawPath.
	Begin(c Canvas) error

	// DrawPath draws one frame outline in scene coordinates.
	DrawPath(p *Path, s Style) error

	// End finalizes the output. Output methods are valid afterwards.
	End() error
}

// WriterBackend extends Backend with the ability to write output to an
// io.Writer.
type WriterBackend interface {
	Backend

	// WriteTo writes the rendered content. It should only be called
	// after End().
	WriteTo(w io.Writer) (int64, error)
}

// FileBackend extends Backend with the ability to save output directly to
// a file.
type FileBackend interface {
	Backend

	// SaveToFile saves the rendered content. It should only be called
	// after End().
	SaveToFile(path string) error
}

// ImageBackend extends Backend with access to rendered pixels.
type ImageBackend interface {
	Backend

	// Image returns the rendered image, or nil before End().
	Image() image.Image
}
