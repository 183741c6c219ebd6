package render

import (
	"fmt"

	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/world"
)

// Presenter displays a finished frame. The buffer is only valid during the call.
type Presenter interface {
	Present(buf *core.PixelBuffer) error
}

// PresenterFunc adapts a function to the Presenter interface.
type PresenterFunc func(buf *core.PixelBuffer) error

// Present implements Presenter.
func (f PresenterFunc) Present(buf *core.PixelBuffer) error {
	return f(buf)
}

// Options configures a Renderer.
type Options struct {
	FOV        float64 // Horizontal field of view in degrees
	PlaneWidth float64 // Projection plane width in world units
	Workers    int     // Goroutines used for ray casting
	Walls      Lighting
	Flats      Lighting
}

// DefaultOptions returns a 60 degree view with the standard lighting.
func DefaultOptions() Options {
	return Options{
		FOV:        60,
		PlaneWidth: 2,
		Workers:    1,
		Walls:      DefaultWallLighting(),
		Flats:      DefaultFlatLighting(),
	}
}

// Renderer runs the frame pipeline: cast, collect spans, rasterize, present.
// It keeps no state between frames apart from its buffer and projection.
type Renderer struct {
	opts   Options
	proj   *Projection
	caster *Raycaster
	spans  *SpanCollector
	raster *Rasterizer
	buf    *core.PixelBuffer
}

// New creates a renderer for a width x height frame.
func New(width, height int, opts Options) (*Renderer, error) {
	r := &Renderer{opts: opts, buf: core.NewPixelBuffer(0, 0)}
	if err := r.Resize(width, height); err != nil {
		return nil, err
	}
	return r, nil
}

// Resize rebuilds the projection and buffer for a new frame size.
func (r *Renderer) Resize(width, height int) error {
	if r.proj != nil && r.proj.ScreenWidth == width && r.proj.ScreenHeight == height {
		return nil
	}
	proj, err := NewProjection(width, height, r.opts.FOV, r.opts.PlaneWidth)
	if err != nil {
		return fmt.Errorf("render: resize to %dx%d: %w", width, height, err)
	}

	r.proj = proj
	r.caster = NewRaycaster(proj, r.opts.Walls)
	r.caster.SetWorkers(r.opts.Workers)
	r.spans = NewSpanCollector(proj, r.opts.Flats)
	r.buf.Resize(width, height)
	r.raster = NewRasterizer(r.buf)
	return nil
}

// Projection returns the current projection.
func (r *Renderer) Projection() *Projection {
	return r.proj
}

// Buffer returns the frame buffer.
func (r *Renderer) Buffer() *core.PixelBuffer {
	return r.buf
}

// RenderFrame draws the view from pov into the buffer and returns it.
func (r *Renderer) RenderFrame(pov *world.PointOfView, grid *world.GridMap) *core.PixelBuffer {
	columns := r.caster.CastAll(pov, grid)
	spans := r.spans.Collect(pov, columns)

	r.raster.DrawColumns(columns)
	r.raster.DrawSpans(spans)
	return r.buf
}

// Frame renders one frame and hands it to p.
func (r *Renderer) Frame(pov *world.PointOfView, grid *world.GridMap, p Presenter) error {
	buf := r.RenderFrame(pov, grid)
	if err := p.Present(buf); err != nil {
		return fmt.Errorf("render: present: %w", err)
	}
	return nil
}
