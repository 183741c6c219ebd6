package core

import "image"

// PixelBuffer is an RGBA frame buffer with 4 bytes per pixel, rows top to bottom.
// Alpha is always fully opaque. The renderer owns it for the duration of a frame
// and then hands it to a presenter as a whole.
type PixelBuffer struct {
	width  int
	height int
	pix    []uint8
}

// NewPixelBuffer creates a buffer of the given dimensions filled with opaque black.
func NewPixelBuffer(width, height int) *PixelBuffer {
	b := &PixelBuffer{}
	b.Resize(width, height)
	return b
}

// Width returns the buffer width in pixels.
func (b *PixelBuffer) Width() int {
	return b.width
}

// Height returns the buffer height in pixels.
func (b *PixelBuffer) Height() int {
	return b.height
}

// Resize changes the buffer dimensions. Content is not preserved.
func (b *PixelBuffer) Resize(width, height int) {
	width = Max(width, 0)
	height = Max(height, 0)
	if width == b.width && height == b.height && b.pix != nil {
		return
	}
	b.width = width
	b.height = height
	b.pix = make([]uint8, width*height*4)
	b.Fill(0)
}

// Fill sets every pixel to c.
func (b *PixelBuffer) Fill(c RGB) {
	r, g, bl := c.R(), c.G(), c.B()
	for i := 0; i < len(b.pix); i += 4 {
		b.pix[i] = r
		b.pix[i+1] = g
		b.pix[i+2] = bl
		b.pix[i+3] = 0xff
	}
}

// Set writes the pixel at (x, y).
// Out-of-bounds coordinates are silently ignored.
func (b *PixelBuffer) Set(x, y int, c RGB) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	b.put(b.Offset(x, y), c.R(), c.G(), c.B())
}

// Get returns the pixel at (x, y), or black when out of bounds.
func (b *PixelBuffer) Get(x, y int) RGB {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return 0
	}
	i := b.Offset(x, y)
	return PackRGB(b.pix[i], b.pix[i+1], b.pix[i+2])
}

// Offset returns the byte offset of pixel (x, y). Consecutive pixels in a row
// are 4 bytes apart and consecutive rows are Stride bytes apart.
func (b *PixelBuffer) Offset(x, y int) int {
	return (y*b.width + x) * 4
}

// Stride returns the number of bytes per row.
func (b *PixelBuffer) Stride() int {
	return b.width * 4
}

// Shade writes texel scaled by light at byte offset i.
// Channel products saturate at 255 instead of wrapping.
func (b *PixelBuffer) Shade(i int, texel RGB, light float64) {
	b.put(i, scaleChannel(texel.R(), light), scaleChannel(texel.G(), light), scaleChannel(texel.B(), light))
}

func (b *PixelBuffer) put(i int, r, g, bl uint8) {
	b.pix[i] = r
	b.pix[i+1] = g
	b.pix[i+2] = bl
	b.pix[i+3] = 0xff
}

// Pix exposes the raw RGBA bytes. Presenters must not retain the slice past the frame.
func (b *PixelBuffer) Pix() []uint8 {
	return b.pix
}

// Image wraps the buffer as an *image.RGBA sharing the same memory.
func (b *PixelBuffer) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    b.pix,
		Stride: b.Stride(),
		Rect:   image.Rect(0, 0, b.width, b.height),
	}
}
