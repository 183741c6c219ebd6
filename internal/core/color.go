package core

import "fmt"

// RGB is a packed 24-bit color, 0xRRGGBB. The top byte is ignored.
type RGB uint32

// PackRGB builds an RGB from its channels.
func PackRGB(r, g, b uint8) RGB {
	return RGB(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// R returns the red channel.
func (c RGB) R() uint8 { return uint8(c >> 16) }

// G returns the green channel.
func (c RGB) G() uint8 { return uint8(c >> 8) }

// B returns the blue channel.
func (c RGB) B() uint8 { return uint8(c) }

// Scale multiplies each channel by f, saturating at 0 and 255.
func (c RGB) Scale(f float64) RGB {
	return PackRGB(scaleChannel(c.R(), f), scaleChannel(c.G(), f), scaleChannel(c.B(), f))
}

// Hex formats the color as "#rrggbb", the form lipgloss accepts.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R(), c.G(), c.B())
}

// Lerp blends a toward b by t in [0, 1].
func Lerp(a, b RGB, t float64) RGB {
	t = ClampF(t, 0, 1)
	mix := func(x, y uint8) uint8 {
		return clamp255(float64(x) + (float64(y)-float64(x))*t)
	}
	return PackRGB(mix(a.R(), b.R()), mix(a.G(), b.G()), mix(a.B(), b.B()))
}

func scaleChannel(v uint8, f float64) uint8 {
	return clamp255(float64(v) * f)
}

// clamp255 truncates v into a valid channel value.
func clamp255(v float64) uint8 {
	if v <= 0 || v != v {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
