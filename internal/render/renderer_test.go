package render

import (
	"bytes"
	"errors"
	"testing"

	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/world"
)

func TestNewRejectsBadOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.FOV = 0
	if _, err := New(testW, testH, opts); !errors.Is(err, ErrInvalidProjection) {
		t.Errorf("expected ErrInvalidProjection, got %v", err)
	}
}

func TestRenderFrameWritesEveryPixel(t *testing.T) {
	grid := terraceRoom(t)
	r := newTestRenderer(t, 1)
	const marker core.RGB = 0xff00ff

	for _, pov := range views() {
		r.Buffer().Fill(marker)
		buf := r.RenderFrame(pov, grid)
		for y := 0; y < testH; y++ {
			for x := 0; x < testW; x++ {
				if buf.Get(x, y) == marker {
					t.Fatalf("pov %v bearing %v: pixel (%d, %d) was not drawn", pov.Position, pov.Bearing, x, y)
				}
			}
		}
	}
}

func TestRenderFrameIsDeterministic(t *testing.T) {
	grid := terraceRoom(t)
	serial := newTestRenderer(t, 1)
	parallel := newTestRenderer(t, 4)

	for _, pov := range views() {
		first := append([]uint8(nil), serial.RenderFrame(pov, grid).Pix()...)
		second := serial.RenderFrame(pov, grid).Pix()
		if !bytes.Equal(first, second) {
			t.Fatalf("rendering the same view twice differs at %v bearing %v", pov.Position, pov.Bearing)
		}
		if !bytes.Equal(first, parallel.RenderFrame(pov, grid).Pix()) {
			t.Fatalf("parallel render differs at %v bearing %v", pov.Position, pov.Bearing)
		}
	}
}

func TestRenderFrameMirrorSymmetry(t *testing.T) {
	grid := boxRoom(t)
	r := newTestRenderer(t, 1)
	pov := world.NewPointOfView(core.V(5, 5), 0.5, 0)

	buf := r.RenderFrame(pov, grid)
	// Standing on the room's axis, the outline of the far wall is mirrored.
	for x := 0; x < testW/2; x++ {
		left := wallStrips(r.caster.CastColumn(pov, grid, x))
		right := wallStrips(r.caster.CastColumn(pov, grid, testW-1-x))
		if len(left) != len(right) {
			t.Fatalf("columns %d and %d show different walls", x, testW-1-x)
		}
		for i := range left {
			if core.Abs(left[i].TopY-right[i].TopY) > 1 || core.Abs(left[i].BottomY-right[i].BottomY) > 1 {
				t.Errorf("column %d wall [%d, %d) vs column %d [%d, %d)",
					x, left[i].TopY, left[i].BottomY, testW-1-x, right[i].TopY, right[i].BottomY)
			}
		}
	}
	if buf.Width() != testW || buf.Height() != testH {
		t.Errorf("buffer is %dx%d", buf.Width(), buf.Height())
	}
}

func TestFramePresents(t *testing.T) {
	grid := boxRoom(t)
	r := newTestRenderer(t, 1)
	pov := world.NewPointOfView(core.V(5, 5), 0.5, 90)

	calls := 0
	err := r.Frame(pov, grid, PresenterFunc(func(buf *core.PixelBuffer) error {
		calls++
		if buf != r.Buffer() {
			t.Error("presenter received a different buffer")
		}
		return nil
	}))
	if err != nil || calls != 1 {
		t.Fatalf("Frame() = %v after %d presents", err, calls)
	}

	boom := errors.New("boom")
	err = r.Frame(pov, grid, PresenterFunc(func(*core.PixelBuffer) error { return boom }))
	if !errors.Is(err, boom) {
		t.Errorf("expected the presenter error to be wrapped, got %v", err)
	}
}

func TestResize(t *testing.T) {
	grid := boxRoom(t)
	r := newTestRenderer(t, 2)

	if err := r.Resize(40, 30); err != nil {
		t.Fatal(err)
	}
	buf := r.RenderFrame(world.NewPointOfView(core.V(5, 5), 0.5, 45), grid)
	if buf.Width() != 40 || buf.Height() != 30 || r.Projection().Columns() != 40 {
		t.Errorf("after resize buffer is %dx%d with %d columns", buf.Width(), buf.Height(), r.Projection().Columns())
	}
	if err := r.Resize(0, 30); err == nil {
		t.Error("expected an error resizing to zero width")
	}
}
