package render

import (
	"testing"

	"github.com/speccygo/zx48/internal/bus"
	"github.com/stretchr/testify/require"
)

func TestFrameProducesExpectedDimensions(t *testing.T) {
	b := bus.New()
	img := Frame(b, nil, false)
	require.Equal(t, ScreenWidth, img.Bounds().Dx())
	require.Equal(t, ScreenHeight, img.Bounds().Dy())
}

func TestFrameBorderFillsEdgesWithLastColour(t *testing.T) {
	b := bus.New()
	log := []BorderChange{{FrameTstate: 0, Colour: 2}, {FrameTstate: 100, Colour: 4}}
	img := Frame(b, log, false)

	got := img.RGBAAt(0, 0)
	want := palette[4]
	require.Equal(t, want, got)
}

func TestActivePixelReflectsInkWhenBitSet(t *testing.T) {
	b := bus.New()
	// Set bit 7 of the first bitmap byte (top-left 8x8 cell) and an
	// attribute of ink=white(7), paper=black(0), not bright.
	b.Write8(0x4000, 0x80)
	b.Write8(0x5800, 0x07)

	c := activePixel(b, 0, 0, false)
	require.Equal(t, palette[7], c)
}

func TestActivePixelFlashSwapsInkAndPaperWhenOn(t *testing.T) {
	b := bus.New()
	b.Write8(0x4000, 0x80)
	b.Write8(0x5800, 0x87) // ink=white, paper=black, flash set

	normal := activePixel(b, 0, 0, false)
	flashed := activePixel(b, 0, 0, true)
	require.NotEqual(t, normal, flashed)
}
