// Package render is a pure, stateless bridge from a Bus's display
// memory to a host-consumable image.RGBA, fulfilling spec.md §6's
// "Renderer interface (consumed externally)" with a concrete, testable
// function the core itself never calls.
package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/speccygo/zx48/internal/bus"
)

const (
	ActiveWidth  = 256
	ActiveHeight = 192
	BorderSize   = 48
	BorderHeight = 52

	ScreenWidth  = ActiveWidth + 2*BorderSize
	ScreenHeight = ActiveHeight + 2*BorderHeight

	bitmapBase    = 0x4000 - bus.ContendedStart
	attributeBase = 0x5800 - bus.ContendedStart
)

// palette is the 8 base Spectrum colours, indexed by the 3-bit
// INK/PAPER/BORDER field; brightness doubles the table at offset 8.
var palette = [16]color.RGBA{
	{0, 0, 0, 255}, {0, 0, 0xCD, 255}, {0xCD, 0, 0, 255}, {0xCD, 0, 0xCD, 255},
	{0, 0xCD, 0, 255}, {0, 0xCD, 0xCD, 255}, {0xCD, 0xCD, 0, 255}, {0xCD, 0xCD, 0xCD, 255},
	{0, 0, 0, 255}, {0, 0, 0xFF, 255}, {0xFF, 0, 0, 255}, {0xFF, 0, 0xFF, 255},
	{0, 0xFF, 0, 255}, {0, 0xFF, 0xFF, 255}, {0xFF, 0xFF, 0, 255}, {0xFF, 0xFF, 0xFF, 255},
}

// BorderChange mirrors ula.BorderChange's shape without importing the
// ula package, keeping this a dependency-free pure function of bytes.
type BorderChange struct {
	FrameTstate uint32
	Colour      uint8
}

// attrAddr returns the attribute-byte address for the 8x8 character
// cell that pixel (x, y) of the 256x192 active area falls in.
func attrAddr(x, y int) int {
	return attributeBase + (y/8)*32 + x/8
}

// bitmapAddr implements the Spectrum's famously non-linear screen
// layout: pixel rows within a character row are not stored
// consecutively, they interleave across the three third-of-screen
// bands (spec.md's display memory is out of scope to generate, but the
// renderer bridge still has to decode the real layout to be useful).
func bitmapAddr(x, y int) int {
	third := y / 64
	within := y % 64
	row := within / 8
	line := within % 8
	return bitmapBase + third*2048 + row*32 + line*256 + x/8
}

// activePixel returns the colour of active-area pixel (x, y), swapping
// ink and paper when the cell's FLASH bit is set and flashOn is true.
func activePixel(b *bus.Bus, x, y int, flashOn bool) color.RGBA {
	ram := b.RAM()
	byteVal := ram[bitmapAddr(x, y)]
	bit := 7 - uint(x%8)
	set := byteVal&(1<<bit) != 0

	attr := ram[attrAddr(x, y)]
	ink := attr & 0x07
	paper := (attr >> 3) & 0x07
	bright := (attr >> 6) & 0x01
	if attr&0x80 != 0 && flashOn {
		ink, paper = paper, ink
	}

	idx := ink
	if bright != 0 {
		idx += 8
	}
	inkColour := palette[idx]

	idx = paper
	if bright != 0 {
		idx += 8
	}
	paperColour := palette[idx]

	if set {
		return inkColour
	}
	return paperColour
}

// activeArea renders the 256x192 display area into a fresh RGBA image,
// applying FLASH attribute inversion when flashOn is true. The flash
// phase is chosen by the caller; nothing in the core toggles it.
func activeArea(b *bus.Bus, flashOn bool) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, ActiveWidth, ActiveHeight))
	for y := 0; y < ActiveHeight; y++ {
		for x := 0; x < ActiveWidth; x++ {
			img.SetRGBA(x, y, activePixel(b, x, y, flashOn))
		}
	}
	return img
}

// Frame composes the active display area and a flat border colour
// (the last BorderChange's colour, or black with no changes recorded)
// into a single 352x296 image, using x/image/draw to place the active
// area at its fixed offset within the bordered canvas.
func Frame(b *bus.Bus, borderLog []BorderChange, flashOn bool) *image.RGBA {
	borderColour := palette[0]
	if len(borderLog) > 0 {
		c := borderLog[len(borderLog)-1].Colour & 0x07
		borderColour = palette[c]
	}

	canvas := image.NewRGBA(image.Rect(0, 0, ScreenWidth, ScreenHeight))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: borderColour}, image.Point{}, draw.Src)

	active := activeArea(b, flashOn)
	dst := image.Rect(BorderSize, BorderHeight, BorderSize+ActiveWidth, BorderHeight+ActiveHeight)
	draw.Draw(canvas, dst, active, image.Point{}, draw.Src)

	return canvas
}
