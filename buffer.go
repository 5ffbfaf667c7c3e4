package mandel

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// BytesPerPixel is the size of one packed 0x00RRGGBB pixel.
const BytesPerPixel = 4

// Errors returned by Validate and Render for malformed buffers.
var (
	ErrInvalidStride = errors.New("invalid row stride")
	ErrShortBuffer   = errors.New("pixel memory shorter than stride*height")
)

// PixelBuffer is caller-owned pixel memory.
// Each pixel is stored little-endian as [blue, green, red, unused].
// Rows start every StrideBytes bytes, which may exceed Width*4.
type PixelBuffer struct {
	Width       int32
	Height      int32
	StrideBytes int32
	Pix         []byte
}

// NewPixelBuffer allocates a width x height buffer whose rows are padded to
// a multiple of align bytes. align <= 4 gives tightly packed rows.
func NewPixelBuffer(width, height, align int32) *PixelBuffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if align < BytesPerPixel {
		align = BytesPerPixel
	}
	// keep rows word aligned even for odd alignments
	align = (align + BytesPerPixel - 1) / BytesPerPixel * BytesPerPixel

	stride := (width*BytesPerPixel + align - 1) / align * align
	return &PixelBuffer{
		Width:       width,
		Height:      height,
		StrideBytes: stride,
		Pix:         make([]byte, int(stride)*int(height)),
	}
}

// Empty reports whether there is nothing to draw into.
func (b *PixelBuffer) Empty() bool {
	return b == nil || b.Width <= 0 || b.Height <= 0 || b.Pix == nil
}

// Validate checks the stride against the backing memory.
func (b *PixelBuffer) Validate() error {
	if b.Empty() {
		return nil
	}
	if b.StrideBytes < b.Width*BytesPerPixel || b.StrideBytes%BytesPerPixel != 0 {
		return fmt.Errorf("stride %d for width %d: %w", b.StrideBytes, b.Width, ErrInvalidStride)
	}
	need := int(b.StrideBytes)*int(b.Height-1) + int(b.Width)*BytesPerPixel
	if len(b.Pix) < need {
		return fmt.Errorf("have %d bytes, need %d: %w", len(b.Pix), need, ErrShortBuffer)
	}
	return nil
}

// RowPixels is the stride measured in pixels.
func (b *PixelBuffer) RowPixels() int {
	return int(b.StrideBytes / BytesPerPixel)
}

// offset returns the byte offset of pixel (x, y).
func (b *PixelBuffer) offset(x, y int) int {
	return (y*b.RowPixels() + x) * BytesPerPixel
}

// SetPixel writes a packed 0x00RRGGBB value. Out-of-bounds writes are ignored.
func (b *PixelBuffer) SetPixel(x, y int, px uint32) {
	if x < 0 || x >= int(b.Width) || y < 0 || y >= int(b.Height) {
		return
	}
	binary.LittleEndian.PutUint32(b.Pix[b.offset(x, y):], px)
}

// Pixel reads the packed value at (x, y). Out-of-bounds reads return 0.
func (b *PixelBuffer) Pixel(x, y int) uint32 {
	if x < 0 || x >= int(b.Width) || y < 0 || y >= int(b.Height) {
		return 0
	}
	return binary.LittleEndian.Uint32(b.Pix[b.offset(x, y):])
}

// RGBAt returns the color at (x, y).
func (b *PixelBuffer) RGBAt(x, y int) RGB {
	px := b.Pixel(x, y)
	return RGB{R: uint8(px >> 16), G: uint8(px >> 8), B: uint8(px)}
}

// Fill sets every pixel to c.
func (b *PixelBuffer) Fill(c RGB) {
	if b.Empty() {
		return
	}
	px := c.Pixel()
	for y := 0; y < int(b.Height); y++ {
		for x := 0; x < int(b.Width); x++ {
			binary.LittleEndian.PutUint32(b.Pix[b.offset(x, y):], px)
		}
	}
}
