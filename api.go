package mandel

// Surface owns the pixel memory a view is rendered into. It allocates and
// resizes the buffer whenever its display area changes.
type Surface interface {
	PixelBuffer() *PixelBuffer
}

// Presenter shows a filled buffer together with its overlay.
type Presenter interface {
	Present(buf *PixelBuffer, ov Overlay) error
}
