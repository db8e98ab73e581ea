package render

// Option applies a configuration option to the Renderer.
type Option func(*Renderer)

// WithSize sets the output size in pixels. Non-positive values are ignored.
func WithSize(width, height int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.width = width
		}
		if height > 0 {
			r.height = height
		}
	}
}
