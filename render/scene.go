package render

import "image"

// A Scene draws a specific animation. elapsedMs is the wall clock time since
// the previous frame, zero for the first frame or a preview.
type Scene interface {
	Draw(dst *image.RGBA, elapsedMs int64) error
}
