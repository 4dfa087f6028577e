package surface

import (
	"encoding/binary"
	"image"

	"github.com/lucasb-eyer/go-colorful"
)

// FrameHeaderSize is the width and height prefix of an encoded frame.
const FrameHeaderSize = 4

// EncodeFrame converts img into the binary frame format understood by display
// devices: little endian uint16 width and height followed by one RGB triplet
// per pixel, row by row. Pixels are shown as if composited over black and are
// scaled by brightness.
func EncodeFrame(img *image.RGBA, brightness float64) []byte {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	data := make([]byte, FrameHeaderSize, FrameHeaderSize+(w*h*3))
	binary.LittleEndian.PutUint16(data[0:], uint16(w))
	binary.LittleEndian.PutUint16(data[2:], uint16(h))

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := img.PixOffset(x, y)
			c := colorful.Color{
				R: float64(img.Pix[i+0]) / 255.0 * brightness,
				G: float64(img.Pix[i+1]) / 255.0 * brightness,
				B: float64(img.Pix[i+2]) / 255.0 * brightness,
			}
			r, g, bl := c.Clamped().RGB255()
			data = append(data, r, g, bl)
		}
	}

	return data
}
