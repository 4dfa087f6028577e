package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"github.com/matt-g-everett/pulsar/pulse"
	"golang.org/x/image/vector"
)

// kappa places cubic Bézier control points so four curves approximate a circle.
const kappa = 0.5522847498

// Painter paints pulse frames. Circles are composited additively so overlaps
// brighten instead of hiding each other.
type Painter struct {
	mu         sync.Mutex
	colour     color.RGBA
	background *image.Uniform
	raster     *vector.Rasterizer
	mask       *image.Alpha
}

// NewPainter creates a Painter drawing circles in colour over background.
// colour is treated as opaque; each circle's alpha comes from its phase.
func NewPainter(colour, background color.RGBA) *Painter {
	p := new(Painter)
	colour.A = 0xff
	p.colour = colour
	p.background = image.NewUniform(background)
	return p
}

// Paint clears dst and draws every circle of f on it.
func (p *Painter) Paint(dst *image.RGBA, f pulse.Frame) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Src replaces whatever the buffer held from earlier frames.
	draw.Draw(dst, dst.Bounds(), p.background, image.Point{}, draw.Src)

	for _, c := range f.Circles {
		p.fillCircle(dst, f.Center, c.Radius, c.Alpha)
	}
}

func (p *Painter) fillCircle(dst *image.RGBA, center image.Point, radius float64, alpha uint8) {
	if radius <= 0 || alpha == 0 {
		return
	}

	cx, cy := float64(center.X), float64(center.Y)
	bounds := image.Rect(
		int(math.Floor(cx-radius)), int(math.Floor(cy-radius)),
		int(math.Ceil(cx+radius)), int(math.Ceil(cy+radius)))
	clip := bounds.Intersect(dst.Bounds())
	if clip.Empty() {
		return
	}

	w, h := bounds.Dx(), bounds.Dy()
	if p.raster == nil {
		p.raster = vector.NewRasterizer(w, h)
	} else {
		p.raster.Reset(w, h)
	}
	circlePath(p.raster, float32(cx-float64(bounds.Min.X)), float32(cy-float64(bounds.Min.Y)), float32(radius))

	mask := p.coverage(w, h)
	p.raster.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	src := color.RGBA{
		R: uint8(uint32(p.colour.R) * uint32(alpha) / 0xff),
		G: uint8(uint32(p.colour.G) * uint32(alpha) / 0xff),
		B: uint8(uint32(p.colour.B) * uint32(alpha) / 0xff),
		A: alpha,
	}
	addMasked(dst, clip, src, mask, bounds.Min)
}

// coverage returns a cleared w by h mask. The rasterizer needs the mask
// pixels to be contiguous so a larger mask is never sliced down.
func (p *Painter) coverage(w, h int) *image.Alpha {
	r := image.Rect(0, 0, w, h)
	if p.mask == nil || p.mask.Rect != r {
		p.mask = image.NewAlpha(r)
		return p.mask
	}

	for i := range p.mask.Pix {
		p.mask.Pix[i] = 0
	}
	return p.mask
}

func circlePath(z *vector.Rasterizer, cx, cy, r float32) {
	k := r * kappa
	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	z.ClosePath()
}

// addMasked adds src, scaled by mask coverage, to every pixel of dst within r.
// Channels saturate at 0xff. mp is the position of the mask origin in dst.
func addMasked(dst *image.RGBA, r image.Rectangle, src color.RGBA, mask *image.Alpha, mp image.Point) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		mi := mask.PixOffset(r.Min.X-mp.X, y-mp.Y)
		di := dst.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x, mi, di = x+1, mi+1, di+4 {
			m := uint32(mask.Pix[mi])
			if m == 0 {
				continue
			}
			d := dst.Pix[di : di+4 : di+4]
			d[0] = addSat(d[0], uint32(src.R)*m/0xff)
			d[1] = addSat(d[1], uint32(src.G)*m/0xff)
			d[2] = addSat(d[2], uint32(src.B)*m/0xff)
			d[3] = addSat(d[3], uint32(src.A)*m/0xff)
		}
	}
}

func addSat(d uint8, s uint32) uint8 {
	v := uint32(d) + s
	if v > 0xff {
		return 0xff
	}
	return uint8(v)
}
