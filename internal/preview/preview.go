// Package preview draws a scene as a flat orthographic picture, for
// thumbnails and the CLI.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"sort"

	"CraneView/internal/crane/render"

	"github.com/HugoSmits86/nativewebp"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
	"gonum.org/v1/gonum/spatial/r3"
)

const supersample = 2

type Options struct {
	Width     int
	Height    int
	Azimuth   float64 // degrees about +Z, 0 looks from +X
	Elevation float64 // degrees above the ground plane
	Margin    float64 // fraction of the smaller side
}

func DefaultOptions() Options {
	return Options{Width: 640, Height: 480, Azimuth: 45, Elevation: 30, Margin: 0.06}
}

var background = color.RGBA{0xf4, 0xf4, 0xf4, 0xff}

// camera projects frame coordinates (Z up) to view space.
type camera struct {
	right, up, toward r3.Vec
}

func newCamera(azDeg, elDeg float64) camera {
	az := azDeg * math.Pi / 180
	el := elDeg * math.Pi / 180
	toward := r3.Vec{X: math.Cos(el) * math.Cos(az), Y: math.Cos(el) * math.Sin(az), Z: math.Sin(el)}
	right := r3.Unit(r3.Cross(r3.Vec{Z: 1}, toward))
	if r3.Norm(right) == 0 || math.IsNaN(right.X) {
		right = r3.Vec{Y: 1}
	}
	return camera{right: right, up: r3.Cross(toward, right), toward: toward}
}

// project returns screen x, y (y up) and depth (larger is nearer).
func (c camera) project(p r3.Vec) (x, y, depth float64) {
	return r3.Dot(p, c.right), r3.Dot(p, c.up), r3.Dot(p, c.toward)
}

type stroke struct {
	x1, y1, x2, y2 float64
	radius         float64
	depth          float64
	fill           color.RGBA
}

// Render rasterizes the primitives far to near, each as a screen-space quad
// with a darker rim, at twice the target size, then downsamples.
func Render(prims []render.Primitive, opt Options) *image.RGBA {
	if opt.Width <= 0 || opt.Height <= 0 {
		def := DefaultOptions()
		opt.Width, opt.Height = def.Width, def.Height
	}
	cam := newCamera(opt.Azimuth, opt.Elevation)

	strokes := make([]stroke, 0, len(prims))
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range prims {
		x1, y1, d1 := cam.project(p.From.Vec())
		x2, y2, d2 := cam.project(p.To.Vec())
		if anyNaN(x1, y1, x2, y2) {
			continue
		}
		r, g, b := p.Color.RGB255()
		strokes = append(strokes, stroke{
			x1: x1, y1: y1, x2: x2, y2: y2,
			radius: p.Radius,
			depth:  (d1 + d2) / 2,
			fill:   color.RGBA{r, g, b, 0xff},
		})
		minX = math.Min(minX, math.Min(x1, x2)-p.Radius)
		maxX = math.Max(maxX, math.Max(x1, x2)+p.Radius)
		minY = math.Min(minY, math.Min(y1, y2)-p.Radius)
		maxY = math.Max(maxY, math.Max(y1, y2)+p.Radius)
	}
	sort.SliceStable(strokes, func(i, j int) bool { return strokes[i].depth < strokes[j].depth })

	W, H := opt.Width*supersample, opt.Height*supersample
	canvas := image.NewRGBA(image.Rect(0, 0, W, H))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	if len(strokes) > 0 {
		margin := opt.Margin * math.Min(float64(W), float64(H))
		spanX, spanY := math.Max(maxX-minX, 1e-9), math.Max(maxY-minY, 1e-9)
		scale := math.Min((float64(W)-2*margin)/spanX, (float64(H)-2*margin)/spanY)
		offX := (float64(W) - scale*spanX) / 2
		offY := (float64(H) - scale*spanY) / 2
		toPx := func(x, y float64) (float32, float32) {
			return float32(offX + (x-minX)*scale), float32(float64(H) - offY - (y-minY)*scale)
		}

		z := vector.NewRasterizer(W, H)
		for _, s := range strokes {
			ax, ay := toPx(s.x1, s.y1)
			bx, by := toPx(s.x2, s.y2)
			r := float32(s.radius * scale)
			rim := float32(supersample)
			quad(z, canvas, ax, ay, bx, by, r+rim, shade(s.fill, 0.45))
			quad(z, canvas, ax, ay, bx, by, r, s.fill)
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, opt.Width, opt.Height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), canvas, canvas.Bounds(), draw.Src, nil)
	return dst
}

// quad fills the rectangle of half-width r around a-b. A segment seen end-on
// becomes a square of side 2r.
func quad(z *vector.Rasterizer, dst draw.Image, ax, ay, bx, by, r float32, c color.RGBA) {
	dx, dy := bx-ax, by-ay
	l := float32(math.Hypot(float64(dx), float64(dy)))
	var nx, ny, tx, ty float32
	if l < 1e-3 {
		nx, ny, tx, ty = 0, r, r, 0
	} else {
		nx, ny = -dy/l*r, dx/l*r
		tx, ty = dx/l*r*0.5, dy/l*r*0.5
	}
	z.Reset(z.Size().X, z.Size().Y)
	z.MoveTo(ax+nx-tx, ay+ny-ty)
	z.LineTo(bx+nx+tx, by+ny+ty)
	z.LineTo(bx-nx+tx, by-ny+ty)
	z.LineTo(ax-nx-tx, ay-ny-ty)
	z.ClosePath()
	z.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}

func shade(c color.RGBA, amount float64) color.RGBA {
	base, _ := colorful.MakeColor(c)
	r, g, b := base.BlendLab(colorful.Color{}, amount).Clamped().RGB255()
	return color.RGBA{r, g, b, 0xff}
}

func anyNaN(v ...float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return true
		}
	}
	return false
}

// Encode renders the primitives and writes them as lossless WebP.
func Encode(w io.Writer, prims []render.Primitive, opt Options) error {
	img := Render(prims, opt)
	if err := nativewebp.Encode(w, img, nil); err != nil {
		return fmt.Errorf("encode webp: %w", err)
	}
	return nil
}
