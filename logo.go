package kernelogo

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/esimov/kernelogo/utils"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Renderer draws kernel logos based on a lookup table.
type Renderer struct {
	Table       Table
	BoldFont    string // used for the primary label
	RegularFont string // used for the sublabel

	fonts fontCache
}

// NewRenderer returns a Renderer using the default system fonts.
func NewRenderer(table Table) *Renderer {
	return &Renderer{
		Table:       table,
		BoldFont:    DefaultBoldFont,
		RegularFont: DefaultRegularFont,
	}
}

// Layout holds the position of the logo labels.
// Rectangles are the ink bounds of the text in image coordinates.
type Layout struct {
	Size     int
	Entry    Entry
	Label    image.Rectangle
	Sublabel image.Rectangle

	labelFace    font.Face
	sublabelFace font.Face
	labelDot     fixed.Point26_6
	sublabelDot  fixed.Point26_6
}

// Close releases the font faces held by the layout.
func (l *Layout) Close() {
	if l.labelFace != nil {
		l.labelFace.Close()
	}
	if l.sublabelFace != nil {
		l.sublabelFace.Close()
	}
}

// fontSizes returns the pixel size of the primary and secondary label for a logo of the given size.
// Sizes are never rounded down to zero, so tiny logos keep using the scalable fonts.
func fontSizes(size int, hasSublabel bool) (int, int) {
	if hasSublabel {
		return utils.Max(size*2/5, 1), utils.Max(size/5, 1)
	}
	return utils.Max(size/2, 1), 0
}

// Layout computes the label placement of the logo registered under id.
func (r *Renderer) Layout(id string, size int) (*Layout, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid logo size: %d", size)
	}
	e, _ := r.Table.Lookup(id)

	l := &Layout{
		Size:  size,
		Entry: e,
	}
	labelSize, sublabelSize := fontSizes(size, e.HasSublabel())

	l.labelFace = r.fonts.face(r.BoldFont, labelSize)
	w, h, orig := measure(l.labelFace, e.Label)

	x := (size - w) / 2
	y := (size - h) / 2
	if e.HasSublabel() {
		y -= size / 8
	}
	l.Label = image.Rect(x, y, x+w, y+h)
	l.labelDot = fixed.P(x-orig.X, y-orig.Y)

	if e.HasSublabel() {
		l.sublabelFace = r.fonts.face(r.RegularFont, sublabelSize)
		sw, sh, sorig := measure(l.sublabelFace, e.Sublabel)

		sx := (size - sw) / 2
		sy := l.Label.Max.Y + 2
		l.Sublabel = image.Rect(sx, sy, sx+sw, sy+sh)
		l.sublabelDot = fixed.P(sx-sorig.X, sy-sorig.Y)
	}
	return l, nil
}

// Render draws the logo registered under id as a size x size opaque image.
func (r *Renderer) Render(id string, size int) (*image.NRGBA, error) {
	l, err := r.Layout(id, size)
	if err != nil {
		return nil, err
	}
	defer l.Close()

	bg, err := utils.ParseColor(l.Entry.Background)
	if err != nil {
		return nil, fmt.Errorf("kernel %q: %w", l.Entry.ID, err)
	}
	fg, err := utils.ParseColor(l.Entry.Foreground)
	if err != nil {
		return nil, fmt.Errorf("kernel %q: %w", l.Entry.ID, err)
	}

	img := imaging.New(size, size, bg)
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fg),
		Face: l.labelFace,
		Dot:  l.labelDot,
	}
	d.DrawString(l.Entry.Label)

	if l.Entry.HasSublabel() {
		d.Face = l.sublabelFace
		d.Dot = l.sublabelDot
		d.DrawString(l.Entry.Sublabel)
	}

	return img, nil
}

// measure returns the ink width and height of s together with
// the top-left corner of its bounds relative to the drawing origin.
func measure(face font.Face, s string) (int, int, image.Point) {
	b, _ := font.BoundString(face, s)
	lo := image.Pt(b.Min.X.Floor(), b.Min.Y.Floor())
	hi := image.Pt(b.Max.X.Ceil(), b.Max.Y.Ceil())

	return hi.X - lo.X, hi.Y - lo.Y, lo
}
