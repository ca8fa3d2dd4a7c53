// Package render draws confessions as PNG images.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Scale is the pixel ratio of every rendered image.
const Scale = 2

const (
	CardWidth     = 600
	CardMinHeight = 500
	cardPadding   = 40

	sheetWidth   = 542
	sheetPadding = 24
)

const bullet = "• "

var (
	headerColor = color.RGBA{0x00, 0x00, 0x00, 0xff}
	bodyColor   = color.RGBA{0x33, 0x33, 0x33, 0xff}
	sheetColor  = color.RGBA{0x44, 0x44, 0x44, 0xff}
)

// Card is what a rendered confession shows. CreatedAt should already be in
// the display time zone.
type Card struct {
	Name      string
	Text      string
	CreatedAt time.Time
}

// Header is the title line drawn above a confession, e.g.
// "-Anonymous12 2024-05-01 18:30".
func (c Card) Header() string {
	name := c.Name
	if r, size := utf8.DecodeRuneInString(name); r != utf8.RuneError {
		name = string(unicode.ToUpper(r)) + name[size:]
	}
	return fmt.Sprintf("-%s %s", name, c.CreatedAt.Format("2006-01-02 15:04"))
}

// Renderer holds the parsed fonts. Faces are created per call since a
// font.Face is not safe for concurrent use.
type Renderer struct {
	regular *opentype.Font
	bold    *opentype.Font
}

func NewRenderer() (*Renderer, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	return &Renderer{regular: regular, bold: bold}, nil
}

// style describes one text block in logical (unscaled) pixels.
type style struct {
	font       *opentype.Font
	size       float64
	lineHeight float64
	color      color.Color
}

type block struct {
	face       font.Face
	lines      []string
	lineHeight int
	color      color.Color
	x          int
	indent     int
}

func (r *Renderer) newBlock(s style, text string, x, maxWidth int, withBullet bool) (*block, error) {
	face, err := opentype.NewFace(s.font, &opentype.FaceOptions{
		Size:    s.size * Scale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	b := &block{
		face:       face,
		lineHeight: int(s.lineHeight * s.size * Scale),
		color:      s.color,
		x:          x * Scale,
	}
	avail := maxWidth * Scale
	if withBullet {
		b.indent = width(face, bullet)
		avail -= b.indent
	}
	b.lines = wrapText(face, text, avail)
	return b, nil
}

func (b *block) height() int {
	return len(b.lines) * b.lineHeight
}

// draw renders the block with its first line box starting at top.
func (b *block) draw(dst draw.Image, top int, withBullet bool) {
	m := b.face.Metrics()
	ascent := m.Ascent.Ceil()
	textHeight := ascent + m.Descent.Ceil()
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(b.color), Face: b.face}
	for i, line := range b.lines {
		baseline := top + i*b.lineHeight + (b.lineHeight-textHeight)/2 + ascent
		x := b.x + b.indent
		if withBullet && i == 0 {
			d.Dot = fixed.P(b.x, baseline)
			d.DrawString(bullet)
		}
		d.Dot = fixed.P(x, baseline)
		d.DrawString(line)
	}
}

func (b *block) close() {
	_ = b.face.Close()
}

// Card renders a single confession at a fixed width. The height grows with
// the text and never drops below CardMinHeight.
func (r *Renderer) Card(c Card) (*image.RGBA, error) {
	const (
		headerGap     = 32
		bodyIndent    = 20
		bodyMinHeight = 120
		bodyGap       = 60
		itemMinHeight = 320
	)
	contentWidth := CardWidth - 2*cardPadding

	header, err := r.newBlock(style{r.bold, 24, 1.3, headerColor}, c.Header(), cardPadding, contentWidth, false)
	if err != nil {
		return nil, err
	}
	defer header.close()
	body, err := r.newBlock(style{r.regular, 20, 1.6, bodyColor}, c.Text, cardPadding+bodyIndent, contentWidth-bodyIndent, true)
	if err != nil {
		return nil, err
	}
	defer body.close()

	bodyHeight := max(body.height(), bodyMinHeight*Scale)
	itemHeight := max(header.height()+headerGap*Scale+bodyHeight+bodyGap*Scale, itemMinHeight*Scale)
	height := max(itemHeight+2*cardPadding*Scale, CardMinHeight*Scale)

	img := newCanvas(CardWidth*Scale, height)
	top := cardPadding * Scale
	header.draw(img, top, false)
	body.draw(img, top+header.height()+headerGap*Scale, true)
	return img, nil
}

// Sheet renders several confessions stacked in one image, in the given order.
func (r *Renderer) Sheet(cards []Card) (*image.RGBA, error) {
	const (
		headerGap = 8
		itemGap   = 32
		indent    = 24
	)
	contentWidth := sheetWidth - 2*sheetPadding

	type item struct{ header, body *block }
	items := make([]item, 0, len(cards))
	defer func() {
		for _, it := range items {
			it.header.close()
			it.body.close()
		}
	}()

	height := 2 * sheetPadding * Scale
	for i, c := range cards {
		header, err := r.newBlock(style{r.bold, 18, 1.3, sheetColor}, c.Header(), sheetPadding, contentWidth, false)
		if err != nil {
			return nil, err
		}
		body, err := r.newBlock(style{r.regular, 18, 1.5, sheetColor}, c.Text, sheetPadding+indent, contentWidth-indent, true)
		if err != nil {
			header.close()
			return nil, err
		}
		items = append(items, item{header, body})
		height += header.height() + headerGap*Scale + body.height()
		if i < len(cards)-1 {
			height += itemGap * Scale
		}
	}

	img := newCanvas(sheetWidth*Scale, height)
	top := sheetPadding * Scale
	for _, it := range items {
		it.header.draw(img, top, false)
		top += it.header.height() + headerGap*Scale
		it.body.draw(img, top, true)
		top += it.body.height() + itemGap*Scale
	}
	return img, nil
}

func newCanvas(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	return img
}

func EncodePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Filename returns the download name for a card, e.g. "anonymous12.png".
func Filename(name string) string {
	name = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			return r
		}
		return -1
	}, name)
	if name == "" {
		name = "confession"
	}
	return name + ".png"
}
