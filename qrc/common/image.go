package common

import (
	"image"
	"image/color"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
)

// MeasureString returns the rendered width and height of text. Multi-line
// text is measured as one block: the widest line by the line count.
func MeasureString(fontFace font.Face, text string) (int, int) {
	lines := strings.Split(text, "\n")
	lineHeight := fontFace.Metrics().Height.Round()
	calcX := 0
	for _, line := range lines {
		if w := font.MeasureString(fontFace, line).Round(); w > calcX {
			calcX = w
		}
	}
	return calcX, lineHeight * len(lines)
}

// Placement is where a caption line lands on the output image
type Placement struct {
	Line   CaptionLine
	X, Y   int
	Width  int
	Height int
}

// Layout positions caption lines under a qrWidth x qrHeight QR code and
// returns the placements plus the height of the caption area. Each line is
// centered and starts where the previous one ended, shifted up by offset.
func Layout(qrWidth, qrHeight int, lines []CaptionLine, faces *FaceCache,
	offset int) ([]Placement, int, error) {
	placements := make([]Placement, 0, len(lines))
	usedHeight := 0
	for _, line := range lines {
		face, err := faces.Face(line.Family, line.FontSize)
		if err != nil {
			return nil, 0, err
		}
		w, h := MeasureString(face, line.Text)
		placements = append(placements, Placement{
			Line:   line,
			X:      floorDiv(qrWidth-w, 2),
			Y:      qrHeight + usedHeight - offset,
			Width:  w,
			Height: h,
		})
		usedHeight += h
	}
	return placements, usedHeight, nil
}

// Compose returns a new image with the QR code at the top and the caption
// lines stacked underneath in black on white
func Compose(qr image.Image, lines []CaptionLine, faces *FaceCache,
	offset int) (image.Image, error) {
	qrSize := qr.Bounds().Size()
	placements, captionHeight, err := Layout(qrSize.X, qrSize.Y, lines, faces, offset)
	if err != nil {
		return nil, err
	}

	canvas := image.NewRGBA(image.Rect(0, 0, qrSize.X, qrSize.Y+captionHeight))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(canvas, image.Rect(0, 0, qrSize.X, qrSize.Y), qr, qr.Bounds().Min, draw.Src)

	dc := gg.NewContextForRGBA(canvas)
	dc.SetColor(color.Black)
	for _, p := range placements {
		face, err := faces.Face(p.Line.Family, p.Line.FontSize)
		if err != nil {
			return nil, err
		}
		drawTextBlock(dc, face, p)
	}
	return dc.Image(), nil
}

// Draws each line of a block centered within the block, top edge at p.Y
func drawTextBlock(dc *gg.Context, fontFace font.Face, p Placement) {
	dc.SetFontFace(fontFace)
	metrics := fontFace.Metrics()
	ascent := metrics.Ascent.Round()
	lineHeight := metrics.Height.Round()
	for i, line := range strings.Split(p.Line.Text, "\n") {
		w := font.MeasureString(fontFace, line).Round()
		x := p.X + floorDiv(p.Width-w, 2)
		y := p.Y + ascent + i*lineHeight
		dc.DrawString(line, float64(x), float64(y))
	}
}

// Integer division rounding towards negative infinity
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
