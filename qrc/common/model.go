package common

import (
	"errors"
	"fmt"
)

// FontFamily identifies one of the four caption typefaces
type FontFamily int

const (
	// FontMono - monospace regular
	FontMono FontFamily = iota
	// FontMonoBold - monospace bold
	FontMonoBold
	// FontSans - sans-serif regular
	FontSans
	// FontSansBold - sans-serif bold
	FontSansBold
)

func (f FontFamily) String() string {
	switch f {
	case FontMono:
		return "mono"
	case FontMonoBold:
		return "mono-bold"
	case FontSans:
		return "sans"
	case FontSansBold:
		return "sans-bold"
	}
	return fmt.Sprintf("FontFamily(%d)", int(f))
}

// CaptionLine is one row of text drawn under the QR code. Text may contain
// embedded newlines, in which case the whole block is sized as one unit.
type CaptionLine struct {
	Text     string
	FontSize int
	Family   FontFamily
}

// QrVariant is implemented by each supported QR code type
type QrVariant interface {
	// Payload returns the string encoded into the QR symbol
	Payload() string
	// Caption returns the ordered caption lines, sized with the fitter
	Caption(fitter *Fitter) ([]CaptionLine, error)
	// Filename returns the default output name without extension
	Filename() string
}

// FuncParseRequest builds a variant from a JSON request body
type FuncParseRequest func(body []byte) (QrVariant, error)

// ErrFontTooSmall is returned when text cannot fit the width budget at or
// above the configured minimum font size
var ErrFontTooSmall = errors.New("font too small")

// FontTooSmallError carries the text that could not be fitted
type FontTooSmallError struct {
	Text    string
	Family  FontFamily
	MinSize int
}

func (e *FontTooSmallError) Error() string {
	return fmt.Sprintf("%s: %q does not fit in %s at %dpt", ErrFontTooSmall,
		e.Text, e.Family, e.MinSize)
}

// Is reports whether target is ErrFontTooSmall
func (e *FontTooSmallError) Is(target error) bool {
	return target == ErrFontTooSmall
}
