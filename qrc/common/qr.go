package common

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/skip2/go-qrcode"
)

// QuietZone is the white border around the code, in modules
const QuietZone = 3

// ErrPayloadTooLong is returned when a payload exceeds QR code capacity
var ErrPayloadTooLong = errors.New("payload too long for a QR code")

// EncodeQr renders payload as a QR code roughly size pixels wide, quiet zone
// included. Modules are drawn at a whole-number scale so the image is never
// resampled, which can leave it a little narrower than size.
func EncodeQr(payload string, size int, level qrcode.RecoveryLevel) (image.Image, error) {
	qr, err := qrcode.New(payload, level)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayloadTooLong, err)
	}
	qr.DisableBorder = true
	bitmap := qr.Bitmap()

	modules := len(bitmap) + 2*QuietZone
	scale := size / modules
	if scale < 1 {
		scale = 1
	}
	side := modules * scale
	// Index 0 is the background so the new image starts out blank
	img := image.NewPaletted(image.Rect(0, 0, side, side),
		color.Palette{qr.BackgroundColor, qr.ForegroundColor})
	for row, cells := range bitmap {
		for col, dark := range cells {
			if !dark {
				continue
			}
			x0, y0 := (col+QuietZone)*scale, (row+QuietZone)*scale
			for y := y0; y < y0+scale; y++ {
				for x := x0; x < x0+scale; x++ {
					img.SetColorIndex(x, y, 1)
				}
			}
		}
	}
	return img, nil
}
