package common

import (
	"image"
)

// Rendered holds everything produced for one QR code
type Rendered struct {
	QrImage   image.Image
	Composite image.Image
	Lines     []CaptionLine
	Filename  string
}

// Render encodes the variant's payload, builds its caption against the QR
// code width and composes the captioned image. Safe to call concurrently:
// every call uses its own face cache and canvas.
func Render(variant QrVariant, config *Config, fonts FontResolver) (*Rendered, error) {
	level, err := config.RecoveryLevel()
	if err != nil {
		return nil, err
	}
	qrImage, err := EncodeQr(variant.Payload(), config.QrSize, level)
	if err != nil {
		return nil, err
	}

	faces := NewFaceCache(fonts)
	defer faces.Close()

	fitter := NewFitter(faces, qrImage.Bounds().Dx(), config)
	lines, err := variant.Caption(fitter)
	if err != nil {
		return nil, err
	}
	composite, err := Compose(qrImage, lines, faces, config.CaptionOffset)
	if err != nil {
		return nil, err
	}
	return &Rendered{
		QrImage:   qrImage,
		Composite: composite,
		Lines:     lines,
		Filename:  variant.Filename(),
	}, nil
}
