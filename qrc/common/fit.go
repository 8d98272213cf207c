package common

// Fitter picks caption font sizes so text fits the QR code width
type Fitter struct {
	Faces       *FaceCache
	TargetWidth int
	WidthRatio  float64
	MinFontSize int
}

// NewFitter returns a fitter for an image targetWidth pixels wide using the
// ratio and size floor from config
func NewFitter(faces *FaceCache, targetWidth int, config *Config) *Fitter {
	return &Fitter{
		Faces:       faces,
		TargetWidth: targetWidth,
		WidthRatio:  config.WidthRatio,
		MinFontSize: config.MinFontSize,
	}
}

// MaxWidth is the widest a caption line may render
func (f *Fitter) MaxWidth() int {
	return int(float64(f.TargetWidth) * f.WidthRatio)
}

func (f *Fitter) minFontSize() int {
	if f.MinFontSize < 1 {
		return 1
	}
	return f.MinFontSize
}

// Fit returns a caption line at the largest size not above maxSize whose
// rendered width fits MaxWidth. Sizes are tried downwards one point at a time;
// only the chosen size is later turned into a cached face by Compose.
func (f *Fitter) Fit(text string, family FontFamily, maxSize int) (CaptionLine, error) {
	maxWidth := f.MaxWidth()
	minSize := f.minFontSize()
	for size := maxSize; size >= minSize; size-- {
		w, _, err := f.Faces.MeasureString(family, size, text)
		if err != nil {
			return CaptionLine{}, err
		}
		if w <= maxWidth {
			return CaptionLine{Text: text, FontSize: size, Family: family}, nil
		}
	}
	return CaptionLine{}, &FontTooSmallError{Text: text, Family: family, MinSize: minSize}
}
