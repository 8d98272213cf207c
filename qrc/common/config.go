package common

import (
	"fmt"
	"os"
	"strings"

	"github.com/skip2/go-qrcode"
)

// Config contains all the configuration data for the app
type Config struct {
	AppName     string `yaml:"AppName"`
	Version     string `yaml:"Version"`
	DebugOutput bool   `yaml:"DebugOutput"`

	// Approximate width in pixels of the generated QR code
	QrSize          int    `yaml:"QrSize"`
	ErrorCorrection string `yaml:"ErrorCorrection"`

	// Caption text may use at most WidthRatio of the QR code width
	WidthRatio float64 `yaml:"WidthRatio"`
	// Pixels each caption line is pulled up towards the QR code
	CaptionOffset int `yaml:"CaptionOffset"`
	MinFontSize   int `yaml:"MinFontSize"`

	FontsDir string    `yaml:"FontsDir"`
	Fonts    FontFiles `yaml:"Fonts"`

	TemplatesDir string `yaml:"TemplatesDir"`
	JpgQuality   int    `yaml:"JpgQuality"`
}

// FontFiles names the TTF file for each family inside FontsDir
type FontFiles struct {
	Mono     string `yaml:"Mono"`
	MonoBold string `yaml:"MonoBold"`
	Sans     string `yaml:"Sans"`
	SansBold string `yaml:"SansBold"`
}

func (f FontFiles) forFamily(family FontFamily) string {
	switch family {
	case FontMono:
		return f.Mono
	case FontMonoBold:
		return f.MonoBold
	case FontSans:
		return f.Sans
	case FontSansBold:
		return f.SansBold
	}
	return ""
}

const (
	// DefaultWidthRatio - share of the image width captions may occupy
	DefaultWidthRatio = 0.90
	// DefaultCaptionOffset - upward shift applied to every caption line
	DefaultCaptionOffset = 24
	// DefaultMinFontSize - smallest point size the fitter will return
	DefaultMinFontSize = 1
)

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		AppName:         "QR Generator",
		Version:         "dev",
		QrSize:          500,
		ErrorCorrection: "highest",
		WidthRatio:      DefaultWidthRatio,
		CaptionOffset:   DefaultCaptionOffset,
		MinFontSize:     DefaultMinFontSize,
		Fonts: FontFiles{
			Mono:     "UbuntuMono-R.ttf",
			MonoBold: "UbuntuMono-B.ttf",
			Sans:     "Ubuntu-R.ttf",
			SansBold: "Ubuntu-B.ttf",
		},
		TemplatesDir: "resources/www/templates",
		JpgQuality:   90,
	}
}

// LoadConfig reads the yaml file at path over the defaults. A missing file
// leaves the defaults in place.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("stat config %s: %w", path, err)
	}
	if err := LoadYaml(path, config); err != nil {
		return nil, err
	}
	return config, config.Validate()
}

// Validate rejects values the renderer cannot work with
func (c *Config) Validate() error {
	if c.QrSize <= 0 {
		return fmt.Errorf("QrSize must be positive, got %d", c.QrSize)
	}
	if c.WidthRatio <= 0 || c.WidthRatio > 1 {
		return fmt.Errorf("WidthRatio must be in (0, 1], got %v", c.WidthRatio)
	}
	if c.MinFontSize < 1 {
		return fmt.Errorf("MinFontSize must be at least 1, got %d", c.MinFontSize)
	}
	if _, err := c.RecoveryLevel(); err != nil {
		return err
	}
	return nil
}

// RecoveryLevel maps ErrorCorrection to the encoder's recovery level
func (c *Config) RecoveryLevel() (qrcode.RecoveryLevel, error) {
	switch strings.ToLower(c.ErrorCorrection) {
	case "low", "l":
		return qrcode.Low, nil
	case "medium", "m":
		return qrcode.Medium, nil
	case "high", "q":
		return qrcode.High, nil
	case "highest", "h", "":
		return qrcode.Highest, nil
	}
	return qrcode.Highest, fmt.Errorf("unknown ErrorCorrection %q", c.ErrorCorrection)
}
