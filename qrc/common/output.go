package common

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/pixiv/go-libjpeg/jpeg"
)

// EncodePng returns img as PNG bytes
func EncodePng(img image.Image) ([]byte, error) {
	var imgBytes bytes.Buffer
	if err := png.Encode(&imgBytes, img); err != nil {
		return nil, fmt.Errorf("png encode failed: %w", err)
	}
	return imgBytes.Bytes(), nil
}

// EncodeJpg returns img as JPEG bytes at quality
func EncodeJpg(img image.Image, quality int) ([]byte, error) {
	var imgBytes bytes.Buffer
	err := jpeg.Encode(&imgBytes, img, &jpeg.EncoderOptions{Quality: quality})
	if err != nil {
		return nil, fmt.Errorf("jpeg encode failed: %w", err)
	}
	return imgBytes.Bytes(), nil
}

// EncodePngBase64 returns img as a base64 encoded PNG
func EncodePngBase64(img image.Image) (string, error) {
	imgBytes, err := EncodePng(img)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(imgBytes), nil
}

func isJpgName(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".jpg" || ext == ".jpeg"
}

// OutputPath resolves the file name an image is saved under. Names ending in
// .jpg or .jpeg are kept as they are, anything else gets a .png extension
// unless it already has one.
func OutputPath(name string) string {
	if isJpgName(name) {
		return name
	}
	return strings.TrimSuffix(name, ".png") + ".png"
}

// SaveImage writes img to the path derived from name and returns that path
func SaveImage(img image.Image, name string, jpgQuality int) (string, error) {
	path := OutputPath(name)
	var imgBytes []byte
	var err error
	if isJpgName(path) {
		imgBytes, err = EncodeJpg(img, jpgQuality)
	} else {
		imgBytes, err = EncodePng(img)
	}
	if err != nil {
		return "", err
	}
	if err = os.WriteFile(path, imgBytes, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
