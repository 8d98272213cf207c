package common

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
)

// FontResolver maps a font family to a parsed font. Implementations must be
// safe for concurrent use.
type FontResolver interface {
	Resolve(family FontFamily) (*truetype.Font, error)
}

// Parsed fonts are read-only once parsed and shared by all renders
var fontCache sync.Map

func parseCached(key string, load func() ([]byte, error)) (*truetype.Font, error) {
	if v, found := fontCache.Load(key); found {
		return v.(*truetype.Font), nil
	}
	fontBytes, err := load()
	if err != nil {
		return nil, err
	}
	parsed, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", key, err)
	}
	v, _ := fontCache.LoadOrStore(key, parsed)
	return v.(*truetype.Font), nil
}

// EmbeddedFonts resolves families to the Go fonts compiled into the binary
type EmbeddedFonts struct{}

var embeddedTTF = map[FontFamily][]byte{
	FontMono:     gomono.TTF,
	FontMonoBold: gomonobold.TTF,
	FontSans:     goregular.TTF,
	FontSansBold: gobold.TTF,
}

// Resolve returns the embedded font for family
func (EmbeddedFonts) Resolve(family FontFamily) (*truetype.Font, error) {
	ttf, found := embeddedTTF[family]
	if !found {
		return nil, fmt.Errorf("no embedded font for %s", family)
	}
	return parseCached("embedded:"+family.String(), func() ([]byte, error) {
		return ttf, nil
	})
}

// DirFonts resolves families to TTF files inside a directory
type DirFonts struct {
	Dir   string
	Files FontFiles
}

// Resolve loads and parses the file configured for family
func (d DirFonts) Resolve(family FontFamily) (*truetype.Font, error) {
	name := d.Files.forFamily(family)
	if len(name) == 0 {
		return nil, fmt.Errorf("no font file configured for %s", family)
	}
	fontPath := filepath.Join(d.Dir, name)
	return parseCached(fontPath, func() ([]byte, error) {
		fontBytes, err := os.ReadFile(fontPath)
		if err != nil {
			return nil, fmt.Errorf("read font %s: %w", fontPath, err)
		}
		return fontBytes, nil
	})
}

// NewFontResolver returns DirFonts when a fonts directory is configured and
// the embedded Go fonts otherwise
func NewFontResolver(config *Config) FontResolver {
	if len(config.FontsDir) == 0 {
		return EmbeddedFonts{}
	}
	return DirFonts{Dir: config.FontsDir, Files: config.Fonts}
}

type faceKey struct {
	family FontFamily
	size   int
}

// FaceCache hands out font faces by family and size. font.Face is not thread
// safe so each render gets its own cache.
type FaceCache struct {
	resolver FontResolver
	faces    map[faceKey]font.Face
}

// NewFaceCache creates an empty cache on top of resolver
func NewFaceCache(resolver FontResolver) *FaceCache {
	return &FaceCache{resolver: resolver, faces: make(map[faceKey]font.Face)}
}

// Face returns the face for family at size points
func (cache *FaceCache) Face(family FontFamily, size int) (font.Face, error) {
	key := faceKey{family, size}
	if face, found := cache.faces[key]; found {
		return face, nil
	}
	parsed, err := cache.resolver.Resolve(family)
	if err != nil {
		return nil, fmt.Errorf("load font %s: %w", family, err)
	}
	// Zero keeps truetype's default glyph cache for drawing
	face := truetype.NewFace(parsed, faceOptions(size, 0))
	cache.faces[key] = face
	return face, nil
}

// MeasureString measures text at family and size on a throwaway face with a
// single-entry glyph cache. Nothing is kept, so the fitter can walk through
// many sizes without building a full face for each one.
func (cache *FaceCache) MeasureString(family FontFamily, size int, text string) (int, int, error) {
	if face, found := cache.faces[faceKey{family, size}]; found {
		w, h := MeasureString(face, text)
		return w, h, nil
	}
	parsed, err := cache.resolver.Resolve(family)
	if err != nil {
		return 0, 0, fmt.Errorf("load font %s: %w", family, err)
	}
	face := truetype.NewFace(parsed, faceOptions(size, 1))
	defer face.Close()
	w, h := MeasureString(face, text)
	return w, h, nil
}

func faceOptions(size, glyphCacheEntries int) *truetype.Options {
	return &truetype.Options{
		Size:              float64(size),
		Hinting:           font.HintingFull,
		GlyphCacheEntries: glyphCacheEntries,
	}
}

// Close releases all cached faces
func (cache *FaceCache) Close() {
	for key, face := range cache.faces {
		face.Close()
		delete(cache.faces, key)
	}
}
