// pkg/render/engo/assets.go
package engo

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/opd-ai/go-projectile/pkg/render"
)

// Font files registered with the engine. Bold text (labels and headings)
// uses the monospaced face so the stat columns line up.
const (
	FontRegular  = "goregular.ttf"
	FontMonoBold = "gomonobold.ttf"
)

var fontFiles = []struct {
	url  string
	data []byte
}{
	{FontRegular, goregular.TTF},
	{FontMonoBold, gomonobold.TTF},
}

type fontKey struct {
	url   string
	size  int
	color color.RGBA
}

// AssetManager loads the embedded fonts and caches one engine font per face,
// size and colour. Glyph colour is baked into an engine font.
type AssetManager struct {
	loaded bool
	fonts  map[fontKey]*common.Font

	load   func(url string, data []byte) error
	create func(f *common.Font) error
}

// NewAssetManager creates a new asset manager
func NewAssetManager() *AssetManager {
	return &AssetManager{
		fonts: make(map[fontKey]*common.Font),
		load: func(url string, data []byte) error {
			return engo.Files.LoadReaderData(url, bytes.NewReader(data))
		},
		create: func(f *common.Font) error {
			return f.CreatePreloaded()
		},
	}
}

// LoadAssets registers the font files with the engine's file loader.
func (am *AssetManager) LoadAssets() error {
	for _, f := range fontFiles {
		if err := am.load(f.url, f.data); err != nil {
			return fmt.Errorf("load font %s: %w", f.url, err)
		}
	}
	am.loaded = true
	return nil
}

// Loaded reports whether LoadAssets succeeded.
func (am *AssetManager) Loaded() bool {
	return am.loaded
}

// FontURL picks the font file for a style.
func FontURL(style render.TextStyle) string {
	if style.Bold {
		return FontMonoBold
	}
	return FontRegular
}

// Font implements FontSource.
func (am *AssetManager) Font(style render.TextStyle) (*common.Font, error) {
	if !am.loaded {
		return nil, fmt.Errorf("fonts not loaded")
	}
	key := fontKey{url: FontURL(style), size: int(math.Round(style.Size)), color: style.Color}
	if key.size <= 0 {
		return nil, fmt.Errorf("invalid font size %v", style.Size)
	}
	if f, ok := am.fonts[key]; ok {
		return f, nil
	}

	f := &common.Font{URL: key.url, FG: key.color, Size: float64(key.size)}
	if err := am.create(f); err != nil {
		return nil, fmt.Errorf("create font %s: %w", key.url, err)
	}
	am.fonts[key] = f
	return f, nil
}
