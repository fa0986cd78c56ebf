package kernelogo

import (
	"fmt"
	"os"
	"sync"

	"github.com/esimov/kernelogo/utils"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// Font files looked up by default. These are present on Debian based images
// with the fonts-dejavu-core package installed.
const (
	DefaultBoldFont    = "/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf"
	DefaultRegularFont = "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"
)

// fallbackFace is always available and never fails to load.
var fallbackFace font.Face = basicfont.Face7x13

// fontCache memoizes parsed fonts and loading failures keyed by their source.
type fontCache struct {
	mu    sync.Mutex
	fonts map[string]*opentype.Font
	errs  map[string]error
}

// load returns the parsed font found at src, which is either
// a local path or a http(s) URL.
func (c *fontCache) load(src string) (*opentype.Font, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fonts == nil {
		c.fonts = make(map[string]*opentype.Font)
		c.errs = make(map[string]error)
	}
	if f, ok := c.fonts[src]; ok {
		return f, nil
	}
	if err, ok := c.errs[src]; ok {
		return nil, err
	}

	f, err := parseFont(src)
	if err != nil {
		c.errs[src] = err
		return nil, err
	}
	c.fonts[src] = f
	return f, nil
}

// face returns a face of the font found at src scaled to the provided size,
// or the built-in bitmap face in case the font could not be loaded.
func (c *fontCache) face(src string, size int) font.Face {
	if src == "" || size <= 0 {
		return fallbackFace
	}
	f, err := c.load(src)
	if err != nil {
		return fallbackFace
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fallbackFace
	}
	return face
}

// parseFont reads and parses a TrueType or OpenType font (or the first font of a collection).
func parseFont(src string) (*opentype.Font, error) {
	path := src
	if utils.IsValidUrl(src) {
		tmp, err := utils.DownloadFile(src)
		if err != nil {
			return nil, err
		}
		tmp.Close()
		defer os.Remove(tmp.Name())
		path = tmp.Name()
	}

	ctype, err := utils.DetectContentType(path)
	if err != nil {
		return nil, fmt.Errorf("could not open the font file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read the font file: %w", err)
	}

	switch ctype {
	case "font/ttf", "font/otf":
		return opentype.Parse(data)
	case "font/collection":
		coll, err := opentype.ParseCollection(data)
		if err != nil {
			return nil, err
		}
		return coll.Font(0)
	default:
		return nil, fmt.Errorf("%s is not a supported font file: %s", src, ctype)
	}
}
