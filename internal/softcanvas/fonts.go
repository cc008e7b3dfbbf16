package softcanvas

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Built-in face names.
const (
	FaceRegular = "Go"
	FaceBold    = "Go Bold"
	FaceItalic  = "Go Italic"
	FaceMedium  = "Go Medium"
	FaceMono    = "Go Mono"
)

var builtinFaces = map[string][]byte{
	FaceRegular: goregular.TTF,
	FaceBold:    gobold.TTF,
	FaceItalic:  goitalic.TTF,
	FaceMedium:  gomedium.TTF,
	FaceMono:    gomono.TTF,
}

// genericFamilies maps CSS generic families to built-in faces.
var genericFamilies = map[string]string{
	"sans-serif": FaceRegular,
	"serif":      FaceMedium,
	"monospace":  FaceMono,
	"system-ui":  FaceRegular,
}

// Fonts resolves CSS font families to font faces. Families that are not
// installed fall back to the default face, as a browser falls back to its
// default font.
//
// Fonts is safe for concurrent use.
type Fonts struct {
	mu       sync.Mutex
	sources  map[string]*text.FontSource // face name -> parsed font
	aliases  map[string]string           // lower-cased family -> face name
	faces    map[faceKey]text.Face
	fallback string
}

type faceKey struct {
	face string
	size float64
}

// NewFonts returns a registry holding the built-in Go fonts, with the
// generic CSS families mapped onto them and FaceRegular as the fallback.
func NewFonts() *Fonts {
	f := &Fonts{
		sources:  make(map[string]*text.FontSource),
		aliases:  make(map[string]string),
		faces:    make(map[faceKey]text.Face),
		fallback: FaceRegular,
	}
	for name := range builtinFaces {
		f.aliases[strings.ToLower(name)] = name
	}
	for family, face := range genericFamilies {
		f.aliases[family] = face
	}

	return f
}

// Alias makes family render with face, which must be a built-in face or one
// added with Register.
func (f *Fonts) Alias(family, face string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.knownLocked(face) {
		return fmt.Errorf("alias %q: unknown face %q", family, face)
	}
	f.aliases[strings.ToLower(family)] = face

	return nil
}

// Register adds a TTF/OTF font under name and makes name resolvable as a
// family.
func (f *Fonts) Register(name string, data []byte) error {
	source, err := text.NewFontSource(data)
	if err != nil {
		return fmt.Errorf("register font %q: %w", name, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.sources[name] = source
	f.aliases[strings.ToLower(name)] = name

	return nil
}

// Resolve returns the face name used for a comma-separated CSS family list.
func (f *Fonts) Resolve(families string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, family := range strings.Split(families, ",") {
		family = strings.ToLower(strings.Trim(strings.TrimSpace(family), `'"`))
		if face, ok := f.aliases[family]; ok {
			return face
		}
	}

	return f.fallback
}

// Face returns the face for a CSS family list at size pixels.
func (f *Fonts) Face(families string, size float64) (text.Face, error) {
	name := f.Resolve(families)

	f.mu.Lock()
	defer f.mu.Unlock()

	key := faceKey{face: name, size: size}
	if face, ok := f.faces[key]; ok {
		return face, nil
	}

	source, err := f.sourceLocked(name)
	if err != nil {
		return nil, err
	}
	face := source.Face(size)
	f.faces[key] = face

	return face, nil
}

func (f *Fonts) knownLocked(face string) bool {
	if _, ok := f.sources[face]; ok {
		return true
	}
	_, ok := builtinFaces[face]

	return ok
}

// sourceLocked parses built-in fonts lazily.
func (f *Fonts) sourceLocked(name string) (*text.FontSource, error) {
	if source, ok := f.sources[name]; ok {
		return source, nil
	}
	data, ok := builtinFaces[name]
	if !ok {
		return nil, fmt.Errorf("unknown face %q", name)
	}
	source, err := text.NewFontSource(data)
	if err != nil {
		return nil, fmt.Errorf("load face %q: %w", name, err)
	}
	f.sources[name] = source

	return source, nil
}
