package softcanvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"
)

func TestFontsResolve(t *testing.T) {
	f := NewFonts()

	assert.Equal(t, FaceRegular, f.Resolve("'Arial'"), "unknown family falls back")
	assert.Equal(t, FaceMono, f.Resolve("monospace"))
	assert.Equal(t, FaceMedium, f.Resolve(`"Nope", serif`))
	assert.Equal(t, FaceBold, f.Resolve("go bold"))
}

func TestFontsAlias(t *testing.T) {
	f := NewFonts()

	require.NoError(t, f.Alias("Times New Roman", FaceItalic))
	assert.Equal(t, FaceItalic, f.Resolve("'Times New Roman'"))

	assert.Error(t, f.Alias("Arial", "Comic Sans"))
}

func TestFontsRegister(t *testing.T) {
	f := NewFonts()

	require.NoError(t, f.Register("Custom Mono", gomono.TTF))
	assert.Equal(t, "Custom Mono", f.Resolve("'custom mono'"))

	face, err := f.Face("Custom Mono", 12)
	require.NoError(t, err)
	assert.NotNil(t, face)

	assert.Error(t, f.Register("Broken", []byte("not a font")))
}

func TestFontsFaceCache(t *testing.T) {
	f := NewFonts()

	a, err := f.Face("sans-serif", 15)
	require.NoError(t, err)
	b, err := f.Face("'Arial'", 15)
	require.NoError(t, err)
	assert.Same(t, a, b)

	c, err := f.Face("sans-serif", 18)
	require.NoError(t, err)
	assert.NotSame(t, a, c)
}
