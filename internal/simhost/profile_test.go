package simhost

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProfile(t *testing.T) {
	p, err := LoadProfile("testdata/desktop.yaml")
	require.NoError(t, err)

	require.NotNil(t, p.Navigator.UserAgent)
	assert.Contains(t, *p.Navigator.UserAgent, "Firefox")
	assert.Equal(t, []string{"en-GB", "en"}, p.Navigator.Languages)
	require.NotNil(t, p.Navigator.HardwareConcurrency)
	assert.Equal(t, uint32(16), *p.Navigator.HardwareConcurrency)
	assert.Nil(t, p.Navigator.DeviceMemory)
	require.NotNil(t, p.Screen.Width)
	assert.Equal(t, int32(2560), *p.Screen.Width)
	assert.Equal(t, "Go Medium", p.Canvas.Fonts["Times New Roman"])
	assert.Equal(t, FamilyWebGL2, p.WebGL.Family)
	assert.True(t, p.WebGL.DebugRendererInfo)

	// defaults
	assert.True(t, *p.Window)
	assert.True(t, *p.Document)
	assert.True(t, *p.Canvas.Context2D)
}

func TestLoadProfileErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		message string
	}{
		{name: "missing file", file: "testdata/nope.yaml", message: "failed to read profile file"},
		{name: "malformed", file: "testdata/malformed.yaml", message: "failed to parse profile"},
		{name: "bad family", file: "testdata/bad_family.yaml", message: `invalid webgl family "metal"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadProfile(tt.file)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestParseProfileEmpty(t *testing.T) {
	p, err := ParseProfile(nil)
	require.NoError(t, err)

	assert.True(t, *p.Window)
	assert.Equal(t, FamilyNone, p.WebGL.Family)
	assert.Nil(t, p.Navigator.UserAgent)
	assert.Nil(t, p.DevicePixelRatio)
}

func TestDefaultProfileIsValid(t *testing.T) {
	p := DefaultProfile()
	require.NoError(t, p.Validate())
	assert.Equal(t, FamilyWebGL, p.WebGL.Family)
	assert.NotNil(t, p.Navigator.UserAgent)
}

func TestProfileClone(t *testing.T) {
	p, err := LoadProfile("testdata/desktop.yaml")
	require.NoError(t, err)

	c := p.Clone()
	require.Equal(t, p, c)

	*c.Navigator.HardwareConcurrency = 1
	c.Navigator.Languages[0] = "xx"
	c.Canvas.Fonts["Times New Roman"] = "Go Mono"
	*c.Canvas.Context2D = false

	assert.Equal(t, uint32(16), *p.Navigator.HardwareConcurrency)
	assert.Equal(t, "en-GB", p.Navigator.Languages[0])
	assert.Equal(t, "Go Medium", p.Canvas.Fonts["Times New Roman"])
	assert.True(t, *p.Canvas.Context2D)

	// unset values stay unset
	bare, err := ParseProfile(nil)
	require.NoError(t, err)
	clone := bare.Clone()
	assert.Nil(t, clone.Navigator.UserAgent)
	assert.Nil(t, clone.Navigator.Languages)
	assert.Nil(t, clone.Canvas.Fonts)
}
