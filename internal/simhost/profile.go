// Package simhost simulates a browser host from a YAML profile. Canvases are
// rendered in software, so the same profile always yields the same
// fingerprint.
package simhost

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// WebGL context families a profile can expose.
const (
	FamilyWebGL             = "webgl"
	FamilyExperimentalWebGL = "experimental-webgl"
	FamilyWebGL2            = "webgl2"
	FamilyNone              = "none"
)

var families = []string{FamilyWebGL, FamilyExperimentalWebGL, FamilyWebGL2, FamilyNone}

// Profile describes a simulated host. Unset (nil) values are reported as
// unsupported by the host.
type Profile struct {
	Window   *bool `yaml:"window"`   // default true
	Document *bool `yaml:"document"` // default true

	Navigator NavigatorProfile `yaml:"navigator"`
	Screen    ScreenProfile    `yaml:"screen"`

	DevicePixelRatio *float64 `yaml:"device_pixel_ratio"`
	Timezone         *string  `yaml:"timezone"`
	TimezoneOffset   *int32   `yaml:"timezone_offset"`
	LocalStorage     *bool    `yaml:"local_storage"`
	SessionStorage   *bool    `yaml:"session_storage"`
	IndexedDB        bool     `yaml:"indexed_db"`

	Canvas CanvasProfile `yaml:"canvas"`
	WebGL  WebGLProfile  `yaml:"webgl"`
}

// NavigatorProfile describes window.navigator.
type NavigatorProfile struct {
	Disabled            bool            `yaml:"disabled"`
	UserAgent           *string         `yaml:"user_agent"`
	Language            *string         `yaml:"language"`
	Languages           []string        `yaml:"languages"`
	Platform            *string         `yaml:"platform"`
	CookieEnabled       *bool           `yaml:"cookie_enabled"`
	DoNotTrack          *string         `yaml:"do_not_track"`
	HardwareConcurrency *uint32         `yaml:"hardware_concurrency"`
	DeviceMemory        *float64        `yaml:"device_memory"`
	MaxTouchPoints      *uint32         `yaml:"max_touch_points"`
	Online              *bool           `yaml:"online"`
	Plugins             []PluginProfile `yaml:"plugins"`
	MimeTypes           []string        `yaml:"mime_types"`
}

// PluginProfile is one navigator.plugins entry.
type PluginProfile struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// ScreenProfile describes window.screen.
type ScreenProfile struct {
	Disabled    bool   `yaml:"disabled"`
	Width       *int32 `yaml:"width"`
	Height      *int32 `yaml:"height"`
	ColorDepth  *int32 `yaml:"color_depth"`
	PixelDepth  *int32 `yaml:"pixel_depth"`
	AvailWidth  *int32 `yaml:"avail_width"`
	AvailHeight *int32 `yaml:"avail_height"`
}

// CanvasProfile describes canvas support and the installed fonts.
type CanvasProfile struct {
	Disabled  bool  `yaml:"disabled"`
	Context2D *bool `yaml:"context_2d"` // default true

	// Fonts maps CSS families to built-in faces ("Go", "Go Mono", ...).
	Fonts map[string]string `yaml:"fonts"`
}

// WebGLProfile describes the WebGL context family and what it reports.
type WebGLProfile struct {
	Family                 string   `yaml:"family"` // default "none"
	Vendor                 string   `yaml:"vendor"`
	Renderer               string   `yaml:"renderer"`
	UnmaskedVendor         string   `yaml:"unmasked_vendor"`
	UnmaskedRenderer       string   `yaml:"unmasked_renderer"`
	Version                string   `yaml:"version"`
	ShadingLanguageVersion string   `yaml:"shading_language_version"`
	Extensions             []string `yaml:"extensions"`

	// DebugRendererInfo exposes WEBGL_debug_renderer_info.
	DebugRendererInfo bool `yaml:"debug_renderer_info"`
}

// LoadProfile reads a YAML profile from filename and applies defaults.
func LoadProfile(filename string) (*Profile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}

	p, err := ParseProfile(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	return p, nil
}

// ParseProfile decodes a YAML profile and applies defaults.
func ParseProfile(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	p.applyDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &p, nil
}

// Validate checks the profile for values the host cannot simulate.
func (p *Profile) Validate() error {
	if !slices.Contains(families, p.WebGL.Family) {
		return fmt.Errorf("invalid webgl family %q, must be one of %v", p.WebGL.Family, families)
	}

	return nil
}

func (p *Profile) applyDefaults() {
	if p.Window == nil {
		p.Window = ptr(true)
	}
	if p.Document == nil {
		p.Document = ptr(true)
	}
	if p.Canvas.Context2D == nil {
		p.Canvas.Context2D = ptr(true)
	}
	if p.WebGL.Family == "" {
		p.WebGL.Family = FamilyNone
	}
}

// DefaultProfile returns a desktop browser with every capability present.
func DefaultProfile() *Profile {
	p := &Profile{
		Navigator: NavigatorProfile{
			UserAgent:           ptr("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"),
			Language:            ptr("en-US"),
			Languages:           []string{"en-US", "en"},
			Platform:            ptr("Linux x86_64"),
			CookieEnabled:       ptr(true),
			HardwareConcurrency: ptr(uint32(8)),
			DeviceMemory:        ptr(8.0),
			MaxTouchPoints:      ptr(uint32(0)),
			Online:              ptr(true),
			Plugins: []PluginProfile{
				{Name: "PDF Viewer", Description: "Portable Document Format"},
				{Name: "Chrome PDF Viewer", Description: "Portable Document Format"},
			},
			MimeTypes: []string{"application/pdf", "text/pdf"},
		},
		Screen: ScreenProfile{
			Width:       ptr(int32(1920)),
			Height:      ptr(int32(1080)),
			ColorDepth:  ptr(int32(24)),
			PixelDepth:  ptr(int32(24)),
			AvailWidth:  ptr(int32(1920)),
			AvailHeight: ptr(int32(1040)),
		},
		DevicePixelRatio: ptr(1.0),
		Timezone:         ptr("Europe/Berlin"),
		TimezoneOffset:   ptr(int32(-60)),
		LocalStorage:     ptr(true),
		SessionStorage:   ptr(true),
		IndexedDB:        true,
		WebGL: WebGLProfile{
			Family:                 FamilyWebGL,
			Vendor:                 "WebKit",
			Renderer:               "WebKit WebGL",
			UnmaskedVendor:         "Google Inc. (Intel)",
			UnmaskedRenderer:       "ANGLE (Intel, Mesa Intel(R) UHD Graphics 620 (KBL GT2), OpenGL 4.6)",
			Version:                "WebGL 1.0 (OpenGL ES 2.0 Chromium)",
			ShadingLanguageVersion: "WebGL GLSL ES 1.0 (OpenGL ES GLSL ES 1.0 Chromium)",
			Extensions:             []string{"ANGLE_instanced_arrays", "EXT_blend_minmax", "OES_texture_float", "WEBGL_debug_renderer_info"},
			DebugRendererInfo:      true,
		},
	}
	p.applyDefaults()

	return p
}

// Clone returns a deep copy of p. Nil values and lists stay nil.
func (p *Profile) Clone() *Profile {
	c := *p
	c.Window = clonePtr(p.Window)
	c.Document = clonePtr(p.Document)
	c.DevicePixelRatio = clonePtr(p.DevicePixelRatio)
	c.Timezone = clonePtr(p.Timezone)
	c.TimezoneOffset = clonePtr(p.TimezoneOffset)
	c.LocalStorage = clonePtr(p.LocalStorage)
	c.SessionStorage = clonePtr(p.SessionStorage)

	n := &c.Navigator
	n.UserAgent = clonePtr(p.Navigator.UserAgent)
	n.Language = clonePtr(p.Navigator.Language)
	n.Languages = slices.Clone(p.Navigator.Languages)
	n.Platform = clonePtr(p.Navigator.Platform)
	n.CookieEnabled = clonePtr(p.Navigator.CookieEnabled)
	n.DoNotTrack = clonePtr(p.Navigator.DoNotTrack)
	n.HardwareConcurrency = clonePtr(p.Navigator.HardwareConcurrency)
	n.DeviceMemory = clonePtr(p.Navigator.DeviceMemory)
	n.MaxTouchPoints = clonePtr(p.Navigator.MaxTouchPoints)
	n.Online = clonePtr(p.Navigator.Online)
	n.Plugins = slices.Clone(p.Navigator.Plugins)
	n.MimeTypes = slices.Clone(p.Navigator.MimeTypes)

	sc := &c.Screen
	sc.Width = clonePtr(p.Screen.Width)
	sc.Height = clonePtr(p.Screen.Height)
	sc.ColorDepth = clonePtr(p.Screen.ColorDepth)
	sc.PixelDepth = clonePtr(p.Screen.PixelDepth)
	sc.AvailWidth = clonePtr(p.Screen.AvailWidth)
	sc.AvailHeight = clonePtr(p.Screen.AvailHeight)

	c.Canvas.Context2D = clonePtr(p.Canvas.Context2D)
	c.Canvas.Fonts = maps.Clone(p.Canvas.Fonts)
	c.WebGL.Extensions = slices.Clone(p.WebGL.Extensions)

	return &c
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func ptr[T any](v T) *T {
	return &v
}
