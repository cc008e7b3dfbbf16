package browserid

import (
	"slices"

	jsoniter "github.com/json-iterator/go"
)

// AudioFingerprint is the constant placeholder stored in every record.
const AudioFingerprint = "audio-context-available"

// NotAvailable is stored in every graphics string field when no WebGL
// context family can be acquired.
const NotAvailable = "Not available"

// UnknownTimezone is stored when the host cannot resolve a timezone name.
const UnknownTimezone = "Unknown"

var recordJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// Fingerprint is one immutable snapshot of every collected signal plus the
// canonical hash derived from them.
type Fingerprint struct {
	// Basic browser info
	UserAgent     string   `json:"user_agent"`
	Language      string   `json:"language"`
	Languages     []string `json:"languages"`
	Platform      string   `json:"platform"`
	CookieEnabled bool     `json:"cookie_enabled"`
	DoNotTrack    *string  `json:"do_not_track"`

	// Hardware info
	HardwareConcurrency *uint32  `json:"hardware_concurrency"`
	DeviceMemory        *float64 `json:"device_memory"`
	MaxTouchPoints      uint32   `json:"max_touch_points"`

	// Screen info
	ScreenWidth       int32   `json:"screen_width"`
	ScreenHeight      int32   `json:"screen_height"`
	ScreenColorDepth  int32   `json:"screen_color_depth"`
	ScreenPixelDepth  int32   `json:"screen_pixel_depth"`
	ScreenAvailWidth  int32   `json:"screen_avail_width"`
	ScreenAvailHeight int32   `json:"screen_avail_height"`
	DevicePixelRatio  float64 `json:"device_pixel_ratio"`

	// Timezone info
	Timezone       string `json:"timezone"`
	TimezoneOffset int32  `json:"timezone_offset"`

	// Storage support
	LocalStorage   bool `json:"local_storage"`
	SessionStorage bool `json:"session_storage"`
	IndexedDB      bool `json:"indexed_db"`

	CanvasFingerprint string `json:"canvas_fingerprint"` // hex SHA-256 of the canvas data URL

	// WebGL info
	WebGLVendor                 string   `json:"webgl_vendor"`
	WebGLRenderer               string   `json:"webgl_renderer"`
	WebGLVersion                string   `json:"webgl_version"`
	WebGLShadingLanguageVersion string   `json:"webgl_shading_language_version"`
	WebGLExtensions             []string `json:"webgl_extensions"`

	AudioFingerprint string `json:"audio_fingerprint"`

	Plugins   []string `json:"plugins"`
	MimeTypes []string `json:"mime_types"`

	Online bool `json:"online"`

	FingerprintHash string `json:"fingerprint_hash"`
}

// Graphics is the WebGL tuple extracted by either acquisition strategy.
type Graphics struct {
	Vendor                 string
	Renderer               string
	Version                string
	ShadingLanguageVersion string
	Extensions             []string
}

// Graphics returns the WebGL tuple stored in the record.
func (f *Fingerprint) Graphics() Graphics {
	return Graphics{
		Vendor:                 f.WebGLVendor,
		Renderer:               f.WebGLRenderer,
		Version:                f.WebGLVersion,
		ShadingLanguageVersion: f.WebGLShadingLanguageVersion,
		Extensions:             slices.Clone(f.WebGLExtensions),
	}
}

// JSON renders the record as indented JSON.
func (f *Fingerprint) JSON() ([]byte, error) {
	return recordJSON.MarshalIndent(f, "", "  ")
}

// assemble merges probe, canvas and graphics output into a record with an
// empty hash.
func assemble(s signals, canvasFingerprint string, g Graphics) *Fingerprint {
	return &Fingerprint{
		UserAgent:                   s.userAgent,
		Language:                    s.language,
		Languages:                   nonNil(s.languages),
		Platform:                    s.platform,
		CookieEnabled:               s.cookieEnabled,
		DoNotTrack:                  s.doNotTrack,
		HardwareConcurrency:         s.hardwareConcurrency,
		DeviceMemory:                s.deviceMemory,
		MaxTouchPoints:              s.maxTouchPoints,
		ScreenWidth:                 s.screen.width,
		ScreenHeight:                s.screen.height,
		ScreenColorDepth:            s.screen.colorDepth,
		ScreenPixelDepth:            s.screen.pixelDepth,
		ScreenAvailWidth:            s.screen.availWidth,
		ScreenAvailHeight:           s.screen.availHeight,
		DevicePixelRatio:            s.devicePixelRatio,
		Timezone:                    s.timezone,
		TimezoneOffset:              s.timezoneOffset,
		LocalStorage:                s.localStorage,
		SessionStorage:              s.sessionStorage,
		IndexedDB:                   s.indexedDB,
		CanvasFingerprint:           canvasFingerprint,
		WebGLVendor:                 g.Vendor,
		WebGLRenderer:               g.Renderer,
		WebGLVersion:                g.Version,
		WebGLShadingLanguageVersion: g.ShadingLanguageVersion,
		WebGLExtensions:             nonNil(g.Extensions),
		AudioFingerprint:            AudioFingerprint,
		Plugins:                     nonNil(s.plugins),
		MimeTypes:                   nonNil(s.mimeTypes),
		Online:                      s.online,
	}
}

// clone returns a deep copy so callers cannot mutate a stored record.
func (f *Fingerprint) clone() *Fingerprint {
	if f == nil {
		return nil
	}
	c := *f
	c.Languages = nonNil(slices.Clone(f.Languages))
	c.WebGLExtensions = nonNil(slices.Clone(f.WebGLExtensions))
	c.Plugins = nonNil(slices.Clone(f.Plugins))
	c.MimeTypes = nonNil(slices.Clone(f.MimeTypes))
	if f.DoNotTrack != nil {
		v := *f.DoNotTrack
		c.DoNotTrack = &v
	}
	if f.HardwareConcurrency != nil {
		v := *f.HardwareConcurrency
		c.HardwareConcurrency = &v
	}
	if f.DeviceMemory != nil {
		v := *f.DeviceMemory
		c.DeviceMemory = &v
	}

	return &c
}

// nonNil keeps list fields serialized as [] rather than null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}

	return s
}
