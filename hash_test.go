package browserid

import (
	"slices"
	"testing"
)

func uint32Ptr(v uint32) *uint32 { return &v }

func knownRecord() *Fingerprint {
	return &Fingerprint{
		UserAgent:           "Mozilla/5.0 (Test)",
		Language:            "en-US",
		Platform:            "Linux x86_64",
		HardwareConcurrency: uint32Ptr(8),
		ScreenWidth:         1920,
		ScreenHeight:        1080,
		ScreenColorDepth:    24,
		DevicePixelRatio:    1.5,
		Timezone:            "Europe/Berlin",
		TimezoneOffset:      -60,
		CanvasFingerprint:   "abc123",
		WebGLVendor:         "Intel Inc.",
		WebGLRenderer:       "Intel Iris",
	}
}

func TestCanonicalHashKnownAnswer(t *testing.T) {
	const want = "00c93a64456a97acf4caf49d8cb7169054fbc11678fe52adc59779afd0419367"

	if got := CanonicalHash(knownRecord()); got != want {
		t.Errorf("CanonicalHash() = %s, want %s", got, want)
	}
}

func TestCanonicalHashDefaults(t *testing.T) {
	const want = "a06d618ff91a5fb2cf739f240512ccc68e398cce4304fcdfb67093a982620dbc"

	f := &Fingerprint{
		Timezone:          UnknownTimezone,
		CanvasFingerprint: "abc123",
		WebGLVendor:       NotAvailable,
		WebGLRenderer:     NotAvailable,
	}
	if got := CanonicalHash(f); got != want {
		t.Errorf("CanonicalHash() = %s, want %s", got, want)
	}
}

func TestCanonicalHashAbsentConcurrencyIsZero(t *testing.T) {
	absent := knownRecord()
	absent.HardwareConcurrency = nil

	zero := knownRecord()
	zero.HardwareConcurrency = uint32Ptr(0)

	if CanonicalHash(absent) != CanonicalHash(zero) {
		t.Error("absent hardware_concurrency should hash as 0")
	}
}

func TestCanonicalHashIgnoresUnhashedFields(t *testing.T) {
	base := CanonicalHash(knownRecord())

	mutations := map[string]func(f *Fingerprint){
		"online":             func(f *Fingerprint) { f.Online = !f.Online },
		"plugins":            func(f *Fingerprint) { f.Plugins = []string{"x (y)"} },
		"mime_types":         func(f *Fingerprint) { f.MimeTypes = []string{"text/plain"} },
		"local_storage":      func(f *Fingerprint) { f.LocalStorage = true },
		"webgl_extensions":   func(f *Fingerprint) { f.WebGLExtensions = []string{"OES_x"} },
		"webgl_version":      func(f *Fingerprint) { f.WebGLVersion = "WebGL 2.0" },
		"audio_fingerprint":  func(f *Fingerprint) { f.AudioFingerprint = "other" },
		"screen_pixel_depth": func(f *Fingerprint) { f.ScreenPixelDepth = 30 },
		"fingerprint_hash":   func(f *Fingerprint) { f.FingerprintHash = "deadbeef" },
		"languages":          func(f *Fingerprint) { f.Languages = []string{"de"} },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			f := knownRecord()
			mutate(f)
			if got := CanonicalHash(f); got != base {
				t.Errorf("changing %s changed the hash", name)
			}
		})
	}
}

func TestCanonicalHashSensitivity(t *testing.T) {
	base := CanonicalHash(knownRecord())

	mutations := map[string]func(f *Fingerprint){
		"user_agent":           func(f *Fingerprint) { f.UserAgent += " " },
		"hardware_concurrency": func(f *Fingerprint) { f.HardwareConcurrency = uint32Ptr(4) },
		"screen_width":         func(f *Fingerprint) { f.ScreenWidth = 1921 },
		"device_pixel_ratio":   func(f *Fingerprint) { f.DevicePixelRatio = 2 },
		"timezone_offset":      func(f *Fingerprint) { f.TimezoneOffset = 60 },
		"canvas_fingerprint":   func(f *Fingerprint) { f.CanvasFingerprint = "abc124" },
		"webgl_renderer":       func(f *Fingerprint) { f.WebGLRenderer = "Other" },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			f := knownRecord()
			mutate(f)
			if got := CanonicalHash(f); got == base {
				t.Errorf("changing %s did not change the hash", name)
			}
		})
	}
}

func TestHashedFields(t *testing.T) {
	want := []string{
		"user_agent", "language", "platform", "hardware_concurrency",
		"screen_width", "screen_height", "screen_color_depth",
		"device_pixel_ratio", "timezone", "timezone_offset",
		"canvas_fingerprint", "webgl_vendor", "webgl_renderer",
	}

	if got := HashedFields(); !slices.Equal(got, want) {
		t.Errorf("HashedFields() = %v, want %v", got, want)
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1, "1"},
		{1.5, "1.5"},
		{1.25, "1.25"},
		{2.0000001, "2.0000001"},
		{0.1, "0.1"},
		{0, "0"},
		{1e21, "1000000000000000000000"},
	}

	for _, tt := range tests {
		if got := formatFloat(tt.in); got != tt.want {
			t.Errorf("formatFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
