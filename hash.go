package browserid

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"strconv"
)

// hashedField is one entry of the canonical field subset.
type hashedField struct {
	name  string
	value func(f *Fingerprint) string
}

// canonicalFields lists, in digest order, the only fields that influence
// fingerprint_hash. Connectivity, plugins, MIME types, storage flags, the
// full extension list and the audio placeholder stay out.
var canonicalFields = []hashedField{
	{"user_agent", func(f *Fingerprint) string { return f.UserAgent }},
	{"language", func(f *Fingerprint) string { return f.Language }},
	{"platform", func(f *Fingerprint) string { return f.Platform }},
	{"hardware_concurrency", func(f *Fingerprint) string {
		if f.HardwareConcurrency == nil {
			return "0"
		}

		return strconv.FormatUint(uint64(*f.HardwareConcurrency), 10)
	}},
	{"screen_width", func(f *Fingerprint) string { return formatInt(f.ScreenWidth) }},
	{"screen_height", func(f *Fingerprint) string { return formatInt(f.ScreenHeight) }},
	{"screen_color_depth", func(f *Fingerprint) string { return formatInt(f.ScreenColorDepth) }},
	{"device_pixel_ratio", func(f *Fingerprint) string { return formatFloat(f.DevicePixelRatio) }},
	{"timezone", func(f *Fingerprint) string { return f.Timezone }},
	{"timezone_offset", func(f *Fingerprint) string { return formatInt(f.TimezoneOffset) }},
	{"canvas_fingerprint", func(f *Fingerprint) string { return f.CanvasFingerprint }},
	{"webgl_vendor", func(f *Fingerprint) string { return f.WebGLVendor }},
	{"webgl_renderer", func(f *Fingerprint) string { return f.WebGLRenderer }},
}

// HashedFields returns the JSON names of the fields that make up the
// canonical hash, in digest order.
func HashedFields() []string {
	names := make([]string, len(canonicalFields))
	for i, field := range canonicalFields {
		names[i] = field.name
	}

	return names
}

// CanonicalHash computes the fingerprint hash of f: the canonical string
// form of every hashed field fed, in order and without separators, into one
// SHA-256 instance. It ignores f.FingerprintHash.
func CanonicalHash(f *Fingerprint) string {
	h := sha256.New()
	for _, field := range canonicalFields {
		_, _ = io.WriteString(h, field.value(f))
	}

	return hex.EncodeToString(h.Sum(nil))
}

func formatInt(v int32) string {
	return strconv.FormatInt(int64(v), 10)
}

// formatFloat renders the shortest decimal that round-trips, never in
// exponent form: 1 -> "1", 1.25 -> "1.25".
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
