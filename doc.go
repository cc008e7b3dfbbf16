// Package browserid computes a deterministic fingerprint of a web browser
// environment. It reads navigator and screen attributes, renders a fixed
// drawing program into a 280x60 canvas, introspects the WebGL stack and
// reduces the stable subset of those signals to a SHA-256 hash.
//
// # Overview
//
// A [Session] drives one collection against a [Host]. Every optional signal
// that the host cannot supply falls back to a documented default and is
// reported through [Session.Diagnostics]; only a missing window, a missing
// document or a failing canvas abort the collection.
//
// The resulting [Fingerprint] carries all collected attributes. Its
// FingerprintHash covers the fields returned by [HashedFields], concatenated
// in that order without separators, so attributes outside that list (plugins,
// storage flags, online state) never change the hash.
//
// # Quick Start
//
// Compiled for js/wasm the session talks to the page's global window:
//
//	session := browserid.New()
//	record, err := session.Collect()
//	if err != nil {
//		return err
//	}
//	fmt.Println(record.FingerprintHash)
//
// On any other platform a host must be injected with [Session.WithHost].
// Without one, [Session.Collect] returns [ErrNoWindow].
//
// # Canvas
//
// The canvas signal is the SHA-256 of the PNG data URL produced by
// [DrawFingerprintProgram] on a [CanvasWidth] x [CanvasHeight] surface. The
// program depends on font rasterization and anti-aliasing, which is what
// makes the digest differ between machines.
//
// # WebGL
//
// Legacy "webgl" and "experimental-webgl" contexts are queried through the
// typed [WebGLContext] interface. A "webgl2" context is queried dynamically
// through [Dynamic]. Both paths prefer the unmasked vendor and renderer
// exposed by the [DebugRendererInfo] extension and fall back to the masked
// values. Without any context every WebGL field reads [NotAvailable].
//
// # Validation
//
// [Session.Validate] collects when needed and compares the current hash with
// a stored one:
//
//	valid, err := session.Validate(storedHash)
//
// # Thread Safety
//
// Run one [Session.Collect] at a time per [Session]. Readers
// ([Session.Hash], [Session.Fingerprint], [Session.Diagnostics]) may run
// concurrently with a collection and see either the previous record or the
// new one, never a partial collection.
//
// # CLI Tools
//
// cmd/browserid fingerprints a simulated browser described by a YAML profile:
//
//	browserid -profile host.yaml
//	browserid -profile host.yaml -json -diagnostics
//	browserid -canvas canvas.png
//	browserid -version.long
//
// cmd/browserid-wasm is the js/wasm build that registers a global
// BrowserFingerprinter constructor with collect() and get_hash() methods.
package browserid
