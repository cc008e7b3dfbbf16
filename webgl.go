package browserid

// WebGL parameter codes shared by both context families.
const (
	GLVendor                 uint32 = 0x1F00
	GLRenderer               uint32 = 0x1F01
	GLVersion                uint32 = 0x1F02
	GLShadingLanguageVersion uint32 = 0x8B8C

	// Exposed by the WEBGL_debug_renderer_info extension.
	GLUnmaskedVendor   uint32 = 0x9245
	GLUnmaskedRenderer uint32 = 0x9246
)

// DebugRendererInfo is the extension that unmasks the GPU vendor and renderer.
const DebugRendererInfo = "WEBGL_debug_renderer_info"

// Context family names. The legacy family is tried under both aliases,
// in order, before the newer family.
var (
	legacyContextNames = []string{"webgl", "experimental-webgl"}
	modernContextName  = "webgl2"
)

// glQuerier is what readGraphics needs from an acquired context. Both
// acquisition strategies implement it so their output cannot diverge.
type glQuerier interface {
	// parameter returns the string value of a getParameter code.
	parameter(code uint32) (string, bool)

	// debugCodes returns the unmasked vendor/renderer codes when the debug
	// extension is obtainable.
	debugCodes() (vendor, renderer uint32, ok bool)

	extensions() []string
}

// introspectGraphics acquires a WebGL context from a fresh canvas and
// extracts the graphics tuple. Only the canvas creation can fail; a host
// without any WebGL family yields the NotAvailable tuple.
func introspectGraphics(doc Document, p *probe) (Graphics, error) {
	canvas, err := createCanvas(doc)
	if err != nil {
		return Graphics{}, err
	}

	for _, name := range legacyContextNames {
		handle, err := canvas.Context(name)
		if err != nil || IsNullish(handle) {
			continue
		}

		if gl, ok := handle.(WebGLContext); ok {
			p.acquired(name, "typed")

			return readGraphics(typedQuerier{gl: gl}), nil
		}

		// Acquired under an alias but not a legacy context; fall through to
		// the newer family.
		break
	}

	handle, err := canvas.Context(modernContextName)
	if err == nil && !IsNullish(handle) {
		p.acquired(modernContextName, "dynamic")

		return readGraphics(dynamicQuerier{gl: NewDynamic(handle)}), nil
	}

	p.defaulted(SignalWebGL, ErrUnsupported)

	return unavailableGraphics(), nil
}

// acquired records which context family served the graphics tuple.
func (p *probe) acquired(family, access string) {
	p.collected(SignalWebGL)
	if p.logger != nil {
		p.logger.Debug("webgl context acquired", "family", family, "access", access)
	}
}

// readGraphics extracts the tuple through q.
func readGraphics(q glQuerier) Graphics {
	var g Graphics

	unmaskedVendor, unmaskedRenderer, debug := q.debugCodes()
	g.Vendor = unmaskedParameter(q, debug, unmaskedVendor, GLVendor)
	g.Renderer = unmaskedParameter(q, debug, unmaskedRenderer, GLRenderer)
	g.Version, _ = q.parameter(GLVersion)
	g.ShadingLanguageVersion, _ = q.parameter(GLShadingLanguageVersion)
	g.Extensions = nonNil(q.extensions())

	return g
}

// unmaskedParameter queries the unmasked code when available and falls back
// to the masked one.
func unmaskedParameter(q glQuerier, debug bool, unmasked, masked uint32) string {
	if debug {
		if s, ok := q.parameter(unmasked); ok {
			return s
		}
	}
	s, _ := q.parameter(masked)

	return s
}

func unavailableGraphics() Graphics {
	return Graphics{
		Vendor:                 NotAvailable,
		Renderer:               NotAvailable,
		Version:                NotAvailable,
		ShadingLanguageVersion: NotAvailable,
		Extensions:             []string{},
	}
}

// typedQuerier reads a legacy context through its typed accessors.
type typedQuerier struct {
	gl WebGLContext
}

func (q typedQuerier) parameter(code uint32) (string, bool) {
	v, err := q.gl.GetParameter(code)
	if err != nil {
		return "", false
	}
	s, err := stringValue(v)

	return s, err == nil
}

// debugCodes reads the unmasked codes off the extension object itself.
func (q typedQuerier) debugCodes() (uint32, uint32, bool) {
	ext, err := q.gl.GetExtension(DebugRendererInfo)
	if err != nil || IsNullish(ext) {
		return 0, 0, false
	}
	d := NewDynamic(ext)
	vendor, err := d.GetFloat("UNMASKED_VENDOR_WEBGL")
	if err != nil {
		return 0, 0, false
	}
	renderer, err := d.GetFloat("UNMASKED_RENDERER_WEBGL")
	if err != nil {
		return 0, 0, false
	}

	return uint32(vendor), uint32(renderer), true
}

func (q typedQuerier) extensions() []string {
	exts, err := q.gl.GetSupportedExtensions()
	if err != nil {
		return nil
	}

	return exts
}

// dynamicQuerier reads a newer-family context whose shape is only known at
// run time, looking every function up by name.
type dynamicQuerier struct {
	gl Dynamic
}

func (q dynamicQuerier) parameter(code uint32) (string, bool) {
	v, err := q.gl.CallFunction("getParameter", float64(code))
	if err != nil {
		return "", false
	}
	s, err := stringValue(v)

	return s, err == nil
}

// debugCodes uses the fixed unmasked codes once the extension is obtainable.
func (q dynamicQuerier) debugCodes() (uint32, uint32, bool) {
	ext, err := q.gl.CallFunction("getExtension", DebugRendererInfo)
	if err != nil || IsNullish(ext) {
		return 0, 0, false
	}

	return GLUnmaskedVendor, GLUnmaskedRenderer, true
}

func (q dynamicQuerier) extensions() []string {
	v, err := q.gl.CallFunction("getSupportedExtensions")
	if err != nil {
		return nil
	}

	return Strings(v)
}
