package browserid

import (
	"errors"
	"fmt"
	"strings"
)

// fakeValue is a minimal in-memory Value.
type fakeValue struct {
	kind   Kind
	str    string
	num    float64
	b      bool
	props  map[string]Value
	items  []Value
	fn     func(args []any) (Value, error)
	getErr error
}

func fUndefined() *fakeValue       { return &fakeValue{kind: KindUndefined} }
func fNull() *fakeValue            { return &fakeValue{kind: KindNull} }
func fString(s string) *fakeValue  { return &fakeValue{kind: KindString, str: s} }
func fNumber(n float64) *fakeValue { return &fakeValue{kind: KindNumber, num: n} }
func fBool(b bool) *fakeValue      { return &fakeValue{kind: KindBool, b: b} }
func fObject(props map[string]Value) *fakeValue {
	if props == nil {
		props = map[string]Value{}
	}
	return &fakeValue{kind: KindObject, props: props}
}

func fFunc(fn func(args []any) (Value, error)) *fakeValue {
	return &fakeValue{kind: KindFunction, fn: fn}
}

func fStrings(ss ...string) *fakeValue {
	v := &fakeValue{kind: KindObject, items: []Value{}}
	for _, s := range ss {
		v.items = append(v.items, fString(s))
	}
	return v
}

func (v *fakeValue) Kind() Kind { return v.kind }

func (v *fakeValue) Get(name string) (Value, error) {
	if v.getErr != nil {
		return nil, v.getErr
	}
	if p, ok := v.props[name]; ok {
		return p, nil
	}
	return fUndefined(), nil
}

func (v *fakeValue) Call(method string, args ...any) (Value, error) {
	p, err := v.Get(method)
	if err != nil {
		return nil, err
	}
	fn, ok := p.(*fakeValue)
	if !ok || fn.fn == nil {
		return nil, fmt.Errorf("%s is not a function", method)
	}
	return fn.fn(args)
}

func (v *fakeValue) Invoke(args ...any) (Value, error) {
	if v.fn == nil {
		return nil, errors.New("not a function")
	}
	return v.fn(args)
}

func (v *fakeValue) AsString() (string, bool) { return v.str, v.kind == KindString }
func (v *fakeValue) AsFloat() (float64, bool) { return v.num, v.kind == KindNumber }
func (v *fakeValue) AsBool() (bool, bool)     { return v.b, v.kind == KindBool }

func (v *fakeValue) Len() (int, bool) {
	if v.items == nil {
		return 0, false
	}
	return len(v.items), true
}

func (v *fakeValue) Index(i int) (Value, error) {
	if i < 0 || i >= len(v.items) {
		return fUndefined(), nil
	}
	return v.items[i], nil
}

// recordingContext serializes every drawing call, standing in for a
// reference rendering stack.
type recordingContext struct {
	ops    []string
	failOn string
}

func (c *recordingContext) record(op string) error {
	c.ops = append(c.ops, op)
	if c.failOn != "" && strings.HasPrefix(op, c.failOn) {
		return fmt.Errorf("%s rejected", c.failOn)
	}
	return nil
}

func (c *recordingContext) SetFillStyle(style string) { _ = c.record("fillStyle=" + style) }
func (c *recordingContext) SetFont(font string)       { _ = c.record("font=" + font) }
func (c *recordingContext) BeginPath()                { _ = c.record("beginPath()") }
func (c *recordingContext) ClosePath()                { _ = c.record("closePath()") }
func (c *recordingContext) Fill() error               { return c.record("fill()") }

func (c *recordingContext) FillRect(x, y, w, h float64) error {
	return c.record(fmt.Sprintf("fillRect(%g,%g,%g,%g)", x, y, w, h))
}

func (c *recordingContext) FillText(text string, x, y float64) error {
	return c.record(fmt.Sprintf("fillText(%q,%g,%g)", text, x, y))
}

func (c *recordingContext) Arc(x, y, r, a0, a1 float64) error {
	return c.record(fmt.Sprintf("arc(%g,%g,%g,%g,%g)", x, y, r, a0, a1))
}

func (c *recordingContext) MoveTo(x, y float64) { _ = c.record(fmt.Sprintf("moveTo(%g,%g)", x, y)) }
func (c *recordingContext) LineTo(x, y float64) { _ = c.record(fmt.Sprintf("lineTo(%g,%g)", x, y)) }

// fakeCanvas hands out a recording 2D context and preset 3D handles.
type fakeCanvas struct {
	width, height int
	ctx           *recordingContext
	ctxErr        error
	contexts      map[string]Value
	dataURLErr    error
	requested     []string
}

func (c *fakeCanvas) SetSize(w, h int) { c.width, c.height = w, h }

func (c *fakeCanvas) Context2D() (Context2D, error) {
	if c.ctxErr != nil {
		return nil, c.ctxErr
	}
	if c.ctx == nil {
		c.ctx = &recordingContext{}
	}
	return c.ctx, nil
}

func (c *fakeCanvas) Context(name string) (Value, error) {
	c.requested = append(c.requested, name)
	if v, ok := c.contexts[name]; ok {
		return v, nil
	}
	return fNull(), nil
}

func (c *fakeCanvas) DataURL() (string, error) {
	if c.dataURLErr != nil {
		return "", c.dataURLErr
	}
	var ops []string
	if c.ctx != nil {
		ops = c.ctx.ops
	}
	return fmt.Sprintf("data:text/plain;%dx%d,", c.width, c.height) + strings.Join(ops, ";"), nil
}

// fakeDocument returns canvases from newCanvas, or fresh fakeCanvas values
// sharing contexts.
type fakeDocument struct {
	contexts  map[string]Value
	newCanvas func() (Canvas, error)
	canvases  []*fakeCanvas
}

func (d *fakeDocument) CreateCanvas() (Canvas, error) {
	if d.newCanvas != nil {
		return d.newCanvas()
	}
	c := &fakeCanvas{contexts: d.contexts}
	d.canvases = append(d.canvases, c)
	return c, nil
}

type fakeNavigator struct {
	userAgent, language, platform string
	languages                     []string
	hardwareConcurrency           uint32
	maxTouchPoints                uint32
	online                        bool
	plugins                       []Plugin
	mimeTypes                     []string
	object                        Value
	err                           error // returned by every typed getter when set
}

func (n *fakeNavigator) UserAgent() (string, error) { return n.userAgent, n.err }
func (n *fakeNavigator) Language() (string, error)  { return n.language, n.err }
func (n *fakeNavigator) Platform() (string, error)  { return n.platform, n.err }
func (n *fakeNavigator) OnLine() (bool, error)      { return n.online, n.err }
func (n *fakeNavigator) Object() Value              { return n.object }
func (n *fakeNavigator) Languages() ([]string, error) {
	return n.languages, n.err
}
func (n *fakeNavigator) HardwareConcurrency() (uint32, error) {
	return n.hardwareConcurrency, n.err
}
func (n *fakeNavigator) MaxTouchPoints() (uint32, error) { return n.maxTouchPoints, n.err }
func (n *fakeNavigator) Plugins() ([]Plugin, error)      { return n.plugins, n.err }
func (n *fakeNavigator) MimeTypes() ([]string, error)    { return n.mimeTypes, n.err }

type fakeScreen struct {
	width, height, colorDepth, pixelDepth, availWidth, availHeight int32
}

func (s *fakeScreen) Width() (int32, error)       { return s.width, nil }
func (s *fakeScreen) Height() (int32, error)      { return s.height, nil }
func (s *fakeScreen) ColorDepth() (int32, error)  { return s.colorDepth, nil }
func (s *fakeScreen) PixelDepth() (int32, error)  { return s.pixelDepth, nil }
func (s *fakeScreen) AvailWidth() (int32, error)  { return s.availWidth, nil }
func (s *fakeScreen) AvailHeight() (int32, error) { return s.availHeight, nil }

type fakeWindow struct {
	navigator Navigator
	screen    Screen
	document  Document
	docErr    error
	dpr       float64
	offset    int32
	storage   bool
	object    Value
}

func (w *fakeWindow) Navigator() (Navigator, error) {
	if w.navigator == nil {
		return nil, ErrUnsupported
	}
	return w.navigator, nil
}

func (w *fakeWindow) Screen() (Screen, error) {
	if w.screen == nil {
		return nil, ErrUnsupported
	}
	return w.screen, nil
}

func (w *fakeWindow) Document() (Document, error) {
	if w.docErr != nil {
		return nil, w.docErr
	}
	return w.document, nil
}

func (w *fakeWindow) DevicePixelRatio() (float64, error) { return w.dpr, nil }
func (w *fakeWindow) LocalStorage() (bool, error)        { return w.storage, nil }
func (w *fakeWindow) SessionStorage() (bool, error)      { return w.storage, nil }
func (w *fakeWindow) TimezoneOffset() (int32, error)     { return w.offset, nil }
func (w *fakeWindow) Object() Value                      { return w.object }

type fakeHost struct {
	window Window
	err    error
}

func (h fakeHost) Window() (Window, error) { return h.window, h.err }

// intlObject builds a window object resolving timezone through
// Intl.DateTimeFormat().resolvedOptions().timeZone.
func intlObject(timezone string) *fakeValue {
	options := fObject(map[string]Value{"timeZone": fString(timezone)})
	formatter := fObject(map[string]Value{
		"resolvedOptions": fFunc(func([]any) (Value, error) { return options, nil }),
	})
	return fObject(map[string]Value{
		"Intl": fObject(map[string]Value{
			"DateTimeFormat": fFunc(func([]any) (Value, error) { return formatter, nil }),
		}),
		"indexedDB": fObject(nil),
	})
}

// fullWindow returns a window where every signal is available.
func fullWindow() *fakeWindow {
	return &fakeWindow{
		navigator: &fakeNavigator{
			userAgent:           "Mozilla/5.0 (Test)",
			language:            "en-US",
			languages:           []string{"en-US", "en"},
			platform:            "Linux x86_64",
			hardwareConcurrency: 8,
			online:              true,
			plugins:             []Plugin{{Name: "PDF Viewer", Description: "Portable Document Format"}},
			mimeTypes:           []string{"application/pdf"},
			object: fObject(map[string]Value{
				"cookieEnabled": fBool(true),
				"doNotTrack":    fString("1"),
				"deviceMemory":  fNumber(8),
			}),
		},
		screen: &fakeScreen{
			width: 1920, height: 1080, colorDepth: 24, pixelDepth: 24,
			availWidth: 1920, availHeight: 1040,
		},
		document: &fakeDocument{},
		dpr:      1.5,
		offset:   -60,
		storage:  true,
		object:   intlObject("Europe/Berlin"),
	}
}

// glData is what the fake WebGL contexts report.
type glData struct {
	params     map[uint32]string
	debug      bool
	extensions []string
}

// dynamicGL builds a context reachable only by function name.
func dynamicGL(d glData) *fakeValue {
	return fObject(map[string]Value{
		"getParameter": fFunc(func(args []any) (Value, error) {
			code, ok := args[0].(float64)
			if !ok {
				return nil, fmt.Errorf("getParameter: argument is %T", args[0])
			}
			if s, ok := d.params[uint32(code)]; ok {
				return fString(s), nil
			}
			return fNull(), nil
		}),
		"getExtension": fFunc(func(args []any) (Value, error) {
			if args[0] == DebugRendererInfo && d.debug {
				return debugExtension(), nil
			}
			return fNull(), nil
		}),
		"getSupportedExtensions": fFunc(func([]any) (Value, error) {
			return fStrings(d.extensions...), nil
		}),
	})
}

func debugExtension() *fakeValue {
	return fObject(map[string]Value{
		"UNMASKED_VENDOR_WEBGL":   fNumber(float64(GLUnmaskedVendor)),
		"UNMASKED_RENDERER_WEBGL": fNumber(float64(GLUnmaskedRenderer)),
	})
}

// typedGL is a legacy context exposing the typed surface.
type typedGL struct {
	*fakeValue
	d glData
}

func newTypedGL(d glData) *typedGL {
	return &typedGL{fakeValue: fObject(nil), d: d}
}

func (g *typedGL) GetParameter(code uint32) (Value, error) {
	if s, ok := g.d.params[code]; ok {
		return fString(s), nil
	}
	return fNull(), nil
}

func (g *typedGL) GetExtension(name string) (Value, error) {
	if name == DebugRendererInfo && g.d.debug {
		return debugExtension(), nil
	}
	return nil, ErrUnsupported
}

func (g *typedGL) GetSupportedExtensions() ([]string, error) {
	return g.d.extensions, nil
}
