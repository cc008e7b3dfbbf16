//go:build js && wasm

package browserid

import (
	"fmt"
	"syscall/js"
)

// defaultHost returns the browser's global window.
func defaultHost() Host {
	return browserHost{}
}

type browserHost struct{}

func (browserHost) Window() (Window, error) {
	w := js.Global().Get("window")
	if nullish(w) {
		return nil, ErrNoWindow
	}

	return browserWindow{v: w}, nil
}

// catch runs fn and turns a JavaScript exception into an error.
func catch(fn func() js.Value) (v js.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			if jsErr, ok := r.(js.Error); ok {
				err = jsErr
				return
			}
			err = fmt.Errorf("host panic: %v", r)
		}
	}()

	return fn(), nil
}

func nullish(v js.Value) bool {
	return v.IsUndefined() || v.IsNull()
}

// property reads name off v, reporting ErrUnsupported when it is missing.
func property(v js.Value, name string) (js.Value, error) {
	p, err := catch(func() js.Value { return v.Get(name) })
	if err != nil {
		return js.Undefined(), err
	}
	if nullish(p) {
		return p, fmt.Errorf("%s: %w", name, ErrUnsupported)
	}

	return p, nil
}

func stringProperty(v js.Value, name string) (string, error) {
	p, err := property(v, name)
	if err != nil {
		return "", err
	}
	if p.Type() != js.TypeString {
		return "", fmt.Errorf("%s: %w", name, ErrWrongType)
	}

	return p.String(), nil
}

func numberProperty(v js.Value, name string) (float64, error) {
	p, err := property(v, name)
	if err != nil {
		return 0, err
	}
	if p.Type() != js.TypeNumber {
		return 0, fmt.Errorf("%s: %w", name, ErrWrongType)
	}

	return p.Float(), nil
}

func boolProperty(v js.Value, name string) (bool, error) {
	p, err := property(v, name)
	if err != nil {
		return false, err
	}
	if p.Type() != js.TypeBoolean {
		return false, fmt.Errorf("%s: %w", name, ErrWrongType)
	}

	return p.Bool(), nil
}

func int32Property(v js.Value, name string) (int32, error) {
	f, err := numberProperty(v, name)

	return int32(f), err
}

// jsValue adapts js.Value to Value.
type jsValue struct {
	v js.Value
}

func (j jsValue) Kind() Kind {
	switch j.v.Type() {
	case js.TypeNull:
		return KindNull
	case js.TypeBoolean:
		return KindBool
	case js.TypeNumber:
		return KindNumber
	case js.TypeString:
		return KindString
	case js.TypeFunction:
		return KindFunction
	case js.TypeObject, js.TypeSymbol:
		return KindObject
	default:
		return KindUndefined
	}
}

func (j jsValue) Get(name string) (Value, error) {
	v, err := catch(func() js.Value { return j.v.Get(name) })
	if err != nil {
		return nil, err
	}

	return jsValue{v: v}, nil
}

func (j jsValue) Call(method string, args ...any) (Value, error) {
	v, err := catch(func() js.Value { return j.v.Call(method, args...) })
	if err != nil {
		return nil, err
	}

	return jsValue{v: v}, nil
}

func (j jsValue) Invoke(args ...any) (Value, error) {
	v, err := catch(func() js.Value { return j.v.Invoke(args...) })
	if err != nil {
		return nil, err
	}

	return jsValue{v: v}, nil
}

func (j jsValue) AsString() (string, bool) {
	if j.v.Type() != js.TypeString {
		return "", false
	}

	return j.v.String(), true
}

func (j jsValue) AsFloat() (float64, bool) {
	if j.v.Type() != js.TypeNumber {
		return 0, false
	}

	return j.v.Float(), true
}

func (j jsValue) AsBool() (bool, bool) {
	if j.v.Type() != js.TypeBoolean {
		return false, false
	}

	return j.v.Bool(), true
}

func (j jsValue) Len() (int, bool) {
	if j.v.Type() != js.TypeObject {
		return 0, false
	}
	n, err := catch(func() js.Value { return j.v.Get("length") })
	if err != nil || n.Type() != js.TypeNumber {
		return 0, false
	}

	return n.Int(), true
}

func (j jsValue) Index(i int) (Value, error) {
	v, err := catch(func() js.Value { return j.v.Index(i) })
	if err != nil {
		return nil, err
	}

	return jsValue{v: v}, nil
}

type browserWindow struct {
	v js.Value
}

func (w browserWindow) Navigator() (Navigator, error) {
	n, err := property(w.v, "navigator")
	if err != nil {
		return nil, err
	}

	return browserNavigator{v: n}, nil
}

func (w browserWindow) Screen() (Screen, error) {
	s, err := property(w.v, "screen")
	if err != nil {
		return nil, err
	}

	return browserScreen{v: s}, nil
}

func (w browserWindow) Document() (Document, error) {
	d, err := property(w.v, "document")
	if err != nil {
		return nil, err
	}

	return browserDocument{v: d}, nil
}

func (w browserWindow) DevicePixelRatio() (float64, error) {
	return numberProperty(w.v, "devicePixelRatio")
}

// Reading a storage property throws a SecurityError when storage is
// blocked; catch reports that as an error.
func (w browserWindow) LocalStorage() (bool, error) {
	return storagePresent(w.v, "localStorage")
}

func (w browserWindow) SessionStorage() (bool, error) {
	return storagePresent(w.v, "sessionStorage")
}

func storagePresent(w js.Value, name string) (bool, error) {
	v, err := catch(func() js.Value { return w.Get(name) })
	if err != nil {
		return false, err
	}

	return !nullish(v), nil
}

func (w browserWindow) TimezoneOffset() (int32, error) {
	v, err := catch(func() js.Value {
		return js.Global().Get("Date").New().Call("getTimezoneOffset")
	})
	if err != nil {
		return 0, err
	}
	if v.Type() != js.TypeNumber {
		return 0, ErrWrongType
	}

	return int32(v.Int()), nil
}

func (w browserWindow) Object() Value {
	return jsValue{v: w.v}
}

type browserNavigator struct {
	v js.Value
}

func (n browserNavigator) UserAgent() (string, error) { return stringProperty(n.v, "userAgent") }
func (n browserNavigator) Language() (string, error)  { return stringProperty(n.v, "language") }
func (n browserNavigator) Platform() (string, error)  { return stringProperty(n.v, "platform") }
func (n browserNavigator) OnLine() (bool, error)      { return boolProperty(n.v, "onLine") }

func (n browserNavigator) Languages() ([]string, error) {
	arr, err := property(n.v, "languages")
	if err != nil {
		return nil, err
	}

	return Strings(jsValue{v: arr}), nil
}

func (n browserNavigator) HardwareConcurrency() (uint32, error) {
	f, err := numberProperty(n.v, "hardwareConcurrency")

	return uint32(f), err
}

func (n browserNavigator) MaxTouchPoints() (uint32, error) {
	f, err := numberProperty(n.v, "maxTouchPoints")

	return uint32(f), err
}

func (n browserNavigator) Plugins() ([]Plugin, error) {
	arr, err := property(n.v, "plugins")
	if err != nil {
		return nil, err
	}
	count, err := int32Property(arr, "length")
	if err != nil {
		return nil, err
	}

	plugins := make([]Plugin, 0, count)
	for i := range int(count) {
		item, err := catch(func() js.Value { return arr.Call("item", i) })
		if err != nil || nullish(item) {
			continue
		}
		name, _ := stringProperty(item, "name")
		desc, _ := stringProperty(item, "description")
		plugins = append(plugins, Plugin{Name: name, Description: desc})
	}

	return plugins, nil
}

func (n browserNavigator) MimeTypes() ([]string, error) {
	arr, err := property(n.v, "mimeTypes")
	if err != nil {
		return nil, err
	}
	count, err := int32Property(arr, "length")
	if err != nil {
		return nil, err
	}

	types := make([]string, 0, count)
	for i := range int(count) {
		item, err := catch(func() js.Value { return arr.Call("item", i) })
		if err != nil || nullish(item) {
			continue
		}
		if t, err := stringProperty(item, "type"); err == nil {
			types = append(types, t)
		}
	}

	return types, nil
}

func (n browserNavigator) Object() Value {
	return jsValue{v: n.v}
}

type browserScreen struct {
	v js.Value
}

func (s browserScreen) Width() (int32, error)       { return int32Property(s.v, "width") }
func (s browserScreen) Height() (int32, error)      { return int32Property(s.v, "height") }
func (s browserScreen) ColorDepth() (int32, error)  { return int32Property(s.v, "colorDepth") }
func (s browserScreen) PixelDepth() (int32, error)  { return int32Property(s.v, "pixelDepth") }
func (s browserScreen) AvailWidth() (int32, error)  { return int32Property(s.v, "availWidth") }
func (s browserScreen) AvailHeight() (int32, error) { return int32Property(s.v, "availHeight") }

type browserDocument struct {
	v js.Value
}

func (d browserDocument) CreateCanvas() (Canvas, error) {
	el, err := catch(func() js.Value { return d.v.Call("createElement", "canvas") })
	if err != nil {
		return nil, err
	}
	if nullish(el) || !instanceOf(el, "HTMLCanvasElement") {
		return nil, fmt.Errorf("createElement: %w", ErrWrongType)
	}

	return browserCanvas{v: el}, nil
}

// instanceOf reports whether v is an instance of the global constructor
// ctor. A host without that constructor cannot be checked, so any value
// passes; a throwing check fails.
func instanceOf(v js.Value, ctor string) bool {
	c := js.Global().Get(ctor)
	if nullish(c) {
		return true
	}
	ok, err := catch(func() js.Value { return js.ValueOf(v.InstanceOf(c)) })
	if err != nil {
		return false
	}

	return ok.Bool()
}

type browserCanvas struct {
	v js.Value
}

func (c browserCanvas) SetSize(width, height int) {
	c.v.Set("width", width)
	c.v.Set("height", height)
}

func (c browserCanvas) Context2D() (Context2D, error) {
	ctx, err := catch(func() js.Value { return c.v.Call("getContext", "2d") })
	if err != nil {
		return nil, err
	}
	if nullish(ctx) || !instanceOf(ctx, "CanvasRenderingContext2D") {
		return nil, ErrNoContext2D
	}

	return browserContext2D{v: ctx}, nil
}

// Context returns a typed legacy context when the handle is a
// WebGLRenderingContext, and a plain dynamic handle otherwise.
func (c browserCanvas) Context(name string) (Value, error) {
	ctx, err := catch(func() js.Value { return c.v.Call("getContext", name) })
	if err != nil {
		return nil, err
	}
	if nullish(ctx) {
		return nil, fmt.Errorf("%s: %w", name, ErrUnsupported)
	}

	legacy := js.Global().Get("WebGLRenderingContext")
	if !nullish(legacy) && ctx.InstanceOf(legacy) {
		return browserWebGL{jsValue: jsValue{v: ctx}}, nil
	}

	return jsValue{v: ctx}, nil
}

func (c browserCanvas) DataURL() (string, error) {
	v, err := catch(func() js.Value { return c.v.Call("toDataURL") })
	if err != nil {
		return "", err
	}
	if v.Type() != js.TypeString {
		return "", ErrWrongType
	}

	return v.String(), nil
}

type browserContext2D struct {
	v js.Value
}

func (c browserContext2D) SetFillStyle(style string) { c.v.Set("fillStyle", style) }
func (c browserContext2D) SetFont(font string)       { c.v.Set("font", font) }
func (c browserContext2D) BeginPath()                { c.v.Call("beginPath") }
func (c browserContext2D) MoveTo(x, y float64)       { c.v.Call("moveTo", x, y) }
func (c browserContext2D) LineTo(x, y float64)       { c.v.Call("lineTo", x, y) }
func (c browserContext2D) ClosePath()                { c.v.Call("closePath") }

func (c browserContext2D) FillRect(x, y, w, h float64) error {
	return c.call("fillRect", x, y, w, h)
}

func (c browserContext2D) FillText(text string, x, y float64) error {
	return c.call("fillText", text, x, y)
}

func (c browserContext2D) Arc(x, y, radius, startAngle, endAngle float64) error {
	return c.call("arc", x, y, radius, startAngle, endAngle)
}

func (c browserContext2D) Fill() error {
	return c.call("fill")
}

func (c browserContext2D) call(method string, args ...any) error {
	_, err := catch(func() js.Value { return c.v.Call(method, args...) })

	return err
}

// browserWebGL is the typed view of a WebGLRenderingContext.
type browserWebGL struct {
	jsValue
}

func (g browserWebGL) GetParameter(pname uint32) (Value, error) {
	return g.Call("getParameter", pname)
}

func (g browserWebGL) GetExtension(name string) (Value, error) {
	return g.Call("getExtension", name)
}

func (g browserWebGL) GetSupportedExtensions() ([]string, error) {
	v, err := g.Call("getSupportedExtensions")
	if err != nil {
		return nil, err
	}
	if IsNullish(v) {
		return nil, ErrUnsupported
	}

	return Strings(v), nil
}
