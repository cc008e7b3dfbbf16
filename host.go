package browserid

// Host gives access to the window a collection runs against. A host with
// no window must return [ErrNoWindow].
type Host interface {
	Window() (Window, error)
}

// Window is the typed surface of the host's global window.
// Every getter reports [ErrUnsupported] (or any other error) when the host
// cannot provide the value.
type Window interface {
	Navigator() (Navigator, error)
	Screen() (Screen, error)
	Document() (Document, error)
	DevicePixelRatio() (float64, error)

	// LocalStorage and SessionStorage report whether the storage object
	// is reachable.
	LocalStorage() (bool, error)
	SessionStorage() (bool, error)

	// TimezoneOffset returns the offset in minutes between UTC and local
	// time, as Date.prototype.getTimezoneOffset does.
	TimezoneOffset() (int32, error)

	// Object exposes the window for reflective lookups (indexedDB, Intl).
	Object() Value
}

// Navigator is the typed surface of window.navigator.
type Navigator interface {
	UserAgent() (string, error)
	Language() (string, error)
	Languages() ([]string, error)
	Platform() (string, error)
	HardwareConcurrency() (uint32, error)
	MaxTouchPoints() (uint32, error)
	OnLine() (bool, error)
	Plugins() ([]Plugin, error)
	MimeTypes() ([]string, error)

	// Object exposes the navigator for properties the typed surface does
	// not carry (cookieEnabled, doNotTrack, deviceMemory).
	Object() Value
}

// Plugin is one entry of navigator.plugins.
type Plugin struct {
	Name        string
	Description string
}

// Screen is the typed surface of window.screen.
type Screen interface {
	Width() (int32, error)
	Height() (int32, error)
	ColorDepth() (int32, error)
	PixelDepth() (int32, error)
	AvailWidth() (int32, error)
	AvailHeight() (int32, error)
}

// Document creates drawing surfaces.
type Document interface {
	CreateCanvas() (Canvas, error)
}

// Canvas is an offscreen canvas element.
type Canvas interface {
	SetSize(width, height int)

	// Context2D returns the 2D rendering context.
	Context2D() (Context2D, error)

	// Context returns the raw handle for a 3D context family ("webgl",
	// "experimental-webgl", "webgl2"). Hosts return an error or a nullish
	// value when the family cannot be acquired. A handle that belongs to
	// the legacy family also implements [WebGLContext].
	Context(name string) (Value, error)

	// DataURL serializes the raster, as HTMLCanvasElement.toDataURL does.
	DataURL() (string, error)
}

// Context2D is the subset of CanvasRenderingContext2D the canvas
// fingerprint draws with. Colors and fonts use CSS syntax.
type Context2D interface {
	SetFillStyle(style string)
	SetFont(font string)
	FillRect(x, y, w, h float64) error
	FillText(text string, x, y float64) error
	BeginPath()
	Arc(x, y, radius, startAngle, endAngle float64) error
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	Fill() error
}

// WebGLContext is the typed surface of the legacy WebGL context family
// (WebGLRenderingContext). The newer family has no typed counterpart and is
// only reached through [Dynamic].
type WebGLContext interface {
	GetParameter(pname uint32) (Value, error)

	// GetExtension returns a nullish value or an error when the
	// extension is not supported.
	GetExtension(name string) (Value, error)
	GetSupportedExtensions() ([]string, error)
}
