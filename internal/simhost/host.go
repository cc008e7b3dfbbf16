package simhost

import (
	"fmt"
	"log/slog"

	"github.com/slashdevops/browserid"
	"github.com/slashdevops/browserid/internal/softcanvas"
)

// Host is a simulated browser host. It implements [browserid.Host].
type Host struct {
	profile *Profile
	fonts   *softcanvas.Fonts
	logger  *slog.Logger
}

// New returns a host simulating p. The profile is deep-copied, so later
// changes to p do not reach the host.
func New(p *Profile) (*Host, error) {
	if p == nil {
		return nil, fmt.Errorf("nil profile")
	}
	cp := p.Clone()
	cp.applyDefaults()
	if err := cp.Validate(); err != nil {
		return nil, err
	}

	fonts := softcanvas.NewFonts()
	for family, face := range cp.Canvas.Fonts {
		if err := fonts.Alias(family, face); err != nil {
			return nil, fmt.Errorf("canvas fonts: %w", err)
		}
	}

	return &Host{profile: cp, fonts: fonts}, nil
}

// WithLogger sets a logger for canvas and context activity. A nil logger
// disables logging.
func (h *Host) WithLogger(logger *slog.Logger) *Host {
	h.logger = logger
	return h
}

// Profile returns a deep copy of the simulated profile.
func (h *Host) Profile() *Profile {
	return h.profile.Clone()
}

func (h *Host) Window() (browserid.Window, error) {
	if !*h.profile.Window {
		return nil, browserid.ErrNoWindow
	}

	return &window{host: h, object: h.windowObject()}, nil
}

func (h *Host) logDebug(msg string, args ...any) {
	if h.logger != nil {
		h.logger.Debug(msg, args...)
	}
}

// windowObject builds the reflective view of the window: indexedDB and the
// Intl.DateTimeFormat chain.
func (h *Host) windowObject() *Object {
	w := NewObject(nil)
	if h.profile.IndexedDB {
		w.Set("indexedDB", NewObject(nil))
	}

	timezone := h.profile.Timezone
	dateTimeFormat := Function(func(_ *Object, _ []any) (browserid.Value, error) {
		formatter := NewObject(nil)
		formatter.Method("resolvedOptions", func(_ *Object, _ []any) (browserid.Value, error) {
			options := NewObject(nil).Set("locale", String("en-US"))
			if timezone != nil {
				options.Set("timeZone", String(*timezone))
			}

			return options, nil
		})

		return formatter, nil
	})
	w.Set("Intl", NewObject(nil).Set("DateTimeFormat", dateTimeFormat))

	return w
}

type window struct {
	host   *Host
	object *Object
}

func (w *window) Navigator() (browserid.Navigator, error) {
	if w.host.profile.Navigator.Disabled {
		return nil, browserid.ErrUnsupported
	}

	return newNavigator(w.host.profile.Navigator), nil
}

func (w *window) Screen() (browserid.Screen, error) {
	if w.host.profile.Screen.Disabled {
		return nil, browserid.ErrUnsupported
	}

	return screen{p: w.host.profile.Screen}, nil
}

func (w *window) Document() (browserid.Document, error) {
	if !*w.host.profile.Document {
		return nil, browserid.ErrNoDocument
	}

	return &document{host: w.host}, nil
}

func (w *window) DevicePixelRatio() (float64, error) {
	return value(w.host.profile.DevicePixelRatio)
}

func (w *window) LocalStorage() (bool, error) {
	return value(w.host.profile.LocalStorage)
}

func (w *window) SessionStorage() (bool, error) {
	return value(w.host.profile.SessionStorage)
}

func (w *window) TimezoneOffset() (int32, error) {
	return value(w.host.profile.TimezoneOffset)
}

func (w *window) Object() browserid.Value {
	return w.object
}

// value dereferences an optional profile value.
func value[T any](v *T) (T, error) {
	if v == nil {
		var zero T
		return zero, browserid.ErrUnsupported
	}

	return *v, nil
}

type navigator struct {
	p      NavigatorProfile
	object *Object
}

func newNavigator(p NavigatorProfile) *navigator {
	obj := NewObject(nil)
	if p.UserAgent != nil {
		obj.Set("userAgent", String(*p.UserAgent))
	}
	if p.CookieEnabled != nil {
		obj.Set("cookieEnabled", Bool(*p.CookieEnabled))
	}
	if p.DoNotTrack != nil {
		obj.Set("doNotTrack", String(*p.DoNotTrack))
	} else {
		obj.Set("doNotTrack", Null())
	}
	if p.DeviceMemory != nil {
		obj.Set("deviceMemory", Number(*p.DeviceMemory))
	}

	return &navigator{p: p, object: obj}
}

func (n *navigator) UserAgent() (string, error) { return value(n.p.UserAgent) }
func (n *navigator) Language() (string, error)  { return value(n.p.Language) }
func (n *navigator) Platform() (string, error)  { return value(n.p.Platform) }
func (n *navigator) OnLine() (bool, error)      { return value(n.p.Online) }

func (n *navigator) HardwareConcurrency() (uint32, error) {
	return value(n.p.HardwareConcurrency)
}

func (n *navigator) MaxTouchPoints() (uint32, error) {
	return value(n.p.MaxTouchPoints)
}

func (n *navigator) Languages() ([]string, error) {
	if n.p.Languages == nil {
		return nil, browserid.ErrUnsupported
	}

	return append([]string(nil), n.p.Languages...), nil
}

func (n *navigator) Plugins() ([]browserid.Plugin, error) {
	if n.p.Plugins == nil {
		return nil, browserid.ErrUnsupported
	}

	plugins := make([]browserid.Plugin, 0, len(n.p.Plugins))
	for _, pl := range n.p.Plugins {
		plugins = append(plugins, browserid.Plugin{Name: pl.Name, Description: pl.Description})
	}

	return plugins, nil
}

func (n *navigator) MimeTypes() ([]string, error) {
	if n.p.MimeTypes == nil {
		return nil, browserid.ErrUnsupported
	}

	return append([]string(nil), n.p.MimeTypes...), nil
}

func (n *navigator) Object() browserid.Value {
	return n.object
}

type screen struct {
	p ScreenProfile
}

func (s screen) Width() (int32, error)       { return value(s.p.Width) }
func (s screen) Height() (int32, error)      { return value(s.p.Height) }
func (s screen) ColorDepth() (int32, error)  { return value(s.p.ColorDepth) }
func (s screen) PixelDepth() (int32, error)  { return value(s.p.PixelDepth) }
func (s screen) AvailWidth() (int32, error)  { return value(s.p.AvailWidth) }
func (s screen) AvailHeight() (int32, error) { return value(s.p.AvailHeight) }

type document struct {
	host *Host
}

func (d *document) CreateCanvas() (browserid.Canvas, error) {
	if d.host.profile.Canvas.Disabled {
		return nil, browserid.ErrCanvasUnavailable
	}
	d.host.logDebug("canvas created")

	return &canvas{host: d.host, surface: softcanvas.New(d.host.fonts).WithLogger(d.host.logger)}, nil
}

// RenderPNG draws on a fresh width x height canvas with the host's fonts and
// returns the raster as PNG.
func (h *Host) RenderPNG(width, height int, draw func(browserid.Context2D) error) ([]byte, error) {
	surface := softcanvas.New(h.fonts).WithLogger(h.logger)
	surface.SetSize(width, height)

	ctx, err := surface.Context2D()
	if err != nil {
		return nil, err
	}
	if err := draw(ctx); err != nil {
		return nil, fmt.Errorf("draw: %w", err)
	}

	return surface.PNG()
}
