package browserid

import (
	"fmt"
	"log/slog"
)

// Signal names used as keys in DiagnosticInfo. They match the JSON names of
// the record fields they populate.
const (
	SignalUserAgent           = "user_agent"
	SignalLanguage            = "language"
	SignalLanguages           = "languages"
	SignalPlatform            = "platform"
	SignalCookieEnabled       = "cookie_enabled"
	SignalDoNotTrack          = "do_not_track"
	SignalHardwareConcurrency = "hardware_concurrency"
	SignalDeviceMemory        = "device_memory"
	SignalMaxTouchPoints      = "max_touch_points"
	SignalScreenWidth         = "screen_width"
	SignalScreenHeight        = "screen_height"
	SignalScreenColorDepth    = "screen_color_depth"
	SignalScreenPixelDepth    = "screen_pixel_depth"
	SignalScreenAvailWidth    = "screen_avail_width"
	SignalScreenAvailHeight   = "screen_avail_height"
	SignalDevicePixelRatio    = "device_pixel_ratio"
	SignalTimezone            = "timezone"
	SignalTimezoneOffset      = "timezone_offset"
	SignalLocalStorage        = "local_storage"
	SignalSessionStorage      = "session_storage"
	SignalIndexedDB           = "indexed_db"
	SignalPlugins             = "plugins"
	SignalMimeTypes           = "mime_types"
	SignalOnline              = "online"
	SignalWebGL               = "webgl"
)

// DiagnosticInfo contains information about what was read during the last
// collection. Use [Session.Diagnostics] to retrieve it after [Session.Collect].
type DiagnosticInfo struct {
	Defaulted map[string]error // signal names that fell back to their default, with the reason
	Collected []string         // signal names that were read from the host
}

func newDiagnosticInfo() *DiagnosticInfo {
	return &DiagnosticInfo{
		Defaulted: make(map[string]error),
	}
}

// probe reads host signals one at a time, isolating every failure.
type probe struct {
	diag   *DiagnosticInfo
	logger *slog.Logger
}

// screenSignals holds the six screen integers.
type screenSignals struct {
	width       int32
	height      int32
	colorDepth  int32
	pixelDepth  int32
	availWidth  int32
	availHeight int32
}

// signals is everything the capability probe produces.
type signals struct {
	userAgent           string
	language            string
	languages           []string
	platform            string
	cookieEnabled       bool
	doNotTrack          *string
	hardwareConcurrency *uint32
	deviceMemory        *float64
	maxTouchPoints      uint32
	screen              screenSignals
	devicePixelRatio    float64
	timezone            string
	timezoneOffset      int32
	localStorage        bool
	sessionStorage      bool
	indexedDB           bool
	plugins             []string
	mimeTypes           []string
	online              bool
}

// readSignal returns get's value, or def when get fails. The outcome is
// recorded under signal.
func readSignal[T any](p *probe, signal string, get func() (T, error), def T) T {
	v, err := get()
	if err != nil {
		p.defaulted(signal, err)

		return def
	}
	p.collected(signal)

	return v
}

// readOptional is readSignal for fields that are absent rather than zero
// when the host cannot provide them.
func readOptional[T any](p *probe, signal string, get func() (T, error)) *T {
	v, err := get()
	if err != nil {
		p.defaulted(signal, err)

		return nil
	}
	p.collected(signal)

	return &v
}

func (p *probe) defaulted(signal string, err error) {
	if p.diag != nil {
		p.diag.Defaulted[signal] = &SignalError{Signal: signal, Err: err}
	}
	if p.logger != nil {
		p.logger.Debug("signal defaulted", "signal", signal, "error", err)
	}
}

func (p *probe) collected(signal string) {
	if p.diag != nil {
		p.diag.Collected = append(p.diag.Collected, signal)
	}
}

// collectSignals runs the capability probe against w. It never fails: every
// signal resolves to a value or its default.
func collectSignals(w Window, p *probe) signals {
	var s signals

	nav, err := w.Navigator()
	if err != nil || nav == nil {
		nav = unavailableNavigator{err: orUnsupported(err)}
	}
	navObject := NewDynamic(nav.Object())

	s.userAgent = readSignal(p, SignalUserAgent, nav.UserAgent, "")
	language := readOptional(p, SignalLanguage, nav.Language)
	if language != nil {
		s.language = *language
	}
	s.languages = readSignal(p, SignalLanguages, nav.Languages, []string(nil))
	// An empty list falls back to the primary language whenever it was read,
	// even as "".
	if len(s.languages) == 0 && language != nil {
		s.languages = []string{*language}
	}
	s.platform = readSignal(p, SignalPlatform, nav.Platform, "")
	s.cookieEnabled = readSignal(p, SignalCookieEnabled, func() (bool, error) {
		return navObject.GetBool("cookieEnabled")
	}, false)
	s.doNotTrack = readOptional(p, SignalDoNotTrack, func() (string, error) {
		return navObject.GetString("doNotTrack")
	})

	s.hardwareConcurrency = readOptional(p, SignalHardwareConcurrency, nav.HardwareConcurrency)
	s.deviceMemory = readOptional(p, SignalDeviceMemory, func() (float64, error) {
		return navObject.GetFloat("deviceMemory")
	})
	s.maxTouchPoints = readSignal(p, SignalMaxTouchPoints, nav.MaxTouchPoints, 0)

	scr, err := w.Screen()
	if err != nil || scr == nil {
		scr = unavailableScreen{err: orUnsupported(err)}
	}
	s.screen = screenSignals{
		width:       readSignal(p, SignalScreenWidth, scr.Width, 0),
		height:      readSignal(p, SignalScreenHeight, scr.Height, 0),
		colorDepth:  readSignal(p, SignalScreenColorDepth, scr.ColorDepth, 0),
		pixelDepth:  readSignal(p, SignalScreenPixelDepth, scr.PixelDepth, 0),
		availWidth:  readSignal(p, SignalScreenAvailWidth, scr.AvailWidth, 0),
		availHeight: readSignal(p, SignalScreenAvailHeight, scr.AvailHeight, 0),
	}
	s.devicePixelRatio = readSignal(p, SignalDevicePixelRatio, w.DevicePixelRatio, 0)

	s.timezone = readSignal(p, SignalTimezone, func() (string, error) {
		return resolveTimezone(w.Object())
	}, UnknownTimezone)
	s.timezoneOffset = readSignal(p, SignalTimezoneOffset, w.TimezoneOffset, 0)

	s.localStorage = readSignal(p, SignalLocalStorage, w.LocalStorage, false)
	s.sessionStorage = readSignal(p, SignalSessionStorage, w.SessionStorage, false)
	s.indexedDB = readSignal(p, SignalIndexedDB, func() (bool, error) {
		return propertyPresent(w.Object(), "indexedDB")
	}, false)

	s.plugins = readSignal(p, SignalPlugins, func() ([]string, error) {
		return pluginNames(nav)
	}, []string(nil))
	s.mimeTypes = readSignal(p, SignalMimeTypes, nav.MimeTypes, []string(nil))
	s.online = readSignal(p, SignalOnline, nav.OnLine, false)

	return s
}

// resolveTimezone asks Intl.DateTimeFormat().resolvedOptions() for the
// zone name.
func resolveTimezone(global Value) (string, error) {
	intl, err := NewDynamic(global).GetObject("Intl")
	if err != nil {
		return "", err
	}
	ctor, err := intl.GetObject("DateTimeFormat")
	if err != nil {
		return "", err
	}
	if ctor.Value().Kind() != KindFunction {
		return "", fmt.Errorf("DateTimeFormat: %w", ErrNotFunction)
	}
	formatter, err := ctor.Value().Invoke()
	if err != nil {
		return "", fmt.Errorf("DateTimeFormat: %w", err)
	}
	options, err := NewDynamic(formatter).CallFunction("resolvedOptions")
	if err != nil {
		return "", err
	}

	return NewDynamic(options).GetString("timeZone")
}

// propertyPresent reports whether the named property is neither undefined
// nor null.
func propertyPresent(v Value, name string) (bool, error) {
	if v == nil {
		return false, ErrUnsupported
	}
	p, err := v.Get(name)
	if err != nil {
		return false, err
	}

	return !IsNullish(p), nil
}

// pluginNames renders navigator.plugins as "name (description)".
func pluginNames(nav Navigator) ([]string, error) {
	plugins, err := nav.Plugins()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(plugins))
	for _, pl := range plugins {
		names = append(names, fmt.Sprintf("%s (%s)", pl.Name, pl.Description))
	}

	return names, nil
}

func orUnsupported(err error) error {
	if err == nil {
		return ErrUnsupported
	}

	return err
}

// unavailableNavigator stands in for a missing navigator so every
// navigator signal defaults individually.
type unavailableNavigator struct{ err error }

func (n unavailableNavigator) UserAgent() (string, error)           { return "", n.err }
func (n unavailableNavigator) Language() (string, error)            { return "", n.err }
func (n unavailableNavigator) Languages() ([]string, error)         { return nil, n.err }
func (n unavailableNavigator) Platform() (string, error)            { return "", n.err }
func (n unavailableNavigator) HardwareConcurrency() (uint32, error) { return 0, n.err }
func (n unavailableNavigator) MaxTouchPoints() (uint32, error)      { return 0, n.err }
func (n unavailableNavigator) OnLine() (bool, error)                { return false, n.err }
func (n unavailableNavigator) Plugins() ([]Plugin, error)           { return nil, n.err }
func (n unavailableNavigator) MimeTypes() ([]string, error)         { return nil, n.err }
func (n unavailableNavigator) Object() Value                        { return nil }

// unavailableScreen stands in for a missing screen.
type unavailableScreen struct{ err error }

func (s unavailableScreen) Width() (int32, error)       { return 0, s.err }
func (s unavailableScreen) Height() (int32, error)      { return 0, s.err }
func (s unavailableScreen) ColorDepth() (int32, error)  { return 0, s.err }
func (s unavailableScreen) PixelDepth() (int32, error)  { return 0, s.err }
func (s unavailableScreen) AvailWidth() (int32, error)  { return 0, s.err }
func (s unavailableScreen) AvailHeight() (int32, error) { return 0, s.err }
