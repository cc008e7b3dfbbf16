package browserid

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/google/uuid"
)

// Session collects browser fingerprints from a host and keeps the last
// successful one. A Session holds zero or one [Fingerprint]; [Session.Collect]
// is the only method that replaces it.
//
// Run one collection at a time per Session. Readers ([Session.Hash],
// [Session.Fingerprint]) may run concurrently with a collection and observe
// either the previous record or the new one, never a partial record.
type Session struct {
	host        Host
	logger      *slog.Logger
	diagnostics *DiagnosticInfo
	record      *Fingerprint
	id          string
	mu          sync.Mutex
}

// New creates an empty Session bound to the platform's default host. On
// js/wasm that is the browser's global window; elsewhere there is no
// default host and a host must be supplied with [Session.WithHost].
func New() *Session {
	return &Session{
		host: defaultHost(),
		id:   uuid.NewString(),
	}
}

// WithHost sets the host the session collects from, enabling collection
// against simulated or custom hosts.
func (s *Session) WithHost(host Host) *Session {
	s.host = host

	return s
}

// WithLogger sets an optional [*slog.Logger] for observability.
// When set, the session logs collection progress, signals that fell back to
// their defaults, the WebGL strategy used and fatal failures. A nil logger
// (the default) disables all logging.
func (s *Session) WithLogger(logger *slog.Logger) *Session {
	s.logger = logger

	return s
}

// ID returns the session identifier attached to log records.
func (s *Session) ID() string {
	return s.id
}

// Collect probes the host, renders the canvas fingerprint, introspects
// WebGL and derives the canonical hash. On success the new record replaces
// any previous one and a copy is returned. On failure the held record is
// left untouched.
func (s *Session) Collect() (*Fingerprint, error) {
	s.logInfo("collecting fingerprint", "platform", runtime.GOOS+"/"+runtime.GOARCH)

	diag := newDiagnosticInfo()
	var logger *slog.Logger
	if s.logger != nil {
		logger = s.logger.With("session_id", s.id)
	}
	record, err := collect(s.host, &probe{diag: diag, logger: logger})

	s.mu.Lock()
	s.diagnostics = diag
	if err != nil {
		s.mu.Unlock()
		s.logWarn("fingerprint collection failed", "error", err)

		return nil, err
	}
	s.record = record
	s.mu.Unlock()

	s.logInfo("fingerprint collected",
		"hash", record.FingerprintHash,
		"collected", len(diag.Collected),
		"defaulted", len(diag.Defaulted),
	)

	return record.clone(), nil
}

// Hash returns the hash of the held record. The boolean is false when no
// collection has succeeded yet.
func (s *Session) Hash() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.record == nil {
		return "", false
	}

	return s.record.FingerprintHash, true
}

// Fingerprint returns a copy of the held record. The boolean is false when
// no collection has succeeded yet.
func (s *Session) Fingerprint() (*Fingerprint, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.record == nil {
		return nil, false
	}

	return s.record.clone(), true
}

// Diagnostics returns information about which signals were read and which
// fell back to defaults during the last call to [Session.Collect], whether
// or not it succeeded. Returns nil if Collect has not been called yet.
func (s *Session) Diagnostics() *DiagnosticInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.diagnostics
}

// Validate reports whether hash matches the held record's hash. When
// nothing has been collected yet it collects first.
func (s *Session) Validate(hash string) (bool, error) {
	current, ok := s.Hash()
	s.logDebug("validating fingerprint hash", "collected", ok)
	if !ok {
		record, err := s.Collect()
		if err != nil {
			return false, err
		}
		current = record.FingerprintHash
	}

	return current == hash, nil
}

// collect runs the whole pipeline. It returns a fully populated record or
// an error, never a partial record.
func collect(host Host, p *probe) (*Fingerprint, error) {
	if host == nil {
		return nil, ErrNoWindow
	}
	win, err := host.Window()
	if err != nil {
		return nil, joinCause(ErrNoWindow, err)
	}
	if win == nil {
		return nil, ErrNoWindow
	}

	doc, err := win.Document()
	if err != nil {
		return nil, joinCause(ErrNoDocument, err)
	}
	if doc == nil {
		return nil, ErrNoDocument
	}

	sig := collectSignals(win, p)

	canvasHash, err := canvasFingerprint(doc)
	if err != nil {
		return nil, fmt.Errorf("canvas fingerprint: %w", err)
	}

	graphics, err := introspectGraphics(doc, p)
	if err != nil {
		return nil, fmt.Errorf("webgl introspection: %w", err)
	}

	record := assemble(sig, canvasHash, graphics)
	record.FingerprintHash = CanonicalHash(record)

	return record, nil
}

// logDebug logs at debug level if a logger is configured.
func (s *Session) logDebug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, append(args, "session_id", s.id)...)
	}
}

// logInfo logs at info level if a logger is configured.
func (s *Session) logInfo(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, append(args, "session_id", s.id)...)
	}
}

// logWarn logs at warn level if a logger is configured.
func (s *Session) logWarn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, append(args, "session_id", s.id)...)
	}
}
