package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// AuditEvent identifies the outcome of a relay request being logged.
type AuditEvent string

const (
	AuditLookupSucceeded AuditEvent = "lookup_succeeded"
	AuditLookupFailed    AuditEvent = "lookup_failed"
	AuditLookupRejected  AuditEvent = "lookup_rejected"
	AuditPanicRecovered  AuditEvent = "panic_recovered"
)

// auditLogger wraps slog.Logger for structured request audit logging.
// Request bodies are never logged; they carry the caller's credentials.
type auditLogger struct {
	logger *slog.Logger
}

func newAuditLogger(logger *slog.Logger) *auditLogger {
	return &auditLogger{
		logger: logger.With("component", "audit"),
	}
}

func (al *auditLogger) log(event AuditEvent, r *http.Request, attrs ...slog.Attr) {
	al.logAt(slog.LevelInfo, event, r, attrs...)
}

// logFailure logs a rejected or failed request with its reason.
func (al *auditLogger) logFailure(event AuditEvent, r *http.Request, reason string, extra ...slog.Attr) {
	attrs := []slog.Attr{
		slog.String("reason", reason),
	}
	attrs = append(attrs, extra...)
	al.logAt(slog.LevelWarn, event, r, attrs...)
}

func (al *auditLogger) logAt(level slog.Level, event AuditEvent, r *http.Request, attrs ...slog.Attr) {
	baseAttrs := []slog.Attr{
		slog.String("event", string(event)),
		slog.String("remote_addr", r.RemoteAddr),
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
	}
	if id := middleware.GetReqID(r.Context()); id != "" {
		baseAttrs = append(baseAttrs, slog.String("request_id", id))
	}
	baseAttrs = append(baseAttrs, attrs...)
	al.logger.LogAttrs(r.Context(), level, "audit", baseAttrs...)
}
