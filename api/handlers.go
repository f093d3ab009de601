package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/jmcleod/tagrelay/lookup"
	"github.com/jmcleod/tagrelay/phone"
)

const healthTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Health handles GET /health.
func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "OK",
		Timestamp: a.now().UTC().Format(healthTimeFormat),
	})
}

// CheckNumber handles POST /check-number.
// Credentials are used for this one lookup and never stored.
func (a *API) CheckNumber(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[CheckNumberRequest](w, r, maxCheckRequestSize)
	if !ok {
		a.audit.logFailure(AuditLookupRejected, r, msgInvalidBody)
		return
	}

	if req.Phone == "" || req.Token == "" || req.FinalKey == "" {
		a.audit.logFailure(AuditLookupRejected, r, "missing required fields")
		writeError(w, http.StatusBadRequest, msgMissingFields)
		return
	}

	dialCode := strings.TrimSpace(req.CountryCode)
	if dialCode != "" && !phone.ValidDialCode(dialCode) {
		a.audit.logFailure(AuditLookupRejected, r, "invalid country code")
		writeError(w, http.StatusBadRequest, msgInvalidDialCode)
		return
	}

	start := a.now()
	res, err := a.checker.Check(r.Context(), lookup.Request{
		PhoneNumber: req.Phone,
		Token:       req.Token,
		FinalKey:    req.FinalKey,
		DialCode:    dialCode,
	})
	elapsed := a.now().Sub(start)
	if err != nil {
		kind := lookup.KindOf(err)
		a.metrics.observe(string(kind), elapsed)
		level := slog.LevelError
		if kind == lookup.KindValidation || kind == lookup.KindConfiguration {
			level = slog.LevelWarn
		}
		a.audit.logAt(level, AuditLookupFailed, r,
			slog.String("reason", err.Error()),
			slog.String("kind", string(kind)),
		)
		mapError(w, err)
		return
	}
	a.metrics.observe(outcomeOK, elapsed)

	tags := res.Tags
	if tags == nil {
		tags = []string{}
	}
	a.audit.log(AuditLookupSucceeded, r, slog.Int("tag_count", len(tags)))
	writeJSON(w, http.StatusOK, CheckNumberResponse{Number: res.Number, Tags: tags})
}
