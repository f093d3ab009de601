// Package logging builds the process logger and masks subscriber data
// before it reaches log output.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// New returns a slog.Logger writing to w. format is "json" or "text".
func New(w io.Writer, format string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if format == "text" {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}
	return slog.New(h).With("app", "tagrelay")
}

// MaskNumber keeps the first 5 and last 2 characters of a phone number and
// replaces the rest with '*'. Short values and enabled=false pass through.
// Lengths count runes, so unnormalized input stays valid UTF-8.
func MaskNumber(number string, enabled bool) string {
	r := []rune(number)
	if !enabled || len(r) <= 7 {
		return number
	}
	return string(r[:5]) + strings.Repeat("*", len(r)-7) + string(r[len(r)-2:])
}
