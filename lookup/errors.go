package lookup

import "errors"

// Kind classifies a lookup failure.
type Kind string

const (
	KindUnknown       Kind = "unknown"
	KindValidation    Kind = "validation"
	KindConfiguration Kind = "configuration"
	KindTransport     Kind = "transport"
	KindProtocol      Kind = "protocol"
	KindDecryption    Kind = "decryption"
)

// Error is returned by Client.Check for every failure. Error() is a single
// human-readable message that never carries credentials, key material or
// the upstream URL.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels below, so errors.Is(err, ErrTransport)
// holds for any transport failure.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Msg == "" && t.Err == nil && t.Kind == e.Kind
}

var (
	ErrValidation    = &Error{Kind: KindValidation}
	ErrConfiguration = &Error{Kind: KindConfiguration}
	ErrTransport     = &Error{Kind: KindTransport}
	ErrProtocol      = &Error{Kind: KindProtocol}
	ErrDecryption    = &Error{Kind: KindDecryption}
)

// KindOf returns the Kind of err, or KindUnknown if err is not a *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func newError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}
