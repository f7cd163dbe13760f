package compositor

import (
	"github.com/pkg/errors"
)

// Kind classifies a compositor failure.
type Kind int

const (
	// KindUnknown is reported for errors that did not come from this package.
	KindUnknown Kind = iota
	// KindInvalidConfig means the placement parameters were rejected before
	// any image work started.
	KindInvalidConfig
	// KindDecode means the source could not be read or parsed as an image.
	KindDecode
	// KindEncode means the output could not be encoded or written.
	KindEncode
)

func (k Kind) String() string {
	switch k {
	case KindInvalidConfig:
		return "invalid config"
	case KindDecode:
		return "decode error"
	case KindEncode:
		return "encode error"
	default:
		return "unknown error"
	}
}

// Error is returned by every failing compositor operation.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e's kind, so that
// errors.Is(err, ErrDecode) works on wrapped errors.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Err == nil && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrInvalidConfig = &Error{Kind: KindInvalidConfig}
	ErrDecode        = &Error{Kind: KindDecode}
	ErrEncode        = &Error{Kind: KindEncode}
)

// KindOf returns the Kind carried by err, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func invalidf(format string, args ...interface{}) error {
	return &Error{Kind: KindInvalidConfig, Err: errors.Errorf(format, args...)}
}

func wrapKind(kind Kind, err error, message string) error {
	return &Error{Kind: kind, Err: errors.Wrap(err, message)}
}
