package proposals

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoModuleResolver is returned by [Resolve] when absolute module paths are
// requested but no [ModuleResolver] was configured.
var ErrNoModuleResolver = errors.New("no module resolver configured")

// ErrUnsupportedHost is wrapped by [HostVersionError].
var ErrUnsupportedHost = errors.New("unsupported host compiler version")

// ErrorKind is a stable category for a validation failure.
//
// Callers should branch on Kind and Option rather than matching messages.
type ErrorKind int

const (
	// KindType means a value has the wrong primitive type.
	KindType ErrorKind = iota
	// KindUnknown means a key is not recognized.
	KindUnknown
	// KindEnum means a value is outside its closed set.
	KindEnum
	// KindCompat means two features are configured incompatibly.
	KindCompat
)

func (k ErrorKind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindUnknown:
		return "unknown"
	case KindEnum:
		return "enum"
	case KindCompat:
		return "compat"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

// OptionError describes one violated constraint of an [Input].
type OptionError struct {
	Kind ErrorKind
	// Option is the offending key: a global key, a feature name,
	// "feature.subkey", or empty for top-level unknown keys.
	Option string
	// Message is intended for humans.
	Message string
}

func (e *OptionError) Error() string {
	return e.Message
}

// ValidationError aggregates every [OptionError] found in an [Input].
type ValidationError struct {
	Errors []*OptionError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return "proposals: " + e.Errors[0].Message
	}
	return "proposals:\n" + strings.Join(e.Messages(), "\n")
}

// Unwrap exposes the individual option errors to [errors.As] and [errors.Is].
func (e *ValidationError) Unwrap() []error {
	errs := make([]error, 0, len(e.Errors))
	for _, oe := range e.Errors {
		errs = append(errs, oe)
	}
	return errs
}

// Messages returns the message of every option error, in discovery order.
func (e *ValidationError) Messages() []string {
	msgs := make([]string, 0, len(e.Errors))
	for _, oe := range e.Errors {
		msgs = append(msgs, oe.Message)
	}
	return msgs
}

// HostVersionError is returned when the host compiler does not satisfy the
// required version constraint.
type HostVersionError struct {
	Version    string
	Constraint string
	Err        error
}

func (e *HostVersionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("host version %q does not satisfy %q: %v", e.Version, e.Constraint, e.Err)
	}
	return fmt.Sprintf("host version %q does not satisfy %q", e.Version, e.Constraint)
}

func (e *HostVersionError) Unwrap() error {
	return e.Err
}

// quoteList renders keys as 'a', 'b', 'c'.
func quoteList(keys []string) string {
	quoted := make([]string, 0, len(keys))
	for _, k := range keys {
		quoted = append(quoted, "'"+k+"'")
	}
	return strings.Join(quoted, ", ")
}

// plural picks the singular or plural form for n items.
func plural(n int, singular, many string) string {
	if n == 1 {
		return singular
	}
	return many
}
