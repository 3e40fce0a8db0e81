package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates which reflective operation produced the error
type Phase string

const (
	PhaseRead      Phase = "read"      // get, describe, has
	PhaseWrite     Phase = "write"     // set
	PhaseDefine    Phase = "define"    // define own property
	PhaseDelete    Phase = "delete"    // delete property
	PhaseDelegate  Phase = "delegate"  // delegate link and extensibility
	PhaseInvoke    Phase = "invoke"    // call
	PhaseConstruct Phase = "construct" // construct
	PhaseLoad      Phase = "load"      // module loading
	PhaseParse     Phase = "parse"     // fixture and command parsing
)

// Kind categorizes the error
type Kind string

const (
	KindRedefinition     Kind = "redefinition"
	KindNotCallable      Kind = "not_callable"
	KindNotConstructible Kind = "not_constructible"
	KindNotExtensible    Kind = "not_extensible"
	KindReadOnly         Kind = "read_only"
	KindTypeMismatch     Kind = "type_mismatch"
	KindInvalidInput     Kind = "invalid_input"
	KindNotFound         Kind = "not_found"
	KindTrap             Kind = "trap"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Key    string
	Type   string
	Detail string
	Path   []string
}

// Sentinels for errors.Is matching.
var (
	ErrRedefinition  = &Error{Phase: PhaseDefine, Kind: KindRedefinition}
	ErrNotExtensible = &Error{Phase: PhaseDefine, Kind: KindNotExtensible}
)

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Key != "" {
		b.WriteString(" key ")
		b.WriteString(fmt.Sprintf("%q", e.Key))
	}

	if e.Type != "" {
		b.WriteString(": type ")
		b.WriteString(e.Type)
	}

	if e.Detail != "" {
		if e.Type != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Key sets the property key
func (b *Builder) Key(key string) *Builder {
	b.err.Key = key
	return b
}

// Path sets the label path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Type sets the offending value's type name
func (b *Builder) Type(t string) *Builder {
	b.err.Type = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Redefinition creates the error raised when a non-configurable property is redefined
func Redefinition(key string) *Error {
	return &Error{
		Phase:  PhaseDefine,
		Kind:   KindRedefinition,
		Key:    key,
		Detail: fmt.Sprintf("cannot redefine property: %s", key),
	}
}

// IsRedefinition reports whether err is, or wraps, a redefinition error
func IsRedefinition(err error) bool {
	return stderrors.Is(err, ErrRedefinition)
}

// NotExtensible creates the error raised when a property is added to a sealed object
func NotExtensible(key string) *Error {
	return &Error{
		Phase:  PhaseDefine,
		Kind:   KindNotExtensible,
		Key:    key,
		Detail: fmt.Sprintf("cannot define property %s, object is not extensible", key),
	}
}

// ReadOnly creates the error raised by a strict assignment that was refused
func ReadOnly(key string) *Error {
	return &Error{
		Phase:  PhaseWrite,
		Kind:   KindReadOnly,
		Key:    key,
		Detail: fmt.Sprintf("cannot assign to read only property %s", key),
	}
}

// NotCallable creates the error raised when a non-callable value is invoked
func NotCallable(phase Phase, typeName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotCallable,
		Type:   typeName,
		Detail: "value is not a function",
	}
}

// NotConstructible creates the error raised when a value cannot be used with construct
func NotConstructible(typeName string) *Error {
	return &Error{
		Phase:  PhaseConstruct,
		Kind:   KindNotConstructible,
		Type:   typeName,
		Detail: "value is not a constructor",
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, typeName, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Path:   path,
		Type:   typeName,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Trap wraps a failure raised inside a guest function
func Trap(name string, cause error) *Error {
	return &Error{
		Phase:  PhaseInvoke,
		Kind:   KindTrap,
		Detail: fmt.Sprintf("call %s", name),
		Cause:  cause,
	}
}

// Load creates a module loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidInput,
		Detail: detail,
		Cause:  cause,
	}
}

// ParseFailed creates a parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidInput,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}
