// Package errors provides the error taxonomy shared by the condrv packages.
// It defines sentinel errors, typed errors carrying the context of the failing
// call, and classification helpers.
//
// # Error Types
//
//   - ArgumentError: wrong input shape at a buffer or console call boundary
//   - IndexError: out-of-range code-unit access on a buffer
//   - DecodeError: a buffer's content cannot be decoded to text
//   - OverflowError: a scalar reference was assigned an out-of-range value
//   - HandleError: a console call received a handle it does not know
//
// # Usage
//
//	err := errors.NewArgumentError("capacity must be positive").
//		WithField("capacity").WithValue(0)
//
//	if errors.Is(err, errors.ErrInvalidArgument) { ... }
//
//	var decodeErr *errors.DecodeError
//	if errors.As(err, &decodeErr) {
//		fmt.Println(decodeErr.Offset)
//	}
//
// A DecodeError is a legitimate outcome of truncating a wide buffer in the
// middle of a surrogate pair, so it carries SeverityWarning rather than
// SeverityError.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Standard library helpers, so callers need only this package.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity ranks how much an error matters to the caller. SeverityWarning
// marks errors that are an expected outcome of legal input.
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

var (
	// ErrInvalidArgument indicates a wrong input shape at a call boundary.
	ErrInvalidArgument = New("invalid argument")
	// ErrIndexOutOfRange indicates an element access outside a buffer.
	ErrIndexOutOfRange = New("index out of range")
	// ErrDecode indicates that buffer content could not be decoded to text.
	ErrDecode = New("decode failed")
	// ErrOverflow indicates a value outside the range of its destination.
	ErrOverflow = New("value out of range")
	// ErrInvalidHandle indicates a console handle that is not known.
	ErrInvalidHandle = New("invalid handle")
	// ErrUnknownCodepage indicates a code page id with no registered table.
	ErrUnknownCodepage = New("unknown code page")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// ConsoleError is implemented by every typed error in this package.
// IsUserFacing reports whether the message can be shown to a CLI user as is.
type ConsoleError interface {
	error
	Unwrap() error
	Is(target error) bool
	Severity() Severity
	IsUserFacing() bool
}

// baseError carries the fields shared by the typed errors.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	userFacing bool
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Unwrap() error { return e.cause }

// Is matches target against the cause chain.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

func (e *baseError) Severity() Severity { return e.severity }

func (e *baseError) IsUserFacing() bool { return e.userFacing }

// format renders "prefix [k=v, ...]: message: cause".
func (e *baseError) format(prefix string, parts []string) string {
	if len(parts) > 0 {
		prefix = fmt.Sprintf("%s [%s]", prefix, strings.Join(parts, ", "))
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// -----------------------------------------------------------------------------
// ArgumentError
// -----------------------------------------------------------------------------

// ArgumentError represents a wrong input shape or value at a call boundary.
//
// Example:
//
//	err := errors.NewArgumentError("declared capacity exceeds buffer").
//		WithField("declaredCapacity").WithValue(300)
//	fmt.Println(err) // "invalid argument [field=declaredCapacity, value=300]: declared capacity exceeds buffer"
type ArgumentError struct {
	baseError
	Field string
	Value any
}

// NewArgumentError creates a new ArgumentError.
func NewArgumentError(message string) *ArgumentError {
	return &ArgumentError{
		baseError: baseError{
			message:    message,
			severity:   SeverityError,
			userFacing: true,
		},
	}
}

// WithField adds the argument name to the error context.
func (e *ArgumentError) WithField(field string) *ArgumentError {
	e.Field = field
	return e
}

// WithValue adds the rejected value to the error context.
func (e *ArgumentError) WithValue(value any) *ArgumentError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ArgumentError) WithCause(cause error) *ArgumentError {
	e.cause = cause
	return e
}

func (e *ArgumentError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}
	return e.format("invalid argument", parts)
}

func (e *ArgumentError) Is(target error) bool {
	if _, ok := target.(*ArgumentError); ok {
		return true
	}
	if target == ErrInvalidArgument {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// IndexError
// -----------------------------------------------------------------------------

// IndexError represents an element access outside a buffer.
//
// Example:
//
//	err := errors.NewIndexError("wide buffer", 4, 4)
//	fmt.Println(err) // "index error [index=4, length=4]: wide buffer index out of bounds"
type IndexError struct {
	baseError
	Index  int
	Length int
}

// NewIndexError creates a new IndexError for the named container.
func NewIndexError(container string, index, length int) *IndexError {
	return &IndexError{
		baseError: baseError{
			message:    container + " index out of bounds",
			severity:   SeverityError,
			userFacing: true,
		},
		Index:  index,
		Length: length,
	}
}

func (e *IndexError) Error() string {
	parts := []string{
		fmt.Sprintf("index=%d", e.Index),
		fmt.Sprintf("length=%d", e.Length),
	}
	return e.format("index error", parts)
}

func (e *IndexError) Is(target error) bool {
	if _, ok := target.(*IndexError); ok {
		return true
	}
	if target == ErrIndexOutOfRange {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// DecodeError
// -----------------------------------------------------------------------------

// DecodeError represents buffer content that cannot be decoded to text.
// Offset is the position of the offending unit within the buffer and Unit its
// raw value.
//
// Example:
//
//	err := errors.NewDecodeError("unpaired high surrogate", 2, 0xD802)
//	fmt.Println(err) // "decode error [offset=2, unit=0xd802]: unpaired high surrogate"
type DecodeError struct {
	baseError
	Offset int
	Unit   uint16
}

// NewDecodeError creates a new DecodeError.
func NewDecodeError(message string, offset int, unit uint16) *DecodeError {
	return &DecodeError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			userFacing: true,
		},
		Offset: offset,
		Unit:   unit,
	}
}

func (e *DecodeError) Error() string {
	parts := []string{
		fmt.Sprintf("offset=%d", e.Offset),
		fmt.Sprintf("unit=%#04x", e.Unit),
	}
	return e.format("decode error", parts)
}

func (e *DecodeError) Is(target error) bool {
	if _, ok := target.(*DecodeError); ok {
		return true
	}
	if target == ErrDecode {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// OverflowError
// -----------------------------------------------------------------------------

// OverflowError represents a value outside the range of its destination.
//
// Example:
//
//	err := errors.NewOverflowError(1<<31, math.MinInt32, math.MaxInt32)
//	fmt.Println(err) // "overflow error: 2147483648 outside [-2147483648, 2147483647]"
type OverflowError struct {
	baseError
	Value int64
	Min   int64
	Max   int64
}

// NewOverflowError creates a new OverflowError.
func NewOverflowError(value, minValue, maxValue int64) *OverflowError {
	return &OverflowError{
		baseError: baseError{
			message:    fmt.Sprintf("%d outside [%d, %d]", value, minValue, maxValue),
			severity:   SeverityError,
			userFacing: true,
		},
		Value: value,
		Min:   minValue,
		Max:   maxValue,
	}
}

func (e *OverflowError) Error() string {
	return e.format("overflow error", nil)
}

func (e *OverflowError) Is(target error) bool {
	if _, ok := target.(*OverflowError); ok {
		return true
	}
	if target == ErrOverflow {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// HandleError
// -----------------------------------------------------------------------------

// HandleError represents a console call made with an unknown handle.
type HandleError struct {
	baseError
	Handle int64
	Call   string
}

// NewHandleError creates a new HandleError.
func NewHandleError(call string, handle int64) *HandleError {
	return &HandleError{
		baseError: baseError{
			message:    "handle is not a console handle",
			cause:      ErrInvalidHandle,
			severity:   SeverityError,
			userFacing: true,
		},
		Handle: handle,
		Call:   call,
	}
}

func (e *HandleError) Error() string {
	var parts []string
	if e.Call != "" {
		parts = append(parts, fmt.Sprintf("call=%s", e.Call))
	}
	parts = append(parts, fmt.Sprintf("handle=%d", e.Handle))
	return e.format("handle error", parts)
}

func (e *HandleError) Is(target error) bool {
	if _, ok := target.(*HandleError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsUserFacing returns true if the error message is safe to display to end users.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var consoleErr ConsoleError
	if As(err, &consoleErr) {
		return consoleErr.IsUserFacing()
	}
	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement ConsoleError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var consoleErr ConsoleError
	if As(err, &consoleErr) {
		return consoleErr.Severity()
	}
	return SeverityError
}

// IsDecodeError reports whether err is, or wraps, a decode failure. Callers
// reading truncated wide buffers are expected to handle this case.
func IsDecodeError(err error) bool {
	return err != nil && Is(err, ErrDecode)
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
//
// Example:
//
//	err := errors.Wrap(baseErr, "failed to set title")
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
