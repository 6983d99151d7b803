package missive

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrMarshal indicates the serializer failed to marshal a value.
	ErrMarshal = errors.New("marshal failed")

	// ErrUnmarshal indicates the serializer failed to unmarshal a body.
	ErrUnmarshal = errors.New("unmarshal failed")

	// ErrResolveType indicates no target type could be resolved for a body.
	ErrResolveType = errors.New("type resolution failed")

	// ErrCharset indicates a body could not be transcoded.
	ErrCharset = errors.New("charset conversion failed")

	// ErrUntrustedType indicates a type identifier outside the trust list.
	ErrUntrustedType = errors.New("untrusted type")

	// ErrUnknownType indicates a type identifier with no registered type.
	ErrUnknownType = errors.New("unknown type")

	// ErrUnexpectedValue indicates a decoded value of the wrong Go type.
	ErrUnexpectedValue = errors.New("unexpected value")

	// ErrCustomTypeMapper indicates precedence was set on the codec while a
	// custom TypeMapper is installed.
	ErrCustomTypeMapper = errors.New("custom type mapper installed, set precedence on it directly")

	// ErrPrecedenceUnsupported indicates the installed TypeMapper has no precedence setting.
	ErrPrecedenceUnsupported = errors.New("type precedence requires the default type mapper")

	// ErrInvalidPrecedence indicates an unrecognized precedence value.
	ErrInvalidPrecedence = errors.New("invalid type precedence")

	// ErrMissingProjector indicates projection was enabled without a projector.
	ErrMissingProjector = errors.New("missing projector")

	// ErrUnknownCharset indicates a charset name with no known encoding.
	ErrUnknownCharset = errors.New("unknown charset")

	// ErrInvalidContentType indicates a content type that is not a valid media type.
	ErrInvalidContentType = errors.New("invalid content type")
)

// Operation names carried by ConversionError.Op.
const (
	opDecode = "decode"
	opEncode = "encode"
)

// ConversionError represents a decode or encode failure.
// It carries both a sentinel error and the original cause.
type ConversionError struct {
	Op    string // "decode" or "encode"
	Err   error  // Underlying sentinel error (ErrMarshal, ErrUnmarshal, ...)
	Cause error  // Original error from the serializer or type mapper
}

func (e *ConversionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Err.Error(), e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Err.Error())
}

// Unwrap exposes both the sentinel and the cause to errors.Is and errors.As.
func (e *ConversionError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// ConfigError represents a setup-time configuration error.
type ConfigError struct {
	Err     error  // Underlying sentinel error
	Setting string // Setting that was rejected
	Value   string // Offending value, if any
}

func (e *ConfigError) Error() string {
	if e.Setting != "" && e.Value != "" {
		return fmt.Sprintf("%s: %s %q", e.Err.Error(), e.Setting, e.Value)
	}
	if e.Setting != "" {
		return fmt.Sprintf("%s (%s)", e.Err.Error(), e.Setting)
	}
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConversionError creates a ConversionError. ClassMapper implementations
// return one to request the plain-text fallback.
func NewConversionError(op string, sentinel, cause error) error {
	return &ConversionError{
		Op:    op,
		Err:   sentinel,
		Cause: cause,
	}
}

// newConfigError creates a ConfigError for a rejected setting.
func newConfigError(sentinel error, setting, value string) error {
	return &ConfigError{
		Err:     sentinel,
		Setting: setting,
		Value:   value,
	}
}

// asConversionError returns err as a ConversionError, wrapping it when needed.
func asConversionError(op string, sentinel, err error) error {
	var ce *ConversionError
	if errors.As(err, &ce) {
		return err
	}
	return NewConversionError(op, sentinel, err)
}
