package missive

import (
	"errors"
	"fmt"
	"testing"
)

func TestConversionError_Is(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := NewConversionError(opDecode, ErrUnmarshal, cause)

	if !errors.Is(err, ErrUnmarshal) {
		t.Error("ConversionError should unwrap to ErrUnmarshal")
	}
	if !errors.Is(err, cause) {
		t.Error("ConversionError should unwrap to its cause")
	}
	if errors.Is(err, ErrMarshal) {
		t.Error("ConversionError should not match ErrMarshal")
	}
}

func TestConversionError_CauseChain(t *testing.T) {
	cause := fmt.Errorf("%w: %q", ErrUntrustedType, "evil.Payload")
	err := NewConversionError(opDecode, ErrResolveType, cause)

	if !errors.Is(err, ErrUntrustedType) {
		t.Error("ConversionError should expose sentinels inside its cause")
	}

	var ce *ConversionError
	if !errors.As(err, &ce) {
		t.Fatal("errors.As should find *ConversionError")
	}
	if ce.Op != "decode" {
		t.Errorf("Op = %q, want decode", ce.Op)
	}
}

func TestConversionError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "with cause",
			err:  NewConversionError(opEncode, ErrMarshal, errors.New("unsupported type")),
			want: "encode: marshal failed: unsupported type",
		},
		{
			name: "without cause",
			err:  &ConversionError{Op: opDecode, Err: ErrResolveType},
			want: "decode: type resolution failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfigError_Is(t *testing.T) {
	err := newConfigError(ErrCustomTypeMapper, "type_precedence", "type_id")

	if !errors.Is(err, ErrCustomTypeMapper) {
		t.Error("ConfigError should unwrap to ErrCustomTypeMapper")
	}
	if errors.Is(err, ErrMissingProjector) {
		t.Error("ConfigError should not match ErrMissingProjector")
	}
}

func TestConfigError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "full context",
			err:  newConfigError(ErrUnknownCharset, "default_charset", "klingon"),
			want: `unknown charset: default_charset "klingon"`,
		},
		{
			name: "setting only",
			err:  &ConfigError{Err: ErrMissingProjector, Setting: "use_projection_for_interfaces"},
			want: "missing projector (use_projection_for_interfaces)",
		},
		{
			name: "sentinel only",
			err:  &ConfigError{Err: ErrInvalidPrecedence},
			want: "invalid type precedence",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAsConversionError(t *testing.T) {
	inner := NewConversionError(opDecode, ErrUnmarshal, errors.New("bad"))
	if got := asConversionError(opDecode, ErrResolveType, inner); got != inner {
		t.Error("asConversionError should keep an existing ConversionError")
	}

	wrapped := asConversionError(opDecode, ErrResolveType, errors.New("plain"))
	var ce *ConversionError
	if !errors.As(wrapped, &ce) {
		t.Fatal("asConversionError should wrap plain errors")
	}
	if ce.Err != ErrResolveType {
		t.Errorf("Err = %v, want ErrResolveType", ce.Err)
	}
}
