package missive

import (
	"errors"
	"reflect"
	"testing"
)

func newTestClassMapper(trusted ...string) *DefaultClassMapper {
	r := NewRegistry()
	r.Register(typeOf[widget](), "com.example.Widget")
	return NewDefaultClassMapper(NewTrustList(trusted...)).SetRegistry(r)
}

func TestDefaultClassMapper_ToType(t *testing.T) {
	m := newTestClassMapper("com.example")

	tests := []struct {
		name    string
		headers map[string]any
		want    reflect.Type
	}{
		{"no header", nil, typeOf[map[string]any]()},
		{"alias", map[string]any{TypeIDHeader: "com.example.Widget"}, typeOf[widget]()},
		{"slice", map[string]any{TypeIDHeader: SliceTypeID}, typeOf[[]any]()},
		{"predeclared", map[string]any{TypeIDHeader: "string"}, stringType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.ToType(propsWith(tt.headers))
			if err != nil {
				t.Fatalf("ToType() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ToType() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultClassMapper_DefaultType(t *testing.T) {
	m := newTestClassMapper().SetDefaultType(typeOf[widget]())

	got, err := m.ToType(NewMessageProperties())
	if err != nil {
		t.Fatalf("ToType() error: %v", err)
	}
	if got != typeOf[widget]() {
		t.Errorf("ToType() = %v, want widget", got)
	}
}

func TestDefaultClassMapper_UnknownIsConversionError(t *testing.T) {
	m := newTestClassMapper("com.example")

	_, err := m.ToType(propsWith(map[string]any{TypeIDHeader: "com.example.Missing"}))
	var ce *ConversionError
	if !errors.As(err, &ce) {
		t.Fatalf("ToType() error = %v, want *ConversionError", err)
	}
	if !errors.Is(err, ErrUnknownType) {
		t.Errorf("ToType() error = %v, want ErrUnknownType", err)
	}
}

func TestDefaultClassMapper_UntrustedIsPlainError(t *testing.T) {
	m := newTestClassMapper("org.other")

	_, err := m.ToType(propsWith(map[string]any{TypeIDHeader: "com.example.Widget"}))
	if !errors.Is(err, ErrUntrustedType) {
		t.Fatalf("ToType() error = %v, want ErrUntrustedType", err)
	}
	var ce *ConversionError
	if errors.As(err, &ce) {
		t.Error("untrusted id should not be a *ConversionError")
	}
}

func TestDefaultClassMapper_FromType(t *testing.T) {
	m := newTestClassMapper()

	props := NewMessageProperties()
	m.FromType(typeOf[[]widget](), props)
	if id, _ := props.Header(TypeIDHeader); id != SliceTypeID {
		t.Errorf("header = %q, want slice", id)
	}
	if _, ok := props.Headers[ContentTypeIDHeader]; ok {
		t.Error("class mapper should not write content type headers")
	}

	m.SetIDTypeMapping(map[string]reflect.Type{"w": typeOf[widget]()})
	m.FromType(typeOf[*widget](), props)
	if id, _ := props.Header(TypeIDHeader); id != "w" {
		t.Errorf("header = %q, want w", id)
	}
	got, err := m.ToType(props)
	if err != nil || got != typeOf[widget]() {
		t.Errorf("ToType() = %v, %v", got, err)
	}
}
