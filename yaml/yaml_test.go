package yaml

import (
	"testing"
)

type Setting struct {
	Name  string `yaml:"name"`
	Value int    `yaml:"value"`
}

func TestNew(t *testing.T) {
	s := New()
	if s == nil {
		t.Error("New() should return non-nil serializer")
	}
}

func TestContentType(t *testing.T) {
	s := New()
	if s.ContentType() != "application/yaml" {
		t.Errorf("ContentType() = %q, want %q", s.ContentType(), "application/yaml")
	}
}

func TestMarshalUnmarshal(t *testing.T) {
	s := New()

	original := Setting{Name: "test", Value: 42}

	data, err := s.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var restored Setting
	if err := s.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	if restored != original {
		t.Errorf("round-trip failed: got %+v, want %+v", restored, original)
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	s := New()

	var v Setting
	if err := s.Unmarshal([]byte("name: [invalid"), &v); err == nil {
		t.Error("Unmarshal(invalid) should return error")
	}
}

func TestMarshalNil(t *testing.T) {
	s := New()

	data, err := s.Marshal(nil)
	if err != nil {
		t.Fatalf("Marshal(nil) error: %v", err)
	}

	// YAML represents nil as "null\n"
	if string(data) != "null\n" {
		t.Errorf("Marshal(nil) = %q, want %q", data, "null\n")
	}
}

func TestUnmarshal_EmptyInput(t *testing.T) {
	for _, s := range []interface {
		Unmarshal([]byte, any) error
	}{New(), New(WithKnownFields())} {
		var v Setting
		if err := s.Unmarshal([]byte{}, &v); err != nil {
			t.Errorf("Unmarshal(empty) error: %v", err)
		}
	}
}

func TestUnmarshal_Untyped(t *testing.T) {
	s := New()

	var v any
	if err := s.Unmarshal([]byte("name: test\nvalue: 42\n"), &v); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("Unmarshal() = %T, want map[string]any", v)
	}
	if m["name"] != "test" || m["value"] != 42 {
		t.Errorf("Unmarshal() = %v", m)
	}
}

func TestWithKnownFields(t *testing.T) {
	input := []byte("name: test\nextra: true\n")

	var lenient Setting
	if err := New().Unmarshal(input, &lenient); err != nil {
		t.Fatalf("default Unmarshal() error: %v", err)
	}

	var strict Setting
	if err := New(WithKnownFields()).Unmarshal(input, &strict); err == nil {
		t.Error("Unmarshal() with unknown field should fail")
	}
}
