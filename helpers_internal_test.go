package missive

import (
	"encoding/json"
	"reflect"
)

// testSerializer is a minimal JSON serializer for in-package tests.
type testSerializer struct{}

func (testSerializer) ContentType() string { return "application/json" }

func (testSerializer) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (testSerializer) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

type widget struct {
	Name string `json:"name"`
}

type gadget struct {
	Size int `json:"size"`
}

type shape interface {
	Area() float64
}

type square struct {
	Side float64 `json:"side"`
}

func (s square) Area() float64 { return s.Side * s.Side }

func typeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

func propsWith(headers map[string]any) *MessageProperties {
	props := NewMessageProperties()
	for k, v := range headers {
		props.SetHeader(k, v)
	}
	return props
}
