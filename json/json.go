// Package json provides a JSON serializer.
package json

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/zoobzio/missive"
)

// Option configures the JSON serializer.
type Option func(*jsonSerializer)

// WithUseNumber decodes numbers held in untyped targets as json.Number
// instead of float64, preserving large integers.
func WithUseNumber() Option {
	return func(s *jsonSerializer) {
		s.useNumber = true
	}
}

// WithDisallowUnknownFields rejects objects with fields the target struct
// does not declare.
func WithDisallowUnknownFields() Option {
	return func(s *jsonSerializer) {
		s.disallowUnknown = true
	}
}

// jsonSerializer implements missive.Serializer for JSON.
type jsonSerializer struct {
	useNumber       bool
	disallowUnknown bool
}

// New returns a JSON serializer.
func New(opts ...Option) missive.Serializer {
	s := &jsonSerializer{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ContentType returns the MIME type for JSON.
func (s *jsonSerializer) ContentType() string {
	return "application/json"
}

// Marshal encodes v as JSON.
func (s *jsonSerializer) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal decodes a single JSON value from data into v.
func (s *jsonSerializer) Unmarshal(data []byte, v any) error {
	if !s.useNumber && !s.disallowUnknown {
		return json.Unmarshal(data, v)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	if s.useNumber {
		dec.UseNumber()
	}
	if s.disallowUnknown {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("invalid character after top-level value")
	}
	return nil
}
