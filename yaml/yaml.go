// Package yaml provides a YAML serializer.
package yaml

import (
	"bytes"
	"errors"
	"io"

	"github.com/zoobzio/missive"
	"gopkg.in/yaml.v3"
)

// Option configures the YAML serializer.
type Option func(*yamlSerializer)

// WithKnownFields rejects mapping keys the target struct does not declare.
func WithKnownFields() Option {
	return func(s *yamlSerializer) {
		s.knownFields = true
	}
}

// yamlSerializer implements missive.Serializer for YAML.
type yamlSerializer struct {
	knownFields bool
}

// New returns a YAML serializer.
func New(opts ...Option) missive.Serializer {
	s := &yamlSerializer{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ContentType returns the MIME type for YAML.
func (s *yamlSerializer) ContentType() string {
	return "application/yaml"
}

// Marshal encodes v as YAML.
func (s *yamlSerializer) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// Unmarshal decodes the first YAML document in data into v.
// Empty input leaves v unchanged.
func (s *yamlSerializer) Unmarshal(data []byte, v any) error {
	if !s.knownFields {
		return yaml.Unmarshal(data, v)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
