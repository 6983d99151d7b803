package missive

import (
	"fmt"
	"reflect"
)

// ClassMapper overrides type resolution entirely. When a ClassMapper is set
// on a Codec, it replaces the TypeMapper for resolving and recording types.
//
// A ToType error whose chain contains a *ConversionError makes the Codec
// return the body as plain text instead of failing; any other error fails
// the decode.
type ClassMapper interface {
	// ToType resolves the type a body should be decoded into.
	ToType(props *MessageProperties) (reflect.Type, error)

	// FromType writes the identifier for t into props.
	FromType(t reflect.Type, props *MessageProperties)
}

// DefaultClassMapper reads and writes TypeIDHeader only.
// A message without the header decodes into the default type.
type DefaultClassMapper struct {
	trust       TrustList
	registry    *Registry
	defaultType reflect.Type
	idMapping   map[string]reflect.Type
	typeIDs     map[reflect.Type]string
}

// NewDefaultClassMapper creates a class mapper backed by the default registry.
func NewDefaultClassMapper(trust TrustList) *DefaultClassMapper {
	return &DefaultClassMapper{
		trust:       trust,
		registry:    DefaultRegistry(),
		defaultType: reflect.TypeFor[map[string]any](),
	}
}

// SetRegistry replaces the registry used to resolve identifiers.
func (m *DefaultClassMapper) SetRegistry(r *Registry) *DefaultClassMapper {
	if r != nil {
		m.registry = r
	}
	return m
}

// SetDefaultType sets the type used when no identifier is present.
func (m *DefaultClassMapper) SetDefaultType(t reflect.Type) *DefaultClassMapper {
	if t != nil {
		m.defaultType = t
	}
	return m
}

// SetIDTypeMapping installs explicit identifier mappings that bypass the trust list.
func (m *DefaultClassMapper) SetIDTypeMapping(mapping map[string]reflect.Type) *DefaultClassMapper {
	m.idMapping = make(map[string]reflect.Type, len(mapping))
	m.typeIDs = make(map[reflect.Type]string, len(mapping))
	for id, t := range mapping {
		t = derefType(t)
		m.idMapping[id] = t
		m.typeIDs[t] = id
	}
	return m
}

// ToType resolves TypeIDHeader. Unknown identifiers yield a *ConversionError;
// untrusted identifiers yield a plain error wrapping ErrUntrustedType.
func (m *DefaultClassMapper) ToType(props *MessageProperties) (reflect.Type, error) {
	id, ok := props.Header(TypeIDHeader)
	if !ok || id == "" {
		return m.defaultType, nil
	}
	if t, ok := m.idMapping[id]; ok {
		return t, nil
	}
	switch id {
	case SliceTypeID:
		return reflect.TypeFor[[]any](), nil
	case MapTypeID:
		return reflect.TypeFor[map[string]any](), nil
	}
	if !m.trust.Trusts(id) {
		return nil, fmt.Errorf("%w: %q is not in the trusted namespaces %v", ErrUntrustedType, id, m.trust.Prefixes())
	}
	if t, ok := predeclared[id]; ok {
		return t, nil
	}
	if t, ok := m.registry.Lookup(id); ok {
		return t, nil
	}
	return nil, NewConversionError(opDecode, ErrUnknownType, fmt.Errorf("no type registered for %q", id))
}

// FromType writes TypeIDHeader for t.
func (m *DefaultClassMapper) FromType(t reflect.Type, props *MessageProperties) {
	t = derefType(t)
	if t == nil || props == nil {
		return
	}
	if id, ok := m.typeIDs[t]; ok {
		props.SetHeader(TypeIDHeader, id)
		return
	}
	props.SetHeader(TypeIDHeader, m.registry.ID(t))
}

var _ ClassMapper = (*DefaultClassMapper)(nil)
