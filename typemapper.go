package missive

import (
	"fmt"
	"reflect"
)

// TypePrecedence decides whether the receiver's inferred type or the wire
// type identifier wins when both are present.
type TypePrecedence string

const (
	// PreferInferred uses the inferred type when it is concrete.
	PreferInferred TypePrecedence = "inferred"

	// PreferTypeID always uses the wire type identifier. Useful when the
	// sender knows a more specific type than the receiver declares.
	PreferTypeID TypePrecedence = "type_id"
)

// Valid reports whether p is a known precedence.
func (p TypePrecedence) Valid() bool {
	return p == PreferInferred || p == PreferTypeID
}

// TypeMapper resolves target types from message properties and records
// types into them. Implementations must be safe for concurrent use.
type TypeMapper interface {
	// InferredType returns the receiver's declared type when it should be
	// considered, or nil.
	InferredType(props *MessageProperties) reflect.Type

	// ToType resolves the type a body should be decoded into.
	ToType(props *MessageProperties) (reflect.Type, error)

	// FromType writes the identifiers for t into props.
	FromType(t reflect.Type, props *MessageProperties)
}

// DefaultTypeMapper reads and writes the __TypeId__ family of headers.
// Identifiers are resolved through a Registry and gated by a TrustList.
type DefaultTypeMapper struct {
	trust      TrustList
	registry   *Registry
	precedence TypePrecedence
	idMapping  map[string]reflect.Type
	typeIDs    map[reflect.Type]string
}

// NewDefaultTypeMapper creates a mapper backed by the default registry.
func NewDefaultTypeMapper(trust TrustList) *DefaultTypeMapper {
	return &DefaultTypeMapper{
		trust:      trust,
		registry:   DefaultRegistry(),
		precedence: PreferInferred,
	}
}

// SetRegistry replaces the registry used to resolve identifiers.
func (m *DefaultTypeMapper) SetRegistry(r *Registry) *DefaultTypeMapper {
	if r != nil {
		m.registry = r
	}
	return m
}

// SetTypePrecedence sets the precedence between inferred and wire types.
func (m *DefaultTypeMapper) SetTypePrecedence(p TypePrecedence) error {
	if !p.Valid() {
		return newConfigError(ErrInvalidPrecedence, "type_precedence", string(p))
	}
	m.precedence = p
	return nil
}

// TypePrecedence returns the configured precedence.
func (m *DefaultTypeMapper) TypePrecedence() TypePrecedence {
	return m.precedence
}

// TrustList returns the trust list.
func (m *DefaultTypeMapper) TrustList() TrustList {
	return m.trust
}

// SetIDTypeMapping installs explicit identifier mappings. Mapped identifiers
// resolve without consulting the trust list, and mapped types are written
// with their identifier.
func (m *DefaultTypeMapper) SetIDTypeMapping(mapping map[string]reflect.Type) *DefaultTypeMapper {
	m.idMapping = make(map[string]reflect.Type, len(mapping))
	m.typeIDs = make(map[reflect.Type]string, len(mapping))
	for id, t := range mapping {
		t = derefType(t)
		m.idMapping[id] = t
		m.typeIDs[t] = id
	}
	return m
}

// InferredType returns props.InferredType when precedence is PreferInferred.
func (m *DefaultTypeMapper) InferredType(props *MessageProperties) reflect.Type {
	if m.precedence != PreferInferred || props == nil {
		return nil
	}
	return props.InferredType
}

// ToType resolves the decode target. A convertible inferred type wins under
// PreferInferred; otherwise the type headers decide. Without a type header
// the body decodes into any.
func (m *DefaultTypeMapper) ToType(props *MessageProperties) (reflect.Type, error) {
	if inferred := m.InferredType(props); inferred != nil && canConvert(inferred) {
		return inferred, nil
	}

	id, ok := props.Header(TypeIDHeader)
	if !ok || id == "" {
		return anyType, nil
	}

	switch id {
	case SliceTypeID:
		elem, err := m.headerType(props, ContentTypeIDHeader, anyType)
		if err != nil {
			return nil, err
		}
		return reflect.SliceOf(elem), nil
	case MapTypeID:
		key, err := m.headerType(props, KeyTypeIDHeader, stringType)
		if err != nil {
			return nil, err
		}
		if !key.Comparable() {
			return nil, fmt.Errorf("%w: map key %s is not comparable", ErrResolveType, key)
		}
		elem, err := m.headerType(props, ContentTypeIDHeader, anyType)
		if err != nil {
			return nil, err
		}
		return reflect.MapOf(key, elem), nil
	}

	return m.resolve(id)
}

// FromType writes TypeIDHeader, plus content and key headers for containers.
func (m *DefaultTypeMapper) FromType(t reflect.Type, props *MessageProperties) {
	t = derefType(t)
	if t == nil || props == nil {
		return
	}
	props.SetHeader(TypeIDHeader, m.idFor(t))
	if !isContainer(t) {
		return
	}
	props.SetHeader(ContentTypeIDHeader, m.idFor(t.Elem()))
	if t.Kind() == reflect.Map {
		props.SetHeader(KeyTypeIDHeader, m.idFor(t.Key()))
	}
}

// headerType resolves an optional container header. Nested containers
// decode into their untyped forms.
func (m *DefaultTypeMapper) headerType(props *MessageProperties, header string, fallback reflect.Type) (reflect.Type, error) {
	id, ok := props.Header(header)
	if !ok || id == "" {
		return fallback, nil
	}
	switch id {
	case SliceTypeID:
		return reflect.TypeFor[[]any](), nil
	case MapTypeID:
		return reflect.TypeFor[map[string]any](), nil
	}
	return m.resolve(id)
}

func (m *DefaultTypeMapper) resolve(id string) (reflect.Type, error) {
	if t, ok := m.idMapping[id]; ok {
		return t, nil
	}
	return resolveTrusted(id, m.trust, m.registry)
}

func (m *DefaultTypeMapper) idFor(t reflect.Type) string {
	t = derefType(t)
	if id, ok := m.typeIDs[t]; ok {
		return id
	}
	return m.registry.ID(t)
}

// resolveTrusted resolves id through the predeclared table and the registry,
// refusing identifiers outside the trust list.
func resolveTrusted(id string, trust TrustList, registry *Registry) (reflect.Type, error) {
	if !trust.Trusts(id) {
		return nil, fmt.Errorf("%w: %q is not in the trusted namespaces %v", ErrUntrustedType, id, trust.Prefixes())
	}
	if t, ok := predeclared[id]; ok {
		return t, nil
	}
	if t, ok := registry.Lookup(id); ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownType, id)
}

// canConvert reports whether an inferred type can be decoded into directly.
// Interfaces, and containers of interfaces, defer to the wire headers.
func canConvert(t reflect.Type) bool {
	t = derefType(t)
	if !isContainer(t) {
		return !isAbstract(t)
	}
	if isAbstract(derefType(t.Elem())) {
		return false
	}
	if t.Kind() == reflect.Map && isAbstract(derefType(t.Key())) {
		return false
	}
	return true
}

var _ TypeMapper = (*DefaultTypeMapper)(nil)
