package missive

import (
	"fmt"
	"reflect"
)

// Projector builds a value satisfying an interface type directly from a
// message body.
type Projector interface {
	// Project decodes UTF-8 data into a value that implements iface.
	Project(data []byte, iface reflect.Type) (any, error)
}

// Implementations is a Projector backed by interface-to-concrete registrations.
// Register implementations before handing it to a Codec.
type Implementations struct {
	serializer Serializer
	impls      map[reflect.Type]reflect.Type
}

// NewImplementations creates a projector decoding with s.
func NewImplementations(s Serializer) *Implementations {
	return &Implementations{
		serializer: s,
		impls:      make(map[reflect.Type]reflect.Type),
	}
}

// Implement registers C as the projection target for interface I.
// Either C or *C must implement I.
func Implement[I, C any](p *Implementations) error {
	iface := reflect.TypeFor[I]()
	impl := reflect.TypeFor[C]()
	if iface.Kind() != reflect.Interface {
		return fmt.Errorf("%w: %s is not an interface", ErrResolveType, iface)
	}
	if !impl.Implements(iface) && !reflect.PointerTo(impl).Implements(iface) {
		return fmt.Errorf("%w: %s does not implement %s", ErrResolveType, impl, iface)
	}
	p.impls[iface] = impl
	return nil
}

// Project decodes data into the implementation registered for iface.
func (p *Implementations) Project(data []byte, iface reflect.Type) (any, error) {
	impl, ok := p.impls[iface]
	if !ok {
		return nil, fmt.Errorf("%w: no implementation registered for %s", ErrResolveType, iface)
	}
	ptr := reflect.New(impl)
	if err := p.serializer.Unmarshal(data, ptr.Interface()); err != nil {
		return nil, NewConversionError(opDecode, ErrUnmarshal, err)
	}
	if impl.Implements(iface) {
		return ptr.Elem().Interface(), nil
	}
	return ptr.Interface(), nil
}

// isProjectable reports whether t is an interface with methods.
// The empty interface carries no shape to project onto.
func isProjectable(t reflect.Type) bool {
	return t.Kind() == reflect.Interface && t.NumMethod() > 0
}

var _ Projector = (*Implementations)(nil)
