package missive

import "reflect"

// TypeRef is an explicit type reference. Passed as the decode hint it
// bypasses wire metadata; passed to EncodeWithType it drives the type headers.
type TypeRef struct {
	typ reflect.Type
}

// TypeOf returns a TypeRef for T.
func TypeOf[T any]() TypeRef {
	return TypeRef{typ: reflect.TypeFor[T]()}
}

// TypeRefOf returns a TypeRef for t.
func TypeRefOf(t reflect.Type) TypeRef {
	return TypeRef{typ: t}
}

// Type returns the referenced type, or nil for the zero TypeRef.
func (r TypeRef) Type() reflect.Type {
	return r.typ
}

// IsZero reports whether r references no type.
func (r TypeRef) IsZero() bool {
	return r.typ == nil
}

func (r TypeRef) String() string {
	if r.typ == nil {
		return "<nil>"
	}
	return r.typ.String()
}

// isContainer reports whether t is carried on the wire with content headers.
func isContainer(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return true
	default:
		return false
	}
}

// isAbstract reports whether t cannot be instantiated as a concrete value.
func isAbstract(t reflect.Type) bool {
	return t.Kind() == reflect.Interface
}

// derefType strips pointer indirections.
func derefType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
