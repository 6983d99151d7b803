package missive

import "strings"

// TrustAll is the trust list entry that trusts every namespace.
const TrustAll = "*"

// TrustList is an immutable set of namespace prefixes a type identifier
// must match before it is resolved to a Go type.
//
// An empty list trusts nothing. Predeclared types ("string", "int", "any",
// time.Time, ...) are always trusted.
type TrustList struct {
	prefixes []string
	all      bool
}

// NewTrustList builds a TrustList. Blank entries are ignored.
func NewTrustList(prefixes ...string) TrustList {
	tl := TrustList{prefixes: make([]string, 0, len(prefixes))}
	for _, p := range prefixes {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if p == TrustAll {
			tl.all = true
			continue
		}
		tl.prefixes = append(tl.prefixes, strings.TrimRight(p, "./"))
	}
	return tl
}

// Prefixes returns a copy of the configured prefixes.
func (tl TrustList) Prefixes() []string {
	out := make([]string, len(tl.prefixes))
	copy(out, tl.prefixes)
	if tl.all {
		out = append(out, TrustAll)
	}
	return out
}

// TrustsAll reports whether the list contains TrustAll.
func (tl TrustList) TrustsAll() bool {
	return tl.all
}

// Trusts reports whether the type identifier id may be resolved.
func (tl TrustList) Trusts(id string) bool {
	if _, ok := predeclared[id]; ok {
		return true
	}
	if tl.all {
		return true
	}
	ns := Namespace(id)
	if ns == "" {
		return false
	}
	for _, p := range tl.prefixes {
		if ns == p || strings.HasPrefix(ns, p+"/") {
			return true
		}
		// Import path prefixes nest only at "/".
		if !strings.Contains(p, "/") && strings.HasPrefix(ns, p+".") {
			return true
		}
	}
	return false
}

// Namespace returns the namespace part of a type identifier: everything
// before the last "." that follows the last "/".
//
//	"github.com/acme/orders.Order" -> "github.com/acme/orders"
//	"com.example.Foo"              -> "com.example"
func Namespace(id string) string {
	slash := strings.LastIndex(id, "/")
	dot := strings.LastIndex(id[slash+1:], ".")
	if dot < 0 {
		return ""
	}
	return id[:slash+1+dot]
}
