package resolve

// Ref addresses a remote entity either by its opaque id or by its
// human-readable name. Callers (including an LLM) frequently know one but
// not the other; the tagged form makes the precedence explicit.
type Ref struct {
	kind  refKind
	value string
}

type refKind int

const (
	refUnspecified refKind = iota
	refID
	refName
)

// ByID addresses an entity by opaque id.
func ByID(id string) Ref {
	if id == "" {
		return Ref{}
	}
	return Ref{kind: refID, value: id}
}

// ByName addresses an entity by display name.
func ByName(name string) Ref {
	if name == "" {
		return Ref{}
	}
	return Ref{kind: refName, value: name}
}

// RefOf builds a Ref from a pair of optional strings; id wins when both
// are supplied. Both empty yields the unspecified Ref.
func RefOf(id, name string) Ref {
	if id != "" {
		return ByID(id)
	}
	return ByName(name)
}

// Unspecified reports whether the Ref addresses nothing.
func (r Ref) Unspecified() bool {
	return r.kind == refUnspecified
}

// Named reports whether the Ref addresses by name, meaning resolution
// will need a lookup (and possibly a disambiguating scope).
func (r Ref) Named() bool {
	return r.kind == refName
}
