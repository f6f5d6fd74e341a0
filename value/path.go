package value

import "strconv"

// Path builds decode-path strings: "" at the root, "[i]" appended for an
// array index, ".k" appended for a text-string map key, or "[<diag>]" for
// any other key shape, matching the source-map path grammar.
type Path struct {
	s string
}

// RootPath is the empty path at the top of a decode.
func RootPath() Path { return Path{} }

// PathOf wraps an already-built path string so it can be extended further
// (used by the decode package, which threads paths as plain strings through
// its recursive parser).
func PathOf(s string) Path { return Path{s: s} }

// String returns the path as built so far.
func (p Path) String() string { return p.s }

// Index returns the path extended with an array index.
func (p Path) Index(i int) Path {
	return Path{s: p.s + "[" + strconv.Itoa(i) + "]"}
}

// TextKey returns the path extended with a text-string map key.
func (p Path) TextKey(k string) Path {
	return Path{s: p.s + "." + k}
}

// DiagnosticKey returns the path extended with a non-text map key,
// rendered as its diagnostic-notation placeholder.
func (p Path) DiagnosticKey(diag string) Path {
	return Path{s: p.s + "[" + diag + "]"}
}
