// Package sourcemap builds the flat pre-order list of records that
// associate each decoded subtree with its input byte span and path,
// implementing decode.Sink so the decoder's direct and source-map paths
// share one recursive parser.
package sourcemap

// Entry is one record of a source map: a decoded value's path, byte range,
// major type, human type label, bounded diagnostic representation, and its
// position in the tree.
type Entry struct {
	Path      string   `json:"path"`
	Start     int      `json:"start"`
	End       int      `json:"end"`
	MajorType uint8    `json:"major_type"`
	TypeLabel string   `json:"type_label"`
	ValueRepr string   `json:"value_repr"`
	Parent    string   `json:"parent"`
	ParentIdx int      `json:"-"`
	Children  []string `json:"children"`
}

// Builder accumulates Entry records in pre-order as the decoder descends.
// It is not safe for concurrent use; one Builder is scoped to one decode
// call.
type Builder struct {
	entries []Entry
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Begin implements decode.Sink: it reserves a slot for the value about to
// be parsed, appending a placeholder entry before any of its children can
// be appended, which is what keeps the final slice in pre-order.
func (b *Builder) Begin(path string, parent int) int {
	idx := len(b.entries)

	parentPath := ""
	if parent >= 0 && parent < len(b.entries) {
		parentPath = b.entries[parent].Path
	}

	b.entries = append(b.entries, Entry{Path: path, Parent: parentPath, ParentIdx: parent})

	if parent >= 0 && parent < len(b.entries)-1 {
		b.entries[parent].Children = append(b.entries[parent].Children, path)
	}

	return idx
}

// Finish implements decode.Sink: it fills in the byte range, major type,
// type label, and bounded representation for the entry reserved by Begin.
func (b *Builder) Finish(handle int, start, end int, majorType uint8, typeLabel, valueRepr string) {
	e := &b.entries[handle]
	e.Start = start
	e.End = end
	e.MajorType = majorType
	e.TypeLabel = typeLabel
	e.ValueRepr = valueRepr
}

// Entries returns the accumulated pre-order entry list.
func (b *Builder) Entries() []Entry {
	return b.entries
}
