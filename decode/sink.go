package decode

// Sink receives value boundaries as the parser descends, in pre-order: a
// parent's Begin always happens before any of its children's. The direct
// decode path and the source-map path share one recursive parser and differ
// only in which Sink they pass in, so both enforce identical limits and
// invariants by construction (the conformance contract in the design notes).
type Sink interface {
	// Begin reserves a slot for the value about to be parsed at path and
	// returns a handle identifying it. parent is the handle returned by the
	// enclosing value's Begin, or -1 at the root.
	Begin(path string, parent int) (handle int)

	// Finish records the finished value's byte range, major type, a human
	// type label, and a bounded diagnostic representation.
	Finish(handle int, start, end int, majorType uint8, typeLabel, valueRepr string)
}

// noopSink is the Sink used by Decode, which does not build a source map.
type noopSink struct{}

func (noopSink) Begin(string, int) int { return -1 }

func (noopSink) Finish(int, int, int, uint8, string, string) {}
