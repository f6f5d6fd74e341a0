package sourcemap

import (
	"fmt"

	"github.com/plutusdata/cbor/compress"
	"github.com/plutusdata/cbor/decode"
	"github.com/plutusdata/cbor/encode"
	"github.com/plutusdata/cbor/format"
	"github.com/plutusdata/cbor/value"
)

// Archive is a portable, optionally compressed export of a source map: the
// entry list encoded as CBOR through this package's own encode/decode
// entrypoints, then run through a compress.Codec so large maps can be
// stored or shipped to a browser-based hex-to-value visualizer without
// paying JSON's size overhead in transit. Using the library's own wire
// format for the payload (rather than encoding/json) keeps the archive a
// CBOR artifact end to end: loading one exercises the same parser and
// limits an ordinary Decode call does.
type Archive struct {
	Compression format.CompressionType `json:"compression"`
	Data        []byte                 `json:"data"`
}

// Export encodes entries as a canonical CBOR array and compresses the
// result with the given algorithm.
func Export(entries []Entry, compression format.CompressionType) (Archive, error) {
	res, err := encode.Encode(entriesToValue(entries), nil)
	if err != nil {
		return Archive{}, fmt.Errorf("sourcemap: encode entries: %w", err)
	}

	codec, err := compress.GetCodec(compression)
	if err != nil {
		return Archive{}, err
	}

	packed, err := codec.Compress(res.Bytes)
	if err != nil {
		return Archive{}, fmt.Errorf("sourcemap: compress archive: %w", err)
	}

	return Archive{Compression: compression, Data: packed}, nil
}

// Load decompresses an Archive and decodes its CBOR payload back into an
// entry list.
func Load(a Archive) ([]Entry, error) {
	codec, err := compress.GetCodec(a.Compression)
	if err != nil {
		return nil, err
	}

	raw, err := codec.Decompress(a.Data)
	if err != nil {
		return nil, fmt.Errorf("sourcemap: decompress archive: %w", err)
	}

	res, err := decode.Decode(raw, nil)
	if err != nil {
		return nil, fmt.Errorf("sourcemap: decode archive: %w", err)
	}

	return valueToEntries(res.Value)
}

// entriesToValue builds the CBOR array-of-maps representation of entries,
// one map per entry with the same field names Entry's JSON tags use.
func entriesToValue(entries []Entry) *value.Value {
	items := make([]*value.Value, len(entries))
	for i, e := range entries {
		children := make([]*value.Value, len(e.Children))
		for j, c := range e.Children {
			children[j] = value.NewText(c)
		}

		items[i] = value.NewMap([]value.Pair{
			{Key: value.NewText("path"), Val: value.NewText(e.Path)},
			{Key: value.NewText("start"), Val: value.NewUnsigned(uint64(e.Start))},
			{Key: value.NewText("end"), Val: value.NewUnsigned(uint64(e.End))},
			{Key: value.NewText("major_type"), Val: value.NewUnsigned(uint64(e.MajorType))},
			{Key: value.NewText("type_label"), Val: value.NewText(e.TypeLabel)},
			{Key: value.NewText("value_repr"), Val: value.NewText(e.ValueRepr)},
			{Key: value.NewText("parent"), Val: value.NewText(e.Parent)},
			{Key: value.NewText("children"), Val: value.NewArray(children, false)},
		}, false)
	}

	return value.NewArray(items, false)
}

// valueToEntries is the inverse of entriesToValue, rejecting any payload
// that isn't shaped the way this archive format always produces one.
func valueToEntries(v *value.Value) ([]Entry, error) {
	if v == nil || v.Kind != value.KindArray {
		return nil, fmt.Errorf("sourcemap: archive payload is not an array")
	}

	entries := make([]Entry, len(v.Array))
	for i, item := range v.Array {
		if item.Kind != value.KindMap {
			return nil, fmt.Errorf("sourcemap: archive entry %d is not a map", i)
		}

		e := Entry{}
		for _, pr := range item.Map {
			if pr.Key.Kind != value.KindText {
				continue
			}

			switch pr.Key.Text {
			case "path":
				e.Path = pr.Val.Text
			case "start":
				e.Start = int(pr.Val.U)
			case "end":
				e.End = int(pr.Val.U)
			case "major_type":
				e.MajorType = uint8(pr.Val.U)
			case "type_label":
				e.TypeLabel = pr.Val.Text
			case "value_repr":
				e.ValueRepr = pr.Val.Text
			case "parent":
				e.Parent = pr.Val.Text
			case "children":
				for _, c := range pr.Val.Array {
					e.Children = append(e.Children, c.Text)
				}
			}
		}

		entries[i] = e
	}

	// ParentIdx is not stored in the payload; rebuild it from the pre-order
	// entry list and each entry's child count.
	type open struct{ idx, left int }
	var stack []open
	for i := range entries {
		for len(stack) > 0 && stack[len(stack)-1].left == 0 {
			stack = stack[:len(stack)-1]
		}
		entries[i].ParentIdx = -1
		if len(stack) > 0 {
			entries[i].ParentIdx = stack[len(stack)-1].idx
			stack[len(stack)-1].left--
		}
		stack = append(stack, open{i, len(entries[i].Children)})
	}

	return entries, nil
}
