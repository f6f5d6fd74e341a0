package value

import "math/big"

// Plutus constructor tag ranges, per the Cardano Plutus Data tag family.
const (
	TagPlutusGeneral   = 102
	TagPlutusConstr0   = 121
	TagPlutusConstr6   = 127
	TagPlutusConstr7   = 1280
	TagPlutusConstr127 = 1400
)

// ConstrIndexForTag returns the Plutus constructor index encoded by tag,
// and whether tag is one of the compact constructor tags (121-127 or
// 1280-1400). It does not handle the general tag 102 form, whose index is
// carried in the first array element instead of the tag number.
func ConstrIndexForTag(tag uint64) (index uint64, ok bool) {
	switch {
	case tag >= TagPlutusConstr0 && tag <= TagPlutusConstr6:
		return tag - TagPlutusConstr0, true
	case tag >= TagPlutusConstr7 && tag <= TagPlutusConstr127:
		return tag - TagPlutusConstr7 + 7, true
	default:
		return 0, false
	}
}

// TagForConstrIndex is the inverse of ConstrIndexForTag: it returns the tag
// number that compactly encodes constructor index, and whether a compact
// tag exists for it (indices above 127 must use the general tag 102 form).
func TagForConstrIndex(index uint64) (tag uint64, ok bool) {
	switch {
	case index <= 6:
		return TagPlutusConstr0 + index, true
	case index >= 7 && index <= 127:
		return TagPlutusConstr7 + (index - 7), true
	default:
		return 0, false
	}
}

// NewPlutusConstr builds a Plutus constructor value: index plus its
// ordered field list.
func NewPlutusConstr(index uint64, fields []*Value) *Value {
	return &Value{Kind: KindPlutusConstr, ConstrIndex: index, Array: fields}
}

// NewPlutusMap builds a Plutus map value (tag 4.2.1.1 style) preserving
// input pair order.
func NewPlutusMap(pairs []Pair) *Value {
	return &Value{Kind: KindPlutusMap, Map: pairs}
}

// NewPlutusList builds a Plutus list value.
func NewPlutusList(items []*Value) *Value {
	return &Value{Kind: KindPlutusList, Array: items}
}

// NewPlutusInt builds a Plutus integer value. neg marks it as the
// -1-magnitude encoding (CBOR major type 1 / bignum tag 3).
func NewPlutusInt(magnitude *big.Int, neg bool) *Value {
	return &Value{Kind: KindPlutusInt, Big: magnitude, PlutusNeg: neg}
}

// NewPlutusBytes builds a Plutus bounded bytestring value.
func NewPlutusBytes(b []byte) *Value {
	return &Value{Kind: KindPlutusBytes, Bytes: b}
}
