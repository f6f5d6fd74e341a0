package decode

import (
	"strconv"

	"github.com/plutusdata/cbor/value"
	"github.com/plutusdata/cbor/wire"
)

// maxRepr bounds the value_repr string recorded in a source-map entry.
const maxRepr = 120

// typeLabel returns the human type label recorded alongside a source-map
// entry's major type.
func typeLabel(v *value.Value) string {
	switch v.Kind {
	case value.KindUnsigned:
		return "unsigned"
	case value.KindNegative:
		return "negative"
	case value.KindBytes:
		return "bytes"
	case value.KindText:
		return "text"
	case value.KindArray:
		return "array"
	case value.KindMap:
		return "map"
	case value.KindTagged:
		return "tagged"
	case value.KindSimple:
		return "simple"
	case value.KindBool:
		return "bool"
	case value.KindNull:
		return "null"
	case value.KindUndefined:
		return "undefined"
	case value.KindFloat:
		return "float"
	case value.KindPlutusConstr:
		return "plutus_constr"
	case value.KindPlutusMap:
		return "plutus_map"
	case value.KindPlutusList:
		return "plutus_list"
	case value.KindPlutusInt:
		return "plutus_int"
	case value.KindPlutusBytes:
		return "plutus_bytes"
	default:
		return "unknown"
	}
}

// majorOf maps a decoded value back to the CBOR major type that produced
// it. parseValue does not call it: the source-map entry's major_type comes
// from the header it read.
func majorOf(v *value.Value) uint8 {
	switch v.Kind {
	case value.KindUnsigned:
		return uint8(wire.MajorUnsigned)
	case value.KindNegative:
		return uint8(wire.MajorNegative)
	case value.KindBytes, value.KindPlutusBytes:
		return uint8(wire.MajorBytes)
	case value.KindText:
		return uint8(wire.MajorText)
	case value.KindArray, value.KindPlutusList:
		return uint8(wire.MajorArray)
	case value.KindMap, value.KindPlutusMap:
		return uint8(wire.MajorMap)
	case value.KindTagged, value.KindPlutusConstr, value.KindPlutusInt:
		return uint8(wire.MajorTag)
	default:
		return uint8(wire.MajorSimple)
	}
}

// reprOf renders a short, bounded diagnostic representation of v.
func reprOf(v *value.Value) string {
	var s string

	switch v.Kind {
	case value.KindUnsigned:
		if v.Big != nil {
			s = v.Big.String()
		} else {
			s = strconv.FormatUint(v.U, 10)
		}
	case value.KindNegative:
		if v.Big != nil {
			s = "-1-" + v.Big.String()
		} else {
			s = strconv.FormatInt(-1-int64(v.U), 10)
		}
	case value.KindText:
		s = strconv.Quote(v.Text)
	case value.KindBytes:
		s = "h'" + wire.BytesToHex(v.Bytes) + "'"
	case value.KindBool:
		s = strconv.FormatBool(v.Bool)
	case value.KindNull:
		s = "null"
	case value.KindUndefined:
		s = "undefined"
	case value.KindFloat:
		s = strconv.FormatFloat(v.Float, 'g', -1, 64)
	case value.KindArray:
		s = "[" + strconv.Itoa(len(v.Array)) + " items]"
	case value.KindMap:
		s = "{" + strconv.Itoa(len(v.Map)) + " pairs}"
	case value.KindTagged:
		s = strconv.FormatUint(v.Tag, 10) + "(...)"
	case value.KindSimple:
		s = "simple(" + strconv.Itoa(int(v.Simple)) + ")"
	case value.KindPlutusConstr:
		s = "Constr " + strconv.FormatUint(v.ConstrIndex, 10)
	default:
		s = typeLabel(v)
	}

	if len(s) > maxRepr {
		s = s[:maxRepr]
	}

	return s
}
