package decode

import (
	"math/big"

	"github.com/plutusdata/cbor/errs"
	"github.com/plutusdata/cbor/value"
)

// isPlutusConstrTag reports whether tag is one of the compact Plutus
// constructor tags (121-127 for constructors 0-6, 1280-1400 for 7-127).
func isPlutusConstrTag(tag uint64) bool {
	_, ok := value.ConstrIndexForTag(tag)
	return ok
}

// parsePlutusConstrTag handles tags 121-127 and 1280-1400: the inner value
// must be an array, which becomes the constructor's field list. Each field
// is reclassified into its Plutus Data subtype, recursively, per the
// plutus_data CDDL (a constructor field is itself plutus_data, not a bare
// CBOR value).
func (p *parser) parsePlutusConstrTag(tag uint64, path string, handle int) (*value.Value, error) {
	index, _ := value.ConstrIndexForTag(tag)

	inner, err := p.parseValue(path, handle)
	if err != nil {
		return nil, err
	}
	if inner.Kind != value.KindArray {
		return nil, errs.ErrPlutusShapeMismatch
	}

	return value.NewPlutusConstr(index, wrapFields(inner.Array)), nil
}

// parsePlutusGeneral handles tag 102: inner must be a 2-element array
// [constr_index:int, fields:array], with fields reclassified the same way
// parsePlutusConstrTag does.
func (p *parser) parsePlutusGeneral(path string, handle int) (*value.Value, error) {
	inner, err := p.parseValue(path, handle)
	if err != nil {
		return nil, err
	}

	if inner.Kind != value.KindArray || len(inner.Array) != 2 {
		return nil, errs.ErrPlutusShapeMismatch
	}

	idxVal := inner.Array[0]
	if idxVal.Kind != value.KindUnsigned || idxVal.Big != nil {
		return nil, errs.ErrPlutusShapeMismatch
	}

	fields := inner.Array[1]
	if fields.Kind != value.KindArray {
		return nil, errs.ErrPlutusShapeMismatch
	}

	return value.NewPlutusConstr(idxVal.U, wrapFields(fields.Array)), nil
}

// wrapFields reclassifies each constructor field into its Plutus Data
// subtype via WrapAsPlutusData.
func wrapFields(fields []*value.Value) []*value.Value {
	wrapped := make([]*value.Value, len(fields))
	for i, f := range fields {
		wrapped[i] = WrapAsPlutusData(f)
	}

	return wrapped
}

// WrapAsPlutusData reclassifies a plain decoded value into its Plutus Data
// subtype (constructor, map, list, bounded bytestring, or integer),
// recursively, per the plutus_data CDDL:
//
//	plutus_data = constr<plutus_data> / {* plutus_data => plutus_data}
//	            / [* plutus_data] / big_int / bounded_bytes
//
// Every position a plutus_data value can occupy (constructor fields, map
// keys/values, list elements) reclassifies this way; parsePlutusConstrTag
// and parsePlutusGeneral call it on every constructor field they build, so
// a decoded Constr's fields are themselves plutus_data, not bare CBOR
// values. A value already produced by the tag dispatcher as KindPlutusConstr
// (a nested compact/general constructor tag) has its fields re-wrapped too,
// since nesting is not otherwise bounded.
func WrapAsPlutusData(v *value.Value) *value.Value {
	switch v.Kind {
	case value.KindMap:
		pairs := make([]value.Pair, len(v.Map))
		for i, pr := range v.Map {
			pairs[i] = value.Pair{Key: WrapAsPlutusData(pr.Key), Val: WrapAsPlutusData(pr.Val), KeyBytes: pr.KeyBytes}
		}
		return value.NewPlutusMap(pairs)
	case value.KindArray:
		return value.NewPlutusList(wrapFields(v.Array))
	case value.KindBytes:
		return value.NewPlutusBytes(v.Bytes)
	case value.KindUnsigned:
		if v.Big != nil {
			return value.NewPlutusInt(v.Big, false)
		}
		return value.NewPlutusInt(new(big.Int).SetUint64(v.U), false)
	case value.KindNegative:
		if v.Big != nil {
			return value.NewPlutusInt(v.Big, true)
		}
		return value.NewPlutusInt(new(big.Int).SetUint64(v.U), true)
	case value.KindPlutusConstr:
		return value.NewPlutusConstr(v.ConstrIndex, wrapFields(v.Array))
	default:
		return v
	}
}
