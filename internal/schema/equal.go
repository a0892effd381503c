package schema

import "encoding/json"

// Equal reports deep structural equality of two value trees.
//
// Numbers compare by numeric value, so 1 and 1.0 are equal even though their
// literals differ. Strings compare byte-for-byte, null only equals null, and
// arrays compare element-wise in order. Key order never matters for objects.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Number:
		bv, ok := b.(Number)
		return ok && numbersEqual(av, bv)
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Array:
		bv, ok := b.(Array)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case Object:
		bv, ok := b.(Object)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, ae := range av {
			be, present := bv[k]
			if !present || !Equal(ae, be) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// numbersEqual compares two numbers by value. Exact integer comparison is
// tried first so large int64 values are not squashed through float64;
// mixed representations fall back to float comparison.
func numbersEqual(a, b Number) bool {
	if a == b {
		return true
	}
	na, nb := json.Number(a), json.Number(b)

	ia, errA := na.Int64()
	ib, errB := nb.Int64()
	if errA == nil && errB == nil {
		return ia == ib
	}

	fa, errA := na.Float64()
	fb, errB := nb.Float64()
	if errA != nil || errB != nil {
		return false
	}
	return fa == fb
}
