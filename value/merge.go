package value

// Merge returns a new value combining left and right.
//
// depth bounds the recursion into arrays and objects: at depth 0 right wins
// outright, and a negative depth never runs out. Arrays merge index by index,
// objects key by key with left's keys first in left's order followed by the
// keys only right has, in right's order. Any other pairing is replaced by
// right.
func Merge(left, right *Value, depth int) *Value {
	if depth == 0 {
		return right.Clone()
	}
	depth--
	switch {
	case left.Type == ArrayType && right.Type == ArrayType:
		return mergeArrays(left, right, depth)
	case left.Type == ObjectType && right.Type == ObjectType:
		return mergeObjects(left, right, depth)
	}
	return right.Clone()
}

func mergeArrays(left, right *Value, depth int) *Value {
	n := max(len(left.Values), len(right.Values))
	res := make([]*Value, n)
	for i := range n {
		switch {
		case i >= len(right.Values):
			res[i] = left.Values[i].Clone()
		case i >= len(left.Values):
			res[i] = right.Values[i].Clone()
		default:
			res[i] = Merge(left.Values[i], right.Values[i], depth)
		}
	}
	return FromSlice(res)
}

func mergeObjects(left, right *Value, depth int) *Value {
	res := &Value{
		Type:   ObjectType,
		Fields: make([]string, 0, len(left.Fields)+len(right.Fields)),
		Values: make([]*Value, 0, len(left.Fields)+len(right.Fields)),
	}
	lpos, rpos := left.fieldIndex(), right.fieldIndex()
	for i, key := range left.Fields {
		lv := left.Values[i]
		var v *Value
		if j, ok := rpos[key]; ok {
			v = Merge(lv, right.Values[j], depth)
		} else {
			v = lv.Clone()
		}
		res.Fields = append(res.Fields, key)
		res.Values = append(res.Values, v)
	}
	for j, key := range right.Fields {
		if _, ok := lpos[key]; ok {
			continue
		}
		res.Fields = append(res.Fields, key)
		res.Values = append(res.Values, right.Values[j].Clone())
	}
	return res
}
