package value

// ReorderTables returns a copy of v in which every object lists its scalar
// fields first, then its array fields, then its object fields. Relative order
// inside each group is kept. Objects nested in arrays are reordered too.
//
// TOML requires plain keys to precede sub-tables within a table; this puts an
// arbitrary object in an order a TOML encoder can emit.
func ReorderTables(v *Value) *Value {
	switch v.Type {
	case ArrayType:
		res := make([]*Value, len(v.Values))
		for i, elt := range v.Values {
			res[i] = ReorderTables(elt)
		}
		return FromSlice(res)
	case ObjectType:
	default:
		return v.Clone()
	}
	n := len(v.Fields)
	res := &Value{
		Type:   ObjectType,
		Fields: make([]string, 0, n),
		Values: make([]*Value, 0, n),
	}
	for _, want := range []func(Type) bool{
		Type.IsScalar,
		func(t Type) bool { return t == ArrayType },
		func(t Type) bool { return t == ObjectType },
	} {
		for i, key := range v.Fields {
			if !want(v.Values[i].Type) {
				continue
			}
			res.Fields = append(res.Fields, key)
			res.Values = append(res.Values, ReorderTables(v.Values[i]))
		}
	}
	return res
}
