// Package value provides the format-agnostic document model shared by every
// codec, the script bridge and the pipeline.
//
// # Overview
//
// A [Value] is a recursive tagged union. The [Type] field selects which of
// the payload fields is meaningful:
//
//   - NilType: no payload
//   - BoolType: Bool
//   - IntType: Int
//   - FloatType: Float
//   - StringType: String
//   - ArrayType: Values, in order
//   - ObjectType: Fields (keys) and Values, parallel slices in insertion order
//
// Object keys are unique. Insertion order is significant and every function in
// this package preserves it.
//
// # Ownership
//
// Values are treated as immutable once built. [Merge], [ReorderTables] and
// the conversion helpers return new trees and never modify their arguments.
// Use [Value.Clone] to take an independent copy before handing a tree to code
// that may keep it.
//
// # Creating Values
//
//	v := value.FromKeyVals([]value.KeyVal{
//	    {Key: "name", Val: value.FromString("Althea")},
//	    {Key: "scores", Val: value.FromSlice([]*value.Value{
//	        value.FromInt(99),
//	    })},
//	})
package value
