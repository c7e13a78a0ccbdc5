// Package codec converts between document text and values.
//
// Every format preserves object key order in both directions. The
// conversions are:
//
//   - plain: a single scalar, inferred from its text on decode
//   - json: RFC 8259 text, compact or indented
//   - lua: a Lua expression, see script.Source and script.Eval
//   - toml: a TOML document, whose root must be an object
//   - yaml: a single YAML document; see [SplitYAMLStream] for streams
package codec
