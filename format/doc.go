// Package format names the document formats rmarshal reads and writes.
//
// # Usage
//
//	f, err := format.ParseFormat("yaml")
//	f = format.ForPath("config.toml") // format.TOMLFormat
//
// # Related Packages
//
//   - github.com/signadot/rmarshal/codec - Encode and decode each format
package format
