// Package script runs Lua against document values.
//
// Every invocation gets its own [Env]: a fresh Lua state with the prelude
// loaded. The prelude defines the script-visible API:
//
//   - NULL: a document null, distinct from nil
//   - Array: ordered array type with push, pop, shift, unshift, map, iterator
//   - Object: ordered map type with get, set, has, delete, merge, keys,
//     values and an insertion-order iterator
//   - ctx: the Context, with get_input(i), get_inputs(), merge_inputs() and
//     set_output(v)
//
// Values enter an Env as Lua source (see [Source]) appended to ctx.inputs and
// leave it through ctx.outputs (see [Env.Outputs] and [Env.RenderedText]).
//
// # Related Packages
//
//   - github.com/signadot/rmarshal/template - Compiles templates to Lua
//   - github.com/signadot/rmarshal/value - The document model
package script
