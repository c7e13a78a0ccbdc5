// Package template compiles text templates into Lua source.
//
// Markup:
//
//	<% stmt %>    Lua statement, run for control flow
//	<%= expr %>   Lua expression, its value is appended to the output
//	<%- stmt %>   drop blank text before the tag on its line
//	<% stmt -%>   drop blank text after the tag on its line; a line holding
//	              only such a tag contributes no newline
//
// The generated program collects pieces in a table and hands it to
// ctx:set_output, see script.Render.
package template
