package main

import (
	"slices"
	"strings"

	"github.com/signadot/rmarshal/format"
)

const usage = `rmarshal [INPUT...] COMMAND [OUTPUT...]`

const description = `rmarshal reads documents, runs commands over them and writes documents.

Arguments before the first command are inputs, arguments after the last
command are outputs. The path - means stdin for an input and stdout for an
output.

Help:
        --version                   print the program name and version
        --help [TOPIC]              print this help, or help on TOPIC

Commands:
        --check                     decode the inputs and stop
        --concat                    join array documents into one array
    -C, --copy                      pass documents through unchanged
        --merge [-d DEPTH]          merge documents into one
        --pack                      wrap all documents in one array
        --unpack                    split array documents into their elements
    -R, --render PATH               render a template over the documents
    -T, --transform PATH            run a Lua script over the documents

Inputs and outputs:
        PATH                        a file, format inferred from its extension
        --FORMAT [OPTION...] PATH   a file in plain, json, lua, toml or yaml
    -D, --document HINT VALUE       an inline document, input only`

var topics = map[string]string{
	"check": `rmarshal INPUT... --check

Decodes every input and exits successfully without writing anything.

    rmarshal a.json b.toml c.yaml --check`,

	"concat": `rmarshal INPUT... --concat OUTPUT

Every input must be an array. Writes one array holding all their elements
in order.

    rmarshal a.json b.yaml --concat all.json`,

	"copy": `rmarshal INPUT... --copy OUTPUT...

Writes the inputs unchanged, typically to other formats.

    rmarshal a.json b.toml --copy a.yaml b.json`,

	"document": `rmarshal --document HINT VALUE COMMAND [OUTPUT...]
rmarshal -D HINT VALUE, -DHINT VALUE, -DHINTVALUE

Defines a document on the command line. Hints:

    _, any        infer: ~ is nil, true/on/false/off are booleans, then
                  integers, floats and strings
    N, nil        ~
    B, boolean    true, on, false or off in any case
    I, integer    a 64 bit integer
    F, float      a floating point number
    S, string     the value as is
    J, json       a JSON document
    L, lua        a Lua expression
    E, expr       an expression over the previous inputs, available as
                  inputs, input(n) and getenv(name)

    rmarshal -DS hello --copy --yaml -
    rmarshal -D_42 -DE 'inputs[0] * 2' --pack --json -`,

	"json": `rmarshal --json [OPTION...] PATH

Options:
        --eol               end each document with a newline, output only
        --pretty            indent by two spaces, output only
    -s, --stream[=COUNT]    write COUNT documents, or all remaining ones

    rmarshal doc.json --copy --json --pretty --eol out.json`,

	"lua": `rmarshal --lua [OPTION...] PATH

A Lua document is an expression using the script prelude, for example
Object:new({{"msg", "hi"}, {"list", Array:new({1, 2})}}).

Options:
        --eol               end each document with a newline, output only
    -s, --stream[=COUNT]    write COUNT documents, or all remaining ones`,

	"merge": `rmarshal INPUT... --merge [--depth DEPTH] OUTPUT

Merges the inputs from first to last into one document. Objects merge key
by key, keeping the keys of the left side first; arrays merge index by
index; anything else is replaced. Below DEPTH levels the right side
replaces the left side entirely.

    rmarshal a.json b.toml c.yaml --merge out.yaml
    rmarshal a.json b.toml c.yaml --merge --depth 1 out.yaml`,

	"pack": `rmarshal INPUT... --pack OUTPUT

Writes one array holding every input in order.`,

	"plain": `rmarshal --plain [OPTION...] PATH

A plain input is a single scalar inferred like an "any" document, minus
one trailing newline. A plain output holds scalars only.

Options:
        --eol               end each document with a newline, output only
    -s, --stream[=COUNT]    write COUNT documents, or all remaining ones`,

	"render": `rmarshal [INPUT...] --render PATH OUTPUT

Renders the template at PATH with the inputs available through ctx and
writes the resulting string.

    <% statement %>     Lua code, not written
    <%= expression %>   written
    <%- and -%>         drop blank text before or after a statement; a line
                        holding only a statement ending in -%> is dropped

    <% local d = ctx:get_input(1) -%>
    name: <%= d:get('name') %>`,

	"toml": `rmarshal --toml [OPTION...] PATH

Options:
        --fix               move plain values ahead of tables, output only
    -s, --stream[=COUNT]    write COUNT documents, or all remaining ones`,

	"transform": `rmarshal [INPUT...] --transform PATH [OUTPUT...]

Runs the Lua script at PATH. Inputs are read with ctx:get_input(n),
ctx:get_inputs() and ctx:merge_inputs(); every ctx:set_output(value) adds
an output document.

    local out = Object:new()
    out:set('first', ctx:get_input(1):get('value'))
    ctx:set_output(out)`,

	"unpack": `rmarshal INPUT... --unpack OUTPUT...

Every input must be an array. Writes each of their elements as a document.`,

	"yaml": `rmarshal --yaml [OPTION...] PATH

Options:
        --dots              end each document with "...", output only
    -s, --stream[=COUNT]    read every document of the file, or write
                            COUNT documents, or all remaining ones`,
}

func topicHelp(topic string) string {
	if text, ok := topics[topic]; ok {
		if f, err := format.ParseFormat(topic); err == nil && f.Suffix() != "" {
			text += "\n\nPaths ending in " + f.Suffix() + " are " + f.String() + " by default."
		}
		return text
	}
	names := make([]string, 0, len(topics))
	for name := range topics {
		names = append(names, name)
	}
	slices.Sort(names)
	return "rmarshal --help TOPIC\n\nTopics: " + strings.Join(names, ", ")
}
