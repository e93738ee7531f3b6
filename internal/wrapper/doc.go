// Package wrapper builds the object written to standard output: the parsed
// symbol table and command list under the keys "symbols" and "commands".
// Values are kept as cty trees end to end so serialization never coerces or
// truncates what the parser produced.
package wrapper
