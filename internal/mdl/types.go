package mdl

import (
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// Command is a single parsed directive. Fields holds every attribute of the
// command except its op name; optional attributes that were not given are
// present as typed nulls so that every command of an op has the same shape.
type Command struct {
	Op     string
	Pos    Pos
	Fields map[string]cty.Value
}

// Field returns the named attribute, or cty.NilVal if the command has no
// such attribute.
func (c Command) Field(name string) cty.Value {
	v, ok := c.Fields[name]
	if !ok {
		return cty.NilVal
	}
	return v
}

// Value returns the command as an object with an "op" attribute alongside
// its fields.
func (c Command) Value() cty.Value {
	attrs := make(map[string]cty.Value, len(c.Fields)+1)
	for k, v := range c.Fields {
		attrs[k] = v
	}
	attrs["op"] = cty.StringVal(c.Op)
	return cty.ObjectVal(attrs)
}

// Symbol is an entry in the symbol table: a kind tag followed by the values
// the defining command attached to it.
type Symbol struct {
	Kind   string
	Values []cty.Value
}

// Value returns the symbol as a tuple of its kind followed by its values.
func (s Symbol) Value() cty.Value {
	elems := make([]cty.Value, 0, len(s.Values)+1)
	elems = append(elems, cty.StringVal(s.Kind))
	elems = append(elems, s.Values...)
	return cty.TupleVal(elems)
}

// Result is the output of parsing one MDL source.
type Result struct {
	Commands []Command
	Symbols  map[string]Symbol

	// Diagnostics are the syntax errors that were skipped over. They are
	// always empty when the parser runs in strict mode.
	Diagnostics []error
}

func newResult() *Result {
	return &Result{Symbols: make(map[string]Symbol)}
}

// SymbolNames returns the symbol table keys in sorted order.
func (r *Result) SymbolNames() []string {
	names := make([]string, 0, len(r.Symbols))
	for name := range r.Symbols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func numberVal(f float64) cty.Value {
	return cty.NumberFloatVal(f)
}

func numbersVal(fs []float64) cty.Value {
	if len(fs) == 0 {
		return cty.EmptyTupleVal
	}
	elems := make([]cty.Value, len(fs))
	for i, f := range fs {
		elems[i] = numberVal(f)
	}
	return cty.TupleVal(elems)
}

// nameVal returns a string value, or a null string when name is empty.
func nameVal(name string) cty.Value {
	if name == "" {
		return cty.NullVal(cty.String)
	}
	return cty.StringVal(name)
}

var nullArgs = cty.NullVal(cty.EmptyTuple)
