package wrapper

import (
	"errors"
	"fmt"

	"github.com/WilliamC07/graphics-mdl/internal/mdl"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Build returns the wrapper object for res.
func Build(res *mdl.Result) (cty.Value, error) {
	if res == nil {
		return cty.NilVal, errors.New("wrapper: nil parse result")
	}

	commands := cty.EmptyTupleVal
	if len(res.Commands) > 0 {
		elems := make([]cty.Value, len(res.Commands))
		for i, cmd := range res.Commands {
			elems[i] = cmd.Value()
		}
		commands = cty.TupleVal(elems)
	}

	symbols := cty.EmptyObjectVal
	if len(res.Symbols) > 0 {
		attrs := make(map[string]cty.Value, len(res.Symbols))
		for name, sym := range res.Symbols {
			attrs[name] = sym.Value()
		}
		symbols = cty.ObjectVal(attrs)
	}

	return cty.ObjectVal(map[string]cty.Value{
		"symbols":  symbols,
		"commands": commands,
	}), nil
}

// Marshal returns the compact JSON encoding of the wrapper for res.
func Marshal(res *mdl.Result) ([]byte, error) {
	val, err := Build(res)
	if err != nil {
		return nil, err
	}
	b, err := ctyjson.Marshal(val, val.Type())
	if err != nil {
		return nil, fmt.Errorf("failed to encode parse result: %w", err)
	}
	return b, nil
}
