package mdl

import "github.com/zclconf/go-cty/cty"

// ruleFn parses the arguments of the command introduced by kw and records
// the command and any symbols it defines.
type ruleFn func(lp *lineParser, kw token)

var rules = map[string]ruleFn{
	"ambient":           parseAmbient,
	"basename":          parseBasename,
	"box":               shapeRule(6),
	"camera":            parseCamera,
	"constants":         parseConstants,
	"display":           parseBare,
	"focal":             parseFocal,
	"frames":            parseFrames,
	"generate_rayfiles": parseBare,
	"light":             parseLight,
	"line":              parseLineCommand,
	"mesh":              parseMesh,
	"move":              parseTransform,
	"pop":               parseBare,
	"push":              parseBare,
	"rotate":            parseRotate,
	"save":              parseSave,
	"save_coord_system": parseSaveCoords,
	"save_knobs":        parseSaveKnobs,
	"scale":             parseTransform,
	"screen":            parseScreen,
	"set":               parseSet,
	"setknobs":          parseSetKnobs,
	"shading":           parseShading,
	"sphere":            shapeRule(4),
	"texture":           parseTexture,
	"torus":             shapeRule(5),
	"tween":             parseTween,
	"vary":              parseVary,
	"web":               parseBare,
}

func newCommand(kw token, fields map[string]cty.Value) Command {
	return Command{Op: kw.val, Pos: kw.pos, Fields: fields}
}

func knobSymbol(value float64) Symbol {
	return Symbol{Kind: "knob", Values: []cty.Value{numberVal(value)}}
}

// parseBare handles commands without arguments: push, pop, display,
// generate_rayfiles, web.
func parseBare(lp *lineParser, kw token) {
	lp.add(newCommand(kw, map[string]cty.Value{"args": nullArgs}))
}

// screen [width height]
func parseScreen(lp *lineParser, kw token) {
	width, height := lp.opts.ScreenWidth, lp.opts.ScreenHeight
	if lp.peek().typ == tokNumber {
		width = lp.number("screen width")
		height = lp.number("screen height")
	}
	lp.add(newCommand(kw, map[string]cty.Value{
		"width":  numberVal(width),
		"height": numberVal(height),
	}))
}

// save name [name], the two parts joined, as in "save out .png".
func parseSave(lp *lineParser, kw token) {
	name := lp.text("file name")
	name += lp.optText()
	lp.add(newCommand(kw, map[string]cty.Value{
		"args": cty.TupleVal([]cty.Value{cty.StringVal(name)}),
	}))
}

// shapeRule returns the rule for sphere, torus and box, which share the
// form: op [constants] n... [coord_system].
func shapeRule(n int) ruleFn {
	return func(lp *lineParser, kw token) {
		constants := lp.optSymbol()
		args := lp.numbers(n, kw.val+" argument")
		cs := lp.optSymbol()
		lp.add(newCommand(kw, map[string]cty.Value{
			"constants": nameVal(constants),
			"cs":        nameVal(cs),
			"args":      numbersVal(args),
		}))
	}
}

// line [constants] x0 y0 z0 [cs0] x1 y1 z1 [cs1]
func parseLineCommand(lp *lineParser, kw token) {
	constants := lp.optSymbol()
	args := lp.numbers(3, "line start point")
	cs0 := lp.optSymbol()
	args = append(args, lp.numbers(3, "line end point")...)
	cs1 := lp.optSymbol()
	lp.add(newCommand(kw, map[string]cty.Value{
		"constants": nameVal(constants),
		"cs0":       nameVal(cs0),
		"cs1":       nameVal(cs1),
		"args":      numbersVal(args),
	}))
}

// move|scale x y z [knob]
func parseTransform(lp *lineParser, kw token) {
	args := lp.numbers(3, kw.val+" amount")
	knob := lp.optSymbol()
	if knob != "" {
		lp.define(knob, knobSymbol(0))
	}
	lp.add(newCommand(kw, map[string]cty.Value{
		"args": numbersVal(args),
		"knob": nameVal(knob),
	}))
}

// rotate axis degrees [knob]
func parseRotate(lp *lineParser, kw token) {
	axis := lp.expect(tokXYZ, "rotation axis (x, y or z)")
	degrees := lp.number("rotation degrees")
	knob := lp.optSymbol()
	if knob != "" {
		lp.define(knob, knobSymbol(0))
	}
	lp.add(newCommand(kw, map[string]cty.Value{
		"args": cty.TupleVal([]cty.Value{cty.StringVal(axis.val), numberVal(degrees)}),
		"knob": nameVal(knob),
	}))
}

// frames n
func parseFrames(lp *lineParser, kw token) {
	n := lp.number("frame count")
	lp.add(newCommand(kw, map[string]cty.Value{
		"args": numbersVal([]float64{n}),
	}))
}

// basename name [.ext]
func parseBasename(lp *lineParser, kw token) {
	name := lp.text("base name")
	name += lp.optString()
	lp.add(newCommand(kw, map[string]cty.Value{
		"args": cty.TupleVal([]cty.Value{cty.StringVal(name)}),
	}))
}

// vary knob start_frame end_frame start_value end_value
func parseVary(lp *lineParser, kw token) {
	knob := lp.symbol("knob name")
	args := lp.numbers(4, "vary argument")
	lp.define(knob, knobSymbol(0))
	lp.add(newCommand(kw, map[string]cty.Value{
		"args": numbersVal(args),
		"knob": cty.StringVal(knob),
	}))
}

// set knob value
func parseSet(lp *lineParser, kw token) {
	knob := lp.symbol("knob name")
	value := lp.number("knob value")
	lp.define(knob, knobSymbol(value))
	lp.add(newCommand(kw, map[string]cty.Value{
		"args": numbersVal([]float64{value}),
		"knob": cty.StringVal(knob),
	}))
}

// setknobs value
func parseSetKnobs(lp *lineParser, kw token) {
	value := lp.number("knob value")
	lp.add(newCommand(kw, map[string]cty.Value{
		"args": numbersVal([]float64{value}),
		"knob": nameVal(""),
	}))
}

// ambient r g b
func parseAmbient(lp *lineParser, kw token) {
	rgb := lp.numbers(3, "ambient color component")
	lp.define("ambient", Symbol{Kind: "ambient", Values: numbersVal(rgb).AsValueSlice()})
	lp.add(newCommand(kw, map[string]cty.Value{
		"args": numbersVal(rgb),
	}))
}

// constants name kar kdr ksr kag kdg ksg kab kdb ksb [ir ig ib]
func parseConstants(lp *lineParser, kw token) {
	name := lp.symbol("constants name")
	ks := lp.numbers(9, "lighting constant")
	attrs := map[string]cty.Value{
		"red":   numbersVal(ks[0:3]),
		"green": numbersVal(ks[3:6]),
		"blue":  numbersVal(ks[6:9]),
	}
	if lp.peek().typ == tokNumber {
		attrs["intensity"] = numbersVal(lp.numbers(3, "color intensity"))
	}
	lp.define(name, Symbol{Kind: "constants", Values: []cty.Value{cty.ObjectVal(attrs)}})
	lp.add(newCommand(kw, map[string]cty.Value{
		"args":      nullArgs,
		"constants": cty.StringVal(name),
	}))
}

// light name x y z r g b
func parseLight(lp *lineParser, kw token) {
	name := lp.symbol("light name")
	location := lp.numbers(3, "light location")
	color := lp.numbers(3, "light color")
	lp.define(name, Symbol{Kind: "light", Values: []cty.Value{cty.ObjectVal(map[string]cty.Value{
		"location": numbersVal(location),
		"color":    numbersVal(color),
	})}})
	lp.add(newCommand(kw, map[string]cty.Value{
		"args":  nullArgs,
		"light": cty.StringVal(name),
	}))
}

// shading phong|flat|gouraud|raytrace|wireframe
func parseShading(lp *lineParser, kw token) {
	shade := lp.expect(tokShadingType, "shading type")
	lp.define("shading", Symbol{Kind: "shade_type", Values: []cty.Value{cty.StringVal(shade.val)}})
	lp.add(newCommand(kw, map[string]cty.Value{
		"args":       nullArgs,
		"shade_type": cty.StringVal(shade.val),
	}))
}

// camera eye_x eye_y eye_z aim_x aim_y aim_z
func parseCamera(lp *lineParser, kw token) {
	eye := lp.numbers(3, "camera eye")
	aim := lp.numbers(3, "camera aim")
	lp.define("camera", Symbol{Kind: "camera", Values: []cty.Value{cty.ObjectVal(map[string]cty.Value{
		"eye": numbersVal(eye),
		"aim": numbersVal(aim),
	})}})
	lp.add(newCommand(kw, map[string]cty.Value{"args": nullArgs}))
}

// mesh [constants] :file[.ext] [coord_system]
func parseMesh(lp *lineParser, kw token) {
	constants := lp.optSymbol()
	lp.expect(tokColon, "':' before mesh file name")
	file := lp.text("mesh file name")
	file += lp.optString()
	cs := lp.optSymbol()
	lp.add(newCommand(kw, map[string]cty.Value{
		"args":      cty.TupleVal([]cty.Value{cty.StringVal(file)}),
		"constants": nameVal(constants),
		"cs":        nameVal(cs),
	}))
}

// save_knobs knob_list
func parseSaveKnobs(lp *lineParser, kw token) {
	name := lp.symbol("knob list name")
	lp.define(name, Symbol{Kind: "knob_list", Values: []cty.Value{cty.EmptyTupleVal}})
	lp.add(newCommand(kw, map[string]cty.Value{
		"args":      nullArgs,
		"knob_list": cty.StringVal(name),
	}))
}

// save_coord_system name
func parseSaveCoords(lp *lineParser, kw token) {
	name := lp.symbol("coordinate system name")
	lp.define(name, Symbol{Kind: "coord_sys", Values: []cty.Value{cty.EmptyTupleVal}})
	lp.add(newCommand(kw, map[string]cty.Value{
		"args": nullArgs,
		"cs":   cty.StringVal(name),
	}))
}

// tween start_frame end_frame knob_list0 knob_list1
func parseTween(lp *lineParser, kw token) {
	frames := lp.numbers(2, "tween frame")
	list0 := lp.symbol("first knob list")
	list1 := lp.symbol("second knob list")
	lp.add(newCommand(kw, map[string]cty.Value{
		"args":       numbersVal(frames),
		"knob_list0": cty.StringVal(list0),
		"knob_list1": cty.StringVal(list1),
	}))
}

// focal value
func parseFocal(lp *lineParser, kw token) {
	v := lp.number("focal length")
	lp.add(newCommand(kw, map[string]cty.Value{
		"args": numbersVal([]float64{v}),
	}))
}

// texture name followed by twelve numbers
func parseTexture(lp *lineParser, kw token) {
	name := lp.symbol("texture name")
	vals := lp.numbers(12, "texture argument")
	lp.define(name, Symbol{Kind: "texture", Values: []cty.Value{numbersVal(vals)}})
	lp.add(newCommand(kw, map[string]cty.Value{
		"args":    nullArgs,
		"texture": cty.StringVal(name),
	}))
}
