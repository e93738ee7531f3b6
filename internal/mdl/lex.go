package mdl

import (
	"fmt"
	"unicode/utf8"
)

// Pos is a position in source text.
type Pos struct {
	Name string
	Line int
	Col  int
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Name, p.Line, p.Col)
}

// FormatError builds an error tagged with the stage that produced it and
// the position it refers to.
func (p Pos) FormatError(tag string, msg string) error {
	return fmt.Errorf("%s error at %s: %s", tag, p, msg)
}

// A token is a single lexeme produced by the scanner.
type token struct {
	typ tokType
	pos Pos
	val string
}

type tokType int

const (
	tokEOF tokType = iota

	tokColon       // :
	tokComment     // // to end of line
	tokID          // foo, bar_2
	tokKeyword     // sphere, move, ...
	tokNumber      // 1, -2.5, .5, 3.
	tokShadingType // phong, flat, gouraud, raytrace, wireframe
	tokString      // .png, .obj
	tokXYZ         // x, y or z

	tokError // error; val is the error text
)

var tokTypeToName = map[tokType]string{
	tokColon:       "colon",
	tokComment:     "comment",
	tokEOF:         "end of line",
	tokError:       "error",
	tokID:          "identifier",
	tokKeyword:     "keyword",
	tokNumber:      "number",
	tokShadingType: "shading type",
	tokString:      "string",
	tokXYZ:         "axis",
}

func (t tokType) String() string {
	name, ok := tokTypeToName[t]
	if !ok {
		panic("bad token type")
	}
	return name
}

func (t token) String() string {
	switch t.typ {
	case tokEOF, tokColon:
		return fmt.Sprintf("<%s@%s>", t.typ, t.pos)
	}
	return fmt.Sprintf("<%s@%s>(%q)", t.typ, t.pos, t.val)
}

// keywords maps reserved words to the token type they lex as.
var keywords = map[string]tokType{
	"x": tokXYZ,
	"y": tokXYZ,
	"z": tokXYZ,

	"ambient":           tokKeyword,
	"basename":          tokKeyword,
	"box":               tokKeyword,
	"camera":            tokKeyword,
	"constants":         tokKeyword,
	"display":           tokKeyword,
	"focal":             tokKeyword,
	"frames":            tokKeyword,
	"generate_rayfiles": tokKeyword,
	"light":             tokKeyword,
	"line":              tokKeyword,
	"mesh":              tokKeyword,
	"move":              tokKeyword,
	"pop":               tokKeyword,
	"push":              tokKeyword,
	"rotate":            tokKeyword,
	"save":              tokKeyword,
	"save_coord_system": tokKeyword,
	"save_knobs":        tokKeyword,
	"scale":             tokKeyword,
	"screen":            tokKeyword,
	"set":               tokKeyword,
	"setknobs":          tokKeyword,
	"shading":           tokKeyword,
	"sphere":            tokKeyword,
	"texture":           tokKeyword,
	"torus":             tokKeyword,
	"tween":             tokKeyword,
	"vary":              tokKeyword,
	"web":               tokKeyword,

	"flat":      tokShadingType,
	"gouraud":   tokShadingType,
	"phong":     tokShadingType,
	"raytrace":  tokShadingType,
	"wireframe": tokShadingType,
}

// lexer holds the state of the scanner for a single line of input.
// Tokens never span lines, so the whole line is scanned up front and
// handed to the parser as a slice.
type lexer struct {
	input  string
	start  int // byte offset where the current token starts
	offset int // byte offset of the next rune
	width  int // width of the most recent rune; 0 after back()
	pos    Pos // position of input[0]
	tokens []token
}

// lexLine scans one line. The returned slice always ends with either a
// tokEOF or a tokError token.
func lexLine(input string, pos Pos) []token {
	l := &lexer{input: input, pos: pos}
	for state := lexOuter; state != nil; state = state(l) {
	}
	return l.tokens
}

const eof = -1

func (l *lexer) next() rune {
	if l.offset >= len(l.input) {
		l.width = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.offset:])
	l.width = w
	l.offset += w
	return r
}

func (l *lexer) back() {
	if l.width == 0 && l.offset < len(l.input) {
		panic("back() call not preceded by a next()")
	}
	l.offset -= l.width
	l.width = 0
}

func (l *lexer) peek() rune {
	r := l.next()
	if r != eof {
		l.back()
	}
	return r
}

// scanWhile scans while f(current rune) is true.
// It does not include the first value for which the predicate returns false.
func (l *lexer) scanWhile(f func(r rune) bool) {
	for {
		r := l.next()
		if r == eof {
			return
		}
		if !f(r) {
			l.back()
			return
		}
	}
}

func (l *lexer) startPos() Pos {
	p := l.pos
	p.Col += utf8.RuneCountInString(l.input[:l.start])
	return p
}

func (l *lexer) emit(typ tokType) {
	l.tokens = append(l.tokens, token{typ, l.startPos(), l.input[l.start:l.offset]})
	l.skip()
}

func (l *lexer) skip() {
	l.start = l.offset
}

func (l *lexer) errorf(format string, args ...interface{}) stateFn {
	l.tokens = append(l.tokens, token{tokError, l.startPos(), fmt.Sprintf(format, args...)})
	return nil
}

// stateFn represents a single state in the scanner.
type stateFn func(*lexer) stateFn

func lexOuter(l *lexer) stateFn {
	r := l.next()
	switch {
	case r == eof:
		l.emit(tokEOF)
		return nil
	case r == ' ' || r == '\t' || r == '\r':
		l.scanWhile(isBlank)
		l.skip()
		return lexOuter
	case isIdentStart(r):
		return lexIdentifier
	case r == '.':
		return lexDot
	case r == '-' || isDigit(r):
		l.back()
		return lexNumber
	case r == ':':
		l.emit(tokColon)
		return lexOuter
	case r == '/':
		if l.next() != '/' {
			return l.errorf("illegal character '/'")
		}
		l.offset = len(l.input)
		l.emit(tokComment)
		return lexOuter
	}
	if r == utf8.RuneError && l.width == 1 {
		return l.errorf("illegal byte %q", l.input[l.start:l.offset])
	}
	return l.errorf("illegal character %q", r)
}

func lexIdentifier(l *lexer) stateFn {
	l.scanWhile(isWordChar)
	typ, ok := keywords[l.input[l.start:l.offset]]
	if !ok {
		typ = tokID
	}
	l.emit(typ)
	return lexOuter
}

// lexDot handles a leading '.', which starts either a string such as
// ".png" (the word run must contain a letter or underscore) or a number
// such as ".5".
func lexDot(l *lexer) stateFn {
	runStart := l.offset
	l.scanWhile(isWordChar)
	run := l.input[runStart:l.offset]
	if run == "" {
		return l.errorf("illegal character '.'")
	}
	for _, r := range run {
		if isIdentStart(r) {
			l.emit(tokString)
			return lexOuter
		}
	}
	l.emit(tokNumber)
	return lexOuter
}

// lexNumber scans -?\d+\.\d* | -?\.\d+ | -?\d+, trying the alternatives in
// that order.
func lexNumber(l *lexer) stateFn {
	if l.next() != '-' {
		l.back()
	}
	switch r := l.next(); {
	case isDigit(r):
		l.scanWhile(isDigit)
		if l.peek() == '.' {
			l.next()
			l.scanWhile(isDigit)
		}
	case r == '.' && isDigit(l.peek()):
		l.scanWhile(isDigit)
	default:
		return l.errorf("malformed number %q", l.input[l.start:l.offset])
	}
	l.emit(tokNumber)
	return lexOuter
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isWordChar(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}
