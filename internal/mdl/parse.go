package mdl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/WilliamC07/graphics-mdl/internal/ctxlog"
)

// DefaultScreenSize is the width and height given to a bare "screen"
// command when Options does not override it.
const DefaultScreenSize = 500

// Options configures a Parser.
type Options struct {
	// Strict makes the first syntax error fail the whole parse instead of
	// being recorded as a diagnostic.
	Strict bool

	// ScreenWidth and ScreenHeight are used by a "screen" command without
	// arguments. Zero means DefaultScreenSize.
	ScreenWidth  float64
	ScreenHeight float64
}

// Parser turns MDL source into a Result. A Parser holds no per-parse state
// and may be reused.
type Parser struct {
	opts Options
}

// NewParser creates a Parser with the given options.
func NewParser(opts Options) *Parser {
	if opts.ScreenWidth == 0 {
		opts.ScreenWidth = DefaultScreenSize
	}
	if opts.ScreenHeight == 0 {
		opts.ScreenHeight = DefaultScreenSize
	}
	return &Parser{opts: opts}
}

// ParseFile parses the named file. A nil Result is returned together with
// an error when the file cannot be read, or when a syntax error is found in
// strict mode.
func (p *Parser) ParseFile(ctx context.Context, filename string) (*Result, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return p.Parse(ctx, f, filename)
}

// Parse parses MDL source read from r. The name is used in positions.
func (p *Parser) Parse(ctx context.Context, r io.Reader, name string) (*Result, error) {
	_, logger := ctxlog.With(ctx, "source", name)
	logger.Debug("Parsing MDL source.", "strict", p.opts.Strict)

	res := newResult()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := p.parseSourceLine(res, scanner.Text(), Pos{Name: name, Line: lineNo, Col: 1}); err != nil {
			if p.opts.Strict {
				return nil, err
			}
			logger.Debug("Skipping rest of line after syntax error.", "error", err)
			res.Diagnostics = append(res.Diagnostics, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	logger.Debug("MDL source parsed.",
		"lines", lineNo,
		"commands", len(res.Commands),
		"symbols", len(res.Symbols),
		"diagnostics", len(res.Diagnostics),
	)
	return res, nil
}

// parseSourceLine parses every command on a single line, appending them to res
// as each one completes.
func (p *Parser) parseSourceLine(res *Result, line string, pos Pos) (err error) {
	trimmed := strings.TrimLeft(line, " \t\r\v\f")
	pos.Col += utf8.RuneCountInString(line[:len(line)-len(trimmed)])
	trimmed = strings.TrimRight(trimmed, " \t\r\v\f")

	lp := &lineParser{
		opts:   &p.opts,
		res:    res,
		tokens: lexLine(trimmed, pos),
	}
	defer lp.recover(&err)
	for lp.command() {
	}
	return nil
}

// syntaxError is the panic value used to unwind a line parse.
type syntaxError struct {
	err error
}

// lineParser is a recursive descent parser over the tokens of one line.
type lineParser struct {
	opts   *Options
	res    *Result
	tokens []token
	i      int
}

func (lp *lineParser) recover(err *error) {
	if e := recover(); e != nil {
		if _, ok := e.(runtime.Error); ok {
			panic(e)
		}
		if se, ok := e.(syntaxError); ok {
			*err = se.err
			return
		}
		panic(e)
	}
}

func (lp *lineParser) peek() token {
	tok := lp.tokens[lp.i]
	if tok.typ == tokError {
		panic(syntaxError{tok.pos.FormatError("lex", tok.val)})
	}
	return tok
}

func (lp *lineParser) next() token {
	tok := lp.peek()
	if tok.typ != tokEOF {
		lp.i++
	}
	return tok
}

func (lp *lineParser) errorf(tok token, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if tok.typ == tokEOF {
		msg += ", found end of line"
	} else {
		msg += fmt.Sprintf(", found %s %q", tok.typ, tok.val)
	}
	panic(syntaxError{tok.pos.FormatError("syntax", msg)})
}

// command parses the next command on the line. It reports false once the
// line is exhausted.
func (lp *lineParser) command() bool {
	tok := lp.next()
	switch tok.typ {
	case tokEOF:
		return false
	case tokComment:
		return true
	case tokKeyword:
		rule, ok := rules[tok.val]
		if !ok {
			panic("no rule for keyword " + tok.val)
		}
		rule(lp, tok)
		return true
	}
	lp.errorf(tok, "expected a command")
	return false
}

func (lp *lineParser) add(cmd Command) {
	lp.res.Commands = append(lp.res.Commands, cmd)
}

func (lp *lineParser) define(name string, sym Symbol) {
	lp.res.Symbols[name] = sym
}

func (lp *lineParser) number(what string) float64 {
	tok := lp.next()
	if tok.typ != tokNumber {
		lp.errorf(tok, "expected %s", what)
	}
	f, err := strconv.ParseFloat(tok.val, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			lp.errorf(tok, "number out of range for %s", what)
		}
		lp.errorf(tok, "invalid number for %s", what)
	}
	return f
}

func (lp *lineParser) numbers(n int, what string) []float64 {
	fs := make([]float64, n)
	for i := range fs {
		fs[i] = lp.number(what)
	}
	return fs
}

func isSymbol(tok token) bool {
	return tok.typ == tokID || tok.typ == tokXYZ
}

func (lp *lineParser) symbol(what string) string {
	tok := lp.next()
	if !isSymbol(tok) {
		lp.errorf(tok, "expected %s", what)
	}
	return tok.val
}

// optSymbol consumes a symbol if one comes next. It returns "" otherwise.
func (lp *lineParser) optSymbol() string {
	if isSymbol(lp.peek()) {
		return lp.next().val
	}
	return ""
}

func (lp *lineParser) text(what string) string {
	tok := lp.next()
	if !isSymbol(tok) && tok.typ != tokString {
		lp.errorf(tok, "expected %s", what)
	}
	return tok.val
}

// optString consumes a string token (such as ".png") if one comes next.
func (lp *lineParser) optString() string {
	if lp.peek().typ == tokString {
		return lp.next().val
	}
	return ""
}

// optText consumes a symbol or string if one comes next. It returns ""
// otherwise.
func (lp *lineParser) optText() string {
	if tok := lp.peek(); isSymbol(tok) || tok.typ == tokString {
		return lp.next().val
	}
	return ""
}

func (lp *lineParser) expect(typ tokType, what string) token {
	tok := lp.next()
	if tok.typ != typ {
		lp.errorf(tok, "expected %s", what)
	}
	return tok
}
