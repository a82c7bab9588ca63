// Package scanner implements the lexer that turns Lox source bytes into a
// stream of tokens for the parser to consume.
package scanner

import (
	"context"
	"fmt"
	"go/scanner"
	gotoken "go/token"
	"os"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/mna/lox/lang/token"
)

// Error and ErrorList are the errors produced by the scanner (and reused by
// the parser and resolver for the same reason the teacher reuses them: a
// positioned, sortable, aggregatable error list is exactly what go/scanner
// already provides, and nothing in the example corpus offers a better fit).
type (
	Error     = scanner.Error
	ErrorList = scanner.ErrorList
)

// PrintError prints err (a single Error or an ErrorList) to w.
var PrintError = scanner.PrintError

// TokenAndValue combines a token kind with its lexeme/literal payload.
type TokenAndValue struct {
	Token token.Token
	Value token.Value
}

// ScanFiles reads and tokenizes each of the given source files and returns
// the tokens grouped by file, alongside any scan errors found across all of
// them. The returned error, if non-nil, is a scanner.ErrorList (so callers
// may inspect every error found, not just the first).
func ScanFiles(ctx context.Context, files ...string) (*token.FileSet, [][]TokenAndValue, error) {
	if len(files) == 0 {
		return nil, nil, nil
	}

	var (
		s      Scanner
		tokVal token.Value
		el     ErrorList
	)

	fs := token.NewFileSet()
	tokensByFile := make([][]TokenAndValue, len(files))
	for i, file := range files {
		b, err := os.ReadFile(file)
		if err != nil {
			el.Add(gotoken.Position{Filename: file}, err.Error())
			continue
		}

		f := fs.AddFile(file, len(b))
		s.Init(f, b, el.Add)
		for {
			tok := s.Scan(&tokVal)
			tokensByFile[i] = append(tokensByFile[i], TokenAndValue{Token: tok, Value: tokVal})
			if tok == token.EOF {
				break
			}
		}
	}
	el.Sort()
	return fs, tokensByFile, el.Err()
}

// ScanSource tokenizes a single in-memory chunk (e.g. a REPL line), reporting
// its position under name.
func ScanSource(name string, src []byte) (*token.File, []TokenAndValue, error) {
	var (
		s      Scanner
		tokVal token.Value
		el     ErrorList
	)

	f := &token.File{Name: name, Size: len(src)}
	s.Init(f, src, el.Add)

	var toks []TokenAndValue
	for {
		tok := s.Scan(&tokVal)
		toks = append(toks, TokenAndValue{Token: tok, Value: tokVal})
		if tok == token.EOF {
			break
		}
	}
	return f, toks, el.Err()
}

// Scanner tokenizes a single source chunk for the parser to consume.
type Scanner struct {
	// immutable state after Init
	file *token.File
	src  []byte
	err  func(pos gotoken.Position, msg string)

	// mutable scanning state
	cur       rune // current character, -1 at EOF
	off       int  // byte offset of cur
	roff      int  // byte offset right after cur
	line, col int  // 1-based line/col of cur
}

// Init initializes (or re-initializes) the scanner to tokenize src, reporting
// positions against file and errors through errHandler.
func (s *Scanner) Init(file *token.File, src []byte, errHandler func(gotoken.Position, string)) {
	s.file = file
	s.src = src
	s.err = errHandler

	s.off = 0
	s.roff = 0
	s.line = 1
	s.col = 0 // advance() below brings it to 1
	s.cur = ' '
	s.advance()
}

// peek returns the byte following the current character without advancing
// the scanner, or 0 at EOF.
func (s *Scanner) peek() byte {
	if s.roff < len(s.src) {
		return s.src[s.roff]
	}
	return 0
}

func (s *Scanner) advance() {
	if s.cur == '\n' {
		s.line++
		s.col = 0
	}

	if s.roff >= len(s.src) {
		s.off = len(s.src)
		s.cur = -1
		return
	}

	s.off = s.roff
	r, w := rune(s.src[s.roff]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRune(s.src[s.roff:])
		if r == utf8.RuneError && w == 1 {
			s.error(s.off, "illegal UTF-8 encoding")
		}
	}
	s.roff += w
	s.cur = r
	s.col++
}

func (s *Scanner) pos() token.Pos { return token.MakePos(s.line, s.col) }

func (s *Scanner) error(off int, msg string) {
	if s.err == nil {
		return
	}
	name := ""
	if s.file != nil {
		name = s.file.Name
	}
	s.err(gotoken.Position{Filename: name, Offset: off, Line: s.line, Column: s.col}, msg)
}

func (s *Scanner) errorf(off int, format string, args ...any) {
	s.error(off, fmt.Sprintf(format, args...))
}

// advanceIf consumes the current character and reports true if it equals b,
// otherwise it leaves the scanner untouched and reports false.
func (s *Scanner) advanceIf(b byte) bool {
	if s.cur == rune(b) {
		s.advance()
		return true
	}
	return false
}

func isDigit(r rune) bool    { return '0' <= r && r <= '9' }
func isLetter(r rune) bool   { return r == '_' || unicode.IsLetter(r) }
func isAlphanum(r rune) bool { return isLetter(r) || isDigit(r) }

func (s *Scanner) skipWhitespaceAndComments() {
	for {
		switch {
		case s.cur == ' ' || s.cur == '\t' || s.cur == '\r' || s.cur == '\n':
			s.advance()
		case s.cur == '/' && s.peek() == '/':
			for s.cur != '\n' && s.cur != -1 {
				s.advance()
			}
		default:
			return
		}
	}
}

// Scan returns the next token, filling tokVal with its lexeme and literal
// payload.
func (s *Scanner) Scan(tokVal *token.Value) (tok token.Token) {
	s.skipWhitespaceAndComments()

	pos := s.pos()
	start := s.off

	switch cur := s.cur; {
	case isLetter(cur):
		for isAlphanum(s.cur) {
			s.advance()
		}
		lit := string(s.src[start:s.off])
		tok = token.LookupIdent(lit)
		*tokVal = token.Value{Pos: pos, Raw: lit}

	case isDigit(cur):
		tok = token.NUMBER
		for isDigit(s.cur) {
			s.advance()
		}
		if s.cur == '.' && isDigit(rune(s.peek())) {
			s.advance() // consume '.'
			for isDigit(s.cur) {
				s.advance()
			}
		}
		lit := string(s.src[start:s.off])
		n, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			s.errorf(start, "invalid number literal %q: %s", lit, err)
		}
		*tokVal = token.Value{Pos: pos, Raw: lit, Number: n}

	case cur == '"':
		tok = token.STRING
		lit := s.string()
		*tokVal = token.Value{Pos: pos, Raw: lit}

	default:
		s.advance()
		switch cur {
		case '(':
			tok = token.LPAREN
		case ')':
			tok = token.RPAREN
		case '{':
			tok = token.LBRACE
		case '}':
			tok = token.RBRACE
		case ',':
			tok = token.COMMA
		case '.':
			tok = token.DOT
		case '-':
			tok = token.MINUS
		case '+':
			tok = token.PLUS
		case ';':
			tok = token.SEMICOLON
		case '*':
			tok = token.STAR
		case '/':
			tok = token.SLASH
		case '!':
			tok = token.BANG
			if s.advanceIf('=') {
				tok = token.BANG_EQ
			}
		case '=':
			tok = token.EQ
			if s.advanceIf('=') {
				tok = token.EQ_EQ
			}
		case '<':
			tok = token.LT
			if s.advanceIf('=') {
				tok = token.LE
			}
		case '>':
			tok = token.GT
			if s.advanceIf('=') {
				tok = token.GE
			}
		case -1:
			tok = token.EOF
		default:
			s.errorf(start, "unexpected character %#U", cur)
			tok = token.ILLEGAL
		}
		*tokVal = token.Value{Pos: pos, Raw: string(s.src[start:s.off])}
	}
	return tok
}

// string scans a double-quoted string literal, which may span multiple
// lines, and returns its unescaped content (there is no backslash escaping
// in Lox strings). s.cur is the opening '"' on entry.
func (s *Scanner) string() string {
	start := s.off
	s.advance() // consume opening '"'
	for s.cur != '"' && s.cur != -1 {
		s.advance()
	}
	if s.cur == -1 {
		s.error(start, "unterminated string")
		return string(s.src[start:s.off])
	}
	s.advance() // consume closing '"'
	raw := s.src[start:s.off]
	return string(raw[1 : len(raw)-1])
}
