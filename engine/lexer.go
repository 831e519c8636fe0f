package engine

import (
	"fmt"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenAtom
	tokenVariable
	tokenInteger
	tokenFloat
	tokenString
	tokenOpen
	tokenClose
	tokenOpenList
	tokenCloseList
	tokenComma
	tokenBar
	tokenEnd
)

func (k tokenKind) String() string {
	return [...]string{
		tokenEOF:       "eof",
		tokenAtom:      "atom",
		tokenVariable:  "variable",
		tokenInteger:   "integer",
		tokenFloat:     "float",
		tokenString:    "string",
		tokenOpen:      "open",
		tokenClose:     "close",
		tokenOpenList:  "open list",
		tokenCloseList: "close list",
		tokenComma:     "comma",
		tokenBar:       "bar",
		tokenEnd:       "end",
	}[k]
}

type token struct {
	kind tokenKind
	val  string
}

func (t token) String() string {
	if t.val == "" {
		return t.kind.String()
	}
	return fmt.Sprintf("%s %q", t.kind, t.val)
}

const graphicChars = `#$&*+-./:<=>?@^~\`

type lexer struct {
	input []rune
	pos   int
}

func newLexer(input string) *lexer {
	return &lexer{input: []rune(input)}
}

func (l *lexer) rune() (rune, bool) {
	if l.pos >= len(l.input) {
		return 0, false
	}
	return l.input[l.pos], true
}

func (l *lexer) runeAt(off int) (rune, bool) {
	if l.pos+off >= len(l.input) {
		return 0, false
	}
	return l.input[l.pos+off], true
}

// Next returns the next token.
func (l *lexer) Next() (token, error) {
	if err := l.skipLayout(); err != nil {
		return token{}, err
	}
	r, ok := l.rune()
	if !ok {
		return token{kind: tokenEOF}, nil
	}
	switch {
	case r == '(':
		l.pos++
		return token{kind: tokenOpen, val: "("}, nil
	case r == ')':
		l.pos++
		return token{kind: tokenClose, val: ")"}, nil
	case r == '[':
		l.pos++
		return token{kind: tokenOpenList, val: "["}, nil
	case r == ']':
		l.pos++
		return token{kind: tokenCloseList, val: "]"}, nil
	case r == ',':
		l.pos++
		return token{kind: tokenComma, val: ","}, nil
	case r == '|':
		l.pos++
		return token{kind: tokenBar, val: "|"}, nil
	case r == '!' || r == ';':
		l.pos++
		return token{kind: tokenAtom, val: string(r)}, nil
	case r == '\'':
		return l.quoted('\'')
	case r == '"':
		t, err := l.quoted('"')
		if err != nil {
			return t, err
		}
		t.kind = tokenString
		return t, nil
	case unicode.IsDigit(r):
		return l.number()
	case r == '_' || unicode.IsUpper(r):
		return token{kind: tokenVariable, val: l.ident()}, nil
	case unicode.IsLower(r):
		return token{kind: tokenAtom, val: l.ident()}, nil
	case strings.ContainsRune(graphicChars, r):
		return l.graphic()
	default:
		return token{}, SyntaxError(fmt.Errorf("unexpected character: %q", r))
	}
}

func (l *lexer) skipLayout() error {
	for {
		r, ok := l.rune()
		if !ok {
			return nil
		}
		switch {
		case unicode.IsSpace(r):
			l.pos++
		case r == '%':
			for {
				r, ok := l.rune()
				if !ok || r == '\n' {
					break
				}
				l.pos++
			}
		case r == '/':
			if next, ok := l.runeAt(1); !ok || next != '*' {
				return nil
			}
			l.pos += 2
			for {
				r, ok := l.rune()
				if !ok {
					return SyntaxError(fmt.Errorf("unterminated block comment"))
				}
				if r == '*' {
					if next, ok := l.runeAt(1); ok && next == '/' {
						l.pos += 2
						break
					}
				}
				l.pos++
			}
		default:
			return nil
		}
	}
}

func (l *lexer) ident() string {
	start := l.pos
	for {
		r, ok := l.rune()
		if !ok || (r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r)) {
			break
		}
		l.pos++
	}
	return string(l.input[start:l.pos])
}

func (l *lexer) number() (token, error) {
	start := l.pos
	kind := tokenInteger
	l.digits()
	if r, ok := l.rune(); ok && r == '.' {
		if d, ok := l.runeAt(1); ok && unicode.IsDigit(d) {
			kind = tokenFloat
			l.pos++
			l.digits()
		}
	}
	if r, ok := l.rune(); ok && (r == 'e' || r == 'E') {
		off := 1
		if s, ok := l.runeAt(1); ok && (s == '+' || s == '-') {
			off = 2
		}
		if d, ok := l.runeAt(off); ok && unicode.IsDigit(d) {
			kind = tokenFloat
			l.pos += off
			l.digits()
		}
	}
	return token{kind: kind, val: string(l.input[start:l.pos])}, nil
}

func (l *lexer) digits() {
	for {
		r, ok := l.rune()
		if !ok || !unicode.IsDigit(r) {
			return
		}
		l.pos++
	}
}

// graphic scans a run of graphic characters. A solitary period followed by
// layout or the end of the input is the clause terminator.
func (l *lexer) graphic() (token, error) {
	start := l.pos
	for {
		r, ok := l.rune()
		if !ok || !strings.ContainsRune(graphicChars, r) {
			break
		}
		l.pos++
	}
	val := string(l.input[start:l.pos])
	if val == "." {
		r, ok := l.rune()
		if !ok || unicode.IsSpace(r) || r == '%' {
			return token{kind: tokenEnd, val: "."}, nil
		}
	}
	return token{kind: tokenAtom, val: val}, nil
}

func (l *lexer) quoted(quote rune) (token, error) {
	l.pos++ // opening quote
	var sb strings.Builder
	for {
		r, ok := l.rune()
		if !ok {
			return token{}, SyntaxError(fmt.Errorf("unterminated quoted token"))
		}
		l.pos++
		switch r {
		case quote:
			if next, ok := l.rune(); ok && next == quote {
				l.pos++
				sb.WriteRune(quote)
				continue
			}
			return token{kind: tokenAtom, val: sb.String()}, nil
		case '\\':
			e, ok := l.rune()
			if !ok {
				return token{}, SyntaxError(fmt.Errorf("unterminated escape sequence"))
			}
			l.pos++
			switch e {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			case 'r':
				sb.WriteRune('\r')
			case 'a':
				sb.WriteRune('\a')
			case 'b':
				sb.WriteRune('\b')
			case 'f':
				sb.WriteRune('\f')
			case 'v':
				sb.WriteRune('\v')
			case '\\', '\'', '"', '`':
				sb.WriteRune(e)
			case '\n':
				// line continuation
			default:
				return token{}, SyntaxError(fmt.Errorf("unknown escape sequence: \\%c", e))
			}
		default:
			sb.WriteRune(r)
		}
	}
}
