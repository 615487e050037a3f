package expr

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokName
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPow
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	kind tokenKind
	pos  int
	text string
	num  float64
}

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokNumber:
		return "number"
	case tokName:
		return "name"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokComma:
		return "','"
	default:
		return "operator"
	}
}

// namePrefixes are stripped from names so numpy-style input parses.
var namePrefixes = []string{"np.", "numpy.", "math."}

func tokenize(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case isDigit(c) || (c == '.' && i+1 < len(src) && isDigit(src[i+1])):
			start := i
			i = scanNumber(src, i)
			v, err := strconv.ParseFloat(src[start:i], 64)
			if err != nil {
				return nil, &SyntaxError{Pos: start, Msg: "malformed number " + strconv.Quote(src[start:i])}
			}
			toks = append(toks, token{kind: tokNumber, pos: start, text: src[start:i], num: v})
		case isNameStart(rune(c)):
			start := i
			for i < len(src) && (isNameChar(rune(src[i])) || (src[i] == '.' && i+1 < len(src) && isNameStart(rune(src[i+1])))) {
				i++
			}
			name := src[start:i]
			for _, p := range namePrefixes {
				name = strings.TrimPrefix(name, p)
			}
			toks = append(toks, token{kind: tokName, pos: start, text: name})
		case c == '*' && i+1 < len(src) && src[i+1] == '*':
			toks = append(toks, token{kind: tokPow, pos: i, text: "**"})
			i += 2
		default:
			kind, ok := singleCharTokens[c]
			if !ok {
				r, _ := utf8.DecodeRuneInString(src[i:])
				return nil, &SyntaxError{Pos: i, Msg: "unexpected character " + strconv.QuoteRune(r)}
			}
			toks = append(toks, token{kind: kind, pos: i, text: string(c)})
			i++
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(src)})
	return toks, nil
}

var singleCharTokens = map[byte]tokenKind{
	'+': tokPlus,
	'-': tokMinus,
	'*': tokStar,
	'/': tokSlash,
	'^': tokPow,
	'(': tokLParen,
	')': tokRParen,
	',': tokComma,
}

func scanNumber(src string, i int) int {
	for i < len(src) && isDigit(src[i]) {
		i++
	}
	if i < len(src) && src[i] == '.' {
		i++
		for i < len(src) && isDigit(src[i]) {
			i++
		}
	}
	if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
		j := i + 1
		if j < len(src) && (src[j] == '+' || src[j] == '-') {
			j++
		}
		if j < len(src) && isDigit(src[j]) {
			i = j
			for i < len(src) && isDigit(src[i]) {
				i++
			}
		}
	}
	return i
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isNameStart(r rune) bool { return r == '_' || (r < unicode.MaxASCII && unicode.IsLetter(r)) }

func isNameChar(r rune) bool { return isNameStart(r) || (r >= '0' && r <= '9') }
