// Package token implements the CSS Syntax Level 3 tokenizer and the
// corresponding serializer: it turns a source string into a flat stream of
// lexical tokens, and turns such a stream back into CSS text.
//
// It deliberately stops at the token level. Grouping tokens into a rule
// tree (at-rules, qualified rules, simple blocks, functions) is the job of
// package cssom, one layer up.
package token

// Kind identifies which token variant a Token value holds.
type Kind uint8

const (
	KindWhitespace Kind = iota
	KindString
	KindBadString
	KindLeftParen
	KindRightParen
	KindLeftBrace
	KindRightBrace
	KindLeftBracket
	KindRightBracket
	KindComma
	KindColon
	KindSemicolon
	KindDelim
	KindHash
	KindDimension
	KindPercentage
	KindNumber
	KindCDO
	KindCDC
	KindURL
	KindBadURL
	KindAtKeyword
	KindFunction
	KindIdent
	KindEOF
)

func (k Kind) String() string {
	switch k {
	case KindWhitespace:
		return "whitespace"
	case KindString:
		return "string"
	case KindBadString:
		return "bad-string"
	case KindLeftParen:
		return "("
	case KindRightParen:
		return ")"
	case KindLeftBrace:
		return "{"
	case KindRightBrace:
		return "}"
	case KindLeftBracket:
		return "["
	case KindRightBracket:
		return "]"
	case KindComma:
		return ","
	case KindColon:
		return ":"
	case KindSemicolon:
		return ";"
	case KindDelim:
		return "delim"
	case KindHash:
		return "hash"
	case KindDimension:
		return "dimension"
	case KindPercentage:
		return "percentage"
	case KindNumber:
		return "number"
	case KindCDO:
		return "<!--"
	case KindCDC:
		return "-->"
	case KindURL:
		return "url"
	case KindBadURL:
		return "bad-url"
	case KindAtKeyword:
		return "at-keyword"
	case KindFunction:
		return "function"
	case KindIdent:
		return "ident"
	case KindEOF:
		return "EOF"
	default:
		return "?"
	}
}

// Pos is a line/column position within the original source, 1-based. It is
// provenance for diagnostics, not a byte range: the core only needs enough
// information to report where a tokenization or parse error occurred.
type Pos struct {
	Line, Column int
}

// Token is one lexical unit of the token stream. Exactly one Kind-dependent
// group of fields is meaningful for a given Kind; see the accessor comments
// below. A Token is an immutable value: the tokenizer never mutates one
// after appending it to a stream.
type Token struct {
	Kind Kind
	Pos  Pos

	// Value holds:
	//   KindIdent, KindFunction, KindAtKeyword, KindString, KindBadString,
	//   KindURL, KindBadURL  -> the (unescaped) textual value
	//   KindDelim             -> the single delimiter character
	//   KindHash              -> the (unescaped) hash value, without '#'
	Value string

	// HashIsIdent is only meaningful for KindHash: true if the hash value
	// would itself be a valid identifier (id-selector-shaped), false if it
	// is merely "unrestricted" (e.g. starts with a digit).
	HashIsIdent bool

	// Representation is the raw source text of a numeric token
	// (KindNumber, KindPercentage, KindDimension), preserved so that "3.0"
	// and "3" remain distinguishable on re-serialization.
	Representation string
	// Number is the parsed numeric value for KindNumber, KindPercentage and
	// KindDimension.
	Number float64
	// IsInteger is true when Representation parses as an integer literal
	// (no '.', no exponent), for KindNumber/KindPercentage/KindDimension.
	IsInteger bool
	// Unit is the dimension's unit, lower-cased, for KindDimension only.
	Unit string
}

// String returns a short human-readable tag, useful for error messages
// ("Expected ':' after declaration name, got ident").
func (t Token) String() string {
	return t.Kind.String()
}
