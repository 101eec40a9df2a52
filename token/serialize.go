package token

import (
	"fmt"
	"strconv"
	"strings"
)

// badPairs lists the token-kind-string pairs that would re-parse
// differently if concatenated directly, per
// https://drafts.csswg.org/css-syntax/#serialization — a "/**/" separator
// is inserted between any such pair when serializing a token stream.
var badPairs = map[[2]string]bool{}

func init() {
	for _, a := range []string{"ident", "at-keyword", "hash", "dimension", "#", "-", "number"} {
		for _, b := range []string{"ident", "function", "url", "number", "percentage", "dimension"} {
			badPairs[[2]string{a, b}] = true
		}
	}
	for _, a := range []string{"ident", "at-keyword", "hash", "dimension"} {
		for _, b := range []string{"-", "-->"} {
			badPairs[[2]string{a, b}] = true
		}
	}
	for _, a := range []string{"#", "-", "number", "@"} {
		for _, b := range []string{"ident", "function", "url"} {
			badPairs[[2]string{a, b}] = true
		}
	}
	for _, b := range []string{"ident", "function", "url", "-"} {
		badPairs[[2]string{"@", b}] = true
	}
	badPairs[[2]string{"|", "|"}] = true
	badPairs[[2]string{"/", "*"}] = true
}

// Serialize concatenates the canonical text of each token in toks, per
// spec.md §4.H, separating adjacent tokens with "/**/" wherever
// concatenating them directly would change how they re-tokenize.
func Serialize(toks []Token) string {
	var b strings.Builder
	var previousKind string
	for _, t := range toks {
		kind := t.Kind.String()
		if t.Kind == KindDelim {
			kind = t.Value
		}
		if badPairs[[2]string{previousKind, kind}] {
			b.WriteString("/**/")
		}
		writeToken(&b, t)
		previousKind = kind
	}
	return b.String()
}

func writeToken(b *strings.Builder, t Token) {
	switch t.Kind {
	case KindWhitespace:
		b.WriteString(t.Value)
	case KindDelim:
		b.WriteString(t.Value)
	case KindComma:
		b.WriteString(",")
	case KindColon:
		b.WriteString(":")
	case KindSemicolon:
		b.WriteString(";")
	case KindLeftParen:
		b.WriteString("(")
	case KindRightParen:
		b.WriteString(")")
	case KindLeftBrace:
		b.WriteString("{")
	case KindRightBrace:
		b.WriteString("}")
	case KindLeftBracket:
		b.WriteString("[")
	case KindRightBracket:
		b.WriteString("]")
	case KindCDO:
		b.WriteString("<!--")
	case KindCDC:
		b.WriteString("-->")
	case KindIdent:
		b.WriteString(serializeIdentifier(t.Value))
	case KindAtKeyword:
		b.WriteString("@")
		b.WriteString(serializeIdentifier(t.Value))
	case KindFunction:
		b.WriteString(serializeIdentifier(t.Value))
		b.WriteString("(")
	case KindHash:
		b.WriteString("#")
		if t.HashIsIdent {
			b.WriteString(serializeIdentifier(t.Value))
		} else {
			b.WriteString(serializeName(t.Value))
		}
	case KindString:
		b.WriteString(`"`)
		b.WriteString(serializeStringValue(t.Value))
		b.WriteString(`"`)
	case KindBadString:
		b.WriteString(`"`)
		b.WriteString(serializeStringValue(t.Value))
	case KindURL:
		b.WriteString("url(")
		b.WriteString(serializeURL(t.Value))
		b.WriteString(")")
	case KindBadURL:
		b.WriteString("url(")
	case KindNumber:
		b.WriteString(numericText(t))
	case KindPercentage:
		b.WriteString(numericText(t))
		b.WriteString("%")
	case KindDimension:
		b.WriteString(numericText(t))
		if strings.HasPrefix(t.Unit, "e") && (len(t.Unit) == 1 || t.Unit[1] == '-' || (t.Unit[1] >= '0' && t.Unit[1] <= '9')) {
			// Disambiguate a unit starting with an exponent-looking "e"/"e-"
			// from scientific notation by escaping its first letter.
			b.WriteString("\\65 ")
			b.WriteString(serializeName(t.Unit[1:]))
		} else {
			b.WriteString(serializeIdentifier(t.Unit))
		}
	case KindEOF:
		// nothing
	}
}

func numericText(t Token) string {
	if t.Representation != "" {
		return t.Representation
	}
	return strconv.FormatFloat(t.Number, 'g', -1, 64)
}

// serializeIdentifier escapes value so it re-tokenizes as an Ident whose
// Value equals value, per https://drafts.csswg.org/cssom/#serialize-an-identifier.
func serializeIdentifier(value string) string {
	if value == "" {
		return ""
	}
	if value == "-" {
		return `\-`
	}
	if strings.HasPrefix(value, "--") {
		return "--" + serializeName(value[2:])
	}

	var result strings.Builder
	rest := value
	if value[0] == '-' {
		result.WriteByte('-')
		rest = value[1:]
	}
	first := true
	for _, c := range rest {
		if first {
			first = false
			result.WriteString(escapeFirstNameChar(c))
			continue
		}
		result.WriteString(escapeNameChar(c))
	}
	return result.String()
}

func serializeName(value string) string {
	var b strings.Builder
	for _, c := range value {
		b.WriteString(escapeNameChar(c))
	}
	return b.String()
}

func isAsciiAlpha(c rune) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func escapeFirstNameChar(c rune) string {
	switch {
	case isAsciiAlpha(c):
		return string(c)
	case c == '\n':
		return `\A `
	case c == '\r':
		return `\D `
	case c == '\f':
		return `\C `
	case '0' <= c && c <= '9':
		return fmt.Sprintf("\\%X ", c)
	case c > 0x7F:
		return string(c)
	default:
		return "\\" + string(c)
	}
}

func escapeNameChar(c rune) string {
	switch {
	case isAsciiAlpha(c) || ('0' <= c && c <= '9') || c == '-':
		return string(c)
	case c == '\n':
		return `\A `
	case c == '\r':
		return `\D `
	case c == '\f':
		return `\C `
	case c > 0x7F:
		return string(c)
	default:
		return "\\" + string(c)
	}
}

func serializeStringValue(value string) string {
	var b strings.Builder
	for _, c := range value {
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\A `)
		case '\r':
			b.WriteString(`\D `)
		case '\f':
			b.WriteString(`\C `)
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

func serializeURL(value string) string {
	var b strings.Builder
	for _, c := range value {
		switch c {
		case '\'':
			b.WriteString(`\'`)
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case ' ':
			b.WriteString(`\ `)
		case '\t':
			b.WriteString(`\9 `)
		case '\n':
			b.WriteString(`\A `)
		case '\r':
			b.WriteString(`\D `)
		case '\f':
			b.WriteString(`\C `)
		case '(':
			b.WriteString(`\(`)
		case ')':
			b.WriteString(`\)`)
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}
