// Package cssom implements the CSS Syntax Level 3 block/rule parser
// (spec.md §4.B): it groups the flat token.Token stream into a rule tree
// (component values, at-rules, qualified rules, declarations) with
// positional provenance, and recovers from malformed input by dropping
// only the smallest enclosing sub-tree.
package cssom

import "github.com/tdewolff-labs/cqpolyfill/token"

// Node is one element of a parsed rule tree: a token.Token wrapped as a
// Leaf, or one of the compound constructs below (spec.md §3 "Node").
type Node interface {
	Pos() token.Pos
	isNode()
}

// Leaf wraps a single token that did not introduce a nested block or
// function — an identifier, a number, a delimiter, punctuation, etc.
type Leaf struct {
	token.Token
}

func (l Leaf) Pos() token.Pos { return l.Token.Pos }
func (Leaf) isNode()          {}

// Block is a simple block: the run of component values between a matching
// bracket pair. OpenKind is one of KindLeftParen, KindLeftBrace,
// KindLeftBracket and determines which closing bracket re-serialization
// must use (spec.md invariant: "Block bracket pairs nest correctly").
// What a Block's Children mean (declaration-list, rule-list, or opaque
// values) is determined by the caller that re-interprets it, not by Block
// itself — spec.md §3 calls this out explicitly ("simple-block,
// style-block, declaration-list, or rule-list").
type Block struct {
	OpenKind token.Kind
	Children []Node
	pos      token.Pos
}

func (b Block) Pos() token.Pos { return b.pos }
func (Block) isNode()          {}

// CloseKind returns the bracket kind that closes this block.
func (b Block) CloseKind() token.Kind {
	switch b.OpenKind {
	case token.KindLeftParen:
		return token.KindRightParen
	case token.KindLeftBracket:
		return token.KindRightBracket
	default:
		return token.KindRightBrace
	}
}

// Function is a function-node: an identifier immediately followed by '(',
// its arguments, and a matching ')'.
type Function struct {
	Name     string
	Children []Node
	pos      token.Pos
}

func (f Function) Pos() token.Pos { return f.pos }
func (Function) isNode()          {}

// Compound is a rule-tree item at rule-list / declaration-list granularity.
type Compound interface {
	Node
	isCompound()
}

// AtRule is an at-rule: "@" name, a prelude of component values, and
// either a trailing simple block (Block != nil) or none (rule terminated
// by ';' or EOF).
type AtRule struct {
	Name    string
	Prelude []Node
	Block   *Block
	pos     token.Pos
}

func (r AtRule) Pos() token.Pos { return r.pos }
func (AtRule) isNode()          {}
func (AtRule) isCompound()      {}

// QualifiedRule is a prelude of component values (usually a selector list)
// followed by a mandatory {}-block.
type QualifiedRule struct {
	Prelude []Node
	Block   Block
	pos     token.Pos
}

func (r QualifiedRule) Pos() token.Pos { return r.pos }
func (QualifiedRule) isNode()          {}
func (QualifiedRule) isCompound()      {}

// Declaration is "name: value" with an optional trailing "!important".
type Declaration struct {
	Name      string
	Value     []Node
	Important bool
	pos       token.Pos
}

func (d Declaration) Pos() token.Pos { return d.pos }
func (Declaration) isNode()          {}
func (Declaration) isCompound()      {}

// Invalid marks a sub-tree dropped by error recovery (spec.md §4.B
// "Recovery"). Message is a short, non-localized diagnostic, meant for the
// diagnostic sink rather than end users.
type Invalid struct {
	pos     token.Pos
	Message string
}

func (i Invalid) Pos() token.Pos { return i.pos }
func (Invalid) isNode()          {}
func (Invalid) isCompound()      {}

// Whitespace is a retained top-level whitespace run (only produced when a
// caller asks ParseRuleList/ParseDeclarationList/ParseStylesheet not to
// skip whitespace).
type Whitespace struct {
	pos token.Pos
}

func (w Whitespace) Pos() token.Pos { return w.pos }
func (Whitespace) isNode()          {}
func (Whitespace) isCompound()      {}
