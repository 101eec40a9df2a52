package condition

import (
	"errors"
	"fmt"

	"github.com/tdewolff-labs/cqpolyfill/cssom"
	"github.com/tdewolff-labs/cqpolyfill/token"
	"github.com/tdewolff-labs/cqpolyfill/utils"
)

// ErrMixedCombinators is returned when a single <condition> level mixes
// "and" and "or" (spec.md §4.C: "a parse error").
var ErrMixedCombinators = errors.New("condition: cannot mix 'and' and 'or' at the same level")

var errInvalidCondition = errors.New("condition: not a valid <condition>")
var errInvalidFeature = errors.New("condition: not a valid media feature")
var errInvalidValue = errors.New("condition: not a valid feature value")

// ParseCondition implements the generic <condition> grammar:
//
//	<condition> = <not> | <in-parens> [ (<and> <in-parens>)* | (<or> <in-parens>)* ]
//	<not>       = "not" <in-parens>
//	<in-parens> = <block-node with "("> | <function-node>
func ParseCondition(nodes []cssom.Node) (Node, error) {
	items := significant(nodes)
	if len(items) == 0 {
		return nil, errInvalidCondition
	}

	if id, ok := asIdent(items[0]); ok && utils.AsciiLower(id) == "not" {
		if len(items) != 2 {
			return nil, errInvalidCondition
		}
		child, err := parseInParens(items[1])
		if err != nil {
			return nil, err
		}
		return Not{Child: child}, nil
	}

	if len(items)%2 == 0 {
		return nil, errInvalidCondition
	}

	result, err := parseInParens(items[0])
	if err != nil {
		return nil, err
	}

	combinator := ""
	for i := 1; i < len(items); i += 2 {
		connIdent, ok := asIdent(items[i])
		if !ok {
			return nil, errInvalidCondition
		}
		conn := utils.AsciiLower(connIdent)
		if conn != "and" && conn != "or" {
			return nil, errInvalidCondition
		}
		if combinator == "" {
			combinator = conn
		} else if combinator != conn {
			return nil, ErrMixedCombinators
		}

		operand, err := parseInParens(items[i+1])
		if err != nil {
			return nil, err
		}
		if conn == "and" {
			result = And{Left: result, Right: operand}
		} else {
			result = Or{Left: result, Right: operand}
		}
	}
	return result, nil
}

// parseInParens handles one <in-parens>: a "(" block, tried first as a
// nested condition (grouping) and otherwise left as an unresolved Literal
// for a later feature-reinterpretation pass; or a function-node, which this
// core never resolves (style() queries are a declared non-goal).
func parseInParens(n cssom.Node) (Node, error) {
	switch v := n.(type) {
	case cssom.Block:
		if v.OpenKind != token.KindLeftParen {
			return nil, errInvalidCondition
		}
		if inner, err := ParseCondition(v.Children); err == nil {
			return inner, nil
		}
		return Literal{Value: Value{Kind: ValueUnknown}, Raw: v.Children}, nil
	case cssom.Function:
		return Literal{Value: Value{Kind: ValueUnknown}}, nil
	default:
		return nil, errInvalidCondition
	}
}

// ParseMediaFeature parses the contents of one "(...)" block as a size
// feature expression: boolean, plain, or single-/double-sided range form
// (spec.md §4.D).
func ParseMediaFeature(nodes []cssom.Node) (Node, error) {
	items := significant(nodes)
	if len(items) == 0 {
		return nil, errInvalidFeature
	}

	if len(items) == 1 {
		id, ok := asIdent(items[0])
		if !ok {
			return nil, errInvalidFeature
		}
		feat, ok := ParseSizeFeature(id)
		if !ok {
			return nil, fmt.Errorf("%w: unknown feature %q", errInvalidFeature, id)
		}
		return FeatureRef{Feature: feat}, nil
	}

	if id, ok := asIdent(items[0]); ok {
		if colon, ok2 := items[1].(cssom.Leaf); ok2 && colon.Kind == token.KindColon {
			return parsePlainFeature(id, items[2:])
		}
	}

	return parseRangeFeature(items)
}

func parsePlainFeature(name string, valueItems []cssom.Node) (Node, error) {
	op := OpEq
	lname := utils.AsciiLower(name)
	switch {
	case len(lname) > 4 && lname[:4] == "min-":
		op = OpGe
		name = name[4:]
	case len(lname) > 4 && lname[:4] == "max-":
		op = OpLe
		name = name[4:]
	}
	feat, ok := ParseSizeFeature(name)
	if !ok {
		return nil, fmt.Errorf("%w: unknown feature %q", errInvalidFeature, name)
	}
	val, err := parseValue(valueItems)
	if err != nil {
		return nil, err
	}
	return Compare{Op: op, Left: FeatureRef{Feature: feat}, Right: Literal{Value: val}}, nil
}

// parseRangeFeature handles the single- and double-sided range forms by
// locating the feature identifier among items and treating everything on
// either side of it as an operator-prefixed or operator-suffixed value.
func parseRangeFeature(items []cssom.Node) (Node, error) {
	featIdx := -1
	var feat SizeFeature
	for i, it := range items {
		if id, ok := asIdent(it); ok {
			if f, ok2 := ParseSizeFeature(id); ok2 {
				featIdx, feat = i, f
				break
			}
		}
	}
	if featIdx == -1 {
		return nil, errInvalidFeature
	}

	left, right := items[:featIdx], items[featIdx+1:]
	switch {
	case len(left) == 0 && len(right) > 0:
		op, used, ok := consumeOp(right, 0)
		if !ok {
			return nil, errInvalidFeature
		}
		val, err := parseValue(right[used:])
		if err != nil {
			return nil, err
		}
		return Compare{Op: op, Left: FeatureRef{Feature: feat}, Right: Literal{Value: val}}, nil

	case len(right) == 0 && len(left) > 0:
		op, used, ok := consumeOpFromEnd(left)
		if !ok {
			return nil, errInvalidFeature
		}
		val, err := parseValue(left[:len(left)-used])
		if err != nil {
			return nil, err
		}
		return Compare{Op: op.flip(), Left: FeatureRef{Feature: feat}, Right: Literal{Value: val}}, nil

	case len(left) > 0 && len(right) > 0:
		op1, used1, ok1 := consumeOpFromEnd(left)
		op2, used2, ok2 := consumeOp(right, 0)
		if !ok1 || !ok2 {
			return nil, errInvalidFeature
		}
		if !(op1.lessish() && op2.lessish()) && !(op1.greaterish() && op2.greaterish()) {
			return nil, fmt.Errorf("%w: mismatched range directions", errInvalidFeature)
		}
		v1, err := parseValue(left[:len(left)-used1])
		if err != nil {
			return nil, err
		}
		v2, err := parseValue(right[used2:])
		if err != nil {
			return nil, err
		}
		lo := Compare{Op: op1.flip(), Left: FeatureRef{Feature: feat}, Right: Literal{Value: v1}}
		hi := Compare{Op: op2, Left: FeatureRef{Feature: feat}, Right: Literal{Value: v2}}
		return And{Left: lo, Right: hi}, nil

	default:
		return nil, errInvalidFeature
	}
}

// consumeOp reads an operator starting at items[i], returning how many
// items it spanned ("<=" is two adjacent delim tokens).
func consumeOp(items []cssom.Node, i int) (Op, int, bool) {
	if i >= len(items) {
		return 0, 0, false
	}
	d, ok := asDelim(items[i])
	if !ok {
		return 0, 0, false
	}
	switch d {
	case "=":
		return OpEq, 1, true
	case "<":
		if i+1 < len(items) {
			if d2, ok2 := asDelim(items[i+1]); ok2 && d2 == "=" {
				return OpLe, 2, true
			}
		}
		return OpLt, 1, true
	case ">":
		if i+1 < len(items) {
			if d2, ok2 := asDelim(items[i+1]); ok2 && d2 == "=" {
				return OpGe, 2, true
			}
		}
		return OpGt, 1, true
	default:
		return 0, 0, false
	}
}

// consumeOpFromEnd mirrors consumeOp but reads the operator ending at the
// last item of items.
func consumeOpFromEnd(items []cssom.Node) (Op, int, bool) {
	n := len(items)
	if n == 0 {
		return 0, 0, false
	}
	last, ok := asDelim(items[n-1])
	if !ok {
		return 0, 0, false
	}
	if last == "=" && n >= 2 {
		if prev, ok2 := asDelim(items[n-2]); ok2 && (prev == "<" || prev == ">") {
			if prev == "<" {
				return OpLe, 2, true
			}
			return OpGe, 2, true
		}
	}
	switch last {
	case "=":
		return OpEq, 1, true
	case "<":
		return OpLt, 1, true
	case ">":
		return OpGt, 1, true
	default:
		return 0, 0, false
	}
}

func parseValue(items []cssom.Node) (Value, error) {
	items = significant(items)
	switch len(items) {
	case 1:
		leaf, ok := items[0].(cssom.Leaf)
		if !ok {
			return Value{}, errInvalidValue
		}
		switch leaf.Kind {
		case token.KindNumber:
			return Value{Kind: ValueNumber, Number: leaf.Number}, nil
		case token.KindDimension:
			if !isAllowedUnit(leaf.Unit) {
				return Value{}, fmt.Errorf("%w: unit %q not allowed in a condition", errInvalidValue, leaf.Unit)
			}
			return Value{Kind: ValueDimension, Number: leaf.Number, Unit: utils.AsciiLower(leaf.Unit)}, nil
		case token.KindIdent:
			lname := utils.AsciiLower(leaf.Value)
			if lname == "portrait" || lname == "landscape" {
				return Value{Kind: ValueOrientation, Orientation: lname}, nil
			}
		}
		return Value{}, errInvalidValue
	case 3:
		n1, ok1 := asNumber(items[0])
		slash, ok2 := asDelim(items[1])
		n2, ok3 := asNumber(items[2])
		if ok1 && ok2 && slash == "/" && ok3 && n2 != 0 {
			return Value{Kind: ValueNumber, Number: n1 / n2}, nil
		}
		return Value{}, errInvalidValue
	default:
		return Value{}, errInvalidValue
	}
}

func asIdent(n cssom.Node) (string, bool) {
	l, ok := n.(cssom.Leaf)
	if !ok || l.Kind != token.KindIdent {
		return "", false
	}
	return l.Value, true
}

func asDelim(n cssom.Node) (string, bool) {
	l, ok := n.(cssom.Leaf)
	if !ok || l.Kind != token.KindDelim {
		return "", false
	}
	return l.Value, true
}

func asNumber(n cssom.Node) (float64, bool) {
	l, ok := n.(cssom.Leaf)
	if !ok || l.Kind != token.KindNumber {
		return 0, false
	}
	return l.Number, true
}

// significant drops whitespace leaves, the only Node kind ParseCondition
// and ParseMediaFeature never care about.
func significant(nodes []cssom.Node) []cssom.Node {
	var out []cssom.Node
	for _, n := range nodes {
		if l, ok := n.(cssom.Leaf); ok && l.Kind == token.KindWhitespace {
			continue
		}
		out = append(out, n)
	}
	return out
}
