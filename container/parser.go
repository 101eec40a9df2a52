package container

import (
	"errors"
	"fmt"

	"github.com/tdewolff-labs/cqpolyfill/condition"
	"github.com/tdewolff-labs/cqpolyfill/cssom"
	"github.com/tdewolff-labs/cqpolyfill/token"
	"github.com/tdewolff-labs/cqpolyfill/utils"
)

var errEmptyPrelude = errors.New("container: empty @container prelude")

// ParseContainerRule parses the prelude of an @container at-rule:
// "[ident]? <condition>" (spec.md §4.E).
func ParseContainerRule(nodes []cssom.Node) (Rule, error) {
	items := trimWhitespace(nodes)
	if len(items) == 0 {
		return Rule{}, errEmptyPrelude
	}

	name := ""
	rest := items
	// A leading "not" opens the condition itself ("not (width)"), never a name.
	if id, ok := asIdent(items[0]); ok && utils.AsciiLower(id) != "not" {
		lower := utils.AsciiLower(id)
		if IsReservedName(lower) {
			return Rule{}, newErrReservedName(id)
		}
		name = id
		rest = trimWhitespace(items[1:])
	}

	cond, err := condition.ParseCondition(rest)
	if err != nil {
		return Rule{}, fmt.Errorf("container: invalid condition: %w", err)
	}

	lowered := lowerFeatureLiterals(cond)
	features := collectFeatures(lowered, map[condition.SizeFeature]bool{})
	return Rule{Name: name, Condition: lowered, Features: features}, nil
}

// lowerFeatureLiterals walks a condition tree replacing every
// condition.Literal that carries an unresolved raw block (produced by
// condition.ParseCondition when a block didn't parse as a nested condition)
// with the result of retrying it as a media feature, per spec.md §4.E:
// "reinterpreting every leaf ... as a feature block; any leaf that fails
// this reinterpretation becomes Literal(unknown)".
func lowerFeatureLiterals(n condition.Node) condition.Node {
	switch v := n.(type) {
	case condition.Not:
		return condition.Not{Child: lowerFeatureLiterals(v.Child)}
	case condition.And:
		return condition.And{Left: lowerFeatureLiterals(v.Left), Right: lowerFeatureLiterals(v.Right)}
	case condition.Or:
		return condition.Or{Left: lowerFeatureLiterals(v.Left), Right: lowerFeatureLiterals(v.Right)}
	case condition.Compare:
		return condition.Compare{Op: v.Op, Left: lowerFeatureLiterals(v.Left), Right: lowerFeatureLiterals(v.Right)}
	case condition.Literal:
		if v.Raw == nil {
			return v
		}
		if feat, err := condition.ParseMediaFeature(v.Raw); err == nil {
			return feat
		}
		return condition.Literal{Value: condition.Value{Kind: condition.ValueUnknown}}
	default:
		return n
	}
}

func collectFeatures(n condition.Node, out map[condition.SizeFeature]bool) map[condition.SizeFeature]bool {
	switch v := n.(type) {
	case condition.Not:
		collectFeatures(v.Child, out)
	case condition.And:
		collectFeatures(v.Left, out)
		collectFeatures(v.Right, out)
	case condition.Or:
		collectFeatures(v.Left, out)
		collectFeatures(v.Right, out)
	case condition.Compare:
		collectFeatures(v.Left, out)
		collectFeatures(v.Right, out)
	case condition.FeatureRef:
		out[v.Feature] = true
	}
	return out
}

// ParseContainerNameProperty parses the value of a container-name
// declaration. standalone is true when parsing the longhand property
// directly, false when parsing the left side of the shorthand (which
// otherwise has identical grammar).
func ParseContainerNameProperty(nodes []cssom.Node, standalone bool) (NameValue, error) {
	items := trimWhitespace(nodes)
	if len(items) == 0 {
		return NameValue{}, errors.New("container: empty container-name value")
	}
	if kw, ok := asSoleCSSWideKeyword(items); ok {
		return NameValue{CSSWide: kw}, nil
	}
	if len(items) == 1 {
		if id, ok := asIdent(items[0]); ok && utils.AsciiLower(id) == "none" {
			return NameValue{Names: []string{}}, nil
		}
	}
	var names []string
	for _, it := range items {
		id, ok := asIdent(it)
		if !ok {
			return NameValue{}, fmt.Errorf("container: invalid container-name token")
		}
		if IsReservedName(utils.AsciiLower(id)) {
			return NameValue{}, newErrReservedName(id)
		}
		names = append(names, id)
	}
	if len(names) == 0 {
		return NameValue{}, errors.New("container: container-name requires at least one name")
	}
	return NameValue{Names: names}, nil
}

// ParseContainerTypeProperty parses the value of a container-type
// declaration: "size | inline-size | normal | <css-wide>".
func ParseContainerTypeProperty(nodes []cssom.Node, standalone bool) (TypeValue, error) {
	items := trimWhitespace(nodes)
	if len(items) == 0 {
		return TypeValue{}, errors.New("container: empty container-type value")
	}
	if kw, ok := asSoleCSSWideKeyword(items); ok {
		return TypeValue{CSSWide: kw}, nil
	}
	var kinds []TypeKeyword
	for _, it := range items {
		id, ok := asIdent(it)
		if !ok {
			return TypeValue{}, errors.New("container: invalid container-type token")
		}
		switch utils.AsciiLower(id) {
		case "normal":
			kinds = append(kinds, TypeNormal)
		case "size":
			kinds = append(kinds, TypeSize)
		case "inline-size":
			kinds = append(kinds, TypeInlineSize)
		default:
			return TypeValue{}, fmt.Errorf("container: unknown container-type keyword %q", id)
		}
	}
	return TypeValue{Types: kinds}, nil
}

// ParseContainerShorthand parses "container: <name-list> [ / <type-list> ]?".
func ParseContainerShorthand(nodes []cssom.Node) (ShorthandValue, error) {
	items := trimWhitespace(nodes)
	if len(items) == 0 {
		return ShorthandValue{}, errors.New("container: empty container shorthand value")
	}
	if kw, ok := asSoleCSSWideKeyword(items); ok {
		return ShorthandValue{Names: NameValue{CSSWide: kw}, Types: TypeValue{CSSWide: kw}}, nil
	}

	slash := -1
	for i, it := range items {
		if d, ok := it.(cssom.Leaf); ok && d.Kind == token.KindDelim && d.Value == "/" {
			slash = i
			break
		}
	}

	namePart, typePart := items, []cssom.Node{}
	if slash >= 0 {
		namePart = trimWhitespace(items[:slash])
		typePart = trimWhitespace(items[slash+1:])
	}

	names, err := ParseContainerNameProperty(namePart, false)
	if err != nil {
		return ShorthandValue{}, err
	}
	var types TypeValue
	if len(typePart) > 0 {
		types, err = ParseContainerTypeProperty(typePart, false)
		if err != nil {
			return ShorthandValue{}, err
		}
	}
	return ShorthandValue{Names: names, Types: types}, nil
}

func asSoleCSSWideKeyword(items []cssom.Node) (string, bool) {
	if len(items) != 1 {
		return "", false
	}
	id, ok := asIdent(items[0])
	if !ok {
		return "", false
	}
	switch utils.AsciiLower(id) {
	case "initial", "inherit", "unset", "revert", "revert-layer":
		return utils.AsciiLower(id), true
	default:
		return "", false
	}
}

func asIdent(n cssom.Node) (string, bool) {
	l, ok := n.(cssom.Leaf)
	if !ok || l.Kind != token.KindIdent {
		return "", false
	}
	return l.Value, true
}

func trimWhitespace(nodes []cssom.Node) []cssom.Node {
	start := 0
	for start < len(nodes) && isWhitespace(nodes[start]) {
		start++
	}
	end := len(nodes)
	for end > start && isWhitespace(nodes[end-1]) {
		end--
	}
	var out []cssom.Node
	for _, n := range nodes[start:end] {
		if isWhitespace(n) {
			continue
		}
		out = append(out, n)
	}
	return out
}

func isWhitespace(n cssom.Node) bool {
	l, ok := n.(cssom.Leaf)
	return ok && l.Kind == token.KindWhitespace
}
