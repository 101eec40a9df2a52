// Package evaluate implements the three-valued condition evaluator
// (spec.md §4.F): given a ContainerRule and a query context describing a
// candidate container's computed size, it decides whether the rule's
// condition holds, fails, or cannot be resolved.
package evaluate

import (
	"github.com/tdewolff-labs/cqpolyfill/condition"
	"github.com/tdewolff-labs/cqpolyfill/container"
)

// Tristate is the explicit three-valued type Design Note "Three-valued
// logic" requires: true/false/unknown must be distinguishable internally
// so the short-circuit rules of And/Or are correct, which a nullable bool
// cannot guarantee (a naive *bool nil could mean either "unknown" or
// "uninitialized").
type Tristate uint8

const (
	Unknown Tristate = iota
	True
	False
)

// Bool adapts Tristate to the public boundary's nullable-boolean
// convention (spec.md §6: "true | false | null"): ok is false for Unknown.
func (t Tristate) Bool() (value bool, ok bool) {
	switch t {
	case True:
		return true, true
	case False:
		return false, true
	default:
		return false, false
	}
}

func fromBool(b bool) Tristate {
	if b {
		return True
	}
	return False
}

func not(t Tristate) Tristate {
	switch t {
	case True:
		return False
	case False:
		return True
	default:
		return Unknown
	}
}

// sizeSnapshot is the resolved value of every size feature the evaluator
// might need, computed once per Evaluate call from a QueryContext
// (spec.md §4.F step 1).
type sizeSnapshot struct {
	width, height       float64
	hasWidth, hasHeight bool
}

// QueryContext bundles a candidate container's physical width and height
// (each flagged as known or not), from which every size feature is
// derived, with the TreeContext needed for unit coercion.
type QueryContext struct {
	Width, Height    float64
	HasWidth         bool
	HasHeight        bool
	Tree             TreeContext
}

func (q QueryContext) snapshot() sizeSnapshot {
	return sizeSnapshot{width: q.Width, height: q.Height, hasWidth: q.HasWidth, hasHeight: q.HasHeight}
}

// featureValue resolves one size feature to a Value, or reports unknown.
func featureValue(feat condition.SizeFeature, snap sizeSnapshot, tree TreeContext) (condition.Value, bool) {
	switch feat {
	case condition.FeatureWidth:
		if !snap.hasWidth {
			return condition.Value{}, false
		}
		return condition.Value{Kind: condition.ValueDimension, Number: snap.width, Unit: "px"}, true
	case condition.FeatureHeight:
		if !snap.hasHeight {
			return condition.Value{}, false
		}
		return condition.Value{Kind: condition.ValueDimension, Number: snap.height, Unit: "px"}, true
	case condition.FeatureInlineSize:
		v, ok := inlineSize(snap, tree)
		if !ok {
			return condition.Value{}, false
		}
		return condition.Value{Kind: condition.ValueDimension, Number: v, Unit: "px"}, true
	case condition.FeatureBlockSize:
		v, ok := blockSize(snap, tree)
		if !ok {
			return condition.Value{}, false
		}
		return condition.Value{Kind: condition.ValueDimension, Number: v, Unit: "px"}, true
	case condition.FeatureAspectRatio:
		if !snap.hasWidth || !snap.hasHeight || snap.height <= 0 {
			return condition.Value{}, false
		}
		return condition.Value{Kind: condition.ValueNumber, Number: snap.width / snap.height}, true
	case condition.FeatureOrientation:
		if !snap.hasWidth || !snap.hasHeight {
			return condition.Value{}, false
		}
		orientation := "landscape"
		if snap.height >= snap.width {
			orientation = "portrait"
		}
		return condition.Value{Kind: condition.ValueOrientation, Orientation: orientation}, true
	default:
		return condition.Value{}, false
	}
}

func inlineSize(snap sizeSnapshot, tree TreeContext) (float64, bool) {
	if tree.WritingAxis == AxisVertical {
		if !snap.hasHeight {
			return 0, false
		}
		return snap.height, true
	}
	if !snap.hasWidth {
		return 0, false
	}
	return snap.width, true
}

func blockSize(snap sizeSnapshot, tree TreeContext) (float64, bool) {
	if tree.WritingAxis == AxisVertical {
		if !snap.hasWidth {
			return 0, false
		}
		return snap.width, true
	}
	if !snap.hasHeight {
		return 0, false
	}
	return snap.height, true
}

// Evaluate implements spec.md §4.F end to end: it first checks whether any
// size feature the rule references is unknown in ctx (short-circuiting the
// whole rule to Unknown), then recursively evaluates the condition AST.
func Evaluate(rule container.Rule, ctx QueryContext) Tristate {
	snap := ctx.snapshot()
	for feat := range rule.Features {
		if _, ok := featureValue(feat, snap, ctx.Tree); !ok {
			return Unknown
		}
	}
	return evalNode(rule.Condition, snap, ctx.Tree)
}

func evalNode(n condition.Node, snap sizeSnapshot, tree TreeContext) Tristate {
	switch v := n.(type) {
	case condition.Not:
		return not(evalNode(v.Child, snap, tree))
	case condition.And:
		l := evalNode(v.Left, snap, tree)
		if l != True {
			return l
		}
		return evalNode(v.Right, snap, tree)
	case condition.Or:
		l := evalNode(v.Left, snap, tree)
		if l == True {
			return l
		}
		return evalNode(v.Right, snap, tree)
	case condition.Compare:
		return evalCompare(v, snap, tree)
	case condition.FeatureRef:
		// Boolean form: "width" alone means "is this feature resolvable",
		// which this core answers with True whenever the feature has a
		// known value and Unknown otherwise (Open Question decision in
		// SPEC_FULL.md — never False, since a resolvable feature is never
		// "absent").
		if _, ok := featureValue(v.Feature, snap, tree); ok {
			return True
		}
		return Unknown
	case condition.Literal:
		return literalTruth(v.Value)
	default:
		return Unknown
	}
}

func literalTruth(v condition.Value) Tristate {
	switch v.Kind {
	case condition.ValueBoolean:
		return fromBool(v.Bool)
	case condition.ValueUnknown:
		return Unknown
	default:
		// A bare number/dimension/orientation used outside a Compare has
		// no defined truthiness; treat it as unknown rather than guess.
		return Unknown
	}
}

func evalCompare(c condition.Compare, snap sizeSnapshot, tree TreeContext) Tristate {
	left, lok := resolveOperand(c.Left, snap, tree)
	right, rok := resolveOperand(c.Right, snap, tree)
	if !lok || !rok {
		return Unknown
	}

	if left.Kind == condition.ValueOrientation && right.Kind == condition.ValueOrientation {
		if c.Op != condition.OpEq {
			return Unknown
		}
		return fromBool(left.Orientation == right.Orientation)
	}
	if left.Kind == condition.ValueBoolean && right.Kind == condition.ValueBoolean {
		if c.Op != condition.OpEq {
			return Unknown
		}
		return fromBool(left.Bool == right.Bool)
	}

	if left.Kind == condition.ValueDimension || right.Kind == condition.ValueDimension {
		lp, lpok := pixels(left, tree)
		rp, rpok := pixels(right, tree)
		if !lpok || !rpok {
			return Unknown
		}
		return compareNumbers(c.Op, lp, rp)
	}

	if left.Kind == condition.ValueNumber && right.Kind == condition.ValueNumber {
		return compareNumbers(c.Op, left.Number, right.Number)
	}

	return Unknown
}

func compareNumbers(op condition.Op, l, r float64) Tristate {
	switch op {
	case condition.OpEq:
		return fromBool(l == r)
	case condition.OpLt:
		return fromBool(l < r)
	case condition.OpLe:
		return fromBool(l <= r)
	case condition.OpGt:
		return fromBool(l > r)
	case condition.OpGe:
		return fromBool(l >= r)
	default:
		return Unknown
	}
}

// resolveOperand turns a Compare operand — always a FeatureRef or a
// Literal in a lowered container.Rule — into a concrete Value.
func resolveOperand(n condition.Node, snap sizeSnapshot, tree TreeContext) (condition.Value, bool) {
	switch v := n.(type) {
	case condition.FeatureRef:
		return featureValue(v.Feature, snap, tree)
	case condition.Literal:
		if v.Value.Kind == condition.ValueUnknown {
			return condition.Value{}, false
		}
		return v.Value, true
	default:
		return condition.Value{}, false
	}
}
