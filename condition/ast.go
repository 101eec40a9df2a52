// Package condition implements the generic <condition> grammar shared by
// media queries and container queries (spec.md §4.C) and the media-feature
// grammar nested inside it (§4.D).
package condition

import (
	"github.com/tdewolff-labs/cqpolyfill/cssom"
	"github.com/tdewolff-labs/cqpolyfill/utils"
)

// Op is a comparison operator appearing in a Compare node.
type Op uint8

const (
	OpEq Op = iota
	OpLt
	OpLe
	OpGt
	OpGe
)

func (o Op) String() string {
	switch o {
	case OpEq:
		return "="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	default:
		return "?"
	}
}

// flip returns the operator that holds when the operands of o are swapped,
// turning "value op feature" into "feature flip(op) value".
func (o Op) flip() Op {
	switch o {
	case OpLt:
		return OpGt
	case OpLe:
		return OpGe
	case OpGt:
		return OpLt
	case OpGe:
		return OpLe
	default:
		return o
	}
}

func (o Op) lessish() bool  { return o == OpLt || o == OpLe }
func (o Op) greaterish() bool { return o == OpGt || o == OpGe }

// SizeFeature is one of the size features the data model allows (spec.md
// §3). Only these six names ever reach an evaluator.
type SizeFeature uint8

const (
	FeatureWidth SizeFeature = iota
	FeatureHeight
	FeatureInlineSize
	FeatureBlockSize
	FeatureAspectRatio
	FeatureOrientation
)

func (f SizeFeature) String() string {
	switch f {
	case FeatureWidth:
		return "width"
	case FeatureHeight:
		return "height"
	case FeatureInlineSize:
		return "inline-size"
	case FeatureBlockSize:
		return "block-size"
	case FeatureAspectRatio:
		return "aspect-ratio"
	case FeatureOrientation:
		return "orientation"
	default:
		return "?"
	}
}

// ParseSizeFeature maps an ASCII-case-insensitive identifier to a
// SizeFeature. Any other identifier is not a size feature this core knows.
func ParseSizeFeature(name string) (SizeFeature, bool) {
	switch utils.AsciiLower(name) {
	case "width":
		return FeatureWidth, true
	case "height":
		return FeatureHeight, true
	case "inline-size":
		return FeatureInlineSize, true
	case "block-size":
		return FeatureBlockSize, true
	case "aspect-ratio":
		return FeatureAspectRatio, true
	case "orientation":
		return FeatureOrientation, true
	default:
		return 0, false
	}
}

// ValueKind identifies which field of Value is meaningful.
type ValueKind uint8

const (
	ValueUnknown ValueKind = iota
	ValueNumber
	ValueDimension
	ValueOrientation
	ValueBoolean
)

// Value is a leaf operand: a bare number, a unit-carrying dimension, one of
// the two orientation keywords, or a boolean (spec.md §3 "value").
type Value struct {
	Kind        ValueKind
	Number      float64
	Unit        string // ValueDimension only, already lower-cased
	Orientation string // ValueOrientation only: "portrait" or "landscape"
	Bool        bool   // ValueBoolean only
}

// Node is the condition AST: Not, And, Or, Compare, FeatureRef, Literal.
type Node interface {
	isNode()
}

type Not struct{ Child Node }
type And struct{ Left, Right Node }
type Or struct{ Left, Right Node }
type Compare struct {
	Op          Op
	Left, Right Node
}
type FeatureRef struct{ Feature SizeFeature }

// Literal is either a resolved value, or — when Raw is non-nil — a
// parenthesized block that ParseCondition could not interpret as a nested
// condition and left for a more specific caller (container.ParseContainerRule)
// to retry as a media feature (spec.md §4.C: "a block whose content does
// not parse as a condition becomes a leaf Literal(unknown) ... unless the
// enclosing context knows to interpret it as a feature block").
type Literal struct {
	Value Value
	Raw   []cssom.Node
}

func (Not) isNode()        {}
func (And) isNode()        {}
func (Or) isNode()         {}
func (Compare) isNode()    {}
func (FeatureRef) isNode() {}
func (Literal) isNode()    {}

// allowedDimensionUnits is the unit vocabulary §4.D's value grammar accepts.
var allowedDimensionUnits = map[string]bool{
	"px": true, "em": true, "rem": true,
	"cqw": true, "cqh": true, "cqi": true, "cqb": true, "cqmin": true, "cqmax": true,
}

func isAllowedUnit(unit string) bool {
	return allowedDimensionUnits[utils.AsciiLower(unit)]
}
