// Package container implements the @container prelude parser and the
// container/container-name/container-type declaration-value grammars
// (spec.md §4.E), lowering the generic condition grammar into the typed
// ContainerRule the evaluator consumes.
package container

import (
	"errors"
	"fmt"

	"github.com/tdewolff-labs/cqpolyfill/condition"
	"github.com/tdewolff-labs/cqpolyfill/utils"
)

// ErrReservedName is returned when a @container prelude or a
// container-name declaration names a container using a reserved
// identifier (spec.md §4.E).
var ErrReservedName = errors.New("container: reserved container name")

func newErrReservedName(name string) error {
	return fmt.Errorf("%w: %q", ErrReservedName, name)
}

var reservedNames = utils.NewSet(
	"none", "and", "or", "not", "normal", "auto",
	"initial", "inherit", "unset", "revert", "revert-layer",
)

// IsReservedName reports whether name cannot be used as a container name.
func IsReservedName(name string) bool {
	return reservedNames.Has(utils.AsciiLower(name))
}

// Rule is the typed result of parsing an @container prelude (spec.md §3
// "ContainerRule"): an optional name, the lowered condition AST, and the
// set of size features the condition actually references (used by the
// evaluator to short-circuit on an unknown feature).
type Rule struct {
	Name      string // "" when the prelude had no name
	Condition condition.Node
	Features  map[condition.SizeFeature]bool
}

// TypeKeyword is one of the recognized container-type values.
type TypeKeyword uint8

const (
	TypeNormal TypeKeyword = iota
	TypeSize
	TypeInlineSize
)

func (k TypeKeyword) String() string {
	switch k {
	case TypeSize:
		return "size"
	case TypeInlineSize:
		return "inline-size"
	default:
		return "normal"
	}
}

// NameValue is the parsed value of a container-name declaration: either a
// list of names, or a CSS-wide keyword preserved verbatim (spec.md §4.E:
// "CSS-wide keywords are preserved verbatim by prepending a fixed internal
// prefix").
type NameValue struct {
	Names   []string // nil when CSSWide is set; empty (non-nil) means "none"
	CSSWide string   // "" unless the value was a CSS-wide keyword
}

// TypeValue is the parsed value of a container-type declaration.
type TypeValue struct {
	Types   []TypeKeyword
	CSSWide string
}

// ShorthandValue is the parsed value of the container shorthand.
type ShorthandValue struct {
	Names NameValue
	Types TypeValue
}

// InternalKeywordPrefix marks a CSS-wide keyword value that was moved into
// an internal custom property, so it never re-triggers cascade semantics
// when later serialized as that property's value (spec.md §4.E).
const InternalKeywordPrefix = "-cqpolyfill-kw-"
