// Package cqpolyfill is the public entry point for the CSS container-query
// polyfill core (spec.md §6). It re-exports the named primary entry points
// as thin wrappers over the token/cssom/condition/container/evaluate/
// transform packages, so a host only ever imports this one package.
package cqpolyfill

import (
	"github.com/tdewolff-labs/cqpolyfill/container"
	"github.com/tdewolff-labs/cqpolyfill/cssom"
	"github.com/tdewolff-labs/cqpolyfill/evaluate"
	"github.com/tdewolff-labs/cqpolyfill/transform"
)

// Result is the transpiler's return value (§6.1): a usable stylesheet and
// the descriptors the host must evaluate and apply at layout time.
type Result = transform.Result

// Descriptor is one allocated @container rule site (§6, "Descriptor
// consumers").
type Descriptor = transform.Descriptor

// Rule is the typed, lowered @container rule AST (§4.E).
type Rule = container.Rule

// NameValue, TypeValue and ShorthandValue are the parsed forms of the
// container-name, container-type and container shorthand properties (§4.E).
type NameValue = container.NameValue
type TypeValue = container.TypeValue
type ShorthandValue = container.ShorthandValue

// QueryContext bundles a candidate container's resolved size features with
// the tree context the evaluator needs for unit coercion (§4.F).
type QueryContext = evaluate.QueryContext

// TreeContext carries the ancestor/root/viewport state size features and
// relative units resolve against (§4.F).
type TreeContext = evaluate.TreeContext

// Tristate is the evaluator's explicit true/false/unknown result (§4.F).
type Tristate = evaluate.Tristate

const (
	Unknown = evaluate.Unknown
	True    = evaluate.True
	False   = evaluate.False
)

// Option configures optional TranspileStyleSheet behavior beyond its two
// required arguments (§6.1).
type Option = transform.Option

// WithWhereUnsupported signals that the target CSS engine lacks :where()
// support (§4.G "Selector partitioning details"): style selectors require
// the stylesheet's author to have pre-attached a
// ":not(.container-query-polyfill)" sentinel, and a selector missing that
// sentinel is reported invalid on Result.Diagnostics instead of being
// tagged.
func WithWhereUnsupported() Option {
	return transform.WithWhereUnsupported()
}

// TranspileStyleSheet implements §6.1: it rewrites every @container rule
// and container-relative unit in source into container.Rule-backed
// @media rules the host can query natively, resolving url() tokens
// against baseURL when one is given. It always returns a usable result;
// on catastrophic internal failure it returns the input source unchanged
// with an empty descriptor list.
func TranspileStyleSheet(source string, baseURL string, opts ...Option) Result {
	return transform.TranspileStyleSheet(source, baseURL, opts...)
}

// EvaluateContainerCondition implements §6.2: given a lowered container
// rule and a query context describing a candidate container, it reports
// whether the rule's condition holds, fails, or cannot be resolved.
func EvaluateContainerCondition(rule Rule, ctx QueryContext) Tristate {
	return evaluate.Evaluate(rule, ctx)
}

// ParseContainerRule implements §6.3: it parses an @container prelude's
// component values into a Rule, or returns a parse error.
func ParseContainerRule(nodes []cssom.Node) (Rule, error) {
	return container.ParseContainerRule(nodes)
}

// ParseContainerShorthand parses a "container: <name-list> [ / <type-list> ]?"
// declaration value (§4.E, §6.3).
func ParseContainerShorthand(nodes []cssom.Node) (ShorthandValue, error) {
	return container.ParseContainerShorthand(nodes)
}

// ParseContainerNameProperty parses a "container-name" declaration value.
// standalone distinguishes the longhand property from the shorthand's
// name-list component, per §4.E.
func ParseContainerNameProperty(nodes []cssom.Node, standalone bool) (NameValue, error) {
	return container.ParseContainerNameProperty(nodes, standalone)
}

// ParseContainerTypeProperty parses a "container-type" declaration value,
// per §4.E.
func ParseContainerTypeProperty(nodes []cssom.Node, standalone bool) (TypeValue, error) {
	return container.ParseContainerTypeProperty(nodes, standalone)
}
