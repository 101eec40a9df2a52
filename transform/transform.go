// Package transform implements the CSS-to-CSS transformer (spec.md §4.G):
// it walks a parsed stylesheet, rewrites every `@container` rule into a
// plain `@media all { ... }` block guarded by a selector-level attribute
// check, rewrites container-relative length units, and lowers the
// `container`/`container-name`/`container-type` declarations into internal
// custom properties. It produces the rewritten source together with the
// list of query descriptors a host layer needs to drive the polyfill.
package transform

import (
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/tdewolff-labs/cqpolyfill/container"
	"github.com/tdewolff-labs/cqpolyfill/cssom"
	"github.com/tdewolff-labs/cqpolyfill/internal/diag"
	"github.com/tdewolff-labs/cqpolyfill/internal/idgen"
	"github.com/tdewolff-labs/cqpolyfill/logger"
	"github.com/tdewolff-labs/cqpolyfill/token"
	"github.com/tdewolff-labs/cqpolyfill/utils"
)

// selfAttr is the attribute a host layer is expected to toggle on candidate
// elements, carrying every descriptor id that currently matches as a
// whitespace-separated token list (spec.md §1: "tagging DOM elements with
// attributes").
const selfAttr = "data-cqpolyfill"

// Descriptor is the transformer's handle for one `@container` rule (spec.md
// §3 "ContainerQueryDescriptor"): its id, its condition, the selector a host
// uses to find candidate elements, and its enclosing `@container`, if any.
type Descriptor struct {
	ID              string
	Rule            container.Rule
	ElementSelector string
	Parent          *Descriptor
}

// Result is the return value of TranspileStyleSheet (spec.md §6.1).
type Result struct {
	Source      string
	Descriptors []*Descriptor
	Diagnostics error
}

// state carries the per-run, read-mostly dependencies threaded through the
// recursive walk: the diagnostic sink, the id generator and its salt, the
// accumulated descriptor list, and whether the target environment supports
// the `:where()` pseudo-class.
type state struct {
	diag             *diag.Sink
	ids              idgen.Generator
	salt             string
	descriptors      []*Descriptor
	whereUnsupported bool
}

// options holds TranspileStyleSheet's optional settings, applied through
// Option values (rupor-github/fbc's `options ...func(*ProcessingOptions)`
// style) so the two required positional arguments of spec.md §6.1 stay
// unchanged.
type options struct {
	whereUnsupported bool
}

// Option configures an optional TranspileStyleSheet behavior.
type Option func(*options)

// WithWhereUnsupported signals that the target environment's CSS engine
// does not support `:where()` (spec.md §4.G "Selector partitioning
// details"). Style selectors then require the stylesheet's author to have
// pre-attached a ":not(.container-query-polyfill)" sentinel; a selector
// missing that sentinel is reported invalid via the diagnostic sink instead
// of being tagged.
func WithWhereUnsupported() Option {
	return func(o *options) { o.whereUnsupported = true }
}

// scope tracks which descriptor (if any) is currently tagging qualified-rule
// selectors, and where its deduplicated element-selector prefixes go. A
// zero-value scope means "outside any @container" — qualified rules pass
// through with their original selector.
type scope struct {
	uid      string
	prefixes *[]string
	seen     map[string]bool
}

// TranspileStyleSheet implements spec.md §6.1: it always returns a usable
// result, falling back to the original source with no descriptors on any
// unexpected internal failure (spec.md §7 "whole-sheet catastrophic error").
func TranspileStyleSheet(source string, baseURL string, opts ...Option) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warning.Warn("transpile failed, falling back to original source", zap.Any("recover", r))
			result = Result{Source: source}
		}
	}()
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return transpileWithGenerator(source, baseURL, idgen.NewCounter(), o)
}

func transpileWithGenerator(source, baseURL string, ids idgen.Generator, o options) Result {
	toks, tokDiags := token.Tokenize(source, true)
	nodes := cssom.ParseComponentValues(toks)

	if baseURL != "" {
		if base, err := url.Parse(baseURL); err == nil {
			nodes = rewriteURLsInNodes(nodes, base)
		}
	}

	sink := diag.NewSink(logger.Warning)
	sink.AddTokenizerDiagnostics(tokDiags)

	st := &state{diag: sink, ids: ids, salt: ids.Salt(), whereUnsupported: o.whereUnsupported}
	compounds := cssom.ParseStylesheet(nodes, true)
	rewritten := transformRuleList(compounds, scope{}, nil, st)

	return Result{
		Source:      serializeNodes(compoundsToNodes(rewritten)),
		Descriptors: st.descriptors,
		Diagnostics: sink.Err(),
	}
}

func transformRuleList(compounds []cssom.Compound, sc scope, parent *Descriptor, st *state) []cssom.Compound {
	out := make([]cssom.Compound, len(compounds))
	for i, c := range compounds {
		switch v := c.(type) {
		case cssom.AtRule:
			out[i] = transformAtRule(v, sc, parent, st)
		case cssom.QualifiedRule:
			out[i] = transformQualifiedRule(v, sc, st)
		default:
			out[i] = c
		}
	}
	return out
}

func transformAtRule(v cssom.AtRule, sc scope, parent *Descriptor, st *state) cssom.Compound {
	switch utils.AsciiLower(v.Name) {
	case "container":
		return transformContainerRule(v, parent, st)
	case "media", "layer":
		if v.Block == nil {
			return v
		}
		rewritten := transformRuleList(cssom.ParseRuleList(v.Block.Children, true), sc, parent, st)
		return cssom.AtRule{Name: v.Name, Prelude: v.Prelude, Block: blockOf(rewritten)}
	case "supports":
		prelude := rewriteSupportsPrelude(v.Prelude, st)
		if v.Block == nil {
			return cssom.AtRule{Name: v.Name, Prelude: prelude}
		}
		rewritten := transformRuleList(cssom.ParseRuleList(v.Block.Children, true), sc, parent, st)
		return cssom.AtRule{Name: v.Name, Prelude: prelude, Block: blockOf(rewritten)}
	case "keyframes":
		if v.Block == nil {
			return v
		}
		return cssom.AtRule{Name: v.Name, Prelude: v.Prelude, Block: &cssom.Block{
			OpenKind: token.KindLeftBrace,
			Children: rewriteKeyframesBody(v.Block.Children, st),
		}}
	default:
		return v
	}
}

func blockOf(compounds []cssom.Compound) *cssom.Block {
	return &cssom.Block{OpenKind: token.KindLeftBrace, Children: compoundsToNodes(compounds)}
}

// transformContainerRule implements the `@container` bullet of spec.md
// §4.G: parse the prelude, allocate a descriptor, recursively transform the
// body tagging every qualified rule's selector with this descriptor's id,
// and replace the at-rule with an always-live `@media all { ... }`.
func transformContainerRule(v cssom.AtRule, parent *Descriptor, st *state) cssom.Compound {
	rule, err := container.ParseContainerRule(v.Prelude)
	if err != nil {
		st.diag.Add(v.Pos(), "invalid @container prelude, left unchanged: %v", err)
		return v
	}
	if v.Block == nil {
		st.diag.Add(v.Pos(), "@container rule without a body, left unchanged")
		return v
	}

	desc := &Descriptor{ID: st.ids.NextID(), Rule: rule, Parent: parent}
	st.descriptors = append(st.descriptors, desc)

	var prefixes []string
	childScope := scope{uid: desc.ID, prefixes: &prefixes, seen: map[string]bool{}}
	rewritten := transformRuleList(cssom.ParseRuleList(v.Block.Children, true), childScope, desc, st)
	desc.ElementSelector = strings.Join(prefixes, ", ")

	return cssom.AtRule{
		Name:    "media",
		Prelude: []cssom.Node{leaf(token.Token{Kind: token.KindIdent, Value: "all"})},
		Block:   blockOf(rewritten),
	}
}

func transformQualifiedRule(v cssom.QualifiedRule, sc scope, st *state) cssom.Compound {
	prelude := v.Prelude
	if sc.uid != "" {
		prelude = rewriteSelectorList(v.Prelude, sc.uid, sc.prefixes, sc.seen, st, v.Pos())
	}
	rewritten := transformDeclarationList(cssom.ParseDeclarationList(v.Block.Children, true), st)
	return cssom.QualifiedRule{
		Prelude: prelude,
		Block:   cssom.Block{OpenKind: token.KindLeftBrace, Children: compoundsToNodes(rewritten)},
	}
}

func transformDeclarationList(compounds []cssom.Compound, st *state) []cssom.Compound {
	var out []cssom.Compound
	for _, c := range compounds {
		if d, ok := c.(cssom.Declaration); ok {
			out = append(out, rewriteDeclaration(d, st)...)
			continue
		}
		// A nested at-rule here (CSS Nesting) is outside the core's
		// scope (spec.md Non-goals: "nesting inside media queries");
		// pass it through untouched.
		out = append(out, c)
	}
	return out
}

// rewriteSelectorList implements the "Selector partitioning details" bullet
// of spec.md §4.G: every comma-separated selector is partitioned into a
// non-pseudo prefix and an optional pseudo-element suffix, the prefix is
// recorded as the descriptor's element-selector, and the rewritten selector
// gains an attribute check on the descriptor's id. When st.whereUnsupported
// is set and a selector hasn't pre-attached the sentinel styleSelector
// requires, it is reported invalid via st.diag and left untagged.
func rewriteSelectorList(prelude []cssom.Node, uid string, prefixes *[]string, seen map[string]bool, st *state, pos token.Pos) []cssom.Node {
	parts := splitSelectorListNodes(prelude)
	styled := make([]string, len(parts))
	for i, part := range parts {
		p := partitionSelector(part)
		s, ok := styleSelector(p, selfAttr, uid, st.whereUnsupported)
		if !ok {
			st.diag.Add(pos, "selector %q needs a pre-attached %s sentinel when :where() is unsupported, left untagged", p.prefix, sentinelPseudo)
			styled[i] = p.prefix + p.pseudoSuffix
			continue
		}
		if !seen[p.prefix] {
			seen[p.prefix] = true
			*prefixes = append(*prefixes, p.prefix)
		}
		styled[i] = s
	}
	toks, _ := token.Tokenize(strings.Join(styled, ", "), true)
	return cssom.ParseComponentValues(toks)
}

// rewriteSupportsPrelude implements the `@supports` bullet of spec.md
// §4.G: every parenthesized feature test is reparsed as a single
// declaration and passed through the same rewriter style rules use, so a
// stylesheet's own `@supports (container-type: size)` guard continues to
// see the polyfilled property as supported.
func rewriteSupportsPrelude(nodes []cssom.Node, st *state) []cssom.Node {
	out := make([]cssom.Node, len(nodes))
	for i, n := range nodes {
		if b, ok := n.(cssom.Block); ok && b.OpenKind == token.KindLeftParen {
			out[i] = rewriteSupportsBlock(b, st)
			continue
		}
		out[i] = n
	}
	return out
}

func rewriteSupportsBlock(b cssom.Block, st *state) cssom.Node {
	if decl, ok := cssom.ParseOneDeclaration(b.Children).(cssom.Declaration); ok {
		rewritten := rewriteDeclaration(decl, st)
		if len(rewritten) > 0 {
			if d, ok := rewritten[0].(cssom.Declaration); ok {
				return cssom.Block{OpenKind: token.KindLeftParen, Children: declarationNodes(d)}
			}
		}
	}
	return cssom.Block{OpenKind: token.KindLeftParen, Children: rewriteSupportsPrelude(b.Children, st)}
}

// rewriteKeyframesBody implements the `@keyframes` bullet of spec.md §4.G:
// only container-relative unit rewriting applies, no descriptor is produced
// and no selector is tagged.
func rewriteKeyframesBody(nodes []cssom.Node, st *state) []cssom.Node {
	rules := cssom.ParseRuleList(nodes, true)
	out := make([]cssom.Compound, len(rules))
	for i, c := range rules {
		qr, ok := c.(cssom.QualifiedRule)
		if !ok {
			out[i] = c
			continue
		}
		decls := cssom.ParseDeclarationList(qr.Block.Children, true)
		rewritten := make([]cssom.Compound, len(decls))
		for j, d := range decls {
			decl, ok := d.(cssom.Declaration)
			if !ok {
				rewritten[j] = d
				continue
			}
			rewritten[j] = cssom.Declaration{
				Name:      decl.Name,
				Value:     rewriteContainerUnits(decl.Value, st.salt),
				Important: decl.Important,
			}
		}
		out[i] = cssom.QualifiedRule{
			Prelude: qr.Prelude,
			Block:   cssom.Block{OpenKind: token.KindLeftBrace, Children: compoundsToNodes(rewritten)},
		}
	}
	return compoundsToNodes(out)
}

// rewriteDeclaration implements the qualified-rule declaration bullet of
// spec.md §4.G: container-relative units are rewritten everywhere, and
// `container`/`container-name`/`container-type` are lowered into internal
// custom properties on success, left unchanged on parse failure.
func rewriteDeclaration(d cssom.Declaration, st *state) []cssom.Compound {
	switch utils.AsciiLower(d.Name) {
	case "container-name":
		if nv, err := container.ParseContainerNameProperty(d.Value, true); err == nil {
			return []cssom.Compound{namePropertyDeclaration(nv, st.salt, d)}
		}
		st.diag.Add(d.Pos(), "invalid container-name value, left unchanged")
	case "container-type":
		if tv, err := container.ParseContainerTypeProperty(d.Value, true); err == nil {
			return []cssom.Compound{typePropertyDeclaration(tv, st.salt, d)}
		}
		st.diag.Add(d.Pos(), "invalid container-type value, left unchanged")
	case "container":
		if sv, err := container.ParseContainerShorthand(d.Value); err == nil {
			out := []cssom.Compound{namePropertyDeclaration(sv.Names, st.salt, d)}
			if len(sv.Types.Types) > 0 || sv.Types.CSSWide != "" {
				out = append(out, typePropertyDeclaration(sv.Types, st.salt, d))
			}
			return out
		}
		st.diag.Add(d.Pos(), "invalid container shorthand value, left unchanged")
	}
	return []cssom.Compound{cssom.Declaration{
		Name:      d.Name,
		Value:     rewriteContainerUnits(d.Value, st.salt),
		Important: d.Important,
	}}
}

func namePropertyDeclaration(nv container.NameValue, salt string, orig cssom.Declaration) cssom.Compound {
	return cssom.Declaration{Name: cqCustomProperty("name", salt), Value: nameValueNodes(nv), Important: orig.Important}
}

func nameValueNodes(nv container.NameValue) []cssom.Node {
	if nv.CSSWide != "" {
		return []cssom.Node{leaf(token.Token{Kind: token.KindIdent, Value: container.InternalKeywordPrefix + nv.CSSWide})}
	}
	if len(nv.Names) == 0 {
		return []cssom.Node{leaf(token.Token{Kind: token.KindIdent, Value: "none"})}
	}
	return identList(nv.Names)
}

func typePropertyDeclaration(tv container.TypeValue, salt string, orig cssom.Declaration) cssom.Compound {
	return cssom.Declaration{Name: cqCustomProperty("type", salt), Value: typeValueNodes(tv), Important: orig.Important}
}

func typeValueNodes(tv container.TypeValue) []cssom.Node {
	if tv.CSSWide != "" {
		return []cssom.Node{leaf(token.Token{Kind: token.KindIdent, Value: container.InternalKeywordPrefix + tv.CSSWide})}
	}
	names := make([]string, len(tv.Types))
	for i, k := range tv.Types {
		names[i] = k.String()
	}
	return identList(names)
}

func identList(names []string) []cssom.Node {
	var out []cssom.Node
	for i, n := range names {
		if i > 0 {
			out = append(out, wsLeaf())
		}
		out = append(out, leaf(token.Token{Kind: token.KindIdent, Value: n}))
	}
	return out
}

// rewriteURLsInNodes implements the "URL rewriting" bullet of spec.md
// §4.G: every URL token, and every `url("...")` function call's first
// string argument, is resolved against base.
func rewriteURLsInNodes(nodes []cssom.Node, base *url.URL) []cssom.Node {
	out := make([]cssom.Node, len(nodes))
	for i, n := range nodes {
		out[i] = rewriteURLsInNode(n, base)
	}
	return out
}

func rewriteURLsInNode(n cssom.Node, base *url.URL) cssom.Node {
	switch v := n.(type) {
	case cssom.Leaf:
		if v.Kind == token.KindURL {
			v.Token.Value = resolveURL(v.Value, base)
		}
		return v
	case cssom.Block:
		return cssom.Block{OpenKind: v.OpenKind, Children: rewriteURLsInNodes(v.Children, base)}
	case cssom.Function:
		if utils.AsciiLower(v.Name) == "url" {
			return cssom.Function{Name: v.Name, Children: rewriteURLStringArg(v.Children, base)}
		}
		return cssom.Function{Name: v.Name, Children: rewriteURLsInNodes(v.Children, base)}
	default:
		return n
	}
}

func rewriteURLStringArg(children []cssom.Node, base *url.URL) []cssom.Node {
	out := make([]cssom.Node, len(children))
	copy(out, children)
	for i, c := range out {
		if l, ok := c.(cssom.Leaf); ok && l.Kind == token.KindString {
			l.Token.Value = resolveURL(l.Value, base)
			out[i] = l
			break
		}
	}
	return out
}

func resolveURL(raw string, base *url.URL) string {
	ref, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return base.ResolveReference(ref).String()
}
