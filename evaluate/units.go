package evaluate

import (
	"github.com/tdewolff-labs/cqpolyfill/condition"
	"github.com/tdewolff-labs/cqpolyfill/utils"
)

// TreeContext supplies the environment needed to resolve relative units in
// condition operands (spec.md §3 "TreeContext"). Cqw/Cqh are optional:
// their zero-value scale (0) is indistinguishable from "absent" for the
// purpose of coercion, so callers signal "unknown" with HasCqw/HasCqh.
type TreeContext struct {
	Cqw, Cqh         float64
	HasCqw, HasCqh   bool
	FontSize         float64
	RootFontSize     float64
	WritingAxis      WritingAxis
}

// WritingAxis mirrors §3's TreeContext.writingAxis.
type WritingAxis uint8

const (
	AxisHorizontal WritingAxis = iota
	AxisVertical
)

// pixels resolves a dimension Value to a pixel scalar under ctx, or reports
// unknown when the unit's underlying scale isn't available (spec.md §4.F
// "Coercion to pixels").
func pixels(v condition.Value, ctx TreeContext) (float64, bool) {
	if v.Kind == condition.ValueNumber && v.Number == 0 {
		// "Numeric 0 is coercible to a pixel length."
		return 0, true
	}
	if v.Kind != condition.ValueDimension {
		return 0, false
	}
	switch utils.AsciiLower(v.Unit) {
	case "px":
		return v.Number, true
	case "em":
		return v.Number * ctx.FontSize, true
	case "rem":
		return v.Number * ctx.RootFontSize, true
	case "cqw":
		if !ctx.HasCqw {
			return 0, false
		}
		return v.Number * ctx.Cqw, true
	case "cqh":
		if !ctx.HasCqh {
			return 0, false
		}
		return v.Number * ctx.Cqh, true
	case "cqi":
		return v.Number * inlineScale(ctx), hasInlineScale(ctx)
	case "cqb":
		return v.Number * blockScale(ctx), hasBlockScale(ctx)
	case "cqmin":
		return cqMinMax(v.Number, ctx, utils.MinF)
	case "cqmax":
		return cqMinMax(v.Number, ctx, utils.MaxF)
	default:
		return 0, false
	}
}

func inlineScale(ctx TreeContext) float64 {
	if ctx.WritingAxis == AxisVertical {
		return ctx.Cqh
	}
	return ctx.Cqw
}

func hasInlineScale(ctx TreeContext) bool {
	if ctx.WritingAxis == AxisVertical {
		return ctx.HasCqh
	}
	return ctx.HasCqw
}

func blockScale(ctx TreeContext) float64 {
	if ctx.WritingAxis == AxisVertical {
		return ctx.Cqw
	}
	return ctx.Cqh
}

func hasBlockScale(ctx TreeContext) bool {
	if ctx.WritingAxis == AxisVertical {
		return ctx.HasCqw
	}
	return ctx.HasCqh
}

func cqMinMax(n float64, ctx TreeContext, pick func(a, b utils.Fl) utils.Fl) (float64, bool) {
	if !hasInlineScale(ctx) || !hasBlockScale(ctx) {
		return 0, false
	}
	scale := float64(pick(utils.Fl(inlineScale(ctx)), utils.Fl(blockScale(ctx))))
	return n * scale, true
}
