package render

import (
	"github.com/matzehuels/chartfit/pkg/errors"
)

// Padding is the space reserved between the plotting area and the edge of
// the view, per side.
type Padding struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
}

// DefaultPadding reserves enough room for typical axis labels, with extra
// on the right where legends usually land.
func DefaultPadding() Padding {
	return Padding{Top: 8, Left: 12, Bottom: 12, Right: 28}
}

// NormalizePadding coerces the padding forms a spec may carry into a full
// four-sided Padding. A nil value yields the defaults, a scalar applies
// uniformly, and a partial object merges over the defaults. Any other
// shape is INVALID_PADDING.
func NormalizePadding(v any) (Padding, error) {
	switch p := v.(type) {
	case nil:
		return DefaultPadding(), nil
	case float64:
		return Padding{Top: p, Bottom: p, Left: p, Right: p}, nil
	case int:
		f := float64(p)
		return Padding{Top: f, Bottom: f, Left: f, Right: f}, nil
	case Padding:
		return p, nil
	case map[string]any:
		out := DefaultPadding()
		for key, raw := range p {
			val, ok := raw.(float64)
			if !ok {
				if n, isInt := raw.(int); isInt {
					val, ok = float64(n), true
				}
			}
			if !ok {
				return Padding{}, errors.New(errors.ErrCodeInvalidPadding,
					"padding side %q is %T, want number", key, raw)
			}
			switch key {
			case "top":
				out.Top = val
			case "bottom":
				out.Bottom = val
			case "left":
				out.Left = val
			case "right":
				out.Right = val
			default:
				return Padding{}, errors.New(errors.ErrCodeInvalidPadding,
					"unknown padding side %q", key)
			}
		}
		return out, nil
	default:
		return Padding{}, errors.New(errors.ErrCodeInvalidPadding,
			"padding is %T, want number or per-side object", v)
	}
}

// toSpec converts the padding to the map form renderers expect.
func (p Padding) toSpec() map[string]any {
	return map[string]any{
		"top":    p.Top,
		"bottom": p.Bottom,
		"left":   p.Left,
		"right":  p.Right,
	}
}
