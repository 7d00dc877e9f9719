// Package render drives a chart renderer until its output fits the
// requested viewport.
//
// The renderer itself is injected: anything that can turn a chart spec
// into SVG markup plus a content bounds report satisfies Renderer. The
// Coordinator wraps it with the measure-and-adjust padding loop, and
// RemoteRenderer adapts an HTTP rendering service to the interface.
package render

import "context"

// Bounds is the content extent a renderer reports alongside its markup,
// in the output's coordinate space.
type Bounds struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Frame is one rendering result. Bounds is nil when the renderer cannot
// report content extents; Width and Height are the view size the renderer
// actually produced, which may differ from what the spec asked for.
type Frame struct {
	SVG    string  `json:"svg"`
	Bounds *Bounds `json:"bounds,omitempty"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Renderer produces a Frame from a fully resolved chart spec.
//
// Implementations must treat the spec as read-only and should honor
// context cancellation on slow renders.
type Renderer interface {
	Render(ctx context.Context, spec map[string]any) (*Frame, error)
}
