package render

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartfit/pkg/errors"
	"github.com/matzehuels/chartfit/pkg/spec"
)

// DefaultMaxAttempts bounds the measure-and-adjust loop. Three rounds is
// enough for padding growth to converge on real charts; anything still
// overflowing after that is returned as-is.
const DefaultMaxAttempts = 3

// paddingEpsilon is added on top of the measured overflow when growing a
// side, so a boundary-exact label does not trigger another round.
const paddingEpsilon = 1.0

// Coordinator renders a chart spec repeatedly, growing padding on the
// sides where content overflows the view, until the content fits or the
// attempt budget runs out.
type Coordinator struct {
	Renderer    Renderer
	Logger      *log.Logger
	MaxAttempts int
}

// NewCoordinator wires a coordinator around the given renderer.
func NewCoordinator(r Renderer, logger *log.Logger) *Coordinator {
	if logger == nil {
		logger = log.Default()
	}
	return &Coordinator{
		Renderer:    r,
		Logger:      logger,
		MaxAttempts: DefaultMaxAttempts,
	}
}

// Result is the outcome of a fitting run. Fitted is false when the
// attempt budget ran out with content still overflowing; the frame is
// still the best one produced.
type Result struct {
	Frame    *Frame
	Padding  Padding
	Attempts int
	Fitted   bool
}

// Fit renders doc at the requested view size, measuring the reported
// content bounds after each attempt and widening the padding where the
// content spills outside the view. Exhausting the attempt budget is not
// an error: the last frame is returned with Fitted false.
func (c *Coordinator) Fit(ctx context.Context, doc *spec.Document, width, height float64, pad Padding) (*Result, error) {
	if c.Renderer == nil {
		return nil, errors.New(errors.ErrCodeInternal, "coordinator has no renderer")
	}
	logger := c.Logger
	if logger == nil {
		logger = log.Default()
	}
	attempts := c.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}

	root := doc.Clone().Root()
	applyViewSize(root, width, height)
	root["autosize"] = map[string]any{"type": "pad", "contains": "padding"}

	var frame *Frame
	for attempt := 1; attempt <= attempts; attempt++ {
		root["padding"] = pad.toSpec()

		var err error
		frame, err = c.Renderer.Render(ctx, root)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRenderFailed, err,
				"render attempt %d", attempt)
		}

		if frame.Bounds == nil {
			logger.Debug("renderer reported no bounds, accepting frame",
				"attempt", attempt)
			return &Result{Frame: frame, Padding: pad, Attempts: attempt, Fitted: true}, nil
		}

		over := measureOverflow(frame)
		if !over.any() {
			logger.Debug("content fits", "attempt", attempt, "padding", pad)
			return &Result{Frame: frame, Padding: pad, Attempts: attempt, Fitted: true}, nil
		}

		logger.Debug("content overflows view",
			"attempt", attempt,
			"left", over.left, "top", over.top,
			"right", over.right, "bottom", over.bottom)

		pad = grow(pad, over)
	}

	logger.Warn("padding did not converge, returning last frame",
		"attempts", attempts, "padding", pad)
	return &Result{Frame: frame, Padding: pad, Attempts: attempts, Fitted: false}, nil
}

// applyViewSize sets the requested dimensions on the spec, coercing each
// to at least 1. Step-sized heights are left alone: the renderer derives
// the height from the data, and forcing one would fight it.
func applyViewSize(root map[string]any, width, height float64) {
	root["width"] = max(width, 1)

	if h, ok := root["height"].(map[string]any); ok {
		if _, stepped := h["step"]; stepped {
			return
		}
	}
	root["height"] = max(height, 1)
}

// overflow is how far the content extends past each view edge. Only
// positive values mean anything.
type overflow struct {
	left, top, right, bottom float64
}

func (o overflow) any() bool {
	return o.left > 0 || o.top > 0 || o.right > 0 || o.bottom > 0
}

// measureOverflow compares the reported content bounds against the view
// rectangle the renderer actually produced.
func measureOverflow(f *Frame) overflow {
	b := f.Bounds
	return overflow{
		left:   -b.X1,
		top:    -b.Y1,
		right:  b.X2 - f.Width,
		bottom: b.Y2 - f.Height,
	}
}

// grow widens each overflowing side by the overflow plus a small epsilon.
// Sides that fit keep their padding, so growth is monotone.
func grow(pad Padding, over overflow) Padding {
	if over.left > 0 {
		pad.Left += over.left + paddingEpsilon
	}
	if over.top > 0 {
		pad.Top += over.top + paddingEpsilon
	}
	if over.right > 0 {
		pad.Right += over.right + paddingEpsilon
	}
	if over.bottom > 0 {
		pad.Bottom += over.bottom + paddingEpsilon
	}
	return pad
}
