package render

import (
	"context"
	"testing"

	"github.com/matzehuels/chartfit/pkg/errors"
	"github.com/matzehuels/chartfit/pkg/spec"
)

// fakeRenderer replays a scripted sequence of frames and records every
// spec it was handed.
type fakeRenderer struct {
	frames []*Frame
	err    error
	specs  []map[string]any
}

func (f *fakeRenderer) Render(_ context.Context, s map[string]any) (*Frame, error) {
	// Snapshot the fields the coordinator mutates between attempts.
	snap := make(map[string]any, len(s))
	for k, v := range s {
		snap[k] = v
	}
	f.specs = append(f.specs, snap)
	if f.err != nil {
		return nil, f.err
	}
	idx := len(f.specs) - 1
	if idx >= len(f.frames) {
		idx = len(f.frames) - 1
	}
	return f.frames[idx], nil
}

func emptyDoc(t *testing.T) *spec.Document {
	t.Helper()
	return spec.FromMap(map[string]any{"mark": "bar"})
}

func fitting(w, h float64) *Frame {
	return &Frame{SVG: "<svg/>", Bounds: &Bounds{X1: 0, Y1: 0, X2: w, Y2: h}, Width: w, Height: h}
}

func specPadding(t *testing.T, s map[string]any) map[string]any {
	t.Helper()
	p, ok := s["padding"].(map[string]any)
	if !ok {
		t.Fatalf("spec padding is %T, want map", s["padding"])
	}
	return p
}

func TestFit_SingleAttemptWhenContentFits(t *testing.T) {
	r := &fakeRenderer{frames: []*Frame{fitting(800, 400)}}
	c := NewCoordinator(r, nil)

	res, err := c.Fit(context.Background(), emptyDoc(t), 800, 400, DefaultPadding())
	if err != nil {
		t.Fatal(err)
	}
	if res.Attempts != 1 || !res.Fitted {
		t.Errorf("attempts = %d, fitted = %v, want 1 attempt fitted", res.Attempts, res.Fitted)
	}
	if len(r.specs) != 1 {
		t.Errorf("renderer called %d times, want 1", len(r.specs))
	}
}

func TestFit_GrowsOverflowingSidesOnly(t *testing.T) {
	overflowing := &Frame{
		SVG:    "<svg/>",
		Bounds: &Bounds{X1: -5, Y1: 0, X2: 810, Y2: 400},
		Width:  800, Height: 400,
	}
	r := &fakeRenderer{frames: []*Frame{overflowing, fitting(800, 400)}}
	c := NewCoordinator(r, nil)

	res, err := c.Fit(context.Background(), emptyDoc(t), 800, 400, DefaultPadding())
	if err != nil {
		t.Fatal(err)
	}
	if res.Attempts != 2 || !res.Fitted {
		t.Fatalf("attempts = %d, fitted = %v, want 2 attempts fitted", res.Attempts, res.Fitted)
	}

	def := DefaultPadding()
	pad := specPadding(t, r.specs[1])
	// Left overflowed by 5, right by 10: each grows by overflow plus 1.
	if got := pad["left"].(float64); got != def.Left+6 {
		t.Errorf("left = %v, want %v", got, def.Left+6)
	}
	if got := pad["right"].(float64); got != def.Right+11 {
		t.Errorf("right = %v, want %v", got, def.Right+11)
	}
	// Top and bottom fit and stay put.
	if got := pad["top"].(float64); got != def.Top {
		t.Errorf("top = %v, want %v", got, def.Top)
	}
	if got := pad["bottom"].(float64); got != def.Bottom {
		t.Errorf("bottom = %v, want %v", got, def.Bottom)
	}
}

func TestFit_BudgetExhaustionIsNotAnError(t *testing.T) {
	stubborn := &Frame{
		SVG:    "<svg/>",
		Bounds: &Bounds{X1: -5, Y1: 0, X2: 800, Y2: 400},
		Width:  800, Height: 400,
	}
	r := &fakeRenderer{frames: []*Frame{stubborn}}
	c := NewCoordinator(r, nil)

	res, err := c.Fit(context.Background(), emptyDoc(t), 800, 400, DefaultPadding())
	if err != nil {
		t.Fatal(err)
	}
	if res.Fitted {
		t.Error("expected unfitted result")
	}
	if res.Attempts != DefaultMaxAttempts {
		t.Errorf("attempts = %d, want %d", res.Attempts, DefaultMaxAttempts)
	}
	if res.Frame == nil || res.Frame.SVG == "" {
		t.Error("expected the last frame even without convergence")
	}
}

func TestFit_PaddingGrowthIsMonotone(t *testing.T) {
	stubborn := &Frame{
		SVG:    "<svg/>",
		Bounds: &Bounds{X1: -5, Y1: -2, X2: 800, Y2: 400},
		Width:  800, Height: 400,
	}
	r := &fakeRenderer{frames: []*Frame{stubborn}}
	c := NewCoordinator(r, nil)

	if _, err := c.Fit(context.Background(), emptyDoc(t), 800, 400, DefaultPadding()); err != nil {
		t.Fatal(err)
	}
	var prevLeft, prevTop float64 = -1, -1
	for i, s := range r.specs {
		pad := specPadding(t, s)
		if pad["left"].(float64) <= prevLeft || pad["top"].(float64) <= prevTop {
			t.Errorf("attempt %d padding did not grow: %v", i+1, pad)
		}
		prevLeft = pad["left"].(float64)
		prevTop = pad["top"].(float64)
	}
}

func TestFit_ViewSizeCoercedToAtLeastOne(t *testing.T) {
	r := &fakeRenderer{frames: []*Frame{fitting(1, 1)}}
	c := NewCoordinator(r, nil)

	if _, err := c.Fit(context.Background(), emptyDoc(t), 0, -10, DefaultPadding()); err != nil {
		t.Fatal(err)
	}
	s := r.specs[0]
	if s["width"].(float64) != 1 || s["height"].(float64) != 1 {
		t.Errorf("width = %v, height = %v, want 1, 1", s["width"], s["height"])
	}
}

func TestFit_StepHeightPreserved(t *testing.T) {
	doc := spec.FromMap(map[string]any{
		"mark":   "bar",
		"height": map[string]any{"step": 20.0},
	})
	r := &fakeRenderer{frames: []*Frame{fitting(800, 400)}}
	c := NewCoordinator(r, nil)

	if _, err := c.Fit(context.Background(), doc, 800, 400, DefaultPadding()); err != nil {
		t.Fatal(err)
	}
	h, ok := r.specs[0]["height"].(map[string]any)
	if !ok || h["step"] != 20.0 {
		t.Errorf("height = %v, want step map preserved", r.specs[0]["height"])
	}
}

func TestFit_AutosizeApplied(t *testing.T) {
	r := &fakeRenderer{frames: []*Frame{fitting(800, 400)}}
	c := NewCoordinator(r, nil)

	if _, err := c.Fit(context.Background(), emptyDoc(t), 800, 400, DefaultPadding()); err != nil {
		t.Fatal(err)
	}
	auto, ok := r.specs[0]["autosize"].(map[string]any)
	if !ok || auto["type"] != "pad" || auto["contains"] != "padding" {
		t.Errorf("autosize = %v, want pad/padding", r.specs[0]["autosize"])
	}
}

func TestFit_NoBoundsAcceptsFrame(t *testing.T) {
	r := &fakeRenderer{frames: []*Frame{{SVG: "<svg/>", Width: 800, Height: 400}}}
	c := NewCoordinator(r, nil)

	res, err := c.Fit(context.Background(), emptyDoc(t), 800, 400, DefaultPadding())
	if err != nil {
		t.Fatal(err)
	}
	if !res.Fitted || res.Attempts != 1 {
		t.Errorf("fitted = %v, attempts = %d, want single accepted attempt", res.Fitted, res.Attempts)
	}
}

func TestFit_RenderErrorWrapped(t *testing.T) {
	r := &fakeRenderer{err: errors.New(errors.ErrCodeTimeout, "boom")}
	c := NewCoordinator(r, nil)

	_, err := c.Fit(context.Background(), emptyDoc(t), 800, 400, DefaultPadding())
	if !errors.Is(err, errors.ErrCodeRenderFailed) {
		t.Errorf("error = %v, want RENDER_FAILED", err)
	}
}

func TestFit_DoesNotMutateInputDocument(t *testing.T) {
	doc := emptyDoc(t)
	r := &fakeRenderer{frames: []*Frame{fitting(800, 400)}}
	c := NewCoordinator(r, nil)

	if _, err := c.Fit(context.Background(), doc, 800, 400, DefaultPadding()); err != nil {
		t.Fatal(err)
	}
	if _, has := doc.Root()["autosize"]; has {
		t.Error("input document gained an autosize key")
	}
	if _, has := doc.Root()["padding"]; has {
		t.Error("input document gained a padding key")
	}
}

func TestNormalizePadding(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    Padding
		wantErr bool
	}{
		{"nil uses defaults", nil, DefaultPadding(), false},
		{"scalar applies uniformly", 10.0, Padding{10, 10, 10, 10}, false},
		{"int scalar", 7, Padding{7, 7, 7, 7}, false},
		{
			"partial object merges over defaults",
			map[string]any{"left": 40.0},
			Padding{Top: 8, Left: 40, Bottom: 12, Right: 28},
			false,
		},
		{
			"full object",
			map[string]any{"top": 1.0, "bottom": 2.0, "left": 3.0, "right": 4.0},
			Padding{Top: 1, Bottom: 2, Left: 3, Right: 4},
			false,
		},
		{"unknown side", map[string]any{"center": 5.0}, Padding{}, true},
		{"non-numeric side", map[string]any{"top": "big"}, Padding{}, true},
		{"wrong type", "lots", Padding{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePadding(tt.in)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidPadding) {
					t.Fatalf("error = %v, want INVALID_PADDING", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("padding = %+v, want %+v", got, tt.want)
			}
		})
	}
}
