package cli

import (
	"context"
	"testing"

	"github.com/matzehuels/chartfit/pkg/cache"
)

func TestParsePaddingFlag(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    any
		wantErr bool
	}{
		{"empty is nil", "", nil, false},
		{"number", "10", 10.0, false},
		{"decimal", "7.5", 7.5, false},
		{"object", `{"left": 40}`, map[string]any{"left": 40.0}, false},
		{"garbage", "wide", nil, true},
		{"array", "[1, 2]", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePaddingFlag(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			switch want := tt.want.(type) {
			case nil:
				if got != nil {
					t.Errorf("got %v, want nil", got)
				}
			case float64:
				if got != want {
					t.Errorf("got %v, want %v", got, want)
				}
			case map[string]any:
				m, ok := got.(map[string]any)
				if !ok || m["left"] != want["left"] {
					t.Errorf("got %v, want %v", got, want)
				}
			}
		})
	}
}

func TestBuildCache(t *testing.T) {
	ctx := context.Background()

	c, err := buildCache(ctx, "off")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*cache.NullCache); !ok {
		t.Errorf("cache = %T, want NullCache", c)
	}

	dir := t.TempDir()
	c, err = buildCache(ctx, dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*cache.FileCache); !ok {
		t.Errorf("cache = %T, want FileCache", c)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  renderOpts
		want  string
	}{
		{"explicit output", "chart.json", renderOpts{output: "out.svg"}, "out.svg"},
		{"derived from input", "chart.json", renderOpts{}, "chart.svg"},
		{"derived from chart ID", "", renderOpts{chartID: "abc"}, "abc.svg"},
		{"stdout", "chart.json", renderOpts{output: "-"}, "-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.input, &tt.opts); got != tt.want {
				t.Errorf("outputPath = %q, want %q", got, tt.want)
			}
		})
	}
}
