package render

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matzehuels/chartfit/pkg/errors"
)

func TestRemoteRenderer_Render(t *testing.T) {
	var gotSpec map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotSpec); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(Frame{
			SVG:    "<svg/>",
			Bounds: &Bounds{X1: 0, Y1: 0, X2: 100, Y2: 50},
			Width:  100, Height: 50,
		})
	}))
	defer srv.Close()

	r := NewRemoteRenderer(srv.URL)
	frame, err := r.Render(context.Background(), map[string]any{"mark": "bar"})
	if err != nil {
		t.Fatal(err)
	}
	if frame.SVG != "<svg/>" || frame.Bounds == nil || frame.Bounds.X2 != 100 {
		t.Errorf("unexpected frame: %+v", frame)
	}
	if gotSpec["mark"] != "bar" {
		t.Errorf("server saw spec %v", gotSpec)
	}
}

func TestRemoteRenderer_ClientErrorNotRetried(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "bad spec", http.StatusBadRequest)
	}))
	defer srv.Close()

	r := NewRemoteRenderer(srv.URL)
	_, err := r.Render(context.Background(), map[string]any{})
	if !errors.Is(err, errors.ErrCodeRenderFailed) {
		t.Errorf("error = %v, want RENDER_FAILED", err)
	}
	if calls != 1 {
		t.Errorf("server called %d times, want 1", calls)
	}
}

func TestRemoteRenderer_ServerErrorRetried(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 2 {
			http.Error(w, "try again", http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(Frame{SVG: "<svg/>", Width: 1, Height: 1})
	}))
	defer srv.Close()

	r := NewRemoteRenderer(srv.URL)
	frame, err := r.Render(context.Background(), map[string]any{})
	if err != nil {
		t.Fatal(err)
	}
	if frame.SVG != "<svg/>" {
		t.Errorf("unexpected frame: %+v", frame)
	}
	if calls != 2 {
		t.Errorf("server called %d times, want 2", calls)
	}
}
