package frame

import (
	"errors"
	"io/fs"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/carousel/pkg/carousel"
)

func testPass(t *testing.T) carousel.Pass {
	t.Helper()
	items := []carousel.Item{
		{Source: "a.png", Index: 0},
		{Source: "b.png", Index: 1},
		{Source: "c.png", Index: 2},
		{Source: "d.png", Index: 3},
		{Source: "e.png", Index: 4},
	}
	c, err := carousel.New(carousel.DefaultConfig(), items)
	if err != nil {
		t.Fatalf("carousel.New() error: %v", err)
	}
	return c.Layout(c.SnapTarget(2), carousel.Rect{W: 390, H: 300})
}

func TestFromPass(t *testing.T) {
	f := FromPass(testPass(t))

	if f.Focused != 2 {
		t.Errorf("Focused = %d, want 2", f.Focused)
	}
	if len(f.Cards) != 5 {
		t.Fatalf("len(Cards) = %d, want 5", len(f.Cards))
	}

	c := f.Cards[2]
	if c.Source != "c.png" || c.ScaledSize != 260 || c.StackOrder != 1000 || c.Distance != 0 {
		t.Errorf("Cards[2] = %+v", c)
	}
	if want := (Rect{X: 65, Y: 20, W: 260, H: 260}); c.Rect != want {
		t.Errorf("Cards[2].Rect = %+v, want %+v", c.Rect, want)
	}

	var visible []int
	for _, c := range f.Cards {
		if c.Visible {
			visible = append(visible, c.Index)
		}
	}
	if len(visible) != 3 || visible[0] != 1 || visible[2] != 3 {
		t.Errorf("visible cards = %v, want [1 2 3]", visible)
	}
}

func TestFromEmptyPass(t *testing.T) {
	f := FromPass(carousel.Pass{Viewport: carousel.Rect{W: 390, H: 300}})
	if f.Focused != -1 {
		t.Errorf("Focused = %d, want -1", f.Focused)
	}
}

func TestPassRoundTrip(t *testing.T) {
	p := testPass(t)
	got := FromPass(p).Pass()

	if got.Offset != p.Offset || got.Viewport != p.Viewport || got.Config != p.Config {
		t.Errorf("pass header mismatch: got %+v", got)
	}
	for i := range p.Cards {
		if got.Cards[i] != p.Cards[i] {
			t.Errorf("Cards[%d] = %+v, want %+v", i, got.Cards[i], p.Cards[i])
		}
	}
}

func TestMarshalUnmarshal(t *testing.T) {
	f := FromPass(testPass(t))
	data, err := Marshal(f)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if !strings.Contains(string(data), `"scaled_size": 260`) {
		t.Errorf("Marshal() output missing scaled_size:\n%s", data)
	}

	back, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if back.Focused != f.Focused || len(back.Cards) != len(f.Cards) || back.Cards[4] != f.Cards[4] {
		t.Errorf("Unmarshal() = %+v, want %+v", back, f)
	}
}

func TestUnmarshalRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `{`},
		{"out of order cards", `{"viewport":{"w":390,"h":300},"cards":[{"index":1}]}`},
		{"empty viewport", `{"viewport":{"w":0,"h":300},"cards":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Unmarshal([]byte(tt.data)); err == nil {
				t.Error("Unmarshal() expected error")
			}
		})
	}
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.json")
	f := FromPass(testPass(t))

	if err := WriteFile(f, path); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	back, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if back.Offset != f.Offset {
		t.Errorf("Offset = %v, want %v", back.Offset, f.Offset)
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile(missing) error = %v, want not-exist", err)
	}
}


func TestSerializedTypesUseJSONTagsOnly(t *testing.T) {
	for _, v := range []any{Frame{}, Card{}, Rect{}, carousel.Config{}, carousel.Item{}} {
		typ := reflect.TypeOf(v)
		for i := 0; i < typ.NumField(); i++ {
			f := typ.Field(i)
			if f.Tag.Get("json") == "" {
				t.Errorf("%s.%s has no json tag", typ.Name(), f.Name)
			}
			if _, ok := f.Tag.Lookup("bson"); ok {
				t.Errorf("%s.%s has a bson tag but is never stored in MongoDB", typ.Name(), f.Name)
			}
		}
	}
}
