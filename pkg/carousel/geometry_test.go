package carousel

import "testing"

func TestRectMid(t *testing.T) {
	tests := []struct {
		name     string
		rect     Rect
		wantMidX float64
		wantMidY float64
		wantMaxX float64
	}{
		{"origin", Rect{W: 100, H: 50}, 50, 25, 100},
		{"offset", Rect{X: 10, Y: 20, W: 40, H: 60}, 30, 50, 50},
		{"negative x", Rect{X: -120, W: 220, H: 220}, -10, 110, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rect.MidX(); got != tt.wantMidX {
				t.Errorf("MidX() = %v, want %v", got, tt.wantMidX)
			}
			if got := tt.rect.MidY(); got != tt.wantMidY {
				t.Errorf("MidY() = %v, want %v", got, tt.wantMidY)
			}
			if got := tt.rect.MaxX(); got != tt.wantMaxX {
				t.Errorf("MaxX() = %v, want %v", got, tt.wantMaxX)
			}
		})
	}
}

func TestRectIntersects(t *testing.T) {
	vp := Rect{W: 390, H: 300}

	tests := []struct {
		name string
		rect Rect
		want bool
	}{
		{"inside", Rect{X: 10, Y: 10, W: 50, H: 50}, true},
		{"straddles left edge", Rect{X: -20, Y: 10, W: 50, H: 50}, true},
		{"touches right edge", Rect{X: 390, Y: 10, W: 50, H: 50}, false},
		{"fully left", Rect{X: -200, Y: 10, W: 100, H: 50}, false},
		{"below", Rect{X: 10, Y: 300, W: 50, H: 50}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rect.Intersects(vp); got != tt.want {
				t.Errorf("Intersects() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCenteredSquare(t *testing.T) {
	frame := Rect{X: 85, Y: 40, W: 220, H: 220}
	got := frame.CenteredSquare(260)
	want := Rect{X: 65, Y: 20, W: 260, H: 260}
	if got != want {
		t.Errorf("CenteredSquare() = %+v, want %+v", got, want)
	}
}

func TestMeasure(t *testing.T) {
	viewport := Rect{X: 0, Y: 0, W: 400, H: 300}

	tests := []struct {
		name         string
		item         Rect
		wantDistance float64
		wantItemMid  float64
	}{
		{"centered", Rect{X: 90, W: 220}, 0, 200},
		{"right of center", Rect{X: 140, W: 220}, 50, 250},
		{"left of center", Rect{X: 40, W: 220}, 50, 150},
		{"far off screen", Rect{X: -2000, W: 220}, 2090, -1890},
		{"negative width passes through", Rect{X: 300, W: -100}, 50, 250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Measure(7, tt.item, viewport)
			if s.Index != 7 {
				t.Errorf("Index = %d, want 7", s.Index)
			}
			if s.DistanceFromCenter != tt.wantDistance {
				t.Errorf("DistanceFromCenter = %v, want %v", s.DistanceFromCenter, tt.wantDistance)
			}
			if s.ItemMidX != tt.wantItemMid {
				t.Errorf("ItemMidX = %v, want %v", s.ItemMidX, tt.wantItemMid)
			}
			if s.ViewportMidX != 200 {
				t.Errorf("ViewportMidX = %v, want 200", s.ViewportMidX)
			}
			if s.DistanceFromCenter < 0 {
				t.Errorf("DistanceFromCenter = %v, want non-negative", s.DistanceFromCenter)
			}
		})
	}
}

func TestMeasureUsesViewportOrigin(t *testing.T) {
	// The same item is centered in a viewport that starts at x=1000.
	s := Measure(0, Rect{X: 1090, W: 220}, Rect{X: 1000, W: 400})
	if s.DistanceFromCenter != 0 {
		t.Errorf("DistanceFromCenter = %v, want 0", s.DistanceFromCenter)
	}
}
