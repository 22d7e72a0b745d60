package carousel_test

import (
	"fmt"

	"github.com/matzehuels/carousel/pkg/carousel"
)

func ExampleResolver_Resolve() {
	r, err := carousel.NewResolver(carousel.DefaultConfig())
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	for _, d := range []float64{0, 50, 100, 300} {
		m := r.Resolve(carousel.LayoutSample{DistanceFromCenter: d})
		fmt.Printf("distance=%v size=%v order=%v\n", d, m.ScaledSize, m.StackOrder)
	}
	// Output:
	// distance=0 size=260 order=1000
	// distance=50 size=230 order=950
	// distance=100 size=200 order=900
	// distance=300 size=200 order=700
}

func ExampleNew_invalidConfig() {
	cfg := carousel.DefaultConfig()
	cfg.ItemBaseSize = 0

	c, err := carousel.New(cfg, nil)
	fmt.Println(c == nil)
	fmt.Println(err)
	// Output:
	// true
	// INVALID_CONFIG: item_base_size must be positive, got 0
}

func ExampleCarousel_Layout() {
	items := []carousel.Item{
		{Source: "a.png", Index: 0},
		{Source: "b.png", Index: 1},
		{Source: "c.png", Index: 2},
	}
	c, err := carousel.New(carousel.DefaultConfig(), items)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	viewport := carousel.Rect{W: 390, H: 300}
	pass := c.Layout(c.SnapTarget(1), viewport)
	for _, card := range pass.DrawOrder() {
		fmt.Printf("%s size=%v order=%v\n", card.Item.Source, card.Metrics.ScaledSize, card.Metrics.StackOrder)
	}
	// Output:
	// c.png size=200 order=790
	// a.png size=200 order=790
	// b.png size=260 order=1000
}
