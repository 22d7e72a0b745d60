package sink_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/matzehuels/carousel/pkg/carousel"
	"github.com/matzehuels/carousel/pkg/render/sink"
)

func ExampleRenderSVG() {
	c, err := carousel.New(carousel.DefaultConfig(), []carousel.Item{
		{Source: "a.png", Index: 0},
		{Source: "b.png", Index: 1},
	})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	pass := c.Layout(c.SnapTarget(0), carousel.Rect{W: 390, H: 300})
	svg := string(sink.RenderSVG(context.Background(), pass))

	fmt.Println("SVG starts with:", svg[:4])
	fmt.Println("Focused card drawn last:", strings.LastIndex(svg, "card-0") > strings.LastIndex(svg, "card-1"))
	// Output:
	// SVG starts with: <svg
	// Focused card drawn last: true
}
