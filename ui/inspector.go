package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drizzle/inspector"
)

const inspectorWidth = 240

// InspectorPanel renders the hovered drop's state.
type InspectorPanel struct {
	renderer *Renderer
}

// NewInspectorPanel creates a new inspector panel.
func NewInspectorPanel() *InspectorPanel {
	return &InspectorPanel{renderer: NewRenderer()}
}

// Draw renders the panel below the perf readout. A nil snapshot draws a hint.
func (p *InspectorPanel) Draw(sel *inspector.Snapshot, screenWidth int32) {
	r := p.renderer
	padding := r.Theme.Padding
	x := screenWidth - inspectorWidth - 10
	y := int32(130)

	if sel == nil {
		r.DrawPanel(x, y, inspectorWidth, r.Theme.LineHeight+padding*2)
		rl.DrawText("Hover a drop to inspect", x+padding, y+padding, r.Theme.FontSize, r.Theme.LabelColor)
		return
	}

	lines := int32(len(sel.Fields) + 5)
	r.DrawPanel(x, y, inspectorWidth, lines*r.Theme.LineHeight+padding*2+8)

	cx := x + padding
	cy := y + padding
	contentWidth := int32(inspectorWidth) - padding*2

	cy = r.DrawSectionHeader(cx, cy, sel.Kind.String())
	cy = r.DrawLabelValue(cx, cy, "Position", fmt.Sprintf("%.1f, %.1f", sel.X, sel.Y))
	cy = r.DrawLabelValue(cx, cy, "Velocity", fmt.Sprintf("%+.2f, %+.2f", sel.VX, sel.VY))
	cy = r.DrawLabelValue(cx, cy, "Age", inspector.FormatValue(sel.Age, ""))
	cy += 4

	for _, f := range sel.Fields {
		if f.Widget == inspector.WidgetBar {
			if v, ok := inspector.GetFloatValue(f.Value); ok {
				cy = r.DrawBar(cx, cy, f.Name, v, inspector.GetMax(f.Options), contentWidth)
				continue
			}
		}
		cy = r.DrawLabelValue(cx, cy, f.Name, f.Text())
	}
}
