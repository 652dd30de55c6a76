package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawBar draws a progress bar for value in [0, limit].
func (r *Renderer) DrawBar(x, y int32, label string, value, limit float32, width int32) int32 {
	ratio := float32(0)
	if limit > 0 {
		ratio = value / limit
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 50

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)
	rl.DrawRectangle(barX, y+2, int32(float32(barWidth)*ratio), r.Theme.BarHeight, r.Theme.BarFill)
	rl.DrawText(fmt.Sprintf("%.2f", value), barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)

	return y + r.Theme.LineHeight + 2
}

// DrawCenteredBar draws a bar centered at 0 for values in [-limit, +limit].
func (r *Renderer) DrawCenteredBar(x, y int32, label string, value, limit float32, width int32) int32 {
	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 50

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)

	centerX := barX + barWidth/2
	rl.DrawLine(centerX, y+2, centerX, y+2+r.Theme.BarHeight, rl.Color{R: 80, G: 80, B: 80, A: 255})

	if limit > 0 {
		ratio := value / limit
		if ratio < -1 {
			ratio = -1
		} else if ratio > 1 {
			ratio = 1
		}
		fillWidth := int32(float32(barWidth/2) * ratio)
		fillX := centerX
		barColor := r.Theme.BarFillPositive
		if fillWidth < 0 {
			fillWidth = -fillWidth
			fillX = centerX - fillWidth
			barColor = r.Theme.BarFillNegative
		}
		rl.DrawRectangle(fillX, y+2, fillWidth, r.Theme.BarHeight, barColor)
	}

	rl.DrawText(fmt.Sprintf("%+.0f", value), barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)

	return y + r.Theme.LineHeight + 2
}
