// Package charts renders the category breakdown as a PNG doughnut chart.
package charts

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/nayanchhabhaiya/Expense-Tracker/internal/core"
)

// Renderer is the capability the HTTP layer depends on. Implementations must
// return (nil, nil) when there is nothing to draw so callers can hide the
// chart instead of rendering one with zero slices.
type Renderer interface {
	RenderCategoryBreakdown(rows []core.CategoryAmount, width, height int) ([]byte, error)
}

// palette is cyclically reused, indexed by category order.
var palette = []drawing.Color{
	drawing.ColorFromHex("6366f1"), // primary
	drawing.ColorFromHex("ef4444"), // danger
	drawing.ColorFromHex("10b981"), // success
	drawing.ColorFromHex("f59e0b"), // warning
	drawing.ColorFromHex("8b5cf6"), // purple
	drawing.ColorFromHex("ec4899"), // pink
	drawing.ColorFromHex("14b8a6"), // teal
	drawing.ColorFromHex("f97316"), // orange
	drawing.ColorFromHex("6b7280"), // gray
}

// Donut draws the expense breakdown as a doughnut chart.
type Donut struct{}

func NewDonut() *Donut { return &Donut{} }

func (d *Donut) RenderCategoryBreakdown(rows []core.CategoryAmount, width, height int) ([]byte, error) {
	if len(rows) == 0 {
		return nil, nil // nothing to draw
	}

	var total int64
	for _, r := range rows {
		total += r.Amount.Cents
	}

	values := make([]chart.Value, 0, len(rows))
	for i, r := range rows {
		label := r.Name
		if total > 0 {
			pct := float64(r.Amount.Cents) / float64(total) * 100
			label = fmt.Sprintf("%s: %s (%.0f%%)", r.Name, r.Amount.FormatUSD(), pct)
		}
		values = append(values, chart.Value{
			Label: label,
			Value: r.Amount.Dollars(),
			Style: chart.Style{
				FillColor:   palette[i%len(palette)],
				StrokeColor: chart.ColorWhite,
				StrokeWidth: 2,
				FontSize:    12,
				FontColor:   chart.ColorBlack,
			},
		})
	}

	donut := chart.DonutChart{
		Width:  width,
		Height: height,
		Values: values,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    30,
				Left:   30,
				Right:  30,
				Bottom: 30,
			},
			FillColor: chart.ColorWhite,
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := donut.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render category breakdown: %w", err)
	}
	return buffer.Bytes(), nil
}
