package charts

import (
	"bytes"
	"testing"

	"github.com/nayanchhabhaiya/Expense-Tracker/internal/core"
)

func TestRenderCategoryBreakdownEmpty(t *testing.T) {
	d := NewDonut()
	png, err := d.RenderCategoryBreakdown(nil, 400, 400)
	if err != nil {
		t.Fatalf("empty input must not error: %v", err)
	}
	if png != nil {
		t.Fatalf("empty input must render nothing")
	}
}

func TestRenderCategoryBreakdownPNG(t *testing.T) {
	d := NewDonut()
	rows := []core.CategoryAmount{
		{Name: "Housing", Amount: core.Money{Cents: 120000}},
		{Name: "Food", Amount: core.Money{Cents: 45050}},
	}
	png, err := d.RenderCategoryBreakdown(rows, 400, 400)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Fatalf("expected PNG magic, got %x", png[:min(8, len(png))])
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
