package returns

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/xirr/internal/models"
)

const (
	defaultChartWidth  = 900
	defaultChartHeight = 400
	maxChartSide       = 4000
)

// RenderProfileChart renders NPV against rate as a PNG line chart, with a
// dashed zero line and, when irr is non-nil, a labelled marker at the root.
// Returns raw PNG bytes.
func RenderProfileChart(points []models.ProfilePoint, irr *float64, width, height int) ([]byte, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("need at least 2 profile points, got %d", len(points))
	}
	width, height = chartSize(width, height)

	rates := make([]float64, len(points))
	npvs := make([]float64, len(points))
	for i, p := range points {
		rates[i] = p.Rate
		npvs[i] = p.NPV
	}

	npvSeries := chart.ContinuousSeries{
		Name: "NPV",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"), // blue-600
			StrokeWidth: 2.5,
		},
		XValues: rates,
		YValues: npvs,
	}

	zeroSeries := chart.ContinuousSeries{
		Name: "Zero",
		Style: chart.Style{
			StrokeColor:     drawing.ColorFromHex("9ca3af"), // gray-400
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{5.0, 3.0},
		},
		XValues: []float64{rates[0], rates[len(rates)-1]},
		YValues: []float64{0, 0},
	}

	series := []chart.Series{npvSeries, zeroSeries}
	if irr != nil && *irr >= rates[0] && *irr <= rates[len(rates)-1] {
		series = append(series, chart.AnnotationSeries{
			Annotations: []chart.Value2{
				{XValue: *irr, YValue: 0, Label: fmt.Sprintf("XIRR %.2f%%", *irr*100)},
			},
		})
	}

	graph := chart.Chart{
		Title:  "NPV Profile",
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Name: "Rate",
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f%%", f*100)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name: "NPV",
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Series: series,
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}

func chartSize(width, height int) (int, int) {
	if width <= 0 {
		width = defaultChartWidth
	}
	if height <= 0 {
		height = defaultChartHeight
	}
	return min(width, maxChartSide), min(height, maxChartSide)
}
