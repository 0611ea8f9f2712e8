package matchservice

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartPalette colours every rendered chart.
type ChartPalette struct {
	Background drawing.Color
	TextColor  drawing.Color
	Won        drawing.Color
	Lost       drawing.Color
	Serve      drawing.Color
	Country    drawing.Color
}

// DefaultPalette matches the dashboard's stylesheet.
var DefaultPalette = ChartPalette{
	Background: drawing.ColorWhite,
	TextColor:  drawing.Color{R: 102, G: 51, B: 153, A: 255},
	Won:        drawing.Color{R: 102, G: 178, B: 255, A: 255},
	Lost:       drawing.Color{R: 204, G: 0, B: 0, A: 255},
	Serve:      drawing.Color{R: 147, G: 112, B: 219, A: 255},
	Country:    drawing.Color{R: 46, G: 139, B: 87, A: 255},
}

const (
	chartWidth  = 800
	chartHeight = 400
)

// RenderWinLossChart draws the wins/losses bar chart as a PNG.
func RenderWinLossChart(bars []Bar, palette ChartPalette) ([]byte, error) {
	colors := []drawing.Color{palette.Won, palette.Lost}
	values := make([]chart.Value, len(bars))
	maxV := 0
	for i, b := range bars {
		values[i] = chart.Value{
			Label: b.Label,
			Value: float64(b.Value),
			Style: chart.Style{
				FillColor:   colors[i%len(colors)],
				StrokeColor: colors[i%len(colors)],
			},
		}
		maxV = max(maxV, b.Value)
	}
	if len(values) == 0 {
		return renderNoDataPlaceholder(palette, "No matches found")
	}

	graph := barChart("Games won vs. games lost", values, maxV, palette)
	graph.BarWidth = 120
	graph.BarSpacing = 100
	return renderPNG(graph)
}

// RenderCountryChart draws match wins per country as a bar chart. Only the
// first limit entries are drawn; counts must already be sorted.
func RenderCountryChart(counts []CountryCount, limit int, palette ChartPalette) ([]byte, error) {
	if limit > 0 && len(counts) > limit {
		counts = counts[:limit]
	}
	if len(counts) == 0 {
		return renderNoDataPlaceholder(palette, "No countries found")
	}

	values := make([]chart.Value, len(counts))
	maxV := 0
	for i, c := range counts {
		values[i] = chart.Value{
			Label: c.Country,
			Value: float64(c.Matches),
			Style: chart.Style{FillColor: palette.Country, StrokeColor: palette.Country},
		}
		maxV = max(maxV, c.Matches)
	}

	graph := barChart("Match wins by country of origin", values, maxV, palette)
	graph.BarSpacing = 6
	graph.BarWidth = max(4, (chartWidth-120)/len(values)-graph.BarSpacing)
	return renderPNG(graph)
}

// RenderFirstServeChart draws first-serve win % per match as bars in date
// order. Dates label at most maxDateLabels bars.
func RenderFirstServeChart(points []SeriesPoint, palette ChartPalette) ([]byte, error) {
	if len(points) == 0 {
		return renderNoDataPlaceholder(palette, "No serve data found")
	}

	graph := barChart("1st serve percentage", firstServeBars(points, palette), 100, palette)
	graph.YAxis.Range = &chart.ContinuousRange{Min: 0, Max: 100}
	graph.BarSpacing = 2
	graph.BarWidth = max(2, (chartWidth-120)/len(points)-graph.BarSpacing)
	return renderPNG(graph)
}

const maxDateLabels = 20

func firstServeBars(points []SeriesPoint, palette ChartPalette) []chart.Value {
	step := (len(points) + maxDateLabels - 1) / maxDateLabels
	values := make([]chart.Value, len(points))
	for i, p := range points {
		label := ""
		if i%step == 0 {
			label = p.Date.Format("Jan 2")
		}
		values[i] = chart.Value{
			Label: label,
			Value: p.Percent,
			Style: chart.Style{FillColor: palette.Serve, StrokeColor: palette.Serve},
		}
	}
	return values
}

func barChart(title string, values []chart.Value, maxV int, palette ChartPalette) chart.BarChart {
	top := float64(maxV) * 1.1
	if top < 1 {
		top = 1
	}
	return chart.BarChart{
		Title:      title,
		TitleStyle: chart.Style{FontColor: palette.TextColor},
		Width:      chartWidth,
		Height:     chartHeight,
		Background: chart.Style{FillColor: palette.Background},
		Canvas:     chart.Style{FillColor: palette.Background},
		XAxis:      chart.Style{FontColor: palette.TextColor},
		YAxis: chart.YAxis{
			Style: chart.Style{FontColor: palette.TextColor},
			Range: &chart.ContinuousRange{Min: 0, Max: top},
		},
		Bars: values,
	}
}

func renderPNG(graph chart.BarChart) ([]byte, error) {
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("render %q: %w", graph.Title, err)
	}
	return buffer.Bytes(), nil
}

// renderNoDataPlaceholder draws msg centred on a blank canvas.
func renderNoDataPlaceholder(palette ChartPalette, msg string) ([]byte, error) {
	const (
		width  = 400
		height = 200
	)

	r, err := chart.PNG(width, height)
	if err != nil {
		return nil, err
	}

	r.SetFillColor(palette.Background)
	r.MoveTo(0, 0)
	r.LineTo(width, 0)
	r.LineTo(width, height)
	r.LineTo(0, height)
	r.Close()
	r.Fill()

	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, err
	}
	r.SetFont(font)
	r.SetFontColor(palette.TextColor)
	r.SetFontSize(12.0)
	tb := r.MeasureText(msg)
	r.Text(msg, (width-tb.Width())/2, (height+tb.Height())/2)

	buffer := bytes.NewBuffer([]byte{})
	if err := r.Save(buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
