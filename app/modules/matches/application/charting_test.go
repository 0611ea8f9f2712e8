package matchservice

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCharts(t *testing.T) {
	manyCountries := make([]CountryCount, 0, 60)
	for i := 0; i < 60; i++ {
		manyCountries = append(manyCountries, CountryCount{Country: string(rune('A'+i%26)) + "XX", Matches: 60 - i})
	}

	tests := []struct {
		name   string
		render func() ([]byte, error)
	}{
		{
			name: "win loss",
			render: func() ([]byte, error) {
				return RenderWinLossChart(winLossBars(WinLoss{Won: 40, Lost: 6}), DefaultPalette)
			},
		},
		{
			name: "win loss with no matches",
			render: func() ([]byte, error) {
				return RenderWinLossChart(winLossBars(WinLoss{}), DefaultPalette)
			},
		},
		{
			name: "empty bars fall back to placeholder",
			render: func() ([]byte, error) {
				return RenderWinLossChart(nil, DefaultPalette)
			},
		},
		{
			name: "many countries are capped",
			render: func() ([]byte, error) {
				return RenderCountryChart(manyCountries, 20, DefaultPalette)
			},
		},
		{
			name: "no countries",
			render: func() ([]byte, error) {
				return RenderCountryChart(nil, 20, DefaultPalette)
			},
		},
		{
			name: "first serve series",
			render: func() ([]byte, error) {
				return RenderFirstServeChart([]SeriesPoint{
					{Date: day("2020-01-06"), Percent: 57.1},
					{Date: day("2020-01-20"), Percent: 60},
					{Date: day("2020-02-17"), Percent: 55.6},
				}, DefaultPalette)
			},
		},
		{
			name: "first serve single date",
			render: func() ([]byte, error) {
				return RenderFirstServeChart([]SeriesPoint{
					{Date: day("2020-01-20"), Percent: 60},
					{Date: day("2020-01-20"), Percent: 70},
				}, DefaultPalette)
			},
		},
		{
			name: "first serve without data",
			render: func() ([]byte, error) {
				return RenderFirstServeChart(nil, DefaultPalette)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			png, err := tt.render()
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(png, pngSignature), "output is a PNG")
		})
	}
}

func TestFirstServeBars(t *testing.T) {
	t.Run("few matches are all labelled", func(t *testing.T) {
		bars := firstServeBars([]SeriesPoint{
			{Date: day("2020-01-06"), Percent: 57.1},
			{Date: day("2020-01-20"), Percent: 60},
		}, DefaultPalette)

		require.Len(t, bars, 2)
		assert.Equal(t, "Jan 6", bars[0].Label)
		assert.Equal(t, "Jan 20", bars[1].Label)
		assert.Equal(t, 60.0, bars[1].Value)
	})

	t.Run("long seasons thin out labels", func(t *testing.T) {
		points := make([]SeriesPoint, 45)
		for i := range points {
			points[i] = SeriesPoint{Date: day("2020-01-06").AddDate(0, 0, i), Percent: float64(i)}
		}

		bars := firstServeBars(points, DefaultPalette)
		require.Len(t, bars, 45)

		labelled := 0
		for i, b := range bars {
			if b.Label != "" {
				labelled++
				assert.Zero(t, i%3, "bar %d", i)
			}
			assert.Equal(t, float64(i), b.Value)
		}
		assert.Equal(t, 15, labelled)
		assert.LessOrEqual(t, labelled, maxDateLabels)
	})
}
