package charts

// frequencies.go: gráficos HTML interactivos con las frecuencias del dashboard.

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/alejandrodnm/eurokeys/internal/domain"
)

const (
	chartWidth  = "900px"
	chartHeight = "420px"

	numberColor = "#5470C6"
	starColor   = "#FAC858"
)

// RenderFrequencies escribe en w una página con dos gráficos de barras:
// frecuencia por número (1..50) y por estrella (1..12).
func RenderFrequencies(w io.Writer, d domain.Dashboard) error {
	page := components.NewPage()
	page.PageTitle = "Euromillions frequencies"

	page.AddCharts(
		frequencyBar(
			"Números",
			fmt.Sprintf("%d sorteos analizados", d.TotalDraws),
			d.NumberFrequencies,
			numberColor,
		),
		frequencyBar(
			"Estrellas",
			fmt.Sprintf("fuente: %s", d.CacheInfo.Source),
			d.StarFrequencies,
			starColor,
		),
	)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("charts.RenderFrequencies: %w", err)
	}
	return nil
}

func frequencyBar(title, subtitle string, freqs []int, color string) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  chartWidth,
			Height: chartHeight,
			Theme:  "light",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithColorsOpts(opts.Colors{color}),
	)

	labels := make([]string, len(freqs))
	data := make([]opts.BarData, len(freqs))
	for i, f := range freqs {
		labels[i] = strconv.Itoa(i + 1)
		data[i] = opts.BarData{Value: f}
	}

	bar.SetXAxis(labels).AddSeries(title, data)
	return bar
}
