package charts

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/eurokeys/internal/domain"
)

func TestRenderFrequencies(t *testing.T) {
	d := domain.Dashboard{
		TotalDraws:        1868,
		CacheInfo:         domain.CacheInfo{Source: domain.SourceScraping},
		NumberFrequencies: make([]int, domain.NumberDomain),
		StarFrequencies:   make([]int, domain.StarDomain),
	}
	d.NumberFrequencies[0] = 42
	d.StarFrequencies[11] = 7

	var buf bytes.Buffer
	require.NoError(t, RenderFrequencies(&buf, d))

	html := buf.String()
	assert.Contains(t, html, "<html")
	assert.Contains(t, html, "Euromillions frequencies")
	assert.Contains(t, html, "echarts")
}

func TestFrequencyBar_Labels(t *testing.T) {
	bar := frequencyBar("Estrellas", "", []int{3, 1, 4}, starColor)
	require.Len(t, bar.MultiSeries, 1)
	assert.Equal(t, "Estrellas", bar.MultiSeries[0].Name)
}
