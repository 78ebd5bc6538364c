package euromillions

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/alejandrodnm/eurokeys/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func balls(numbers []string, stars []string) []Ball {
	var out []Ball
	for _, n := range numbers {
		out = append(out, Ball{Text: n})
	}
	for _, s := range stars {
		out = append(out, Ball{Text: s, Star: true})
	}
	return out
}

func TestRowToLine_Valid(t *testing.T) {
	line, ok := RowToLine(balls([]string{"3", "14", "27", "38", "50"}, []string{"2", "11"}))
	require.True(t, ok)
	assert.Equal(t, "3 14 27 38 50 + 2 11", line)
}

func TestRowToLine_NormalizesLeadingZeros(t *testing.T) {
	line, ok := RowToLine(balls([]string{"03", "14", "27", "38", "50"}, []string{"02", "11"}))
	require.True(t, ok)
	assert.Equal(t, "3 14 27 38 50 + 2 11", line)
}

func TestRowToLine_IgnoresNonDigitBalls(t *testing.T) {
	row := balls([]string{"3", "14", "27", "38", "50"}, []string{"2", "11"})
	row = append(row, Ball{Text: "Millionaire Maker"}, Ball{Text: ""}, Ball{Text: "★", Star: true})

	line, ok := RowToLine(row)
	require.True(t, ok)
	assert.Equal(t, "3 14 27 38 50 + 2 11", line)
}

func TestRowToLine_WrongCounts(t *testing.T) {
	_, ok := RowToLine(balls([]string{"3", "14", "27", "38"}, []string{"2", "11"}))
	assert.False(t, ok)

	_, ok = RowToLine(balls([]string{"3", "14", "27", "38", "50"}, []string{"2"}))
	assert.False(t, ok)
}

func TestRowsToLines_SkipsInvalidRows(t *testing.T) {
	rows := []Row{
		{Date: "14-02-2025", Balls: balls([]string{"6", "7", "8", "9", "10"}, []string{"3", "4"})},
		{Date: "11-02-2025"},
		{Date: "07-02-2025", Balls: balls([]string{"1", "2", "3", "4", "5"}, []string{"1", "2"})},
	}
	assert.Equal(t, []string{"1 2 3 4 5 + 1 2", "6 7 8 9 10 + 3 4"}, RowsToLines(rows))
}

func TestRowsToLines_NewestFirstPageIsChronological(t *testing.T) {
	// la página lista D3, D2, D1
	rows := []Row{
		{Date: "14-01-2025", Balls: balls([]string{"11", "12", "13", "14", "15"}, []string{"5", "6"})},
		{Date: "10-01-2025", Balls: balls([]string{"6", "7", "8", "9", "10"}, []string{"3", "4"})},
		{Date: "07-01-2025", Balls: balls([]string{"1", "2", "3", "4", "5"}, []string{"1", "2"})},
	}
	assert.Equal(t, []string{
		"1 2 3 4 5 + 1 2",
		"6 7 8 9 10 + 3 4",
		"11 12 13 14 15 + 5 6",
	}, RowsToLines(rows))
}

func TestRowsToLines_SortsByDate(t *testing.T) {
	rows := []Row{
		{Date: "10-01-2025", Balls: balls([]string{"6", "7", "8", "9", "10"}, []string{"3", "4"})},
		{Date: "14-01-2025", Balls: balls([]string{"11", "12", "13", "14", "15"}, []string{"5", "6"})},
		{Date: "07-01-2025", Balls: balls([]string{"1", "2", "3", "4", "5"}, []string{"1", "2"})},
	}
	assert.Equal(t, []string{
		"1 2 3 4 5 + 1 2",
		"6 7 8 9 10 + 3 4",
		"11 12 13 14 15 + 5 6",
	}, RowsToLines(rows))
}

func TestRowsToLines_WithoutDatesReversesPageOrder(t *testing.T) {
	rows := []Row{
		{Balls: balls([]string{"11", "12", "13", "14", "15"}, []string{"5", "6"})},
		{Date: "not-a-date", Balls: balls([]string{"6", "7", "8", "9", "10"}, []string{"3", "4"})},
		{Balls: balls([]string{"1", "2", "3", "4", "5"}, []string{"1", "2"})},
	}
	assert.Equal(t, []string{
		"1 2 3 4 5 + 1 2",
		"6 7 8 9 10 + 3 4",
		"11 12 13 14 15 + 5 6",
	}, RowsToLines(rows))
}

func TestRowsToLines_Empty(t *testing.T) {
	assert.Empty(t, RowsToLines(nil))
}

func TestSimulate_ValidDraws(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	lines := Simulate(200, r)
	require.Len(t, lines, 200)

	draws, err := domain.ParseDrawLines(lines)
	require.NoError(t, err)
	for _, d := range draws {
		require.Len(t, d.Numbers, 5)
		require.Len(t, d.Stars, 2)
		assert.IsIncreasing(t, d.Numbers)
		assert.IsIncreasing(t, d.Stars)
		assert.GreaterOrEqual(t, d.Numbers[0], 1)
		assert.LessOrEqual(t, d.Numbers[4], 50)
		assert.GreaterOrEqual(t, d.Stars[0], 1)
		assert.LessOrEqual(t, d.Stars[1], 12)
	}
}

func TestSimulate_SeedIsReproducible(t *testing.T) {
	a := Simulate(10, rand.New(rand.NewPCG(7, 7)))
	b := Simulate(10, rand.New(rand.NewPCG(7, 7)))
	assert.Equal(t, a, b)
}

func TestNewScraper_Defaults(t *testing.T) {
	s := NewScraper(Config{Retries: -1})
	assert.Equal(t, defaultBaseURL, s.cfg.BaseURL)
	assert.Equal(t, defaultPageTimeout, s.cfg.PageTimeout)
	assert.Equal(t, defaultRetries, s.cfg.Retries)
	assert.InDelta(t, 1.0, float64(s.limiter.Limit()), 1e-9)

	s = NewScraper(Config{BaseURL: "http://localhost:9999", PageTimeout: 2 * time.Second, RequestsPerSecond: 4})
	assert.Equal(t, "http://localhost:9999", s.cfg.BaseURL)
	assert.Equal(t, 2*time.Second, s.cfg.PageTimeout)
	assert.Equal(t, 0, s.cfg.Retries)
}
