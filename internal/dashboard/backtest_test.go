package dashboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/eurokeys/internal/domain"
)

var backtestLines = []string{
	"1 2 3 4 5 + 1 2",
	"6 7 8 9 10 + 3 4",
	"1 6 11 16 21 + 1 5",
	"2 12 22 32 42 + 2 6",
	"5 10 15 20 25 + 7 8",
	"30 31 32 33 34 + 9 10",
}

func TestBacktest_FirstDrawUsesEmptyHistoryKeys(t *testing.T) {
	res, err := Backtest([]string{"1 2 3 4 5 + 1 2"}, 1)
	require.NoError(t, err)
	require.Len(t, res.Rounds, 1)

	r := res.Rounds[0]
	assert.Equal(t, 0, r.Index)
	assert.Equal(t, domain.KeyHits{Numbers: 5, Stars: 2}, r.Hits[0])
	assert.Equal(t, domain.KeyHits{}, r.Hits[1])
	assert.Equal(t, domain.KeyHits{}, r.Hits[2])

	assert.Equal(t, "principal", res.Scores[0].Name)
	assert.Equal(t, 5, res.Scores[0].BestNumbers)
	assert.Equal(t, 2, res.Scores[0].BestStars)
}

func TestBacktest_ScoresMatchRounds(t *testing.T) {
	res, err := Backtest(backtestLines, 4)
	require.NoError(t, err)
	require.Len(t, res.Rounds, 4)
	assert.Equal(t, 4, res.Window)
	assert.Equal(t, 2, res.Rounds[0].Index)

	draws, err := domain.ParseDrawLines(backtestLines)
	require.NoError(t, err)

	var sums [3]domain.KeyHits
	for _, r := range res.Rounds {
		assert.Equal(t, backtestLines[r.Index], r.Line)
		assert.Equal(t, domain.AnalyzeDraws(draws[:r.Index]).Keys, r.Keys, "solo sorteos anteriores")
		for k, key := range r.Keys.Keys() {
			assert.Equal(t, key.Matches(draws[r.Index]), r.Hits[k])
			sums[k].Numbers += r.Hits[k].Numbers
			sums[k].Stars += r.Hits[k].Stars
		}
	}
	for k := range sums {
		assert.Equal(t, sums[k].Numbers, res.Scores[k].NumberHits)
		assert.Equal(t, sums[k].Stars, res.Scores[k].StarHits)
	}
}

func TestBacktest_WindowClamped(t *testing.T) {
	res, err := Backtest(backtestLines, 100)
	require.NoError(t, err)
	assert.Equal(t, len(backtestLines), res.Window)
	assert.Len(t, res.Rounds, len(backtestLines))
}

func TestBacktest_ZeroWindow(t *testing.T) {
	res, err := Backtest(backtestLines, 0)
	require.NoError(t, err)
	assert.Empty(t, res.Rounds)
	assert.Equal(t, "NO_DATA", res.Scores[0].Verdict(len(res.Rounds)))
}

func TestBacktest_NegativeWindow(t *testing.T) {
	_, err := Backtest(backtestLines, -1)
	assert.Error(t, err)
}

func TestBacktest_MalformedLine(t *testing.T) {
	_, err := Backtest([]string{"1 2 3 4 5 + 1 2", "1 2 3"}, 2)
	require.Error(t, err)

	var fe *domain.FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, 1, fe.Index)
}
