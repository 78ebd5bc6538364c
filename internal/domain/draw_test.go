package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDrawLine_Valid(t *testing.T) {
	d, err := ParseDrawLine("3 14 27 38 50 + 2 11")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 14, 27, 38, 50}, d.Numbers)
	assert.Equal(t, []int{2, 11}, d.Stars)
}

func TestParseDrawLine_WhitespaceTolerant(t *testing.T) {
	d, err := ParseDrawLine("  1  2 3 4 5+6   7 \n")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, d.Numbers)
	assert.Equal(t, []int{6, 7}, d.Stars)
}

func TestParseDrawLine_MissingSeparator(t *testing.T) {
	_, err := ParseDrawLine("1 2 3 4 5 6 7")
	require.Error(t, err)

	var fe *FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, -1, fe.Index)
	assert.Contains(t, fe.Reason, "expected 2 segments")
}

func TestParseDrawLine_TooManySegments(t *testing.T) {
	_, err := ParseDrawLine("1 2 3 + 4 5 + 6")
	assert.Error(t, err)
}

func TestParseDrawLine_NonInteger(t *testing.T) {
	_, err := ParseDrawLine("1 2 x 4 5 + 1 2")
	var fe *FormatError
	require.True(t, errors.As(err, &fe))
	assert.Contains(t, fe.Reason, `"x"`)
}

func TestParseDrawLine_WrongCountsAreAccepted(t *testing.T) {
	// Solo se valida el número de segmentos y que sean enteros.
	d, err := ParseDrawLine("1 2 3 + 1")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, d.Numbers)
	assert.Equal(t, []int{1}, d.Stars)
}

func TestParseDrawLines_ReportsIndex(t *testing.T) {
	_, err := ParseDrawLines([]string{"1 2 3 4 5 + 1 2", "1 2 3 4 5 + 1 2", "garbage"})
	var fe *FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, 2, fe.Index)
	assert.Contains(t, fe.Error(), "draw line 2")
}

func TestFormatDrawLine_Exact(t *testing.T) {
	line := FormatDrawLine(Draw{Numbers: []int{4, 9, 17, 33, 48}, Stars: []int{3, 12}})
	assert.Equal(t, "4 9 17 33 48 + 3 12", line)
}

func TestFormatDrawLine_RoundTrip(t *testing.T) {
	draws := []Draw{
		{Numbers: []int{1, 2, 3, 4, 5}, Stars: []int{1, 2}},
		{Numbers: []int{46, 47, 48, 49, 50}, Stars: []int{11, 12}},
		{Numbers: []int{7, 19, 23, 31, 44}, Stars: []int{5, 9}},
	}
	for _, d := range draws {
		got, err := ParseDrawLine(FormatDrawLine(d))
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}
}
