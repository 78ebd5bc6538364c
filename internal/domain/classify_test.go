package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyNumbers_CriticalAndHot(t *testing.T) {
	stats := []SymbolStat{
		{ID: 1, Count: 3, LastSeenIndex: 2, Gaps: []int{1, 1}, RecentHitCount: 3},
		{ID: 2, Count: 0, LastSeenIndex: -1, Gaps: []int{}},
	}
	got := ClassifyNumbers(stats, 10)
	require.Len(t, got, 2)

	// hueco actual = 10-1-2 = 7, medio = 1 → ratio 7
	assert.InDelta(t, 7.0, got[0].OverdueRatio, 1e-9)
	assert.True(t, got[0].IsCritical)
	assert.True(t, got[0].IsHot)
	assert.Equal(t, 3, got[0].Frequency)

	// nunca visto: hueco actual = 10, medio por defecto = 10
	assert.InDelta(t, 1.0, got[1].OverdueRatio, 1e-9)
	assert.False(t, got[1].IsCritical)
	assert.False(t, got[1].IsHot)
}

func TestClassifyStars_Overdue(t *testing.T) {
	stats := []SymbolStat{
		{ID: 1, Count: 2, LastSeenIndex: 2, Gaps: []int{2}, RecentHitCount: 1},
		{ID: 2, Count: 1, LastSeenIndex: 9, Gaps: []int{}, RecentHitCount: 1},
	}
	got := ClassifyStars(stats, 10)

	assert.InDelta(t, 3.5, got[0].OverdueRatio, 1e-9)
	assert.True(t, got[0].IsOverdue)
	assert.False(t, got[0].IsHot)

	assert.Equal(t, 0.0, got[1].OverdueRatio)
	assert.False(t, got[1].IsOverdue)
}

func TestClassify_SingleDrawUsesDefaultGap(t *testing.T) {
	a, err := Analyze([]string{"1 2 3 4 5 + 1 2"})
	require.NoError(t, err)

	for _, n := range a.Numbers {
		if n.ID <= 5 {
			assert.Equal(t, 0.0, n.OverdueRatio)
		} else {
			// hueco actual 1 / medio por defecto 10
			assert.InDelta(t, 0.1, n.OverdueRatio, 1e-9)
		}
	}
	for _, s := range a.Stars {
		if s.ID <= 2 {
			assert.Equal(t, 0.0, s.OverdueRatio)
		} else {
			assert.InDelta(t, 0.2, s.OverdueRatio, 1e-9)
		}
	}
}

func TestClassify_ZeroAverageGapGuard(t *testing.T) {
	// Hueco medio 0 (símbolo repetido dentro de un sorteo): ratio 0 y sin flags.
	stats := []SymbolStat{{ID: 1, Count: 2, LastSeenIndex: 0, Gaps: []int{0}}}
	nums := ClassifyNumbers(stats, 5)
	stars := ClassifyStars(stats, 5)
	assert.Equal(t, 0.0, nums[0].OverdueRatio)
	assert.False(t, nums[0].IsCritical)
	assert.Equal(t, 0.0, stars[0].OverdueRatio)
	assert.False(t, stars[0].IsOverdue)
}

func TestIsPremium(t *testing.T) {
	// 100 sorteos → esperado 2 por número → umbral 2.2
	assert.False(t, IsPremium(2, 100))
	assert.True(t, IsPremium(3, 100))
	assert.False(t, IsPremium(0, 0))
}

func TestBuildPools_StableTieBreak(t *testing.T) {
	numbers := []NumberAnalysis{
		{ID: 1, Frequency: 1, OverdueRatio: 2, IsCritical: true, IsHot: true},
		{ID: 2, Frequency: 2, OverdueRatio: 3, IsCritical: true},
		{ID: 3, Frequency: 1, OverdueRatio: 2, IsCritical: true, IsHot: true},
		{ID: 4, Frequency: 2, OverdueRatio: 3, IsCritical: true},
	}
	stars := []StarAnalysis{
		{ID: 1, OverdueRatio: 1.5, IsOverdue: true},
		{ID: 2, OverdueRatio: 4, IsOverdue: true, IsHot: true},
		{ID: 3, OverdueRatio: 1.5, IsOverdue: true, IsHot: true},
	}

	p := BuildPools(numbers, stars, 10)

	assert.Equal(t, []int{2, 4, 1, 3}, p.Critical)
	assert.Equal(t, []int{1, 3}, p.Hot)
	assert.Equal(t, []int{2, 4, 1, 3}, p.Premium)
	assert.Equal(t, []int{2, 1, 3}, p.OverdueStars)
	assert.Equal(t, []int{2, 3}, p.HotStars)
	assert.Equal(t, []int{1, 2, 3, 4}, p.AllNumbers)
	assert.Equal(t, []int{1, 2, 3}, p.AllStars)
}
