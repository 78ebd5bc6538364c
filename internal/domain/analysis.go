package domain

import "sort"

// Analysis es el resultado completo del núcleo: métricas por símbolo, pools y claves.
type Analysis struct {
	TotalDraws  int
	NumberStats []SymbolStat
	StarStats   []SymbolStat
	Numbers     []NumberAnalysis
	Stars       []StarAnalysis
	Pools       Pools
	Keys        KeySet
}

// Analyze ejecuta el pipeline parser → tracker → clasificador → generador.
// Cualquier línea mal formada aborta el lote entero.
func Analyze(lines []string) (Analysis, error) {
	draws, err := ParseDrawLines(lines)
	if err != nil {
		return Analysis{}, err
	}
	return AnalyzeDraws(draws), nil
}

// AnalyzeDraws es Analyze sobre sorteos ya parseados. Determinista: la misma
// entrada produce siempre la misma salida.
func AnalyzeDraws(draws []Draw) Analysis {
	total := len(draws)

	numberStats := BuildStats(KindNumber.Series(draws), KindNumber.DomainSize(), RecentWindow)
	starStats := BuildStats(KindStar.Series(draws), KindStar.DomainSize(), RecentWindow)

	numbers := ClassifyNumbers(numberStats, total)
	stars := ClassifyStars(starStats, total)
	pools := BuildPools(numbers, stars, total)

	return Analysis{
		TotalDraws:  total,
		NumberStats: numberStats,
		StarStats:   starStats,
		Numbers:     numbers,
		Stars:       stars,
		Pools:       pools,
		Keys:        GenerateKeys(pools),
	}
}

// NumberFrequency es la frecuencia de un número en el histórico.
type NumberFrequency struct {
	Number    int `json:"number"`
	Frequency int `json:"frequency"`
}

// OverdueNumber es un número y los sorteos transcurridos desde su última aparición.
type OverdueNumber struct {
	Number   int `json:"number"`
	DrawsAgo int `json:"drawsAgo"`
}

// Frequencies cuenta apariciones por número y por estrella. A diferencia de
// Analyze es tolerante: las líneas que no parsean se saltan y los valores fuera
// de rango se ignoran.
func Frequencies(lines []string) (numbers []int, stars []int) {
	numbers = make([]int, NumberDomain)
	stars = make([]int, StarDomain)
	for _, line := range lines {
		d, err := ParseDrawLine(line)
		if err != nil {
			continue
		}
		for _, n := range d.Numbers {
			if n >= 1 && n <= NumberDomain {
				numbers[n-1]++
			}
		}
		for _, s := range d.Stars {
			if s >= 1 && s <= StarDomain {
				stars[s-1]++
			}
		}
	}
	return numbers, stars
}

// TopNumbers devuelve los n números más frecuentes. Empates por id ascendente.
func TopNumbers(freqs []int, n int) []NumberFrequency {
	all := make([]NumberFrequency, len(freqs))
	for i, f := range freqs {
		all[i] = NumberFrequency{Number: i + 1, Frequency: f}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Frequency > all[j].Frequency })
	if n < len(all) {
		all = all[:n]
	}
	return all
}

// OverdueNumbers devuelve los n números con mayor hueco actual. Empates por id ascendente.
func OverdueNumbers(stats []SymbolStat, totalDraws, n int) []OverdueNumber {
	all := make([]OverdueNumber, len(stats))
	for i, s := range stats {
		all[i] = OverdueNumber{Number: s.ID, DrawsAgo: s.CurrentGap(totalDraws)}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].DrawsAgo > all[j].DrawsAgo })
	if n < len(all) {
		all = all[:n]
	}
	return all
}
