package domain

// RecentWindow es la ventana fija (en sorteos) para contar apariciones recientes.
const RecentWindow = 30

// Huecos medios por defecto cuando un símbolo no tiene historial de huecos.
const (
	DefaultNumberGap = 10.0
	DefaultStarGap   = 5.0
)

// Kind distingue los dos dominios de símbolos de un sorteo.
type Kind int

const (
	KindNumber Kind = iota
	KindStar
)

// String devuelve el nombre del dominio.
func (k Kind) String() string {
	if k == KindStar {
		return "star"
	}
	return "number"
}

// DomainSize devuelve cuántos símbolos tiene el dominio.
func (k Kind) DomainSize() int {
	if k == KindStar {
		return StarDomain
	}
	return NumberDomain
}

// DefaultGap devuelve el hueco medio asumido cuando no hay huecos registrados.
func (k Kind) DefaultGap() float64 {
	if k == KindStar {
		return DefaultStarGap
	}
	return DefaultNumberGap
}

// Series extrae, en orden, los símbolos de este dominio de cada sorteo.
func (k Kind) Series(draws []Draw) [][]int {
	series := make([][]int, len(draws))
	for i, d := range draws {
		if k == KindStar {
			series[i] = d.Stars
		} else {
			series[i] = d.Numbers
		}
	}
	return series
}

// SymbolStat acumula la historia de un símbolo a lo largo de los sorteos.
type SymbolStat struct {
	ID             int
	Count          int
	LastSeenIndex  int   // -1 = nunca visto
	Gaps           []int // Gaps[i] = distancia entre la aparición i y la i-1
	RecentHitCount int   // apariciones dentro de los últimos RecentWindow sorteos
}

// AverageGap devuelve la media de huecos o defaultGap si no hay ninguno.
func (s SymbolStat) AverageGap(defaultGap float64) float64 {
	if len(s.Gaps) == 0 {
		return defaultGap
	}
	sum := 0
	for _, g := range s.Gaps {
		sum += g
	}
	return float64(sum) / float64(len(s.Gaps))
}

// CurrentGap devuelve cuántos sorteos han pasado desde la última aparición.
func (s SymbolStat) CurrentGap(totalDraws int) int {
	return totalDraws - 1 - s.LastSeenIndex
}

// BuildStats recorre la serie en orden (índice 0-based) y construye una
// estadística por símbolo del dominio [1, domainSize]. El resultado está
// indexado por id-1.
//
// Los valores fuera de dominio se ignoran. Un valor repetido dentro del mismo
// sorteo cuenta dos veces y registra un hueco 0.
func BuildStats(series [][]int, domainSize, recentWindow int) []SymbolStat {
	stats := make([]SymbolStat, domainSize)
	for i := range stats {
		stats[i] = SymbolStat{ID: i + 1, LastSeenIndex: -1, Gaps: []int{}}
	}

	total := len(series)
	for index, symbols := range series {
		for _, sym := range symbols {
			if sym < 1 || sym > domainSize {
				continue
			}
			st := &stats[sym-1]
			st.Count++
			if st.LastSeenIndex != -1 {
				st.Gaps = append(st.Gaps, index-st.LastSeenIndex)
			}
			st.LastSeenIndex = index
			if index >= total-recentWindow {
				st.RecentHitCount++
			}
		}
	}
	return stats
}
