package domain

import "sort"

// Umbrales del clasificador.
const (
	criticalFactor = 2.0 // número crítico: hueco actual > 2× hueco medio
	overdueFactor  = 1.5 // estrella atrasada: hueco actual > 1.5× hueco medio
	hotMinHits     = 2   // caliente: ≥ 2 apariciones en la ventana reciente
	premiumFactor  = 1.1 // premium: frecuencia > 110% de la esperada
)

// NumberAnalysis son las métricas derivadas de un número principal.
type NumberAnalysis struct {
	ID           int     `json:"number"`
	Frequency    int     `json:"freq"`
	OverdueRatio float64 `json:"overdueRatio"`
	IsCritical   bool    `json:"isCritical"`
	IsHot        bool    `json:"isHot"`
}

// StarAnalysis son las métricas derivadas de una estrella.
type StarAnalysis struct {
	ID           int     `json:"star"`
	OverdueRatio float64 `json:"overdueRatio"`
	IsOverdue    bool    `json:"isOverdue"`
	IsHot        bool    `json:"isHot"`
}

// overdue calcula hueco actual, hueco medio y ratio de atraso.
// El ratio es 0 si el hueco medio no es positivo.
func overdue(s SymbolStat, totalDraws int, defaultGap float64) (current, avg, ratio float64) {
	current = float64(s.CurrentGap(totalDraws))
	avg = s.AverageGap(defaultGap)
	if avg > 0 {
		ratio = current / avg
	}
	return current, avg, ratio
}

// ClassifyNumbers devuelve un análisis por número, en orden ascendente de id.
func ClassifyNumbers(stats []SymbolStat, totalDraws int) []NumberAnalysis {
	out := make([]NumberAnalysis, 0, len(stats))
	for _, s := range stats {
		current, avg, ratio := overdue(s, totalDraws, DefaultNumberGap)
		out = append(out, NumberAnalysis{
			ID:           s.ID,
			Frequency:    s.Count,
			OverdueRatio: ratio,
			IsCritical:   avg > 0 && current > avg*criticalFactor,
			IsHot:        s.RecentHitCount >= hotMinHits,
		})
	}
	return out
}

// ClassifyStars devuelve un análisis por estrella, en orden ascendente de id.
func ClassifyStars(stats []SymbolStat, totalDraws int) []StarAnalysis {
	out := make([]StarAnalysis, 0, len(stats))
	for _, s := range stats {
		current, avg, ratio := overdue(s, totalDraws, DefaultStarGap)
		out = append(out, StarAnalysis{
			ID:           s.ID,
			OverdueRatio: ratio,
			IsOverdue:    avg > 0 && current > avg*overdueFactor,
			IsHot:        s.RecentHitCount >= hotMinHits,
		})
	}
	return out
}

// IsPremium indica si la frecuencia supera en un 10% la esperada para totalDraws.
func IsPremium(frequency, totalDraws int) bool {
	return float64(frequency) > float64(totalDraws)/NumberDomain*premiumFactor
}

// Pools son las listas de candidatos (ids) que alimentan al generador de claves.
// Los empates conservan el orden ascendente de id (ordenación estable).
type Pools struct {
	Critical     []int // números críticos, overdueRatio desc
	Hot          []int // números calientes, id asc
	Premium      []int // números premium, frecuencia desc
	OverdueStars []int // estrellas atrasadas, overdueRatio desc
	HotStars     []int // estrellas calientes, id asc
	AllNumbers   []int // todos los números en orden del clasificador
	AllStars     []int // todas las estrellas en orden del clasificador
}

// BuildPools deriva los pools a partir de la salida del clasificador.
func BuildPools(numbers []NumberAnalysis, stars []StarAnalysis, totalDraws int) Pools {
	var critical, hot, premium []NumberAnalysis
	all := make([]int, 0, len(numbers))
	for _, n := range numbers {
		all = append(all, n.ID)
		if n.IsCritical {
			critical = append(critical, n)
		}
		if n.IsHot {
			hot = append(hot, n)
		}
		if IsPremium(n.Frequency, totalDraws) {
			premium = append(premium, n)
		}
	}
	sort.SliceStable(critical, func(i, j int) bool { return critical[i].OverdueRatio > critical[j].OverdueRatio })
	sort.SliceStable(hot, func(i, j int) bool { return hot[i].ID < hot[j].ID })
	sort.SliceStable(premium, func(i, j int) bool { return premium[i].Frequency > premium[j].Frequency })

	var overdueStars, hotStars []StarAnalysis
	allStars := make([]int, 0, len(stars))
	for _, s := range stars {
		allStars = append(allStars, s.ID)
		if s.IsOverdue {
			overdueStars = append(overdueStars, s)
		}
		if s.IsHot {
			hotStars = append(hotStars, s)
		}
	}
	sort.SliceStable(overdueStars, func(i, j int) bool { return overdueStars[i].OverdueRatio > overdueStars[j].OverdueRatio })
	sort.SliceStable(hotStars, func(i, j int) bool { return hotStars[i].ID < hotStars[j].ID })

	return Pools{
		Critical:     numberIDs(critical),
		Hot:          numberIDs(hot),
		Premium:      numberIDs(premium),
		OverdueStars: starIDs(overdueStars),
		HotStars:     starIDs(hotStars),
		AllNumbers:   all,
		AllStars:     allStars,
	}
}

func numberIDs(in []NumberAnalysis) []int {
	ids := make([]int, len(in))
	for i, n := range in {
		ids[i] = n.ID
	}
	return ids
}

func starIDs(in []StarAnalysis) []int {
	ids := make([]int, len(in))
	for i, s := range in {
		ids[i] = s.ID
	}
	return ids
}
