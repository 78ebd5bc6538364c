package domain

import "sort"

// SuggestedKey es una combinación sugerida: 5 números y 2 estrellas, ordenados.
type SuggestedKey struct {
	Numbers []int `json:"numbers"`
	Stars   []int `json:"stars"`
}

// KeySet son las tres claves de una ejecución del análisis.
// Sus números son disjuntos dos a dos, y sus estrellas también.
type KeySet struct {
	Principal  SuggestedKey `json:"principal"`
	Secundaria SuggestedKey `json:"secundaria"`
	Hibrida    SuggestedKey `json:"hibrida"`
}

// DefaultKeySet es el juego fijo que se muestra cuando no hay análisis.
func DefaultKeySet() KeySet {
	return KeySet{
		Principal:  SuggestedKey{Numbers: []int{19, 23, 28, 34, 44}, Stars: []int{2, 11}},
		Secundaria: SuggestedKey{Numbers: []int{1, 3, 4, 21, 42}, Stars: []int{1, 3}},
		Hibrida:    SuggestedKey{Numbers: []int{6, 8, 10, 29, 50}, Stars: []int{4, 10}},
	}
}

// Source es un pool con su cuota. La cuota es el tamaño objetivo acumulado de
// la clave tras consumir este pool, no un incremento.
type Source struct {
	Pool  []int
	Quota int
}

// UsedSets acumula los símbolos ya colocados en claves anteriores de la misma
// ejecución. Cada ejecución crea los suyos; nunca se comparten entre ejecuciones.
type UsedSets struct {
	Numbers map[int]struct{}
	Stars   map[int]struct{}
}

// NewUsedSets crea conjuntos vacíos.
func NewUsedSets() *UsedSets {
	return &UsedSets{
		Numbers: make(map[int]struct{}),
		Stars:   make(map[int]struct{}),
	}
}

// GenerateKey construye una clave a partir de las fuentes dadas, sin repetir
// símbolos presentes en used. Al terminar, los símbolos de la clave se añaden a used.
//
//  1. Cada fuente se recorre en orden; se añaden ids no usados hasta que la
//     clave alcanza la cuota de esa fuente.
//  2. Si faltan números: primer id libre de Premium ++ AllNumbers, y si no hay,
//     el primer libre de 1..50. Lo mismo para estrellas con HotStars ++ AllStars
//     y 1..12.
func GenerateKey(pools Pools, numberSources, starSources []Source, used *UsedSets) SuggestedKey {
	tempNumbers := make(map[int]struct{})
	tempStars := make(map[int]struct{})

	numbers := fillFromSources(numberSources, used.Numbers, tempNumbers)
	stars := fillFromSources(starSources, used.Stars, tempStars)

	fallbackNumbers := append(append([]int{}, pools.Premium...), pools.AllNumbers...)
	for len(numbers) < NumbersPerDraw {
		n := firstFree(fallbackNumbers, NumberDomain, used.Numbers, tempNumbers)
		numbers = append(numbers, n)
		tempNumbers[n] = struct{}{}
	}

	fallbackStars := append(append([]int{}, pools.HotStars...), pools.AllStars...)
	for len(stars) < StarsPerDraw {
		s := firstFree(fallbackStars, StarDomain, used.Stars, tempStars)
		stars = append(stars, s)
		tempStars[s] = struct{}{}
	}

	for n := range tempNumbers {
		used.Numbers[n] = struct{}{}
	}
	for s := range tempStars {
		used.Stars[s] = struct{}{}
	}

	sort.Ints(numbers)
	sort.Ints(stars)
	return SuggestedKey{Numbers: numbers, Stars: stars}
}

// GenerateKeys produce principal, secundaria e híbrida, en ese orden, sobre
// los mismos conjuntos de usados.
func GenerateKeys(pools Pools) KeySet {
	used := NewUsedSets()

	principal := GenerateKey(pools,
		[]Source{{pools.Critical, 2}, {pools.Premium, 5}},
		[]Source{{pools.OverdueStars, 2}},
		used,
	)
	secundaria := GenerateKey(pools,
		[]Source{{pools.Hot, 3}, {pools.Premium, 5}},
		[]Source{{pools.HotStars, 2}},
		used,
	)
	hibrida := GenerateKey(pools,
		[]Source{{pools.Critical, 1}, {pools.Hot, 3}, {pools.Premium, 5}},
		[]Source{{pools.OverdueStars, 1}, {pools.HotStars, 2}},
		used,
	)

	return KeySet{Principal: principal, Secundaria: secundaria, Hibrida: hibrida}
}

func fillFromSources(sources []Source, used, temp map[int]struct{}) []int {
	var out []int
	for _, src := range sources {
		for _, id := range src.Pool {
			if len(out) >= src.Quota {
				break
			}
			if isUsed(id, used, temp) {
				continue
			}
			out = append(out, id)
			temp[id] = struct{}{}
		}
	}
	return out
}

// firstFree devuelve el primer id libre de candidates, o el primero libre de
// 1..domain. Con menos claves que símbolos en el dominio siempre hay uno.
func firstFree(candidates []int, domain int, used, temp map[int]struct{}) int {
	for _, id := range candidates {
		if !isUsed(id, used, temp) {
			return id
		}
	}
	for id := 1; id <= domain; id++ {
		if !isUsed(id, used, temp) {
			return id
		}
	}
	return 0
}

func isUsed(id int, used, temp map[int]struct{}) bool {
	if _, ok := used[id]; ok {
		return true
	}
	_, ok := temp[id]
	return ok
}
