package euromillions

import (
	"math/rand/v2"
	"sort"

	"github.com/alejandrodnm/eurokeys/internal/domain"
)

// DefaultSimulatedDraws es aproximadamente el número de sorteos desde 2004.
const DefaultSimulatedDraws = 1868

// Simulate genera n sorteos aleatorios válidos. Se usa cuando no hay ni
// cache ni scraping disponible.
func Simulate(n int, r *rand.Rand) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = domain.FormatDrawLine(domain.Draw{
			Numbers: sample(r, domain.NumberDomain, domain.NumbersPerDraw),
			Stars:   sample(r, domain.StarDomain, domain.StarsPerDraw),
		})
	}
	return lines
}

// sample devuelve k valores distintos de 1..n, ordenados.
func sample(r *rand.Rand, n, k int) []int {
	perm := r.Perm(n)[:k]
	out := make([]int, k)
	for i, p := range perm {
		out[i] = p + 1
	}
	sort.Ints(out)
	return out
}
