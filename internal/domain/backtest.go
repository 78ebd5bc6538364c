package domain

// KeyHits son los aciertos de una clave contra un sorteo real.
type KeyHits struct {
	Numbers int
	Stars   int
}

// Aciertos esperados por sorteo de una clave al azar: 5·5/50 y 2·2/12.
const (
	RandomNumberHits = float64(NumbersPerDraw*NumbersPerDraw) / NumberDomain
	RandomStarHits   = float64(StarsPerDraw*StarsPerDraw) / StarDomain
)

// Matches cuenta cuántos números y estrellas de la clave salieron en el sorteo.
func (k SuggestedKey) Matches(d Draw) KeyHits {
	return KeyHits{
		Numbers: intersect(k.Numbers, d.Numbers),
		Stars:   intersect(k.Stars, d.Stars),
	}
}

// BacktestRound es una ronda de replay: claves generadas con los sorteos
// anteriores a Index y aciertos contra el sorteo Index.
type BacktestRound struct {
	Index int
	Line  string
	Keys  KeySet
	Hits  [3]KeyHits // principal, secundaria, hibrida
}

// KeyScore acumula los aciertos de una de las tres claves en todo el replay.
type KeyScore struct {
	Name        string
	NumberHits  int
	StarHits    int
	BestNumbers int
	BestStars   int
}

// AvgNumbers devuelve los aciertos medios de números por ronda.
func (s KeyScore) AvgNumbers(rounds int) float64 {
	if rounds == 0 {
		return 0
	}
	return float64(s.NumberHits) / float64(rounds)
}

// AvgStars devuelve los aciertos medios de estrellas por ronda.
func (s KeyScore) AvgStars(rounds int) float64 {
	if rounds == 0 {
		return 0
	}
	return float64(s.StarHits) / float64(rounds)
}

// Verdict compara el promedio con el de una clave aleatoria.
func (s KeyScore) Verdict(rounds int) string {
	if rounds == 0 {
		return "NO_DATA"
	}
	if s.AvgNumbers(rounds) > RandomNumberHits {
		return "ABOVE_RANDOM"
	}
	return "AT_OR_BELOW_RANDOM"
}

// BacktestResult es el resultado de reproducir los últimos Window sorteos.
type BacktestResult struct {
	Window int
	Rounds []BacktestRound
	Scores [3]KeyScore
}

// Keys devuelve las tres claves en el orden de generación.
func (ks KeySet) Keys() [3]SuggestedKey {
	return [3]SuggestedKey{ks.Principal, ks.Secundaria, ks.Hibrida}
}

// KeyNames son los nombres de las claves en el orden de KeySet.Keys.
var KeyNames = [3]string{"principal", "secundaria", "hibrida"}

func intersect(a, b []int) int {
	set := make(map[int]struct{}, len(b))
	for _, v := range b {
		set[v] = struct{}{}
	}
	n := 0
	for _, v := range a {
		if _, ok := set[v]; ok {
			n++
		}
	}
	return n
}
