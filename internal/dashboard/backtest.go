package dashboard

// backtest.go: reproduce los últimos sorteos del histórico para medir cuánto
// habrían acertado las claves sugeridas.
//
// Para cada uno de los últimos `window` sorteos:
// 1. Genera las tres claves usando solo los sorteos anteriores
// 2. Cuenta números y estrellas acertados por cada clave
// 3. Acumula totales y mejores rondas por clave

import (
	"fmt"
	"log/slog"

	"github.com/alejandrodnm/eurokeys/internal/domain"
)

// Backtest ejecuta el replay sobre los últimos window sorteos de lines.
// Una línea mal formada aborta el backtest entero.
func Backtest(lines []string, window int) (domain.BacktestResult, error) {
	draws, err := domain.ParseDrawLines(lines)
	if err != nil {
		return domain.BacktestResult{}, fmt.Errorf("dashboard.Backtest: %w", err)
	}
	if window < 0 {
		return domain.BacktestResult{}, fmt.Errorf("dashboard.Backtest: negative window %d", window)
	}
	if window > len(draws) {
		window = len(draws)
	}

	result := domain.BacktestResult{Window: window}
	for i, name := range domain.KeyNames {
		result.Scores[i].Name = name
	}

	first := len(draws) - window
	for idx := first; idx < len(draws); idx++ {
		a := domain.AnalyzeDraws(draws[:idx])
		round := domain.BacktestRound{
			Index: idx,
			Line:  domain.FormatDrawLine(draws[idx]),
			Keys:  a.Keys,
		}
		for k, key := range a.Keys.Keys() {
			hits := key.Matches(draws[idx])
			round.Hits[k] = hits
			score := &result.Scores[k]
			score.NumberHits += hits.Numbers
			score.StarHits += hits.Stars
			score.BestNumbers = max(score.BestNumbers, hits.Numbers)
			score.BestStars = max(score.BestStars, hits.Stars)
		}
		result.Rounds = append(result.Rounds, round)

		slog.Debug("backtest round",
			"n", fmt.Sprintf("%d/%d", idx-first+1, window),
			"draw", round.Line,
		)
	}

	return result, nil
}
