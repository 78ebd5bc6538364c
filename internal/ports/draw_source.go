package ports

import "context"

// DrawSource obtiene sorteos históricos de una fuente externa (scraping).
type DrawSource interface {
	// FetchDrawHistory devuelve las líneas "n1 n2 n3 n4 n5 + s1 s2" de los años
	// [yearStart, yearEnd] en orden cronológico. Puede devolver resultados parciales.
	FetchDrawHistory(ctx context.Context, yearStart, yearEnd int) ([]string, error)
}
