package ports

import (
	"context"

	"github.com/alejandrodnm/eurokeys/internal/domain"
)

// HistoryProvider entrega el histórico de sorteos listo para analizar.
type HistoryProvider interface {
	// Get devuelve el histórico. Con force=true refresca desde la fuente externa.
	Get(ctx context.Context, force bool) (domain.DrawHistory, error)
}
