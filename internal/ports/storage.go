package ports

import (
	"context"

	"github.com/alejandrodnm/eurokeys/internal/domain"
)

// DrawStore persiste el histórico de sorteos entre ejecuciones.
type DrawStore interface {
	// LoadDraws devuelve el último histórico guardado.
	// ok=false si todavía no se guardó ninguno.
	LoadDraws(ctx context.Context) (history domain.DrawHistory, ok bool, err error)

	// SaveDraws reemplaza el histórico guardado.
	SaveDraws(ctx context.Context, history domain.DrawHistory) error

	// Close libera los recursos del almacenamiento.
	Close() error
}
