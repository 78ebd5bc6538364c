package ports

import (
	"context"

	"github.com/alejandrodnm/eurokeys/internal/domain"
)

// Notifier presenta el dashboard al usuario.
type Notifier interface {
	// NotifyDashboard muestra las claves sugeridas y las estadísticas.
	// En la implementación de consola, imprime tablas formateadas.
	NotifyDashboard(ctx context.Context, d domain.Dashboard) error
}
