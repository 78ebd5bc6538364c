package ports

import (
	"context"
	"time"

	"github.com/alejandrodnm/eurokeys/internal/domain"
)

// AnalysisCache guarda dashboards ya calculados durante un tiempo limitado.
type AnalysisCache interface {
	Get(ctx context.Context, key string) (domain.Dashboard, bool)
	Set(ctx context.Context, key string, d domain.Dashboard, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
}
