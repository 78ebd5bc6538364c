package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/alejandrodnm/eurokeys/internal/domain"
	"github.com/alejandrodnm/eurokeys/internal/ports"
)

// CacheKey es la clave bajo la que se guarda el dashboard calculado.
const CacheKey = "dashboard"

const (
	defaultCacheTTL = 60 * time.Second
	topN            = 5

	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// ErrNoHistory indica que un refresco terminó sin ningún sorteo.
var ErrNoHistory = errors.New("no historical draws available")

// Config contiene la configuración del servicio de análisis.
type Config struct {
	CacheTTL time.Duration
}

// DefaultConfig devuelve una configuración sensata para producción.
func DefaultConfig() Config {
	return Config{CacheTTL: defaultCacheTTL}
}

// Service es el orquestador: histórico → análisis → dashboard cacheado.
type Service struct {
	cfg      Config
	history  ports.HistoryProvider
	cache    ports.AnalysisCache
	notifier ports.Notifier
	now      func() time.Time
}

// New crea un Service con todas las dependencias inyectadas. notifier puede ser nil.
func New(
	cfg Config,
	history ports.HistoryProvider,
	cache ports.AnalysisCache,
	notifier ports.Notifier,
) *Service {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	return &Service{
		cfg:      cfg,
		history:  history,
		cache:    cache,
		notifier: notifier,
		now:      time.Now,
	}
}

// Analysis devuelve el dashboard, desde la cache si sigue vigente.
func (s *Service) Analysis(ctx context.Context) (domain.Dashboard, error) {
	if d, ok := s.cache.Get(ctx, CacheKey); ok {
		slog.Debug("analysis served from cache")
		return d, nil
	}

	h, err := s.history.Get(ctx, false)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("dashboard.Analysis: load history: %w", err)
	}
	if h.IsEmpty() {
		slog.Warn("draw history is empty, serving fallback keys")
	}

	d := s.build(h)
	if err := s.cache.Set(ctx, CacheKey, d, s.cfg.CacheTTL); err != nil {
		slog.Warn("analysis cache error", "err", err)
	}
	return d, nil
}

// Invalidate descarta el dashboard cacheado.
func (s *Service) Invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, CacheKey); err != nil {
		slog.Warn("analysis cache invalidate failed", "err", err)
	}
}

// Update invalida la cache y fuerza un refresco del histórico.
// Devuelve el número de sorteos disponibles tras el refresco.
func (s *Service) Update(ctx context.Context) (int, error) {
	runID := uuid.NewString()
	start := s.now()
	slog.Info("update requested", "run_id", runID)

	s.Invalidate(ctx)

	h, err := s.history.Get(ctx, true)
	if err != nil {
		return 0, fmt.Errorf("dashboard.Update: refresh history: %w", err)
	}
	if h.IsEmpty() {
		return 0, fmt.Errorf("dashboard.Update: %w", ErrNoHistory)
	}

	slog.Info("update complete",
		"run_id", runID,
		"draws", len(h.Draws),
		"source", h.Source,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return len(h.Draws), nil
}

// Run refresca el histórico cada interval hasta que el contexto se cancele.
// Con intervalo 0 solo espera la cancelación.
func (s *Service) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		<-ctx.Done()
		return nil
	}

	slog.Info("refresh loop starting", "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("refresh loop stopped")
			return nil
		case <-ticker.C:
			if err := s.runCycle(ctx); err != nil {
				slog.Error("refresh cycle failed", "err", err)
			}
		}
	}
}

// runCycle refresca, recalcula y notifica el dashboard nuevo.
func (s *Service) runCycle(ctx context.Context) error {
	if _, err := s.Update(ctx); err != nil {
		return err
	}
	d, err := s.Analysis(ctx)
	if err != nil {
		return err
	}
	if s.notifier != nil {
		if err := s.notifier.NotifyDashboard(ctx, d); err != nil {
			slog.Warn("notifier error", "err", err)
		}
	}
	return nil
}

// build arma el documento del dashboard a partir del histórico.
func (s *Service) build(h domain.DrawHistory) domain.Dashboard {
	now := s.now()

	keys, available := safeAnalyze(h.Draws)
	numberFreqs, starFreqs := domain.Frequencies(h.Draws)

	draws := parseTolerant(h.Draws)
	numberStats := domain.BuildStats(domain.KindNumber.Series(draws), domain.NumberDomain, domain.RecentWindow)

	lastNumbers, lastStars := []int{}, []int{}
	if n := len(h.Draws); n > 0 {
		if last, err := domain.ParseDrawLine(h.Draws[n-1]); err == nil {
			lastNumbers, lastStars = last.Numbers, last.Stars
		}
	}

	return domain.Dashboard{
		TotalDraws:        len(h.Draws),
		LastDrawDate:      now.Format(dateLayout),
		LastUpdate:        now.Format(dateTimeLayout),
		LastDrawNumbers:   lastNumbers,
		LastDrawStars:     lastStars,
		CacheInfo:         cacheInfo(h),
		StrategicKeys:     keys,
		AnalysisAvailable: available,
		TopNumbers:        domain.TopNumbers(numberFreqs, topN),
		OverdueNumbers:    domain.OverdueNumbers(numberStats, len(draws), topN),
		NumberFrequencies: numberFreqs,
		StarFrequencies:   starFreqs,
	}
}

// safeAnalyze ejecuta el núcleo y, ante error o panic, devuelve las claves por
// defecto con available=false.
func safeAnalyze(lines []string) (keys domain.KeySet, available bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("analysis panicked", "panic", r)
			keys, available = domain.DefaultKeySet(), false
		}
	}()

	a, err := domain.Analyze(lines)
	if err != nil {
		slog.Error("analysis failed, using default keys", "err", err)
		return domain.DefaultKeySet(), false
	}
	return a.Keys, true
}

// parseTolerant parsea las líneas válidas y descarta el resto.
func parseTolerant(lines []string) []domain.Draw {
	draws := make([]domain.Draw, 0, len(lines))
	for _, l := range lines {
		d, err := domain.ParseDrawLine(l)
		if err != nil {
			continue
		}
		draws = append(draws, d)
	}
	return draws
}

func cacheInfo(h domain.DrawHistory) domain.CacheInfo {
	info := domain.CacheInfo{Source: h.Source}
	if info.Source == "" {
		info.Source = "unknown"
	}
	if h.LastScraping != nil {
		v := h.LastScraping.Format(time.RFC3339)
		info.LastScraping = &v
	}
	if !h.Timestamp.IsZero() {
		v := h.Timestamp.Format(time.RFC3339)
		info.CacheTimestamp = &v
	}
	return info
}
