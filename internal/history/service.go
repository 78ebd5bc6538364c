package history

// service.go: obtiene el histórico de sorteos: cache en disco, scraping
// incremental y datos simulados como último recurso.

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/alejandrodnm/eurokeys/internal/adapters/euromillions"
	"github.com/alejandrodnm/eurokeys/internal/domain"
	"github.com/alejandrodnm/eurokeys/internal/ports"
)

// DefaultStartYear es el primer año con sorteos del Euromilhões.
const DefaultStartYear = 2004

// Config controla el servicio de histórico.
type Config struct {
	StartYear      int
	SimulatedDraws int
}

// DefaultConfig devuelve la configuración de producción.
func DefaultConfig() Config {
	return Config{
		StartYear:      DefaultStartYear,
		SimulatedDraws: euromillions.DefaultSimulatedDraws,
	}
}

// Service combina la fuente de scraping con el almacenamiento.
type Service struct {
	cfg    Config
	source ports.DrawSource
	store  ports.DrawStore
	now    func() time.Time
	rng    *rand.Rand

	mu sync.Mutex // serializa los refrescos forzados
}

// New crea un Service con las dependencias inyectadas.
func New(cfg Config, source ports.DrawSource, store ports.DrawStore) *Service {
	if cfg.StartYear <= 0 {
		cfg.StartYear = DefaultStartYear
	}
	if cfg.SimulatedDraws <= 0 {
		cfg.SimulatedDraws = euromillions.DefaultSimulatedDraws
	}
	seed := uint64(time.Now().UnixNano())
	return &Service{
		cfg:    cfg,
		source: source,
		store:  store,
		now:    time.Now,
		rng:    rand.New(rand.NewPCG(seed, seed>>1)),
	}
}

// Get devuelve el histórico.
//
// Con force=true hace un refresco incremental y lo persiste. Sin force lee el
// almacenamiento; si está vacío genera datos simulados y los persiste.
func (s *Service) Get(ctx context.Context, force bool) (domain.DrawHistory, error) {
	if force {
		slog.Info("draw history refresh requested")
		s.mu.Lock()
		defer s.mu.Unlock()

		h := s.refresh(ctx)
		s.persist(ctx, h)
		return h, nil
	}

	h, ok := s.load(ctx)
	if ok {
		return h, nil
	}

	slog.Warn("draw cache not found, generating simulated draws", "draws", s.cfg.SimulatedDraws)
	h = s.simulated()
	s.persist(ctx, h)
	slog.Info("run an update to fetch real draws")
	return h, nil
}

// refresh decide qué scrapear según el contenido del almacenamiento.
func (s *Service) refresh(ctx context.Context) domain.DrawHistory {
	now := s.now()
	currentYear := now.Year()

	existing, ok := s.load(ctx)
	if !ok || existing.IsEmpty() {
		slog.Warn("draw cache empty, first run")
		slog.Info("fetching all draws", "from", s.cfg.StartYear, "to", currentYear)

		lines, err := s.source.FetchDrawHistory(ctx, s.cfg.StartYear, currentYear)
		if err != nil || len(lines) == 0 {
			slog.Error("scrape failed, using simulated draws", "err", err, "draws", len(lines))
			return s.simulated()
		}
		slog.Info("full scrape complete", "draws", len(lines))
		return s.scraped(lines, s.cfg.StartYear, currentYear, now)
	}

	start, end := existing.Years(s.cfg.StartYear, now)
	slog.Info("draw cache found", "draws", len(existing.Draws), "from", start, "to", end)
	slog.Info("checking current year", "year", currentYear)

	lines, err := s.source.FetchDrawHistory(ctx, currentYear, currentYear)
	if err != nil {
		slog.Error("scrape failed, keeping cached draws", "err", err, "draws", len(existing.Draws))
		return existing
	}
	if len(lines) == 0 {
		slog.Warn("no new draws found")
		return existing
	}

	newUnique := appendNew(existing.Draws, lines)
	if len(newUnique) == len(existing.Draws) {
		slog.Warn("all scraped draws were already cached")
		return existing
	}

	slog.Info("new draws added",
		"added", len(newUnique)-len(existing.Draws),
		"total", len(newUnique),
	)
	return s.scraped(newUnique, start, currentYear, now)
}

// load lee el almacenamiento. Los errores se registran y cuentan como ausencia.
func (s *Service) load(ctx context.Context) (domain.DrawHistory, bool) {
	h, ok, err := s.store.LoadDraws(ctx)
	if err != nil {
		slog.Error("failed to load draw cache", "err", err)
		return domain.DrawHistory{}, false
	}
	return h, ok
}

// persist guarda el histórico. Un fallo se registra y no se propaga.
func (s *Service) persist(ctx context.Context, h domain.DrawHistory) {
	if err := s.store.SaveDraws(ctx, h); err != nil {
		slog.Error("failed to save draw cache", "err", err)
		return
	}
	attrs := []any{"draws", len(h.Draws), "source", h.Source}
	if h.YearRange != nil {
		attrs = append(attrs, "from", h.YearRange.Start, "to", h.YearRange.End)
	}
	slog.Info("draw cache saved", attrs...)
}

func (s *Service) simulated() domain.DrawHistory {
	return domain.DrawHistory{
		Draws:     euromillions.Simulate(s.cfg.SimulatedDraws, s.rng),
		Timestamp: s.now(),
		Source:    domain.SourceSimulated,
	}
}

func (s *Service) scraped(lines []string, start, end int, now time.Time) domain.DrawHistory {
	return domain.DrawHistory{
		Draws:        lines,
		Timestamp:    now,
		Source:       domain.SourceScraping,
		LastScraping: &now,
		YearRange:    &domain.YearRange{Start: start, End: end},
	}
}

// appendNew devuelve existing seguido de las líneas de fresh que no estaban en
// existing, en el orden en que llegaron.
func appendNew(existing, fresh []string) []string {
	seen := make(map[string]struct{}, len(existing))
	for _, l := range existing {
		seen[l] = struct{}{}
	}
	out := append(make([]string, 0, len(existing)+len(fresh)), existing...)
	for _, l := range fresh {
		if _, ok := seen[l]; ok {
			continue
		}
		out = append(out, l)
	}
	return out
}
