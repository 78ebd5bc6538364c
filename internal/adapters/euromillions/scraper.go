package euromillions

// scraper.go: histórico de resultados vía Chrome headless (chromedp).
//
// Una página por año: <base>/results-history-<year>. La tabla #resultsTable
// se renderiza en cliente, por eso no basta con un GET plano.

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/chromedp/chromedp"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL     = "https://www.euro-millions.com"
	defaultPageTimeout = 15 * time.Second
	defaultRetries     = 2
	baseRetryWait      = 500 * time.Millisecond
)

// extractRowsJS devuelve, por cada fila de resultados, la fecha del enlace al
// sorteo y sus bolas con texto y tipo.
const extractRowsJS = `Array.from(document.querySelectorAll('tr.resultRow')).map(row => {
	const link = row.querySelector('a[href*="/results/"]');
	const href = link ? link.getAttribute('href') : '';
	return {
		date: href.split('/').filter(Boolean).pop() || '',
		balls: Array.from(row.querySelectorAll('ul.balls li.resultBall')).map(li => ({
			text: li.textContent.trim(),
			star: li.classList.contains('lucky-star')
		}))
	};
})`

// Config controla el scraper.
type Config struct {
	BaseURL           string
	ChromePath        string // vacío = buscar Chrome en el PATH
	PageTimeout       time.Duration
	RequestsPerSecond float64
	Retries           int
}

// Scraper implementa ports.DrawSource.
type Scraper struct {
	cfg     Config
	limiter *rate.Limiter
}

// NewScraper crea un Scraper. Los campos vacíos de cfg toman valores por defecto.
func NewScraper(cfg Config) *Scraper {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.PageTimeout <= 0 {
		cfg.PageTimeout = defaultPageTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 1
	}
	if cfg.Retries < 0 {
		cfg.Retries = defaultRetries
	}
	return &Scraper{
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}
}

// FetchDrawHistory recorre los años [yearStart, yearEnd] en un único navegador.
// Las líneas salen en orden cronológico: años ascendentes y, dentro de cada
// año, del sorteo más antiguo al más reciente.
// Los años que fallan tras los reintentos se saltan; solo se devuelve error si
// el navegador no arranca o el contexto se cancela.
func (s *Scraper) FetchDrawHistory(ctx context.Context, yearStart, yearEnd int) ([]string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("log-level", "3"),
	)
	if s.cfg.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(s.cfg.ChromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...any) {}))
	defer cancelBrowser()

	// Run sin acciones arranca el navegador
	if err := chromedp.Run(browserCtx); err != nil {
		return nil, fmt.Errorf("euromillions.FetchDrawHistory: start browser: %w", err)
	}

	var all []string
	for year := yearStart; year <= yearEnd; year++ {
		lines, err := s.fetchYearWithRetry(browserCtx, year)
		if err != nil {
			if ctx.Err() != nil {
				return all, fmt.Errorf("euromillions.FetchDrawHistory: %w", ctx.Err())
			}
			slog.Warn("year scrape failed, skipping", "year", year, "err", err)
			continue
		}
		slog.Debug("year scraped", "year", year, "draws", len(lines))
		all = append(all, lines...)
	}

	slog.Info("scrape complete",
		"years", fmt.Sprintf("%d-%d", yearStart, yearEnd),
		"draws", len(all),
	)
	return all, nil
}

func (s *Scraper) fetchYearWithRetry(ctx context.Context, year int) ([]string, error) {
	var lastErr error
	for attempt := 0; attempt <= s.cfg.Retries; attempt++ {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
		lines, err := s.fetchYear(ctx, year)
		if err == nil {
			return lines, nil
		}
		lastErr = err
		if attempt < s.cfg.Retries {
			sleep(ctx, attempt)
		}
	}
	return nil, fmt.Errorf("year %d failed after %d retries: %w", year, s.cfg.Retries, lastErr)
}

func (s *Scraper) fetchYear(ctx context.Context, year int) ([]string, error) {
	pageCtx, cancel := context.WithTimeout(ctx, s.cfg.PageTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/results-history-%d", s.cfg.BaseURL, year)
	var rows []Row
	if err := chromedp.Run(pageCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("#resultsTable", chromedp.ByID),
		chromedp.Evaluate(extractRowsJS, &rows),
	); err != nil {
		return nil, fmt.Errorf("load %s: %w", url, err)
	}
	return RowsToLines(rows), nil
}

// sleep espera con backoff exponencial, respetando el contexto.
func sleep(ctx context.Context, attempt int) {
	wait := time.Duration(math.Pow(2, float64(attempt))) * baseRetryWait
	select {
	case <-time.After(wait):
	case <-ctx.Done():
	}
}
