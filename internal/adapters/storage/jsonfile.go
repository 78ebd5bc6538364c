package storage

// jsonfile.go: histórico en un único archivo JSON (data/cache.json).
// El formato es compatible con el cache de la versión anterior del dashboard.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/alejandrodnm/eurokeys/internal/domain"
	"github.com/fsnotify/fsnotify"
)

// Formatos aceptados al leer timestamps (el cache antiguo no llevaba zona).
var timeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05"}

type cacheFile struct {
	Draws        []string          `json:"draws"`
	Timestamp    string            `json:"timestamp"`
	Total        int               `json:"total"`
	Source       string            `json:"source"`
	LastScraping *string           `json:"last_scraping"`
	YearRange    *domain.YearRange `json:"year_range"`
}

// JSONStore implementa ports.DrawStore sobre un archivo JSON.
type JSONStore struct {
	path string
	mu   sync.Mutex
}

// NewJSONStore crea el directorio del archivo si no existe.
func NewJSONStore(path string) (*JSONStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("storage.NewJSONStore: mkdir: %w", err)
	}
	return &JSONStore{path: path}, nil
}

// LoadDraws lee el archivo. ok=false si no existe o no tiene la clave draws.
func (s *JSONStore) LoadDraws(_ context.Context) (domain.DrawHistory, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return domain.DrawHistory{}, false, nil
	}
	if err != nil {
		return domain.DrawHistory{}, false, fmt.Errorf("storage.LoadDraws: read %q: %w", s.path, err)
	}

	h, ok, err := decodeHistory(data)
	if err != nil {
		return domain.DrawHistory{}, false, fmt.Errorf("storage.LoadDraws: decode %q: %w", s.path, err)
	}
	return h, ok, nil
}

// SaveDraws escribe el archivo de forma atómica (temp + rename).
func (s *JSONStore) SaveDraws(_ context.Context, h domain.DrawHistory) error {
	data, err := encodeHistory(h)
	if err != nil {
		return fmt.Errorf("storage.SaveDraws: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("storage.SaveDraws: write %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("storage.SaveDraws: rename: %w", err)
	}
	return nil
}

// Close no hace nada: no hay recursos abiertos.
func (s *JSONStore) Close() error { return nil }

// Watch llama a onChange cada vez que el archivo se crea, escribe o reemplaza,
// hasta que el contexto se cancele. Vigila el directorio para sobrevivir al rename.
func (s *JSONStore) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("storage.Watch: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("storage.Watch: watch %q: %w", filepath.Dir(s.path), err)
	}

	target := filepath.Clean(s.path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				slog.Debug("draw cache file changed", "path", s.path, "op", event.Op.String())
				onChange()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("draw cache watcher error", "err", err)
		}
	}
}

// decodeHistory interpreta el documento JSON. ok=false si no tiene la clave draws.
func decodeHistory(data []byte) (domain.DrawHistory, bool, error) {
	var cf cacheFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return domain.DrawHistory{}, false, err
	}
	if cf.Draws == nil {
		return domain.DrawHistory{}, false, nil
	}

	h := domain.DrawHistory{
		Draws:     cf.Draws,
		Timestamp: parseTime(cf.Timestamp),
		Source:    cf.Source,
		YearRange: cf.YearRange,
	}
	if cf.LastScraping != nil {
		if t := parseTime(*cf.LastScraping); !t.IsZero() {
			h.LastScraping = &t
		}
	}
	return h, true, nil
}

// encodeHistory serializa el histórico en el formato del cache.json.
func encodeHistory(h domain.DrawHistory) ([]byte, error) {
	ts := h.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	cf := cacheFile{
		Draws:     h.Draws,
		Timestamp: ts.Format(time.RFC3339Nano),
		Total:     len(h.Draws),
		Source:    h.Source,
		YearRange: h.YearRange,
	}
	if cf.Draws == nil {
		cf.Draws = []string{}
	}
	if h.LastScraping != nil {
		v := h.LastScraping.Format(time.RFC3339Nano)
		cf.LastScraping = &v
	}

	data, err := json.MarshalIndent(cf, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return data, nil
}

func parseTime(v string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}
