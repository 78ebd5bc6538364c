package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/alejandrodnm/eurokeys/internal/domain"
	lru "github.com/hashicorp/golang-lru"
)

const defaultSize = 16

type entry struct {
	value   domain.Dashboard
	expires time.Time
}

// Memory implementa ports.AnalysisCache en proceso: LRU con caducidad por entrada.
type Memory struct {
	lru *lru.Cache
	now func() time.Time
}

// NewMemory crea una cache con capacidad para size entradas.
func NewMemory(size int) (*Memory, error) {
	if size <= 0 {
		size = defaultSize
	}
	c, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("cache.NewMemory: %w", err)
	}
	return &Memory{lru: c, now: time.Now}, nil
}

// Get devuelve el dashboard si existe y no caducó. Las entradas caducadas se borran.
func (m *Memory) Get(_ context.Context, key string) (domain.Dashboard, bool) {
	v, ok := m.lru.Get(key)
	if !ok {
		return domain.Dashboard{}, false
	}
	e := v.(entry)
	if !m.now().Before(e.expires) {
		m.lru.Remove(key)
		return domain.Dashboard{}, false
	}
	return e.value, true
}

// Set guarda el dashboard durante ttl.
func (m *Memory) Set(_ context.Context, key string, d domain.Dashboard, ttl time.Duration) error {
	m.lru.Add(key, entry{value: d, expires: m.now().Add(ttl)})
	return nil
}

// Invalidate borra la entrada.
func (m *Memory) Invalidate(_ context.Context, key string) error {
	m.lru.Remove(key)
	return nil
}
