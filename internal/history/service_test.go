package history

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/eurokeys/internal/adapters/euromillions"
	"github.com/alejandrodnm/eurokeys/internal/domain"
)

// --- mocks ---

type fetchCall struct{ start, end int }

type mockSource struct {
	lines []string
	err   error
	calls []fetchCall
}

func (m *mockSource) FetchDrawHistory(_ context.Context, start, end int) ([]string, error) {
	m.calls = append(m.calls, fetchCall{start, end})
	return m.lines, m.err
}

type mockStore struct {
	history *domain.DrawHistory
	loadErr error
	saveErr error
	saved   []domain.DrawHistory
}

func (m *mockStore) LoadDraws(_ context.Context) (domain.DrawHistory, bool, error) {
	if m.loadErr != nil {
		return domain.DrawHistory{}, false, m.loadErr
	}
	if m.history == nil {
		return domain.DrawHistory{}, false, nil
	}
	return *m.history, true, nil
}

func (m *mockStore) SaveDraws(_ context.Context, h domain.DrawHistory) error {
	m.saved = append(m.saved, h)
	if m.saveErr != nil {
		return m.saveErr
	}
	m.history = &h
	return nil
}

func (m *mockStore) Close() error { return nil }

var fixedNow = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func newTestService(src *mockSource, store *mockStore) *Service {
	s := New(Config{StartYear: 2004, SimulatedDraws: 20}, src, store)
	s.now = func() time.Time { return fixedNow }
	s.rng = rand.New(rand.NewPCG(1, 2))
	return s
}

func cached(lines ...string) *domain.DrawHistory {
	return &domain.DrawHistory{
		Draws:     lines,
		Timestamp: fixedNow.Add(-24 * time.Hour),
		Source:    domain.SourceScraping,
		YearRange: &domain.YearRange{Start: 2004, End: 2025},
	}
}

// --- Get sin force ---

func TestGet_ReturnsStoredHistory(t *testing.T) {
	store := &mockStore{history: cached("1 2 3 4 5 + 1 2")}
	src := &mockSource{}
	s := newTestService(src, store)

	h, err := s.Get(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, []string{"1 2 3 4 5 + 1 2"}, h.Draws)
	assert.Empty(t, src.calls, "sin force no se scrapea")
	assert.Empty(t, store.saved)
}

func TestGet_EmptyStoreGeneratesSimulated(t *testing.T) {
	store := &mockStore{}
	s := newTestService(&mockSource{}, store)

	h, err := s.Get(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, domain.SourceSimulated, h.Source)
	assert.Len(t, h.Draws, 20)
	require.Len(t, store.saved, 1)
	assert.Equal(t, domain.SourceSimulated, store.saved[0].Source)

	_, err = domain.ParseDrawLines(h.Draws)
	assert.NoError(t, err)
}

func TestGet_LoadErrorFallsBackToSimulated(t *testing.T) {
	store := &mockStore{loadErr: errors.New("corrupt")}
	s := newTestService(&mockSource{}, store)

	h, err := s.Get(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, domain.SourceSimulated, h.Source)
}

// --- Get con force ---

func TestRefresh_FirstRunScrapesFullRange(t *testing.T) {
	store := &mockStore{}
	src := &mockSource{lines: []string{"1 2 3 4 5 + 1 2", "6 7 8 9 10 + 3 4"}}
	s := newTestService(src, store)

	h, err := s.Get(context.Background(), true)
	require.NoError(t, err)

	require.Len(t, src.calls, 1)
	assert.Equal(t, fetchCall{2004, 2025}, src.calls[0])
	assert.Equal(t, domain.SourceScraping, h.Source)
	assert.Equal(t, src.lines, h.Draws)
	require.NotNil(t, h.LastScraping)
	assert.Equal(t, fixedNow, *h.LastScraping)
	require.NotNil(t, h.YearRange)
	assert.Equal(t, domain.YearRange{Start: 2004, End: 2025}, *h.YearRange)
	require.Len(t, store.saved, 1)
}

func TestRefresh_FirstRunScrapeFailsUsesSimulated(t *testing.T) {
	store := &mockStore{}
	s := newTestService(&mockSource{err: errors.New("chrome missing")}, store)

	h, err := s.Get(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, domain.SourceSimulated, h.Source)
	assert.Len(t, h.Draws, 20)
	assert.Nil(t, h.LastScraping)
}

func TestRefresh_IncrementalAppendsOnlyNewDraws(t *testing.T) {
	store := &mockStore{history: cached("1 2 3 4 5 + 1 2", "6 7 8 9 10 + 3 4")}
	src := &mockSource{lines: []string{"6 7 8 9 10 + 3 4", "11 12 13 14 15 + 5 6", "16 17 18 19 20 + 7 8"}}
	s := newTestService(src, store)

	h, err := s.Get(context.Background(), true)
	require.NoError(t, err)

	require.Len(t, src.calls, 1)
	assert.Equal(t, fetchCall{2025, 2025}, src.calls[0], "solo el año en curso")
	assert.Equal(t, []string{
		"1 2 3 4 5 + 1 2",
		"6 7 8 9 10 + 3 4",
		"11 12 13 14 15 + 5 6",
		"16 17 18 19 20 + 7 8",
	}, h.Draws)
	assert.Equal(t, domain.SourceScraping, h.Source)
	assert.Equal(t, 2004, h.YearRange.Start)
	assert.Equal(t, 2025, h.YearRange.End)
}

func row(date string, numbers []string, stars []string) euromillions.Row {
	r := euromillions.Row{Date: date}
	for _, n := range numbers {
		r.Balls = append(r.Balls, euromillions.Ball{Text: n})
	}
	for _, st := range stars {
		r.Balls = append(r.Balls, euromillions.Ball{Text: st, Star: true})
	}
	return r
}

func TestRefresh_NewestFirstPageAppendsChronologically(t *testing.T) {
	store := &mockStore{history: cached("1 2 3 4 5 + 1 2", "6 7 8 9 10 + 3 4")}
	// página del año en curso: dos sorteos nuevos arriba, el ya cacheado abajo
	page := []euromillions.Row{
		row("10-06-2025", []string{"16", "17", "18", "19", "20"}, []string{"7", "8"}),
		row("06-06-2025", []string{"11", "12", "13", "14", "15"}, []string{"5", "6"}),
		row("03-06-2025", []string{"6", "7", "8", "9", "10"}, []string{"3", "4"}),
	}
	s := newTestService(&mockSource{lines: euromillions.RowsToLines(page)}, store)

	h, err := s.Get(context.Background(), true)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"1 2 3 4 5 + 1 2",
		"6 7 8 9 10 + 3 4",
		"11 12 13 14 15 + 5 6",
		"16 17 18 19 20 + 7 8",
	}, h.Draws)
	assert.Equal(t, "16 17 18 19 20 + 7 8", h.Draws[len(h.Draws)-1], "el último sorteo es el más reciente")
}

func TestRefresh_IncrementalScrapeErrorKeepsCache(t *testing.T) {
	store := &mockStore{history: cached("1 2 3 4 5 + 1 2")}
	s := newTestService(&mockSource{err: errors.New("timeout")}, store)

	h, err := s.Get(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, []string{"1 2 3 4 5 + 1 2"}, h.Draws)
	assert.Equal(t, domain.SourceScraping, h.Source)
}

func TestRefresh_NothingNewKeepsCache(t *testing.T) {
	store := &mockStore{history: cached("1 2 3 4 5 + 1 2")}
	s := newTestService(&mockSource{lines: []string{"1 2 3 4 5 + 1 2"}}, store)

	h, err := s.Get(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, []string{"1 2 3 4 5 + 1 2"}, h.Draws)
	assert.Nil(t, h.LastScraping, "el histórico no cambia")
}

func TestRefresh_SaveFailureIsNotFatal(t *testing.T) {
	store := &mockStore{saveErr: errors.New("disk full")}
	src := &mockSource{lines: []string{"1 2 3 4 5 + 1 2"}}
	s := newTestService(src, store)

	h, err := s.Get(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, src.lines, h.Draws)
	assert.Len(t, store.saved, 1)
}

func TestAppendNew_PreservesOrder(t *testing.T) {
	got := appendNew([]string{"a", "b"}, []string{"c", "a", "d"})
	assert.Equal(t, []string{"a", "b", "c", "d"}, got)
}

func TestNew_AppliesDefaults(t *testing.T) {
	s := New(Config{}, &mockSource{}, &mockStore{})
	assert.Equal(t, DefaultStartYear, s.cfg.StartYear)
	assert.Equal(t, 1868, s.cfg.SimulatedDraws)
}
