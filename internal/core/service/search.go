package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/skillnet/skillnet/internal/core/domain"
)

// DefaultDebounce is the quiet period before a query is issued.
const DefaultDebounce = 300 * time.Millisecond

// SearchSource produces unranked hits for a query.
type SearchSource interface {
	Search(ctx context.Context, query string) ([]domain.SearchResult, error)
}

// SearchKey is a keyboard action over the result list.
type SearchKey int

const (
	KeyUp SearchKey = iota
	KeyDown
	KeyEnter
	KeyEscape
)

// SearchConfig tunes a Searcher. Zero values select the defaults.
type SearchConfig struct {
	Debounce   time.Duration
	MaxResults int
}

// SearchState is published on every change of the visible results.
type SearchState struct {
	Query      string                `json:"query"`
	Results    []domain.SearchResult `json:"results"`
	Cursor     int                   `json:"cursor"`
	Generation uint64                `json:"generation"`
}

// Searcher is the debounced global search. Every keystroke bumps a generation
// counter; a response is applied only if its generation is still current, so
// superseded queries can never overwrite newer results.
type Searcher struct {
	source   SearchSource
	nav      *Navigator
	log      zerolog.Logger
	debounce time.Duration
	max      int

	mu       sync.Mutex
	query    string
	results  []domain.SearchResult
	cursor   int
	gen      uint64
	timer    *time.Timer
	inflight context.CancelFunc
	closed   bool
	updates  chan SearchState
}

func NewSearcher(source SearchSource, nav *Navigator, cfg SearchConfig, log zerolog.Logger) *Searcher {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = domain.DefaultMaxResults
	}
	return &Searcher{
		source:   source,
		nav:      nav,
		log:      log,
		debounce: cfg.Debounce,
		max:      cfg.MaxResults,
		cursor:   -1,
		updates:  make(chan SearchState, 1),
	}
}

// Input records a new query. An empty query clears the results immediately and
// issues no request; anything else is looked up once input has been quiet for
// the debounce period.
func (s *Searcher) Input(query string) {
	q := strings.TrimSpace(query)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.supersede()
	s.query = q

	if q == "" {
		s.clear()
		return
	}

	gen := s.gen
	s.timer = time.AfterFunc(s.debounce, func() { s.run(gen, q) })
}

func (s *Searcher) run(gen uint64, q string) {
	s.mu.Lock()
	if gen != s.gen || s.closed {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.inflight = cancel
	s.mu.Unlock()
	defer cancel()

	hits, err := s.source.Search(ctx, q)
	if err != nil {
		s.log.Debug().Err(err).Str("query", q).Msg("search failed, showing no results")
		hits = nil
	}
	ranked := domain.Rank(q, hits, s.max)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen || s.closed {
		return
	}
	s.inflight = nil
	s.results = ranked
	s.cursor = -1
	s.publish()
}

// Key applies a keyboard action. Enter returns the redirect route of the
// selected result (the first one when nothing is highlighted).
func (s *Searcher) Key(k SearchKey) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.results)

	switch k {
	case KeyDown:
		if n == 0 {
			return "", false
		}
		if s.cursor < 0 {
			s.cursor = 0
		} else if s.cursor < n-1 {
			s.cursor++
		}
		s.publish()
	case KeyUp:
		if n == 0 {
			return "", false
		}
		if s.cursor < 0 {
			s.cursor = n - 1
		} else if s.cursor > 0 {
			s.cursor--
		}
		s.publish()
	case KeyEnter:
		if n == 0 {
			return "", false
		}
		idx := s.cursor
		if idx < 0 {
			idx = 0
		}
		return s.selectLocked(idx), true
	case KeyEscape:
		s.supersede()
		s.clear()
	}
	return "", false
}

// Select picks result i directly and returns its redirect route.
func (s *Searcher) Select(i int) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.results) {
		return "", false
	}
	return s.selectLocked(i), true
}

func (s *Searcher) selectLocked(i int) string {
	route := s.nav.ResultRoute(s.results[i])
	s.supersede()
	s.query = ""
	s.clear()
	return route
}

// Results returns a copy of the visible results.
func (s *Searcher) Results() []domain.SearchResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.SearchResult(nil), s.results...)
}

// Cursor returns the highlighted index, or -1.
func (s *Searcher) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// Updates delivers the latest state. Only the newest unread state is kept.
func (s *Searcher) Updates() <-chan SearchState {
	return s.updates
}

// Close stops pending work and closes Updates.
func (s *Searcher) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.supersede()
	s.closed = true
	close(s.updates)
}

// supersede invalidates the pending timer and any in-flight request. mu must be held.
func (s *Searcher) supersede() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.inflight != nil {
		s.inflight()
		s.inflight = nil
	}
}

// clear empties results and cursor. mu must be held.
func (s *Searcher) clear() {
	s.results = nil
	s.cursor = -1
	s.publish()
}

// publish replaces any unread state with the current one. mu must be held.
func (s *Searcher) publish() {
	if s.closed {
		return
	}
	st := SearchState{
		Query:      s.query,
		Results:    append([]domain.SearchResult(nil), s.results...),
		Cursor:     s.cursor,
		Generation: s.gen,
	}
	select {
	case <-s.updates:
	default:
	}
	s.updates <- st
}
