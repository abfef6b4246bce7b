package api

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/bhataakib02/cybersecurityCasestudy/pkg/strength"
)

// Stats aggregates the evaluations served by the API.
type Stats struct {
	evaluations uint64
	scoreTotal  uint64
	cacheHits   uint64
	categories  [5]uint64
	mu          sync.Mutex
	issues      map[strength.Issue]uint64
	start       time.Time
	ticker      *time.Ticker
	progress    chan bool
}

func NewStats() *Stats {
	return &Stats{
		issues: make(map[strength.Issue]uint64),
		start:  time.Now(),
	}
}

// Record adds one evaluation to the totals.
func (s *Stats) Record(r strength.Result) {
	atomic.AddUint64(&s.evaluations, 1)
	atomic.AddUint64(&s.scoreTotal, uint64(r.Score))
	if int(r.Category) < len(s.categories) {
		atomic.AddUint64(&s.categories[r.Category], 1)
	}

	s.mu.Lock()
	for _, issue := range r.Issues {
		s.issues[issue]++
	}
	s.mu.Unlock()
}

func (s *Stats) CacheHit() {
	atomic.AddUint64(&s.cacheHits, 1)
}

func (s *Stats) averageScore() float64 {
	n := atomic.LoadUint64(&s.evaluations)
	if n == 0 {
		return 0
	}
	return float64(atomic.LoadUint64(&s.scoreTotal)) / float64(n)
}

// Snapshot returns the current totals.
func (s *Stats) Snapshot() Dashboard {
	d := Dashboard{
		Evaluations:  atomic.LoadUint64(&s.evaluations),
		AverageScore: s.averageScore(),
		Categories:   make(map[string]uint64, len(s.categories)),
		Issues:       make(map[string]uint64),
		CacheHits:    atomic.LoadUint64(&s.cacheHits),
		Uptime:       time.Since(s.start).Truncate(time.Second).String(),
	}
	for _, c := range strength.Categories() {
		d.Categories[c.String()] = atomic.LoadUint64(&s.categories[c])
	}

	s.mu.Lock()
	for issue, n := range s.issues {
		d.Issues[string(issue)] = n
	}
	s.mu.Unlock()

	return d
}

// BeginProgress logs the totals every interval until Done is called.
func (s *Stats) BeginProgress(interval time.Duration) {
	s.ticker = time.NewTicker(interval)
	s.progress = make(chan bool)
	go func() {
		p := message.NewPrinter(language.English)
		for {
			select {
			case <-s.progress:
				return
			case <-s.ticker.C:
				log.Info().Msgf("%s passwords evaluated. Average score %.1f",
					p.Sprintf("%d", atomic.LoadUint64(&s.evaluations)), s.averageScore())
			}
		}
	}()
}

func (s *Stats) Done() {
	if s.ticker == nil {
		return
	}
	s.ticker.Stop()
	s.progress <- true

	p := message.NewPrinter(language.English)
	log.Info().Msgf("served %s evaluations in %v. Average score %.1f, cache hits %s",
		p.Sprintf("%d", atomic.LoadUint64(&s.evaluations)), time.Since(s.start).Truncate(time.Second),
		s.averageScore(), p.Sprintf("%d", atomic.LoadUint64(&s.cacheHits)))
}
