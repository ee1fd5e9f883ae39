package mem

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// VisitorStore hands out one token bucket per client key. Buckets idle for
// longer than the ttl are dropped on the next Sweep.
type VisitorStore interface {
	Limiter(key string) *rate.Limiter
	Sweep() int
	Len() int
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type Visitors struct {
	mu    sync.Mutex
	data  map[string]*visitor
	rps   rate.Limit
	burst int
	ttl   time.Duration
	now   func() time.Time
}

func NewVisitors(rps float64, burst int, ttl time.Duration) *Visitors {
	return &Visitors{
		data:  make(map[string]*visitor),
		rps:   rate.Limit(rps),
		burst: burst,
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *Visitors) Limiter(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.data[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(s.rps, s.burst)}
		s.data[key] = v
	}
	v.lastSeen = s.now()
	return v.limiter
}

// Sweep removes expired visitors and reports how many were removed.
func (s *Visitors) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for key, v := range s.data {
		if v.lastSeen.Before(cutoff) {
			delete(s.data, key)
			removed++
		}
	}
	return removed
}

func (s *Visitors) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}
