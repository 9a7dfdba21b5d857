package httpx

import (
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	rateLimitSweepEvery = time.Minute
	rateLimitStaleAfter = 3 * time.Minute
)

type rateLimitVisitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// visitorSet is a per-IP token bucket table. Stale buckets are swept
// inline on lookup rather than by a background goroutine, so the
// middleware holds no resources past its handlers.
type visitorSet struct {
	mu        sync.Mutex
	visitors  map[string]*rateLimitVisitor
	lastSweep time.Time
	rps       float64
	burst     int
	now       func() time.Time
}

func newVisitorSet(rps float64, burst int) *visitorSet {
	return &visitorSet{
		visitors: make(map[string]*rateLimitVisitor),
		rps:      rps,
		burst:    burst,
		now:      time.Now,
	}
}

func (s *visitorSet) limiterFor(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= rateLimitSweepEvery {
		for key, v := range s.visitors {
			if now.Sub(v.lastSeen) > rateLimitStaleAfter {
				delete(s.visitors, key)
			}
		}
		s.lastSweep = now
	}

	v, ok := s.visitors[ip]
	if !ok {
		v = &rateLimitVisitor{limiter: rate.NewLimiter(rate.Limit(s.rps), s.burst)}
		s.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// RateLimit returns a middleware that applies a per-client token bucket,
// keyed by remote IP. Used on the webhook receiver, which sits outside
// session auth.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	if rps <= 0 {
		rps = 10
	}
	if burst <= 0 {
		burst = 20
	}

	set := newVisitorSet(rps, burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !set.limiterFor(remoteIP(r.RemoteAddr)).Allow() {
				w.Header().Set("Retry-After", "1")
				WriteError(w, ErrorParams{
					Code:    http.StatusTooManyRequests,
					ErrCode: "rate_limited",
					Err:     errors.New("too many requests"),
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func remoteIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil || host == "" {
		return remoteAddr
	}
	return host
}
