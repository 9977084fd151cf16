package middleware

import (
	"crypto/subtle"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"laundry-be/internal/transport"
	"laundry-be/internal/utils"

	"golang.org/x/time/rate"
)

// Tier is one token-bucket policy.
type Tier struct {
	Name  string
	Limit rate.Limit
	Burst int
}

var (
	// TierCredential covers login and registration posts.
	TierCredential = Tier{Name: "credential", Limit: 2, Burst: 5}
	TierGeneral    = Tier{Name: "general", Limit: 10, Burst: 20}
	TierService    = Tier{Name: "service", Limit: 100, Burst: 200}
)

const (
	bucketIdleTTL = 3 * time.Minute
	sweepInterval = time.Minute
)

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one bucket per caller and tier. Buckets idle longer
// than bucketIdleTTL are dropped on the next sweep, which runs inline at
// most once per sweepInterval.
type RateLimiter struct {
	serviceKey string
	now        func() time.Time

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

// NewRateLimiter returns a limiter. An empty serviceKey disables the
// service tier.
func NewRateLimiter(serviceKey string) *RateLimiter {
	return &RateLimiter{
		serviceKey: serviceKey,
		now:        time.Now,
		buckets:    make(map[string]*bucket),
	}
}

func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tier := l.tierFor(r)
		if !l.allow(callerKey(r)+"|"+tier.Name, tier) {
			transport.WriteJSONError(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *RateLimiter) allow(key string, tier Tier) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= sweepInterval {
		for k, b := range l.buckets {
			if now.Sub(b.lastSeen) > bucketIdleTTL {
				delete(l.buckets, k)
			}
		}
		l.lastSweep = now
	}

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(tier.Limit, tier.Burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b.lim.AllowN(now, 1)
}

// Len reports how many buckets are live.
func (l *RateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *RateLimiter) tierFor(r *http.Request) Tier {
	if l.serviceKey != "" &&
		subtle.ConstantTimeCompare([]byte(r.Header.Get("X-Service-Auth")), []byte(l.serviceKey)) == 1 {
		return TierService
	}
	if r.Method == http.MethodPost && isCredentialPath(r.URL.Path) {
		return TierCredential
	}
	return TierGeneral
}

// callerKey identifies the caller by user, then device header, then
// remote IP.
func callerKey(r *http.Request) string {
	if id, ok := utils.GetUserIDFromContext(r.Context()); ok {
		return "user:" + id.String()
	}
	if dev := r.Header.Get("X-Device-ID"); dev != "" {
		return "device:" + dev
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}

func isCredentialPath(path string) bool {
	return path == "/api/auth/login" || strings.HasPrefix(path, "/api/auth/register-")
}
