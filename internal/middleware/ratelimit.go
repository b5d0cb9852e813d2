package middleware

import (
	"context"
	"errors"
	"net"
	"strings"
	"sync"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/time/rate"
)

// ErrRateLimited is returned when a client exceeds its request budget.
var ErrRateLimited = errors.New("too many requests, try again later")

// limiterTTL is how long an idle client's limiter is kept.
const limiterTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientLimiter
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time

	// trustProxy keys clients by X-Forwarded-For instead of the peer address.
	trustProxy bool
}

// NewRateLimiter allows perMinute requests per client with the given burst.
// Set trustProxy only behind a reverse proxy that overwrites X-Forwarded-For;
// otherwise clients could pick their own key.
func NewRateLimiter(perMinute, burst int, trustProxy bool) *RateLimiter {
	return &RateLimiter{
		clients:    make(map[string]*clientLimiter),
		limit:      rate.Limit(float64(perMinute) / 60.0),
		burst:      burst,
		now:        time.Now,
		trustProxy: trustProxy,
	}
}

// Allow reports whether key may make another request now.
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > limiterTTL {
		for k, c := range l.clients {
			if now.Sub(c.lastSeen) > limiterTTL {
				delete(l.clients, k)
			}
		}
		l.lastSweep = now
	}

	c, ok := l.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

// Interceptor limits the listed procedures per client IP. Other
// procedures pass through untouched.
func (l *RateLimiter) Interceptor(procedures ...string) connect.UnaryInterceptorFunc {
	limited := make(map[string]struct{}, len(procedures))
	for _, p := range procedures {
		limited[p] = struct{}{}
	}

	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if _, ok := limited[req.Spec().Procedure]; ok {
				key := l.clientKey(req.Peer().Addr, req.Header().Get("X-Forwarded-For"))
				if !l.Allow(key) {
					return nil, connect.NewError(connect.CodeResourceExhausted, ErrRateLimited)
				}
			}
			return next(ctx, req)
		}
	}
}

// clientKey ignores the forwarded header unless the proxy is trusted.
func (l *RateLimiter) clientKey(peerAddr, forwarded string) string {
	if !l.trustProxy {
		forwarded = ""
	}
	return clientIP(peerAddr, forwarded)
}

// clientIP prefers the first X-Forwarded-For hop, then the peer address.
func clientIP(peerAddr, forwarded string) string {
	if forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if host, _, err := net.SplitHostPort(peerAddr); err == nil {
		return host
	}
	return peerAddr
}
