package middleware

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/incorgnihealth/api/pkg/response"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// rateLimitScript counts requests per key inside a fixed window. The INCR
// and the EXPIRE on first hit are one atomic unit so a crashed request
// cannot leave a counter without a TTL.
var rateLimitScript = redis.NewScript(`
	local current = redis.call('INCR', KEYS[1])
	if current == 1 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
	end
	return current
`)

// RateLimiter is a fixed-window limiter backed by Redis, keyed by
// client IP and limiter name.
type RateLimiter struct {
	redisClient *redis.Client
	name        string
	limit       int64
	window      time.Duration
}

func NewRateLimiter(redisClient *redis.Client, name string, limit int64, window time.Duration) *RateLimiter {
	return &RateLimiter{
		redisClient: redisClient,
		name:        name,
		limit:       limit,
		window:      window,
	}
}

func (l *RateLimiter) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		key := fmt.Sprintf("ratelimit:%s:%s", l.name, ip)
		count, err := rateLimitScript.Run(r.Context(), l.redisClient, []string{key}, l.window.Milliseconds()).Int64()
		if err != nil {
			// Limiter outage must not take the API down with it.
			logrus.Warnf("Rate limiter unavailable (non-fatal): %+v", err)
			next.ServeHTTP(w, r)
			return
		}

		if count > l.limit {
			response.Error(w, http.StatusTooManyRequests, "Too many requests, slow down", nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}
