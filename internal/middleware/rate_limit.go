package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// bucket 按客户端 IP 记账的令牌桶，每分钟补满一次配额
type bucket struct {
	tokens   int
	capacity int
	refillAt time.Time
	lastSeen time.Time
}

type ipLimiter struct {
	buckets map[string]*bucket
	mutex   sync.Mutex
}

var limiter = &ipLimiter{
	buckets: make(map[string]*bucket),
}

func RateLimitMiddleware(requestsPerMinute int) gin.HandlerFunc {
	go limiter.cleanupRoutine()

	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP(), requestsPerMinute) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "请求频率过高，请稍后再试",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func (l *ipLimiter) allow(ip string, requestsPerMinute int) bool {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	now := time.Now()
	b, ok := l.buckets[ip]
	if !ok {
		b = &bucket{
			tokens:   requestsPerMinute,
			capacity: requestsPerMinute,
			refillAt: now.Add(time.Minute),
		}
		l.buckets[ip] = b
	}

	if now.After(b.refillAt) {
		b.tokens = b.capacity
		b.refillAt = now.Add(time.Minute)
	}
	b.lastSeen = now

	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}

func (l *ipLimiter) cleanupRoutine() {
	for {
		time.Sleep(10 * time.Minute)

		l.mutex.Lock()
		for ip, b := range l.buckets {
			if time.Since(b.lastSeen) > 10*time.Minute {
				delete(l.buckets, ip)
			}
		}
		l.mutex.Unlock()
	}
}
