package middleware

import (
	"context"

	"noid/internal/ratelimit/models"
	"noid/internal/ratelimit/service/requestlimit"
)

// Limiter adapts the request limit service to the RateLimiter interface.
type Limiter struct {
	requests *requestlimit.Service
}

func NewLimiter(requests *requestlimit.Service) *Limiter {
	return &Limiter{requests: requests}
}

func (l *Limiter) CheckIPRateLimit(ctx context.Context, ip string, class models.EndpointClass) (*models.RateLimitResult, error) {
	return l.requests.CheckIP(ctx, ip, class)
}
