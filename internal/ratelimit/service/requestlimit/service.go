package requestlimit

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"noid/internal/ratelimit/metrics"
	"noid/internal/ratelimit/models"
	dErrors "noid/pkg/domain-errors"
	"noid/pkg/platform/privacy"
	"noid/pkg/requestcontext"
)

// BucketStore records requests against a sliding window.
type BucketStore interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error)
}

type Service struct {
	buckets BucketStore
	limits  map[models.EndpointClass]models.Limit
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLimit sets the per-IP budget for one endpoint class.
func WithLimit(class models.EndpointClass, limit models.Limit) Option {
	return func(s *Service) {
		s.limits[class] = limit
	}
}

// New creates a request limiter. Classes without a configured limit are
// denied.
func New(buckets BucketStore, opts ...Option) (*Service, error) {
	if buckets == nil {
		return nil, errors.New("buckets store is required")
	}
	svc := &Service{
		buckets: buckets,
		limits:  make(map[models.EndpointClass]models.Limit),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// CheckIP counts one request from ip against the class budget.
func (s *Service) CheckIP(ctx context.Context, ip string, class models.EndpointClass) (*models.RateLimitResult, error) {
	limit, ok := s.limits[class]
	if !ok || limit.RequestsPerWindow <= 0 {
		s.logger.WarnContext(ctx, "rate limit config missing",
			"endpoint_class", class,
			"ip_prefix", privacy.AnonymizeIP(ip),
		)
		s.metrics.RecordDecision(class.String(), false)
		return &models.RateLimitResult{
			Allowed:    false,
			ResetAt:    requestcontext.Now(ctx),
			RetryAfter: 60,
		}, nil
	}

	key := models.NewRateLimitKey(models.KeyPrefixIP, ip, class)
	result, err := s.buckets.Allow(ctx, key.String(), limit.RequestsPerWindow, limit.Window)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check rate limit")
	}
	s.metrics.RecordDecision(class.String(), result.Allowed)

	if !result.Allowed {
		s.logger.InfoContext(ctx, "ip rate limit exceeded",
			"ip_prefix", privacy.AnonymizeIP(ip),
			"endpoint_class", class,
			"limit", limit.RequestsPerWindow,
			"window_seconds", int(limit.Window.Seconds()),
		)
	}
	return result, nil
}
