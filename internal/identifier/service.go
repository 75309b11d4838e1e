// Package identifier is the application layer over the account number, KID
// and social security number types. It adds batching, generation sessions,
// metrics and tracing; all validation rules live in pkg/banking and
// pkg/person.
package identifier

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"noid/internal/generator"
	"noid/internal/identifier/metrics"
	"noid/pkg/banking"
	id "noid/pkg/domain"
	dErrors "noid/pkg/domain-errors"
	"noid/pkg/person"
	"noid/pkg/platform/privacy"
	"noid/pkg/requestcontext"
)

const (
	defaultMaxBatchSize     = 500
	defaultBatchConcurrency = 8
	defaultMaxGenerate      = 1000
)

type Service struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer

	maxBatchSize     int
	batchConcurrency int
	maxGenerate      int
	newGenerator     func() *generator.Generator
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

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithBatchLimits bounds batch size and the number of items validated at once.
func WithBatchLimits(maxSize, concurrency int) Option {
	return func(s *Service) {
		if maxSize > 0 {
			s.maxBatchSize = maxSize
		}
		if concurrency > 0 {
			s.batchConcurrency = concurrency
		}
	}
}

// WithMaxGenerate caps the count of one generate call.
func WithMaxGenerate(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxGenerate = n
		}
	}
}

// WithGeneratorSeed makes every generate call start from the same seed, so
// identical requests return identical numbers.
func WithGeneratorSeed(seed uint64) Option {
	return func(s *Service) {
		s.newGenerator = func() *generator.Generator { return generator.New(seed) }
	}
}

func New(opts ...Option) *Service {
	s := &Service{
		logger:           slog.Default(),
		tracer:           otel.Tracer("noid/internal/identifier"),
		maxBatchSize:     defaultMaxBatchSize,
		batchConcurrency: defaultBatchConcurrency,
		maxGenerate:      defaultMaxGenerate,
		newGenerator:     generator.NewRandom,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate checks value as an identifier of the given kind and decomposes it.
//
// Errors: the coded error of the failed check (CodeInvalidFormat,
// CodeInvalidLength, CodeLeadingZeros, CodeInvalidChecksum or
// CodeNoValidChecksum), or CodeInvalidInput for an unknown kind.
func (s *Service) Validate(ctx context.Context, kind id.IdentifierKind, value string) (*Result, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "identifier.Validate",
		trace.WithAttributes(attribute.String("identifier.kind", kind.String())))
	defer span.End()

	result, err := validate(kind, value)
	s.record(ctx, span, kind, value, err)
	s.metrics.ObserveValidateLatency("single", time.Since(start))
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ValidateBatch validates items concurrently. A rejected identifier does not
// fail the batch: its result carries the error code instead. Results are in
// the order of items.
//
// Errors: CodeValidation when the batch is empty or too large; ctx errors
// when the caller gives up.
func (s *Service) ValidateBatch(ctx context.Context, items []BatchItem) ([]*Result, error) {
	if len(items) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "items must not be empty")
	}
	if len(items) > s.maxBatchSize {
		return nil, dErrors.New(dErrors.CodeValidation, "items must contain at most "+strconv.Itoa(s.maxBatchSize)+" entries")
	}

	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "identifier.ValidateBatch",
		trace.WithAttributes(attribute.Int("batch.size", len(items))))
	defer span.End()
	s.metrics.ObserveBatchSize(len(items))

	results := make([]*Result, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchConcurrency)
	for i, item := range items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := validate(item.Kind, item.Value)
			s.record(gctx, nil, item.Kind, item.Value, err)
			if err != nil {
				res = rejected(item, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "batch aborted")
		return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "batch validation aborted")
	}

	s.metrics.ObserveValidateLatency("batch", time.Since(start))
	s.logger.InfoContext(ctx, "batch validated",
		"request_id", requestcontext.RequestID(ctx),
		"items", len(items),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return results, nil
}

// ForceAccountNumber returns value with its checksum digit corrected. Values
// that are already valid come back unchanged.
//
// Errors: CodeLeadingZeros or CodeInvalidFormat for bad syntax, and
// CodeNoValidChecksum when no digit can make the first ten valid.
func (s *Service) ForceAccountNumber(ctx context.Context, value string) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "identifier.ForceAccountNumber")
	defer span.End()

	acc, err := banking.ForceValidAccountNumber(value)
	if err != nil {
		s.record(ctx, span, id.IdentifierKindBankAccount, value, err)
		return nil, err
	}
	if acc.Value() != value {
		s.metrics.IncrementForced()
		s.logger.DebugContext(ctx, "account number checksum corrected",
			"request_id", requestcontext.RequestID(ctx),
			"value", privacy.MaskDigits(value),
			"corrected", privacy.MaskDigits(acc.Value()),
		)
	}
	return accountResult(acc), nil
}

// GenerateAccountNumbers returns req.Count random valid account numbers,
// optionally all sharing an account type or a register number. Each call is
// an independent generation session.
//
// Errors: CodeValidation for a bad count or conflicting filters, the syntax
// error of a malformed filter, and CodeInvalidInput when the filter admits too
// few valid numbers.
func (s *Service) GenerateAccountNumbers(ctx context.Context, req GenerateRequest) ([]string, error) {
	if req.Count < 1 || req.Count > s.maxGenerate {
		return nil, dErrors.New(dErrors.CodeValidation, "count must be between 1 and "+strconv.Itoa(s.maxGenerate))
	}
	if req.AccountType != "" && req.RegisterNumber != "" {
		return nil, dErrors.New(dErrors.CodeValidation, "account_type and register_number are mutually exclusive")
	}

	ctx, span := s.tracer.Start(ctx, "identifier.GenerateAccountNumbers",
		trace.WithAttributes(attribute.Int("generate.count", req.Count)))
	defer span.End()

	gen := s.newGenerator()
	var (
		accounts []banking.AccountNumber
		err      error
	)
	switch {
	case req.AccountType != "":
		accounts, err = gen.AccountNumbersForAccountType(req.AccountType, req.Count)
	case req.RegisterNumber != "":
		accounts, err = gen.AccountNumbersForRegisterNumber(req.RegisterNumber, req.Count)
	default:
		accounts, err = gen.AccountNumbers(req.Count)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
		s.logger.WarnContext(ctx, "account number generation failed",
			"request_id", requestcontext.RequestID(ctx),
			"count", req.Count,
			"error", err,
		)
		return nil, err
	}

	out := make([]string, len(accounts))
	for i, acc := range accounts {
		out[i] = acc.Value()
	}
	s.metrics.AddGenerated(len(out))
	return out, nil
}

func validate(kind id.IdentifierKind, value string) (*Result, error) {
	switch kind {
	case id.IdentifierKindBankAccount:
		acc, err := banking.ParseAccountNumber(value)
		if err != nil {
			return nil, err
		}
		return accountResult(acc), nil
	case id.IdentifierKindKID:
		kid, err := banking.ParseKIDNumber(value)
		if err != nil {
			return nil, err
		}
		outcomes, err := banking.KIDChecksumOutcomes(value)
		if err != nil {
			return nil, err
		}
		return kidResult(kid, outcomes), nil
	case id.IdentifierKindSocialSecurityNumber:
		ssn, err := person.ParseSocialSecurityNumber(value)
		if err != nil {
			return nil, err
		}
		return ssnResult(ssn), nil
	}
	return nil, dErrors.New(dErrors.CodeInvalidInput, "unsupported identifier kind: "+kind.String())
}

// record emits the metric, span status and log line for one validation.
// span may be nil for batch items, which share the batch span.
func (s *Service) record(ctx context.Context, span trace.Span, kind id.IdentifierKind, value string, err error) {
	outcome := "valid"
	if err != nil {
		outcome = string(dErrors.CodeOf(err))
	}
	s.metrics.IncrementValidation(kind.String(), outcome)
	if span != nil {
		span.SetAttributes(attribute.String("identifier.outcome", outcome))
		if err != nil {
			span.SetStatus(codes.Error, outcome)
		}
	}
	if err != nil {
		s.logger.DebugContext(ctx, "identifier rejected",
			"request_id", requestcontext.RequestID(ctx),
			"kind", kind,
			"value", privacy.MaskDigits(value),
			"reason", outcome,
		)
	}
}
