package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"noid/internal/identifier"
	"noid/internal/ratelimit/models"
	id "noid/pkg/domain"
	"noid/pkg/platform/httputil"
	"noid/pkg/platform/privacy"
	"noid/pkg/requestcontext"
)

// Service defines the interface for identifier operations.
type Service interface {
	Validate(ctx context.Context, kind id.IdentifierKind, value string) (*identifier.Result, error)
	ValidateBatch(ctx context.Context, items []identifier.BatchItem) ([]*identifier.Result, error)
	ForceAccountNumber(ctx context.Context, value string) (*identifier.Result, error)
	GenerateAccountNumbers(ctx context.Context, req identifier.GenerateRequest) ([]string, error)
}

// RateLimiter wraps a handler in the budget of an endpoint class.
type RateLimiter interface {
	RateLimit(class models.EndpointClass) func(http.Handler) http.Handler
}

// Handler wires identifier endpoints to the identifier service.
type Handler struct {
	service Service
	logger  *slog.Logger
	limiter RateLimiter
}

// New constructs an identifier handler. limiter may be nil.
func New(service Service, logger *slog.Logger, limiter RateLimiter) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		limiter: limiter,
	}
}

// Register mounts identifier endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		h.limit(r, models.ClassValidate)
		r.Post("/identifiers/validate", h.HandleValidate)
		r.Post("/identifiers/validate/batch", h.HandleValidateBatch)
		r.Post("/bank-accounts/force-checksum", h.HandleForceChecksum)
	})
	r.Group(func(r chi.Router) {
		h.limit(r, models.ClassGenerate)
		r.Post("/bank-accounts/generate", h.HandleGenerate)
	})
}

func (h *Handler) limit(r chi.Router, class models.EndpointClass) {
	if h.limiter != nil {
		r.Use(h.limiter.RateLimit(class))
	}
}

// HandleValidate handles POST /identifiers/validate requests.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ValidateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Validate(ctx, req.ParsedKind(), req.Value)
	if err != nil {
		h.logger.InfoContext(ctx, "identifier rejected",
			"request_id", requestID,
			"kind", req.ParsedKind(),
			"value", privacy.MaskDigits(req.Value),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}

// HandleValidateBatch handles POST /identifiers/validate/batch requests.
func (h *Handler) HandleValidateBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[BatchValidateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	results, err := h.service.ValidateBatch(ctx, req.ParsedItems())
	if err != nil {
		h.logger.ErrorContext(ctx, "batch validation failed",
			"request_id", requestID,
			"items", len(req.Items),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	resp := FromBatch(uuid.NewString(), results, requestcontext.Now(ctx))
	h.logger.InfoContext(ctx, "batch validated",
		"request_id", requestID,
		"batch_id", resp.BatchID,
		"total", resp.Total,
		"valid", resp.Valid,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleForceChecksum handles POST /bank-accounts/force-checksum requests.
func (h *Handler) HandleForceChecksum(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ForceChecksumRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.ForceAccountNumber(ctx, req.Value)
	if err != nil {
		h.logger.InfoContext(ctx, "force checksum rejected",
			"request_id", requestID,
			"value", privacy.MaskDigits(req.Value),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}

// HandleGenerate handles POST /bank-accounts/generate requests.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[GenerateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	numbers, err := h.service.GenerateAccountNumbers(ctx, req.ToDomain())
	if err != nil {
		h.logger.WarnContext(ctx, "account number generation failed",
			"request_id", requestID,
			"count", req.Count,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, &GenerateResponse{AccountNumbers: numbers})
}
