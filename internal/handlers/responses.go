package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/SscSPs/kewat_ledger/internal/apperrors"
	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	"github.com/SscSPs/kewat_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// maxBodyBytes caps request bodies; the largest legitimate payload is a notification with its data map.
const maxBodyBytes = 1 << 20

func statusForKind(kind string) int {
	switch kind {
	case "unauthenticated":
		return http.StatusUnauthorized
	case "forbidden":
		return http.StatusForbidden
	case "not_found":
		return http.StatusNotFound
	case "invalid_input":
		return http.StatusBadRequest
	case "conflict":
		return http.StatusConflict
	case "expired":
		return http.StatusGone
	case "rate_limit_exceeded":
		return http.StatusTooManyRequests
	case "unavailable":
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError maps err onto the error taxonomy and writes it.
// Internal and infrastructure details never reach the client; fallback is sent instead.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromContext(c)
	kind := apperrors.Kind(err)
	status := statusForKind(kind)

	message := err.Error()
	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()), slog.String("kind", kind))
		message = fallback
	} else {
		logger.Warn(fallback, slog.String("error", err.Error()), slog.String("kind", kind))
	}

	c.AbortWithStatusJSON(status, ErrorResponse{Error: kind, Message: message})
}

// bindStrictJSON decodes the body into req, rejecting unknown fields, then runs the binding tags.
func bindStrictJSON(c *gin.Context, req any) error {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes+1))
	if err != nil {
		return fmt.Errorf("%w: could not read request body", apperrors.ErrValidation)
	}
	if len(body) > maxBodyBytes {
		return fmt.Errorf("%w: request body too large", apperrors.ErrValidation)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is required", apperrors.ErrValidation)
		}
		return fmt.Errorf("%w: invalid request format: %s", apperrors.ErrValidation, err.Error())
	}
	if dec.More() {
		return fmt.Errorf("%w: request body must contain a single JSON object", apperrors.ErrValidation)
	}

	if binding.Validator == nil {
		return nil
	}
	if err := binding.Validator.ValidateStruct(req); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return nil
}

// bindQuery binds and validates query parameters.
func bindQuery(c *gin.Context, params any) error {
	if err := c.ShouldBindQuery(params); err != nil {
		return fmt.Errorf("%w: invalid query parameters: %s", apperrors.ErrValidation, err.Error())
	}
	return nil
}

// requireActor returns the caller resolved by AuthMiddleware, writing a 401 when absent.
func requireActor(c *gin.Context) (domain.Actor, bool) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		middleware.GetLoggerFromContext(c).Error("Actor not found in context")
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated", Message: "Unauthorized"})
		return domain.Actor{}, false
	}
	return actor, true
}
