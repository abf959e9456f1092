package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/noctura/backend/api/transport"
	"github.com/noctura/backend/domain"
	"github.com/noctura/backend/pkg/httpcontext"
)

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload transport.Envelope) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

func (h baseHandler) respondSuccess(ctx *fasthttp.RequestCtx, status int, data interface{}) {
	h.respondJSON(ctx, status, transport.NewSuccess(data))
}

func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error) {
	var missing *domain.BatchMissingError
	if errors.As(err, &missing) {
		h.respondJSON(ctx, http.StatusNotFound,
			transport.NewBatchMissing("Some tasks not found", missing.IDs))
		return
	}

	status := mapError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err))
		h.respondJSON(ctx, status, transport.NewError("Server error"))
		return
	}
	h.respondJSON(ctx, status, transport.NewError(err.Error()))
}

func (h baseHandler) respondInvalid(ctx *fasthttp.RequestCtx, message string) {
	h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(message))
}

// userID reads the identity injected by the auth middleware; an empty value
// means the middleware was bypassed and the request must be rejected.
func (h baseHandler) userID(ctx *fasthttp.RequestCtx) string {
	userID := string(ctx.Request.Header.Peek("X-User-ID"))
	if userID == "" {
		h.respondJSON(ctx, http.StatusUnauthorized, transport.NewError("Unauthorized"))
	}
	return userID
}

func pathParam(ctx *fasthttp.RequestCtx, name string) string {
	value, _ := ctx.UserValue(name).(string)
	return value
}

func mapError(err error) int {
	switch {
	case domain.IsDomainError(err, domain.ErrCodeUnauthorized):
		return http.StatusUnauthorized
	case domain.IsDomainError(err, domain.ErrCodeForbidden):
		return http.StatusForbidden
	case domain.IsDomainError(err, domain.ErrCodeInvalid):
		return http.StatusBadRequest
	case domain.IsDomainError(err, domain.ErrCodeNotFound):
		return http.StatusNotFound
	case domain.IsDomainError(err, domain.ErrCodeConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
