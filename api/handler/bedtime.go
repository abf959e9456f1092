package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/noctura/backend/api/transport"
	"github.com/noctura/backend/pkg/httpcontext"
	"github.com/noctura/backend/usecase/bedtime"
)

type BedtimeHandler struct {
	baseHandler
	plans *bedtime.UseCase
}

func NewBedtimeHandler(plans *bedtime.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *BedtimeHandler {
	return &BedtimeHandler{
		baseHandler: newBaseHandler(adapter, logger),
		plans:       plans,
	}
}

func (h *BedtimeHandler) List(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	plans, err := h.plans.List(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, plans)
}

func (h *BedtimeHandler) Create(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.BedtimeCreateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.plans.Create(stdCtx, userID, bedtime.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Time:        req.Time,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

func (h *BedtimeHandler) Update(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.BedtimeUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.plans.Update(stdCtx, userID, pathParam(ctx, "id"), bedtime.Patch{
		Title:       req.Title,
		Description: req.Description,
		Time:        req.Time,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

func (h *BedtimeHandler) Delete(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.plans.Delete(stdCtx, userID, pathParam(ctx, "id")); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"message": "Plan deleted"})
}
