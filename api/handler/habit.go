package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/noctura/backend/api/transport"
	"github.com/noctura/backend/domain"
	"github.com/noctura/backend/pkg/httpcontext"
	"github.com/noctura/backend/usecase/habit"
)

type HabitHandler struct {
	baseHandler
	habits *habit.UseCase
}

func NewHabitHandler(habits *habit.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *HabitHandler {
	return &HabitHandler{
		baseHandler: newBaseHandler(adapter, logger),
		habits:      habits,
	}
}

func (h *HabitHandler) List(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	habits, err := h.habits.List(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, habits)
}

func (h *HabitHandler) Create(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.HabitCreateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.habits.Create(stdCtx, userID, habit.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Frequency:   req.Frequency,
		SheetURL:    req.SheetURL,
		IsShutdown:  req.IsShutdown,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

func (h *HabitHandler) Update(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.HabitUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.habits.Update(stdCtx, userID, pathParam(ctx, "id"), habit.Patch{
		Title:       req.Title,
		Description: req.Description,
		Frequency:   req.Frequency,
		SheetURL:    req.SheetURL,
		IsShutdown:  req.IsShutdown,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

func (h *HabitHandler) Delete(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.habits.Delete(stdCtx, userID, pathParam(ctx, "id")); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"message": "Habit deleted"})
}

// MarkCompleted records a completion date; an empty body defaults to today.
func (h *HabitHandler) MarkCompleted(ctx *fasthttp.RequestCtx) {
	h.toggleCompletion(ctx, h.habits.MarkCompleted)
}

func (h *HabitHandler) UnmarkCompleted(ctx *fasthttp.RequestCtx) {
	h.toggleCompletion(ctx, h.habits.UnmarkCompleted)
}

func (h *HabitHandler) toggleCompletion(
	ctx *fasthttp.RequestCtx,
	op func(stdCtx context.Context, ownerID, id, date string) (*domain.Habit, error),
) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	// The date comes from ?date=, or a JSON body for older clients.
	date := string(ctx.QueryArgs().Peek("date"))
	if body := ctx.PostBody(); date == "" && len(body) > 0 {
		var req struct {
			Date string `json:"date"`
		}
		if err := json.Unmarshal(body, &req); err != nil {
			h.respondInvalid(ctx, "invalid payload")
			return
		}
		date = req.Date
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := op(stdCtx, userID, pathParam(ctx, "id"), date)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}
