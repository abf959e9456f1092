package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/noctura/backend/api/transport"
	"github.com/noctura/backend/pkg/httpcontext"
	"github.com/noctura/backend/usecase/reminder"
)

type ReminderHandler struct {
	baseHandler
	reminders *reminder.UseCase
}

func NewReminderHandler(reminders *reminder.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ReminderHandler {
	return &ReminderHandler{
		baseHandler: newBaseHandler(adapter, logger),
		reminders:   reminders,
	}
}

// ListByDate returns the reminders for one day, taken from the path.
func (h *ReminderHandler) ListByDate(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	reminders, err := h.reminders.ListByDate(stdCtx, userID, pathParam(ctx, "date"))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, reminders)
}

// ListRange returns the reminders in the inclusive ?start=..&end=.. window.
func (h *ReminderHandler) ListRange(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	args := ctx.QueryArgs()
	reminders, err := h.reminders.ListByRange(stdCtx, userID, string(args.Peek("start")), string(args.Peek("end")))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, reminders)
}

func (h *ReminderHandler) Create(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.ReminderCreateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.reminders.Create(stdCtx, userID, reminder.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

func (h *ReminderHandler) Update(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.ReminderUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.reminders.Update(stdCtx, userID, pathParam(ctx, "id"), reminder.Patch{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

func (h *ReminderHandler) Delete(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.reminders.Delete(stdCtx, userID, pathParam(ctx, "id")); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"message": "Reminder deleted"})
}
