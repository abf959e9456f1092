package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/noctura/backend/api/transport"
	"github.com/noctura/backend/pkg/httpcontext"
	"github.com/noctura/backend/usecase/board"
)

// BoardHandler serves one board kind's HTTP surface. It is instantiated
// twice, once per engine instance, under different path prefixes.
type BoardHandler struct {
	baseHandler
	engine *board.Engine
}

func NewBoardHandler(engine *board.Engine, adapter *httpcontext.Adapter, logger *zap.Logger) *BoardHandler {
	return &BoardHandler{
		baseHandler: newBaseHandler(adapter, logger),
		engine:      engine,
	}
}

// List returns the caller's records: a flat array for the todo kind, a
// status-keyed object for the kanban kind.
func (h *BoardHandler) List(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.engine.List(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if result.Buckets != nil {
		h.respondSuccess(ctx, http.StatusOK, result.Buckets)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, result.Flat)
}

func (h *BoardHandler) Create(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.TaskCreateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.engine.Create(stdCtx, userID, board.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

func (h *BoardHandler) Update(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.TaskUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	patch := board.Patch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	}
	// A present dueDate key may carry null (clear) or a date string.
	if len(req.DueDate) > 0 {
		patch.DueDateSet = true
		if string(req.DueDate) != "null" {
			var raw string
			if err := json.Unmarshal(req.DueDate, &raw); err != nil {
				h.respondInvalid(ctx, "invalid due date")
				return
			}
			patch.DueDate = &raw
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.engine.Update(stdCtx, userID, pathParam(ctx, "id"), patch)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// Move handles the single-card drag: it sets only the status.
func (h *BoardHandler) Move(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.MoveRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	moved, err := h.engine.Move(stdCtx, userID, pathParam(ctx, "id"), req.NewStatus)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, moved)
}

func (h *BoardHandler) Delete(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.engine.Delete(stdCtx, userID, pathParam(ctx, "id")); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"message": "Task deleted"})
}

// BatchUpdate applies a set of status changes with all-or-nothing
// validation.
func (h *BoardHandler) BatchUpdate(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.BatchUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}
	if len(req.Tasks) == 0 {
		h.respondInvalid(ctx, "tasks array is required")
		return
	}

	items := make([]board.StatusChange, len(req.Tasks))
	for i, it := range req.Tasks {
		items[i] = board.StatusChange{ID: it.ID, NewStatus: it.NewStatus}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.engine.BatchUpdateStatus(stdCtx, userID, items)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}
