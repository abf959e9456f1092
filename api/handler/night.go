package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/noctura/backend/api/transport"
	"github.com/noctura/backend/pkg/httpcontext"
	"github.com/noctura/backend/usecase/night"
)

// NightHandler serves the evening shutdown surface: the per-date entry,
// its history, and the freeform journal built on top of the entries.
type NightHandler struct {
	baseHandler
	entries *night.UseCase
}

func NewNightHandler(entries *night.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *NightHandler {
	return &NightHandler{
		baseHandler: newBaseHandler(adapter, logger),
		entries:     entries,
	}
}

// Get returns the entry for ?date=YYYY-MM-DD, null data when none exists.
func (h *NightHandler) Get(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	date := string(ctx.QueryArgs().Peek("date"))

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	entry, err := h.entries.Get(stdCtx, userID, date)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	// A missing entry answers with an explicit data null, not an absent key;
	// the typed nil pointer survives the envelope's omitempty.
	h.respondSuccess(ctx, http.StatusOK, entry)
}

func (h *NightHandler) Save(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.NightEntrySaveRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	saved, err := h.entries.Save(stdCtx, userID, night.SaveInput{
		Date:            req.Date,
		TopTasks:        req.TopTasks,
		Notes:           req.Notes,
		Reflection:      req.Reflection,
		ShutdownHabits:  req.ShutdownHabits,
		FreeformJournal: req.FreeformJournal,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, saved)
}

func (h *NightHandler) History(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	entries, err := h.entries.History(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, entries)
}

func (h *NightHandler) JournalHistory(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	notes, err := h.entries.JournalHistory(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, notes)
}

func (h *NightHandler) DeleteJournalNote(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.entries.DeleteJournalNote(stdCtx, userID, pathParam(ctx, "id")); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"message": "Note deleted"})
}
