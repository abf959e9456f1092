package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/noctura/backend/api/transport"
	"github.com/noctura/backend/pkg/httpcontext"
	"github.com/noctura/backend/usecase/comment"
)

// CommentHandler serves the kanban card comment threads. Every operation
// responds with the card's full refreshed comment list.
type CommentHandler struct {
	baseHandler
	comments *comment.UseCase
}

func NewCommentHandler(comments *comment.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{
		baseHandler: newBaseHandler(adapter, logger),
		comments:    comments,
	}
}

func (h *CommentHandler) Add(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.CommentRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	list, err := h.comments.Add(stdCtx, userID, pathParam(ctx, "id"), req.Text)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, list)
}

func (h *CommentHandler) Edit(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.CommentRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	list, err := h.comments.Edit(stdCtx, userID, pathParam(ctx, "id"), pathParam(ctx, "commentId"), req.Text)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, list)
}

func (h *CommentHandler) Delete(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	list, err := h.comments.Delete(stdCtx, userID, pathParam(ctx, "id"), pathParam(ctx, "commentId"))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, list)
}
