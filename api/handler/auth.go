package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/noctura/backend/api/transport"
	"github.com/noctura/backend/pkg/httpcontext"
	"github.com/noctura/backend/usecase/auth"
	"github.com/noctura/backend/usecase/profile"
)

// AuthHandler serves registration, login, logout and the profile surface.
type AuthHandler struct {
	baseHandler
	auth    *auth.UseCase
	profile *profile.UseCase
}

func NewAuthHandler(authUC *auth.UseCase, profileUC *profile.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		auth:        authUC,
		profile:     profileUC,
	}
}

func (h *AuthHandler) Register(ctx *fasthttp.RequestCtx) {
	var req transport.RegisterRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	creds, err := h.auth.Register(stdCtx, req.Username, req.Email, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, creds)
}

func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	var req transport.LoginRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	creds, err := h.auth.Login(stdCtx, req.Email, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, creds)
}

// Logout revokes the session named by the token the middleware validated.
func (h *AuthHandler) Logout(ctx *fasthttp.RequestCtx) {
	if h.userID(ctx) == "" {
		return
	}
	sessionID := string(ctx.Request.Header.Peek("X-Session-ID"))

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.auth.Revoke(stdCtx, sessionID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"message": "Logged out"})
}

func (h *AuthHandler) Me(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.profile.Get(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, user.SafeView())
}

func (h *AuthHandler) UpdateProfile(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.ProfileUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.profile.Update(stdCtx, userID, profile.UpdateInput{
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, user.SafeView())
}
