// internal/app/features/login/handler.go
package login

import (
	"encoding/json"
	"errors"
	"net/http"

	userstore "github.com/real-ds/VITConnectDemo/internal/app/store/users"
	"github.com/real-ds/VITConnectDemo/internal/app/system/apierr"
	"github.com/real-ds/VITConnectDemo/internal/app/system/auth"
	"github.com/real-ds/VITConnectDemo/internal/app/system/authutil"
	"github.com/real-ds/VITConnectDemo/internal/app/system/limits"
	"github.com/real-ds/VITConnectDemo/internal/app/system/normalize"
	"github.com/real-ds/VITConnectDemo/internal/app/system/ratelimit"
	"github.com/real-ds/VITConnectDemo/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves email/password registration and login.
type Handler struct {
	Users      *userstore.Store
	SessionMgr *auth.SessionManager
	Limiter    *ratelimit.LoginLimiter
	ErrLog     *apierr.ErrorLogger
	Log        *zap.Logger
}

func NewHandler(users *userstore.Store, sessionMgr *auth.SessionManager, errLog *apierr.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:      users,
		SessionMgr: sessionMgr,
		Limiter:    ratelimit.NewLoginLimiter(),
		ErrLog:     errLog,
		Log:        logger,
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxJSONBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		apierr.BadRequest(w, "invalid JSON body")
		return false
	}
	return true
}

// ServeRegister handles POST /api/auth/register: creates a password
// account and signs the new user in.
func (h *Handler) ServeRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if normalize.Name(req.Name) == "" {
		apierr.BadRequest(w, "name is required")
		return
	}
	if !authutil.IsValidEmail(normalize.Email(req.Email)) {
		apierr.BadRequest(w, "invalid email address")
		return
	}
	if err := authutil.ValidatePassword(req.Password); err != nil {
		apierr.BadRequest(w, authutil.PasswordRules())
		return
	}

	hash, err := authutil.HashPassword(req.Password)
	if err != nil {
		h.ErrLog.ServerError(w, r, err, "hash password")
		return
	}

	u, err := h.Users.Create(r.Context(), models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		AuthMethod:   "password",
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			apierr.JSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
			return
		}
		h.ErrLog.StoreUnavailable(w, r, err, "create user")
		return
	}

	if err := h.signIn(w, r, u); err != nil {
		h.ErrLog.ServerError(w, r, err, "create session")
		return
	}
	h.Log.Info("user registered", zap.String("user_id", u.ID.Hex()))
	apierr.JSON(w, http.StatusCreated, u)
}

// ServeLogin handles POST /api/auth/login. Failed lookups and wrong
// passwords get the same response so the endpoint can't be used to
// probe which emails have accounts.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if allowed, reason := h.Limiter.Check(r, req.Email); !allowed {
		h.Log.Warn("login rate limited", zap.String("ip", ratelimit.ClientIP(r)))
		apierr.JSON(w, http.StatusTooManyRequests, map[string]string{"error": reason})
		return
	}

	u, err := h.Users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			apierr.Unauthorized(w)
			return
		}
		h.ErrLog.StoreUnavailable(w, r, err, "load user")
		return
	}
	if u.AuthMethod != "password" || !authutil.CheckPassword(req.Password, u.PasswordHash) {
		apierr.Unauthorized(w)
		return
	}

	if err := h.signIn(w, r, *u); err != nil {
		h.ErrLog.ServerError(w, r, err, "create session")
		return
	}
	h.Limiter.ResetEmail(req.Email)
	h.Log.Info("user logged in", zap.String("user_id", u.ID.Hex()))
	apierr.JSON(w, http.StatusOK, u)
}

// ServeLogout handles POST /api/auth/logout.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.ErrLog.ServerError(w, r, err, "clear session")
		return
	}
	apierr.JSON(w, http.StatusOK, map[string]bool{"signedOut": true})
}

// ServeMe handles GET /api/auth/me: the current session's identity.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		apierr.JSON(w, http.StatusOK, map[string]any{"isAuthenticated": false})
		return
	}
	apierr.JSON(w, http.StatusOK, map[string]any{
		"isAuthenticated": true,
		"id":              u.ID,
		"name":            u.Name,
		"email":           u.Email,
	})
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request, u models.User) error {
	return h.SessionMgr.SignIn(w, r, auth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
	})
}
