// internal/app/features/profile/handler.go
package profile

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/real-ds/VITConnectDemo/internal/app/social"
	poststore "github.com/real-ds/VITConnectDemo/internal/app/store/posts"
	feedquery "github.com/real-ds/VITConnectDemo/internal/app/store/queries/feed"
	userstore "github.com/real-ds/VITConnectDemo/internal/app/store/users"
	"github.com/real-ds/VITConnectDemo/internal/app/system/apierr"
	"github.com/real-ds/VITConnectDemo/internal/app/system/auth"
	"github.com/real-ds/VITConnectDemo/internal/app/system/limits"
	"github.com/real-ds/VITConnectDemo/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves public profile pages and the signed-in user's own
// profile edits.
type Handler struct {
	Users     *userstore.Store
	Posts     *poststore.Store
	Social    *social.Service
	Assembler *feedquery.Assembler
	ErrLog    *apierr.ErrorLogger
	Log       *zap.Logger
}

func NewHandler(users *userstore.Store, posts *poststore.Store, svc *social.Service, assembler *feedquery.Assembler, errLog *apierr.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:     users,
		Posts:     posts,
		Social:    svc,
		Assembler: assembler,
		ErrLog:    errLog,
		Log:       logger,
	}
}

type profileResponse struct {
	User  models.User      `json:"user"`
	Posts []feedquery.Item `json:"posts"`
}

// ServeGetUser handles GET /api/users/{userID}: the user's public
// profile plus their posts.
func (h *Handler) ServeGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userID"))
	if err != nil {
		apierr.BadRequest(w, "invalid user id")
		return
	}

	u, err := h.Users.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			apierr.NotFound(w, "user")
			return
		}
		h.ErrLog.StoreUnavailable(w, r, err, "load user")
		return
	}

	posts, err := h.Posts.ListByAuthor(r.Context(), id)
	if err != nil {
		h.ErrLog.StoreUnavailable(w, r, err, "load user posts")
		return
	}

	items := h.Assembler.Assemble(r.Context(), posts)
	if items == nil {
		items = []feedquery.Item{}
	}
	apierr.JSON(w, http.StatusOK, profileResponse{User: *u, Posts: items})
}

// ServeUpdateMe handles PUT /api/users/me. Multipart fields: name,
// bio (both optional; absent fields stay unchanged), and an optional
// "picture" image part. The picture is stored at a stable per-user
// key, so re-uploads keep the same URL.
func (h *Handler) ServeUpdateMe(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		apierr.Unauthorized(w)
		return
	}
	userID, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		apierr.Unauthorized(w)
		return
	}

	if err := r.ParseMultipartForm(limits.MaxImageFormSize); err != nil {
		apierr.BadRequest(w, "invalid multipart form")
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	var in social.ProfileInput
	if vals, ok := r.MultipartForm.Value["name"]; ok && len(vals) > 0 {
		in.Name = &vals[0]
	}
	if vals, ok := r.MultipartForm.Value["bio"]; ok && len(vals) > 0 {
		in.Bio = &vals[0]
	}
	if headers := r.MultipartForm.File["picture"]; len(headers) > 0 {
		f, err := headers[0].Open()
		if err != nil {
			apierr.BadRequest(w, "unreadable picture part")
			return
		}
		defer f.Close()
		in.Picture = &social.MediaFile{
			Filename:    headers[0].Filename,
			ContentType: headers[0].Header.Get("Content-Type"),
			Content:     f,
		}
	}

	updated, err := h.Social.UpdateProfile(r.Context(), userID, in)
	if err != nil {
		switch {
		case errors.Is(err, social.ErrUnauthenticated):
			apierr.Unauthorized(w)
		case errors.Is(err, userstore.ErrNotFound):
			apierr.NotFound(w, "user")
		default:
			h.ErrLog.ServerError(w, r, err, "update profile")
		}
		return
	}
	apierr.JSON(w, http.StatusOK, updated)
}
