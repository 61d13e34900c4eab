// internal/app/features/posts/handler.go
package posts

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/real-ds/VITConnectDemo/internal/app/social"
	poststore "github.com/real-ds/VITConnectDemo/internal/app/store/posts"
	feedquery "github.com/real-ds/VITConnectDemo/internal/app/store/queries/feed"
	"github.com/real-ds/VITConnectDemo/internal/app/store/setfield"
	"github.com/real-ds/VITConnectDemo/internal/app/system/apierr"
	"github.com/real-ds/VITConnectDemo/internal/app/system/auth"
	"github.com/real-ds/VITConnectDemo/internal/app/system/limits"
	"github.com/real-ds/VITConnectDemo/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves post creation, single-post reads, like/save toggles,
// and the signed-in user's saved list.
type Handler struct {
	Posts     *poststore.Store
	Social    *social.Service
	Assembler *feedquery.Assembler
	ErrLog    *apierr.ErrorLogger
	Log       *zap.Logger
}

func NewHandler(posts *poststore.Store, svc *social.Service, assembler *feedquery.Assembler, errLog *apierr.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Posts:     posts,
		Social:    svc,
		Assembler: assembler,
		ErrLog:    errLog,
		Log:       logger,
	}
}

// currentUserID resolves the signed-in user's ObjectID, or the zero
// id when there is no session. The zero id is what the interaction
// service rejects with ErrUnauthenticated.
func currentUserID(r *http.Request) primitive.ObjectID {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return primitive.NilObjectID
	}
	id, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		return primitive.NilObjectID
	}
	return id
}

func urlObjectID(r *http.Request, param string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, param))
	return id, err == nil
}

/*──────────────────────────────────────────────────────────────────────*
| POST /api/posts                                                       |
*──────────────────────────────────────────────────────────────────────*/

// ServeCreate handles post creation from a multipart form. Fields:
// title, content, communityId (optional; absent means the general
// feed), and any number of "media" file parts. All media must upload
// before the post exists; one failed upload fails the request.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(limits.MaxPostFormSize); err != nil {
		apierr.BadRequest(w, "invalid multipart form")
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	title := r.FormValue("title")
	if title == "" {
		apierr.BadRequest(w, "title is required")
		return
	}

	in := social.PostInput{
		Title:   title,
		Content: r.FormValue("content"),
	}
	if raw := r.FormValue("communityId"); raw != "" {
		cid, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			apierr.BadRequest(w, "invalid communityId")
			return
		}
		in.CommunityID = &cid
	}

	files, err := openMediaParts(r.MultipartForm.File["media"])
	if err != nil {
		apierr.BadRequest(w, "unreadable media part")
		return
	}
	defer closeMediaParts(files)
	for _, f := range files {
		in.Media = append(in.Media, f.MediaFile)
	}

	created, err := h.Social.CreatePost(r.Context(), currentUserID(r), in)
	if err != nil {
		if errors.Is(err, social.ErrUnauthenticated) {
			apierr.Unauthorized(w)
			return
		}
		h.ErrLog.ServerError(w, r, err, "create post")
		return
	}
	apierr.JSON(w, http.StatusCreated, created)
}

type openedMedia struct {
	social.MediaFile
	f multipart.File
}

func openMediaParts(headers []*multipart.FileHeader) ([]openedMedia, error) {
	var files []openedMedia
	for _, hdr := range headers {
		f, err := hdr.Open()
		if err != nil {
			closeMediaParts(files)
			return nil, err
		}
		files = append(files, openedMedia{
			MediaFile: social.MediaFile{
				Filename:    hdr.Filename,
				ContentType: hdr.Header.Get("Content-Type"),
				Content:     f,
			},
			f: f,
		})
	}
	return files, nil
}

func closeMediaParts(files []openedMedia) {
	for _, f := range files {
		_ = f.f.Close()
	}
}

/*──────────────────────────────────────────────────────────────────────*
| GET /api/posts/{postID}                                               |
*──────────────────────────────────────────────────────────────────────*/

// ServeGet returns a single post with its author and community joined.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, ok := urlObjectID(r, "postID")
	if !ok {
		apierr.BadRequest(w, "invalid post id")
		return
	}

	p, err := h.Posts.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, poststore.ErrNotFound) {
			apierr.NotFound(w, "post")
			return
		}
		h.ErrLog.StoreUnavailable(w, r, err, "load post")
		return
	}

	items := h.Assembler.Assemble(r.Context(), []models.Post{*p})
	apierr.JSON(w, http.StatusOK, items[0])
}

/*──────────────────────────────────────────────────────────────────────*
| POST /api/posts/{postID}/like, /save                                  |
*──────────────────────────────────────────────────────────────────────*/

type toggleResponse struct {
	Present bool                 `json:"present"`
	Members []primitive.ObjectID `json:"members"`
}

// ServeLikeToggle flips the caller's like on a post.
func (h *Handler) ServeLikeToggle(w http.ResponseWriter, r *http.Request) {
	h.serveToggle(w, r, h.Social.ToggleLike)
}

// ServeSaveToggle flips the caller's save on a post.
func (h *Handler) ServeSaveToggle(w http.ResponseWriter, r *http.Request) {
	h.serveToggle(w, r, h.Social.ToggleSave)
}

func (h *Handler) serveToggle(w http.ResponseWriter, r *http.Request, toggle func(ctx context.Context, postID, userID primitive.ObjectID) (setfield.Result, error)) {
	id, ok := urlObjectID(r, "postID")
	if !ok {
		apierr.BadRequest(w, "invalid post id")
		return
	}

	res, err := toggle(r.Context(), id, currentUserID(r))
	if err != nil {
		switch {
		case errors.Is(err, social.ErrUnauthenticated):
			apierr.Unauthorized(w)
		case errors.Is(err, setfield.ErrNotFound):
			apierr.NotFound(w, "post")
		default:
			h.ErrLog.StoreUnavailable(w, r, err, "toggle")
		}
		return
	}
	apierr.JSON(w, http.StatusOK, toggleResponse{Present: res.Present, Members: res.Members})
}

/*──────────────────────────────────────────────────────────────────────*
| GET /api/posts/saved                                                  |
*──────────────────────────────────────────────────────────────────────*/

// ServeSaved returns the signed-in user's saved posts, newest first,
// assembled like the feed.
func (h *Handler) ServeSaved(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)
	if userID.IsZero() {
		apierr.Unauthorized(w)
		return
	}

	posts, err := h.Posts.ListSavedBy(r.Context(), userID)
	if err != nil {
		h.ErrLog.StoreUnavailable(w, r, err, "load saved posts")
		return
	}

	items := h.Assembler.Assemble(r.Context(), posts)
	if items == nil {
		items = []feedquery.Item{}
	}
	apierr.JSON(w, http.StatusOK, map[string]any{"items": items})
}
