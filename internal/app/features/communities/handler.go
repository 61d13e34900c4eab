// internal/app/features/communities/handler.go
package communities

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/real-ds/VITConnectDemo/internal/app/social"
	communitystore "github.com/real-ds/VITConnectDemo/internal/app/store/communities"
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

// Handler serves community listing, creation, detail, and the
// join/leave toggle.
type Handler struct {
	Communities *communitystore.Store
	Posts       *poststore.Store
	Social      *social.Service
	Assembler   *feedquery.Assembler
	ErrLog      *apierr.ErrorLogger
	Log         *zap.Logger
}

func NewHandler(communities *communitystore.Store, posts *poststore.Store, svc *social.Service, assembler *feedquery.Assembler, errLog *apierr.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Communities: communities,
		Posts:       posts,
		Social:      svc,
		Assembler:   assembler,
		ErrLog:      errLog,
		Log:         logger,
	}
}

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

// ServeList handles GET /api/communities.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	list, err := h.Communities.List(r.Context())
	if err != nil {
		h.ErrLog.StoreUnavailable(w, r, err, "list communities")
		return
	}
	if list == nil {
		list = []models.Community{}
	}
	apierr.JSON(w, http.StatusOK, map[string]any{"communities": list})
}

// ServeCreate handles POST /api/communities. Multipart fields: name,
// description, and an optional "cover" image part. The creator ends
// up as the community's only member.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(limits.MaxImageFormSize); err != nil {
		apierr.BadRequest(w, "invalid multipart form")
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	name := r.FormValue("name")
	if name == "" {
		apierr.BadRequest(w, "name is required")
		return
	}

	in := social.CommunityInput{
		Name:        name,
		Description: r.FormValue("description"),
	}

	if headers := r.MultipartForm.File["cover"]; len(headers) > 0 {
		f, err := headers[0].Open()
		if err != nil {
			apierr.BadRequest(w, "unreadable cover part")
			return
		}
		defer f.Close()
		in.Cover = &social.MediaFile{
			Filename:    headers[0].Filename,
			ContentType: headers[0].Header.Get("Content-Type"),
			Content:     f,
		}
	}

	created, err := h.Social.CreateCommunity(r.Context(), currentUserID(r), in)
	if err != nil {
		switch {
		case errors.Is(err, social.ErrUnauthenticated):
			apierr.Unauthorized(w)
		case errors.Is(err, communitystore.ErrDuplicateName):
			apierr.JSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		default:
			h.ErrLog.ServerError(w, r, err, "create community")
		}
		return
	}
	apierr.JSON(w, http.StatusCreated, created)
}

type detailResponse struct {
	Community models.Community `json:"community"`
	Posts     []feedquery.Item `json:"posts"`
}

// ServeGet handles GET /api/communities/{communityID}: the community
// record plus its posts, assembled like the feed.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "communityID"))
	if err != nil {
		apierr.BadRequest(w, "invalid community id")
		return
	}

	c, err := h.Communities.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, communitystore.ErrNotFound) {
			apierr.NotFound(w, "community")
			return
		}
		h.ErrLog.StoreUnavailable(w, r, err, "load community")
		return
	}

	posts, err := h.Posts.ListByCommunity(r.Context(), id)
	if err != nil {
		h.ErrLog.StoreUnavailable(w, r, err, "load community posts")
		return
	}

	items := h.Assembler.Assemble(r.Context(), posts)
	if items == nil {
		items = []feedquery.Item{}
	}
	apierr.JSON(w, http.StatusOK, detailResponse{Community: *c, Posts: items})
}

// ServeMembershipToggle handles POST
// /api/communities/{communityID}/membership: the caller joins the
// community if absent from the members set, leaves it if present.
func (h *Handler) ServeMembershipToggle(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "communityID"))
	if err != nil {
		apierr.BadRequest(w, "invalid community id")
		return
	}

	res, err := h.Social.ToggleMembership(r.Context(), id, currentUserID(r))
	if err != nil {
		switch {
		case errors.Is(err, social.ErrUnauthenticated):
			apierr.Unauthorized(w)
		case errors.Is(err, setfield.ErrNotFound):
			apierr.NotFound(w, "community")
		default:
			h.ErrLog.StoreUnavailable(w, r, err, "toggle membership")
		}
		return
	}
	apierr.JSON(w, http.StatusOK, map[string]any{
		"present": res.Present,
		"members": res.Members,
	})
}
