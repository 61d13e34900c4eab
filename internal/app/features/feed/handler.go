// internal/app/features/feed/handler.go
package feed

import (
	"net/http"

	poststore "github.com/real-ds/VITConnectDemo/internal/app/store/posts"
	feedquery "github.com/real-ds/VITConnectDemo/internal/app/store/queries/feed"
	"github.com/real-ds/VITConnectDemo/internal/app/system/apierr"
	"go.uber.org/zap"
)

// Handler serves the assembled home feed.
type Handler struct {
	Posts     *poststore.Store
	Assembler *feedquery.Assembler
	ErrLog    *apierr.ErrorLogger
	Log       *zap.Logger
}

func NewHandler(posts *poststore.Store, assembler *feedquery.Assembler, errLog *apierr.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Posts:     posts,
		Assembler: assembler,
		ErrLog:    errLog,
		Log:       logger,
	}
}

type feedResponse struct {
	Items []feedquery.Item `json:"items"`
}

// ServeFeed handles GET /api/feed.
//
// Returns every post, newest first, with author and community joined
// in. Posts whose author or community can't be resolved still appear,
// carrying placeholder values.
func (h *Handler) ServeFeed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	posts, err := h.Posts.ListNewest(ctx)
	if err != nil {
		h.ErrLog.StoreUnavailable(w, r, err, "load feed")
		return
	}

	items := h.Assembler.Assemble(ctx, posts)
	if items == nil {
		items = []feedquery.Item{}
	}
	apierr.JSON(w, http.StatusOK, feedResponse{Items: items})
}
