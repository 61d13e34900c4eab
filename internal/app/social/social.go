// internal/app/social/social.go
package social

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	communitystore "github.com/real-ds/VITConnectDemo/internal/app/store/communities"
	poststore "github.com/real-ds/VITConnectDemo/internal/app/store/posts"
	"github.com/real-ds/VITConnectDemo/internal/app/store/setfield"
	userstore "github.com/real-ds/VITConnectDemo/internal/app/store/users"
	"github.com/real-ds/VITConnectDemo/internal/app/system/htmlsanitize"
	"github.com/real-ds/VITConnectDemo/internal/app/system/uploads"
	"github.com/real-ds/VITConnectDemo/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ErrUnauthenticated is returned when an interaction is attempted
// without a signed-in user. The guard runs before any store access, so
// a rejected call leaves every record untouched.
var ErrUnauthenticated = errors.New("sign in required")

// Service owns the write-side interactions: like/save/membership
// toggles, post and community creation, and profile updates. Reads go
// straight to the stores; everything that mutates comes through here
// so the authentication guard and upload ordering live in one place.
type Service struct {
	users       *userstore.Store
	communities *communitystore.Store
	posts       *poststore.Store
	blob        uploads.Blob
	log         *zap.Logger
}

func New(users *userstore.Store, communities *communitystore.Store, posts *poststore.Store, blob uploads.Blob, logger *zap.Logger) *Service {
	return &Service{
		users:       users,
		communities: communities,
		posts:       posts,
		blob:        blob,
		log:         logger,
	}
}

// MediaFile is one uploaded file, streamed from the request body.
type MediaFile struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// ToggleLike flips userID's presence in the post's likes set and
// returns the resulting membership state.
func (s *Service) ToggleLike(ctx context.Context, postID, userID primitive.ObjectID) (setfield.Result, error) {
	if userID.IsZero() {
		return setfield.Result{}, ErrUnauthenticated
	}
	return s.posts.Likes().Toggle(ctx, postID, userID)
}

// ToggleSave flips userID's presence in the post's saved-by set.
func (s *Service) ToggleSave(ctx context.Context, postID, userID primitive.ObjectID) (setfield.Result, error) {
	if userID.IsZero() {
		return setfield.Result{}, ErrUnauthenticated
	}
	return s.posts.SavedBy().Toggle(ctx, postID, userID)
}

// ToggleMembership joins or leaves a community for userID.
func (s *Service) ToggleMembership(ctx context.Context, communityID, userID primitive.ObjectID) (setfield.Result, error) {
	if userID.IsZero() {
		return setfield.Result{}, ErrUnauthenticated
	}
	return s.communities.Members().Toggle(ctx, communityID, userID)
}

// PostInput carries everything needed to create a post. CommunityID
// nil means the post goes to the general feed.
type PostInput struct {
	Title       string
	Content     string
	CommunityID *primitive.ObjectID
	Media       []MediaFile
}

// CreatePost uploads all media files and then creates the post record.
// Uploads run concurrently; the stored URL list keeps the order of the
// input files. If any upload fails the post is not created and the
// error of the first failed file is returned.
func (s *Service) CreatePost(ctx context.Context, authorID primitive.ObjectID, in PostInput) (models.Post, error) {
	if authorID.IsZero() {
		return models.Post{}, ErrUnauthenticated
	}

	urls, err := s.uploadAll(ctx, in.Media)
	if err != nil {
		return models.Post{}, err
	}

	p := models.Post{
		Title:       in.Title,
		Content:     htmlsanitize.Sanitize(in.Content),
		AuthorID:    authorID,
		CommunityID: in.CommunityID,
		Media:       urls,
	}
	created, err := s.posts.Create(ctx, p)
	if err != nil {
		return models.Post{}, err
	}
	s.log.Info("post created",
		zap.String("post_id", created.ID.Hex()),
		zap.String("author_id", authorID.Hex()),
		zap.Int("media", len(urls)))
	return created, nil
}

// uploadAll pushes every file to the blob store concurrently and
// returns the public URLs in input order. One failure fails the batch.
func (s *Service) uploadAll(ctx context.Context, files []MediaFile) ([]string, error) {
	urls := make([]string, len(files))
	if len(files) == 0 {
		return urls, nil
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for i, f := range files {
		wg.Add(1)
		go func(i int, f MediaFile) {
			defer wg.Done()
			url, err := s.blob.PostMedia(ctx, f.Filename, f.Content, f.ContentType)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("upload %q: %w", f.Filename, err)
				}
				return
			}
			urls[i] = url
		}(i, f)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return urls, nil
}

// CommunityInput carries community creation fields. Cover is optional.
type CommunityInput struct {
	Name        string
	Description string
	Cover       *MediaFile
}

// CreateCommunity creates a community with the creator as its first
// member. An optional cover image is uploaded before the record is
// written; a failed upload aborts the creation.
func (s *Service) CreateCommunity(ctx context.Context, creatorID primitive.ObjectID, in CommunityInput) (models.Community, error) {
	if creatorID.IsZero() {
		return models.Community{}, ErrUnauthenticated
	}

	var coverURL string
	if in.Cover != nil {
		url, err := s.blob.CommunityCover(ctx, in.Cover.Filename, in.Cover.Content, in.Cover.ContentType)
		if err != nil {
			return models.Community{}, fmt.Errorf("upload cover: %w", err)
		}
		coverURL = url
	}

	c := models.Community{
		Name:        in.Name,
		Description: htmlsanitize.Sanitize(in.Description),
		CreatorID:   creatorID,
		CoverImage:  coverURL,
	}
	created, err := s.communities.Create(ctx, c)
	if err != nil {
		return models.Community{}, err
	}
	s.log.Info("community created",
		zap.String("community_id", created.ID.Hex()),
		zap.String("creator_id", creatorID.Hex()))
	return created, nil
}

// ProfileInput carries the optional profile fields to change. Nil
// fields are left as they are.
type ProfileInput struct {
	Name    *string
	Bio     *string
	Picture *MediaFile
}

// UpdateProfile applies the given changes to the signed-in user's own
// profile. A new picture overwrites the previous one at the same blob
// key, so the stored URL stays stable across re-uploads.
func (s *Service) UpdateProfile(ctx context.Context, userID primitive.ObjectID, in ProfileInput) (*models.User, error) {
	if userID.IsZero() {
		return nil, ErrUnauthenticated
	}

	upd := userstore.ProfileUpdate{Name: in.Name}
	if in.Bio != nil {
		clean := htmlsanitize.Sanitize(*in.Bio)
		upd.Bio = &clean
	}
	if in.Picture != nil {
		url, err := s.blob.ProfilePicture(ctx, userID.Hex(), in.Picture.Content, in.Picture.ContentType)
		if err != nil {
			return nil, fmt.Errorf("upload picture: %w", err)
		}
		upd.ProfilePicture = &url
	}

	return s.users.UpdateProfile(ctx, userID, upd)
}
