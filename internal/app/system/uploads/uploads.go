// Package uploads is the blob-store collaborator: it owns the key
// scheme for uploaded media and returns the public URL for each
// stored object.
package uploads

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/storage"
)

// Blob is what the interaction layer depends on. Production code uses
// *Uploader; tests substitute a fake to inject upload failures.
type Blob interface {
	// PostMedia stores one post attachment and returns its public URL.
	PostMedia(ctx context.Context, filename string, r io.Reader, contentType string) (string, error)
	// CommunityCover stores a community cover image.
	CommunityCover(ctx context.Context, filename string, r io.Reader, contentType string) (string, error)
	// ProfilePicture stores a user's picture at a stable per-user key,
	// overwriting any previous picture.
	ProfilePicture(ctx context.Context, userID string, r io.Reader, contentType string) (string, error)
}

// PostMediaKey returns the object key for a post attachment uploaded
// at t: posts/{unix-ms}_{sanitized filename}.
func PostMediaKey(t time.Time, filename string) string {
	return fmt.Sprintf("posts/%d_%s", t.UnixMilli(), sanitizeFilename(filename))
}

// CommunityCoverKey returns the object key for a community cover
// image uploaded at t.
func CommunityCoverKey(t time.Time, filename string) string {
	return fmt.Sprintf("communities/%d_%s", t.UnixMilli(), sanitizeFilename(filename))
}

// ProfilePictureKey is stable per user, so a re-upload replaces the
// previous picture at the same address.
func ProfilePictureKey(userID string) string {
	return "profiles/" + userID
}

// Uploader writes to a storage.Store and composes public URLs from
// the configured base.
type Uploader struct {
	store   storage.Store
	baseURL string // public prefix, e.g. "/files" or a CDN origin
}

// New builds an Uploader over the given store. baseURL is the public
// prefix objects are served from.
func New(store storage.Store, baseURL string) *Uploader {
	return &Uploader{
		store:   store,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (u *Uploader) PostMedia(ctx context.Context, filename string, r io.Reader, contentType string) (string, error) {
	return u.put(ctx, PostMediaKey(time.Now().UTC(), filename), r, contentType)
}

func (u *Uploader) CommunityCover(ctx context.Context, filename string, r io.Reader, contentType string) (string, error) {
	return u.put(ctx, CommunityCoverKey(time.Now().UTC(), filename), r, contentType)
}

func (u *Uploader) ProfilePicture(ctx context.Context, userID string, r io.Reader, contentType string) (string, error) {
	return u.put(ctx, ProfilePictureKey(userID), r, contentType)
}

func (u *Uploader) put(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	opts := &storage.PutOptions{ContentType: contentType}
	if err := u.store.Put(ctx, key, r, opts); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return u.baseURL + "/" + key, nil
}

// sanitizeFilename removes characters that could be problematic in
// object keys, keeping just the base name.
func sanitizeFilename(filename string) string {
	filename = filepath.Base(filename)

	result := make([]byte, 0, len(filename))
	for i := 0; i < len(filename); i++ {
		c := filename[i]
		if isAllowedFilenameChar(c) {
			result = append(result, c)
		} else {
			result = append(result, '_')
		}
	}

	if len(result) == 0 {
		return "file"
	}
	if len(result) > 100 {
		// Truncate but preserve extension if present
		ext := filepath.Ext(string(result))
		if len(ext) > 0 && len(ext) < 10 {
			result = append(result[:100-len(ext)], ext...)
		} else {
			result = result[:100]
		}
	}

	return string(result)
}

func isAllowedFilenameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_' || c == '.'
}
