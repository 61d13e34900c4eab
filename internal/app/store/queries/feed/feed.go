// internal/app/store/queries/feed/feed.go
package feed

// feed joins a page of posts with denormalized author and community
// records. Foreign keys are resolved in a single batched pass: each
// distinct author/community id is looked up exactly once no matter how
// many posts reference it, and the lookups run concurrently.
//
// A missing record never drops a post from the feed; the joined item
// falls back to a placeholder instead.

import (
	"context"
	"sync"

	communitystore "github.com/real-ds/VITConnectDemo/internal/app/store/communities"
	userstore "github.com/real-ds/VITConnectDemo/internal/app/store/users"
	"github.com/real-ds/VITConnectDemo/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Placeholder display values for unresolvable foreign keys.
const (
	UnknownAuthorName    = "Unknown"
	GeneralCommunityName = "General"
)

// Author is the denormalized author slice of a feed item.
type Author struct {
	ID             primitive.ObjectID `json:"id,omitempty"`
	Name           string             `json:"name"`
	ProfilePicture string             `json:"profilePicture"`
}

// CommunityRef is the denormalized community slice of a feed item.
// ID is nil for general-feed posts and for unresolvable communities.
type CommunityRef struct {
	ID   *primitive.ObjectID `json:"id,omitempty"`
	Name string              `json:"name"`
}

// Item is one joined feed entry.
type Item struct {
	Post      models.Post  `json:"post"`
	Author    Author       `json:"author"`
	Community CommunityRef `json:"community"`
}

// Resolver loads the records feed items are joined against. The
// production resolver is store-backed; tests use counting fakes to pin
// the fan-out bound.
type Resolver interface {
	User(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Community(ctx context.Context, id primitive.ObjectID) (*models.Community, error)
}

// Assembler builds joined feed items from post sequences.
type Assembler struct {
	res Resolver
	log *zap.Logger
}

// NewAssembler constructs an Assembler over the given resolver.
func NewAssembler(res Resolver, logger *zap.Logger) *Assembler {
	return &Assembler{res: res, log: logger}
}

// Assemble joins posts with their authors and communities. The output
// has the same length and order as the input. Lookups for distinct
// foreign keys run concurrently; a failed or missing lookup degrades
// that id to a placeholder without disturbing sibling lookups.
func (a *Assembler) Assemble(ctx context.Context, posts []models.Post) []Item {
	authorIDs, communityIDs := distinctKeys(posts)

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		authors = make(map[primitive.ObjectID]*models.User, len(authorIDs))
		comms   = make(map[primitive.ObjectID]*models.Community, len(communityIDs))
	)

	for _, id := range authorIDs {
		wg.Add(1)
		go func(id primitive.ObjectID) {
			defer wg.Done()
			u, err := a.res.User(ctx, id)
			if err != nil {
				if err != userstore.ErrNotFound {
					a.log.Warn("feed: author lookup failed",
						zap.String("author_id", id.Hex()), zap.Error(err))
				}
				return
			}
			mu.Lock()
			authors[id] = u
			mu.Unlock()
		}(id)
	}

	for _, id := range communityIDs {
		wg.Add(1)
		go func(id primitive.ObjectID) {
			defer wg.Done()
			c, err := a.res.Community(ctx, id)
			if err != nil {
				if err != communitystore.ErrNotFound {
					a.log.Warn("feed: community lookup failed",
						zap.String("community_id", id.Hex()), zap.Error(err))
				}
				return
			}
			mu.Lock()
			comms[id] = c
			mu.Unlock()
		}(id)
	}

	wg.Wait()

	items := make([]Item, 0, len(posts))
	for _, p := range posts {
		items = append(items, Item{
			Post:      p,
			Author:    authorView(authors[p.AuthorID]),
			Community: communityView(p.CommunityID, comms),
		})
	}
	return items
}

// distinctKeys collects each foreign key once, bounding the number of
// secondary lookups by distinct authors/communities rather than posts.
func distinctKeys(posts []models.Post) (authorIDs, communityIDs []primitive.ObjectID) {
	seenAuthors := make(map[primitive.ObjectID]struct{})
	seenComms := make(map[primitive.ObjectID]struct{})

	for _, p := range posts {
		if _, ok := seenAuthors[p.AuthorID]; !ok {
			seenAuthors[p.AuthorID] = struct{}{}
			authorIDs = append(authorIDs, p.AuthorID)
		}
		if p.CommunityID != nil {
			if _, ok := seenComms[*p.CommunityID]; !ok {
				seenComms[*p.CommunityID] = struct{}{}
				communityIDs = append(communityIDs, *p.CommunityID)
			}
		}
	}
	return authorIDs, communityIDs
}

func authorView(u *models.User) Author {
	if u == nil {
		return Author{Name: UnknownAuthorName, ProfilePicture: ""}
	}
	return Author{ID: u.ID, Name: u.Name, ProfilePicture: u.ProfilePicture}
}

func communityView(id *primitive.ObjectID, comms map[primitive.ObjectID]*models.Community) CommunityRef {
	if id == nil {
		// General-feed post: an explicit "no community" state.
		return CommunityRef{Name: GeneralCommunityName}
	}
	c := comms[*id]
	if c == nil {
		return CommunityRef{Name: GeneralCommunityName}
	}
	return CommunityRef{ID: &c.ID, Name: c.Name}
}

// StoreResolver is the production Resolver, backed by the users and
// communities stores.
type StoreResolver struct {
	users       *userstore.Store
	communities *communitystore.Store
}

// NewStoreResolver builds a Resolver over the entity stores.
func NewStoreResolver(users *userstore.Store, communities *communitystore.Store) *StoreResolver {
	return &StoreResolver{users: users, communities: communities}
}

func (r *StoreResolver) User(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.users.GetByID(ctx, id)
}

func (r *StoreResolver) Community(ctx context.Context, id primitive.ObjectID) (*models.Community, error) {
	return r.communities.GetByID(ctx, id)
}
