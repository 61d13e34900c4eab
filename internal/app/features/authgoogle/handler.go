// internal/app/features/authgoogle/handler.go
package authgoogle

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/real-ds/VITConnectDemo/internal/app/store/oauthstate"
	userstore "github.com/real-ds/VITConnectDemo/internal/app/store/users"
	"github.com/real-ds/VITConnectDemo/internal/app/system/auth"
	"github.com/real-ds/VITConnectDemo/internal/app/system/timeouts"
	"github.com/real-ds/VITConnectDemo/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Handler handles Google OAuth sign-in. First-time Google users get
// an account created from their Google profile; returning users are
// matched by email.
type Handler struct {
	Users      *userstore.Store
	SessionMgr *auth.SessionManager
	StateStore *oauthstate.Store
	Log        *zap.Logger

	ClientID     string
	ClientSecret string
	RedirectURL  string // e.g. "https://vitconnect.example/auth/google/callback"
}

func NewHandler(users *userstore.Store, sessionMgr *auth.SessionManager, stateStore *oauthstate.Store, clientID, clientSecret, baseURL string, logger *zap.Logger) *Handler {
	return &Handler{
		Users:        users,
		SessionMgr:   sessionMgr,
		StateStore:   stateStore,
		Log:          logger,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  baseURL + "/auth/google/callback",
	}
}

func (h *Handler) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.ClientID,
		ClientSecret: h.ClientSecret,
		RedirectURL:  h.RedirectURL,
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// IsConfigured returns true if Google OAuth is configured.
func (h *Handler) IsConfigured() bool {
	return h.ClientID != "" && h.ClientSecret != ""
}

/*──────────────────────────────────────────────────────────────────────*
| GET /auth/google                                                      |
| Redirects to Google's consent screen.                                 |
*──────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if !h.IsConfigured() {
		h.Log.Warn("Google OAuth not configured")
		http.Redirect(w, r, "/login?error=google_not_configured", http.StatusSeeOther)
		return
	}

	state, err := generateState()
	if err != nil {
		h.Log.Error("failed to generate OAuth state", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	returnURL := r.URL.Query().Get("return")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	expiresAt := time.Now().UTC().Add(10 * time.Minute)
	if err := h.StateStore.Save(ctx, state, returnURL, expiresAt); err != nil {
		h.Log.Error("failed to save OAuth state", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	url := h.oauth2Config().AuthCodeURL(state)

	h.Log.Debug("initiating Google OAuth flow",
		zap.String("redirect_url", url),
		zap.String("return_url", returnURL))

	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

/*──────────────────────────────────────────────────────────────────────*
| GET /auth/google/callback                                             |
| Exchanges the code, resolves the account, starts a session.           |
*──────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.Log.Warn("Google OAuth error",
			zap.String("error", errParam),
			zap.String("description", r.URL.Query().Get("error_description")))
		http.Redirect(w, r, "/login?error=google_denied", http.StatusSeeOther)
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		h.Log.Warn("missing OAuth state parameter")
		http.Redirect(w, r, "/login?error=invalid_state", http.StatusSeeOther)
		return
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	returnURL, valid, err := h.StateStore.Validate(ctxTimeout, state)
	if err != nil {
		h.Log.Error("failed to validate OAuth state", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}
	if !valid {
		h.Log.Warn("invalid or expired OAuth state")
		http.Redirect(w, r, "/login?error=invalid_state", http.StatusSeeOther)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.Log.Warn("missing OAuth code parameter")
		http.Redirect(w, r, "/login?error=invalid_code", http.StatusSeeOther)
		return
	}

	token, err := h.oauth2Config().Exchange(ctx, code)
	if err != nil {
		h.Log.Error("failed to exchange OAuth code", zap.Error(err))
		http.Redirect(w, r, "/login?error=token_exchange", http.StatusSeeOther)
		return
	}

	googleUser, err := fetchGoogleUserInfo(ctx, token)
	if err != nil {
		h.Log.Error("failed to fetch Google user info", zap.Error(err))
		http.Redirect(w, r, "/login?error=user_info", http.StatusSeeOther)
		return
	}

	user, err := h.findOrCreateUser(ctxTimeout, googleUser)
	if err != nil {
		if errors.Is(err, errWrongAuthMethod) {
			http.Redirect(w, r, "/login?error=password_account", http.StatusSeeOther)
			return
		}
		h.Log.Error("failed to resolve Google user", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	if err := h.SessionMgr.SignIn(w, r, auth.SessionUser{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
	}); err != nil {
		h.Log.Error("save session failed", zap.Error(err), zap.String("user_id", user.ID.Hex()))
		http.Redirect(w, r, "/login?error=session", http.StatusSeeOther)
		return
	}

	h.Log.Info("user logged in via Google OAuth",
		zap.String("user_id", user.ID.Hex()),
		zap.String("email", user.Email))

	http.Redirect(w, r, safeReturn(returnURL), http.StatusSeeOther)
}

/*──────────────────────────────────────────────────────────────────────*
| User resolution                                                       |
*──────────────────────────────────────────────────────────────────────*/

var errWrongAuthMethod = fmt.Errorf("account uses password auth")

// googleUserInfo represents user info returned from Google.
type googleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// fetchGoogleUserInfo retrieves user information from Google's userinfo endpoint.
func fetchGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}

	return &info, nil
}

// findOrCreateUser matches the Google account to a user by email,
// creating a fresh account on first sign-in. An existing password
// account with the same email is not silently taken over.
func (h *Handler) findOrCreateUser(ctx context.Context, g *googleUserInfo) (*models.User, error) {
	u, err := h.Users.GetByEmail(ctx, g.Email)
	if err == nil {
		if u.AuthMethod != "google" {
			return nil, errWrongAuthMethod
		}
		return u, nil
	}
	if !errors.Is(err, userstore.ErrNotFound) {
		return nil, err
	}

	created, err := h.Users.Create(ctx, models.User{
		Name:           g.Name,
		Email:          g.Email,
		AuthMethod:     "google",
		ProfilePicture: g.Picture,
	})
	if err != nil {
		return nil, err
	}
	h.Log.Info("created account from Google profile", zap.String("user_id", created.ID.Hex()))
	return &created, nil
}

// safeReturn keeps post-login redirects on-site.
func safeReturn(returnURL string) string {
	if returnURL == "" || !strings.HasPrefix(returnURL, "/") || strings.HasPrefix(returnURL, "//") {
		return "/"
	}
	return returnURL
}

// generateState creates a cryptographically secure random state string.
func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
