// Package auth handles Discord OAuth login and the signed session cookie
// the rest of the server trusts for identity.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/draftloop/draft-backend/internal/store"
)

const sessionCookie = "draft_session"
const stateCookie = "draft_oauth_state"

const discordUserURL = "https://discord.com/api/users/@me"

var discordEndpoint = oauth2.Endpoint{
	AuthURL:  "https://discord.com/oauth2/authorize",
	TokenURL: "https://discord.com/api/oauth2/token",
}

type Config struct {
	ClientID      string
	ClientSecret  string
	RedirectURL   string
	SessionSecret string
	SessionTTL    time.Duration
	SecureCookies bool
}

type Service struct {
	oauth  *oauth2.Config
	secret []byte
	ttl    time.Duration
	secure bool
	users  *store.Store
	log    *zap.Logger
}

func New(cfg Config, users *store.Store, log *zap.Logger) *Service {
	return &Service{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"identify"},
			Endpoint:     discordEndpoint,
		},
		secret: []byte(cfg.SessionSecret),
		ttl:    cfg.SessionTTL,
		secure: cfg.SecureCookies,
		users:  users,
		log:    log,
	}
}

type sessionClaims struct {
	jwt.RegisteredClaims
	Username  string `json:"username"`
	DiscordID string `json:"discord_id"`
}

// LoginHandler sends the browser to Discord's consent screen.
func (s *Service) LoginHandler(w http.ResponseWriter, r *http.Request) {
	state, err := randState()
	if err != nil {
		http.Error(w, "failed to start login", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, s.oauth.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// CallbackHandler finishes the OAuth dance: code for token, token for the
// Discord identity, identity for a local user and a session cookie.
func (s *Service) CallbackHandler(w http.ResponseWriter, r *http.Request) {
	stateC, err := r.Cookie(stateCookie)
	if err != nil || stateC.Value == "" || r.URL.Query().Get("state") != stateC.Value {
		http.Error(w, "state mismatch", http.StatusBadRequest)
		return
	}
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "missing code", http.StatusBadRequest)
		return
	}

	tok, err := s.oauth.Exchange(r.Context(), code)
	if err != nil {
		s.log.Warn("oauth exchange failed", zap.Error(err))
		http.Error(w, "login failed", http.StatusBadGateway)
		return
	}

	du, err := fetchDiscordUser(r.Context(), s.oauth.Client(r.Context(), tok))
	if err != nil {
		s.log.Warn("discord identity fetch failed", zap.Error(err))
		http.Error(w, "login failed", http.StatusBadGateway)
		return
	}

	user, err := s.users.UpsertUser(du.ID, du.Username, du.avatarURL())
	if err != nil {
		s.log.Error("upsert user failed", zap.Error(err))
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	signed, err := s.issueToken(user)
	if err != nil {
		s.log.Error("issue session token failed", zap.Error(err))
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Value: "", Path: "/", MaxAge: -1})
	http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
}

func (s *Service) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) MeHandler(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "not logged in", http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(user)
}

func (s *Service) issueToken(u *store.User) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(u.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Username:  u.Username,
		DiscordID: u.DiscordID,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Service) parseToken(raw string) (*sessionClaims, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}
	return &claims, nil
}

type ctxKey struct{}

// Middleware resolves the session cookie to a user and stores it on the
// request context. It never rejects; handlers that need a user use
// RequireUser or check for nil themselves.
func (s *Service) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(sessionCookie)
		if err != nil || c.Value == "" {
			next.ServeHTTP(w, r)
			return
		}
		claims, err := s.parseToken(c.Value)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		id, err := strconv.ParseUint(claims.Subject, 10, 64)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		user := &store.User{ID: uint(id), Username: claims.Username, DiscordID: claims.DiscordID}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, user)))
	})
}

// RequireUser rejects requests that did not present a valid session.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFromContext(r.Context()) == nil {
			http.Error(w, "login required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func UserFromContext(ctx context.Context) *store.User {
	user, _ := ctx.Value(ctxKey{}).(*store.User)
	return user
}

type discordUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

func (d discordUser) avatarURL() string {
	if d.Avatar == "" {
		return ""
	}
	return fmt.Sprintf("https://cdn.discordapp.com/avatars/%s/%s.png", d.ID, d.Avatar)
}

func fetchDiscordUser(ctx context.Context, client *http.Client) (discordUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, discordUserURL, nil)
	if err != nil {
		return discordUser{}, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return discordUser{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return discordUser{}, fmt.Errorf("discord /users/@me: %s: %s", resp.Status, body)
	}
	var du discordUser
	if err := json.NewDecoder(resp.Body).Decode(&du); err != nil {
		return discordUser{}, fmt.Errorf("decode discord user: %w", err)
	}
	return du, nil
}

func randState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
