package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/barberdev/barberdev-web/internal/backend"
	"github.com/barberdev/barberdev-web/internal/domain/user"
)

// ErrExpired signals that the credential no longer works against the
// backend; callers treat it as an implicit logout.
var ErrExpired = errors.New("session expired")

// Session is the derived, ephemeral view of a decoded credential, plus the
// lazily-attached full profile. The decoded claims stay authoritative for
// id/role/email/name even when the profile fetch fails.
type Session struct {
	Identity
	Token   string
	Profile *user.Profile
}

// Store owns the persisted credential (one cookie) and the decode/merge
// lifecycle. It is injected where needed; there is no ambient global.
type Store struct {
	users      *backend.Users
	cookieName string
	secure     bool
	logger     *slog.Logger
}

func NewStore(users *backend.Users, cookieName string, secure bool, logger *slog.Logger) *Store {
	if cookieName == "" {
		cookieName = "token"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{users: users, cookieName: cookieName, secure: secure, logger: logger}
}

// Load reads the persisted credential off the request and decodes it. An
// absent cookie is simply an unauthenticated session, not an error; so is a
// credential that does not decode. The cookie is re-read on every request,
// which is what keeps concurrent tabs consistent: a credential cleared
// elsewhere is gone on the next load here too.
func (s *Store) Load(c *gin.Context) *Session {
	token, err := c.Cookie(s.cookieName)
	if err != nil || token == "" {
		return nil
	}

	ident, ok := DecodeToken(token)
	if !ok {
		s.logger.Debug("stored credential failed to decode, treating as absent")
		return nil
	}

	return &Session{Identity: *ident, Token: token}
}

// Login persists the credential and returns the role-specific landing route.
// The cookie is committed before the caller redirects.
func (s *Store) Login(c *gin.Context, token string) (string, error) {
	ident, ok := DecodeToken(token)
	if !ok {
		return "", errors.New("credential did not decode")
	}

	s.setCookie(c, token, 60*60*24)
	return LandingRoute(ident.Role), nil
}

// Logout clears the persisted credential. The caller redirects home.
func (s *Store) Logout(c *gin.Context) {
	s.setCookie(c, "", -1)
}

// Refresh re-fetches the full profile and merges it over the decoded claims.
// A failure means the credential is no longer usable and surfaces as
// ErrExpired; the caller logs the session out.
func (s *Store) Refresh(ctx context.Context, sess *Session) error {
	if sess == nil {
		return ErrExpired
	}
	profile, err := s.users.Profile(backend.WithToken(ctx, sess.Token))
	if err != nil {
		s.logger.Debug("profile refresh failed", "error", err)
		return ErrExpired
	}
	sess.Profile = profile
	if profile.FullName != "" {
		sess.FullName = profile.FullName
	}
	if profile.Email != "" {
		sess.Email = profile.Email
	}
	return nil
}

func (s *Store) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.cookieName, value, maxAge, "/", "", s.secure, true)
}

// LandingRoute maps a role to its default page.
func LandingRoute(role user.Role) string {
	switch role {
	case user.RoleClient:
		return "/appointments"
	case user.RoleBarber:
		return "/dashboard/barber"
	case user.RoleAdmin:
		return "/dashboard/admin"
	}
	return "/"
}
