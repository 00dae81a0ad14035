package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/barberdev/barberdev-web/internal/domain/user"
	"github.com/barberdev/barberdev-web/internal/session"
)

const ContextSession = "session"

// gateState tracks where a request stands while the gate decides on it.
// A request is never handed to the protected handler unless it reached
// gateAuthorized.
type gateState int

const (
	gateResolving gateState = iota
	gateRedirecting
	gateAuthorized
	gateForbidden
)

// RoleGate protects a route group with a role allow-list. Requests without
// credentials are sent to the login page; authenticated users whose role is
// not allowed are sent to their own landing page instead of seeing a
// forbidden error. An empty allow-list means any authenticated user passes.
func RoleGate(store *session.Store, allowed ...user.Role) gin.HandlerFunc {
	allowSet := make(map[user.Role]struct{}, len(allowed))
	for _, r := range allowed {
		allowSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		state := gateResolving

		sess := store.Load(c)
		if sess == nil {
			state = gateRedirecting
		} else if len(allowSet) > 0 {
			if _, ok := allowSet[sess.Identity.Role]; !ok {
				state = gateForbidden
			}
		}
		if state == gateResolving {
			state = gateAuthorized
		}

		switch state {
		case gateRedirecting:
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
		case gateForbidden:
			c.Redirect(http.StatusFound, session.LandingRoute(sess.Identity.Role))
			c.Abort()
		default:
			c.Set(ContextSession, sess)
			c.Next()
		}
	}
}

// SessionFrom retrieves the session the gate stored for this request.
// Handlers behind a RoleGate can rely on it being present.
func SessionFrom(c *gin.Context) *session.Session {
	v, ok := c.Get(ContextSession)
	if !ok {
		return nil
	}
	sess, _ := v.(*session.Session)
	return sess
}
