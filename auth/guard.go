package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/authd/auth/jwt"
	"github.com/skillsenselab/authd/server"
	"github.com/skillsenselab/authd/users"
)

// ContextUserKey is where the guard stores the authenticated user on the
// request context.
const ContextUserKey = "auth.user"

const bearerScheme = "Bearer"

// RequireAuth guards a route behind a bearer token. The token must verify,
// its subject must still resolve to a stored user, and the resulting user is
// attached to the context for handlers downstream. Every failure aborts the
// chain with a 401 envelope.
func RequireAuth(tokens *jwt.Service, store *users.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			server.AbortUnauthorized(c, "Access denied. No token provided.")
			return
		}

		subject, err := tokens.Verify(raw)
		if err != nil {
			server.AbortUnauthorized(c, "Invalid or expired token.")
			return
		}

		id, err := parseUserID(subject)
		if err != nil {
			server.AbortUnauthorized(c, "Invalid or expired token.")
			return
		}

		user, err := store.FindByID(c.Request.Context(), id)
		if err != nil {
			server.AbortWithError(c, err)
			return
		}
		if user == nil {
			server.AbortUnauthorized(c, "User belonging to this token no longer exists.")
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user the guard attached, or nil when the route
// was reached without RequireAuth.
func CurrentUser(c *gin.Context) *users.Public {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil
	}
	user, ok := v.(*users.Public)
	if !ok {
		return nil
	}
	return user
}

// bearerToken extracts the credential from an Authorization header value.
// Anything other than a "Bearer <token>" shape counts as no token at all.
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], bearerScheme) {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
