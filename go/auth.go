package pizzaserver

import (
	"strings"

	"github.com/gin-gonic/gin"

	userdomain "github.com/Apurer/go-gin-pizza-service/internal/domains/users/domain"
	userports "github.com/Apurer/go-gin-pizza-service/internal/domains/users/ports"
	apierrors "github.com/Apurer/go-gin-pizza-service/internal/shared/errors"
)

const (
	identityKey = "pizza.identity"
	tokenKey    = "pizza.token"
)

// CurrentSession tracks the identity of the last login for requests without a token.
type CurrentSession interface {
	Set(userID int64)
	Clear()
	Current() (int64, bool)
}

// NewAuthenticator resolves the caller for every request. A bearer token must
// be valid and still registered; without an Authorization header the current
// session is used when one is configured. Requests are never rejected here.
func NewAuthenticator(users userports.Service, session CurrentSession) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		switch {
		case header != "":
			token, ok := bearerToken(header)
			if !ok {
				break
			}
			c.Set(tokenKey, token)
			if user, err := users.Authenticate(ctx, token); err == nil {
				c.Set(identityKey, user)
			}
		case session != nil:
			if id, ok := session.Current(); ok {
				if user, err := users.Get(ctx, id); err == nil {
					c.Set(identityKey, user)
				}
			}
		}
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func identity(c *gin.Context) (*userdomain.User, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*userdomain.User)
	return user, ok && user != nil
}

// requireUser answers 401 when the caller is anonymous.
func requireUser(c *gin.Context) (*userdomain.User, bool) {
	user, ok := identity(c)
	if !ok {
		respondProblem(c, apierrors.ErrUnauthorized.WithDetail("authentication required"))
		return nil, false
	}
	return user, true
}

// requireAdmin answers 401 for anonymous callers and 403 for non-admins.
func requireAdmin(c *gin.Context) (*userdomain.User, bool) {
	user, ok := requireUser(c)
	if !ok {
		return nil, false
	}
	if !user.IsAdmin() {
		respondProblem(c, apierrors.ErrForbidden.WithDetail("admin role required"))
		return nil, false
	}
	return user, true
}

func requestToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}
