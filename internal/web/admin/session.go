package admin

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"

	"github.com/Apurer/go-gin-pizza-service/internal/clients/http/pizza"
	"github.com/Apurer/go-gin-pizza-service/internal/dashboard"
)

const (
	SessionName = "pizza-dashboard"

	tokenKey      = "token"
	userKey       = "user"
	navigationKey = "navigation"
)

var errNoNavigation = errors.New("no pending navigation")

// NewSessionStore builds the cookie store. secure marks cookies Secure and SameSite=None.
func NewSessionStore(key string, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(key))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	if secure {
		store.Options.SameSite = http.SameSiteNoneMode
	}
	return store
}

type signedIn struct {
	Token string
	User  pizza.User
}

func (h *Handler) session(c *gin.Context) *sessions.Session {
	// A cookie that no longer decodes yields a fresh session.
	sess, _ := h.store.Get(c.Request, SessionName)
	return sess
}

func (h *Handler) currentUser(c *gin.Context) (*signedIn, bool) {
	sess := h.session(c)
	token, _ := sess.Values[tokenKey].(string)
	raw, _ := sess.Values[userKey].(string)
	if token == "" || raw == "" {
		return nil, false
	}
	var user pizza.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, false
	}
	return &signedIn{Token: token, User: user}, true
}

func (h *Handler) signIn(c *gin.Context, auth *pizza.Auth) error {
	raw, err := json.Marshal(auth.User)
	if err != nil {
		return err
	}
	sess := h.session(c)
	sess.Values[tokenKey] = auth.Token
	sess.Values[userKey] = string(raw)
	return sess.Save(c.Request, c.Writer)
}

func (h *Handler) signOut(c *gin.Context) error {
	sess := h.session(c)
	delete(sess.Values, tokenKey)
	delete(sess.Values, userKey)
	sess.Options.MaxAge = -1
	return sess.Save(c.Request, c.Writer)
}

func (h *Handler) pushNavigation(c *gin.Context, nav dashboard.Navigation) error {
	raw, err := json.Marshal(nav)
	if err != nil {
		return err
	}
	sess := h.session(c)
	sess.AddFlash(string(raw), navigationKey)
	return sess.Save(c.Request, c.Writer)
}

// popNavigation consumes the pending navigation if it targets route.
func (h *Handler) popNavigation(c *gin.Context, route string) (dashboard.Navigation, error) {
	sess := h.session(c)
	flashes := sess.Flashes(navigationKey)
	if err := sess.Save(c.Request, c.Writer); err != nil {
		return dashboard.Navigation{}, err
	}
	for i := len(flashes) - 1; i >= 0; i-- {
		raw, ok := flashes[i].(string)
		if !ok {
			continue
		}
		var nav dashboard.Navigation
		if err := json.Unmarshal([]byte(raw), &nav); err != nil {
			continue
		}
		if nav.Route == route {
			return nav, nil
		}
	}
	return dashboard.Navigation{}, errNoNavigation
}
