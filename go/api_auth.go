package pizzaserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	usermapper "github.com/Apurer/go-gin-pizza-service/internal/domains/users/adapters/http/mapper"
	userports "github.com/Apurer/go-gin-pizza-service/internal/domains/users/ports"
)

// AuthAPI implements login, registration, and logout.
type AuthAPI struct {
	users   userports.Service
	session CurrentSession
}

// NewAuthAPI wires dependencies. session may be nil.
func NewAuthAPI(users userports.Service, session CurrentSession) AuthAPI {
	return AuthAPI{users: users, session: session}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	User  usermapper.User `json:"user"`
	Token string          `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Post /api/auth
// Register a diner
func (api *AuthAPI) Register(c *gin.Context) {
	var payload RegisterRequest
	if !bindJSON(c, &payload) {
		return
	}
	session, err := api.users.Register(c.Request.Context(), userports.RegisterInput{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	api.remember(session)
	c.JSON(http.StatusOK, AuthResponse{User: usermapper.FromDomainUser(session.User), Token: session.Token})
}

// Put /api/auth
// Log in an existing user
func (api *AuthAPI) Login(c *gin.Context) {
	var payload LoginRequest
	if !bindJSON(c, &payload) {
		return
	}
	session, err := api.users.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	api.remember(session)
	c.JSON(http.StatusOK, AuthResponse{User: usermapper.FromDomainUser(session.User), Token: session.Token})
}

// Delete /api/auth
// Log out and revoke the bearer token
func (api *AuthAPI) Logout(c *gin.Context) {
	if err := api.users.Logout(c.Request.Context(), requestToken(c)); err != nil {
		respondError(c, err)
		return
	}
	if api.session != nil {
		api.session.Clear()
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "logout successful"})
}

func (api *AuthAPI) remember(session *userports.Session) {
	if api.session != nil {
		api.session.Set(session.User.ID)
	}
}
