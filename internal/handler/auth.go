package handler

import (
	"CloudVault/internal/dto"
	"CloudVault/internal/service"
	"CloudVault/model"
	"CloudVault/utils"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/context"
)

// AuthHandler serves registration, login and logout.
type AuthHandler struct {
	Sessions *service.SessionManager
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(sessions *service.SessionManager) *AuthHandler {
	return &AuthHandler{Sessions: sessions}
}

// Register creates a new user account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	taken, err := service.ExistsByUsername(req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Register failed: " + err.Error()})
		return
	}
	if taken {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
		return
	}
	taken, err = service.ExistsByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Register failed: " + err.Error()})
		return
	}
	if taken {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
		return
	}

	user := &model.User{
		UserName:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if err := service.CreateUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Register failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

// Login verifies credentials and opens a session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	user, err := service.FindByIdentity(req.Identity)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if err := service.CheckPassword(user, req.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.Sessions.Create(context.Background(), user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed: " + err.Error()})
		return
	}
	c.SetCookie(utils.SessionCookieName, token, int(h.Sessions.TTL().Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Login successful"})
}

// Logout invalidates the presented session, if any. Logging out with an
// unknown or absent token still succeeds, and the cookie is cleared in
// every case.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, err := c.Cookie(utils.SessionCookieName)
	if err == nil && token != "" {
		if err := h.Sessions.Destroy(context.Background(), token); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed: " + err.Error()})
			return
		}
	}
	c.SetCookie(utils.SessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}
