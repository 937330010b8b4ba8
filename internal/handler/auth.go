package handler

import (
	"net/http"

	"smartpos/internal/dto"
	"smartpos/internal/middleware"
	"smartpos/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Register godoc
// @Summary Register a new business with its admin account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "Business registration"
// @Success 201 {object} dto.RegisterResponse
// @Failure 409 {object} apierror.APIError
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindForm(c, &req) {
		return
	}

	resp, token, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary Authenticate and open a session
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Failure 403 {object} apierror.APIError
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindForm(c, &req) {
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, resp.AccessToken)
	c.JSON(http.StatusOK, resp)
}

// Logout revokes the current token and clears the session cookie. Safe to
// call without a session; it always succeeds from the client's view.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(middleware.CookieName)
	if token == "" {
		if header := c.GetHeader("Authorization"); len(header) > 7 && header[:7] == "Bearer " {
			token = header[7:]
		}
	}

	if err := h.svc.Logout(c.Request.Context(), token); err != nil {
		respondError(c, err)
		return
	}

	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"detail": "Logged out", "redirect_to": "/auth/login"})
}

// CreateSuperadmin bootstraps the platform operator account. It only works
// once; a second call gets 409.
func (h *AuthHandler) CreateSuperadmin(c *gin.Context) {
	var req dto.CreateSuperadminRequest
	if !bindForm(c, &req) {
		return
	}

	if err := h.svc.CreateSuperadmin(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"detail": "Superadmin created"})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.CookieName, token, int(h.svc.TokenTTL().Seconds()), "/", "", true, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.CookieName, "", -1, "/", "", true, true)
}
