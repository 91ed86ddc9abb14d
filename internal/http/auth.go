package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sl-notes/internal/service"
)

type registerRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully! Please check your email to verify your account.",
		// TODO: stop echoing the token once SMTP delivery is enabled in production
		"detail": "Verification token: " + user.VerificationToken,
	})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Email)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

func (h *Handler) verifyEmail(c *gin.Context) {
	alreadyVerified, err := h.users.VerifyEmail(c.Request.Context(), c.Param("token"))
	if err != nil {
		h.serviceError(c, err)
		return
	}

	message := "Account verified successfully! You can now log in."
	if alreadyVerified {
		message = "Account already verified!"
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

func (h *Handler) getMe(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		unauthenticated(c)
		return
	}
	c.JSON(http.StatusOK, userToResponse(user))
}

type updateMeRequest struct {
	FullName *string `json:"full_name"`
}

func (h *Handler) updateMe(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		unauthenticated(c)
		return
	}

	var req updateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.users.UpdateProfile(c.Request.Context(), user.ID, service.ProfileUpdate{FullName: req.FullName})
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(updated))
}
