package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sl-notes/internal/service"
)

type statsResponse struct {
	TotalUsers     int64 `json:"total_users"`
	TotalNotes     int64 `json:"total_notes"`
	TotalSubjects  int64 `json:"total_subjects"`
	VerifiedUsers  int64 `json:"verified_users"`
	PublishedNotes int64 `json:"published_notes"`
	TotalViews     int64 `json:"total_views"`
}

func (h *Handler) adminStats(c *gin.Context) {
	stats, err := h.stats.Stats(c.Request.Context())
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, statsResponse{
		TotalUsers:     stats.TotalUsers,
		TotalNotes:     stats.TotalNotes,
		TotalSubjects:  stats.TotalSubjects,
		VerifiedUsers:  stats.VerifiedUsers,
		PublishedNotes: stats.PublishedNotes,
		TotalViews:     stats.TotalViews,
	})
}

func (h *Handler) adminListUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		h.serviceError(c, err)
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(&users[i])
	}
	c.JSON(http.StatusOK, resp)
}

type adminUpdateUserRequest struct {
	IsVerified *bool `json:"is_verified"`
	IsAdmin    *bool `json:"is_admin"`
}

func (h *Handler) adminUpdateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req adminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.users.UpdateFlags(c.Request.Context(), id, service.UserFlagsUpdate{
		IsVerified: req.IsVerified,
		IsAdmin:    req.IsAdmin,
	})
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
}

func (h *Handler) adminDeleteUser(c *gin.Context) {
	admin := currentUser(c)
	if admin == nil {
		unauthenticated(c)
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.users.DeleteUser(c.Request.Context(), admin.ID, id); err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func (h *Handler) adminListNotes(c *gin.Context) {
	notes, err := h.notes.ListAll(c.Request.Context())
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, notesToResponse(notes))
}

func (h *Handler) adminTogglePublish(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	note, err := h.notes.TogglePublish(c.Request.Context(), id)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	message := "Note unpublished"
	if note.IsPublished {
		message = "Note published"
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}
