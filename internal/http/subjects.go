package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sl-notes/internal/service"
)

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func (h *Handler) listSubjects(c *gin.Context) {
	activeOnly, err := strconv.ParseBool(c.DefaultQuery("active_only", "true"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid flag active_only"})
		return
	}

	subjects, err := h.subjects.List(c.Request.Context(), c.Query("exam_type"), activeOnly)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	resp := make([]SubjectResponse, len(subjects))
	for i := range subjects {
		resp[i] = subjectToResponse(subjects[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getSubject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	subject, err := h.subjects.Get(c.Request.Context(), id)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, subjectToResponse(*subject))
}

type createSubjectRequest struct {
	Name        string `json:"name" binding:"required"`
	ExamType    string `json:"exam_type" binding:"required"`
	Description string `json:"description"`
}

func (h *Handler) createSubject(c *gin.Context) {
	var req createSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subject, err := h.subjects.Create(c.Request.Context(), req.Name, req.ExamType, req.Description)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, subjectToResponse(*subject))
}

type updateSubjectRequest struct {
	Name        *string `json:"name"`
	ExamType    *string `json:"exam_type"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

func (h *Handler) updateSubject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subject, err := h.subjects.Update(c.Request.Context(), id, service.SubjectUpdate{
		Name:        req.Name,
		ExamType:    req.ExamType,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, subjectToResponse(*subject))
}

func (h *Handler) deleteSubject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	subject, err := h.subjects.Delete(c.Request.Context(), id)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Subject '" + subject.Name + "' deleted successfully"})
}
