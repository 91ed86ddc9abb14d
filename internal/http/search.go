package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"sl-notes/internal/repository"
)

type searchResponse struct {
	Notes []NoteResponse `json:"notes"`
	Total int            `json:"total"`
	Query string         `json:"query"`
}

func (h *Handler) searchNotes(c *gin.Context) {
	query := c.Query("q")
	subjectID, _ := strconv.ParseInt(c.Query("subject_id"), 10, 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	notes, err := h.notes.Search(c.Request.Context(), repository.NoteSearch{
		Query:     query,
		SubjectID: subjectID,
		ExamType:  c.Query("exam_type"),
		Limit:     limit,
	})
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, searchResponse{
		Notes: notesToResponse(notes),
		Total: len(notes),
		Query: query,
	})
}

func (h *Handler) searchSubjects(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "search query is required"})
		return
	}

	subjects, err := h.subjects.Search(c.Request.Context(), query, 20)
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
